package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
)

// UserHandler handles user-profile HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetProfile)
	g.PUT("/users/me", h.UpdateProfile)
	g.GET("/users/search", h.SearchUsers)
}

// UpdateUserRequest defines the request body for updating a profile
type UpdateUserRequest struct {
	Name string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Age  int    `json:"age,omitempty" validate:"omitempty,min=18,max=100"`
}

// GetProfile returns the caller's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"user": user})
}

// UpdateProfile updates the caller's own profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Age != 0 {
		user.Age = req.Age
	}
	if err := h.userRepository.UpdateUser(user); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"user": user})
}

// SearchUsers searches users by name or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return respondError(c, err)
	}

	compacts := make([]models.UserCompact, 0, len(users))
	for _, u := range users {
		compacts = append(compacts, u.ToCompact())
	}
	return respondOK(c, http.StatusOK, echo.Map{"users": compacts})
}
