package handlers

import (
	"context"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
	"github.com/sauti-app/backend/pkg/apperrors"
	"github.com/sauti-app/backend/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	cfg            *config.Config
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		cfg:            cfg,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.CreateLocalUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Check if user with this email already exists
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:               req.Name,
		Email:              req.Email,
		Age:                req.Age,
		Password:           string(hashedPassword),
		VerificationStatus: models.VerificationPending,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return respondError(c, err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return respondOK(c, http.StatusCreated, echo.Map{"token": token, "user": user})
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return respondOK(c, http.StatusOK, echo.Map{"token": token, "user": user})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token, finds or creates the matching
// user row, and issues a local session JWT. New users start unverified with
// a pending status; full access requires the verification flow.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(context.Background(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	firebaseUID := token.UID
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := h.userRepository.GetUserByFirebaseUID(firebaseUID)
	switch {
	case err == nil:
		applyProviderClaims(user, email, name)
		if err := h.userRepository.UpdateUser(user); err != nil {
			return respondError(c, err)
		}
	case apperrors.IsNotFound(err):
		user, err = h.findOrCreateByEmail(firebaseUID, email, name)
		if err != nil {
			return respondError(c, err)
		}
	default:
		return respondError(c, err)
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate session token")
	}

	return respondOK(c, http.StatusOK, echo.Map{"token": localJWT, "user": user})
}

// applyProviderClaims refreshes a known user's identity fields from the
// provider token. Phone and anonymous providers omit the email and name
// claims; a blank claim never overwrites a stored value.
func applyProviderClaims(user *models.User, email, name string) {
	if email != "" {
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}
}

// findOrCreateByEmail links an existing row to the Firebase UID, or creates
// a fresh pending user on first sign-in.
func (h *AuthHandler) findOrCreateByEmail(firebaseUID, email, name string) (*models.User, error) {
	user, err := h.userRepository.GetUserByEmail(email)
	if err == nil {
		user.FirebaseUID = firebaseUID
		if err := h.userRepository.UpdateUser(user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	newUser := &models.User{
		Name:               name,
		Email:              email,
		FirebaseUID:        firebaseUID,
		VerificationStatus: models.VerificationPending,
	}
	if err := h.userRepository.CreateUser(newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

// generateJWT issues a session token for the user. The role claim is the
// only place role resolution happens on the happy path: admin when the email
// is on the configured allow-list, plain user otherwise.
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	role := models.RoleUser
	if h.cfg.IsAdminEmail(user.Email) {
		role = models.RoleAdmin
	}

	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
