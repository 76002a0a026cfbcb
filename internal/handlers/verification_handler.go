package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
)

// VerificationHandler handles the identity-verification workflow
type VerificationHandler struct {
	userRepository repositories.UserRepository
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(userRepo repositories.UserRepository) *VerificationHandler {
	return &VerificationHandler{userRepository: userRepo}
}

// RegisterVerificationRoutes registers verification-related routes
func (h *VerificationHandler) RegisterVerificationRoutes(g *echo.Group) {
	g.POST("/verification/submit", h.SubmitID)
	g.GET("/verification/status", h.GetStatus)
}

// SubmitID records an uploaded ID document and puts the user into the
// review queue. Resubmission overwrites the previous document and resets
// the status to pending, including after a rejection.
func (h *VerificationHandler) SubmitID(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SubmitVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.SubmitVerification(claims.UserID, req.IDImageURL, req.IDType)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, echo.Map{"user": user})
}

// GetStatus returns the caller's current verification state
func (h *VerificationHandler) GetStatus(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, echo.Map{
		"verification_status": user.VerificationStatus,
		"verified":            user.Verified,
		"id_type":             user.IDType,
		"rejection_reason":    user.RejectionReason,
		"verified_at":         user.VerifiedAt,
	})
}
