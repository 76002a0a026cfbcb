package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/middleware"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/pkg/apperrors"
)

// getClaims returns the session claims, or nil when unauthenticated.
func getClaims(c echo.Context) *models.JwtCustomClaims {
	return middleware.ClaimsFromContext(c)
}

// respondOK wraps a payload in the success envelope.
func respondOK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// respondError maps a domain error onto an HTTP status and the failure
// envelope. Unclassified errors surface as 500 with a generic message so
// storage internals never leak to clients.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrForeignKey):
		status = http.StatusBadRequest
		message = err.Error()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	return c.JSON(status, echo.Map{"success": false, "error": message})
}
