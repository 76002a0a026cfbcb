package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
	"github.com/sauti-app/backend/pkg/config"
)

// RequireVerified gates full-access routes behind identity verification.
// The canonical predicate is VerificationStatus == approved; the derived
// Verified flag is never consulted here. Unverified users get a 403 carrying
// their current status so clients can route them into the verification flow.
func RequireVerified(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			// Re-read the user so a just-approved session gains access
			// without re-issuing the token.
			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found")
			}
			if !user.IsApproved() {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"error":   "identity verification required",
					"data": echo.Map{
						"verification_status": user.VerificationStatus,
						"redirect":            "/verification",
					},
				})
			}
			return next(c)
		}
	}
}

// RequireAdmin gates moderation routes. The claims role was resolved from
// the allow-list when the session was issued; the live allow-list is checked
// again here so revoking an admin email takes effect immediately. Both
// checks must pass: no session, no matching email, no access.
func RequireAdmin(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if claims.Role != models.RoleAdmin || !cfg.IsAdminEmail(claims.Email) {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}
