package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/internal/models"
	"github.com/sauti-app/backend/internal/repositories"
	"github.com/sauti-app/backend/pkg/apperrors"
	"github.com/sauti-app/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo serves a single user for GetUserByID; the embedded interface
// panics on anything else, which no guard should ever call.
type fakeUserRepo struct {
	repositories.UserRepository
	user *models.User
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, apperrors.NotFound("user")
	}
	return f.user, nil
}

func newGuardContext(t *testing.T, claims *models.JwtCustomClaims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(ClaimsContextKey, claims)
	}
	return c, rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireVerifiedPassesApprovedUser(t *testing.T) {
	user := &models.User{VerificationStatus: models.VerificationApproved, Verified: true}
	user.ID = 7
	repo := &fakeUserRepo{user: user}

	c, rec := newGuardContext(t, &models.JwtCustomClaims{UserID: 7})
	err := RequireVerified(repo)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireVerifiedBlocksPendingUser(t *testing.T) {
	user := &models.User{VerificationStatus: models.VerificationPending}
	user.ID = 7
	repo := &fakeUserRepo{user: user}

	c, rec := newGuardContext(t, &models.JwtCustomClaims{UserID: 7})
	err := RequireVerified(repo)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "pending")
	assert.Contains(t, rec.Body.String(), "/verification")
}

func TestRequireVerifiedBlocksStaleVerifiedFlag(t *testing.T) {
	// A rejected user with a stale Verified flag must still be blocked:
	// the status field is the canonical predicate.
	user := &models.User{VerificationStatus: models.VerificationRejected, Verified: true}
	user.ID = 7
	repo := &fakeUserRepo{user: user}

	c, rec := newGuardContext(t, &models.JwtCustomClaims{UserID: 7})
	err := RequireVerified(repo)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireVerifiedWithoutSession(t *testing.T) {
	c, _ := newGuardContext(t, nil)
	err := RequireVerified(&fakeUserRepo{})(okHandler)(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireVerifiedDeletedUser(t *testing.T) {
	c, _ := newGuardContext(t, &models.JwtCustomClaims{UserID: 99})
	err := RequireVerified(&fakeUserRepo{})(okHandler)(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func adminConfig(emails ...string) *config.Config {
	return &config.Config{AdminEmails: emails}
}

func TestRequireAdminHappyPath(t *testing.T) {
	cfg := adminConfig("mod@example.com")
	claims := &models.JwtCustomClaims{UserID: 1, Email: "mod@example.com", Role: models.RoleAdmin}

	c, rec := newGuardContext(t, claims)
	err := RequireAdmin(cfg)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminMixedCaseEmail(t *testing.T) {
	cfg := adminConfig("mod@example.com")
	claims := &models.JwtCustomClaims{UserID: 1, Email: "Mod@Example.COM", Role: models.RoleAdmin}

	c, rec := newGuardContext(t, claims)
	err := RequireAdmin(cfg)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsNonAdminRole(t *testing.T) {
	cfg := adminConfig("mod@example.com")
	claims := &models.JwtCustomClaims{UserID: 1, Email: "mod@example.com", Role: models.RoleUser}

	c, _ := newGuardContext(t, claims)
	err := RequireAdmin(cfg)(okHandler)(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireAdminRejectsRevokedEmail(t *testing.T) {
	// Role in the token says admin, but the live allow-list no longer
	// carries the email: access is revoked without waiting for expiry.
	cfg := adminConfig("other@example.com")
	claims := &models.JwtCustomClaims{UserID: 1, Email: "mod@example.com", Role: models.RoleAdmin}

	c, _ := newGuardContext(t, claims)
	err := RequireAdmin(cfg)(okHandler)(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireAdminEmptyAllowList(t *testing.T) {
	cfg := adminConfig()
	claims := &models.JwtCustomClaims{UserID: 1, Email: "mod@example.com", Role: models.RoleAdmin}

	c, _ := newGuardContext(t, claims)
	err := RequireAdmin(cfg)(okHandler)(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireAdminWithoutSession(t *testing.T) {
	c, _ := newGuardContext(t, nil)
	err := RequireAdmin(adminConfig("mod@example.com"))(okHandler)(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
