package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sauti-app/backend/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The admin routes sit behind RequireAdmin, but each handler still refuses
// an unauthenticated context on its own rather than dereferencing nil claims.
func TestAdminHandlersWithoutSession(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	h := NewAdminHandler(nil, nil, nil, nil, nil, nil, zap.NewNop())

	cases := []struct {
		name    string
		handler echo.HandlerFunc
	}{
		{"approve", h.ApproveUser},
		{"reject", h.RejectUser},
		{"delete story", h.DeleteStory},
		{"force edit", h.ForceEditStory},
		{"create campaign", h.CreateCampaign},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("1")

			err := tc.handler(c)
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}
