package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maozinhas/api/internal/helpers"
	"github.com/stretchr/testify/assert"
)

type fakeValidator map[string]*helpers.Claims

func (f fakeValidator) Validate(token string) (*helpers.Claims, error) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

func newGuardedRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.Use(RequestID())
	r.GET("/guarded", RequireRole(validator, "admin", logger), func(c *gin.Context) {
		claims := c.MustGet(ClaimsKey).(*helpers.Claims)
		c.String(http.StatusOK, claims.Subject)
	})
	return r
}

func TestRequireRole(t *testing.T) {
	admin := &helpers.Claims{Role: "admin"}
	admin.Subject = "mod-1"
	viaAppRoles := &helpers.Claims{Role: "authenticated"}
	viaAppRoles.Subject = "mod-2"
	viaAppRoles.AppMetadata.Roles = []string{"admin"}

	validator := fakeValidator{
		"admin-token":  admin,
		"roles-token":  viaAppRoles,
		"seeker-token": {Role: "authenticated"},
	}

	tests := []struct {
		name     string
		header   string
		cookie   string
		wantCode int
		wantBody string
	}{
		{name: "no token", wantCode: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer seeker-token", wantCode: http.StatusForbidden},
		{name: "admin role", header: "Bearer admin-token", wantCode: http.StatusOK, wantBody: "mod-1"},
		{name: "app metadata role", header: "Bearer roles-token", wantCode: http.StatusOK, wantBody: "mod-2"},
		{name: "cookie token", cookie: "admin-token", wantCode: http.StatusOK, wantBody: "mod-1"},
	}

	router := newGuardedRouter(validator)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRequireRoleWithoutValidator(t *testing.T) {
	router := newGuardedRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	router := newGuardedRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestErrorHandlerWritesGenericBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.Use(ErrorHandler(logger))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("database exploded"))
	})
	r.GET("/handled", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "exploded")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/handled", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
