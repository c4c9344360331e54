package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rcastro/tutormatch/internal/pkg/apperrors"
	"github.com/rcastro/tutormatch/internal/pkg/auth"
)

type mockValidator struct {
	validateFn func(tokenString string) (*auth.Claims, error)
}

func (m *mockValidator) ValidateToken(tokenString string) (*auth.Claims, error) {
	if m.validateFn != nil {
		return m.validateFn(tokenString)
	}
	return &auth.Claims{IdentityID: "identity-1", Email: "ana@example.com", Role: "student"}, nil
}

func newAuthTestRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(validator).JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	router := newAuthTestRouter(&mockValidator{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthRejectsNonBearerHeader(t *testing.T) {
	router := newAuthTestRouter(&mockValidator{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthRejectsInvalidToken(t *testing.T) {
	validator := &mockValidator{
		validateFn: func(tokenString string) (*auth.Claims, error) {
			return nil, apperrors.ErrTokenInvalid
		},
	}
	router := newAuthTestRouter(validator)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthSetsIdentityContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var gotIdentity, gotEmail, gotRole string
	validator := &mockValidator{
		validateFn: func(tokenString string) (*auth.Claims, error) {
			if tokenString != "good-token" {
				return nil, errors.New("unexpected token")
			}
			return &auth.Claims{IdentityID: "identity-1", Email: "ana@example.com", Role: "tutor"}, nil
		},
	}
	router.GET("/protected", NewAuthMiddleware(validator).JWTAuth(), func(c *gin.Context) {
		gotIdentity = c.GetString(ContextIdentityID)
		gotEmail = c.GetString(ContextEmail)
		gotRole = c.GetString(ContextRole)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotIdentity != "identity-1" || gotEmail != "ana@example.com" || gotRole != "tutor" {
		t.Errorf("context not populated: identity=%q email=%q role=%q", gotIdentity, gotEmail, gotRole)
	}
}
