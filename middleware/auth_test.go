package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func protectedHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "scheduler",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestRequireServiceTokenValid(t *testing.T) {
	m := NewAuthMiddleware("topsecret")
	called := false

	req := httptest.NewRequest(http.MethodPost, "/api/leagues/nfl/resolve", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "topsecret"))
	rec := httptest.NewRecorder()

	m.RequireServiceToken(protectedHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !called {
		t.Errorf("status = %d, handler called = %t, want 200 and true", rec.Code, called)
	}
}

func TestRequireServiceTokenRejections(t *testing.T) {
	m := NewAuthMiddleware("topsecret")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signedToken(t, "othersecret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			req := httptest.NewRequest(http.MethodPost, "/api/leagues/nfl/resolve", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.RequireServiceToken(protectedHandler(&called)).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("handler must not run for rejected requests")
			}
		})
	}
}

func TestEmptySecretDisablesCheck(t *testing.T) {
	m := NewAuthMiddleware("")
	called := false

	req := httptest.NewRequest(http.MethodPost, "/api/leagues/nfl/resolve", nil)
	rec := httptest.NewRecorder()

	m.RequireServiceToken(protectedHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !called {
		t.Errorf("status = %d, handler called = %t, want 200 and true", rec.Code, called)
	}
}
