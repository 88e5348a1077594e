package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"pickem-engine-go/logging"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the service token presented by schedulers and
// operators triggering resolution runs. This is machine-to-machine auth only;
// there are no user sessions in this service.
type AuthMiddleware struct {
	secret []byte
	logger *logging.Logger
}

// NewAuthMiddleware creates a new authentication middleware. An empty secret
// disables the check, which is only acceptable in development.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(secret),
		logger: logging.WithPrefix("auth"),
	}
}

// RequireServiceToken rejects requests without a valid HS256 bearer token
func (m *AuthMiddleware) RequireServiceToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(m.secret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		token, err := m.tokenFromRequest(r)
		if err != nil {
			m.logger.Warnf("Rejected request to %s: %v", r.URL.Path, err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if err := m.validateToken(token); err != nil {
			m.logger.Warnf("Rejected request to %s: %v", r.URL.Path, err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) tokenFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("malformed Authorization header")
	}

	return parts[1], nil
}

func (m *AuthMiddleware) validateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
