package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/fitnest/fitnest/internal/app/system/auth"
	"github.com/golang-jwt/jwt/v5"
)

// SignToken mints an HS256 bearer token for handler tests.
func SignToken(t *testing.T, secret, email, name string) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"name":  name,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// WithBearer sets the Authorization header on a request.
func WithBearer(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// AsIdentity attaches a verified identity directly, bypassing the
// auth middleware for handler-level tests.
func AsIdentity(r *http.Request, email, name string) *http.Request {
	return auth.WithIdentity(r, &auth.Identity{Email: email, Name: name})
}
