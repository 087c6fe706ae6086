// Package auth verifies the bearer credential attached to each request and
// places the verified subject into the request context.
//
// Token issuance belongs to the external identity provider; this service only
// checks the HS256 signature and expiry of what arrives in the Authorization
// header. A missing credential is 401; a credential that fails verification
// is 403.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fitnest/fitnest/internal/app/system/httpjson"
	"github.com/fitnest/fitnest/internal/app/system/normalize"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified subject of a request.
type Identity struct {
	Email string
	Name  string
}

type ctxKey string

const identityKey ctxKey = "identity"

var (
	// ErrNoToken means the Authorization header was absent or not Bearer.
	ErrNoToken = errors.New("missing bearer token")
	// ErrInvalidToken means the credential failed signature, expiry, or
	// claim checks.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// CurrentIdentity returns the verified subject placed by Middleware.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

// WithIdentity returns a request carrying the given identity. Exported for
// handler tests that bypass the middleware.
func WithIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// Verifier checks bearer tokens against the shared HS256 secret.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier for the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Parse verifies a raw token string and extracts the subject identity.
// The email claim is required; name is optional.
func (v *Verifier) Parse(raw string) (*Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	email = normalize.Email(email)
	if email == "" {
		// some providers put the email in sub
		if sub, _ := claims["sub"].(string); strings.Contains(sub, "@") {
			email = normalize.Email(sub)
		}
	}
	if email == "" {
		return nil, ErrInvalidToken
	}

	name, _ := claims["name"].(string)
	return &Identity{Email: email, Name: name}, nil
}

// VerifyHeader verifies an Authorization header value.
func (v *Verifier) VerifyHeader(header string) (*Identity, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrNoToken
	}
	return v.Parse(strings.TrimPrefix(header, "Bearer "))
}

// Middleware rejects requests without a valid bearer token and injects the
// verified identity into the context for downstream gates and handlers.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := v.VerifyHeader(r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, ErrNoToken) {
				httpjson.Error(w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}
			httpjson.Error(w, r, http.StatusForbidden, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, WithIdentity(r, id))
	})
}
