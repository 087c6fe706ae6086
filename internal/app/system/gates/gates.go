// Package gates provides the role-authorization middleware layered after the
// identity check.
//
// Authorization runs in a fixed order on every protected route:
//
//  1. auth.Verifier.Middleware — verifies the bearer credential and places
//     the subject identity in context (401/403 on failure).
//  2. gates.Require — loads the subject's *stored* role and compares it to
//     the roles the route group demands (403 on mismatch).
//
// The stored role is authoritative: a token minted before a demotion stops
// opening trainer routes as soon as the user document changes.
package gates

import (
	"context"
	"errors"
	"net/http"

	"github.com/fitnest/fitnest/internal/app/system/auth"
	"github.com/fitnest/fitnest/internal/app/system/httpjson"
	"github.com/fitnest/fitnest/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ErrUnknownSubject is returned by RoleLookup implementations when no user
// document exists for the email.
var ErrUnknownSubject = errors.New("no user record for subject")

// RoleLookup resolves a verified email to the stored role.
// Implemented by the user store.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Require returns middleware that allows only subjects whose stored role is
// in the allowed set. It expects auth.Middleware to have run first; a
// request without an identity is rejected 401.
func Require(lookup RoleLookup, log *zap.Logger, allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.CurrentIdentity(r)
			if !ok {
				httpjson.Error(w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			defer cancel()

			role, err := lookup.RoleByEmail(ctx, id.Email)
			if err != nil {
				if errors.Is(err, ErrUnknownSubject) {
					httpjson.Error(w, r, http.StatusForbidden, "forbidden")
					return
				}
				log.Error("role lookup failed",
					zap.String("email", id.Email),
					zap.Error(err))
				httpjson.Error(w, r, http.StatusInternalServerError, "internal error")
				return
			}

			if _, has := set[role]; !has {
				httpjson.Error(w, r, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
