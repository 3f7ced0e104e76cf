package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openrelief/relief-be/internal/models"
)

// Identity is the resolved caller of a protected request.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type contextKey string

const identityContextKey = contextKey("identity")

// UserDirectory looks up accounts by their login identifier.
type UserDirectory interface {
	GetUserByEmail(email string) (models.User, error)
}

// Guard resolves identities from bearer tokens on protected routes.
type Guard struct {
	verifier *TokenVerifier
	users    UserDirectory
}

// NewGuard creates a Guard.
func NewGuard(verifier *TokenVerifier, users UserDirectory) *Guard {
	return &Guard{verifier: verifier, users: users}
}

// Authenticator is a middleware that verifies the bearer token and stores the
// resolved Identity in the request context. The account is re-fetched from
// storage rather than trusted from the role claim, so a role change takes
// effect before the old token expires. Every failure mode is the same 401.
func (g *Guard) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			http.Error(w, ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}

		claims, err := g.verifier.Verify(tokenStr)
		if err != nil {
			http.Error(w, ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}

		user, err := g.users.GetUserByEmail(claims.Subject)
		if err != nil {
			http.Error(w, ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}

		identity := Identity{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		}
		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole blocks requests whose identity role differs from role. The
// check is a hard equality; a mismatch never proceeds.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				http.Error(w, ErrUnauthenticated.Error(), http.StatusUnauthorized)
				return
			}
			if identity.Role != role {
				http.Error(w, fmt.Sprintf("Only %ss are allowed to access this resource.", role), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext retrieves the Identity stored by Authenticator.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, prefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(prefix):])
}
