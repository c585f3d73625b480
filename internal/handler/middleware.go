package handler

import (
	"context"
	"net/http"

	"github.com/mkalanick/postboard/internal/domain"
	"github.com/mkalanick/postboard/internal/service"
)

type contextKey string

const identityContextKey contextKey = "identity"

// IdentityFromContext extracts the authenticated identity from the request
// context. The second return is false when no identity is present.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(domain.Identity)
	return identity, ok
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the auth_token cookie, validates the JWT, and injects the
// resolved identity into the request context. Returns 401 for
// unauthenticated requests.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := authenticateRequest(r, auth)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authenticateRequest(r *http.Request, auth *service.AuthService) (domain.Identity, error) {
	cookie, err := r.Cookie("auth_token")
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return auth.ValidateToken(cookie.Value)
}

// SecurityHeaders sets baseline security response headers on every request.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
