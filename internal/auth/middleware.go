package auth

import (
	"net/http"
	"strings"

	"github.com/clearflow/clearflow-cms/internal/platform/httpx"
	"github.com/clearflow/clearflow-cms/internal/shared"
)

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// RequireAuth rejects requests without a valid bearer token and attaches
// the resolved user to the request context.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.Resolve(r.Context(), BearerToken(r))
		if err != nil {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "valid bearer token required")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithUser(r.Context(), user)))
	})
}
