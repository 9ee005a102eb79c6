package middleware

import (
	"net/http"
	"strings"

	"github.com/huseynesedov/portfolio-backend/config"
	"github.com/huseynesedov/portfolio-backend/pkg/auth"
	"github.com/huseynesedov/portfolio-backend/pkg/response"
)

// TokenGuard protects mutating routes with a bearer JWT. The guard is
// config-gated (AUTH_ENABLED, default off) so a local deployment behaves
// like an open API while production requires a token minted with the
// `token` CLI command.
func TokenGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !config.AuthEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		if _, err := auth.ValidateToken(token); err != nil {
			response.Unauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
