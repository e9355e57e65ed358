package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type contextKey string

// userClaimsKey is the context key for resolved user claims.
const userClaimsKey = contextKey("userClaims")

// ClaimsFromContext returns the claims attached by Middleware, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	return claims, ok
}

// Middleware creates a middleware for protecting routes. A request without a
// bearer token is rejected with 401 before any downstream work; a token that
// fails verification is rejected with 403. On success the decoded claims are
// attached to the request context.
func (s *Service) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenStr = strings.TrimSpace(parts[1])
				}
			}

			if tokenStr == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing auth token")
				return
			}

			claims, err := s.Verify(tokenStr)
			if err != nil {
				// Expired vs forged vs garbage matters only in the log.
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected auth token")
				writeAuthError(w, http.StatusForbidden, "invalid auth token")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
