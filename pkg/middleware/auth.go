package middleware

import (
	"crypto/subtle"
	"net/http"

	"covid-booking/pkg/utils"

	"go.uber.org/zap"
)

// APIKey requires every request to carry the shared record store key in
// the Authorization header. An empty configured key disables the check,
// which is only sensible for local development.
func APIKey(key string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get("Authorization")
			if provided == "" {
				utils.WriteUnauthorized(w, "Missing authorization key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				logger.Warn("Rejected request with bad API key",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.WriteUnauthorized(w, "Invalid authorization key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
