package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// CORS allows the configured browser origins to call the API.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit caps requests per client IP over window. The key is the TCP peer
// unless trustProxy is set, in which case forwarding headers win. A disabled
// limiter passes requests through untouched.
func RateLimit(requests int, window time.Duration, disabled, trustProxy bool) func(http.Handler) http.Handler {
	if disabled {
		return func(next http.Handler) http.Handler { return next }
	}
	key := RemoteIP
	if trustProxy {
		key = ClientIP
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return key(r), nil
		}),
	)
}
