package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/goccy/go-json"

	"p9e.in/tankinspect/pkg/logging"
)

// Recover turns a handler panic into a 500 with the standard error body.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logging.Ctx(r.Context()).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("Recovered from panic")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"code":       "INTERNAL_ERROR",
					"message":    "The request could not be completed.",
					"request_id": logging.RequestIDFromContext(r.Context()),
				},
			})
		}()
		next.ServeHTTP(w, r)
	})
}
