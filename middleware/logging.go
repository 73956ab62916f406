package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"p9e.in/tankinspect/pkg/logging"
)

// AccessLog writes one structured line per request. Server errors log at
// error, client errors at warn, everything else at info.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := newStatusRecorder(w)
		next.ServeHTTP(sr, r)

		l := logging.Ctx(r.Context())
		var ev *zerolog.Event
		switch {
		case sr.status >= 500:
			ev = l.Error()
		case sr.status >= 400:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sr.status).
			Int("bytes", sr.bytes).
			Str("ip", ClientIP(r)).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
