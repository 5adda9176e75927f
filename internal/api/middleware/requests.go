package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/task-tracker/internal/platform/logger"
)

// Incrementer counts inbound requests.
type Incrementer interface {
	Inc() int64
}

// NewRequestCounterMiddleware returns middleware that numbers every inbound
// request, logs it at INFO, and logs its duration at DEBUG once the handler
// returns. Records go to the logger in the request context.
func NewRequestCounterMiddleware(requests Incrementer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			n := requests.Inc()
			log := logger.FromContext(r.Context())

			log.Info("incoming request",
				slog.Int64("request_id", n),
				slog.String("resource", r.URL.Path),
				slog.String("method", r.Method))

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Debug("request duration",
				slog.Int64("request_id", n),
				slog.Int("status", ww.Status()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		})
	}
}
