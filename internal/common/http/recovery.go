package http

import (
	"net/http"
	"runtime/debug"

	"github.com/AlibekovAA/exercise-tracker/internal/common/httpmetrics"
	"github.com/AlibekovAA/exercise-tracker/internal/common/logger"
	"github.com/AlibekovAA/exercise-tracker/internal/observability/metrics"
)

func RecoveryMiddleware(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					metrics.PanicsRecovered.WithLabelValues(httpmetrics.NormalizePath(r.URL.Path)).Inc()
					log.WithFields(r.Context(), logger.Fields{
						"method": r.Method,
						"path":   r.URL.Path,
						"action": "panic_recovered",
					}).Criticalf("panic recovered: %v\n%s", err, debug.Stack())
					WriteError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
