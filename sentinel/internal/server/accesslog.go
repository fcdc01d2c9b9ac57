package server

import (
	"net/http"
	"time"

	"github.com/telhawk-systems/minisentinel/common/httputil"
	"github.com/telhawk-systems/minisentinel/common/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one line per request. Server errors are logged at error,
// client errors at warn, probes and scrapes at debug.
func AccessLog(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			attrs := []any{
				logging.Method(r.Method),
				logging.Path(r.URL.Path),
				logging.Status(rec.status),
				logging.IP(httputil.GetClientIP(r)),
				logging.Duration(time.Since(start)),
			}
			ctx := r.Context()
			switch {
			case rec.status >= 500:
				logger.ErrorContext(ctx, "request failed", attrs...)
			case rec.status >= 400:
				logger.WarnContext(ctx, "request rejected", attrs...)
			case isProbe(r.URL.Path):
				logger.DebugContext(ctx, "request served", attrs...)
			default:
				logger.InfoContext(ctx, "request served", attrs...)
			}
		})
	}
}

func isProbe(path string) bool {
	return path == "/healthz" || path == "/readyz" || path == "/metrics"
}
