package providers

import (
	"net/http"
	"time"
)

// NewRequestLogMiddleware logs every request on the channel matching its method.
func NewRequestLogMiddleware(logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			t := GetLogTypeByRequestType(r.Method)
			if sw.status >= http.StatusInternalServerError {
				logger.Errorf(t, "%s %s -> %d in %s", r.Method, r.URL.Path, sw.status, time.Since(start))
				return
			}
			logger.Debugf(t, "%s %s -> %d in %s", r.Method, r.URL.Path, sw.status, time.Since(start))
		})
	}
}
