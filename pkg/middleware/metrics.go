package middleware

import (
	"campsite/pkg/metrics"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Metrics records request counts and latency. Paths are reduced to their
// route template so reservation ids do not explode label cardinality.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			metrics.RecordHTTPRequest(
				r.Method,
				routeTemplate(r.URL.Path),
				strconv.Itoa(wrapped.statusCode),
				time.Since(start).Seconds(),
			)
		})
	}
}

func routeTemplate(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}
