package middleware

import (
	apperrors "campsite/pkg/errors"
	httputil "campsite/pkg/http"
	"net/http"
)

// MaxRequestSize rejects bodies declared larger than maxBytes and caps the
// rest, so a handler reading past the limit gets an error.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength > maxBytes {
				_ = httputil.WriteError(w, apperrors.New(
					apperrors.CodeBadRequest,
					"Request body too large",
					http.StatusRequestEntityTooLarge,
				).WithDetails(map[string]any{"max_bytes": maxBytes}))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
