package middleware

import (
	"net/http"
)

// BodyLimit caps request body size via http.MaxBytesReader, which answers
// 413 on overflow and closes the connection. Mount it before any JSON
// parsing; even the batch endpoint fits comfortably under the limit.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
