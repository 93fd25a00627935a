package middleware

import (
	"net/http"

	"github.com/lumina-search/lumina/internal/api"
)

// MaxBodyBytes caps the request body at limit bytes. Oversized declared
// lengths are rejected up front; chunked bodies are cut off by
// MaxBytesReader once the handler reads past the cap.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 || r.Body == nil {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength > limit {
				api.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
