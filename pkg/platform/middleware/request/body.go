package request

import (
	"mime"
	"net/http"
	"time"
)

// MaxBodyBytes bounds request bodies. Entry answers are the largest payload.
const MaxBodyBytes int64 = 64 << 10

// Timeout aborts handlers that run longer than d with a 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, `{"error":"timeout","error_description":"Request took too long"}`)
	}
}

// JSONBody guards write requests: a declared body must be application/json
// and is capped at maxBytes. An absent Content-Type passes, since the auth
// endpoints are posted with an empty body.
func JSONBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				if ct := r.Header.Get("Content-Type"); ct != "" {
					mt, _, err := mime.ParseMediaType(ct)
					if err != nil || mt != "application/json" {
						writeJSONError(w, http.StatusUnsupportedMediaType, "invalid_content_type", "Content-Type must be application/json")
						return
					}
				}
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
