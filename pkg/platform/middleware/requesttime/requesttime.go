// Package requesttime pins one "now" per HTTP request. Handlers and services
// read it with requestcontext.Now so an entry's created_at and the team
// entries window agree within a request.
package requesttime

import (
	"net/http"
	"time"

	"teampulse/pkg/requestcontext"
)

// WithClock reads clock once per request and stores the result in the
// context. A nil clock means time.Now.
func WithClock(clock func() time.Time) func(http.Handler) http.Handler {
	if clock == nil {
		clock = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithNow(r.Context(), clock())))
		})
	}
}
