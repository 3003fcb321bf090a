package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teampulse/pkg/requestcontext"
)

func TestWithClock(t *testing.T) {
	midnight := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return midnight.Add(time.Duration(calls-1) * time.Second)
	}

	var reads []time.Time
	handler := WithClock(clock)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		reads = append(reads, requestcontext.Now(r.Context()), requestcontext.Now(r.Context()))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, reads, 2)
	assert.Equal(t, midnight, reads[0])
	assert.Equal(t, reads[0], reads[1], "a request crossing midnight still sees one day")

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, midnight.Add(time.Second), reads[2])
	assert.Equal(t, 2, calls)
}

func TestWithClockDefaultsToWallClock(t *testing.T) {
	var got time.Time
	handler := WithClock(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = requestcontext.Now(r.Context())
	}))

	before := time.Now()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, got.Before(before))
	assert.False(t, got.After(time.Now()))
}
