package request

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teampulse/pkg/requestcontext"
)

func captureRequestID(into *string) http.Handler {
	return RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*into = requestcontext.RequestID(r.Context())
	}))
}

func TestRequestID(t *testing.T) {
	t.Run("generates a uuid when the header is absent", func(t *testing.T) {
		var got string
		w := httptest.NewRecorder()
		captureRequestID(&got).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, got, 36)
		assert.Equal(t, got, w.Header().Get(HeaderRequestID))
	})

	t.Run("keeps a well formed client id", func(t *testing.T) {
		var got string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "pulse-cli.42")
		captureRequestID(&got).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "pulse-cli.42", got)
	})

	t.Run("replaces a malformed client id", func(t *testing.T) {
		var got string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "two words")
		captureRequestID(&got).ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, "two words", got)
		assert.Len(t, got, 36)
	})
}

func TestIsValidRequestID(t *testing.T) {
	valid := []string{"abc123", "ABC-123", "trace.span_1", strings.Repeat("x", MaxRequestIDLength)}
	for _, id := range valid {
		assert.True(t, isValidRequestID(id), id)
	}
	invalid := []string{"", strings.Repeat("x", MaxRequestIDLength+1), "line\nbreak", `quo"te`}
	for _, id := range invalid {
		assert.False(t, isValidRequestID(id), id)
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	handler := Recovery(slog.New(slog.NewJSONHandler(&buf, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tenants/1/teams/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error","error_description":"Something went wrong"}`, w.Body.String())
	assert.Contains(t, buf.String(), "handler panicked")
	assert.Contains(t, buf.String(), "GET /api/tenants/1/teams/")
}

func TestJSONBody(t *testing.T) {
	var read []byte
	var readErr error
	handler := JSONBody(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		read, readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("rejects a form body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_content_type")
	})

	t.Run("allows an empty post without content type", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/verify/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("allows json with a charset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		require.NoError(t, readErr)
		assert.Equal(t, "{}", string(read))
	})

	t.Run("caps the body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"comment":"far too long for the cap"}`))
		req.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		var maxErr *http.MaxBytesError
		require.ErrorAs(t, readErr, &maxErr)
		assert.Equal(t, int64(16), maxErr.Limit)
	})
}

func TestAccess(t *testing.T) {
	var buf bytes.Buffer
	m := NewMetrics(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(Access(slog.New(slog.NewJSONHandler(&buf, nil)), m))
	r.Get("/health", func(http.ResponseWriter, *http.Request) {})
	r.Get("/api/tenants/{tenantID}/teams/", func(http.ResponseWriter, *http.Request) {})
	r.Delete("/api/tenants/{tenantID}/teams/{id}/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tenants/7/teams/", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tenants/8/teams/", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/tenants/8/teams/3/", nil))

	t.Run("labels by route pattern", func(t *testing.T) {
		// chi drops the trailing slash from the matched pattern.
		assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
		assert.InDelta(t, 0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/api/tenants/7/teams/", "2xx")), 0)
		assert.InDelta(t, 2, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/api/tenants/{tenantID}/teams", "2xx")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodDelete, "/api/tenants/{tenantID}/teams/{id}", "4xx")), 0)
	})

	t.Run("logs requests but not healthy probes", func(t *testing.T) {
		assert.Contains(t, buf.String(), `"path":"/api/tenants/8/teams/3/"`)
		assert.Contains(t, buf.String(), `"status":404`)

		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Empty(t, buf.String())
	})
}

func TestAccessWithoutMetrics(t *testing.T) {
	var buf bytes.Buffer
	handler := Access(slog.New(slog.NewJSONHandler(&buf, nil)), nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Contains(t, buf.String(), `"route":"unmatched"`)
	assert.Contains(t, buf.String(), `"bytes":5`)
}
