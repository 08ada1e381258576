package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestPreflight(t *testing.T) {
	h := Preflight(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/whatever", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whatever", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestCORSSetsFixedHeaders(t *testing.T) {
	h := CORS()(okHandler)

	for _, origin := range []string{"", "http://localhost:5173"} {
		req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		for k, v := range corsHeaders {
			assert.Equal(t, v, rec.Header().Get(k), "origin %q header %s", origin, k)
		}
	}
}

func TestCORSKeepsVaryFromNegotiation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	CORS()(okHandler).ServeHTTP(rec, req)

	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPassesPreflightThrough(t *testing.T) {
	h := CORS()(Preflight(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/api/leads/1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRecoverer(t *testing.T) {
	var got error
	h := Recoverer(func(w http.ResponseWriter, _ *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusInternalServerError)
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Error(t, got)
	assert.Equal(t, "nil map", got.Error())
}

func TestRecovererRepanicsAbort(t *testing.T) {
	h := Recoverer(func(http.ResponseWriter, *http.Request, error) {
		t.Fatal("abort must not be handled")
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := chi.NewRouter()
	r.Use(RequestLogger(zap.New(core)))
	r.Get("/api/leads/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/leads/9", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/leads/9", fields["path"])
	assert.Equal(t, "/api/leads/{id}", fields["route"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/leads/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/leads/{id}", "200")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/leads/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/leads/2", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordLeadOperation(t *testing.T) {
	counter := leadOperations.WithLabelValues("delete", "not_found")
	before := testutil.ToFloat64(counter)

	RecordLeadOperation("delete", "not_found")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
