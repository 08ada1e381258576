// Package router dispatches API requests through an ordered route table.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// Route binds a method and chi path pattern to a handler. Name labels the
// operation in metrics.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Handler handlers.HandlerFunc
}

// LeadRoutes is the API route table. OPTIONS never reaches it, the Preflight
// middleware answers those first.
func LeadRoutes(h *handlers.LeadHandler) []Route {
	return []Route{
		{Name: "list", Method: http.MethodGet, Pattern: "/api/leads", Handler: h.List},
		{Name: "get", Method: http.MethodGet, Pattern: "/api/leads/{id}", Handler: h.Get},
		{Name: "create", Method: http.MethodPost, Pattern: "/api/leads", Handler: h.Create},
		{Name: "update", Method: http.MethodPut, Pattern: "/api/leads/{id}", Handler: h.Update},
		{Name: "delete", Method: http.MethodDelete, Pattern: "/api/leads/{id}", Handler: h.Delete},
	}
}

// New builds the API handler. Requests matching no route, including a known
// path with another method, get 404 {"error":"Not found"}.
func New(routes []Route, ew handlers.ErrorWriter, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS())
	r.Use(middleware.Preflight)
	r.Use(middleware.Recoverer(ew.WriteError))

	for _, rt := range routes {
		r.Method(rt.Method, rt.Pattern, dispatch(rt, ew))
	}

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	return r
}

func dispatch(rt Route, ew handlers.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := rt.Handler(w, r)
		if err == nil {
			middleware.RecordLeadOperation(rt.Name, "ok")
			return
		}
		middleware.RecordLeadOperation(rt.Name, usecase.KindOf(err).String())
		ew.WriteError(w, r, err)
	}
}

// NewAdmin serves GET /health and GET /metrics.
func NewAdmin(health *handlers.HealthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/health", health.Handle)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}
