package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/damiaoterto/mussurana-cache/internal/api/handlers"
	"github.com/damiaoterto/mussurana-cache/internal/apierr"
	"github.com/damiaoterto/mussurana-cache/internal/middleware"
)

// NewRouter builds the operational listener: health, per-cache stats, and
// a Prometheus scrape endpoint served from gatherer.
func NewRouter(gatherer prometheus.Gatherer, caches ...handlers.CacheSource) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = apierr.NotFoundHandler()
	r.MethodNotAllowedHandler = apierr.MethodNotAllowedHandler()
	r.Use(middleware.RecoverWithSentry, middleware.SecurityHeaders)

	// Health
	r.HandleFunc("/healthz", handlers.Health(caches...)).Methods(http.MethodGet)

	// Cache stats
	admin := handlers.NewCacheAdminHandler(caches...)
	r.HandleFunc("/cache/stats", admin.ListCacheStats).Methods(http.MethodGet)
	r.HandleFunc("/cache/{name}/stats", admin.GetCacheStats).Methods(http.MethodGet)

	// Metrics
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}
