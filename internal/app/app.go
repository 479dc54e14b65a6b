package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/market/docs"
	producthttp "github.com/tair/market/internal/product/delivery/http"
	streamhttp "github.com/tair/market/internal/stream/delivery/http"
	userhttp "github.com/tair/market/internal/user/delivery/http"
	"github.com/tair/market/internal/web"
	"github.com/tair/market/pkg/health"
	"github.com/tair/market/pkg/middleware"
)

// Handlers groups every HTTP surface the service mounts
type Handlers struct {
	Users    *userhttp.UserHandler
	Products *producthttp.ProductHandler
	Streams  *streamhttp.StreamHandler
	Pages    *web.Handler
	Authn    *middleware.Authenticator
	Metrics  *middleware.Metrics
}

// MiddlewareConfig holds configuration for router-wide middlewares
type MiddlewareConfig struct {
	EnableLogging  bool
	EnableTracing  bool
	AllowedOrigins []string
}

// DefaultMiddlewareConfig enables everything and accepts any origin without credentials
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		EnableLogging:  true,
		EnableTracing:  true,
		AllowedOrigins: []string{"*"},
	}
}

// RegisterMiddlewares registers the router-wide middlewares in order:
// tracing first so log lines carry the span, then logging, then identity.
func RegisterMiddlewares(router *mux.Router, cfg MiddlewareConfig, authn *middleware.Authenticator) {
	if cfg.EnableTracing {
		router.Use(middleware.Tracing("market-http"))
	}
	if cfg.EnableLogging {
		router.Use(middleware.Logging)
	}
	router.Use(authn.Optional)
}

// NewRouter mounts the API, the pages and the operational endpoints
func NewRouter(h Handlers, checker *health.Checker, gatherer prometheus.Gatherer, cfg MiddlewareConfig) http.Handler {
	router := mux.NewRouter()
	RegisterMiddlewares(router, cfg, h.Authn)

	h.Users.RegisterRoutes(router)
	h.Products.RegisterRoutes(router)
	h.Streams.RegisterRoutes(router)
	h.Pages.RegisterRoutes(router)

	router.HandleFunc("/health", checker.Handler()).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// session cookies only cross origins that are listed explicitly
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: !allowsAnyOrigin(cfg.AllowedOrigins),
	})
	return c.Handler(router)
}

// allowsAnyOrigin mirrors cors: an empty list or a "*" entry admits every origin
func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
