package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformobservability "github.com/weshockley/rest-service/platform/observability"
)

// RouterConfig зависимости роутера
type RouterConfig struct {
	// ServiceName используется в OTel span
	ServiceName string
	Logger      *zap.Logger
	// Metrics опционально; если задано - считает запросы и отдаёт /metrics
	Metrics *platformobservability.HTTPMetrics
	// Health handler для /health
	Health http.Handler
}

// NewRouter создаёт и настраивает HTTP роутер
func NewRouter(handler *Handler, cfg RouterConfig) chi.Router {
	router := chi.NewRouter()

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware)
	}

	router.Group(func(r chi.Router) {
		// trace context + span на каждый запрос, logger с trace_id в контексте
		if cfg.Logger != nil {
			r.Use(platformobservability.HTTPMiddleware(cfg.ServiceName, cfg.Logger))
		}
		r.Get("/greeting", handler.GetGreeting)
	})

	// служебные endpoints без трейсинга
	if cfg.Health != nil {
		router.Method(http.MethodGet, "/health", cfg.Health)
	}
	if cfg.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	return router
}
