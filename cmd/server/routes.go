package main

import (
	"context"

	"github.com/erp/orderhub/internal/infrastructure/config"
	"github.com/erp/orderhub/internal/interfaces/http/middleware"
	"github.com/erp/orderhub/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// apiMiddleware builds the chain that guards /api/v1. Webhook routes are
// mounted at the root and never see it; they cap their own bodies and answer
// every delivery with 200.
func apiMiddleware(ctx context.Context, cfg config.HTTPConfig, authn gin.HandlerFunc, log *zap.Logger) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{middleware.BodyLimit(cfg.MaxBodySize)}
	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRequests, cfg.RateLimitWindow)
		chain = append(chain, middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.RateLimitRequests),
			zap.Duration("window", cfg.RateLimitWindow),
		)
	}
	if authn != nil {
		chain = append(chain, authn)
	}
	return chain
}

// mountRoutes registers the versioned API groups behind mw and the webhook
// groups at the engine root
func mountRoutes(engine *gin.Engine, mw []gin.HandlerFunc, api []router.RouteRegistrar, webhooks []*router.DomainGroup) *router.Router {
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAPIMiddleware(mw...),
	)
	for _, registrar := range api {
		r.Register(registrar)
	}
	for _, group := range webhooks {
		r.RegisterRoot(group)
	}
	r.Setup()
	return r
}
