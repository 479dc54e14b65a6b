package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/tair/market/internal/product"
	productcommand "github.com/tair/market/internal/product/usecase/command"
	"github.com/tair/market/internal/stream"
	streamcommand "github.com/tair/market/internal/stream/usecase/command"
	"github.com/tair/market/internal/user"
	"github.com/tair/market/internal/web"
	"github.com/tair/market/kafka"
	"github.com/tair/market/pkg/auth"
	"github.com/tair/market/pkg/config"
	"github.com/tair/market/pkg/middleware"
)

// ProvideTokenManager builds the JWT signer from the auth settings
func ProvideTokenManager(cfg config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

// ProvideRateLimiter builds the redis limiter; a nil client disables it
func ProvideRateLimiter(client *redis.Client, cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window)
}

func ProvideMetrics(reg prometheus.Registerer) *middleware.Metrics {
	return middleware.NewMetrics(reg)
}

func ProvideProductEvents(p kafka.EventPublisher) productcommand.EventPublisher {
	return p
}

func ProvideStreamEvents(p kafka.EventPublisher) streamcommand.EventPublisher {
	return p
}

var InfraSet = wire.NewSet(
	ProvideTokenManager,
	ProvideRateLimiter,
	ProvideMetrics,
	ProvideProductEvents,
	ProvideStreamEvents,
	middleware.NewAuthenticator,
)

var ProviderSet = wire.NewSet(
	InfraSet,
	user.ProviderSet,
	product.ProviderSet,
	stream.ProviderSet,
	web.NewHandler,
	wire.Struct(new(Handlers), "*"),
)
