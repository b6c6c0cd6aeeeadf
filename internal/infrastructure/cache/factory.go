package cache

import (
	"context"
	"fmt"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/infrastructure/config"
	"go.uber.org/zap"
)

// IdempotencyStoreFactory picks the webhook dedupe store from configuration
type IdempotencyStoreFactory struct {
	redis                 config.RedisConfig
	keyPrefix             string
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// IdempotencyStoreFactoryOption is a functional option for configuring the factory
type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory store. Default is true.
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewIdempotencyStoreFactory creates a new factory
func NewIdempotencyStoreFactory(redisCfg config.RedisConfig, webhookCfg config.WebhookConfig, opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		redis:                 redisCfg,
		keyPrefix:             webhookCfg.RedisKeyPrefix,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns a Redis store when Redis is enabled and reachable,
// otherwise the in-memory store.
func (f *IdempotencyStoreFactory) CreateStore(ctx context.Context) (shared.IdempotencyStore, error) {
	if !f.redis.Enabled {
		f.logger.Info("Redis disabled, using in-memory webhook dedupe store")
		return NewInMemoryIdempotencyStore(0), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, RedisOptions{
		Host:      f.redis.Host,
		Port:      f.redis.Port,
		Password:  f.redis.Password,
		DB:        f.redis.DB,
		KeyPrefix: f.keyPrefix,
	})
	if err == nil {
		f.logger.Info("Using Redis webhook dedupe store",
			zap.String("host", f.redis.Host),
			zap.Int("port", f.redis.Port))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for webhook dedupe but unavailable: %w", err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory webhook dedupe store. "+
		"Redeliveries to other instances will not be detected.",
		zap.Error(err))
	return NewInMemoryIdempotencyStore(0), nil
}
