package setup

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/rivals-dev/rivals/backend/internal/handler"
	"github.com/rivals-dev/rivals/backend/internal/middleware/ratelimiter"
	"github.com/rivals-dev/rivals/backend/internal/quota"
	"github.com/rivals-dev/rivals/backend/internal/service"
	"github.com/rivals-dev/rivals/backend/internal/storage/memory"
	"github.com/rivals-dev/rivals/backend/internal/utils"
	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/config"
	"github.com/rivals-dev/rivals/shared/ids"
	"github.com/rivals-dev/rivals/shared/logger"
	"github.com/rivals-dev/rivals/shared/markdown"
	"github.com/rivals-dev/rivals/shared/middleware/metrics"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config      *config.Config
	Storage     *memory.Storage
	Quota       *quota.Limiter
	Burst       *ratelimiter.KeyedRateLimiter
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTP
	Handler     *handler.Handler

	// nil unless quota_stats.redis_addr is set
	redis *redis.Client
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config, clk clock.Clock) *Dependencies {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	storage := memory.New(clk, ids.UUIDv7{}, cfg.Public.Pagination)
	rankings := memory.NewRankings(clk)
	limiter := quota.New(cfg.Public.Quota, clk)
	burst := ratelimiter.New(cfg.Public.Burst.RPS, cfg.Public.Burst.Burst, cfg.Public.Burst.IdleTTL)

	recorders := quota.Recorders{quota.NewPrometheusRecorder(registry)}
	health := healthChecks{storage}

	var rdb *redis.Client
	if stats := cfg.Public.QuotaStats; stats.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     stats.RedisAddr,
			Password: cfg.RedisPassword(),
			DB:       stats.RedisDB,
		})
		redisStats := quota.NewRedisStats(rdb, stats.Prefix, stats.TTL)
		recorders = append(recorders, redisStats)
		health = append(health, redisStats)
		logger.Log.Info("quota statistics enabled", "redis_addr", stats.RedisAddr, "prefix", stats.Prefix)
	}

	registerForumMetrics(registry, storage, limiter, burst)

	text := markdown.New()
	gate := service.NewPostGate(limiter, recorders, clk)
	validator := utils.New(cfg.Public.Content)

	thread := service.NewThread(storage, validator, text, gate)
	comment := service.NewComment(storage, validator, gate)
	rankingsService := service.NewRankings(rankings, clk)

	h := handler.New(thread, comment, rankingsService, gate, text, cfg, health)

	return &Dependencies{
		Config:      cfg,
		Storage:     storage,
		Quota:       limiter,
		Burst:       burst,
		Registry:    registry,
		HTTPMetrics: metrics.New(registry),
		Handler:     h,
		redis:       rdb,
	}
}

// StartBackground runs the janitors until ctx is cancelled.
func (d *Dependencies) StartBackground(ctx context.Context) {
	go d.Quota.StartBackgroundCleanup(ctx, d.Config.Public.Quota.CleanupInterval)
	go d.Burst.StartBackgroundCleanup(ctx, d.Config.Public.Burst.IdleTTL)
}

func (d *Dependencies) Close() error {
	if d.redis != nil {
		return d.redis.Close()
	}
	return nil
}

// healthChecks pings every dependency and reports all failures.
type healthChecks []handler.HealthChecker

func (hc healthChecks) Ping(ctx context.Context) error {
	var errs []error
	for _, c := range hc {
		if err := c.Ping(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
