package setup

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rivals-dev/rivals/backend/internal/middleware/ratelimiter"
	"github.com/rivals-dev/rivals/backend/internal/quota"
	"github.com/rivals-dev/rivals/backend/internal/storage/memory"
)

// registerForumMetrics exposes store and limiter sizes, sampled on scrape.
func registerForumMetrics(reg prometheus.Registerer, storage *memory.Storage, limiter *quota.Limiter, burst *ratelimiter.KeyedRateLimiter) {
	factory := promauto.With(reg)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "forum_threads",
		Help: "Number of threads in the store",
	}, func() float64 {
		return float64(storage.Stats().Threads)
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "forum_comments",
		Help: "Number of comments in the store",
	}, func() float64 {
		return float64(storage.Stats().Comments)
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "quota_buckets",
		Help: "Number of tracked daily quota buckets",
	}, func() float64 {
		return float64(limiter.Len())
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "burst_limiter_keys",
		Help: "Number of addresses tracked by the burst throttle",
	}, func() float64 {
		return float64(burst.Len())
	})
}
