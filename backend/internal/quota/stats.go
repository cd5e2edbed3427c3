package quota

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

// Decision is one TryConsume outcome as seen by the caller.
type Decision struct {
	Subject Subject
	Allowed bool
	At      time.Time
}

func (d Decision) result() string {
	if d.Allowed {
		return "allowed"
	}
	return "denied"
}

// Recorder persists decisions for observability. Callers treat errors as
// best-effort and never fail a request on them.
type Recorder interface {
	Record(ctx context.Context, d Decision) error
}

type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Decision) error { return nil }

// Recorders fans a decision out to every recorder and joins their errors.
type Recorders []Recorder

func (rs Recorders) Record(ctx context.Context, d Decision) error {
	var errs []error
	for _, r := range rs {
		if err := r.Record(ctx, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type PrometheusRecorder struct {
	decisions *prometheus.CounterVec
}

func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	return &PrometheusRecorder{
		decisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "quota_decisions_total",
				Help: "Daily post quota decisions by subject kind and result",
			},
			[]string{"subject_kind", "result"},
		),
	}
}

func (p *PrometheusRecorder) Record(_ context.Context, d Decision) error {
	p.decisions.WithLabelValues(string(d.Subject.Kind), d.result()).Inc()
	return nil
}

// RedisStats keeps cumulative and per-minute decision counters in redis
// hashes under prefix: "<prefix>:total" and "<prefix>:minute:<yyyymmddhhmm>".
// Subject keys are never written, only subject kinds.
type RedisStats struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStats(rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisStats {
	prefix = strings.Trim(prefix, ":")
	if prefix == "" {
		prefix = "quota:stats"
	}
	return &RedisStats{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStats) TotalKey() string {
	return s.prefix + ":total"
}

func (s *RedisStats) MinuteKey(at time.Time) string {
	return fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
}

func (s *RedisStats) Record(ctx context.Context, d Decision) error {
	at := d.At
	if at.IsZero() {
		at = time.Now()
	}
	field := strings.ToLower(string(d.Subject.Kind)) + ":" + d.result()
	minuteKey := s.MinuteKey(at)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.TotalKey(), field, 1)
	pipe.HIncrBy(ctx, minuteKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, minuteKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record quota decision: %w", err)
	}
	return nil
}

// Totals reads the cumulative counters, keyed "<kind>:<result>".
func (s *RedisStats) Totals(ctx context.Context) (map[string]int64, error) {
	raw, err := s.rdb.HGetAll(ctx, s.TotalKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("read quota totals: %w", err)
	}
	out := make(map[string]int64, len(raw))
	for field, v := range raw {
		var n int64
		if _, err := fmt.Sscan(v, &n); err != nil {
			return nil, fmt.Errorf("parse quota total %q: %w", field, err)
		}
		out[field] = n
	}
	return out, nil
}

func (s *RedisStats) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
