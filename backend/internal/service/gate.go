package service

import (
	"context"
	"fmt"

	"github.com/rivals-dev/rivals/backend/internal/quota"
	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/domain"
	internal_errors "github.com/rivals-dev/rivals/shared/errors"
	"github.com/rivals-dev/rivals/shared/logger"
)

type Quota interface {
	TryConsume(subject quota.Subject, tokens int) bool
	GetAllowance(subject quota.Subject) quota.Allowance
}

// PostGate charges one post against the caller's daily allowance.
type PostGate struct {
	quota    Quota
	recorder quota.Recorder
	clock    clock.Clock
}

func NewPostGate(q Quota, recorder quota.Recorder, clk clock.Clock) *PostGate {
	if recorder == nil {
		recorder = quota.NopRecorder{}
	}
	return &PostGate{quota: q, recorder: recorder, clock: clk}
}

// Admit consumes one token or returns ErrQuotaExceeded. The decision is
// recorded either way; recording failures are only logged.
func (g *PostGate) Admit(ctx context.Context, caller domain.Caller) error {
	subject := quota.Resolve(caller)
	allowed := g.quota.TryConsume(subject, 1)

	decision := quota.Decision{Subject: subject, Allowed: allowed, At: g.clock.Now()}
	if err := g.recorder.Record(ctx, decision); err != nil {
		logger.Log.Warn("failed to record quota decision", "subject_kind", subject.Kind, "error", err)
	}

	if !allowed {
		logger.Log.Info("daily post limit reached", "subject_kind", subject.Kind)
		return fmt.Errorf("%w for %s subject", internal_errors.ErrQuotaExceeded, subject.Kind)
	}
	return nil
}

func (g *PostGate) Allowance(caller domain.Caller) quota.Allowance {
	return g.quota.GetAllowance(quota.Resolve(caller))
}
