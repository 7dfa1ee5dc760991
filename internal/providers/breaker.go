package providers

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/metrics"
)

const (
	breakerFailures = 3
	breakerCooldown = 5 * time.Minute
)

// breaker guards an Adapter with a circuit breaker so a provider that keeps
// failing is skipped until its cooldown passes.
type breaker struct {
	next Adapter
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps a with a circuit breaker that opens after consecutive failures.
func WithBreaker(a Adapter, logger *zap.Logger) Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(a.Provider()),
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		IsSuccessful: func(err error) bool {
			// A cancelled caller says nothing about the provider.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("provider circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &breaker{next: a, cb: cb}
}

func (b *breaker) Provider() activity.Provider { return b.next.Provider() }

func (b *breaker) Fetch(ctx context.Context) ([]activity.Record, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.Fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return res.([]activity.Record), nil
}

// outcome classifies a fetch error for metrics.
func outcome(err error) string {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return metrics.OutcomeOpen
	}
	return metrics.OutcomeError
}
