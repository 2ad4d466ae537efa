package translator

import (
	"context"
	"errors"
	"time"

	"nkrane/internal/domain"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Breaker stops calling a failing provider until it recovers. While open,
// calls fail fast with a *domain.TransportError.
type Breaker struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next. The breaker opens after maxFailures consecutive
// failures and lets a trial call through after timeout.
func NewBreaker(next Translator, maxFailures uint32, timeout time.Duration, logger *zap.Logger) *Breaker {
	if maxFailures == 0 {
		maxFailures = 5
	}

	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// cancelled calls say nothing about provider health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Translator circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name implements Translator
func (b *Breaker) Name() string {
	return b.next.Name()
}

// Translate implements Translator
func (b *Breaker) Translate(ctx context.Context, text, source, target string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, source, target)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", &domain.TransportError{Provider: b.Name(), Err: err}
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// State reports the breaker state, for logging
func (b *Breaker) State() string {
	return b.cb.State().String()
}
