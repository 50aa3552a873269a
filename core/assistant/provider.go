package assistant

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"github.com/trezcool/fluidlab/core"
)

var ErrUnavailable = core.NewUnavailableError("the assistant is temporarily unavailable")

// Provider explains a selected term.
type Provider interface {
	Explain(ctx context.Context, text string) (Explanation, error)
}

type ProviderFunc func(ctx context.Context, text string) (Explanation, error)

func (f ProviderFunc) Explain(ctx context.Context, text string) (Explanation, error) {
	return f(ctx, text)
}

func validateText(text string) error {
	if core.CleanString(text) == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "text", Error: "this field cannot be blank"})
	}
	return nil
}

// MockProvider answers from the built-in topics after a simulated delay.
type MockProvider struct {
	Delay time.Duration
}

func (p MockProvider) Explain(ctx context.Context, text string) (Explanation, error) {
	if err := validateText(text); err != nil {
		return Explanation{}, err
	}
	if err := core.Sleep(ctx, p.Delay); err != nil {
		return Explanation{}, err
	}
	return Resolve(text), nil
}

// BreakerProvider stops calling its provider after repeated failures.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerProvider(next Provider, conf core.AssistantConfig, logger core.Logger) *BreakerProvider {
	failures := conf.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	st := gobreaker.Settings{
		Name:    "assistant",
		Timeout: conf.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			cause := errors.Cause(err)
			return err == nil || core.IsValidation(err) || cause == context.Canceled
		},
	}
	if logger != nil {
		st.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		}
	}
	return &BreakerProvider{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

func (p *BreakerProvider) Explain(ctx context.Context, text string) (Explanation, error) {
	res, err := p.cb.Execute(func() (interface{}, error) {
		return p.next.Explain(ctx, text)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return Explanation{}, ErrUnavailable
		}
		return Explanation{}, err
	}
	return res.(Explanation), nil
}

func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}
