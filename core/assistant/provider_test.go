package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/fluidlab/core"
)

func TestMockProvider_Explain(t *testing.T) {
	p := MockProvider{Delay: 10 * time.Millisecond}

	exp, err := p.Explain(context.Background(), "Viscosity")
	require.NoError(t, err)
	assert.Equal(t, "viscosity", exp.Topic)

	_, err = p.Explain(context.Background(), "   ")
	assert.True(t, core.IsValidation(err))
}

func TestMockProvider_cancelled(t *testing.T) {
	p := MockProvider{Delay: time.Minute}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Explain(ctx, "viscosity")
	assert.Equal(t, context.DeadlineExceeded, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBreakerProvider(t *testing.T) {
	errBoom := errors.New("boom")
	var calls int
	failing := ProviderFunc(func(ctx context.Context, text string) (Explanation, error) {
		calls++
		if text == "bad" {
			return Explanation{}, core.NewValidationError(nil, core.FieldError{Field: "text", Error: "bad"})
		}
		return Explanation{}, errBoom
	})
	conf := core.AssistantConfig{BreakerFailures: 2, BreakerTimeout: time.Minute}
	p := NewBreakerProvider(failing, conf, nil)

	// validation errors do not count as failures
	for i := 0; i < 3; i++ {
		_, err := p.Explain(context.Background(), "bad")
		require.True(t, core.IsValidation(err))
	}
	assert.Equal(t, gobreaker.StateClosed, p.State())

	for i := 0; i < 2; i++ {
		_, err := p.Explain(context.Background(), "x")
		require.Equal(t, errBoom, err)
	}
	assert.Equal(t, gobreaker.StateOpen, p.State())

	before := calls
	_, err := p.Explain(context.Background(), "x")
	assert.True(t, core.IsUnavailable(err))
	assert.Equal(t, before, calls, "open breaker must not call the provider")
}
