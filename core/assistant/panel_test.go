package assistant

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const window = 50 * time.Millisecond

func TestPanel_debouncedSelection(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := NewPanel("p1", MockProvider{}, window)
	defer p.Close()

	require.NoError(t, p.Select("visc"))
	require.NoError(t, p.Select("viscos"))
	require.NoError(t, p.Select("viscosity"))
	assert.Equal(t, PanelIdle, p.View().State, "selection is applied after the window")

	require.Eventually(t, func() bool { return p.View().State == PanelSelected }, time.Second, time.Millisecond)
	assert.Equal(t, "viscosity", p.View().Selection)
}

func TestPanel_OpenFlushesPendingSelection(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := NewPanel("p1", MockProvider{}, time.Hour)
	defer p.Close()

	require.NoError(t, p.Select("Reynolds"))
	v, err := p.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PanelReady, v.State)
	assert.Equal(t, "Reynolds", v.Selection)
	require.NotNil(t, v.Explanation)
	assert.Equal(t, "reynolds number", v.Explanation.Topic)
}

func TestPanel_OpenWithoutSelection(t *testing.T) {
	p := NewPanel("p1", MockProvider{}, window)
	defer p.Close()

	_, err := p.Open(context.Background())
	assert.Equal(t, ErrNothingSelected, err)
}

func TestPanel_Clear(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := NewPanel("p1", MockProvider{}, window)
	defer p.Close()

	require.NoError(t, p.Select("bernoulli"))
	_, err := p.Open(context.Background())
	require.NoError(t, err)

	require.NoError(t, p.Select("density"))
	require.NoError(t, p.Clear())
	time.Sleep(3 * window)

	v := p.View()
	assert.Equal(t, PanelIdle, v.State)
	assert.Empty(t, v.Selection)
	assert.Nil(t, v.Explanation)
}

func TestPanel_BlankSelectionClears(t *testing.T) {
	p := NewPanel("p1", MockProvider{}, time.Hour)
	defer p.Close()

	require.NoError(t, p.Select("bernoulli"))
	_, err := p.Open(context.Background())
	require.NoError(t, err)

	require.NoError(t, p.Select("  "))
	assert.Equal(t, PanelIdle, p.View().State)
}

func TestPanel_staleResultDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	slow := ProviderFunc(func(ctx context.Context, text string) (Explanation, error) {
		once.Do(func() { close(started) })
		<-release
		return Resolve(text), nil
	})
	p := NewPanel("p1", slow, time.Hour)
	defer p.Close()

	require.NoError(t, p.Select("viscosity"))
	done := make(chan PanelView)
	go func() {
		v, _ := p.Open(context.Background())
		done <- v
	}()
	<-started

	require.NoError(t, p.Clear())
	close(release)

	v := <-done
	assert.Equal(t, PanelIdle, v.State)
	assert.Nil(t, v.Explanation)
	assert.Equal(t, PanelIdle, p.View().State)
}

func TestPanel_providerError(t *testing.T) {
	p := NewPanel("p1", MockProvider{Delay: time.Minute}, time.Hour)
	defer p.Close()

	require.NoError(t, p.Select("viscosity"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := p.Open(ctx)
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, PanelError, v.State)
	assert.NotEmpty(t, v.Error)
}

func TestPanel_Close(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := NewPanel("p1", MockProvider{}, window)
	require.NoError(t, p.Select("viscosity"))
	p.Close()

	time.Sleep(3 * window)
	assert.Equal(t, PanelIdle, p.View().State)
	assert.Equal(t, ErrPanelClosed, p.Select("density"))
	_, err := p.Open(context.Background())
	assert.Equal(t, ErrPanelClosed, err)
}
