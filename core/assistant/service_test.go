package assistant_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/core/assistant"
	"github.com/trezcool/fluidlab/storage/database/inmem"
)

type servedMetrics struct {
	core.NopMetrics
	topics []string
	failed int
}

func (m *servedMetrics) ExplanationServed(topic string, failed bool) {
	if failed {
		m.failed++
		return
	}
	m.topics = append(m.topics, topic)
}

func setup() (*assistant.Service, *servedMetrics) {
	conf := core.AssistantConfig{DebounceWindow: time.Hour, BreakerFailures: 5, BreakerTimeout: time.Second}
	m := &servedMetrics{}
	repo := inmemdb.NewPanelRepository(inmemdb.Open())
	return assistant.NewService(assistant.MockProvider{}, repo, conf, m, nil), m
}

func TestService_Explain(t *testing.T) {
	svc, metrics := setup()

	exp, err := svc.Explain(context.Background(), "What is VISCOSITY?")
	require.NoError(t, err)
	assert.Equal(t, "viscosity", exp.Topic)

	_, err = svc.Explain(context.Background(), "")
	assert.True(t, core.IsValidation(err))

	assert.Equal(t, []string{"viscosity"}, metrics.topics)
}

func TestService_panels(t *testing.T) {
	svc, metrics := setup()
	defer func() { _ = svc.Shutdown() }()

	view, err := svc.NewPanel()
	require.NoError(t, err)
	assert.Equal(t, assistant.PanelIdle, view.State)

	_, err = svc.Select(view.ID, "head loss")
	require.NoError(t, err)

	view, err = svc.Open(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, assistant.PanelReady, view.State)
	assert.Equal(t, "head loss", view.Explanation.Topic)
	assert.Equal(t, []string{"head loss"}, metrics.topics)

	view, err = svc.Clear(view.ID)
	require.NoError(t, err)
	assert.Equal(t, assistant.PanelIdle, view.State)

	require.NoError(t, svc.ClosePanel(view.ID))
	_, err = svc.GetPanel(view.ID)
	assert.Equal(t, assistant.ErrPanelNotFound, err)
	assert.Equal(t, assistant.ErrPanelNotFound, svc.ClosePanel(view.ID))
}
