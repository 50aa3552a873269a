package assistant

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/fluidlab/core"
)

var ErrPanelNotFound = core.NewNotFoundError("assistant panel not found")

type (
	Repository interface {
		SavePanel(p *Panel) error
		GetPanel(id string) (*Panel, error)
		DeletePanel(id string) (*Panel, error)
		AllPanels() ([]*Panel, error)
	}

	Service struct {
		provider Provider
		repo     Repository
		conf     core.AssistantConfig
		metrics  core.Metrics
	}
)

// NewService serves explanations from provider behind a circuit breaker.
func NewService(provider Provider, repo Repository, conf core.AssistantConfig, metrics core.Metrics, logger core.Logger) *Service {
	if metrics == nil {
		metrics = core.NopMetrics{}
	}
	return &Service{
		provider: NewBreakerProvider(provider, conf, logger),
		repo:     repo,
		conf:     conf,
		metrics:  metrics,
	}
}

// Explain resolves text right away, without a panel.
func (svc *Service) Explain(ctx context.Context, text string) (Explanation, error) {
	if err := validateText(text); err != nil {
		return Explanation{}, err
	}
	exp, err := svc.provider.Explain(ctx, text)
	svc.metrics.ExplanationServed(exp.Topic, err != nil)
	return exp, err
}

func (svc *Service) NewPanel() (PanelView, error) {
	p := NewPanel(uuid.NewString(), ProviderFunc(svc.Explain), svc.conf.DebounceWindow)
	if err := svc.repo.SavePanel(p); err != nil {
		return PanelView{}, err
	}
	return p.View(), nil
}

func (svc *Service) GetPanel(id string) (PanelView, error) {
	p, err := svc.repo.GetPanel(id)
	if err != nil {
		return PanelView{}, err
	}
	return p.View(), nil
}

func (svc *Service) Select(id, text string) (PanelView, error) {
	p, err := svc.repo.GetPanel(id)
	if err != nil {
		return PanelView{}, err
	}
	if err = p.Select(text); err != nil {
		return PanelView{}, err
	}
	return p.View(), nil
}

func (svc *Service) Clear(id string) (PanelView, error) {
	p, err := svc.repo.GetPanel(id)
	if err != nil {
		return PanelView{}, err
	}
	if err = p.Clear(); err != nil {
		return PanelView{}, err
	}
	return p.View(), nil
}

func (svc *Service) Open(ctx context.Context, id string) (PanelView, error) {
	p, err := svc.repo.GetPanel(id)
	if err != nil {
		return PanelView{}, err
	}
	return p.Open(ctx)
}

func (svc *Service) ClosePanel(id string) error {
	p, err := svc.repo.DeletePanel(id)
	if err != nil {
		return err
	}
	p.Close()
	return nil
}

// Shutdown closes every open panel.
func (svc *Service) Shutdown() error {
	panels, err := svc.repo.AllPanels()
	if err != nil {
		return err
	}
	for _, p := range panels {
		p.Close()
	}
	return nil
}
