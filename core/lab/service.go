package lab

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/fluidlab/core"
)

// MassDensity is the only experiment with a lab workflow.
const MassDensity = "mass-density"

var (
	ErrRunNotFound = core.NewNotFoundError("lab run not found")
	ErrNoWorkflow  = core.NewNotFoundError("experiment has no lab workflow")
)

type (
	Repository interface {
		SaveRun(run *Run) error
		GetRun(id string) (*Run, error)
		AllRuns() ([]*Run, error)
	}

	Service struct {
		repo    Repository
		conf    core.LabConfig
		metrics core.Metrics
		logger  core.Logger
	}
)

func NewService(repo Repository, conf core.LabConfig, metrics core.Metrics, logger core.Logger) *Service {
	if metrics == nil {
		metrics = core.NopMetrics{}
	}
	return &Service{repo: repo, conf: conf, metrics: metrics, logger: logger}
}

func (svc *Service) stationCompleted(run *Run, kind StationKind, runComplete bool) {
	svc.metrics.StationCompleted(string(kind))
	if svc.logger != nil {
		svc.logger.Debug("lab station completed", map[string]interface{}{
			"run":          run.ID,
			"station":      string(kind),
			"run_complete": runComplete,
		})
	}
}

func (svc *Service) Start(experimentID string) (RunView, error) {
	if core.CleanString(experimentID, true /* lower */) != MassDensity {
		return RunView{}, ErrNoWorkflow
	}
	run, err := NewRun(uuid.NewString(), MassDensity, svc.conf, svc.stationCompleted)
	if err != nil {
		return RunView{}, errors.Wrap(err, "creating lab run")
	}
	if err = svc.repo.SaveRun(run); err != nil {
		return RunView{}, err
	}
	return run.View(), nil
}

func (svc *Service) Get(id string) (RunView, error) {
	run, err := svc.repo.GetRun(id)
	if err != nil {
		return RunView{}, err
	}
	return run.View(), nil
}

func (svc *Service) withRun(id string, fn func(run *Run) error) (RunView, error) {
	run, err := svc.repo.GetRun(id)
	if err != nil {
		return RunView{}, err
	}
	if err = fn(run); err != nil {
		return RunView{}, err
	}
	return run.View(), nil
}

func (svc *Service) Hover(id string, kind StationKind) (RunView, error) {
	return svc.withRun(id, func(run *Run) error { return run.Hover(kind) })
}

func (svc *Service) Leave(id string, kind StationKind) (RunView, error) {
	return svc.withRun(id, func(run *Run) error { return run.Leave(kind) })
}

func (svc *Service) Drop(id string, kind StationKind, item Item) (RunView, error) {
	return svc.withRun(id, func(run *Run) error { return run.Drop(kind, item) })
}

func (svc *Service) SetOvenParameters(id string, params OvenParameters) (RunView, error) {
	return svc.withRun(id, func(run *Run) error {
		return run.SetOvenParameters(params.Temperature, params.Time)
	})
}

func (svc *Service) Reset(id string) (RunView, error) {
	return svc.withRun(id, func(run *Run) error {
		run.Reset()
		return nil
	})
}

func (svc *Service) Cancel(id string) (RunView, error) {
	return svc.withRun(id, func(run *Run) error { return run.Cancel() })
}

// CompletedRuns counts the completed runs per experiment.
func (svc *Service) CompletedRuns() (map[string]int, error) {
	runs, err := svc.repo.AllRuns()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, run := range runs {
		if run.State() == Done {
			counts[run.ExperimentID]++
		}
	}
	return counts, nil
}

// Shutdown cancels every run still in progress.
func (svc *Service) Shutdown() error {
	runs, err := svc.repo.AllRuns()
	if err != nil {
		return err
	}
	for _, run := range runs {
		_ = run.Cancel()
	}
	return nil
}
