package quiz

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/fluidlab/core"
)

var (
	ErrSessionNotFound = core.NewNotFoundError("quiz attempt not found")
	ErrResultNotFound  = core.NewNotFoundError("quiz attempt not completed")
)

type (
	Repository interface {
		CreateSession(s *Session) error
		// WithSession runs fn on the stored session while holding the repository lock.
		WithSession(id string, fn func(s *Session) error) error
		AddResult(r Result) error
		Results() ([]Result, error)
		// GetResult returns the latest result of the attempt.
		GetResult(attemptID string) (Result, error)
	}

	Service struct {
		banks   *Banks
		repo    Repository
		metrics core.Metrics
	}
)

func NewService(banks *Banks, repo Repository, metrics core.Metrics) *Service {
	if metrics == nil {
		metrics = core.NopMetrics{}
	}
	return &Service{banks: banks, repo: repo, metrics: metrics}
}

func (svc *Service) Banks() []BankSummary {
	list := svc.banks.List()
	sums := make([]BankSummary, 0, len(list))
	for _, b := range list {
		sums = append(sums, b.Summary())
	}
	return sums
}

func (svc *Service) Start(experimentID string) (SessionView, error) {
	bank, err := svc.banks.Get(experimentID)
	if err != nil {
		return SessionView{}, err
	}
	sess, err := NewSession(uuid.NewString(), bank)
	if err != nil {
		return SessionView{}, errors.Wrap(err, "creating quiz session")
	}
	if err = svc.repo.CreateSession(sess); err != nil {
		return SessionView{}, err
	}
	return sess.View(), nil
}

func (svc *Service) update(id string, fn func(s *Session) error) (SessionView, error) {
	var view SessionView
	err := svc.repo.WithSession(id, func(s *Session) error {
		if err := fn(s); err != nil {
			return err
		}
		view = s.View()
		return nil
	})
	return view, err
}

func (svc *Service) Get(id string) (SessionView, error) {
	return svc.update(id, func(*Session) error { return nil })
}

func (svc *Service) Answer(id string, opt int) (SessionView, error) {
	return svc.update(id, func(s *Session) error {
		_, err := s.Answer(opt)
		return err
	})
}

func (svc *Service) ToggleExplanation(id string) (SessionView, error) {
	return svc.update(id, func(s *Session) error { return s.ToggleExplanation() })
}

// Next advances the attempt; completing it records the result.
func (svc *Service) Next(id string) (SessionView, error) {
	var (
		res  Result
		done bool
	)
	view, err := svc.update(id, func(s *Session) error {
		if err := s.Next(); err != nil {
			return err
		}
		res, done = s.Result()
		return nil
	})
	if err != nil || !done {
		return view, err
	}

	if err = svc.repo.AddResult(res); err != nil {
		return view, errors.Wrap(err, "recording quiz result")
	}
	svc.metrics.QuizCompleted(res.ExperimentID, res.Score, res.Total)
	return view, nil
}

func (svc *Service) Restart(id string) (SessionView, error) {
	return svc.update(id, func(s *Session) error {
		s.Restart()
		return nil
	})
}

func (svc *Service) Results() ([]Result, error) {
	return svc.repo.Results()
}

func (svc *Service) GetResult(attemptID string) (Result, error) {
	return svc.repo.GetResult(attemptID)
}
