package flow

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/fluidlab/core"
)

var ErrWorkbenchNotFound = core.NewNotFoundError("workbench not found")

type (
	Repository interface {
		CreateWorkbench(wb Workbench) (Workbench, error)
		GetWorkbench(id string) (Workbench, error)
		// SaveCalculation appends calc to the workbench and numbers its iteration per component.
		SaveCalculation(workbenchID string, calc SavedCalculation) (SavedCalculation, error)
		ClearCalculations(workbenchID string) error
		CountCalculations() (map[string]int, error) // {component: count}
	}

	Service struct {
		repo      Repository
		metrics   core.Metrics
		tolerance float64
	}
)

func NewService(repo Repository, conf core.FlowConfig, metrics core.Metrics) *Service {
	tol := conf.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if metrics == nil {
		metrics = core.NopMetrics{}
	}
	return &Service{repo: repo, metrics: metrics, tolerance: tol}
}

func (svc *Service) Tolerance() float64 { return svc.tolerance }

func (svc *Service) Calculate(p FlowParameters) (FlowResults, error) {
	res := Calculate(p)
	if err := res.Check(); err != nil {
		return FlowResults{}, err
	}
	return res, nil
}

// Expected returns the results a component yields at flowRate.
func (svc *Service) Expected(component string, flowRate float64) (Component, FlowResults, error) {
	comp, err := GetComponent(component)
	if err != nil {
		return Component{}, FlowResults{}, err
	}
	res := Calculate(comp.Parameters(flowRate))
	if err = res.Check(); err != nil {
		return Component{}, FlowResults{}, err
	}
	return comp, res, nil
}

func (svc *Service) NewWorkbench() (Workbench, error) {
	return svc.repo.CreateWorkbench(Workbench{
		ID:        uuid.NewString(),
		CreatedAt: core.NowFunc(),
	})
}

func (svc *Service) GetWorkbench(id string) (Workbench, error) {
	return svc.repo.GetWorkbench(id)
}

// Verify checks sub and, when every field is within tolerance, saves the calculation to the workbench.
func (svc *Service) Verify(workbenchID string, sub Submission) (SavedCalculation, Verification, error) {
	if _, err := svc.repo.GetWorkbench(workbenchID); err != nil {
		return SavedCalculation{}, Verification{}, err
	}

	comp, expected, err := svc.Expected(sub.Component, sub.FlowRate)
	if err != nil {
		if err == ErrUnknownComponent {
			return SavedCalculation{}, Verification{}, core.NewValidationError(
				err, core.FieldError{Field: "component", Error: err.Error()},
			)
		}
		return SavedCalculation{}, Verification{}, err
	}

	ver, err := Verify(sub, expected, svc.tolerance)
	svc.metrics.CalculationVerified(comp.ID, err == nil)
	if err != nil {
		return SavedCalculation{}, ver, err
	}

	calc, err := svc.repo.SaveCalculation(workbenchID, SavedCalculation{
		ID:        uuid.NewString(),
		Component: comp.ID,
		Results:   expected,
		Timestamp: core.NowFunc(),
		WorkShown: core.CleanString(sub.WorkShown),
	})
	if err != nil {
		return SavedCalculation{}, ver, errors.Wrap(err, "saving calculation")
	}
	return calc, ver, nil
}

func (svc *Service) Reset(workbenchID string) error {
	return svc.repo.ClearCalculations(workbenchID)
}

// VerifiedCount returns the number of accepted calculations across all workbenches.
func (svc *Service) VerifiedCount() (int, error) {
	counts, err := svc.repo.CountCalculations()
	if err != nil {
		return 0, err
	}
	var total int
	for _, n := range counts {
		total += n
	}
	return total, nil
}
