package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/core/flow"
	"github.com/trezcool/fluidlab/storage/database/inmem"
)

type verifyMetrics struct {
	core.NopMetrics
	accepted, rejected int
}

func (m *verifyMetrics) CalculationVerified(_ string, accepted bool) {
	if accepted {
		m.accepted++
	} else {
		m.rejected++
	}
}

func setup(t *testing.T) (*flow.Service, flow.Workbench, *verifyMetrics) {
	m := &verifyMetrics{}
	svc := flow.NewService(inmemdb.NewWorkbenchRepository(inmemdb.Open()), core.FlowConfig{Tolerance: 0.05}, m)
	wb, err := svc.NewWorkbench()
	require.NoError(t, err)
	return svc, wb, m
}

func submission(t *testing.T, svc *flow.Service, component string, flowRate float64) flow.Submission {
	_, res, err := svc.Expected(component, flowRate)
	require.NoError(t, err)
	return flow.Submission{
		Component:    component,
		FlowRate:     flowRate,
		Velocity:     res.Velocity,
		P1:           res.P1,
		P2:           res.P2,
		PressureDrop: res.PressureDrop,
		Length:       res.Length,
		WorkShown:    "  v = Q/A  ",
	}
}

func TestService_Verify_iterations(t *testing.T) {
	svc, wb, metrics := setup(t)

	steps := []struct {
		component     string
		flowRate      float64
		wantIteration int
	}{
		{"bend", 0.0001, 1},
		{"bend", 0.00015, 2},
		{"valve", 0.0001, 1},
		{"bend", 0.0002, 3},
		{"reducer", 0.0002, 1},
	}
	for _, s := range steps {
		calc, ver, err := svc.Verify(wb.ID, submission(t, svc, s.component, s.flowRate))
		require.NoError(t, err)
		assert.True(t, ver.Passed)
		assert.Equal(t, s.wantIteration, calc.Iteration, "%s@%v", s.component, s.flowRate)
		assert.NotEmpty(t, calc.ID)
		assert.Equal(t, "v = Q/A", calc.WorkShown)
		assert.True(t, calc.Results.IsWithinError)
	}

	got, err := svc.GetWorkbench(wb.ID)
	require.NoError(t, err)
	assert.Len(t, got.Calculations, len(steps))
	assert.Equal(t, len(steps), metrics.accepted)

	n, err := svc.VerifiedCount()
	require.NoError(t, err)
	assert.Equal(t, len(steps), n)
}

func TestService_Verify_rejected(t *testing.T) {
	svc, wb, metrics := setup(t)

	sub := submission(t, svc, "reducer", 0.0002)
	sub.Velocity *= 1.0501
	_, ver, err := svc.Verify(wb.ID, sub)
	require.True(t, core.IsValidation(err))
	assert.False(t, ver.Passed)
	assert.Equal(t, 1, metrics.rejected)

	got, err := svc.GetWorkbench(wb.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Calculations, "no partial credit")
}

func TestService_Verify_errors(t *testing.T) {
	svc, wb, _ := setup(t)

	_, _, err := svc.Verify("missing", flow.Submission{Component: "bend", FlowRate: 0.0001})
	assert.Equal(t, flow.ErrWorkbenchNotFound, err)

	_, _, err = svc.Verify(wb.ID, flow.Submission{Component: "elbow", FlowRate: 0.0001})
	require.True(t, core.IsValidation(err))
	assert.Equal(t, "component", err.(*core.ValidationError).Fields[0].Field)
}

func TestService_Reset(t *testing.T) {
	svc, wb, _ := setup(t)
	_, _, err := svc.Verify(wb.ID, submission(t, svc, "valve", 0.0002))
	require.NoError(t, err)

	require.NoError(t, svc.Reset(wb.ID))
	got, err := svc.GetWorkbench(wb.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Calculations)

	// iterations start over
	calc, _, err := svc.Verify(wb.ID, submission(t, svc, "valve", 0.0002))
	require.NoError(t, err)
	assert.Equal(t, 1, calc.Iteration)

	assert.Equal(t, flow.ErrWorkbenchNotFound, svc.Reset("missing"))
}

func TestService_defaults(t *testing.T) {
	svc := flow.NewService(inmemdb.NewWorkbenchRepository(inmemdb.Open()), core.FlowConfig{}, nil)
	assert.Equal(t, flow.DefaultTolerance, svc.Tolerance())
}
