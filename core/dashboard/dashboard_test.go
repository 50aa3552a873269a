package dashboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/trezcool/fluidlab/core/catalog"
	"github.com/trezcool/fluidlab/core/certificate"
	"github.com/trezcool/fluidlab/core/quiz"
)

type stubCatalog []catalog.Experiment

func (c stubCatalog) List() []catalog.Experiment { return c }

type stubResults struct {
	results []quiz.Result
	err     error
}

func (s stubResults) Results() ([]quiz.Result, error) { return s.results, s.err }

type stubRuns map[string]int

func (s stubRuns) CompletedRuns() (map[string]int, error) { return s, nil }

type stubCalcs int

func (s stubCalcs) VerifiedCount() (int, error) { return int(s), nil }

type stubCerts []certificate.Certificate

func (s stubCerts) All() ([]certificate.Certificate, error) { return s, nil }

var experiments = stubCatalog{
	{ID: "mass-density", Title: "Mass Density", Icon: "beaker"},
	{ID: "bernoulli", Title: "Bernoulli", Icon: "wind"},
	{ID: "minor-head-loss", Title: "Minor Head Loss", Icon: "gauge"},
}

func TestService_Build(t *testing.T) {
	svc := NewService(
		experiments,
		stubResults{results: []quiz.Result{
			{ExperimentID: "bernoulli", Score: 1, Total: 3},
			{ExperimentID: "bernoulli", Score: 3, Total: 3},
			{ExperimentID: "bernoulli", Score: 2, Total: 3},
			{ExperimentID: "mass-density", Score: 0, Total: 4},
			{ExperimentID: "removed", Score: 4, Total: 4},
		}},
		stubRuns{"mass-density": 2},
		stubCalcs(5),
		stubCerts{{ExperimentID: "bernoulli"}, {ExperimentID: "bernoulli"}, {ExperimentID: "mass-density"}},
	)

	got, err := svc.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	want := Dashboard{
		Experiments: []ExperimentProgress{
			{ExperimentID: "mass-density", Title: "Mass Density", Icon: "beaker", QuizAttempts: 1, BestScore: 0, BestTotal: 4, LabRunsCompleted: 2, CertificatesIssued: 1},
			{ExperimentID: "bernoulli", Title: "Bernoulli", Icon: "wind", QuizAttempts: 3, BestScore: 3, BestTotal: 3, CertificatesIssued: 2},
			{ExperimentID: "minor-head-loss", Title: "Minor Head Loss", Icon: "gauge", VerifiedCalculations: 5},
		},
		Totals: Totals{QuizAttempts: 4, LabRunsCompleted: 2, VerifiedCalculations: 5, CertificatesIssued: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Build_error(t *testing.T) {
	svc := NewService(experiments, stubResults{err: errors.New("boom")}, stubRuns{}, stubCalcs(0), stubCerts{})
	if _, err := svc.Build(); err == nil {
		t.Error("Build() error = nil, want error")
	}
}

func TestBetter(t *testing.T) {
	tests := []struct {
		score, total, bestScore, bestTotal int
		want                               bool
	}{
		{3, 4, 2, 3, true},
		{2, 3, 3, 4, false},
		{2, 4, 1, 2, false},
	}
	for _, tt := range tests {
		if got := better(tt.score, tt.total, tt.bestScore, tt.bestTotal); got != tt.want {
			t.Errorf("better(%d/%d, %d/%d) = %v, want %v", tt.score, tt.total, tt.bestScore, tt.bestTotal, got, tt.want)
		}
	}
}
