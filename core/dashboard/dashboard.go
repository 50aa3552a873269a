package dashboard

import (
	"github.com/pkg/errors"

	"github.com/trezcool/fluidlab/core/catalog"
	"github.com/trezcool/fluidlab/core/certificate"
	"github.com/trezcool/fluidlab/core/quiz"
)

// calculationsExperiment is the experiment verified flow calculations count towards.
const calculationsExperiment = "minor-head-loss"

type (
	ExperimentProgress struct {
		ExperimentID         string `json:"experiment_id"`
		Title                string `json:"title"`
		Icon                 string `json:"icon"`
		QuizAttempts         int    `json:"quiz_attempts"`
		BestScore            int    `json:"best_score"`
		BestTotal            int    `json:"best_total"`
		LabRunsCompleted     int    `json:"lab_runs_completed"`
		VerifiedCalculations int    `json:"verified_calculations"`
		CertificatesIssued   int    `json:"certificates_issued"`
	}

	Totals struct {
		QuizAttempts         int `json:"quiz_attempts"`
		LabRunsCompleted     int `json:"lab_runs_completed"`
		VerifiedCalculations int `json:"verified_calculations"`
		CertificatesIssued   int `json:"certificates_issued"`
	}

	Dashboard struct {
		Experiments []ExperimentProgress `json:"experiments"`
		Totals      Totals               `json:"totals"`
	}
)

type (
	Catalog interface {
		List() []catalog.Experiment
	}

	QuizResults interface {
		Results() ([]quiz.Result, error)
	}

	LabRuns interface {
		CompletedRuns() (map[string]int, error)
	}

	Calculations interface {
		VerifiedCount() (int, error)
	}

	Certificates interface {
		All() ([]certificate.Certificate, error)
	}

	Service struct {
		catalog      Catalog
		quizzes      QuizResults
		labs         LabRuns
		calculations Calculations
		certificates Certificates
	}
)

func NewService(cat Catalog, quizzes QuizResults, labs LabRuns, calcs Calculations, certs Certificates) *Service {
	return &Service{catalog: cat, quizzes: quizzes, labs: labs, calculations: calcs, certificates: certs}
}

// Build aggregates the progress recorded by every module, per experiment in catalog order.
func (svc *Service) Build() (Dashboard, error) {
	exps := svc.catalog.List()
	progress := make([]ExperimentProgress, len(exps))
	idx := make(map[string]int, len(exps))
	for i, exp := range exps {
		progress[i] = ExperimentProgress{ExperimentID: exp.ID, Title: exp.Title, Icon: exp.Icon}
		idx[exp.ID] = i
	}

	results, err := svc.quizzes.Results()
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying quiz results")
	}
	for _, res := range results {
		i, ok := idx[res.ExperimentID]
		if !ok {
			continue
		}
		p := &progress[i]
		p.QuizAttempts++
		if p.BestTotal == 0 || better(res.Score, res.Total, p.BestScore, p.BestTotal) {
			p.BestScore, p.BestTotal = res.Score, res.Total
		}
	}

	runs, err := svc.labs.CompletedRuns()
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying lab runs")
	}
	for expID, n := range runs {
		if i, ok := idx[expID]; ok {
			progress[i].LabRunsCompleted += n
		}
	}

	verified, err := svc.calculations.VerifiedCount()
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying calculations")
	}
	if i, ok := idx[calculationsExperiment]; ok {
		progress[i].VerifiedCalculations = verified
	}

	certs, err := svc.certificates.All()
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying certificates")
	}
	for _, c := range certs {
		if i, ok := idx[c.ExperimentID]; ok {
			progress[i].CertificatesIssued++
		}
	}

	d := Dashboard{Experiments: progress}
	for _, p := range progress {
		d.Totals.QuizAttempts += p.QuizAttempts
		d.Totals.LabRunsCompleted += p.LabRunsCompleted
		d.Totals.VerifiedCalculations += p.VerifiedCalculations
		d.Totals.CertificatesIssued += p.CertificatesIssued
	}
	return d, nil
}

// better compares score ratios without floating point.
func better(score, total, bestScore, bestTotal int) bool {
	return score*bestTotal > bestScore*total
}
