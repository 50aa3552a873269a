package certificate

import (
	"fmt"
	"net/mail"

	"github.com/google/uuid"

	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/core/catalog"
	"github.com/trezcool/fluidlab/core/quiz"
)

var ErrNotFound = core.NewNotFoundError("certificate not found")

type (
	Repository interface {
		CreateCertificate(cert Certificate) (Certificate, error)
		GetCertificate(id string) (Certificate, error)
		AllCertificates() ([]Certificate, error)
	}

	Experiments interface {
		Get(id string) (catalog.Experiment, error)
	}

	Results interface {
		GetResult(attemptID string) (quiz.Result, error)
	}

	Service struct {
		repo        Repository
		experiments Experiments
		results     Results
		mailer      core.EmailService
		metrics     core.Metrics
	}
)

func NewService(repo Repository, experiments Experiments, results Results, mailer core.EmailService, metrics core.Metrics) *Service {
	if metrics == nil {
		metrics = core.NopMetrics{}
	}
	return &Service{repo: repo, experiments: experiments, results: results, mailer: mailer, metrics: metrics}
}

func attemptError(msg string) error {
	return core.NewValidationError(nil, core.FieldError{Field: "attempt_id", Error: msg})
}

// Issue creates a certificate for a known experiment and mails it when an address is given.
// A quiz attempt, if referenced, must be complete and belong to the same experiment.
func (svc *Service) Issue(nc NewCertificate) (Certificate, error) {
	exp, err := svc.experiments.Get(nc.ExperimentID)
	if err != nil {
		if core.IsNotFound(err) {
			return Certificate{}, core.NewValidationError(err, core.FieldError{Field: "experiment_id", Error: err.Error()})
		}
		return Certificate{}, err
	}

	cert := Certificate{
		ID:              uuid.NewString(),
		RecipientName:   core.CleanString(nc.RecipientName),
		ExperimentID:    exp.ID,
		ExperimentTitle: exp.Title,
		IssuedAt:        core.NowFunc(),
		Filename:        Filename(exp.Title),
	}

	if nc.AttemptID != "" {
		res, err := svc.results.GetResult(nc.AttemptID)
		if err != nil {
			if core.IsNotFound(err) {
				return Certificate{}, attemptError("quiz attempt not found or not completed")
			}
			return Certificate{}, err
		}
		if res.ExperimentID != exp.ID {
			return Certificate{}, attemptError("quiz attempt belongs to another experiment")
		}
		cert.AttemptID = res.AttemptID
		cert.Score = res.Score
		cert.Total = res.Total
	}

	if cert, err = svc.repo.CreateCertificate(cert); err != nil {
		return Certificate{}, err
	}
	svc.metrics.CertificateIssued(cert.ExperimentID)

	if email := core.CleanString(nc.RecipientEmail, true /* lower */); email != "" && svc.mailer != nil {
		svc.mailer.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: cert.RecipientName, Address: email}},
			Subject:      fmt.Sprintf("Your %s certificate", cert.ExperimentTitle),
			TemplateName: "certificate",
			TemplateData: cert,
			CustomArgs: map[string]string{
				"certificate_id": cert.ID,
				"experiment_id":  cert.ExperimentID,
			},
		})
	}
	return cert, nil
}

func (svc *Service) Get(id string) (Certificate, error) {
	return svc.repo.GetCertificate(id)
}

func (svc *Service) All() ([]Certificate, error) {
	return svc.repo.AllCertificates()
}
