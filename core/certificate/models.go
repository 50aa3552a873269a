package certificate

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/fluidlab/core"
)

type (
	Certificate struct {
		ID              string    `json:"id"`
		RecipientName   string    `json:"recipient_name"`
		ExperimentID    string    `json:"experiment_id"`
		ExperimentTitle string    `json:"experiment_title"`
		AttemptID       string    `json:"attempt_id,omitempty"`
		Score           int       `json:"score"`
		Total           int       `json:"total"`
		IssuedAt        time.Time `json:"issued_at"`
		Filename        string    `json:"filename"`
	}

	NewCertificate struct {
		RecipientName  string `json:"recipient_name" validate:"required,notblank,max=100"`
		RecipientEmail string `json:"recipient_email" validate:"omitempty,email"`
		ExperimentID   string `json:"experiment_id" validate:"required,notblank"`
		AttemptID      string `json:"attempt_id" validate:"omitempty,uuid"`
	}
)

// Filename returns the name the rendered PDF is saved under: the title without spaces.
func Filename(experimentTitle string) string {
	return strings.Join(strings.Fields(experimentTitle), "") + "_Certificate.pdf"
}

func (nc *NewCertificate) Validate(validate *validator.Validate) error {
	nc.RecipientName = core.CleanString(nc.RecipientName)
	nc.RecipientEmail = core.CleanString(nc.RecipientEmail, true /* lower */)
	nc.ExperimentID = core.CleanString(nc.ExperimentID, true /* lower */)
	nc.AttemptID = core.CleanString(nc.AttemptID)
	return validate.Struct(nc)
}
