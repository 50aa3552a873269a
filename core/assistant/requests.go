package assistant

import (
	"github.com/go-playground/validator/v10"
)

type (
	ExplainRequest struct {
		Text string `json:"text" validate:"required,notblank,max=500"`
	}

	// SelectionRequest may carry blank text, which clears the panel.
	SelectionRequest struct {
		Text string `json:"text" validate:"max=500"`
	}
)

func (r *ExplainRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r *SelectionRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}
