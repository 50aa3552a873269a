package flow

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/fluidlab/core"
)

func (p *FlowParameters) Validate(validate *validator.Validate) error {
	return validate.Struct(p)
}

func (s *Submission) Validate(validate *validator.Validate) error {
	s.Component = core.CleanString(s.Component, true /* lower */)
	s.WorkShown = core.CleanString(s.WorkShown)
	return validate.Struct(s)
}
