package quiz

import (
	"github.com/go-playground/validator/v10"
)

type AnswerRequest struct {
	Option *int `json:"option" validate:"required"`
}

func (r *AnswerRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}
