package lab

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/fluidlab/core"
)

type (
	StartRequest struct {
		ExperimentID string `json:"experiment_id" validate:"required,notblank"`
	}

	DropRequest struct {
		Item Item `json:"item" validate:"required,oneof=soil_sample pycnometer"`
	}

	// OvenParameters are entered by the operator once the soil sample is in the drying oven.
	// Wrong values are rejected by the run, not by the validator.
	OvenParameters struct {
		Temperature float64 `json:"temperature"` // °C
		Time        float64 `json:"time"`        // hours
	}
)

func (r *StartRequest) Validate(validate *validator.Validate) error {
	r.ExperimentID = core.CleanString(r.ExperimentID, true /* lower */)
	return validate.Struct(r)
}

func (r *DropRequest) Validate(validate *validator.Validate) error {
	r.Item = Item(core.CleanString(string(r.Item), true /* lower */))
	return validate.Struct(r)
}

func (p *OvenParameters) Validate(validate *validator.Validate) error {
	return validate.Struct(p)
}
