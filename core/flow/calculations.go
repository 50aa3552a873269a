package flow

import (
	"math"

	"github.com/trezcool/fluidlab/core"
)

type (
	// FlowParameters are the inputs of a minor head loss calculation (SI units).
	FlowParameters struct {
		FlowRate float64 `json:"flow_rate" validate:"gt=0"` // m³/s
		Diameter float64 `json:"diameter" validate:"gt=0"`  // m
		Density  float64 `json:"density" validate:"gt=0"`   // kg/m³
		K        float64 `json:"k" validate:"gt=0"`         // loss coefficient
		P1       float64 `json:"p1" validate:"gte=0"`       // upstream pressure, Pa
	}

	FlowResults struct {
		Velocity      float64 `json:"velocity"`
		P1            float64 `json:"p1"`
		P2            float64 `json:"p2"`
		PressureDrop  float64 `json:"pressure_drop"`
		Length        float64 `json:"length"`
		K             float64 `json:"k"`
		IsWithinError bool    `json:"is_within_error"`
	}
)

// CalculateVelocity returns the mean velocity of flowRate through a circular pipe of the given diameter.
func CalculateVelocity(flowRate, diameter float64) float64 {
	r := diameter / 2
	return flowRate / (math.Pi * r * r)
}

// CalculatePressureDrop returns ½·k·ρ·v².
func CalculatePressureDrop(k, density, velocity float64) float64 {
	return 0.5 * k * density * velocity * velocity
}

// CalculateLength returns the equivalent length 2·Δp / (k·ρ·v²).
// Inputs are not guarded: a zero k, density or velocity yields Inf or NaN.
func CalculateLength(pressureDrop, k, density, velocity float64) float64 {
	return (2 * pressureDrop) / (k * density * velocity * velocity)
}

// Calculate derives all results from p.
func Calculate(p FlowParameters) FlowResults {
	v := CalculateVelocity(p.FlowRate, p.Diameter)
	dp := CalculatePressureDrop(p.K, p.Density, v)
	return FlowResults{
		Velocity:      v,
		P1:            p.P1,
		P2:            p.P1 - dp,
		PressureDrop:  dp,
		Length:        CalculateLength(dp, p.K, p.Density, v),
		K:             p.K,
		IsWithinError: true,
	}
}

// Check rejects results holding NaN or ±Inf, which valid but extreme parameters can produce.
func (r FlowResults) Check() error {
	var fields []core.FieldError
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"velocity", r.Velocity},
		{"p2", r.P2},
		{"pressure_drop", r.PressureDrop},
		{"length", r.Length},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			fields = append(fields, core.FieldError{Field: f.name, Error: "result is not a finite number"})
		}
	}
	if len(fields) > 0 {
		return core.NewValidationError(nil, fields...)
	}
	return nil
}
