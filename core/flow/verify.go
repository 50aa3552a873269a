package flow

import (
	"fmt"
	"math"

	"github.com/trezcool/fluidlab/core"
)

const DefaultTolerance = 0.05

// epsilon absorbs float noise so that an error of exactly the tolerance passes.
const epsilon = 1e-9

type (
	// Submission holds the values a student computed by hand for a component at a flow rate.
	Submission struct {
		Component    string  `json:"component" validate:"required,notblank"`
		FlowRate     float64 `json:"flow_rate" validate:"gt=0"`
		Velocity     float64 `json:"velocity"`
		P1           float64 `json:"p1"`
		P2           float64 `json:"p2"`
		PressureDrop float64 `json:"pressure_drop"`
		Length       float64 `json:"length"`
		WorkShown    string  `json:"work_shown"`
	}

	FieldCheck struct {
		Field         string  `json:"field"`
		Submitted     float64 `json:"submitted"`
		RelativeError float64 `json:"relative_error"`
		Passed        bool    `json:"passed"`
	}

	Verification struct {
		Expected FlowResults  `json:"-"`
		Checks   []FieldCheck `json:"checks"`
		Passed   bool         `json:"passed"`
	}
)

// RelativeError returns |actual-expected| / |expected|.
// When expected is zero the absolute difference is returned.
func RelativeError(actual, expected float64) float64 {
	diff := math.Abs(actual - expected)
	if expected == 0 {
		return diff
	}
	return diff / math.Abs(expected)
}

func WithinTolerance(actual, expected, tolerance float64) bool {
	relErr := RelativeError(actual, expected)
	if math.IsNaN(relErr) {
		return false
	}
	return relErr <= tolerance+epsilon
}

// Verify compares every submitted value against the expected results.
// Any field outside the tolerance rejects the whole submission with a *core.ValidationError.
func Verify(sub Submission, expected FlowResults, tolerance float64) (Verification, error) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	pairs := []struct {
		field     string
		submitted float64
		expected  float64
	}{
		{"velocity", sub.Velocity, expected.Velocity},
		{"p1", sub.P1, expected.P1},
		{"p2", sub.P2, expected.P2},
		{"pressure_drop", sub.PressureDrop, expected.PressureDrop},
		{"length", sub.Length, expected.Length},
	}

	ver := Verification{Expected: expected, Passed: true}
	var fields []core.FieldError
	for _, p := range pairs {
		ok := WithinTolerance(p.submitted, p.expected, tolerance)
		ver.Checks = append(ver.Checks, FieldCheck{
			Field:         p.field,
			Submitted:     p.submitted,
			RelativeError: RelativeError(p.submitted, p.expected),
			Passed:        ok,
		})
		if !ok {
			ver.Passed = false
			fields = append(fields, core.FieldError{
				Field: p.field,
				Error: fmt.Sprintf("value is outside the %g%% error margin", tolerance*100),
			})
		}
	}

	if !ver.Passed {
		return ver, core.NewValidationError(nil, fields...)
	}
	return ver, nil
}
