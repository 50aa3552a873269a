package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/trezcool/fluidlab/core"
)

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name     string
		actual   float64
		expected float64
		want     bool
	}{
		{name: "exact", actual: 100, expected: 100, want: true},
		{name: "+5%", actual: 105, expected: 100, want: true},
		{name: "-5%", actual: 95, expected: 100, want: true},
		{name: "+5.01%", actual: 105.01, expected: 100, want: false},
		{name: "-5.01%", actual: 94.99, expected: 100, want: false},
		{name: "negative expected", actual: -104, expected: -100, want: true},
		{name: "zero expected, small diff", actual: 0.01, expected: 0, want: true},
		{name: "zero expected, large diff", actual: 1, expected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.actual, tt.expected, DefaultTolerance); got != tt.want {
				t.Errorf("WithinTolerance(%v, %v) = %v, want %v", tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}

func submissionFrom(res FlowResults) Submission {
	return Submission{
		Component:    "bend",
		FlowRate:     0.0002,
		Velocity:     res.Velocity,
		P1:           res.P1,
		P2:           res.P2,
		PressureDrop: res.PressureDrop,
		Length:       res.Length,
	}
}

func TestVerify(t *testing.T) {
	comp, _ := GetComponent("bend")
	expected := Calculate(comp.Parameters(0.0002))

	tests := []struct {
		name       string
		modify     func(s *Submission)
		wantFields []string
	}{
		{name: "exact", modify: func(s *Submission) {}},
		{name: "all at +5%", modify: func(s *Submission) {
			s.Velocity *= 1.05
			s.PressureDrop *= 1.05
			s.Length *= 1.05
		}},
		{name: "velocity at +5.01%", modify: func(s *Submission) { s.Velocity *= 1.0501 }, wantFields: []string{"velocity"}},
		{name: "two fields off", modify: func(s *Submission) {
			s.PressureDrop *= 2
			s.Length = 0.06
		}, wantFields: []string{"pressure_drop", "length"}},
		{name: "p2 sign flipped", modify: func(s *Submission) { s.P2 = -s.P2 }, wantFields: []string{"p2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := submissionFrom(expected)
			tt.modify(&sub)

			ver, err := Verify(sub, expected, DefaultTolerance)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Verify() error = %v, want nil", err)
				}
				if !ver.Passed {
					t.Error("Verify() passed = false, want true")
				}
				return
			}

			if !core.IsValidation(err) {
				t.Fatalf("Verify() error = %v, want validation error", err)
			}
			if ver.Passed {
				t.Error("Verify() passed = true, want false")
			}
			var got []string
			for _, f := range err.(*core.ValidationError).Fields {
				got = append(got, f.Field)
			}
			if diff := cmp.Diff(tt.wantFields, got); diff != "" {
				t.Errorf("Verify() fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVerify_defaultTolerance(t *testing.T) {
	comp, _ := GetComponent("valve")
	expected := Calculate(comp.Parameters(0.0001))
	sub := submissionFrom(expected)
	sub.Velocity *= 1.049

	if _, err := Verify(sub, expected, 0); err != nil {
		t.Errorf("Verify() with zero tolerance falls back to default, got error %v", err)
	}
}
