package flow

import (
	"time"
)

type (
	SavedCalculation struct {
		ID        string      `json:"id"`
		Component string      `json:"component"`
		Iteration int         `json:"iteration"` // 1-based, per component
		Results   FlowResults `json:"results"`
		Timestamp time.Time   `json:"timestamp"`
		WorkShown string      `json:"work_shown,omitempty"`
	}

	// Workbench is the list of calculations a student got accepted.
	Workbench struct {
		ID           string             `json:"id"`
		Calculations []SavedCalculation `json:"calculations"`
		CreatedAt    time.Time          `json:"created_at"`
	}
)

func (wb Workbench) clone() Workbench {
	wb.Calculations = append([]SavedCalculation{}, wb.Calculations...)
	return wb
}

// Clone returns a copy that does not share the calculations slice.
func (wb Workbench) Clone() Workbench {
	return wb.clone()
}
