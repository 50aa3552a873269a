package lab

import (
	"fmt"
	"time"

	"github.com/trezcool/fluidlab/core"
)

type (
	StationKind  string
	StationState string
	Item         string
)

const (
	DryingOven    StationKind = "drying_oven"
	WeighingScale StationKind = "weighing_scale"
	WaterTap      StationKind = "water_tap"
	CoolingArea   StationKind = "cooling_area"
)

const (
	Idle       StationState = "idle"
	Active     StationState = "active"
	Occupied   StationState = "occupied"
	Processing StationState = "processing"
	Complete   StationState = "complete"
)

const (
	SoilSample Item = "soil_sample"
	Pycnometer Item = "pycnometer"
)

var (
	ErrStationNotFound = core.NewNotFoundError("station not found")
	ErrNotActive       = core.NewStateError("station is not ready to receive an item")
	ErrStationBusy     = core.NewStateError("station is occupied")
	ErrStationComplete = core.NewStateError("station already completed")
)

// ParseStationKind resolves a station name such as "drying_oven" or "drying-oven".
func ParseStationKind(s string) (StationKind, error) {
	k := StationKind(core.CleanString(s, true /* lower */))
	for _, kind := range []StationKind{DryingOven, WeighingScale, WaterTap, CoolingArea} {
		if k == kind || string(k) == dashed(kind) {
			return kind, nil
		}
	}
	return "", ErrStationNotFound
}

func dashed(k StationKind) string {
	b := []byte(k)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

// Station is one bench of a lab workflow. It is not safe for concurrent use; the Run owning it serialises access.
type Station struct {
	Kind     StationKind
	Name     string
	Accepts  Item
	Duration time.Duration

	state       StationState
	item        Item
	startedAt   time.Time
	completedAt time.Time
	task        *core.Task
}

func newStation(kind StationKind, name string, accepts Item, d time.Duration) *Station {
	return &Station{Kind: kind, Name: name, Accepts: accepts, Duration: d, state: Idle}
}

func (st *Station) State() StationState { return st.state }

// IsActive reports whether the station accepts a drop.
func (st *Station) IsActive() bool { return st.state == Active }

// IsOccupied reports whether an item sits on the station.
func (st *Station) IsOccupied() bool { return st.state == Occupied || st.state == Processing }

func (st *Station) IsComplete() bool { return st.state == Complete }

func (st *Station) hover() error {
	switch st.state {
	case Idle:
		st.state = Active
	case Active:
	case Complete:
		return ErrStationComplete
	default:
		return ErrStationBusy
	}
	return nil
}

func (st *Station) leave() {
	if st.state == Active {
		st.state = Idle
	}
}

// Drop places item on the station.
func (st *Station) Drop(item Item) error {
	if !st.IsActive() {
		return ErrNotActive
	}
	if item != st.Accepts {
		return core.NewValidationError(nil, core.FieldError{
			Field: "item",
			Error: fmt.Sprintf("%s only accepts %s", st.Name, st.Accepts),
		})
	}
	st.item = item
	st.state = Occupied
	return nil
}

// process starts the timed work; fn is called once Duration has elapsed unless the station is stopped first.
func (st *Station) process(now time.Time, fn func()) {
	st.state = Processing
	st.startedAt = now
	st.task = core.After(st.Duration, fn)
}

// finish marks the station complete. It reports false if the station was not processing.
func (st *Station) finish(now time.Time) bool {
	if st.state != Processing {
		return false
	}
	st.state = Complete
	st.completedAt = now
	st.task = nil
	return true
}

// stop cancels pending work. The completion callback never runs afterwards.
func (st *Station) stop() {
	if st.task != nil {
		st.task.Cancel()
		st.task = nil
	}
}

// Progress is the elapsed share of the processing time, in [0, 1].
func (st *Station) Progress(now time.Time) float64 {
	switch st.state {
	case Complete:
		return 1
	case Processing:
		if st.Duration <= 0 {
			return 1
		}
		p := float64(now.Sub(st.startedAt)) / float64(st.Duration)
		if p < 0 {
			return 0
		}
		if p > 1 {
			return 1
		}
		return p
	}
	return 0
}

type StationView struct {
	Kind        StationKind  `json:"kind"`
	Name        string       `json:"name"`
	Accepts     Item         `json:"accepts"`
	State       StationState `json:"state"`
	Current     bool         `json:"current"`
	Item        Item         `json:"item,omitempty"`
	Progress    float64      `json:"progress"`
	StartedAt   *time.Time   `json:"started_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

func (st *Station) view(now time.Time, current bool) StationView {
	v := StationView{
		Kind:     st.Kind,
		Name:     st.Name,
		Accepts:  st.Accepts,
		State:    st.state,
		Current:  current,
		Item:     st.item,
		Progress: st.Progress(now),
	}
	if !st.startedAt.IsZero() {
		t := st.startedAt
		v.StartedAt = &t
	}
	if !st.completedAt.IsZero() {
		t := st.completedAt
		v.CompletedAt = &t
	}
	return v
}
