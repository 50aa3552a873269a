package lab

import (
	"fmt"
	"sync"
	"time"

	"github.com/kat-co/vala"

	"github.com/trezcool/fluidlab/core"
)

type RunState string

const (
	InProgress RunState = "in_progress"
	Done       RunState = "complete"
	Cancelled  RunState = "cancelled"
)

var (
	ErrRunClosed     = core.NewStateError("lab run is no longer in progress")
	ErrStationLocked = core.NewStateError("complete the previous stations first")
	ErrOvenNotLoaded = core.NewStateError("place the soil sample in the drying oven first")
)

// CompletionFunc is notified, outside of any lock, each time a station completes.
type CompletionFunc func(run *Run, station StationKind, runComplete bool)

// Run sequences the stations of a lab workflow: exactly one station is current and only
// the current one can be hovered or loaded. A station completing moves the run to the next.
type Run struct {
	ID           string
	ExperimentID string

	mu          sync.Mutex
	conf        core.LabConfig
	onComplete  CompletionFunc
	stations    []*Station
	current     int
	state       RunState
	seq         int // bumped on reset and cancel; stale completions are dropped
	startedAt   time.Time
	completedAt time.Time
}

func massDensityStations(conf core.LabConfig) []*Station {
	return []*Station{
		newStation(DryingOven, "Drying Oven", SoilSample, conf.OvenDuration),
		newStation(WeighingScale, "Weighing Scale", SoilSample, conf.ScaleDuration),
		newStation(WaterTap, "Water Tap", Pycnometer, conf.TapDuration),
		newStation(CoolingArea, "Cooling Area", Pycnometer, conf.CoolingDuration),
	}
}

func NewRun(id, experimentID string, conf core.LabConfig, onComplete CompletionFunc) (*Run, error) {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(id, "id"),
		vala.StringNotEmpty(experimentID, "experimentID"),
	).Check(); err != nil {
		return nil, err
	}
	return &Run{
		ID:           id,
		ExperimentID: experimentID,
		conf:         conf,
		onComplete:   onComplete,
		stations:     massDensityStations(conf),
		state:        InProgress,
		startedAt:    core.NowFunc(),
	}, nil
}

func (r *Run) station(kind StationKind) (int, *Station, error) {
	for i, st := range r.stations {
		if st.Kind == kind {
			return i, st, nil
		}
	}
	return -1, nil, ErrStationNotFound
}

// reachable returns the station if it is the current one.
func (r *Run) reachable(kind StationKind) (int, *Station, error) {
	if r.state != InProgress {
		return -1, nil, ErrRunClosed
	}
	idx, st, err := r.station(kind)
	if err != nil {
		return -1, nil, err
	}
	if st.IsComplete() {
		return -1, nil, ErrStationComplete
	}
	if idx != r.current {
		return -1, nil, ErrStationLocked
	}
	return idx, st, nil
}

func (r *Run) Hover(kind StationKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, st, err := r.reachable(kind)
	if err != nil {
		return err
	}
	return st.hover()
}

func (r *Run) Leave(kind StationKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, st, err := r.reachable(kind)
	if err != nil {
		return err
	}
	st.leave()
	return nil
}

// Drop loads item on the station. Every station but the drying oven starts processing right away;
// the oven waits for its parameters.
func (r *Run) Drop(kind StationKind, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, st, err := r.reachable(kind)
	if err != nil {
		return err
	}
	if err = st.Drop(item); err != nil {
		return err
	}
	if kind != DryingOven {
		r.process(idx, st)
	}
	return nil
}

// SetOvenParameters starts heating once the operator entered the required temperature (°C) and time (h).
func (r *Run) SetOvenParameters(temperature, hours float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, st, err := r.reachable(DryingOven)
	if err != nil {
		return err
	}
	if st.State() != Occupied {
		return ErrOvenNotLoaded
	}

	var fields []core.FieldError
	if !core.AlmostEqual(temperature, r.conf.OvenTemperature) {
		fields = append(fields, core.FieldError{
			Field: "temperature",
			Error: fmt.Sprintf("the oven must be set to %g°C", r.conf.OvenTemperature),
		})
	}
	if !core.AlmostEqual(hours, r.conf.OvenHours) {
		fields = append(fields, core.FieldError{
			Field: "time",
			Error: fmt.Sprintf("the sample must dry for %g hours", r.conf.OvenHours),
		})
	}
	if len(fields) > 0 {
		return core.NewValidationError(nil, fields...)
	}

	r.process(idx, st)
	return nil
}

// process must be called with r.mu held.
func (r *Run) process(idx int, st *Station) {
	seq := r.seq
	st.process(core.NowFunc(), func() { r.finish(idx, seq) })
}

func (r *Run) finish(idx, seq int) {
	r.mu.Lock()
	if seq != r.seq || r.state != InProgress || idx != r.current {
		r.mu.Unlock()
		return
	}
	st := r.stations[idx]
	now := core.NowFunc()
	if !st.finish(now) {
		r.mu.Unlock()
		return
	}
	r.current++
	runComplete := r.current == len(r.stations)
	if runComplete {
		r.state = Done
		r.completedAt = now
	}
	notify := r.onComplete
	r.mu.Unlock()

	if notify != nil {
		notify(r, st.Kind, runComplete)
	}
}

func (r *Run) stopAll() {
	r.seq++
	for _, st := range r.stations {
		st.stop()
	}
}

// Reset cancels pending work and starts over with fresh stations.
func (r *Run) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopAll()
	r.stations = massDensityStations(r.conf)
	r.current = 0
	r.state = InProgress
	r.startedAt = core.NowFunc()
	r.completedAt = time.Time{}
}

// Cancel stops the run; no station completes afterwards.
func (r *Run) Cancel() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != InProgress {
		return ErrRunClosed
	}
	r.stopAll()
	r.state = Cancelled
	return nil
}

func (r *Run) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

type RunView struct {
	ID                     string        `json:"id"`
	ExperimentID           string        `json:"experiment_id"`
	State                  RunState      `json:"state"`
	CurrentStation         StationKind   `json:"current_station,omitempty"`
	AwaitingOvenParameters bool          `json:"awaiting_oven_parameters"`
	Stations               []StationView `json:"stations"`
	StartedAt              time.Time     `json:"started_at"`
	CompletedAt            *time.Time    `json:"completed_at,omitempty"`
}

func (r *Run) View() RunView {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := core.NowFunc()
	v := RunView{
		ID:           r.ID,
		ExperimentID: r.ExperimentID,
		State:        r.state,
		Stations:     make([]StationView, 0, len(r.stations)),
		StartedAt:    r.startedAt,
	}
	for i, st := range r.stations {
		current := r.state == InProgress && i == r.current
		if current {
			v.CurrentStation = st.Kind
			v.AwaitingOvenParameters = st.Kind == DryingOven && st.State() == Occupied
		}
		v.Stations = append(v.Stations, st.view(now, current))
	}
	if !r.completedAt.IsZero() {
		t := r.completedAt
		v.CompletedAt = &t
	}
	return v
}
