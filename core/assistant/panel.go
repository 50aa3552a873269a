package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/trezcool/fluidlab/core"
)

type PanelState string

const (
	PanelIdle     PanelState = "idle"
	PanelSelected PanelState = "selected"
	PanelLoading  PanelState = "loading"
	PanelReady    PanelState = "ready"
	PanelError    PanelState = "error"
)

var (
	ErrNothingSelected = core.NewStateError("select a term first")
	ErrPanelClosed     = core.NewStateError("assistant panel is closed")
)

// Panel follows the text a student selects and loads its explanation on demand.
// Selections are debounced; opening the panel flushes a pending selection first.
type Panel struct {
	ID string

	mu          sync.Mutex
	provider    Provider
	debouncer   *core.Debouncer
	state       PanelState
	selection   string
	explanation *Explanation
	errMsg      string
	reqSeq      int // bumped whenever the selection changes; stale loads are dropped
	closed      bool
	updatedAt   time.Time
}

type PanelView struct {
	ID          string       `json:"id"`
	State       PanelState   `json:"state"`
	Selection   string       `json:"selection,omitempty"`
	Explanation *Explanation `json:"explanation,omitempty"`
	Error       string       `json:"error,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func NewPanel(id string, provider Provider, window time.Duration) *Panel {
	p := &Panel{ID: id, provider: provider, state: PanelIdle, updatedAt: core.NowFunc()}
	p.debouncer = core.NewDebouncer(window, p.applySelection)
	return p
}

func (p *Panel) applySelection(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.reqSeq++
	p.selection = text
	p.explanation = nil
	p.errMsg = ""
	p.state = PanelSelected
	p.updatedAt = core.NowFunc()
}

// Select records a new selection once no other selection follows within the debounce window.
// Blank text clears the panel.
func (p *Panel) Select(text string) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrPanelClosed
	}
	if core.CleanString(text) == "" {
		return p.Clear()
	}
	p.debouncer.Push(text)
	return nil
}

// Clear drops the selection and any pending one.
func (p *Panel) Clear() error {
	p.debouncer.Discard()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPanelClosed
	}
	p.reqSeq++
	p.selection = ""
	p.explanation = nil
	p.errMsg = ""
	p.state = PanelIdle
	p.updatedAt = core.NowFunc()
	return nil
}

// Open loads the explanation of the current selection. A result that arrives after the
// selection changed is discarded and the view of the newer state is returned.
func (p *Panel) Open(ctx context.Context) (PanelView, error) {
	p.debouncer.Flush()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return PanelView{}, ErrPanelClosed
	}
	if p.selection == "" {
		p.mu.Unlock()
		return PanelView{}, ErrNothingSelected
	}
	p.reqSeq++
	seq, text := p.reqSeq, p.selection
	p.state = PanelLoading
	p.explanation = nil
	p.errMsg = ""
	p.updatedAt = core.NowFunc()
	p.mu.Unlock()

	exp, err := p.provider.Explain(ctx, text)

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.reqSeq || p.closed {
		return p.view(), nil
	}
	p.updatedAt = core.NowFunc()
	if err != nil {
		p.state = PanelError
		p.errMsg = err.Error()
		return p.view(), err
	}
	p.state = PanelReady
	p.explanation = &exp
	return p.view(), nil
}

// Close stops the panel; pending selections are dropped.
func (p *Panel) Close() {
	p.debouncer.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.reqSeq++
}

func (p *Panel) view() PanelView {
	v := PanelView{
		ID:        p.ID,
		State:     p.state,
		Selection: p.selection,
		Error:     p.errMsg,
		UpdatedAt: p.updatedAt,
	}
	if p.explanation != nil {
		exp := *p.explanation
		v.Explanation = &exp
	}
	return v
}

func (p *Panel) View() PanelView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view()
}
