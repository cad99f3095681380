package overlay

import (
	"sync"
	"time"

	"github.com/matzehuels/anchor/pkg/observability"
)

// IntentState is the hover-intent state of an overlay.
type IntentState int

const (
	IntentClosed IntentState = iota
	IntentOpening
	IntentOpen
	IntentClosing
)

func (s IntentState) String() string {
	switch s {
	case IntentClosed:
		return "closed"
	case IntentOpening:
		return "opening"
	case IntentOpen:
		return "open"
	case IntentClosing:
		return "closing"
	}
	return "unknown"
}

// Timer is a pending delayed call.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed calls. The default uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// IntentOption configures an Intent.
type IntentOption func(*Intent)

// WithClock replaces the clock used for delayed transitions.
func WithClock(c Clock) IntentOption {
	return func(i *Intent) { i.clock = c }
}

// WithOnChange registers a callback invoked after every transition. It runs
// outside the intent's lock and may call back into the Intent. Callbacks see
// transitions in the order they happened, one at a time.
func WithOnChange(fn func(IntentState)) IntentOption {
	return func(i *Intent) { i.onChange = fn }
}

// Intent is the hover-intent state machine
//
//	closed -> opening -> open -> closing -> closed
//
// Enter and Leave start or cancel delayed transitions. A zero delay
// transitions immediately. Timers that fire after being superseded are
// ignored.
type Intent struct {
	id         string
	openDelay  time.Duration
	closeDelay time.Duration
	clock      Clock
	onChange   func(IntentState)

	mu    sync.Mutex
	state IntentState
	timer Timer
	gen   uint64

	// pending holds transitions not yet reported. Whoever finds delivering
	// unset drains it, so reports never overtake each other.
	pending    []transition
	delivering bool
}

type transition struct{ from, to IntentState }

// NewIntent creates a closed intent machine for the overlay id.
func NewIntent(id string, openDelay, closeDelay time.Duration, opts ...IntentOption) *Intent {
	i := &Intent{
		id:         id,
		openDelay:  openDelay,
		closeDelay: closeDelay,
		clock:      realClock{},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// State returns the current state.
func (i *Intent) State() IntentState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Enter reports the pointer entering the trigger or content.
func (i *Intent) Enter() {
	i.mu.Lock()
	switch i.state {
	case IntentClosed:
		if i.openDelay <= 0 {
			i.set(IntentOpen)
		} else {
			i.set(IntentOpening)
			i.schedule(i.openDelay, IntentOpen)
		}
	case IntentClosing:
		i.cancel()
		i.set(IntentOpen)
	}
	i.mu.Unlock()
	i.flush()
}

// Leave reports the pointer leaving the trigger and content.
func (i *Intent) Leave() {
	i.mu.Lock()
	switch i.state {
	case IntentOpening:
		i.cancel()
		i.set(IntentClosed)
	case IntentOpen:
		if i.closeDelay <= 0 {
			i.set(IntentClosed)
		} else {
			i.set(IntentClosing)
			i.schedule(i.closeDelay, IntentClosed)
		}
	}
	i.mu.Unlock()
	i.flush()
}

// Close closes immediately and cancels any pending transition, as on
// escape or click-outside.
func (i *Intent) Close() {
	i.mu.Lock()
	i.cancel()
	if i.state != IntentClosed {
		i.set(IntentClosed)
	}
	i.mu.Unlock()
	i.flush()
}

// set must be called with mu held.
func (i *Intent) set(to IntentState) {
	i.pending = append(i.pending, transition{from: i.state, to: to})
	i.state = to
}

// schedule must be called with mu held.
func (i *Intent) schedule(d time.Duration, to IntentState) {
	i.gen++
	gen := i.gen
	i.timer = i.clock.AfterFunc(d, func() { i.fire(gen, to) })
}

// cancel must be called with mu held.
func (i *Intent) cancel() {
	i.gen++
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
}

func (i *Intent) fire(gen uint64, to IntentState) {
	i.mu.Lock()
	if gen != i.gen {
		i.mu.Unlock()
		return
	}
	i.timer = nil
	i.set(to)
	i.mu.Unlock()
	i.flush()
}

// flush reports pending transitions in order. If another goroutine is
// already reporting, it picks up ours before it returns.
func (i *Intent) flush() {
	i.mu.Lock()
	if i.delivering {
		i.mu.Unlock()
		return
	}
	i.delivering = true
	for len(i.pending) > 0 {
		t := i.pending[0]
		i.pending = i.pending[1:]
		i.mu.Unlock()
		i.notify(t)
		i.mu.Lock()
	}
	i.delivering = false
	i.mu.Unlock()
}

func (i *Intent) notify(t transition) {
	observability.Intent().OnTransition(i.id, t.from.String(), t.to.String())
	if i.onChange != nil {
		i.onChange(t.to)
	}
}
