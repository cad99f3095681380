package overlay

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/anchor/pkg/geom"
	"github.com/matzehuels/anchor/pkg/measure"
	"github.com/matzehuels/anchor/pkg/observability"
	"github.com/matzehuels/anchor/pkg/placement"
)

// Event is a notification from the host UI layer.
type Event int

const (
	EventOpen Event = iota
	EventClose
	EventResize
	EventScroll
	// EventLayout reports that the content has been laid out, typically
	// after a deferred pass.
	EventLayout
)

func (e Event) String() string {
	switch e {
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventResize:
		return "resize"
	case EventScroll:
		return "scroll"
	case EventLayout:
		return "layout"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// State describes what the host should do with the overlay.
type State string

const (
	StateClosed     State = "closed"     // not shown
	StatePending    State = "pending"    // open, waiting for content to have a size
	StateHidden     State = "hidden"     // open, trigger outside the viewport
	StatePositioned State = "positioned" // open, draw at Result
)

// Placement is the outcome of a positioning pass.
type Placement struct {
	State   State            `json:"state"`
	Result  placement.Result `json:"result"`
	Content geom.Rect        `json:"content"` // final content rectangle when positioned
}

// Positioner keeps one overlay positioned. It is safe for concurrent use;
// passes are serialised.
type Positioner struct {
	ID        string
	TriggerID string
	ContentID string

	mu       sync.Mutex
	profile  placement.Profile
	measurer measure.Measurer
	logger   *log.Logger
	open     bool
	current  Placement
}

// NewPositioner creates a closed positioner. A nil logger uses log.Default().
func NewPositioner(m measure.Measurer, profile placement.Profile, triggerID, contentID string, logger *log.Logger) *Positioner {
	if logger == nil {
		logger = log.Default()
	}
	return &Positioner{
		ID:        uuid.NewString(),
		TriggerID: triggerID,
		ContentID: contentID,
		profile:   profile,
		measurer:  m,
		logger:    logger,
		current:   Placement{State: StateClosed},
	}
}

// Profile returns the profile the overlay is positioned with.
func (p *Positioner) Profile() placement.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

// SetProfile replaces the profile. The next event uses it.
func (p *Positioner) SetProfile(profile placement.Profile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile = profile
}

// Open reports whether the overlay is open.
func (p *Positioner) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Current returns the last placement without recomputing.
func (p *Positioner) Current() Placement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Update handles a host event and returns the placement to apply. Viewport
// events on a closed overlay return StateClosed so stale results are never
// applied. On a measurement error the previous placement is kept.
func (p *Positioner) Update(ctx context.Context, ev Event) (Placement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev {
	case EventClose:
		p.open = false
		p.current = Placement{State: StateClosed}
		return p.current, nil
	case EventOpen:
		p.open = true
	default:
		if !p.open {
			return Placement{State: StateClosed}, nil
		}
	}

	pl, err := p.pass(ctx)
	if err != nil {
		return p.current, fmt.Errorf("position overlay %s on %s: %w", p.profile.Name, ev, err)
	}
	p.current = pl
	return pl, nil
}

func (p *Positioner) pass(ctx context.Context) (Placement, error) {
	viewport, err := p.measurer.Viewport(ctx)
	if err != nil {
		return Placement{}, fmt.Errorf("measure viewport: %w", err)
	}
	trigger, err := p.measurer.Measure(ctx, p.TriggerID)
	if err != nil {
		return Placement{}, fmt.Errorf("measure trigger: %w", err)
	}
	content, err := p.measurer.Measure(ctx, p.ContentID)
	if err != nil {
		return Placement{}, fmt.Errorf("measure content: %w", err)
	}

	if p.profile.HideWhenDetached && !viewport.Intersects(trigger) {
		p.logger.Debug("trigger detached, hiding overlay", "overlay", p.ID, "profile", p.profile.Name, "trigger", trigger)
		observability.Placement().OnHidden(ctx, p.ID, p.profile.Name)
		return Placement{State: StateHidden}, nil
	}

	if content.IsEmpty() {
		p.logger.Debug("content not measured, deferring", "overlay", p.ID, "profile", p.profile.Name)
		observability.Placement().OnDeferred(ctx, p.ID, p.profile.Name)
		return Placement{State: StatePending}, nil
	}

	res := placement.Compute(p.profile.Request(trigger, content, viewport))
	observability.Placement().OnPlacement(ctx, p.ID, p.profile.Name, p.profile.Side.String(), res.Side.String(), res.Degraded)

	if res.Degraded {
		p.logger.Warn("content does not fit viewport",
			"overlay", p.ID,
			"profile", p.profile.Name,
			"content", content,
			"viewport", viewport)
	} else {
		p.logger.Debug("positioned overlay",
			"overlay", p.ID,
			"profile", p.profile.Name,
			"side", res.Side,
			"flipped", res.Flipped,
			"x", res.X,
			"y", res.Y)
	}

	return Placement{State: StatePositioned, Result: res, Content: res.Rect(content)}, nil
}
