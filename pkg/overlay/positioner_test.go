package overlay

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/geom"
	"github.com/matzehuels/anchor/pkg/measure"
	"github.com/matzehuels/anchor/pkg/observability"
	"github.com/matzehuels/anchor/pkg/placement"
)

func newTestMeasurer() *measure.Static {
	m := measure.NewStatic(geom.NewRect(0, 0, 800, 600))
	m.Set("trigger", geom.FromEdges(100, 50, 150, 130))
	m.Set("content", geom.Size(120, 80))
	return m
}

func mustProfile(t *testing.T, name string) placement.Profile {
	t.Helper()
	p, err := placement.LookupProfile(name)
	if err != nil {
		t.Fatalf("LookupProfile(%q) error = %v", name, err)
	}
	return p
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.DebugLevel})
}

func TestPositionerOpen(t *testing.T) {
	ctx := context.Background()
	p := NewPositioner(newTestMeasurer(), mustProfile(t, placement.ProfileDropdown), "trigger", "content", quietLogger())

	if p.ID == "" {
		t.Fatal("positioner has no ID")
	}
	if got := p.Current().State; got != StateClosed {
		t.Errorf("initial state = %v, want %v", got, StateClosed)
	}

	pl, err := p.Update(ctx, EventOpen)
	if err != nil {
		t.Fatalf("Update(open) error = %v", err)
	}
	if pl.State != StatePositioned {
		t.Fatalf("State = %v, want %v", pl.State, StatePositioned)
	}
	want := placement.Result{X: 50, Y: 138, Side: placement.Bottom}
	if pl.Result != want {
		t.Errorf("Result = %+v, want %+v", pl.Result, want)
	}
	if pl.Content != geom.NewRect(50, 138, 120, 80) {
		t.Errorf("Content = %v, want 50,138 120x80", pl.Content)
	}
	if p.Current() != pl {
		t.Error("Current() does not match last Update()")
	}
}

func TestPositionerRecomputesOnResize(t *testing.T) {
	ctx := context.Background()
	m := newTestMeasurer()
	p := NewPositioner(m, mustProfile(t, placement.ProfileDropdown), "trigger", "content", quietLogger())

	if _, err := p.Update(ctx, EventOpen); err != nil {
		t.Fatalf("Update(open) error = %v", err)
	}

	// Shrinking the viewport leaves no room below the trigger.
	m.SetViewport(geom.NewRect(0, 0, 800, 200))
	pl, err := p.Update(ctx, EventResize)
	if err != nil {
		t.Fatalf("Update(resize) error = %v", err)
	}
	if pl.Result.Side != placement.Top || !pl.Result.Flipped {
		t.Errorf("Side/Flipped = %v/%v, want top/true", pl.Result.Side, pl.Result.Flipped)
	}
	if pl.Result.Y != 12 {
		t.Errorf("Y = %v, want 12", pl.Result.Y)
	}
}

func TestPositionerClosedIgnoresViewportEvents(t *testing.T) {
	ctx := context.Background()
	p := NewPositioner(newTestMeasurer(), mustProfile(t, placement.ProfilePopover), "trigger", "content", quietLogger())

	for _, ev := range []Event{EventResize, EventScroll, EventLayout} {
		pl, err := p.Update(ctx, ev)
		if err != nil {
			t.Fatalf("Update(%v) error = %v", ev, err)
		}
		if pl.State != StateClosed {
			t.Errorf("Update(%v) state = %v, want %v", ev, pl.State, StateClosed)
		}
	}

	if _, err := p.Update(ctx, EventOpen); err != nil {
		t.Fatal(err)
	}
	pl, _ := p.Update(ctx, EventClose)
	if pl.State != StateClosed || p.Open() {
		t.Errorf("after close: state = %v, open = %v", pl.State, p.Open())
	}
	if pl, _ := p.Update(ctx, EventScroll); pl.State != StateClosed {
		t.Errorf("scroll after close state = %v, want %v", pl.State, StateClosed)
	}
}

func TestPositionerDefersUnmeasuredContent(t *testing.T) {
	ctx := context.Background()
	m := newTestMeasurer()
	m.Set("content", geom.Size(0, 0))
	p := NewPositioner(m, mustProfile(t, placement.ProfilePopover), "trigger", "content", quietLogger())

	pl, err := p.Update(ctx, EventOpen)
	if err != nil {
		t.Fatalf("Update(open) error = %v", err)
	}
	if pl.State != StatePending {
		t.Fatalf("State = %v, want %v", pl.State, StatePending)
	}

	m.Set("content", geom.Size(120, 80))
	pl, err = p.Update(ctx, EventLayout)
	if err != nil {
		t.Fatalf("Update(layout) error = %v", err)
	}
	if pl.State != StatePositioned {
		t.Errorf("State = %v, want %v", pl.State, StatePositioned)
	}
}

func TestPositionerHideWhenDetached(t *testing.T) {
	ctx := context.Background()
	m := newTestMeasurer()
	m.Set("trigger", geom.NewRect(50, -100, 100, 30))

	t.Run("dropdown hides", func(t *testing.T) {
		p := NewPositioner(m, mustProfile(t, placement.ProfileDropdown), "trigger", "content", quietLogger())
		pl, err := p.Update(ctx, EventScroll)
		if err != nil || pl.State != StateClosed {
			t.Fatalf("closed scroll = %v, %v", pl.State, err)
		}
		pl, err = p.Update(ctx, EventOpen)
		if err != nil {
			t.Fatal(err)
		}
		if pl.State != StateHidden {
			t.Errorf("State = %v, want %v", pl.State, StateHidden)
		}
	})

	t.Run("popover still positions", func(t *testing.T) {
		p := NewPositioner(m, mustProfile(t, placement.ProfilePopover), "trigger", "content", quietLogger())
		pl, err := p.Update(ctx, EventOpen)
		if err != nil {
			t.Fatal(err)
		}
		if pl.State != StatePositioned {
			t.Errorf("State = %v, want %v", pl.State, StatePositioned)
		}
	})
}

func TestPositionerMeasureError(t *testing.T) {
	ctx := context.Background()
	m := newTestMeasurer()
	p := NewPositioner(m, mustProfile(t, placement.ProfilePopover), "trigger", "missing", quietLogger())

	_, err := p.Update(ctx, EventOpen)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("Update() error = %v, want %v", err, errors.ErrCodeNotFound)
	}
	if !strings.Contains(err.Error(), "measure content") {
		t.Errorf("error %q does not name the content", err)
	}
}

func TestPositionerLogsDegraded(t *testing.T) {
	ctx := context.Background()
	m := newTestMeasurer()
	m.Set("content", geom.Size(2000, 80))

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	p := NewPositioner(m, mustProfile(t, placement.ProfilePopover), "trigger", "content", logger)

	pl, err := p.Update(ctx, EventOpen)
	if err != nil {
		t.Fatal(err)
	}
	if !pl.Result.Degraded {
		t.Error("Degraded = false, want true")
	}
	if !strings.Contains(buf.String(), "does not fit") {
		t.Errorf("log output %q has no degraded warning", buf.String())
	}
}

func TestPositionerHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	h := &recordingHooks{}
	observability.SetPlacementHooks(h)

	ctx := context.Background()
	m := newTestMeasurer()
	p := NewPositioner(m, mustProfile(t, placement.ProfileDropdown), "trigger", "content", quietLogger())

	_, _ = p.Update(ctx, EventOpen)
	m.Set("content", geom.Size(0, 0))
	_, _ = p.Update(ctx, EventLayout)
	m.Set("trigger", geom.NewRect(0, 900, 10, 10))
	_, _ = p.Update(ctx, EventScroll)

	want := []string{"placed:bottom", "deferred", "hidden"}
	if strings.Join(h.events, ",") != strings.Join(want, ",") {
		t.Errorf("hook events = %v, want %v", h.events, want)
	}
}

func TestPositionerHooksReportUnknownSide(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	h := &recordingHooks{}
	observability.SetPlacementHooks(h)

	prof := mustProfile(t, placement.ProfilePopover)
	prof.Side = placement.Side("diagonal")
	p := NewPositioner(newTestMeasurer(), prof, "trigger", "content", quietLogger())
	if _, err := p.Update(context.Background(), EventOpen); err != nil {
		t.Fatal(err)
	}

	if h.requested != "diagonal" {
		t.Errorf("requested side = %q, want %q", h.requested, "diagonal")
	}
	if want := []string{"placed:bottom"}; strings.Join(h.events, ",") != strings.Join(want, ",") {
		t.Errorf("hook events = %v, want %v", h.events, want)
	}
}

type recordingHooks struct {
	events    []string
	requested string
}

func (h *recordingHooks) OnPlacement(_ context.Context, _, _, requested, resolved string, _ bool) {
	h.requested = requested
	h.events = append(h.events, "placed:"+resolved)
}
func (h *recordingHooks) OnDeferred(context.Context, string, string) {
	h.events = append(h.events, "deferred")
}
func (h *recordingHooks) OnHidden(context.Context, string, string) {
	h.events = append(h.events, "hidden")
}

func TestEventString(t *testing.T) {
	if EventScroll.String() != "scroll" {
		t.Errorf("EventScroll.String() = %q", EventScroll.String())
	}
	if Event(42).String() != "event(42)" {
		t.Errorf("Event(42).String() = %q", Event(42).String())
	}
}
