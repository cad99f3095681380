package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPlacementHooks{}
	p.OnPlacement(ctx, "id", "dropdown", "top", "bottom", false)
	p.OnDeferred(ctx, "id", "dropdown")
	p.OnHidden(ctx, "id", "dropdown")

	i := NoopIntentHooks{}
	i.OnTransition("id", "closed", "opening")

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/placements")
	h.OnResponse(ctx, "POST", "/v1/placements", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Placement().(NoopPlacementHooks); !ok {
		t.Error("Placement() should return NoopPlacementHooks by default")
	}
	if _, ok := Intent().(NoopIntentHooks); !ok {
		t.Error("Intent() should return NoopIntentHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPlacement := &testPlacementHooks{}
	SetPlacementHooks(customPlacement)
	if Placement() != customPlacement {
		t.Error("SetPlacementHooks should set custom hooks")
	}

	customIntent := &testIntentHooks{}
	SetIntentHooks(customIntent)
	if Intent() != customIntent {
		t.Error("SetIntentHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// nil does not override
	SetPlacementHooks(nil)
	if Placement() != customPlacement {
		t.Error("SetPlacementHooks(nil) should not override existing hooks")
	}

	Reset()
	if _, ok := Placement().(NoopPlacementHooks); !ok {
		t.Error("Reset() should restore NoopPlacementHooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testPlacementHooks{}
	SetPlacementHooks(h)

	Placement().OnPlacement(context.Background(), "a", "popover", "top", "bottom", true)
	if h.placements != 1 || h.lastResolved != "bottom" || !h.lastDegraded {
		t.Errorf("hook state = %+v, want one degraded placement on bottom", h)
	}
}

type testPlacementHooks struct {
	mu           sync.Mutex
	placements   int
	lastResolved string
	lastDegraded bool
}

func (h *testPlacementHooks) OnPlacement(_ context.Context, _, _, _, resolved string, degraded bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.placements++
	h.lastResolved = resolved
	h.lastDegraded = degraded
}
func (h *testPlacementHooks) OnDeferred(context.Context, string, string) {}
func (h *testPlacementHooks) OnHidden(context.Context, string, string)   {}

type testIntentHooks struct{}

func (testIntentHooks) OnTransition(string, string, string) {}

type testHTTPHooks struct{}

func (testHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (testHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
