// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about positioning passes, hover-intent transitions and HTTP
// API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hook arguments are plain strings so this package imports nothing from the
// rest of the module.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlacementHooks(&myPlacementHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Placement().OnPlacement(ctx, id, "dropdown", "top", "bottom", false)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Placement Hooks
// =============================================================================

// PlacementHooks receives events from overlay positioning passes.
type PlacementHooks interface {
	// OnPlacement records a completed pass. requested and resolved are side
	// names; they differ after auto selection or a collision flip.
	OnPlacement(ctx context.Context, overlayID, profile, requested, resolved string, degraded bool)

	// OnDeferred records a pass skipped because content had no size yet.
	OnDeferred(ctx context.Context, overlayID, profile string)

	// OnHidden records an overlay hidden because its trigger left the viewport.
	OnHidden(ctx context.Context, overlayID, profile string)
}

// =============================================================================
// Intent Hooks
// =============================================================================

// IntentHooks receives hover-intent state transitions.
type IntentHooks interface {
	OnTransition(overlayID, from, to string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlacementHooks is a no-op implementation of PlacementHooks.
type NoopPlacementHooks struct{}

func (NoopPlacementHooks) OnPlacement(context.Context, string, string, string, string, bool) {}
func (NoopPlacementHooks) OnDeferred(context.Context, string, string)                        {}
func (NoopPlacementHooks) OnHidden(context.Context, string, string)                          {}

// NoopIntentHooks is a no-op implementation of IntentHooks.
type NoopIntentHooks struct{}

func (NoopIntentHooks) OnTransition(string, string, string) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                           {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	placementHooks PlacementHooks = NoopPlacementHooks{}
	intentHooks    IntentHooks    = NoopIntentHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetPlacementHooks registers custom placement hooks.
// This should be called once at application startup before any overlay opens.
func SetPlacementHooks(h PlacementHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		placementHooks = h
	}
}

// SetIntentHooks registers custom hover-intent hooks.
func SetIntentHooks(h IntentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		intentHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Placement returns the registered placement hooks.
func Placement() PlacementHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return placementHooks
}

// Intent returns the registered hover-intent hooks.
func Intent() IntentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return intentHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	placementHooks = NoopPlacementHooks{}
	intentHooks = NoopIntentHooks{}
	httpHooks = NoopHTTPHooks{}
}
