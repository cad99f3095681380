// Package measure defines the port through which overlays obtain measured
// rectangles, keeping the placement engine independent of any UI toolkit.
//
// A web host would implement Measurer with bounding-rectangle queries, a
// terminal host with cell geometry. Static is an in-memory implementation
// used by the CLI and by tests.
package measure

import (
	"context"
	"sync"

	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/geom"
)

// Measurer supplies the current layout of elements and the viewport.
// Implementations must reflect layout at call time.
type Measurer interface {
	Measure(ctx context.Context, id string) (geom.Rect, error)
	Viewport(ctx context.Context) (geom.Rect, error)
}

// Static is a Measurer backed by a map. It is safe for concurrent use.
type Static struct {
	mu       sync.RWMutex
	rects    map[string]geom.Rect
	viewport geom.Rect
}

// NewStatic creates a Static measurer with the given viewport.
func NewStatic(viewport geom.Rect) *Static {
	return &Static{
		rects:    make(map[string]geom.Rect),
		viewport: viewport,
	}
}

// Set records the rectangle for id.
func (s *Static) Set(id string, r geom.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rects[id] = r
}

// Delete forgets id.
func (s *Static) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rects, id)
}

// SetViewport replaces the viewport rectangle.
func (s *Static) SetViewport(r geom.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = r
}

// Measure returns the rectangle recorded for id.
func (s *Static) Measure(ctx context.Context, id string) (geom.Rect, error) {
	if err := ctx.Err(); err != nil {
		return geom.Rect{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rects[id]
	if !ok {
		return geom.Rect{}, errors.New(errors.ErrCodeNotFound, "element %q is not mounted", id)
	}
	return r, nil
}

// Viewport returns the current viewport.
func (s *Static) Viewport(ctx context.Context) (geom.Rect, error) {
	if err := ctx.Err(); err != nil {
		return geom.Rect{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport, nil
}

// Ensure Static implements Measurer.
var _ Measurer = (*Static)(nil)
