package placement

import (
	"math"

	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/geom"
)

// Request is the input to a single placement computation. It is built fresh
// for every positioning pass and never mutated by the engine.
type Request struct {
	Trigger  geom.Rect `json:"trigger"`
	Content  geom.Rect `json:"content"` // only Width and Height are used
	Boundary geom.Rect `json:"boundary"`

	Side  Side      `json:"side,omitempty"`
	Align Alignment `json:"align,omitempty"`

	SideOffset       float64 `json:"side_offset,omitempty"`
	AlignOffset      float64 `json:"align_offset,omitempty"`
	CollisionPadding float64 `json:"collision_padding,omitempty"`
	AvoidCollisions  bool    `json:"avoid_collisions,omitempty"`

	// Priority is the order Auto tries sides in. Empty means DefaultPriority.
	Priority []Side `json:"priority,omitempty"`
}

// Validate checks the request for values the engine would accept but that
// usually indicate a caller bug: NaN or infinite numbers, negative sizes,
// negative padding and unknown sides. Compute never calls Validate.
func (r Request) Validate() error {
	for _, c := range []struct {
		name string
		rect geom.Rect
	}{
		{"trigger", r.Trigger},
		{"content", r.Content},
		{"boundary", r.Boundary},
	} {
		if err := errors.ValidateRect(c.name, c.rect.X, c.rect.Y, c.rect.Width, c.rect.Height); err != nil {
			return err
		}
	}
	if err := errors.ValidateFinite("side_offset", r.SideOffset); err != nil {
		return err
	}
	if err := errors.ValidateFinite("align_offset", r.AlignOffset); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("collision_padding", r.CollisionPadding); err != nil {
		return err
	}
	if !r.Side.Valid() {
		return errors.New(errors.ErrCodeInvalidSide, "unknown side %q", string(r.Side))
	}
	if !r.Align.Valid() {
		return errors.New(errors.ErrCodeInvalidAlignment, "unknown alignment %q", string(r.Align))
	}
	for _, s := range r.Priority {
		if s == Auto || s == "" || !s.Valid() {
			return errors.New(errors.ErrCodeInvalidSide, "invalid priority entry %q", string(s))
		}
	}
	return nil
}

// priority returns the effective Auto order with invalid entries dropped.
func (r Request) priority() []Side {
	out := make([]Side, 0, 4)
	for _, s := range r.Priority {
		if s != Auto && s != "" && s.Valid() {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return DefaultPriority
	}
	return out
}

// Result is the outcome of a placement computation.
type Result struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Side Side    `json:"side"` // resolved side after auto selection and flipping

	// Flipped is set when the requested side overflowed and the content was
	// moved to the opposite side.
	Flipped bool `json:"flipped,omitempty"`

	// Degraded is set when the content is larger than the padded boundary
	// on at least one axis and was pinned to its top/left edge.
	Degraded bool `json:"degraded,omitempty"`
}

// Rect returns the final content rectangle.
func (r Result) Rect(content geom.Rect) geom.Rect {
	return geom.NewRect(r.X, r.Y, content.Width, content.Height)
}

// Rounded returns the result with coordinates snapped to whole pixels.
func (r Result) Rounded() Result {
	r.X = math.Round(r.X)
	r.Y = math.Round(r.Y)
	return r
}
