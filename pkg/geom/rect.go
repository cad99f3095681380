package geom

import "fmt"

// Rect is an axis-aligned rectangle stored as origin and size.
type Rect struct {
	X      float64 `json:"x" yaml:"x" toml:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Size creates a rectangle at the origin. Content elements only contribute
// their size to a placement, so this is the usual way to describe them.
func Size(width, height float64) Rect {
	return Rect{Width: width, Height: height}
}

// FromEdges creates a rectangle from its four edges, the shape returned by
// bounding-rectangle queries.
func FromEdges(top, left, right, bottom float64) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

func (r Rect) Top() float64     { return r.Y }
func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.Width }
func (r Rect) Bottom() float64  { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// IsEmpty reports whether the rectangle has no area. Content that has not
// been laid out yet measures as empty.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inset shrinks the rectangle by p on every side. A negative p grows it.
// The result may have negative size when p exceeds half the extent.
func (r Rect) Inset(p float64) Rect {
	return Rect{X: r.X + p, Y: r.Y + p, Width: r.Width - 2*p, Height: r.Height - 2*p}
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// MoveTo returns the rectangle with its origin at (x, y).
func (r Rect) MoveTo(x, y float64) Rect {
	r.X = x
	r.Y = y
	return r
}

// Contains reports whether other lies fully inside r. Shared edges count as
// inside.
func (r Rect) Contains(other Rect) bool {
	return other.Left() >= r.Left() && other.Right() <= r.Right() &&
		other.Top() >= r.Top() && other.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether (x, y) lies inside r, edges inclusive.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.Left() && x <= r.Right() && y >= r.Top() && y <= r.Bottom()
}

// Intersects reports whether the two rectangles overlap with positive area.
func (r Rect) Intersects(other Rect) bool {
	if r.Left() >= other.Right() || other.Left() >= r.Right() {
		return false
	}
	if r.Top() >= other.Bottom() || other.Top() >= r.Bottom() {
		return false
	}
	return true
}

// String formats the rectangle as "x,y wxh".
func (r Rect) String() string {
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}

// Clamp restricts v to [lo, hi]. When lo > hi the range is empty and lo
// wins, which pins oversized content to the top/left edge.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
