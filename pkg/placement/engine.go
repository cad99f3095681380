package placement

import "github.com/matzehuels/anchor/pkg/geom"

// Spaces is the room available on each side of a trigger inside a
// boundary, after subtracting the side offset and, for the flip check, the
// collision padding.
// Values are negative when the trigger sits closer to the edge than the
// offset and padding allow.
type Spaces struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Space measures the room around trigger within boundary.
func Space(trigger, boundary geom.Rect, sideOffset, padding float64) Spaces {
	gap := sideOffset + padding
	return Spaces{
		Top:    trigger.Top() - boundary.Top() - gap,
		Bottom: boundary.Bottom() - trigger.Bottom() - gap,
		Left:   trigger.Left() - boundary.Left() - gap,
		Right:  boundary.Right() - trigger.Right() - gap,
	}
}

// On returns the room on one side. Auto has no room of its own.
func (s Spaces) On(side Side) float64 {
	switch side {
	case Top:
		return s.Top
	case Bottom:
		return s.Bottom
	case Left:
		return s.Left
	case Right:
		return s.Right
	}
	return 0
}

// Fits reports whether content fits on side.
func (s Spaces) Fits(side Side, content geom.Rect) bool {
	return s.On(side) >= extent(side, content)
}

// extent is the content's size along the main axis of side.
func extent(side Side, content geom.Rect) float64 {
	if side.Vertical() {
		return content.Height
	}
	return content.Width
}

// Compute returns the position of the content for req.
func Compute(req Request) Result {
	side := req.Side.orDefault()
	if side == Auto {
		// Auto measures room against the bare boundary; padding only
		// matters to the flip and the clamp.
		room := Space(req.Trigger, req.Boundary, req.SideOffset, 0)
		side = resolveAuto(room, req.Content, req.priority())
	}

	x, y := position(req, side)
	res := Result{Side: side}

	if req.AvoidCollisions && req.Side != Auto && overflows(req, side, x, y) {
		spaces := Space(req.Trigger, req.Boundary, req.SideOffset, req.CollisionPadding)
		if opp := side.Opposite(); spaces.Fits(opp, req.Content) {
			x, y = position(req, opp)
			res.Side = opp
			res.Flipped = true
		}
	}

	inner := req.Boundary.Inset(req.CollisionPadding)
	loX, hiX := inner.Left(), inner.Right()-req.Content.Width
	loY, hiY := inner.Top(), inner.Bottom()-req.Content.Height

	res.X = geom.Clamp(x, loX, hiX)
	res.Y = geom.Clamp(y, loY, hiY)
	res.Degraded = loX > hiX || loY > hiY
	return res
}

// resolveAuto picks the first side in priority with room for the content,
// falling back to the first entry.
func resolveAuto(spaces Spaces, content geom.Rect, priority []Side) Side {
	for _, s := range priority {
		if spaces.Fits(s, content) {
			return s
		}
	}
	return priority[0]
}

// position places the content against side and aligns it on the cross axis.
func position(req Request, side Side) (x, y float64) {
	t, c := req.Trigger, req.Content

	switch side {
	case Top:
		y = t.Top() - c.Height - req.SideOffset
	case Bottom:
		y = t.Bottom() + req.SideOffset
	case Left:
		x = t.Left() - c.Width - req.SideOffset
	case Right:
		x = t.Right() + req.SideOffset
	}

	if side.Vertical() {
		x = align(req.Align, t.Left(), t.Right(), t.Width, c.Width, req.AlignOffset)
	} else {
		y = align(req.Align, t.Top(), t.Bottom(), t.Height, c.Height, req.AlignOffset)
	}
	return x, y
}

// align computes the cross-axis coordinate. start and end are the trigger's
// edges on that axis, size its extent and length the content's extent.
func align(a Alignment, start, end, size, length, offset float64) float64 {
	switch a {
	case Start:
		return start + offset
	case End:
		return end - length - offset
	}
	return start + size/2 - length/2 + offset
}

// overflows reports whether content at (x, y) crosses the padded boundary on
// the main axis of side.
func overflows(req Request, side Side, x, y float64) bool {
	inner := req.Boundary.Inset(req.CollisionPadding)
	switch side {
	case Top:
		return y < inner.Top()
	case Bottom:
		return y+req.Content.Height > inner.Bottom()
	case Left:
		return x < inner.Left()
	case Right:
		return x+req.Content.Width > inner.Right()
	}
	return false
}
