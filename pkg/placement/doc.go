// Package placement computes where a floating element is drawn relative to
// the element that triggered it.
//
// Context menus, dropdowns, popovers and hover cards all solve the same
// geometric problem: given a measured trigger rectangle, a measured content
// rectangle and a boundary (usually the viewport), pick a position for the
// content against one side of the trigger, flip to the opposite side when the
// requested side lacks room, and keep the result inside the boundary.
//
// # Algorithm
//
// [Compute] runs these steps:
//
//  1. Resolve the side. [Auto] picks the first side in the request's
//     priority order that has room for the content.
//  2. Place the content against the side, offset by SideOffset.
//  3. Align it on the cross axis (start, center or end, shifted by
//     AlignOffset).
//  4. If AvoidCollisions is set and the content overflows the padded
//     boundary on the main axis, flip once to the opposite side when that
//     side has room.
//  5. Clamp into the boundary inset by CollisionPadding. Content larger than
//     the padded boundary is pinned to its top/left edge and the result is
//     marked Degraded.
//
// Compute is a pure function: it never fails, performs no I/O and keeps no
// state, so it may be called concurrently from any number of overlays.
//
// # Profiles
//
// The widgets that use the engine disagree on defaults (side, offsets,
// auto priority order, whether a detached trigger hides the overlay). Each
// widget's choices are captured in a [Profile]; see [Profiles] for the
// built-in set.
//
// # Example
//
//	res := placement.Compute(placement.Request{
//	    Trigger:         geom.FromEdges(100, 50, 150, 130),
//	    Content:         geom.Size(120, 80),
//	    Boundary:        geom.NewRect(0, 0, 800, 600),
//	    Side:            placement.Bottom,
//	    Align:           placement.Start,
//	    SideOffset:      8,
//	    AvoidCollisions: true,
//	})
//	// res.X == 50, res.Y == 138, res.Side == placement.Bottom
package placement
