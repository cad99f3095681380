// Package overlay is the caller-side layer around the placement engine.
//
// A [Positioner] binds one floating element to its trigger, a widget
// [placement.Profile] and a [measure.Measurer]. The host forwards open,
// close, resize, scroll and layout events; every event that needs a fresh
// position re-measures and re-runs [placement.Compute]. Content that has not
// been laid out yet (zero size) defers the pass, and profiles with
// HideWhenDetached hide the overlay while its trigger is outside the
// viewport.
//
// A [Manager] tracks several overlays and fans viewport events out to the
// open ones. An [Intent] models hover-intent timing (open and close delays)
// as a small state machine, independent of placement.
package overlay
