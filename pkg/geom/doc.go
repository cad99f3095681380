// Package geom provides the axis-aligned rectangle type shared by the
// placement engine, the measurement port and the preview renderer.
//
// Coordinates follow screen conventions: X grows to the right and Y grows
// downward, so Top is the smallest Y and Bottom the largest. All values are
// plain float64 and nothing is rounded.
package geom
