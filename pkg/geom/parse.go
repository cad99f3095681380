package geom

import (
	"strconv"
	"strings"

	"github.com/matzehuels/anchor/pkg/errors"
)

// ParseRect parses "x,y,w,h" into a rectangle.
func ParseRect(s string) (Rect, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return Rect{}, err
	}
	return NewRect(v[0], v[1], v[2], v[3]), nil
}

// ParseSize parses "w,h" (or "wxh") into a rectangle at the origin.
func ParseSize(s string) (Rect, error) {
	v, err := parseFloats(strings.ReplaceAll(s, "x", ","), 2)
	if err != nil {
		return Rect{}, err
	}
	return Size(v[0], v[1]), nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, errors.New(errors.ErrCodeInvalidRect, "expected %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRect, err, "parse %q", s)
		}
		out[i] = f
	}
	if out[n-1] < 0 || out[n-2] < 0 {
		return nil, errors.New(errors.ErrCodeInvalidRect, "negative size in %q", s)
	}
	return out, nil
}
