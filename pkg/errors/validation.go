package errors

import (
	"math"
	"regexp"
)

// ValidateFinite rejects NaN and infinite values.
// The placement engine accepts them silently, so callers that want strict
// guarantees validate before computing.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) {
		return New(ErrCodeInvalidInput, "%s is NaN", name)
	}
	if math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s is infinite", name)
	}
	return nil
}

// ValidateNonNegative rejects negative or non-finite values.
func ValidateNonNegative(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative (got %g)", name, v)
	}
	return nil
}

// ValidateRect validates a rectangle given as origin and size.
//
// Validation rules:
//   - All components must be finite
//   - Width and height must not be negative
func ValidateRect(name string, x, y, width, height float64) error {
	for _, c := range []struct {
		field string
		value float64
	}{
		{"x", x}, {"y", y}, {"width", width}, {"height", height},
	} {
		if err := ValidateFinite(c.field, c.value); err != nil {
			return Wrap(ErrCodeInvalidRect, err, "%s", name)
		}
	}
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidRect, "%s has negative size (%gx%g)", name, width, height)
	}
	return nil
}

// profileNameRegex matches profile names usable in config files and URLs.
var profileNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateProfileName validates a widget profile name.
func ValidateProfileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProfile, "profile name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidProfile, "profile name too long (max 64 characters)")
	}
	if !profileNameRegex.MatchString(name) {
		return New(ErrCodeInvalidProfile, "invalid profile name: %q", name)
	}
	return nil
}
