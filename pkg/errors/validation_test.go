package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateFinite(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"negative", -12.5, false},
		{"large", 1e12, false},

		{"NaN", math.NaN(), true},
		{"+Inf", math.Inf(1), true},
		{"-Inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFinite("v", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFinite(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 8, false},

		{"negative", -1, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("padding", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateRect(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		wantErr    bool
	}{
		{"valid", 10, 20, 100, 30, false},
		{"zero size", 0, 0, 0, 0, false},
		{"negative origin", -50, -20, 10, 10, false},

		{"negative width", 0, 0, -1, 10, true},
		{"negative height", 0, 0, 10, -1, true},
		{"NaN x", math.NaN(), 0, 10, 10, true},
		{"Inf height", 0, 0, 10, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRect("trigger", tt.x, tt.y, tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRect) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidRect)
			}
		})
	}
}

func TestValidateProfileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "dropdown", false},
		{"dashed", "hover-card", false},
		{"digits", "menu2", false},

		{"empty", "", true},
		{"too long", "a" + strings.Repeat("b", 64), true},
		{"uppercase", "Dropdown", true},
		{"leading digit", "2menu", true},
		{"space", "hover card", true},
		{"path", "../menu", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProfileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
