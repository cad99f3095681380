package placement

import (
	"math"
	"testing"

	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/geom"
)

func TestRequestValidate(t *testing.T) {
	valid := Request{
		Trigger:          geom.NewRect(10, 10, 100, 30),
		Content:          geom.Size(120, 80),
		Boundary:         geom.NewRect(0, 0, 800, 600),
		Side:             Bottom,
		Align:            Start,
		SideOffset:       8,
		CollisionPadding: 8,
		Priority:         []Side{Top, Bottom},
	}

	tests := []struct {
		name     string
		mutate   func(*Request)
		wantCode errors.Code
	}{
		{"valid", func(*Request) {}, ""},
		{"zero value sides", func(r *Request) { r.Side, r.Align = "", "" }, ""},
		{"negative content", func(r *Request) { r.Content.Width = -1 }, errors.ErrCodeInvalidRect},
		{"NaN trigger", func(r *Request) { r.Trigger.X = math.NaN() }, errors.ErrCodeInvalidRect},
		{"infinite offset", func(r *Request) { r.SideOffset = math.Inf(1) }, errors.ErrCodeInvalidInput},
		{"negative padding", func(r *Request) { r.CollisionPadding = -2 }, errors.ErrCodeInvalidInput},
		{"unknown side", func(r *Request) { r.Side = "up" }, errors.ErrCodeInvalidSide},
		{"unknown alignment", func(r *Request) { r.Align = "middle" }, errors.ErrCodeInvalidAlignment},
		{"auto in priority", func(r *Request) { r.Priority = []Side{Auto} }, errors.ErrCodeInvalidSide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}
