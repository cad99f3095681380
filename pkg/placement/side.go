package placement

import (
	"strings"

	"github.com/matzehuels/anchor/pkg/errors"
)

// Side is the edge of the trigger the content is placed against.
type Side string

const (
	Top    Side = "top"
	Bottom Side = "bottom"
	Left   Side = "left"
	Right  Side = "right"

	// Auto lets the engine choose the first side, in priority order, with
	// enough room for the content.
	Auto Side = "auto"
)

// DefaultPriority is the order Auto tries sides in when a request does not
// supply its own.
var DefaultPriority = []Side{Bottom, Top, Right, Left}

// Opposite returns the side across the trigger. Auto has no opposite and is
// returned unchanged.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return s
}

// Vertical reports whether the side places content above or below the
// trigger, making Y the main axis.
func (s Side) Vertical() bool {
	return s == Top || s == Bottom
}

// Valid reports whether s is one of the known sides. The empty side is valid
// and means Bottom.
func (s Side) Valid() bool {
	switch s {
	case "", Top, Bottom, Left, Right, Auto:
		return true
	}
	return false
}

func (s Side) orDefault() Side {
	if s == "" || !s.Valid() {
		return Bottom
	}
	return s
}

// String names the side. The zero value prints as the bottom it stands for;
// an unknown side prints verbatim so bad input stays visible in logs.
func (s Side) String() string {
	if s == "" {
		return string(Bottom)
	}
	return string(s)
}

// Alignment positions the content on the cross axis of its side.
type Alignment string

const (
	Start  Alignment = "start"
	Center Alignment = "center"
	End    Alignment = "end"
)

// Valid reports whether a is a known alignment. The empty alignment is valid
// and means Center.
func (a Alignment) Valid() bool {
	switch a {
	case "", Start, Center, End:
		return true
	}
	return false
}

func (a Alignment) String() string {
	if a == "" {
		return string(Center)
	}
	return string(a)
}

// ParseSide parses a side name, case-insensitively.
func ParseSide(s string) (Side, error) {
	side := Side(strings.ToLower(strings.TrimSpace(s)))
	if side == "" || !side.Valid() {
		return "", errors.New(errors.ErrCodeInvalidSide, "unknown side %q (want top, bottom, left, right or auto)", s)
	}
	return side, nil
}

// ParseAlignment parses an alignment name, case-insensitively.
func ParseAlignment(s string) (Alignment, error) {
	a := Alignment(strings.ToLower(strings.TrimSpace(s)))
	if a == "" || !a.Valid() {
		return "", errors.New(errors.ErrCodeInvalidAlignment, "unknown alignment %q (want start, center or end)", s)
	}
	return a, nil
}

// ParsePlacement parses a combined "side" or "side-alignment" token such as
// "bottom-start" or "left". A missing alignment means Center.
func ParsePlacement(s string) (Side, Alignment, error) {
	sidePart, alignPart, hasAlign := strings.Cut(s, "-")
	side, err := ParseSide(sidePart)
	if err != nil {
		return "", "", err
	}
	if !hasAlign {
		return side, Center, nil
	}
	align, err := ParseAlignment(alignPart)
	if err != nil {
		return "", "", err
	}
	return side, align, nil
}

// ParsePriority parses a comma-separated priority list such as
// "top,bottom,right,left". Auto is not allowed in a priority list.
func ParsePriority(s string) ([]Side, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Side
	for _, part := range strings.Split(s, ",") {
		side, err := ParseSide(part)
		if err != nil {
			return nil, err
		}
		if side == Auto {
			return nil, errors.New(errors.ErrCodeInvalidSide, "auto cannot appear in a priority list")
		}
		out = append(out, side)
	}
	return out, nil
}
