package placement

import (
	"sort"
	"time"

	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/geom"
)

// Built-in profile names.
const (
	ProfileContextMenu = "context-menu"
	ProfileDropdown    = "dropdown"
	ProfilePopover     = "popover"
	ProfileHoverCard   = "hover-card"
)

// Profile captures one widget's placement defaults and hover timing.
type Profile struct {
	Name string `json:"name"`

	Side             Side      `json:"side"`
	Align            Alignment `json:"align"`
	SideOffset       float64   `json:"side_offset"`
	AlignOffset      float64   `json:"align_offset"`
	CollisionPadding float64   `json:"collision_padding"`
	AvoidCollisions  bool      `json:"avoid_collisions"`
	Priority         []Side    `json:"priority"`

	// HideWhenDetached hides the overlay instead of positioning it when
	// the trigger has scrolled out of the boundary.
	HideWhenDetached bool `json:"hide_when_detached"`

	OpenDelay  time.Duration `json:"open_delay"`
	CloseDelay time.Duration `json:"close_delay"`
}

// Request builds a placement request from the profile and measured rects.
func (p Profile) Request(trigger, content, boundary geom.Rect) Request {
	return Request{
		Trigger:          trigger,
		Content:          content,
		Boundary:         boundary,
		Side:             p.Side,
		Align:            p.Align,
		SideOffset:       p.SideOffset,
		AlignOffset:      p.AlignOffset,
		CollisionPadding: p.CollisionPadding,
		AvoidCollisions:  p.AvoidCollisions,
		Priority:         append([]Side(nil), p.Priority...),
	}
}

// Validate checks that the profile describes a usable placement.
func (p Profile) Validate() error {
	if err := errors.ValidateProfileName(p.Name); err != nil {
		return err
	}
	req := p.Request(geom.Rect{}, geom.Rect{}, geom.Rect{})
	if err := req.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidProfile, err, "profile %s", p.Name)
	}
	if p.OpenDelay < 0 || p.CloseDelay < 0 {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %s has a negative delay", p.Name)
	}
	return nil
}

// Profiles returns the built-in widget profiles keyed by name. The map is a
// fresh copy on every call.
//
//	context-menu  bottom-start, offset 2, flips, keeps submenus open 100ms
//	dropdown      bottom-start, offset 8, flips, hides when its trigger scrolls away
//	popover       bottom-center, offset 8, flips
//	hover-card    top-center, offset 8, padding 10, prefers top, 700ms/300ms intent delays
func Profiles() map[string]Profile {
	return map[string]Profile{
		ProfileContextMenu: {
			Name:             ProfileContextMenu,
			Side:             Bottom,
			Align:            Start,
			SideOffset:       2,
			CollisionPadding: 8,
			AvoidCollisions:  true,
			Priority:         []Side{Bottom, Top, Right, Left},
			CloseDelay:       100 * time.Millisecond,
		},
		ProfileDropdown: {
			Name:             ProfileDropdown,
			Side:             Bottom,
			Align:            Start,
			SideOffset:       8,
			CollisionPadding: 8,
			AvoidCollisions:  true,
			Priority:         []Side{Bottom, Top, Right, Left},
			HideWhenDetached: true,
		},
		ProfilePopover: {
			Name:             ProfilePopover,
			Side:             Bottom,
			Align:            Center,
			SideOffset:       8,
			CollisionPadding: 8,
			AvoidCollisions:  true,
			Priority:         []Side{Bottom, Top, Right, Left},
		},
		ProfileHoverCard: {
			Name:             ProfileHoverCard,
			Side:             Top,
			Align:            Center,
			SideOffset:       8,
			CollisionPadding: 10,
			AvoidCollisions:  true,
			Priority:         []Side{Top, Bottom, Right, Left},
			OpenDelay:        700 * time.Millisecond,
			CloseDelay:       300 * time.Millisecond,
		},
	}
}

// ProfileNames returns the built-in profile names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, 4)
	for name := range Profiles() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupProfile returns the built-in profile with the given name.
func LookupProfile(name string) (Profile, error) {
	p, ok := Profiles()[name]
	if !ok {
		return Profile{}, errors.New(errors.ErrCodeNotFound, "unknown profile %q", name)
	}
	return p, nil
}
