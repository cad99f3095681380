// Package config loads profile overrides for anchor from TOML or YAML files.
//
// A config file can adjust any built-in widget profile and define new ones
// that extend a built-in:
//
//	[viewport]
//	width = 1280
//	height = 720
//
//	[profiles.hover-card]
//	placement = "bottom-center"
//	open_delay = "400ms"
//
//	[profiles.tooltip]
//	extends = "popover"
//	side_offset = 4
//	priority = ["top", "bottom"]
//
// The same structure is accepted as YAML when the file ends in .yaml or .yml.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/placement"
)

const (
	appName     = "anchor"
	defaultFile = "config.toml"
)

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Config is the decoded config file.
type Config struct {
	Viewport *Viewport                 `toml:"viewport" yaml:"viewport"`
	Profiles map[string]ProfileOverride `toml:"profiles" yaml:"profiles"`
}

// Viewport sets the boundary size used by the CLI when none is given.
type Viewport struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

// ProfileOverride changes fields of a profile. Nil fields keep the base
// value.
type ProfileOverride struct {
	// Extends names the built-in profile a new profile starts from.
	// Defaults to popover. Ignored for built-in names.
	Extends string `toml:"extends" yaml:"extends"`

	Placement        *string  `toml:"placement" yaml:"placement"` // e.g. "bottom-start"
	SideOffset       *float64 `toml:"side_offset" yaml:"side_offset"`
	AlignOffset      *float64 `toml:"align_offset" yaml:"align_offset"`
	CollisionPadding *float64 `toml:"collision_padding" yaml:"collision_padding"`
	AvoidCollisions  *bool    `toml:"avoid_collisions" yaml:"avoid_collisions"`
	Priority         []string `toml:"priority" yaml:"priority"`
	HideWhenDetached *bool    `toml:"hide_when_detached" yaml:"hide_when_detached"`
	OpenDelay        *string  `toml:"open_delay" yaml:"open_delay"`
	CloseDelay       *string  `toml:"close_delay" yaml:"close_delay"`
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config file type %q (want .toml, .yaml or .yml)", filepath.Ext(path))
}

// Parse decodes data in the given format and validates it.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return cfg, nil
}

// LoadDefault loads the config from DefaultPath. A missing file yields an
// empty config.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Config{}, nil
	}
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return &Config{}, nil
	}
	return cfg, err
}

// DefaultPath returns the config path using XDG standard
// (~/.config/anchor/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, defaultFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, defaultFile), nil
}

// Validate checks the config by resolving every profile.
func (c *Config) Validate() error {
	if c.Viewport != nil {
		if err := errors.ValidateRect("viewport", 0, 0, c.Viewport.Width, c.Viewport.Height); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "viewport")
		}
	}
	_, err := c.ResolveProfiles()
	return err
}

// ResolveProfiles returns the built-in profiles with the config's overrides
// applied, plus any new profiles the config defines.
func (c *Config) ResolveProfiles() (map[string]placement.Profile, error) {
	profiles := placement.Profiles()
	for name, o := range c.Profiles {
		base, ok := profiles[name]
		if !ok {
			extends := o.Extends
			if extends == "" {
				extends = placement.ProfilePopover
			}
			parent, err := placement.LookupProfile(extends)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "profile %s extends", name)
			}
			base = parent
			base.Name = name
		}
		p, err := Apply(base, o)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "profile %s", name)
		}
		profiles[name] = p
	}
	return profiles, nil
}

// Profile resolves a single profile by name.
func (c *Config) Profile(name string) (placement.Profile, error) {
	profiles, err := c.ResolveProfiles()
	if err != nil {
		return placement.Profile{}, err
	}
	p, ok := profiles[name]
	if !ok {
		return placement.Profile{}, errors.New(errors.ErrCodeNotFound, "unknown profile %q", name)
	}
	return p, nil
}

// Apply returns base with the non-nil fields of o applied, validated.
func Apply(base placement.Profile, o ProfileOverride) (placement.Profile, error) {
	p := base
	p.Priority = append([]placement.Side(nil), base.Priority...)

	if o.Placement != nil {
		side, align, err := placement.ParsePlacement(*o.Placement)
		if err != nil {
			return p, err
		}
		p.Side, p.Align = side, align
	}
	if o.SideOffset != nil {
		p.SideOffset = *o.SideOffset
	}
	if o.AlignOffset != nil {
		p.AlignOffset = *o.AlignOffset
	}
	if o.CollisionPadding != nil {
		p.CollisionPadding = *o.CollisionPadding
	}
	if o.AvoidCollisions != nil {
		p.AvoidCollisions = *o.AvoidCollisions
	}
	if o.Priority != nil {
		prio, err := placement.ParsePriority(strings.Join(o.Priority, ","))
		if err != nil {
			return p, err
		}
		p.Priority = prio
	}
	if o.HideWhenDetached != nil {
		p.HideWhenDetached = *o.HideWhenDetached
	}
	if o.OpenDelay != nil {
		d, err := parseDelay("open_delay", *o.OpenDelay)
		if err != nil {
			return p, err
		}
		p.OpenDelay = d
	}
	if o.CloseDelay != nil {
		d, err := parseDelay("close_delay", *o.CloseDelay)
		if err != nil {
			return p, err
		}
		p.CloseDelay = d
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func parseDelay(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", field)
	}
	return d, nil
}
