package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/buildinfo"
	"github.com/matzehuels/anchor/pkg/config"
	"github.com/matzehuels/anchor/pkg/placement"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "anchor"

	// defaultViewportWidth and defaultViewportHeight size the boundary when
	// neither a flag nor the config file gives one.
	defaultViewportWidth  = 800
	defaultViewportHeight = 600
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the --config flag. Empty means the default
	// location, where a missing file is not an error.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Anchor positions floating elements next to their triggers",
		Long:          `Anchor computes where dropdowns, popovers, hover cards and context menus go: against a side of their trigger, aligned, flipped away from viewport edges and clamped inside it.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/anchor/config.toml)")

	// Register all subcommands
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.profilesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config Helpers
// =============================================================================

// loadConfig reads the --config file, or the default file when the flag is
// unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}

// profiles returns the built-in profiles with config overrides applied.
func (c *CLI) profiles() (map[string]placement.Profile, *config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	profiles, err := cfg.ResolveProfiles()
	if err != nil {
		return nil, nil, err
	}
	return profiles, cfg, nil
}

// widgetNames lists the profiles a --widget flag accepts. A broken config
// file falls back to the built-ins so completion keeps working.
func (c *CLI) widgetNames() []string {
	profiles, _, err := c.profiles()
	if err != nil {
		return placement.ProfileNames()
	}
	return sortedNames(profiles)
}

// viewportSize returns the configured viewport size or the default.
func viewportSize(cfg *config.Config) (width, height float64) {
	if cfg != nil && cfg.Viewport != nil && cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		return cfg.Viewport.Width, cfg.Viewport.Height
	}
	return defaultViewportWidth, defaultViewportHeight
}
