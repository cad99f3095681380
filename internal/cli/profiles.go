package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/placement"
)

func (c *CLI) profilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List widget profiles",
		Long:  `List the built-in widget profiles with any overrides from the config file applied.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, _, err := c.profiles()
			if err != nil {
				return err
			}
			renderProfiles(cmd.OutOrStdout(), profiles)
			return nil
		},
	}
}

func renderProfiles(w io.Writer, profiles map[string]placement.Profile) {
	names := sortedNames(profiles)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		p := profiles[name]
		rows = append(rows, []string{
			p.Name,
			placementLabel(p),
			fmt.Sprintf("%g", p.SideOffset),
			fmt.Sprintf("%g", p.CollisionPadding),
			yesNo(p.AvoidCollisions),
			priorityLabel(p.Priority),
			yesNo(p.HideWhenDetached),
			delayLabel(p.OpenDelay, p.CloseDelay),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Widget", "Placement", "Offset", "Padding", "Flip", "Auto order", "Hide detached", "Delays").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Fprintln(w, t.Render())
}

func sortedNames(profiles map[string]placement.Profile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func placementLabel(p placement.Profile) string {
	if p.Side == placement.Auto {
		return string(placement.Auto)
	}
	side, align := p.Side, p.Align
	if side == "" {
		side = placement.Bottom
	}
	if align == "" {
		align = placement.Center
	}
	return string(side) + "-" + string(align)
}

func priorityLabel(prio []placement.Side) string {
	if len(prio) == 0 {
		prio = placement.DefaultPriority
	}
	parts := make([]string, len(prio))
	for i, s := range prio {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func delayLabel(openDelay, closeDelay time.Duration) string {
	if openDelay == 0 && closeDelay == 0 {
		return "—"
	}
	return openDelay.String() + "/" + closeDelay.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
