package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/geom"
	"github.com/matzehuels/anchor/pkg/measure"
	"github.com/matzehuels/anchor/pkg/overlay"
	"github.com/matzehuels/anchor/pkg/placement"
	"github.com/matzehuels/anchor/pkg/preview"
)

// One terminal cell stands for cellWidth x cellHeight viewport units.
const (
	cellWidth  = 10
	cellHeight = 20

	// exploreChrome is the number of terminal lines used around the grid.
	exploreChrome = 4
)

func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Move a trigger around and watch its overlay follow",
		Long: `Open an interactive view of one overlay inside the terminal-sized viewport.

Keys:
  ←/↑/→/↓  move the trigger        tab  next widget profile
  +/-      grow/shrink content     f    toggle flipping
  o        open/close              h    hover in/out (uses profile delays)
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, _, err := c.profiles()
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("starting explorer", "profiles", len(profiles))

			m := newExploreModel(cmd.Context(), profiles)
			defer func() { m.intent.Close() }()

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// intentMsg wakes the update loop after a hover-intent transition.
type intentMsg overlay.IntentState

// exploreModel is the bubbletea model for the explorer.
type exploreModel struct {
	ctx      context.Context
	profiles []placement.Profile
	current  int

	measurer *measure.Static
	pos      *overlay.Positioner
	intent   *overlay.Intent
	intentCh chan overlay.IntentState
	hovering bool

	trigger  geom.Rect
	content  geom.Rect
	viewport geom.Rect
	cols     int
	rows     int

	placement overlay.Placement
	err       error
}

func newExploreModel(ctx context.Context, profiles map[string]placement.Profile) *exploreModel {
	m := &exploreModel{
		ctx:      ctx,
		intentCh: make(chan overlay.IntentState, 16),
		cols:     80,
		rows:     24 - exploreChrome,
	}
	for i, name := range sortedNames(profiles) {
		m.profiles = append(m.profiles, profiles[name])
		if name == placement.ProfilePopover {
			m.current = i
		}
	}

	m.viewport = geom.Size(float64(m.cols*cellWidth), float64(m.rows*cellHeight))
	m.trigger = geom.NewRect(m.viewport.CenterX()-40, m.viewport.CenterY()-10, 80, 20)
	m.content = geom.Size(200, 120)

	m.measurer = measure.NewStatic(m.viewport)
	m.measurer.Set(triggerID, m.trigger)
	m.measurer.Set(contentID, m.content)

	// The TUI owns the terminal, so the positioner must not log to it.
	m.pos = overlay.NewPositioner(m.measurer, m.profile(), triggerID, contentID, log.New(io.Discard))
	m.intent = m.newIntent()
	m.update(overlay.EventOpen)
	return m
}

func (m *exploreModel) profile() placement.Profile {
	return m.profiles[m.current]
}

func (m *exploreModel) newIntent() *overlay.Intent {
	p := m.profile()
	ch := m.intentCh
	return overlay.NewIntent(m.pos.ID, p.OpenDelay, p.CloseDelay, overlay.WithOnChange(func(s overlay.IntentState) {
		// Update calls Enter and Leave itself, so this must never block. A
		// full channel already holds a wake-up, and intentMsg reads the live
		// state rather than the one sent.
		select {
		case ch <- s:
		default:
		}
	}))
}

func (m *exploreModel) waitIntent() tea.Cmd {
	ch := m.intentCh
	return func() tea.Msg {
		return intentMsg(<-ch)
	}
}

// update runs one positioning pass for ev.
func (m *exploreModel) update(ev overlay.Event) {
	m.placement, m.err = m.pos.Update(m.ctx, ev)
}

func (m *exploreModel) Init() tea.Cmd {
	return m.waitIntent()
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case intentMsg:
		switch m.intent.State() {
		case overlay.IntentOpen:
			m.update(overlay.EventOpen)
		case overlay.IntentClosed:
			m.update(overlay.EventClose)
		}
		return m, m.waitIntent()

	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 1)
		m.rows = max(msg.Height-exploreChrome, 1)
		m.viewport = geom.Size(float64(m.cols*cellWidth), float64(m.rows*cellHeight))
		m.measurer.SetViewport(m.viewport)
		m.update(overlay.EventResize)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left":
			m.moveTrigger(-cellWidth, 0)
		case "right":
			m.moveTrigger(cellWidth, 0)
		case "up":
			m.moveTrigger(0, -cellHeight)
		case "down":
			m.moveTrigger(0, cellHeight)
		case "+", "=":
			m.resizeContent(2*cellWidth, cellHeight)
		case "-", "_":
			m.resizeContent(-2*cellWidth, -cellHeight)
		case "tab":
			m.current = (m.current + 1) % len(m.profiles)
			m.pos.SetProfile(m.profile())
			m.intent.Close()
			m.intent = m.newIntent()
			m.hovering = false
			m.update(overlay.EventLayout)
		case "f":
			p := m.profile()
			p.AvoidCollisions = !p.AvoidCollisions
			m.profiles[m.current] = p
			m.pos.SetProfile(p)
			m.update(overlay.EventLayout)
		case "o":
			if m.pos.Open() {
				m.intent.Close()
				m.hovering = false
				m.update(overlay.EventClose)
			} else {
				m.update(overlay.EventOpen)
			}
		case "h":
			if m.hovering {
				m.intent.Leave()
			} else {
				m.intent.Enter()
			}
			m.hovering = !m.hovering
		}
	}
	return m, nil
}

// moveTrigger shifts the trigger like a scroll would.
func (m *exploreModel) moveTrigger(dx, dy float64) {
	m.trigger = m.trigger.Translate(dx, dy)
	m.measurer.Set(triggerID, m.trigger)
	m.update(overlay.EventScroll)
}

func (m *exploreModel) resizeContent(dw, dh float64) {
	w := max(m.content.Width+dw, 0)
	h := max(m.content.Height+dh, 0)
	m.content = geom.Size(w, h)
	m.measurer.Set(contentID, m.content)
	m.update(overlay.EventLayout)
}

func (m *exploreModel) View() string {
	var b strings.Builder
	p := m.profile()

	b.WriteString(StyleTitle.Render("anchor explore"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %s · flip %s · hover %s",
		p.Name, placementLabel(p), onOff(p.AvoidCollisions), m.intent.State())))
	b.WriteString("\n")

	s := scene(m.viewport, m.trigger, p, m.placement)
	b.WriteString(preview.Render(s, preview.Options{Cols: m.cols, Rows: m.rows}))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleWarning.Render(m.err.Error()))
	case m.placement.State == overlay.StatePositioned:
		b.WriteString(preview.Legend(s, false))
	default:
		b.WriteString(StyleDim.Render(string(m.placement.State)))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↑→↓ move  tab widget  +/- size  f flip  o open  h hover  q quit"))
	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
