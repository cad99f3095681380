package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/config"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/geom"
	"github.com/matzehuels/anchor/pkg/measure"
	"github.com/matzehuels/anchor/pkg/overlay"
	"github.com/matzehuels/anchor/pkg/placement"
	"github.com/matzehuels/anchor/pkg/preview"
)

// Measurement ids used when the CLI drives a positioner from flags.
const (
	triggerID = "trigger"
	contentID = "content"
)

// placeFlags holds the inputs shared by place and preview.
type placeFlags struct {
	widget      string
	trigger     string
	content     string
	viewport    string
	placement   string
	sideOffset  float64
	alignOffset float64
	padding     float64
	noFlip      bool
	priority    string
	round       bool
}

// register binds the flags. names supplies --widget completions.
func (f *placeFlags) register(cmd *cobra.Command, names func() []string) {
	fs := cmd.Flags()
	fs.StringVarP(&f.widget, "widget", "w", placement.ProfilePopover, "widget profile ("+strings.Join(placement.ProfileNames(), ", ")+")")
	fs.StringVarP(&f.trigger, "trigger", "t", "", "trigger rectangle x,y,w,h (required)")
	fs.StringVarP(&f.content, "content", "c", "", "content size w,h (required)")
	fs.StringVar(&f.viewport, "viewport", "", "boundary w,h or x,y,w,h (default from config, else 800,600)")
	fs.StringVarP(&f.placement, "placement", "p", "", "side and alignment, e.g. bottom-start or auto")
	fs.Float64Var(&f.sideOffset, "side-offset", 0, "gap between trigger and content")
	fs.Float64Var(&f.alignOffset, "align-offset", 0, "shift along the alignment axis")
	fs.Float64Var(&f.padding, "padding", 0, "collision padding kept from the boundary edges")
	fs.BoolVar(&f.noFlip, "no-flip", false, "never flip to the opposite side")
	fs.StringVar(&f.priority, "priority", "", "side order tried by auto, e.g. top,bottom")
	fs.BoolVar(&f.round, "round", false, "round coordinates to whole pixels")

	_ = cmd.MarkFlagRequired("trigger")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.RegisterFlagCompletionFunc("widget", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names(), cobra.ShellCompDirectiveNoFileComp
	})
}

// override turns the flags the user set into a profile override. Unset
// flags keep the profile's values.
func (f *placeFlags) override(cmd *cobra.Command) (config.ProfileOverride, error) {
	var o config.ProfileOverride
	changed := cmd.Flags().Changed

	if changed("placement") {
		o.Placement = &f.placement
	}
	if changed("side-offset") {
		o.SideOffset = &f.sideOffset
	}
	if changed("align-offset") {
		o.AlignOffset = &f.alignOffset
	}
	if changed("padding") {
		o.CollisionPadding = &f.padding
	}
	if changed("no-flip") {
		avoid := !f.noFlip
		o.AvoidCollisions = &avoid
	}
	if changed("priority") {
		prio, err := placement.ParsePriority(f.priority)
		if err != nil {
			return o, err
		}
		for _, s := range prio {
			o.Priority = append(o.Priority, s.String())
		}
	}
	return o, nil
}

// placeInput is a validated request ready to be positioned.
type placeInput struct {
	profile  placement.Profile
	trigger  geom.Rect
	content  geom.Rect
	viewport geom.Rect
}

func (c *CLI) placeInput(cmd *cobra.Command, f *placeFlags) (placeInput, error) {
	profiles, cfg, err := c.profiles()
	if err != nil {
		return placeInput{}, err
	}
	base, ok := profiles[f.widget]
	if !ok {
		return placeInput{}, errors.New(errors.ErrCodeNotFound, "unknown widget %q (have %s)", f.widget, strings.Join(sortedNames(profiles), ", "))
	}

	o, err := f.override(cmd)
	if err != nil {
		return placeInput{}, err
	}
	p, err := config.Apply(base, o)
	if err != nil {
		return placeInput{}, err
	}

	in := placeInput{profile: p}
	if in.trigger, err = geom.ParseRect(f.trigger); err != nil {
		return placeInput{}, fmt.Errorf("--trigger: %w", err)
	}
	if in.content, err = geom.ParseSize(f.content); err != nil {
		return placeInput{}, fmt.Errorf("--content: %w", err)
	}
	if in.viewport, err = parseViewport(f.viewport, cfg); err != nil {
		return placeInput{}, fmt.Errorf("--viewport: %w", err)
	}

	if err := p.Request(in.trigger, in.content, in.viewport).Validate(); err != nil {
		return placeInput{}, err
	}
	return in, nil
}

// parseViewport accepts "w,h" (origin 0,0) or "x,y,w,h". Empty uses the
// configured size.
func parseViewport(s string, cfg *config.Config) (geom.Rect, error) {
	if s == "" {
		w, h := viewportSize(cfg)
		return geom.Size(w, h), nil
	}
	if strings.Count(s, ",") == 3 {
		return geom.ParseRect(s)
	}
	return geom.ParseSize(s)
}

// position runs one positioning pass through an overlay positioner backed by
// static measurements.
func (c *CLI) position(ctx context.Context, in placeInput) (overlay.Placement, error) {
	m := measure.NewStatic(in.viewport)
	m.Set(triggerID, in.trigger)
	m.Set(contentID, in.content)

	pos := overlay.NewPositioner(m, in.profile, triggerID, contentID, loggerFromContext(ctx))
	return pos.Update(ctx, overlay.EventOpen)
}

// =============================================================================
// place
// =============================================================================

func (c *CLI) placeCommand() *cobra.Command {
	var (
		f       placeFlags
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Compute where a floating element goes",
		Long: `Compute the position of a floating element next to its trigger.

The widget profile supplies the defaults; any flag you set overrides it.`,
		Example: `  anchor place --widget dropdown --trigger 50,100,100,30 --content 120,80
  anchor place -t 700,300,40,20 -c 200,100 -p auto --priority right,left --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.placeInput(cmd, &f)
			if err != nil {
				return err
			}
			pl, err := c.position(cmd.Context(), in)
			if err != nil {
				return err
			}
			if f.round {
				pl.Result = pl.Result.Rounded()
				pl.Content = pl.Result.Rect(in.content)
			}

			if jsonOut {
				return writePlacementJSON(cmd.OutOrStdout(), in, pl)
			}
			printPlacement(cmd.OutOrStdout(), in, pl)
			return nil
		},
	}

	f.register(cmd, c.widgetNames)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	return cmd
}

// placeOutput is the JSON shape printed by place --json.
type placeOutput struct {
	Widget  string           `json:"widget"`
	State   overlay.State    `json:"state"`
	Result  placement.Result `json:"result"`
	Content geom.Rect        `json:"content"`
	Spaces  placement.Spaces `json:"spaces"`
}

func writePlacementJSON(w io.Writer, in placeInput, pl overlay.Placement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(placeOutput{
		Widget:  in.profile.Name,
		State:   pl.State,
		Result:  pl.Result,
		Content: pl.Content,
		Spaces:  placement.Space(in.trigger, in.viewport, in.profile.SideOffset, in.profile.CollisionPadding),
	})
}

func printPlacement(w io.Writer, in placeInput, pl overlay.Placement) {
	switch pl.State {
	case overlay.StateHidden:
		printWarning(w, "%s hidden: trigger %s is outside the viewport", in.profile.Name, in.trigger)
		return
	case overlay.StatePending:
		printInfo(w, "%s pending: content has no size", in.profile.Name)
		return
	}

	res := pl.Result
	printSuccess(w, "%s placed on %s", in.profile.Name, res.Side)
	printKeyValue(w, "position", fmt.Sprintf("%g, %g", res.X, res.Y))
	printKeyValue(w, "content", pl.Content.String())
	printKeyValue(w, "viewport", in.viewport.String())
	if res.Flipped {
		printInfo(w, "flipped from %s", res.Side.Opposite())
	}
	if res.Degraded {
		printWarning(w, "content is larger than the viewport, pinned to its top-left")
	}
}

// =============================================================================
// preview
// =============================================================================

func (c *CLI) previewCommand() *cobra.Command {
	var (
		f     placeFlags
		opts  = preview.DefaultOptions()
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw a placement as a character grid",
		Long: `Draw the viewport, trigger and positioned content as a grid of
characters, one cell per viewport/cols by viewport/rows area.`,
		Example: `  anchor preview --widget hover-card --trigger 380,20,40,20 --content 200,120`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.placeInput(cmd, &f)
			if err != nil {
				return err
			}
			pl, err := c.position(cmd.Context(), in)
			if err != nil {
				return err
			}
			if f.round {
				pl.Result = pl.Result.Rounded()
				pl.Content = pl.Result.Rect(in.content)
			}

			opts.Plain = plain
			s := scene(in.viewport, in.trigger, in.profile, pl)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, preview.Render(s, opts))
			fmt.Fprintln(out, preview.Legend(s, plain))
			return nil
		},
	}

	f.register(cmd, c.widgetNames)
	cmd.Flags().IntVar(&opts.Cols, "cols", opts.Cols, "grid columns")
	cmd.Flags().IntVar(&opts.Rows, "rows", opts.Rows, "grid rows")
	cmd.Flags().BoolVar(&plain, "plain", false, "glyphs only, no colours")
	return cmd
}

// scene converts a placement into something preview can draw.
func scene(viewport, trigger geom.Rect, p placement.Profile, pl overlay.Placement) preview.Scene {
	return preview.Scene{
		Boundary: viewport,
		Trigger:  trigger,
		Content:  pl.Content,
		Padding:  p.CollisionPadding,
		Result:   pl.Result,
		Hidden:   pl.State != overlay.StatePositioned,
	}
}
