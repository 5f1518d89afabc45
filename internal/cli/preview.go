package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autotype/pkg/animation"
	"github.com/matzehuels/autotype/pkg/record"
	"github.com/matzehuels/autotype/pkg/render"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		style  string
		width  int
		noFill bool
	)

	cmd := &cobra.Command{
		Use:   "preview [pair]",
		Short: "Play the animation in the terminal",
		Long: `Play the animation in the terminal.

The published record is rendered as styled markdown on every change. The
cadence comes from the [animation] table of the config file.

Keys: space pauses, r resets, f applies one autofill step, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			anim := cfg.AnimationConfig()
			if err := anim.Validate(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("style") {
				style = cfg.Render.Style
			}
			if !cmd.Flags().Changed("width") && cfg.Render.Width > 0 {
				width = cfg.Render.Width
			}

			pair, source, err := loadPair(ctx, args)
			if err != nil {
				return err
			}
			term, err := render.NewTerminal(render.TerminalOptions{Width: width, Style: style})
			if err != nil {
				return err
			}

			logger := loggerFromContext(ctx)
			logger.Debug("starting preview", "source", source, "chars", record.CountChars(pair.Target))

			a := animation.New(pair.Start, pair.Target, anim,
				animation.WithFiller(animation.NewFiller(pair.Autofill...)),
			)
			model := NewPreviewModel(ctx, a, term, !noFill)
			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", render.StyleAuto, "terminal style: auto (default), dark, light, notty, ascii")
	cmd.Flags().IntVar(&width, "width", render.DefaultWidth, "word-wrap width")
	cmd.Flags().BoolVar(&noFill, "no-fill", false, "do not apply autofill steps on a timer")

	return cmd
}
