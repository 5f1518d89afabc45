package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autotype/pkg/pipeline"
	"github.com/matzehuels/autotype/pkg/record"
)

// renderCommand creates the render command for one-shot rendering.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		start   bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [pair]",
		Short: "Render the target of a pair",
		Long: `Render the target of a pair as styled terminal text, markdown or JSON.

Defaults for format, style and width come from the [render] table of the
config file. Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			defaults := cfg.RenderOptions()
			if !cmd.Flags().Changed("format") {
				opts.Format = defaults.Format
			}
			if !cmd.Flags().Changed("style") {
				opts.Style = defaults.Style
			}
			if !cmd.Flags().Changed("width") {
				opts.Width = defaults.Width
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			pair, _, err := loadPair(cmd.Context(), args)
			if err != nil {
				return err
			}
			rec := pair.Target
			if start {
				rec = pair.Start
			}
			return c.runRender(cmd.Context(), rec, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached output")
	cmd.Flags().BoolVar(&start, "start", false, "render the start record instead of the target")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", pipeline.DefaultFormat, "output format: terminal (default), markdown, json")
	cmd.Flags().StringVar(&opts.Style, "style", pipeline.DefaultStyle, "terminal style: auto (default), dark, light, notty, ascii")
	cmd.Flags().IntVar(&opts.Width, "width", pipeline.DefaultWidth, "word-wrap width (terminal)")

	return cmd
}

// runRender renders rec and writes it to output, or stdout if output is empty.
func (c *CLI) runRender(ctx context.Context, rec *record.Record, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	result, err := runner.Render(ctx, rec, opts)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := stdout.Write(result.Data)
		return err
	}

	if err := os.WriteFile(output, result.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	prog.done("Rendered " + opts.Format)
	printFile(output)
	printStats(opts.Format, len(result.Data), result.CacheHit)
	return nil
}
