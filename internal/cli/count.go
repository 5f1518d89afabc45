package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autotype/pkg/animation"
	recordio "github.com/matzehuels/autotype/pkg/io"
	"github.com/matzehuels/autotype/pkg/record"
	"github.com/matzehuels/autotype/pkg/typewriter"
)

// pairStats summarizes how much typing a pair takes.
type pairStats struct {
	TargetChars int
	StartChars  int
	Steps       int
	Ticks       int
	TypingTime  time.Duration
}

// countPair walks the whole sequence of pair under cfg.
func countPair(pair *recordio.Pair, cfg animation.Config) pairStats {
	seq := typewriter.New(pair.Start, pair.Target)
	for range seq.All() {
	}
	stats := pairStats{
		TargetChars: record.CountChars(pair.Target),
		StartChars:  record.CountChars(pair.Start),
		Steps:       seq.Steps(),
		TypingTime:  cfg.TypingTime(seq.Steps()),
	}
	if cfg.ElementsPerTick > 0 {
		stats.Ticks = (stats.Steps + cfg.ElementsPerTick - 1) / cfg.ElementsPerTick
	}
	return stats
}

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count [pair]",
		Short: "Count the characters of a pair and estimate its typing time",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			pair, source, err := loadPair(cmd.Context(), args)
			if err != nil {
				return err
			}

			anim := cfg.AnimationConfig()
			stats := countPair(pair, anim)

			printTitle(source)
			printKeyValue("Target", StyleNumber.Render(fmt.Sprintf("%d", stats.TargetChars))+" characters")
			printKeyValue("Start", StyleNumber.Render(fmt.Sprintf("%d", stats.StartChars))+" characters")
			printKeyValue("Snapshots", StyleNumber.Render(fmt.Sprintf("%d", stats.Steps)))
			printKeyValue("Ticks", fmt.Sprintf("%d × %d per tick @ %s", stats.Ticks, anim.ElementsPerTick, anim.TickInterval))
			printKeyValue("Typing time", StyleHighlight.Render(stats.TypingTime.String()))
			if stats.TypingTime > anim.ResetInterval {
				printWarning("Typing takes longer than the reset interval (%s); the target is never reached", anim.ResetInterval)
			}
			return nil
		},
	}
}
