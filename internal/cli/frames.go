package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	recordio "github.com/matzehuels/autotype/pkg/io"
	"github.com/matzehuels/autotype/pkg/record"
	"github.com/matzehuels/autotype/pkg/typewriter"
)

// framesCommand creates the frames command for dumping the snapshot sequence.
func (c *CLI) framesCommand() *cobra.Command {
	var (
		batch int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "frames [pair]",
		Short: "Print the snapshot sequence as JSON lines",
		Long: `Print the snapshot sequence as JSON lines, one snapshot per line.

With --batch n only every n-th snapshot is printed, as the animation driver
publishes them; the last line is always the target.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if batch < 1 {
				return fmt.Errorf("--batch must be at least 1, got %d", batch)
			}
			pair, _, err := loadPair(cmd.Context(), args)
			if err != nil {
				return err
			}
			n, err := writeFrames(cmd.OutOrStdout(), pair, batch, limit)
			loggerFromContext(cmd.Context()).Debug("wrote frames", "count", n)
			return err
		},
	}

	cmd.Flags().IntVar(&batch, "batch", 1, "steps per printed snapshot")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many snapshots (0: no limit)")

	return cmd
}

// writeFrames writes the sequence of pair as JSON lines and returns the
// number of lines written. When the sequence runs out short of the target,
// as it does for mismatched shapes, the target is written as a final line.
func writeFrames(w io.Writer, pair *recordio.Pair, batch, limit int) (int, error) {
	seq := typewriter.New(pair.Start, pair.Target)
	enc := json.NewEncoder(w)

	var last *record.Record
	n := 0
	for limit <= 0 || n < limit {
		var snap *record.Record
		if batch == 1 {
			next, ok := seq.Next()
			if !ok {
				break
			}
			snap = next
		} else {
			pulled, count, _ := seq.Pull(batch)
			if count == 0 {
				break
			}
			snap = pulled
		}
		if err := enc.Encode(snap); err != nil {
			return n, fmt.Errorf("write frame: %w", err)
		}
		last = snap
		n++
	}

	if seq.Done() && last != nil && !record.Equal(last, pair.Target) && (limit <= 0 || n < limit) {
		if err := enc.Encode(pair.Target); err != nil {
			return n, fmt.Errorf("write frame: %w", err)
		}
		n++
	}
	return n, nil
}
