package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autotype/pkg/resume"
)

// demoCommand creates the demo command, which prints the embedded demo pair
// as a starting point for custom pairs.
func (c *CLI) demoCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the embedded demo pair file",
		Long: `Print the embedded demo pair file.

Every command that takes a pair uses the demo when none is given. Write it to
a file to use it as a template:

  autotype demo -o pair.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := resume.DemoSource()
			if output == "" {
				_, err := cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.WriteFile(output, src, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printFile(output)
			printNextStep("Preview it", "autotype preview "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
