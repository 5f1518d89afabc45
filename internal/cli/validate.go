package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/autotype/pkg/errors"
	recordio "github.com/matzehuels/autotype/pkg/io"
	"github.com/matzehuels/autotype/pkg/record"
)

// checkPair reports problems the animation would silently skip over.
// The shape check is an error; autofill problems are warnings.
func checkPair(pair *recordio.Pair) (warnings []string, err error) {
	if err := record.SameShape(pair.Start, pair.Target); err != nil {
		return nil, err
	}
	for _, step := range pair.Autofill {
		tv, ok := record.Lookup(pair.Target, step.Path)
		switch {
		case !ok:
			warnings = append(warnings, fmt.Sprintf("autofill %s: path not in target", step.Path))
		case step.Value != nil && tv.Kind() != step.Value.Kind():
			warnings = append(warnings, fmt.Sprintf("autofill %s: %s value for a %s field", step.Path, step.Value.Kind(), tv.Kind()))
		}
		if step.Guard != "" {
			if _, ok := record.Lookup(pair.Target, step.Guard); !ok {
				warnings = append(warnings, fmt.Sprintf("autofill %s: guard %s not in target", step.Path, step.Guard))
			}
		}
	}
	return warnings, nil
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [pair]",
		Short: "Check that start and target have the same shape",
		Long: `Check that start and target have the same shape.

The animation tolerates mismatched shapes by skipping the fields that differ,
which leaves those fields untyped. validate reports the first mismatch, and
autofill steps whose paths are not in the target.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, source, err := loadPair(cmd.Context(), args)
			if err != nil {
				return err
			}

			warnings, err := checkPair(pair)
			if err != nil {
				printError("%s", apperr.UserMessage(err))
				return err
			}
			for _, w := range warnings {
				printWarning("%s", w)
			}

			printSuccess("%s: start and target have the same shape", source)
			printDetail("%d autofill steps", len(pair.Autofill))
			if len(args) > 0 {
				printNextStep("Preview it", "autotype preview "+args[0])
			}
			return nil
		},
	}
}
