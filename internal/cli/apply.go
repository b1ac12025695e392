package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var applyForce bool

var applyCmd = &cobra.Command{
	Use:   "apply [dir...]",
	Short: "Discover editable paths and apply all overrides",
	Long: `Run the full patch pass: discover editable-install descriptors, merge
their source directories into the host search list, and install the
path and import overrides in priority order.

Extra [dir...] arguments are scanned for descriptors in addition to the
configured directories. Steps whose interception point the host does
not expose are skipped, never fatal.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(args)
		if err != nil {
			return err
		}

		result := eng.ApplyAll(applyForce)

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Apply")
		for _, step := range result.Steps {
			note := step.Detail
			if step.Err != "" {
				note = step.Err
			}
			PrintStep(step.Rank, step.Name, step.Success, step.TargetFound, step.AlreadyApplied, note)
		}
		fmt.Println()

		PrintLabelValue("Editable paths", PrintCount(result.PathCount, "path", "paths"))
		PrintLabelValue("Generation", fmt.Sprintf("%d", result.Generation))
		if len(result.Paths) > 0 {
			PrintList(result.Paths, 1)
		}

		if !result.Success {
			PrintWarning("Apply completed with no effective overrides")
			return nil
		}
		PrintSuccess("Apply complete")
		return nil
	},
}

func init() {
	applyCmd.Flags().BoolVarP(&applyForce, "force", "f", false, "Re-parse descriptors even if unchanged")
}
