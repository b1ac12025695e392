package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove all applied overrides",
	Long: `Remove every applied override, restoring the host's original behavior
at each interception point. Removal runs in reverse apply order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(nil)
		if err != nil {
			return err
		}

		result := eng.RemoveAll()

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Remove")
		for _, step := range result.Steps {
			PrintStep(step.Rank, step.Name, step.Success, step.TargetFound, false, step.Detail)
		}
		fmt.Println()

		if !result.Success {
			PrintInfo("No overrides were applied.")
			return nil
		}
		PrintSuccess("Overrides removed")
		return nil
	},
}
