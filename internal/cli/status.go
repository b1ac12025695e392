package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show override and discovery state",
	Long: `Report which overrides are applied and the current editable path set.
This command never mutates host state.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(nil)
		if err != nil {
			return err
		}

		result := eng.Status()

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Status")
		for _, p := range result.Patches {
			if p.Applied {
				PrintSuccess(fmt.Sprintf("%-16s applied", p.Target))
			} else {
				PrintEmptyState(fmt.Sprintf("%-16s not applied", p.Target))
			}
		}
		fmt.Println()

		PrintLabelValue("Editable paths", PrintCount(result.PathCount, "path", "paths"))
		PrintLabelValue("Generation", fmt.Sprintf("%d", result.Generation))
		if len(result.Paths) > 0 {
			PrintList(result.Paths, 1)
		} else {
			PrintEmptyState("no editable installs discovered")
		}
		return nil
	},
}
