package cli

import (
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-run discovery and update applied overrides",
	Long: `Re-scan descriptor directories and push the updated path view into any
applied overrides. Overrides are not reapplied; they pick up the new
view on their next invocation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(nil)
		if err != nil {
			return err
		}

		count := eng.RefreshPaths()

		if jsonOutput {
			return outputJSON(struct {
				PathCount int `json:"path_count"`
			}{count})
		}

		PrintSuccess("Refreshed " + PrintCount(count, "editable path", "editable paths"))
		return nil
	},
}
