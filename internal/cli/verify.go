package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify editable paths are resolvable",
	Long: `Check that every discovered editable path is present in the host search
list and report the override state. Exits nonzero when paths are
missing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(nil)
		if err != nil {
			return err
		}

		result := eng.Verify()

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else {
			PrintSection("Verify")
			PrintLabelValue("Status", result.Status)
			PrintLabelValue("Editable paths", PrintCount(len(result.EditablePaths), "path", "paths"))
			PrintLabelValue("In search list", fmt.Sprintf("%d", len(result.InSearchList)))
			if len(result.Missing) > 0 {
				fmt.Println()
				PrintWarning("Missing from search list:")
				PrintList(result.Missing, 1)
			}
		}

		if result.Status != "ok" {
			return fmt.Errorf("verification reported %q", result.Status)
		}
		return nil
	},
}
