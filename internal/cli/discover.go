package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [dir...]",
	Short: "Scan for editable-install descriptors",
	Long: `Scan the configured directories (plus any [dir...] arguments) for
editable-install descriptors and print the source directories they
point at. No host state is touched.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(args)
		if err != nil {
			return err
		}

		set := eng.Discovery().Discover()

		if jsonOutput {
			return outputJSON(struct {
				Paths      []string `json:"paths"`
				PathCount  int      `json:"path_count"`
				Generation uint64   `json:"generation"`
			}{set.Paths(), set.Len(), set.Generation()})
		}

		PrintSection("Discover")
		PrintLabelValue("Scanned", PrintCount(len(eng.Discovery().BaseDirs()), "directory", "directories"))
		PrintLabelValue("Found", PrintCount(set.Len(), "editable path", "editable paths"))
		PrintLabelValue("Generation", fmt.Sprintf("%d", set.Generation()))
		if set.Len() > 0 {
			fmt.Println()
			PrintList(set.Paths(), 1)
		} else {
			PrintEmptyState("no editable installs discovered")
		}
		return nil
	},
}
