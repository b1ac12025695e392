package cli

import (
	"github.com/spf13/cobra"
)

var uninstallDir string

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the startup artifact",
	Long: `Remove the editfix startup artifact. Startup files not written by
editfix are left in place and reported as an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		installer, err := newInstaller(uninstallDir)
		if err != nil {
			return err
		}

		removed, err := installer.Uninstall()
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(struct {
				Removed bool   `json:"removed"`
				Path    string `json:"path"`
			}{removed, installer.Path()})
		}

		if !removed {
			PrintInfo("No startup artifact installed.")
			return nil
		}
		PrintSuccess("Startup artifact removed")
		PrintLabelValue("Path", installer.Path())
		return nil
	},
}

func init() {
	uninstallCmd.Flags().StringVarP(&uninstallDir, "dir", "d", "", "Directory holding the startup artifact")
}
