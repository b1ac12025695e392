package cli

import (
	"github.com/spf13/cobra"
)

var (
	installDir   string
	installForce bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the startup artifact",
	Long: `Write the startup artifact so overrides are re-applied on every host
interpreter start. Installation is idempotent; an existing foreign
startup file is refused unless --force is given, in which case it is
backed up first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		installer, err := newInstaller(installDir)
		if err != nil {
			return err
		}

		result, err := installer.Install(installForce)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.AlreadyInstalled {
			PrintInfo("Startup artifact already installed.")
			PrintLabelValue("Path", result.Path)
			return nil
		}
		PrintSuccess("Startup artifact installed")
		PrintLabelValue("Path", result.Path)
		if result.BackupPath != "" {
			PrintLabelValue("Backup", result.BackupPath)
		}
		return nil
	},
}

func init() {
	installCmd.Flags().StringVarP(&installDir, "dir", "d", "", "Destination directory for the startup artifact")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Overwrite a foreign startup file (backing it up)")
}
