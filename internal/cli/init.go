package cli

import (
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/xctgen/internal/config"
	"github.com/agentx-labs/xctgen/internal/scaffold"
	"github.com/spf13/cobra"
)

var initName string

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Template name (default: directory name)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter xctemplate.yaml",
	Long: `Create an xctemplate.yaml manifest in path (default: the current directory).

Every visible subdirectory becomes a scan directory. Edit the manifest, then run
'xctgen generate -f xctemplate.yaml'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	defaults := config.Current()
	data, err := scaffold.NewManifestData(dir, initName, defaults.Kind, defaults.GroupIndex, buildVersion)
	if err != nil {
		return err
	}

	result, err := scaffold.Generate(dir, data)
	if err != nil {
		return fmt.Errorf("initializing manifest: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.Path)
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}
	fmt.Fprintf(out, "Next: xctgen generate -f %s\n", filepath.Join(dir, data.FileName))
	return nil
}
