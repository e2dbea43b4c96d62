package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/agentx-labs/xctgen/internal/descriptor"
	"github.com/agentx-labs/xctgen/internal/generate"
	"github.com/spf13/cobra"
)

var verifyFlags templateFlags

// errDescriptorDrift is returned when a descriptor no longer matches its sources.
var errDescriptorDrift = errors.New("descriptor is out of date")

var verifyCmd = &cobra.Command{
	Use:   "verify <plist> [dir...]",
	Short: "Check that a TemplateInfo.plist matches its sources",
	Long: `Regenerate the descriptor from the given directories and compare it with an
existing TemplateInfo.plist. Differences are printed and the command exits
non-zero.

Generated .xctemplate packages found inside the directories are skipped, so the
output path does not need to match the one used for generate.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyFlags.bind(verifyCmd)
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	existing, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading descriptor: %w", err)
	}

	opts, err := verifyFlags.options(cmd, args[1:])
	if errors.Is(err, errNoDirectories) {
		cmd.Usage()
		return err
	}
	if err != nil {
		return err
	}

	plan, err := generate.Prepare(cmd.Context(), opts)
	if err != nil {
		return err
	}

	diff := descriptor.Diff(existing, plan.Rendered)
	if diff == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date.\n", args[0])
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), diff)
	return fmt.Errorf("%s: %w", args[0], errDescriptorDrift)
}
