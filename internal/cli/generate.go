package cli

import (
	"errors"
	"fmt"

	"github.com/agentx-labs/xctgen/internal/generate"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	genFlags  templateFlags
	genForce  bool
	genDryRun bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [dir...]",
	Short: "Generate an .xctemplate from source directories",
	Long: `Scan the given directories, write TemplateInfo.plist and pack the sources
and descriptor into <output>.xctemplate.

Directories come from positional arguments, -d (space-separated, repeatable) or
the manifest given with -f. Explicit flags override manifest values, which
override the user defaults in ~/.xctgen/config.yaml.`,
	Example: `  xctgen generate -d "cocos2d CocosDenshion" -o Cocos2d -i com.example.cocos2d
  xctgen generate -f xctemplate.yaml --force
  xctgen generate libs --dry-run`,
	RunE: runGenerate,
}

func init() {
	genFlags.bind(generateCmd)
	generateCmd.Flags().BoolVar(&genForce, "force", false, "Replace an existing output directory")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Print the descriptor without writing anything")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := genFlags.options(cmd, args)
	if errors.Is(err, errNoDirectories) {
		cmd.Usage()
		return err
	}
	if err != nil {
		return err
	}
	opts.Force = genForce

	if genDryRun {
		plan, err := generate.Prepare(cmd.Context(), opts)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(plan.Rendered)
		return err
	}

	result, err := generate.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()
	p.Fprintf(out, "Generated %s\n", result.Pack.OutputDir)
	p.Fprintf(out, "  %d files from %d directories\n", len(result.Files), len(result.Roots))
	fmt.Fprintf(out, "  descriptor: %s\n", result.Pack.DescriptorPath)
	return nil
}
