package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/agentx-labs/xctgen/internal/generate"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	scanFlags templateFlags
	scanJSON  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir...]",
	Short: "List the files a template would include",
	Long: `Scan the given directories with the same rules as generate and list every
included file with its template path and resolved group. Nothing is written.`,
	RunE: runScan,
}

func init() {
	scanFlags.bind(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(scanCmd)
}

// scanEntry represents an included file for display.
type scanEntry struct {
	Path  string `json:"path"`
	Group string `json:"group,omitempty"`
	File  string `json:"file"`
}

func runScan(cmd *cobra.Command, args []string) error {
	opts, err := scanFlags.options(cmd, args)
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

	entries := make([]scanEntry, len(plan.Descriptor.Definitions))
	for i, def := range plan.Descriptor.Definitions {
		entries[i] = scanEntry{Path: def.Path, Group: def.Group, File: plan.Files[i].Path}
	}

	if scanJSON {
		return printScanJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No files matched.")
		return nil
	}
	return printScanTable(cmd, entries)
}

func printScanTable(cmd *cobra.Command, entries []scanEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PATH\tGROUP")
	for _, e := range entries {
		group := e.Group
		if group == "" {
			group = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", e.Path, group)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := message.NewPrinter(language.English).Fprintf(cmd.OutOrStdout(), "\n%d files\n", len(entries))
	return err
}

func printScanJSON(cmd *cobra.Command, entries []scanEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
