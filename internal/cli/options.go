package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentx-labs/xctgen/internal/config"
	"github.com/agentx-labs/xctgen/internal/descriptor"
	"github.com/agentx-labs/xctgen/internal/generate"
	"github.com/agentx-labs/xctgen/internal/logging"
	"github.com/agentx-labs/xctgen/internal/manifest"
	"github.com/agentx-labs/xctgen/internal/scan"
	"github.com/spf13/cobra"
)

var errNoDirectories = errors.New("no directories given; pass -d <dir> or a manifest with -f")

// templateFlags holds the flags shared by generate, scan and verify.
type templateFlags struct {
	directories       []string
	group             string
	groupIndex        int
	output            string
	description       string
	identifier        string
	ancestors         []string
	concrete          string
	kind              string
	settings          string
	ignoreFiles       []string
	extensions        []string
	ignoreDirSuffixes []string
	forceDirSuffixes  []string
	includeHidden     bool
	file              string
}

func (f *templateFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringArrayVarP(&f.directories, "directories", "d", nil, "Space-separated directories to scan (repeatable)")
	fs.StringVarP(&f.group, "group", "g", "", "Fixed group name for every file")
	fs.IntVar(&f.groupIndex, "group-index", 1, "Path segment used as the group name when --group is not set")
	fs.StringVarP(&f.output, "output", "o", "", "Output path; .xctemplate is appended when missing")
	fs.StringVar(&f.description, "description", "", "Template description")
	fs.StringVarP(&f.identifier, "identifier", "i", "", "Template identifier (e.g. com.example.template)")
	fs.StringArrayVarP(&f.ancestors, "ancestors", "a", nil, "Space-separated ancestor identifiers (repeatable)")
	fs.StringVarP(&f.concrete, "concrete", "c", "", "Concrete template: yes or no")
	fs.StringVar(&f.kind, "kind", "", "Template kind")
	fs.StringVarP(&f.settings, "settings", "s", "", "Shared build settings as key/value tokens; '*' for an empty value")
	fs.StringArrayVar(&f.ignoreFiles, "ignore-files", nil, "Space-separated paths to leave out (repeatable)")
	fs.StringArrayVar(&f.extensions, "extensions", nil, "Space-separated file extensions to include")
	fs.StringArrayVar(&f.ignoreDirSuffixes, "ignore-dir-suffixes", nil, "Directory suffixes to skip")
	fs.StringArrayVar(&f.forceDirSuffixes, "force-dir-suffixes", nil, "Directory suffixes whose contents are always included")
	fs.BoolVar(&f.includeHidden, "include-hidden", false, "Include files and directories starting with '.'")
	fs.StringVarP(&f.file, "file", "f", "", "Template manifest (xctemplate.yaml)")
}

// options merges flags, the manifest and user defaults, in that order of
// precedence. Positional args are added to the scan directories.
func (f *templateFlags) options(cmd *cobra.Command, args []string) (generate.Options, error) {
	changed := cmd.Flags().Changed
	defaults := config.Current()

	m := &manifest.TemplateManifest{}
	if f.file != "" {
		loaded, err := manifest.Load(f.file)
		if err != nil {
			return generate.Options{}, err
		}
		checked, err := manifest.CheckRequires(loaded.Requires, buildVersion)
		if err != nil {
			return generate.Options{}, err
		}
		if !checked && loaded.Requires != "" {
			logging.FromContext(cmd.Context()).Warn("skipping version requirement for development build",
				"requires", loaded.Requires, "version", buildVersion)
		}
		m = loaded
	}

	dirs := append(fields(f.directories), args...)
	if len(dirs) == 0 {
		dirs = m.Directories
	}
	if len(dirs) == 0 {
		return generate.Options{}, errNoDirectories
	}

	meta := descriptor.Metadata{
		Identifier: pick(changed("identifier"), f.identifier, m.Identifier),
		Concrete:   pick(changed("concrete"), f.concrete, string(m.Concrete), defaults.Concrete),
		Kind:       pick(changed("kind"), f.kind, m.Kind, defaults.Kind),
		Group:      pick(changed("group"), f.group, m.Group),
		GroupIndex: defaults.GroupIndex,
		Ancestors:  m.Ancestors,
		Settings:   m.Settings,
	}
	switch {
	case changed("description"):
		meta.Description = &f.description
	case m.Description != nil:
		meta.Description = m.Description
	}
	switch {
	case changed("group-index"):
		meta.GroupIndex = f.groupIndex
	case m.GroupIndex != nil:
		meta.GroupIndex = *m.GroupIndex
	}
	if changed("ancestors") {
		meta.Ancestors = fields(f.ancestors)
	}
	if changed("settings") {
		meta.Settings = descriptor.SplitSettings(f.settings)
	}
	if meta.GroupIndex < 0 {
		return generate.Options{}, fmt.Errorf("--group-index must not be negative, got %d", meta.GroupIndex)
	}

	scanOpts := scan.Options{
		AllowedExtensions:    listValue(changed("extensions"), f.extensions, m.Extensions, defaults.Extensions),
		IgnoreDirSuffixes:    listValue(changed("ignore-dir-suffixes"), f.ignoreDirSuffixes, m.IgnoreDirSuffixes, defaults.IgnoreDirSuffixes),
		ForceDescendSuffixes: listValue(changed("force-dir-suffixes"), f.forceDirSuffixes, m.ForceDirSuffixes, defaults.ForceDirSuffixes),
		IncludeHidden:        f.includeHidden || m.IncludeHidden,
	}

	return generate.Options{
		Directories: dirs,
		Ignored:     append(fields(f.ignoreFiles), m.Ignore...),
		Scan:        scanOpts,
		Metadata:    meta,
		Output:      pick(changed("output"), f.output, m.Output, defaults.Output),
	}, nil
}

// pick returns flag when it was set, else the first non-empty fallback.
func pick(set bool, flag string, fallbacks ...string) string {
	if set {
		return flag
	}
	for _, v := range fallbacks {
		if v != "" {
			return v
		}
	}
	return ""
}

func listValue(set bool, flag []string, fromManifest *[]string, fallback []string) []string {
	switch {
	case set:
		return fields(flag)
	case fromManifest != nil:
		return *fromManifest
	default:
		return fallback
	}
}

// fields splits every value on whitespace, so "-d 'a b' -d c" yields a, b, c.
func fields(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Fields(v)...)
	}
	return out
}
