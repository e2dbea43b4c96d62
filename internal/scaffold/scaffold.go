package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/agentx-labs/xctgen/internal/manifest"
)

const manifestTemplate = "scaffolds/manifest/xctemplate.yaml.tmpl"

var identifierUnsafe = regexp.MustCompile(`[^a-z0-9.-]+`)

// ManifestData holds the variables available to the manifest template.
type ManifestData struct {
	FileName    string
	Name        string   // e.g., "Cocos2d"
	Identifier  string   // e.g., "com.example.cocos2d"
	Directories []string // relative to the manifest
	Kind        string
	GroupIndex  int
	MinVersion  string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// NewManifestData derives template variables for a manifest in dir. Every
// visible subdirectory of dir becomes a scan directory.
func NewManifestData(dir, name, kind string, groupIndex int, version string) (*ManifestData, error) {
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", dir, err)
		}
		name = filepath.Base(abs)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) == ".xctemplate" {
			continue
		}
		dirs = append(dirs, e.Name())
	}
	sort.Strings(dirs)

	minVersion := strings.TrimPrefix(version, "v")
	if minVersion == "" || minVersion == "dev" {
		minVersion = "0.1.0"
	}

	return &ManifestData{
		FileName:    manifest.FileName,
		Name:        name,
		Identifier:  "com.example." + strings.Trim(identifierUnsafe.ReplaceAllString(strings.ToLower(name), "-"), "-"),
		Directories: dirs,
		Kind:        kind,
		GroupIndex:  groupIndex,
		MinVersion:  minVersion,
	}, nil
}

// Generate writes the starter manifest into dir. It refuses to overwrite an
// existing manifest.
func Generate(dir string, data *ManifestData) (*Result, error) {
	outPath := filepath.Join(dir, manifest.FileName)
	if _, err := os.Stat(outPath); err == nil {
		return nil, fmt.Errorf("%s already exists; remove it first", outPath)
	}

	tmplBytes, err := fs.ReadFile(scaffoldFS, manifestTemplate)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", manifestTemplate, err)
	}

	tmpl, err := template.New(filepath.Base(manifestTemplate)).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", manifestTemplate, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", manifestTemplate, err)
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &Result{Path: outPath}

	// Validate the generated manifest against the schema.
	valResult, valErr := manifest.ValidateFile(outPath)
	if valErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate manifest: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}
	if len(data.Directories) == 0 {
		result.Warnings = append(result.Warnings, "no subdirectories found; edit the directories list before generating")
	}

	return result, nil
}
