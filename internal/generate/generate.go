package generate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/xctgen/internal/descriptor"
	"github.com/agentx-labs/xctgen/internal/logging"
	"github.com/agentx-labs/xctgen/internal/pack"
	"github.com/agentx-labs/xctgen/internal/scan"
)

// Options is the complete, immutable configuration of one run.
type Options struct {
	Directories []string
	// Ignored paths are excluded from both the scan and the copy.
	Ignored  []string
	Scan     scan.Options
	Metadata descriptor.Metadata
	Output   string
	Force    bool
}

// Plan is everything computed before the filesystem is touched.
type Plan struct {
	Roots      []string
	Base       string
	Files      []scan.File
	Descriptor *descriptor.Descriptor
	Rendered   []byte
}

// Result holds the outcome of a generation.
type Result struct {
	*Plan
	Pack *pack.Result
}

// Prepare scans the roots and renders the descriptor without writing
// anything.
func Prepare(ctx context.Context, opts Options) (*Plan, error) {
	log := logging.FromContext(ctx)

	roots, err := absPaths(opts.Directories, true)
	if err != nil {
		return nil, err
	}
	if err := scan.ValidateRoots(roots); err != nil {
		return nil, err
	}
	ignored, err := absPaths(opts.Ignored, false)
	if err != nil {
		return nil, err
	}
	// A previous package inside a root must not be scanned as a source.
	outDir, err := pack.ResolveOutputPath(opts.Output)
	if err != nil {
		return nil, err
	}
	ignored = append(ignored, outDir)

	if _, err := descriptor.ParseSharedSettings(opts.Metadata.Settings); err != nil {
		return nil, err
	}
	if _, ok := descriptor.ParseConcrete(opts.Metadata.Concrete); !ok && opts.Metadata.Concrete != "" {
		log.Warn("ignoring concrete value; expected yes or no", "concrete", opts.Metadata.Concrete)
	}

	scanOpts := opts.Scan
	scanOpts.Ignored = ignored
	if scanOpts.SkipDir == nil {
		scanOpts.SkipDir = pack.IsTemplateDir
	}
	if scanOpts.Logger == nil {
		scanOpts.Logger = log
	}
	files, err := scan.Scan(roots, scanOpts)
	if err != nil {
		return nil, err
	}

	base := descriptor.TemplateBase(roots)
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	d, err := descriptor.Build(paths, base, opts.Metadata)
	if err != nil {
		return nil, err
	}
	for _, def := range d.Definitions {
		if !def.HasGroup {
			log.Debug("no group at depth index", "path", def.Path, "group_index", opts.Metadata.GroupIndex)
		}
	}

	rendered, err := descriptor.Render(d)
	if err != nil {
		return nil, err
	}

	log.Info("descriptor built", "roots", len(roots), "files", len(files), "base", base)
	return &Plan{
		Roots:      roots,
		Base:       base,
		Files:      files,
		Descriptor: d,
		Rendered:   rendered,
	}, nil
}

// Run prepares the plan and packs the template directory.
func Run(ctx context.Context, opts Options) (*Result, error) {
	plan, err := Prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	ignored, err := absPaths(opts.Ignored, false)
	if err != nil {
		return nil, err
	}
	packed, err := pack.Pack(pack.Input{
		Descriptor: plan.Rendered,
		Roots:      plan.Roots,
		Ignored:    ignored,
		Output:     opts.Output,
		Force:      opts.Force,
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("template written", "dir", packed.OutputDir)
	return &Result{Plan: plan, Pack: packed}, nil
}

// absPaths makes every path absolute and clean. With dedupe, repeated paths
// keep their first position only.
func absPaths(paths []string, dedupe bool) ([]string, error) {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if dedupe && seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	return out, nil
}
