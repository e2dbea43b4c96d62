package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/xctgen/internal/descriptor"
	"github.com/agentx-labs/xctgen/internal/platform"
)

const (
	// Suffix is appended to the output directory name when missing.
	Suffix = ".xctemplate"
	// DefaultOutput is used when no output path is given.
	DefaultOutput = "UntitledTemplate"
)

// Input describes one packaging run.
type Input struct {
	Descriptor []byte
	// Roots are absolute scan roots.
	Roots []string
	// Ignored holds absolute paths left out of the copy.
	Ignored []string
	Output  string
	// Force removes an existing output directory first.
	Force bool
}

// Result holds the outcome of a packaging run.
type Result struct {
	OutputDir      string
	DescriptorPath string
	// Copied maps each root to its directory inside OutputDir.
	Copied []CopiedRoot
}

// CopiedRoot records where a scan root was copied to.
type CopiedRoot struct {
	Root   string
	Target string
}

// ResolveOutputPath returns the absolute template directory for output,
// appending Suffix when the name lacks it.
func ResolveOutputPath(output string) (string, error) {
	if output == "" {
		output = DefaultOutput
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("resolving output path %s: %w", output, err)
	}
	if filepath.Ext(abs) != Suffix {
		abs += Suffix
	}
	return abs, nil
}

// Pack copies the roots into the template directory and moves the
// descriptor into place. A failure part way leaves what was already copied.
func Pack(in Input) (*Result, error) {
	outDir, err := ResolveOutputPath(in.Output)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(outDir); err == nil {
		if !in.Force {
			return nil, fmt.Errorf("output directory %s already exists; use --force to replace it", outDir)
		}
		if err := os.RemoveAll(outDir); err != nil {
			return nil, fmt.Errorf("removing existing output %s: %w", outDir, err)
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	ignored := make(map[string]bool, len(in.Ignored))
	for _, p := range in.Ignored {
		ignored[filepath.Clean(p)] = true
	}
	// The output may live inside a root.
	ignored[outDir] = true

	cp := &copier{ignored: ignored}
	result := &Result{OutputDir: outDir}
	base := descriptor.TemplateBase(in.Roots)
	for _, root := range in.Roots {
		if within(root, in.Roots) {
			continue
		}
		rel, err := filepath.Rel(base, root)
		if err != nil {
			return nil, fmt.Errorf("locating %s in template: %w", root, err)
		}
		target := filepath.Join(outDir, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		if err := cp.copyDir(root, target, nil); err != nil {
			return nil, fmt.Errorf("copying %s to %s: %w", root, target, err)
		}
		result.Copied = append(result.Copied, CopiedRoot{Root: root, Target: target})
	}

	path, err := moveDescriptor(in.Descriptor, outDir)
	if err != nil {
		return nil, err
	}
	result.DescriptorPath = path
	return result, nil
}

// IsTemplateDir reports whether path is a previously generated template: a
// directory named *.xctemplate that holds a TemplateInfo.plist. Such
// directories are never scanned or copied as template sources.
func IsTemplateDir(path string) bool {
	if filepath.Ext(path) != Suffix {
		return false
	}
	info, err := os.Stat(filepath.Join(path, descriptor.FileName))
	return err == nil && info.Mode().IsRegular()
}

// moveDescriptor writes data to a staging file beside outDir and renames it
// to outDir/TemplateInfo.plist.
func moveDescriptor(data []byte, outDir string) (string, error) {
	staging, err := os.CreateTemp(filepath.Dir(outDir), "."+strings.TrimSuffix(descriptor.FileName, ".plist")+"-*.plist")
	if err != nil {
		return "", fmt.Errorf("creating staging descriptor: %w", err)
	}
	stagingPath := staging.Name()

	if _, err := staging.Write(data); err != nil {
		staging.Close()
		os.Remove(stagingPath)
		return "", fmt.Errorf("writing staging descriptor: %w", err)
	}
	if err := staging.Close(); err != nil {
		os.Remove(stagingPath)
		return "", fmt.Errorf("writing staging descriptor: %w", err)
	}
	if err := platform.Chmod(stagingPath, 0644); err != nil {
		os.Remove(stagingPath)
		return "", fmt.Errorf("setting descriptor permissions: %w", err)
	}

	dst := filepath.Join(outDir, descriptor.FileName)
	if err := os.Rename(stagingPath, dst); err != nil {
		os.Remove(stagingPath)
		return "", fmt.Errorf("moving descriptor to %s: %w", dst, err)
	}
	return dst, nil
}

// within reports whether root lies strictly inside another of roots. Such a
// root is copied along with its ancestor.
func within(root string, roots []string) bool {
	for _, other := range roots {
		rel, err := filepath.Rel(other, root)
		if err != nil || rel == "." {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
