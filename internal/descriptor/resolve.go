package descriptor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CommonAncestor returns the deepest directory shared by all paths, which
// should be absolute. A single path is its own ancestor.
func CommonAncestor(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	common := splitPath(filepath.Clean(paths[0]))
	for _, p := range paths[1:] {
		segs := splitPath(filepath.Clean(p))
		n := 0
		for n < len(common) && n < len(segs) && common[n] == segs[n] {
			n++
		}
		common = common[:n]
	}
	return joinPath(common)
}

// TemplateBase returns the directory that descriptor paths are relative to:
// the parent of the common ancestor of roots.
func TemplateBase(roots []string) string {
	return filepath.Dir(CommonAncestor(roots))
}

// Relativize returns path relative to base as a slash-separated string.
func Relativize(path, base string) (string, error) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", fmt.Errorf("relativizing %s against %s: %w", path, base, err)
	}
	return filepath.ToSlash(rel), nil
}

// GroupOf resolves the group label of a file. A fixed group always wins;
// otherwise the directory segment at depthIndex of relPath is used. The
// second return value is false when relPath has too few directory segments.
func GroupOf(relPath, fixedGroup string, depthIndex int) (string, bool) {
	if fixedGroup != "" {
		return fixedGroup, true
	}
	dirs := groupPath(relPath)
	if depthIndex < 0 || depthIndex >= len(dirs) {
		return "", false
	}
	return dirs[depthIndex], true
}

// groupPath returns every segment of relPath except the last.
func groupPath(relPath string) []string {
	segs := strings.Split(relPath, "/")
	return segs[:len(segs)-1]
}

func splitPath(p string) []string {
	sep := string(filepath.Separator)
	vol := filepath.VolumeName(p)
	rest := p[len(vol):]

	var segs []string
	switch {
	case strings.HasPrefix(rest, sep):
		segs = append(segs, vol+sep)
		rest = rest[1:]
	case vol != "":
		segs = append(segs, vol)
	}
	if rest != "" && rest != "." {
		segs = append(segs, strings.Split(rest, sep)...)
	}
	return segs
}

func joinPath(segs []string) string {
	if len(segs) == 0 {
		return "."
	}
	return filepath.Join(segs...)
}
