package scan

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/xctgen/internal/logging"
	"github.com/agentx-labs/xctgen/internal/platform"
)

// Default extension sets used when no configuration overrides them.
var (
	DefaultAllowedExtensions = []string{
		"h", "hpp", "c", "cpp", "cc", "m", "mm", "lua", "png", "fnt", "pvr", "a", "framework", "",
	}
	DefaultIgnoreDirSuffixes    = []string{"xcodeproj"}
	DefaultForceDescendSuffixes = []string{"framework"}
)

// ErrNotDirectory is returned when a scan root exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// RootError reports a scan root that cannot be walked.
type RootError struct {
	Root string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("scan root %s: %v", e.Root, e.Err)
}

func (e *RootError) Unwrap() error { return e.Err }

// File is a file selected for the template.
type File struct {
	Path string // absolute path
	Ext  string // text after the final "." of the base name, "" if none
}

// Options controls which entries the walk selects.
type Options struct {
	AllowedExtensions    []string
	IgnoreDirSuffixes    []string
	ForceDescendSuffixes []string
	// Ignored holds absolute paths excluded from the walk, files or directories.
	Ignored       []string
	IncludeHidden bool
	// SkipDir, when set, reports directories to leave out of the walk.
	SkipDir func(path string) bool
	Logger  *slog.Logger
}

// DefaultOptions returns Options populated with the default extension sets.
func DefaultOptions() Options {
	return Options{
		AllowedExtensions:    append([]string(nil), DefaultAllowedExtensions...),
		IgnoreDirSuffixes:    append([]string(nil), DefaultIgnoreDirSuffixes...),
		ForceDescendSuffixes: append([]string(nil), DefaultForceDescendSuffixes...),
	}
}

type scanner struct {
	allowed map[string]bool
	ignDirs map[string]bool
	force   map[string]bool
	ignored map[string]bool
	hidden  bool
	skipDir func(string) bool
	log     *slog.Logger

	seen  map[string]bool
	files []File
}

// ValidateRoots checks that every root exists and is a directory.
func ValidateRoots(roots []string) error {
	if len(roots) == 0 {
		return errors.New("no scan directories given")
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return &RootError{Root: root, Err: err}
		}
		if !info.IsDir() {
			return &RootError{Root: root, Err: ErrNotDirectory}
		}
	}
	return nil
}

// Scan walks each root depth-first, in the order given, and returns the
// selected files in visit order. A file reachable from more than one root is
// returned once, at its first position.
func Scan(roots []string, opts Options) ([]File, error) {
	if err := ValidateRoots(roots); err != nil {
		return nil, err
	}

	s := &scanner{
		allowed: toSet(opts.AllowedExtensions),
		ignDirs: toSet(opts.IgnoreDirSuffixes),
		force:   toSet(opts.ForceDescendSuffixes),
		ignored: make(map[string]bool, len(opts.Ignored)),
		hidden:  opts.IncludeHidden,
		skipDir: opts.SkipDir,
		log:     opts.Logger,
		seen:    make(map[string]bool),
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	for _, p := range opts.Ignored {
		s.ignored[filepath.Clean(p)] = true
	}

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, &RootError{Root: root, Err: err}
		}
		s.log.Debug("scanning root", "root", abs)
		if err := s.walk(abs, false, nil); err != nil {
			return nil, err
		}
	}
	return s.files, nil
}

// walk visits dir's entries. includeAll is set once an ancestor matched a
// forced suffix and stays set for the rest of that subtree.
// chain stops symlinked directories that loop back to an ancestor.
func (s *scanner) walk(dir string, includeAll bool, chain platform.DirChain) error {
	chain, ok, err := chain.Enter(dir)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Debug("skipping directory cycle", "path", dir)
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !s.hidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				s.log.Warn("skipping broken symlink", "path", path, "error", err)
				continue
			}
			isDir = info.IsDir()
		}

		if !isDir {
			s.include(path, includeAll)
			continue
		}

		ext := Extension(name)
		switch {
		case s.force[ext] && !s.ignored[path]:
			if err := s.walk(path, true, chain); err != nil {
				return err
			}
		case s.ignDirs[ext] || s.ignored[path] || (s.skipDir != nil && s.skipDir(path)):
			s.log.Debug("skipping directory", "path", path)
		default:
			if err := s.walk(path, includeAll, chain); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *scanner) include(path string, includeAll bool) {
	if s.ignored[path] || s.seen[path] {
		return
	}
	ext := Extension(filepath.Base(path))
	if !includeAll && !s.allowed[ext] {
		return
	}
	s.seen[path] = true
	s.files = append(s.files, File{Path: path, Ext: ext})
}

// Extension returns the text after the final "." in name, or "" when name
// has no dot.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.TrimPrefix(v, ".")] = true
	}
	return set
}
