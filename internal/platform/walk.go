package platform

import (
	"fmt"
	"path/filepath"
	"slices"
)

// DirChain holds the resolved paths of the directories from a walk root down
// to the directory being visited. Walkers that follow symlinks use it to
// stop at a link pointing back at one of its own ancestors.
type DirChain []string

// Enter resolves dir and returns the chain extended by it. ok is false when
// dir resolves to a directory already on the chain.
func (c DirChain) Enter(dir string) (next DirChain, ok bool, err error) {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, false, fmt.Errorf("resolving %s: %w", dir, err)
	}
	if slices.Contains(c, real) {
		return c, false, nil
	}
	return append(c[:len(c):len(c)], real), true, nil
}
