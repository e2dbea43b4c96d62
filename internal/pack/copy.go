package pack

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentx-labs/xctgen/internal/platform"
)

// copier mirrors a scan root into the template. Symlinks are followed and
// their contents copied, the same way the scanner reads through them, so
// every scanned path exists as a real file inside the package.
type copier struct {
	ignored map[string]bool
}

// copyDir recursively copies src to dst. dst must not exist yet. A
// directory reached again through a symlink loop is left out.
func (c *copier) copyDir(src, dst string, chain platform.DirChain) error {
	chain, ok, err := chain.Enter(src)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s already exists", dst)
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		if c.ignored[srcPath] {
			continue
		}
		dstPath := filepath.Join(dst, entry.Name())

		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(srcPath)
			if err != nil {
				// Dangling links are skipped by the scanner too.
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if IsTemplateDir(srcPath) {
				continue
			}
			if err := c.copyDir(srcPath, dstPath, chain); err != nil {
				return err
			}
		case mode.IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Sockets, devices and pipes are not copied.
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
