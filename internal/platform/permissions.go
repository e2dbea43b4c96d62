package platform

import (
	"os"
	"runtime"
)

// Chmod sets the permission bits of path. The packed TemplateInfo.plist is
// staged with os.CreateTemp, which creates it 0600; Xcode reads templates
// as the user installing them, and shared template directories need the
// descriptor world-readable. Windows has no such bits, so Chmod is a no-op
// there.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
