package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionConstraint is returned when the running xctgen does not satisfy
// a manifest's requires constraint.
var ErrVersionConstraint = errors.New("xctgen version does not satisfy manifest requirement")

// CheckRequires reports whether version satisfies the constraint. An empty
// constraint always passes. Development builds whose version is not semver
// skip the check and return false for checked.
func CheckRequires(constraint, version string) (checked bool, err error) {
	if strings.TrimSpace(constraint) == "" {
		return false, nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing requires constraint %q: %w", constraint, err)
	}

	v, err := parseSemver(version)
	if err != nil {
		return false, nil
	}

	if !c.Check(v) {
		return true, fmt.Errorf("%w: have %s, need %s", ErrVersionConstraint, v, constraint)
	}
	return true, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
