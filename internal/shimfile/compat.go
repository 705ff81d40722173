package shimfile

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckCompat reports whether an installed version satisfies a rule's
// compat constraint. An empty constraint accepts every version. A leading
// "v" on the version is tolerated.
func CheckCompat(constraint, version string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return c.Check(v), nil
}
