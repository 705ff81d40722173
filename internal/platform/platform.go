package platform

import (
	"errors"
	"fmt"
)

// Platform identifies the target a bundle is produced for.
type Platform string

const (
	Web     Platform = "web"
	IOS     Platform = "ios"
	Android Platform = "android"
)

// ErrUnknownPlatform is returned by Parse for tags outside the known set.
var ErrUnknownPlatform = errors.New("unknown platform")

var known = []Platform{Web, IOS, Android}

// All returns every known platform in a stable order.
func All() []Platform {
	out := make([]Platform, len(known))
	copy(out, known)
	return out
}

// Known reports whether p is one of the known platforms.
func Known(p Platform) bool {
	for _, k := range known {
		if p == k {
			return true
		}
	}
	return false
}

// Parse converts a tag into a Platform. Matching is case-sensitive.
func Parse(s string) (Platform, error) {
	p := Platform(s)
	if !Known(p) {
		return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownPlatform, s, known)
	}
	return p, nil
}

// IsNative reports whether p is a native mobile target.
func (p Platform) IsNative() bool {
	return p == IOS || p == Android
}

func (p Platform) String() string { return string(p) }

// SourceExtensions returns the platform-specific file suffixes tried before
// the generic one, e.g. "map.web.js" before "map.js". The last element is
// always the empty suffix.
func SourceExtensions(p Platform) []string {
	switch p {
	case Web:
		return []string{".web", ""}
	case IOS:
		return []string{".ios", ".native", ""}
	case Android:
		return []string{".android", ".native", ""}
	default:
		return []string{""}
	}
}

// PackageFields returns the package.json fields consulted, in order, to find
// a package's entry point.
func PackageFields(p Platform) []string {
	switch p {
	case Web:
		return []string{"browser", "module", "main"}
	case IOS, Android:
		return []string{"react-native", "main"}
	default:
		return []string{"main"}
	}
}
