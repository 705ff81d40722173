// Package platform defines the closed set of bundle target platforms and the
// per-platform lookup orders (file suffixes and package.json entry fields)
// that module resolution follows. Matching is exact: an empty or unknown tag
// is never treated as any known platform.
package platform
