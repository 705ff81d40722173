package noderesolve

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/wanderpoints/platshim/internal/platform"
	"github.com/wanderpoints/platshim/internal/resolver"
)

// sourceExts is the fallback order for extensionless imports.
var sourceExts = []string{".tsx", ".ts", ".jsx", ".js", ".mjs", ".cjs", ".json"}

const (
	nodeModules = "node_modules"
	packageFile = "package.json"
)

// Resolver resolves module identifiers the way the host bundler does when
// no substitution applies.
type Resolver struct {
	fs   afero.Fs
	root string
}

// New returns a Resolver reading from fs. Upward node_modules lookup stops
// after root.
func New(fs afero.Fs, root string) *Resolver {
	return &Resolver{fs: fs, root: filepath.Clean(root)}
}

// Resolve implements resolver.DefaultResolver. Failures wrap
// resolver.ErrModuleNotFound.
func (r *Resolver) Resolve(ctx resolver.Context, module string, p platform.Platform) (resolver.Resolution, error) {
	originDir := r.root
	if ctx.OriginPath != "" {
		originDir = filepath.Dir(ctx.OriginPath)
	}

	var (
		res resolver.Resolution
		ok  bool
		err error
	)
	switch {
	case isRelative(module):
		res, ok, err = r.resolvePath(filepath.Join(originDir, module), p, true)
	case filepath.IsAbs(module):
		res, ok, err = r.resolvePath(module, p, true)
	default:
		res, ok, err = r.resolveBare(originDir, module, p)
	}
	if err != nil {
		return resolver.Resolution{}, err
	}
	if !ok {
		return resolver.Resolution{}, fmt.Errorf("%w: %q from %s for %s", resolver.ErrModuleNotFound, module, originDir, p)
	}
	return res, nil
}

// resolveBare walks up from dir looking for node_modules/<package>.
func (r *Resolver) resolveBare(dir, module string, p platform.Platform) (resolver.Resolution, bool, error) {
	name, sub := splitPackage(module)
	for {
		pkgDir := filepath.Join(dir, nodeModules, name)
		if r.isDir(pkgDir) {
			if sub != "" {
				return r.resolvePath(filepath.Join(pkgDir, sub), p, true)
			}
			return r.resolvePackage(pkgDir, p)
		}

		parent := filepath.Dir(dir)
		if dir == r.root || parent == dir {
			return resolver.Resolution{}, false, nil
		}
		dir = parent
	}
}

// resolvePath tries target as a file, then with platform suffixes and
// extensions, then as a directory. Package manifests are only honored when
// withPackage is set, which keeps a "main": "." entry from looping.
func (r *Resolver) resolvePath(target string, p platform.Platform, withPackage bool) (resolver.Resolution, bool, error) {
	if filepath.Ext(target) != "" && r.isFile(target) {
		return sourceFile(target), true, nil
	}
	if path, ok := r.firstCandidate(target, p); ok {
		return sourceFile(path), true, nil
	}
	if !r.isDir(target) {
		return resolver.Resolution{}, false, nil
	}
	if withPackage && r.isFile(filepath.Join(target, packageFile)) {
		return r.resolvePackage(target, p)
	}
	if path, ok := r.firstCandidate(filepath.Join(target, "index"), p); ok {
		return sourceFile(path), true, nil
	}
	return resolver.Resolution{}, false, nil
}

// resolvePackage picks the entry point of the package at pkgDir.
func (r *Resolver) resolvePackage(pkgDir string, p platform.Platform) (resolver.Resolution, bool, error) {
	manifestPath := filepath.Join(pkgDir, packageFile)
	var manifest map[string]any
	if r.isFile(manifestPath) {
		data, err := afero.ReadFile(r.fs, manifestPath)
		if err != nil {
			return resolver.Resolution{}, false, fmt.Errorf("reading %s: %w", manifestPath, err)
		}
		if err := json.Unmarshal(data, &manifest); err != nil {
			return resolver.Resolution{}, false, fmt.Errorf("parsing %s: %w", manifestPath, err)
		}
	}

	for _, field := range platform.PackageFields(p) {
		switch v := manifest[field].(type) {
		case string:
			if v == "" {
				continue
			}
			res, ok, err := r.resolvePath(filepath.Join(pkgDir, v), p, false)
			if err != nil || ok {
				return res, ok, err
			}
		case bool:
			// "browser": false excludes the package from web bundles.
			if field == "browser" && !v {
				return resolver.Resolution{Type: resolver.Empty}, true, nil
			}
		}
	}

	if path, ok := r.firstCandidate(filepath.Join(pkgDir, "index"), p); ok {
		return sourceFile(path), true, nil
	}
	return resolver.Resolution{}, false, nil
}

// firstCandidate returns the first existing file among base+suffix+ext.
func (r *Resolver) firstCandidate(base string, p platform.Platform) (string, bool) {
	for _, suffix := range platform.SourceExtensions(p) {
		for _, ext := range sourceExts {
			path := base + suffix + ext
			if r.isFile(path) {
				return path, true
			}
		}
	}
	return "", false
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (r *Resolver) isDir(path string) bool {
	ok, err := afero.IsDir(r.fs, path)
	return err == nil && ok
}

func sourceFile(path string) resolver.Resolution {
	return resolver.Resolution{Type: resolver.SourceFile, FilePath: path}
}

func isRelative(module string) bool {
	return module == "." || module == ".." ||
		strings.HasPrefix(module, "./") || strings.HasPrefix(module, "../")
}

// splitPackage separates a bare specifier into its package name and subpath.
// "@scope/pkg/lib/x" -> ("@scope/pkg", "lib/x"), "lodash/fp" -> ("lodash", "fp").
func splitPackage(module string) (name, sub string) {
	parts := strings.Split(module, "/")
	n := 1
	if strings.HasPrefix(module, "@") && len(parts) > 1 {
		n = 2
	}
	return strings.Join(parts[:n], "/"), strings.Join(parts[n:], "/")
}
