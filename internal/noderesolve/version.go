package noderesolve

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/wanderpoints/platshim/internal/resolver"
)

// PackageVersion returns the "version" field of the package installed at
// <root>/node_modules/<module>. A missing package wraps
// resolver.ErrModuleNotFound.
func PackageVersion(fs afero.Fs, root, module string) (string, error) {
	name, _ := splitPackage(module)
	path := filepath.Join(root, nodeModules, name, packageFile)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if exists, _ := afero.Exists(fs, path); !exists {
			return "", fmt.Errorf("%w: %q under %s", resolver.ErrModuleNotFound, name, root)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	var manifest struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	return manifest.Version, nil
}
