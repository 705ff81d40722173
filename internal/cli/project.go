package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/wanderpoints/platshim/internal/config"
	"github.com/wanderpoints/platshim/internal/noderesolve"
	"github.com/wanderpoints/platshim/internal/platform"
	"github.com/wanderpoints/platshim/internal/resolver"
	"github.com/wanderpoints/platshim/internal/shimfile"
)

// projectRoot returns the absolute project root from flags, env or config.
func (o *rootOptions) projectRoot() (string, error) {
	root := config.Get(config.KeyRoot)
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving project root %s: %w", root, err)
	}
	return abs, nil
}

// tablePath returns the absolute path of the substitution table.
func (o *rootOptions) tablePath() (string, error) {
	root, err := o.projectRoot()
	if err != nil {
		return "", err
	}
	table := config.Get(config.KeyTable)
	if filepath.IsAbs(table) {
		return filepath.Clean(table), nil
	}
	return filepath.Join(root, table), nil
}

// loadTable reads the substitution table. A missing table file yields an
// empty table so projects without substitutions still resolve.
func (o *rootOptions) loadTable() (*resolver.Table, error) {
	path, err := o.tablePath()
	if err != nil {
		return nil, err
	}

	f, err := shimfile.Load(o.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		o.logger.Warn("substitution table not found, resolving without substitutions", "path", path)
		return resolver.NewTable()
	}
	if err != nil {
		return nil, err
	}

	table, err := f.Table(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("building table from %s: %w", path, err)
	}
	o.logger.Debug("loaded substitution table", "path", path, "rules", table.Len())
	return table, nil
}

// newResolver wires the table in front of node-style default resolution.
func (o *rootOptions) newResolver() (*resolver.Resolver, error) {
	table, err := o.loadTable()
	if err != nil {
		return nil, err
	}
	root, err := o.projectRoot()
	if err != nil {
		return nil, err
	}
	return resolver.New(table, noderesolve.New(o.fs, root))
}

// platformFlag parses a --platform value, falling back to the configured
// default when the flag is empty.
func platformFlag(value string) (platform.Platform, error) {
	if value == "" {
		value = config.Get(config.KeyPlatform)
	}
	return platform.Parse(value)
}

// fileExists reports whether path exists on fs.
func fileExists(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	return err == nil && ok
}
