// Package doctor checks a substitution table against a project on disk so a
// missing stub is reported before the bundler fails on it.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/wanderpoints/platshim/internal/noderesolve"
	"github.com/wanderpoints/platshim/internal/platform"
	"github.com/wanderpoints/platshim/internal/resolver"
	"github.com/wanderpoints/platshim/internal/shimfile"
)

// ErrChecksFailed is returned when at least one check failed.
var ErrChecksFailed = errors.New("substitution checks failed")

// Report counts check outcomes.
type Report struct {
	OK   int
	Info int
	Warn int
	Fail int
}

// Options locate the project being checked.
type Options struct {
	Root    string // project root holding node_modules
	BaseDir string // directory relative substitute paths are anchored at
}

// Check runs every rule check and writes one status line per check to w.
func Check(w io.Writer, fsys afero.Fs, f *shimfile.File, opts Options) (*Report, error) {
	rep := &Report{}
	node := noderesolve.New(fsys, opts.Root)

	fmt.Fprintln(w, "Substitution check:")
	if len(f.Rules) == 0 {
		fmt.Fprintln(w, "  [INFO] No substitution rules declared")
		rep.Info++
		return rep, nil
	}

	for _, r := range f.Rules {
		label := fmt.Sprintf("%s on %s", r.Module, r.Platform)

		sub := shimfile.SubstitutePath(opts.BaseDir, r.Substitute)
		if isFile(fsys, sub) {
			fmt.Fprintf(w, "  [ OK ] %s: substitute %s\n", label, sub)
			rep.OK++
		} else {
			fmt.Fprintf(w, "  [FAIL] %s: substitute %s does not exist\n", label, sub)
			rep.Fail++
		}

		checkRealModule(w, rep, node, r, label)
		checkCompat(w, rep, fsys, opts.Root, r, label)
	}

	if rep.Fail > 0 {
		return rep, fmt.Errorf("%w: %d failing", ErrChecksFailed, rep.Fail)
	}
	return rep, nil
}

// checkRealModule verifies the substituted library still resolves on the
// platforms that keep it. Every known platform other than the rule's is tried.
func checkRealModule(w io.Writer, rep *Report, node *noderesolve.Resolver, r shimfile.Rule, label string) {
	var resolved []string
	for _, other := range platform.All() {
		if other == platform.Platform(r.Platform) {
			continue
		}
		res, err := node.Resolve(resolver.Context{}, r.Module, other)
		switch {
		case errors.Is(err, resolver.ErrModuleNotFound):
		case err != nil:
			fmt.Fprintf(w, "  [WARN] %s: resolving %s on %s: %v\n", label, r.Module, other, err)
			rep.Warn++
			return
		case res.Type == resolver.Empty:
			resolved = append(resolved, fmt.Sprintf("%s (empty module)", other))
		default:
			resolved = append(resolved, fmt.Sprintf("%s (%s)", other, res.FilePath))
		}
	}

	if len(resolved) == 0 {
		fmt.Fprintf(w, "  [INFO] %s: %s is not installed\n", label, r.Module)
		rep.Info++
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s: resolves on %s\n", label, strings.Join(resolved, ", "))
	rep.OK++
}

func checkCompat(w io.Writer, rep *Report, fsys afero.Fs, root string, r shimfile.Rule, label string) {
	if r.Compat == "" {
		return
	}
	version, err := noderesolve.PackageVersion(fsys, root, r.Module)
	if errors.Is(err, resolver.ErrModuleNotFound) {
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %s: reading installed version: %v\n", label, err)
		rep.Warn++
		return
	}

	ok, err := shimfile.CheckCompat(r.Compat, version)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  [WARN] %s: %v\n", label, err)
		rep.Warn++
	case !ok:
		fmt.Fprintf(w, "  [WARN] %s: installed %s does not satisfy %q; the stub may lag the library API\n", label, version, r.Compat)
		rep.Warn++
	default:
		fmt.Fprintf(w, "  [ OK ] %s: installed %s satisfies %q\n", label, version, r.Compat)
		rep.OK++
	}
}

func isFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
