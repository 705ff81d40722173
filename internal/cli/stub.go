package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wanderpoints/platshim/internal/resolver"
	"github.com/wanderpoints/platshim/internal/scaffold"
	"github.com/wanderpoints/platshim/internal/shimfile"
)

type stubOptions struct {
	platform   string
	outputDir  string
	noRegister bool
}

func newStubCmd(root *rootOptions) *cobra.Command {
	opts := &stubOptions{}

	cmd := &cobra.Command{
		Use:   "stub <module>",
		Short: "Scaffold a stub module and register it",
		Long: `Generate a placeholder implementation of a module under shims/ and add a
substitution rule for it to the table.

Examples:
  platshim stub react-native-maps
  platshim stub expo-haptics --platform web --output-dir src/shims/haptics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStub(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.platform, "platform", "p", "web", "Platform the stub replaces the module on")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Output directory (default: <root>/shims/<module>)")
	cmd.Flags().BoolVar(&opts.noRegister, "no-register", false, "Only generate files; leave the table untouched")
	return cmd
}

func runStub(cmd *cobra.Command, root *rootOptions, opts *stubOptions, module string) error {
	p, err := platformFlag(opts.platform)
	if err != nil {
		return err
	}
	projectRoot, err := root.projectRoot()
	if err != nil {
		return err
	}
	tablePath, err := root.tablePath()
	if err != nil {
		return err
	}

	outDir := opts.outputDir
	switch {
	case outDir == "":
		outDir = scaffold.DefaultDir(projectRoot, module)
	case !filepath.IsAbs(outDir):
		outDir = filepath.Join(projectRoot, outDir)
	}

	rel, err := filepath.Rel(filepath.Dir(tablePath), filepath.Join(outDir, "index.js"))
	if err != nil {
		return fmt.Errorf("locating stub relative to %s: %w", tablePath, err)
	}
	substitute := filepath.ToSlash(rel)
	if !strings.HasPrefix(substitute, "../") {
		substitute = "./" + substitute
	}
	rule := shimfile.Rule{
		Platform:    string(p),
		Module:      module,
		Substitute:  substitute,
		Description: fmt.Sprintf("Generated %s stub", p),
	}
	if err := shimfile.CheckRule(rule); err != nil {
		return err
	}
	if !opts.noRegister && fileExists(root.fs, tablePath) {
		f, err := shimfile.Load(root.fs, tablePath)
		if err != nil {
			return err
		}
		if _, ok := f.Find(rule.Platform, rule.Module); ok {
			return fmt.Errorf("%w: %s on %s already in %s", resolver.ErrDuplicateRule, module, p, tablePath)
		}
	}

	data := scaffold.NewStubData(module, p)
	if r, err := filepath.Rel(projectRoot, outDir); err == nil {
		data.RelDir = filepath.ToSlash(r)
	}
	result, err := scaffold.Generate(root.fs, data, outDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s stub for %s in %s\n", p, module, result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}

	if opts.noRegister {
		root.logger.Debug("skipping table registration", "module", module)
		return nil
	}
	if err := shimfile.AppendRule(root.fs, tablePath, rule); err != nil {
		if rmErr := root.fs.RemoveAll(result.OutputDir); rmErr != nil {
			root.logger.Warn("removing generated stub", "dir", result.OutputDir, "error", rmErr)
		}
		return fmt.Errorf("registering stub: %w", err)
	}
	fmt.Fprintf(out, "Registered %s -> %s for %s in %s\n", module, rule.Substitute, p, tablePath)
	return nil
}
