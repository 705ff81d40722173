package shimfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/wanderpoints/platshim/internal/platform"
	"github.com/wanderpoints/platshim/internal/resolver"
)

// InvalidError reports a table file that failed validation.
type InvalidError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			msgs = append(msgs, issue.Path+": "+issue.Message)
		} else {
			msgs = append(msgs, issue.Message)
		}
	}
	return fmt.Sprintf("invalid substitution table %s: %s", e.Path, strings.Join(msgs, "; "))
}

// Parse unmarshals table YAML without validating it.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing substitution table: %w", err)
	}
	return &f, nil
}

// Load reads, validates and parses the table file at path.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := readFile(fs, path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}
	return Parse(data)
}

// Save writes f to path, creating parent directories as needed.
func Save(fs afero.Fs, path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling substitution table: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// AppendRule adds r to the table at path, creating the file when it does
// not exist yet. A rule for an existing (platform, module) pair is rejected.
func AppendRule(fs afero.Fs, path string, r Rule) error {
	f := &File{Version: CurrentVersion}
	if exists, _ := afero.Exists(fs, path); exists {
		loaded, err := Load(fs, path)
		if err != nil {
			return err
		}
		f = loaded
	}

	if _, ok := f.Find(r.Platform, r.Module); ok {
		return fmt.Errorf("%w: %s on %s already in %s", resolver.ErrDuplicateRule, r.Module, r.Platform, path)
	}
	f.Rules = append(f.Rules, r)

	if err := checkFile(path, f); err != nil {
		return err
	}
	return Save(fs, path, f)
}

// CheckRule validates a single rule as it would appear in a table file.
func CheckRule(r Rule) error {
	return checkFile("rule", &File{Version: CurrentVersion, Rules: []Rule{r}})
}

// checkFile runs the full validation on an in-memory table.
func checkFile(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling substitution table: %w", err)
	}
	result, err := Validate(data)
	if err != nil {
		return err
	}
	if !result.Valid {
		return &InvalidError{Path: path, Issues: result.Issues}
	}
	return nil
}

// Find returns the rule for (platform, module), if any.
func (f *File) Find(platform, module string) (Rule, bool) {
	for _, r := range f.Rules {
		if r.Platform == platform && r.Module == module {
			return r, true
		}
	}
	return Rule{}, false
}

// Table converts the file into a resolver table. Relative substitute paths
// are resolved against baseDir, normally the directory holding the file.
func (f *File) Table(baseDir string) (*resolver.Table, error) {
	rules := make([]resolver.Rule, 0, len(f.Rules))
	for i, r := range f.Rules {
		p, err := platform.Parse(r.Platform)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Module, err)
		}
		rules = append(rules, resolver.Rule{
			Platform:   p,
			Module:     r.Module,
			Substitute: SubstitutePath(baseDir, r.Substitute),
		})
	}
	return resolver.NewTable(rules...)
}

// SubstitutePath anchors a relative substitute path at baseDir.
func SubstitutePath(baseDir, substitute string) string {
	if filepath.IsAbs(substitute) {
		return filepath.Clean(substitute)
	}
	return filepath.Join(baseDir, substitute)
}

// LoadTable loads the file at path and converts it with the file's
// directory as base.
func LoadTable(fs afero.Fs, path string) (*resolver.Table, error) {
	f, err := Load(fs, path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	return f.Table(filepath.Dir(abs))
}

func readFile(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("substitution table %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
