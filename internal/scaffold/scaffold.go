package scaffold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wanderpoints/platshim/internal/platform"
)

// StubsDir is the project-relative directory stubs are generated under.
const StubsDir = "shims"

// StubData holds all template variables available to stub templates.
type StubData struct {
	Module        string // e.g., "react-native-maps"
	Platform      platform.Platform
	ComponentName string // Derived: ReactNativeMapsStub
	PackageName   string // Derived: @platshim/react-native-maps-web
	Description   string
	Message       string // text rendered by the placeholder component
	Version       string
	RelDir        string // output directory relative to the project root
	Year          int
}

// Result holds the outcome of a stub generation.
type Result struct {
	OutputDir string
	Files     []string
}

// NewStubData creates a StubData with derived fields populated.
func NewStubData(module string, p platform.Platform) *StubData {
	slug := Slug(module)
	return &StubData{
		Module:        module,
		Platform:      p,
		ComponentName: componentName(module) + "Stub",
		PackageName:   fmt.Sprintf("@platshim/%s-%s", slug, p),
		Description:   fmt.Sprintf("%s stand-in for %s", p, module),
		Message:       fmt.Sprintf("%s is not available on %s.", module, p),
		Version:       "0.1.0",
		RelDir:        path.Join(StubsDir, slug),
		Year:          time.Now().Year(),
	}
}

// Slug turns a module identifier into a directory and package-name safe
// name. "@react-native-community/blur" -> "react-native-community-blur".
func Slug(module string) string {
	module = strings.TrimPrefix(module, "@")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return unicode.ToLower(r)
		default:
			return '-'
		}
	}, module)
}

// DefaultDir returns the conventional output directory for a module's stub.
func DefaultDir(root, module string) string {
	return filepath.Join(root, StubsDir, Slug(module))
}

// componentName derives a JavaScript identifier from a module identifier.
// "react-native-maps" -> "ReactNativeMaps".
func componentName(module string) string {
	title := cases.Title(language.English)
	parts := strings.FieldsFunc(module, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(title.String(p))
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "Module" + name
	}
	return name
}

var funcs = template.FuncMap{
	// json renders a value as a JSON literal, quotes included.
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}

// Generate renders the web stub templates into outputDir on fsys.
func Generate(fsys afero.Fs, data *StubData, outputDir string) (*Result, error) {
	templatesDir := "scaffolds/web-stub"

	entries, err := fs.ReadDir(scaffoldFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", templatesDir, err)
	}

	// Refuse to overwrite an existing stub.
	if empty, err := afero.IsEmpty(fsys, outputDir); err == nil && !empty {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}
	if err := fsys.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{OutputDir: outputDir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tmplPath := path.Join(templatesDir, entry.Name())
		tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		tmpl, err := template.New(entry.Name()).Funcs(funcs).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(outputDir, outName)
		if err := afero.WriteFile(fsys, outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, outName)
	}

	return result, nil
}
