package shimfile

// CurrentVersion is the only table file format version understood.
const CurrentVersion = 1

// File is the on-disk substitution table.
type File struct {
	Version int    `yaml:"version" json:"version" validate:"eq=1"`
	Rules   []Rule `yaml:"rules" json:"rules" validate:"dive"`
}

// Rule is one substitution entry.
type Rule struct {
	Platform    string `yaml:"platform" json:"platform" validate:"required,platform"`
	Module      string `yaml:"module" json:"module" validate:"required"`
	Substitute  string `yaml:"substitute" json:"substitute" validate:"required"`
	Compat      string `yaml:"compat,omitempty" json:"compat,omitempty" validate:"omitempty,semverconstraint"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ValidationResult contains the outcome of validating a table file.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is a single problem found in a table file.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/rules/0/platform"
	Message string
	Keyword string // schema keyword or validator tag that failed
}
