package resolver

import (
	"errors"

	"github.com/wanderpoints/platshim/internal/platform"
)

// ResolutionType says how a resolved module should be loaded by the bundler.
type ResolutionType string

const (
	// SourceFile points the bundler at a file on disk.
	SourceFile ResolutionType = "sourceFile"
	// Empty tells the bundler to substitute an empty module.
	Empty ResolutionType = "empty"
)

// Resolution is the outcome of a single resolution request.
type Resolution struct {
	Type     ResolutionType `json:"type" yaml:"type"`
	FilePath string         `json:"filePath,omitempty" yaml:"filePath,omitempty"`
}

// Context is the requesting build context. The resolver never inspects it;
// it is passed to the default resolver as received.
type Context struct {
	OriginPath string            // file containing the import
	Attributes map[string]string // host-specific extras
}

// DefaultResolver is the host's standard dependency lookup.
type DefaultResolver interface {
	Resolve(ctx Context, module string, p platform.Platform) (Resolution, error)
}

// DefaultResolverFunc adapts a function to the DefaultResolver interface.
type DefaultResolverFunc func(ctx Context, module string, p platform.Platform) (Resolution, error)

// Resolve implements DefaultResolver.
func (f DefaultResolverFunc) Resolve(ctx Context, module string, p platform.Platform) (Resolution, error) {
	return f(ctx, module, p)
}

var (
	// ErrModuleNotFound is the resolution-failure class. Default resolvers
	// return errors that wrap it when a module cannot be located.
	ErrModuleNotFound = errors.New("module not found")

	// ErrEmptyModule is returned for an empty module identifier.
	ErrEmptyModule = errors.New("empty module identifier")

	// ErrDuplicateRule is returned when a table has two rules for the same
	// (platform, module) pair.
	ErrDuplicateRule = errors.New("duplicate substitution rule")

	// ErrInvalidRule is returned for rules with missing fields.
	ErrInvalidRule = errors.New("invalid substitution rule")

	// ErrNoDefaultResolver is returned by New when no fallback is given.
	ErrNoDefaultResolver = errors.New("no default resolver configured")
)
