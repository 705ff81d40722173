package resolver

import (
	"github.com/wanderpoints/platshim/internal/platform"
)

// Resolver applies a substitution table in front of a default resolver.
type Resolver struct {
	table    *Table
	fallback DefaultResolver
}

// New returns a Resolver. A nil table means no substitutions.
func New(table *Table, fallback DefaultResolver) (*Resolver, error) {
	if fallback == nil {
		return nil, ErrNoDefaultResolver
	}
	if table == nil {
		table = &Table{}
	}
	return &Resolver{table: table, fallback: fallback}, nil
}

// Resolve returns the substitute source file when (p, module) matches a rule
// exactly. Otherwise it returns whatever the default resolver returns,
// without wrapping its error.
func (r *Resolver) Resolve(ctx Context, module string, p platform.Platform) (Resolution, error) {
	if module == "" {
		return Resolution{}, ErrEmptyModule
	}
	if rule, ok := r.table.Lookup(p, module); ok {
		return Resolution{Type: SourceFile, FilePath: rule.Substitute}, nil
	}
	return r.fallback.Resolve(ctx, module, p)
}

// Substituted reports whether a request for (p, module) would be served by
// the table instead of the default resolver.
func (r *Resolver) Substituted(module string, p platform.Platform) bool {
	_, ok := r.table.Lookup(p, module)
	return ok
}

// Table returns the resolver's substitution table.
func (r *Resolver) Table() *Table { return r.table }
