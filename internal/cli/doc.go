// Package cli defines the cobra command tree for platshim: resolving
// modules through the substitution table, listing and validating the
// table, scaffolding stubs and running project diagnostics.
package cli
