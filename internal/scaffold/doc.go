// Package scaffold generates stub modules from embedded templates. A stub
// re-exports the surface an app imports from a platform-incompatible
// library (a native map view, for example) as placeholder components, so
// the substitution table has something to point at. It powers the
// "platshim stub" command.
package scaffold
