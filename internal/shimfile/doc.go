// Package shimfile reads, validates and edits the substitution table file
// (shims.yaml). Files are checked twice: against the embedded JSON schema
// for shape, then rule by rule for semantics the schema cannot express
// (duplicate keys, semver constraint syntax). A loaded file converts into a
// resolver.Table with substitute paths anchored at the file's directory.
package shimfile
