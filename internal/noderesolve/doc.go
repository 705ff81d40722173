// Package noderesolve is the default module resolution strategy: node-style
// lookup through node_modules directories with platform-specific file
// suffixes and package.json entry fields, in the order the React Native
// bundler uses. It reads through an afero.Fs so callers can resolve against
// the real disk or an in-memory tree.
package noderesolve
