// Package resolver implements platform-conditional module resolution.
//
// A Resolver consults a Table of substitution rules keyed by
// (platform, module). An exact match yields the rule's substitute source
// file; every other request is handed to a DefaultResolver and its result,
// error included, is returned unchanged. The decision depends only on the
// module identifier and the platform, and nothing is cached between calls.
package resolver
