// Package version exposes build metadata of the verstamp binary itself.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds. Full renders
// them with the same encoder verstamp uses for the projects it stamps.
package version
