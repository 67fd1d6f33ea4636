// Package generator runs one generation pass: it loads the manifest, resolves
// the VCS hash and build timestamp, derives every version representation,
// renders the template and writes the artifact in a single atomic step.
//
// It also offers Check (is the artifact in sync with its template?),
// Describe (print the resolved bindings) and Init (scaffold a manifest and
// a starter template).
package generator
