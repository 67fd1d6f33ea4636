// Package config defines the version-of-record manifest and provides helpers
// to load, validate and save it.
//
// The manifest is YAML (JSON with comments is accepted too) and names the
// project identity strings, the version components, the template and the
// output artifact. VERSTAMP_* environment variables override it, which lets
// a CI pipeline inject the build counter or a pinned build date.
package config
