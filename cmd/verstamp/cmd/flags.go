package cmd

import (
	"github.com/spf13/pflag"

	"github.com/oshokin/verstamp/internal/encoder"
)

// versionValue is a pflag.Value holding a dotted version such as 1.2.3.4.
type versionValue struct {
	// components are the parsed major, minor, patch and build values.
	components [4]int
	// set is true once the flag was given on the command line.
	set bool
}

var _ pflag.Value = (*versionValue)(nil)

// String returns the dotted form, or "" when the flag was not set.
func (v *versionValue) String() string {
	if !v.set {
		return ""
	}

	return encoder.FormatDotted(v.components[0], v.components[1], v.components[2], v.components[3])
}

// Set parses and range checks a dotted version.
func (v *versionValue) Set(s string) error {
	components, err := encoder.ParseDotted(s)
	if err != nil {
		return err
	}

	v.components = components
	v.set = true

	return nil
}

// Type names the value in help output.
func (v *versionValue) Type() string {
	return "major.minor.patch.build"
}

// Components returns the parsed components, nil when the flag was not set.
func (v *versionValue) Components() *[4]int {
	if !v.set {
		return nil
	}

	components := v.components

	return &components
}
