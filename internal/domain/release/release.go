package release

import "time"

// VersionNumber is the canonical version-of-record of a single build.
type VersionNumber struct {
	// Major is the most significant component, packed into the top byte.
	Major int
	// Minor is the second component.
	Minor int
	// Patch is the third component.
	Patch int
	// Build is the build counter, packed into the lowest byte.
	Build int
	// VCSHash is the top 8 hex digits of the source revision, or empty when unknown.
	VCSHash string
	// Suffix is an optional pre-release marker such as "-beta1". Blank for releases.
	Suffix string
	// BuildTimestamp is the UTC instant of the build.
	BuildTimestamp time.Time
}

// Components returns the four numeric components, most significant first.
func (v *VersionNumber) Components() [4]int {
	return [4]int{v.Major, v.Minor, v.Patch, v.Build}
}

// Clone returns a copy of the version number.
func (v *VersionNumber) Clone() *VersionNumber {
	if v == nil {
		return nil
	}

	cloned := *v

	return &cloned
}

// Identity holds the project display strings rendered next to the version.
type Identity struct {
	// ProjectName is the overall product name.
	ProjectName string `yaml:"name"`
	// ClientName is the display name of the client library.
	ClientName string `yaml:"client_name"`
	// ServerName is the display name of the server module.
	ServerName string `yaml:"server_name"`
	// GUIName is the display name of the desktop UI.
	GUIName string `yaml:"gui_name"`
	// URL is the project home page.
	URL string `yaml:"url"`
	// Copyright is the copyright line.
	Copyright string `yaml:"copyright"`
	// Description is a one-line summary of the project.
	Description string `yaml:"description"`
	// License is the license text shown in about boxes.
	License string `yaml:"license"`
}
