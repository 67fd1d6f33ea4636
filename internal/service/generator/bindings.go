package generator

import (
	"maps"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/oshokin/verstamp/internal/config"
	"github.com/oshokin/verstamp/internal/domain/release"
	"github.com/oshokin/verstamp/internal/encoder"
	"github.com/oshokin/verstamp/internal/template"
)

// Standard binding names available to every template.
const (
	BindingProjectName     = "PROJECT_NAME"
	BindingClientName      = "CLIENT_NAME"
	BindingServerName      = "SERVER_NAME"
	BindingGUIName         = "GUI_NAME"
	BindingMajor           = "VER_MAJOR"
	BindingMinor           = "VER_MINOR"
	BindingPatch           = "VER_PATCH"
	BindingBuild           = "VER_BUILD"
	BindingCommit          = "VER_COMMIT"
	BindingVCSHash         = "VCS_HASH"
	BindingVersion         = "VERSION"
	BindingSuffix          = "VER_NAME"
	BindingVersionString   = "VERSION_STR"
	BindingVersionInfo     = "VERSION_INFO"
	BindingBuildDate       = "BUILD_DATE"
	BindingProjectURL      = "PROJECT_URL"
	BindingCopyright       = "PROJECT_COPYRIGHT"
	BindingDescription     = "PROJECT_DESCRIPT"
	BindingLicense         = "PROJECT_LICENSE"
	BindingGeneratedNotice = "GENERATED_NOTICE"
)

// Source tells where a binding value came from.
type Source string

const (
	// SourceStandard marks values derived from the manifest and version.
	SourceStandard Source = "standard"
	// SourceExtra marks values from the manifest's extra section.
	SourceExtra Source = "extra"
	// SourceFlag marks values from --set.
	SourceFlag Source = "flag"
)

// ResolvedBindings are the bindings of one run together with their sources.
type ResolvedBindings struct {
	// Values maps binding names to rendered text.
	Values template.Bindings
	// Sources maps binding names to their origin.
	Sources map[string]Source
}

// Names returns the binding names in sorted order.
func (b *ResolvedBindings) Names() []string {
	return slices.Sorted(maps.Keys(b.Values))
}

// set stores a binding, later calls win.
func (b *ResolvedBindings) set(name, value string, source Source) {
	b.Values[name] = value
	b.Sources[name] = source
}

// StandardNames lists every standard binding. Templates may omit any of them.
func StandardNames() []string {
	return []string{
		BindingProjectName, BindingClientName, BindingServerName, BindingGUIName,
		BindingMajor, BindingMinor, BindingPatch, BindingBuild,
		BindingCommit, BindingVCSHash, BindingVersion, BindingSuffix,
		BindingVersionString, BindingVersionInfo, BindingBuildDate,
		BindingProjectURL, BindingCopyright, BindingDescription, BindingLicense,
		BindingGeneratedNotice,
	}
}

// GeneratedNotice is the warning placed at the top of generated files.
func GeneratedNotice(templatePath string) string {
	return "THIS FILE IS GENERATED BY verstamp, CHANGES WILL NOT PERSIST. EDIT " +
		filepath.Base(templatePath) + " INSTEAD."
}

// NewBindings assembles the bindings of one run. Extra manifest values
// override standard ones and overrides (from --set) override both.
func NewBindings(
	cfg *config.Config,
	v *release.VersionNumber,
	enc *encoder.Encoded,
	overrides map[string]string,
) *ResolvedBindings {
	b := &ResolvedBindings{
		Values:  make(template.Bindings, len(StandardNames())+len(cfg.Extra)+len(overrides)),
		Sources: make(map[string]Source, len(StandardNames())+len(cfg.Extra)+len(overrides)),
	}

	literal := cfg.Literal()
	identity := cfg.Project

	standard := map[string]string{
		BindingProjectName:     identity.ProjectName,
		BindingClientName:      identity.ClientName,
		BindingServerName:      identity.ServerName,
		BindingGUIName:         identity.GUIName,
		BindingMajor:           strconv.Itoa(v.Major),
		BindingMinor:           strconv.Itoa(v.Minor),
		BindingPatch:           strconv.Itoa(v.Patch),
		BindingBuild:           strconv.Itoa(v.Build),
		BindingCommit:          encoder.FormatHash(enc.Hash, literal),
		BindingVCSHash:         v.VCSHash,
		BindingVersion:         encoder.FormatBCD(enc.BCD, literal),
		BindingSuffix:          v.Suffix,
		BindingVersionString:   enc.Dotted,
		BindingVersionInfo:     enc.Info,
		BindingBuildDate:       enc.Timestamp,
		BindingProjectURL:      identity.URL,
		BindingCopyright:       identity.Copyright,
		BindingDescription:     identity.Description,
		BindingLicense:         identity.License,
		BindingGeneratedNotice: GeneratedNotice(cfg.Template),
	}

	for name, value := range standard {
		b.set(name, value, SourceStandard)
	}

	for name, value := range cfg.Extra {
		b.set(name, value, SourceExtra)
	}

	for name, value := range overrides {
		b.set(name, value, SourceFlag)
	}

	return b
}
