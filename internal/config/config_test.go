package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/verstamp/internal/encoder"
	"github.com/oshokin/verstamp/internal/template"
)

const sampleManifest = `
project:
  name: WASimCommander
  client_name: WASimClient
  server_name: WASimModule
  gui_name: WASimUI
  url: https://github.com/mpaperno/WASimCommander
version:
  major: 1
  minor: 1
  patch: 2
  build: 0
template: src/include/wasim_version.h.in
output: src/include/wasim_version.h
extra:
  VENDOR: example
`

// TestValidate checks required fields and range validation.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)

	cfg := Defaults()
	require.NoError(t, Validate(cfg))

	cfg.Template = ""
	require.ErrorIs(t, Validate(cfg), errTemplateRequired)

	cfg = Defaults()
	cfg.Output = ""
	require.ErrorIs(t, Validate(cfg), errOutputRequired)

	cfg = Defaults()
	cfg.Delimiters.Right = ""
	require.ErrorIs(t, Validate(cfg), template.ErrInvalidDelimiters)

	cfg = Defaults()
	cfg.Version.Minor = 256
	require.ErrorIs(t, Validate(cfg), encoder.ErrOutOfRange)

	cfg = Defaults()
	cfg.VCSHash = "xyz"
	require.ErrorIs(t, Validate(cfg), encoder.ErrInvalidHash)

	cfg = Defaults()
	cfg.VCSHash = "0c321f25e1b7a6b1a3c1d0a7b0e3f6a8f9d2c4e1"
	require.NoError(t, Validate(cfg))

	cfg.BuildDate = "yesterday"
	require.Error(t, Validate(cfg))
}

// TestParseYAMLAppliesDefaults decodes a manifest and fills unset fields.
func TestParseYAMLAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(sampleManifest), ".yaml")
	require.NoError(t, err)
	require.Equal(t, "WASimCommander", cfg.Project.ProjectName)
	require.Equal(t, "WASimUI", cfg.Project.GUIName)
	require.Equal(t, Version{Major: 1, Minor: 1, Patch: 2}, cfg.Version)
	require.Equal(t, template.DefaultDelimiters, cfg.Delimiters)
	require.Equal(t, DefaultLiteralSuffix, cfg.Literal())
	require.Equal(t, DefaultRepository, cfg.Repository)
	require.Equal(t, map[string]string{"VENDOR": "example"}, cfg.Extra)
}

// TestParseKeepsExplicitEmptyLiteralSuffix distinguishes "unset" from "empty".
func TestParseKeepsExplicitEmptyLiteralSuffix(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("literal_suffix: \"\"\ndelimiters:\n  left: \"{{\"\n  right: \"}}\"\n"), ".yml")
	require.NoError(t, err)
	require.Empty(t, cfg.Literal())
	require.Equal(t, template.Delimiters{Left: "{{", Right: "}}"}, cfg.Delimiters)
}

// TestParseJSONC accepts comments and trailing commas in JSON manifests.
func TestParseJSONC(t *testing.T) {
	t.Parallel()

	manifest := "{\n" +
		"  // Identity.\n" +
		"  \"project\": {\"name\": \"WASimCommander\",},\n" +
		"  \"version\": {\"major\": 1, \"minor\": 1, \"patch\": 2, \"suffix\": \"-beta1\"},\n" +
		"  /* Paths. */\n" +
		"  \"output\": \"-\",\n" +
		"}\n"

	cfg, err := Parse([]byte(manifest), ".jsonc")
	require.NoError(t, err)
	require.Equal(t, "WASimCommander", cfg.Project.ProjectName)
	require.Equal(t, "-beta1", cfg.Version.Suffix)
	require.Equal(t, StdoutOutput, cfg.Output)
	require.Equal(t, DefaultTemplateFilename, cfg.Template)
}

// TestParseEnvOverrides lets VERSTAMP_* variables override the manifest.
func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("VERSTAMP_BUILD", "42")
	t.Setenv("VERSTAMP_SUFFIX", "-rc2")
	t.Setenv("VERSTAMP_VCS_HASH", "deadbeef")
	t.Setenv("VERSTAMP_BUILD_DATE", "2023-02-23T09:43:21Z")

	cfg, err := Parse([]byte(sampleManifest), ".yaml")
	require.NoError(t, err)
	require.Equal(t, 42, cfg.Version.Build)
	require.Equal(t, "-rc2", cfg.Version.Suffix)
	require.Equal(t, "deadbeef", cfg.VCSHash)
	require.Equal(t, "2023-02-23T09:43:21Z", cfg.BuildDate)

	t.Setenv("VERSTAMP_BUILD", "not-a-number")

	_, err = Parse([]byte(sampleManifest), ".yaml")
	require.Error(t, err)
}

// TestSaveLoadRoundtrip ensures a saved manifest loads back with resolved paths.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)

	cfg := Defaults()
	cfg.Project.ProjectName = "WASimCommander"
	cfg.SetVersion([4]int{1, 1, 2, 0})

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Project, loaded.Project)
	require.Equal(t, cfg.Version, loaded.Version)
	require.Equal(t, filepath.Join(dir, DefaultTemplateFilename), loaded.Template)
	require.Equal(t, filepath.Join(dir, DefaultOutputFilename), loaded.Output)

	_, err = os.Stat(path)
	require.NoError(t, err)

	require.ErrorIs(t, Save(path, nil), errConfigIsNotSet)
}

// TestLoadMissing reports a read error for a missing manifest.
func TestLoadMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestParseBuildDate converts any offset to UTC.
func TestParseBuildDate(t *testing.T) {
	t.Parallel()

	got, err := ParseBuildDate("2023-02-23T11:43:21+02:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 2, 23, 9, 43, 21, 0, time.UTC), got)
}
