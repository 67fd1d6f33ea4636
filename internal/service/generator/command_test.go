package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/verstamp/internal/encoder"
	"github.com/oshokin/verstamp/internal/template"
	"github.com/oshokin/verstamp/internal/vcs"
)

const testManifest = `project:
  name: WASimCommander
  client_name: WASimClient
  server_name: WASimModule
  gui_name: WASimUI
  url: https://github.com/mpaperno/WASimCommander
  copyright: Copyright Maxim Paperno; All rights reserved.
version:
  major: 1
  minor: 1
  patch: 2
  build: 0
template: version.h.in
output: include/version.h
`

// fixedNow is the build time used by tests that do not pin a date.
func fixedNow() time.Time {
	return time.Date(2023, 2, 23, 9, 43, 21, 0, time.UTC)
}

// failingRevisioner simulates an unavailable VCS.
type failingRevisioner struct{}

func (failingRevisioner) Revision(context.Context) (string, error) {
	return "", errors.New("not a git repository")
}

// writeProject creates a manifest and template in a fresh directory.
func writeProject(t *testing.T, manifest, tmpl string) (dir, configPath string) {
	t.Helper()

	dir = t.TempDir()
	configPath = filepath.Join(dir, "verstamp.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte(manifest), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version.h.in"), []byte(tmpl), 0o600))

	return dir, configPath
}

// TestRunEndToEnd renders name, dotted version and BCD literal into the artifact.
func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	dir, configPath := writeProject(t, testManifest,
		"#define NAME \"@PROJECT_NAME@\"\n#define VER \"@VERSION_STR@\"\n#define BCD @VERSION@\n")

	result, err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		NoVCS:      true,
		Now:        fixedNow,
	})
	require.NoError(t, err)
	require.True(t, result.Written)
	require.Equal(t, filepath.Join(dir, "include", "version.h"), result.Location)
	require.Empty(t, result.Unused)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)
	require.Contains(t, string(data), `"WASimCommander"`)
	require.Contains(t, string(data), `"1.1.2.0"`)
	require.Contains(t, string(data), "0x01010200")
}

// TestRunFullHeader renders the built-in template and checks every derived value.
func TestRunFullHeader(t *testing.T) {
	t.Parallel()

	_, configPath := writeProject(t, testManifest, string(DefaultTemplate()))
	suffix := "-beta1"

	result, err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		Suffix:     &suffix,
		Revisioner: vcs.Static("0c321f25"),
		Now:        fixedNow,
	})
	require.NoError(t, err)
	require.Equal(t, "0c321f25", result.Version.VCSHash)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)

	header := string(data)
	require.Contains(t, header, "#define VER_COMMIT          0x0C321F25UL")
	require.Contains(t, header, "#define VERSION             0x01010200UL")
	require.Contains(t, header, `#define VER_NAME            "-beta1"`)
	require.Contains(t, header, `#define VERSION_STR         "1.1.2.0"`)
	require.Contains(t, header, `#define VERSION_INFO        "1.1.2.0-beta1"`)
	require.Contains(t, header, `#define BUILD_DATE          "2023-02-23T09:43:21Z"`)
	require.Contains(t, header, "EDIT version.h.in INSTEAD.")
	require.NotContains(t, header, "@")
}

// TestRunIsIdempotent regenerates with identical inputs and gets identical bytes.
func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	_, configPath := writeProject(t, testManifest, string(DefaultTemplate()))
	opts := &Options{ConfigPath: configPath, VCSHash: "0c321f25", Now: fixedNow}

	first, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.True(t, first.Written)

	firstData, err := os.ReadFile(first.Location)
	require.NoError(t, err)

	second, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.False(t, second.Written)

	secondData, err := os.ReadFile(second.Location)
	require.NoError(t, err)
	require.Equal(t, firstData, secondData)
}

// TestRunUnboundWritesNothing aborts on an unbound token before touching the output.
func TestRunUnboundWritesNothing(t *testing.T) {
	t.Parallel()

	dir, configPath := writeProject(t, testManifest, "@PROJECT_NAME@ @NO_SUCH_BINDING@\n")

	_, err := Run(context.Background(), &Options{ConfigPath: configPath, NoVCS: true, Now: fixedNow})
	require.ErrorIs(t, err, template.ErrUnboundPlaceholder)

	var unbound *template.UnboundPlaceholderError
	require.True(t, errors.As(err, &unbound))
	require.Equal(t, []string{"NO_SUCH_BINDING"}, unbound.Names)

	_, err = os.Stat(filepath.Join(dir, "include"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRunFailureKeepsPreviousArtifact leaves an existing artifact untouched on error.
func TestRunFailureKeepsPreviousArtifact(t *testing.T) {
	t.Parallel()

	dir, configPath := writeProject(t, testManifest, "@VERSION_STR@\n")
	opts := &Options{ConfigPath: configPath, NoVCS: true, Now: fixedNow}

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	tooBig := [4]int{1, 300, 0, 0}
	opts.Version = &tooBig

	_, err = Run(context.Background(), opts)
	require.ErrorIs(t, err, encoder.ErrOutOfRange)

	var rangeErr *encoder.RangeError
	require.True(t, errors.As(err, &rangeErr))
	require.Equal(t, "minor", rangeErr.Component)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)
	require.Equal(t, "1.1.2.0\n", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "include"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

// TestRunUnusedExtraBindings reports extra and --set bindings the template ignores.
func TestRunUnusedExtraBindings(t *testing.T) {
	t.Parallel()

	manifest := testManifest + "extra:\n  VENDOR: example\n  UNUSED_EXTRA: x\n"
	_, configPath := writeProject(t, manifest, "@VENDOR@ @CHANNEL@\n")

	result, err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		NoVCS:      true,
		Now:        fixedNow,
		Set:        map[string]string{"CHANNEL": "nightly", "UNUSED_SET": "y"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"UNUSED_EXTRA", "UNUSED_SET"}, result.Unused)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)
	require.Equal(t, "example nightly\n", string(data))
}

// TestRunVCSFailureDegrades uses the zero sentinel when git cannot answer.
func TestRunVCSFailureDegrades(t *testing.T) {
	t.Parallel()

	_, configPath := writeProject(t, testManifest, "@VER_COMMIT@|@VCS_HASH@\n")

	result, err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		Revisioner: failingRevisioner{},
		Now:        fixedNow,
	})
	require.NoError(t, err)
	require.Empty(t, result.Version.VCSHash)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)
	require.Equal(t, "0x00000000UL|\n", string(data))
}

// TestRunToStdout streams the artifact instead of writing a file.
func TestRunToStdout(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	dir, configPath := writeProject(t, testManifest, "@VERSION_INFO@\n")
	version := [4]int{2, 0, 1, 7}

	result, err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		OutputPath: "-",
		Version:    &version,
		NoVCS:      true,
		Now:        fixedNow,
		Stdout:     &out,
	})
	require.NoError(t, err)
	require.Equal(t, "stdout", result.Location)
	require.Equal(t, "2.0.1.7\n", out.String())

	_, err = os.Stat(filepath.Join(dir, "include"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRunPinnedBuildDate honours a pinned date over the clock.
func TestRunPinnedBuildDate(t *testing.T) {
	t.Parallel()

	_, configPath := writeProject(t, testManifest, "@BUILD_DATE@")

	result, err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		NoVCS:      true,
		BuildDate:  "2020-01-02T05:04:05+02:00",
		Now:        fixedNow,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)
	require.Equal(t, "2020-01-02T03:04:05Z", string(data))
}

// TestRunCustomDelimitersAndLiteral renders a Go constants file.
func TestRunCustomDelimitersAndLiteral(t *testing.T) {
	t.Parallel()

	manifest := testManifest + "delimiters:\n  left: \"{{\"\n  right: \"}}\"\nliteral_suffix: \"\"\n"
	_, configPath := writeProject(t, manifest,
		"package buildinfo\n\nconst (\n\tVersion = {{VERSION}}\n\tCommit = {{VER_COMMIT}}\n)\n")

	result, err := Run(context.Background(), &Options{ConfigPath: configPath, VCSHash: "0xDEADBEEF", Now: fixedNow})
	require.NoError(t, err)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)
	require.Equal(t, "package buildinfo\n\nconst (\n\tVersion = 0x01010200\n\tCommit = 0xDEADBEEF\n)\n", string(data))
}

// TestRunMissingTemplate reports a clear error.
func TestRunMissingTemplate(t *testing.T) {
	t.Parallel()

	dir, configPath := writeProject(t, testManifest, "")
	require.NoError(t, os.Remove(filepath.Join(dir, "version.h.in")))

	_, err := Run(context.Background(), &Options{ConfigPath: configPath, NoVCS: true})
	require.ErrorIs(t, err, errTemplateNotFound)
}
