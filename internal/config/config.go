package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/verstamp/internal/domain/release"
	"github.com/oshokin/verstamp/internal/encoder"
	"github.com/oshokin/verstamp/internal/template"
)

// Config is the version-of-record manifest of a project.
type Config struct {
	// Project holds the identity strings rendered into the artifact.
	Project release.Identity `yaml:"project"`
	// Version holds the tracked version components.
	Version Version `yaml:"version"`
	// Template is the path of the template to render.
	Template string `env:"TEMPLATE" yaml:"template"`
	// Output is the path of the generated artifact, "-" for stdout.
	Output string `env:"OUTPUT" yaml:"output"`
	// Delimiters wrap placeholder names in the template.
	Delimiters template.Delimiters `yaml:"delimiters"`
	// LiteralSuffix is appended to numeric hex literals, "UL" by default.
	LiteralSuffix *string `yaml:"literal_suffix,omitempty"`
	// VCSHash pins the revision hash instead of asking git.
	VCSHash string `env:"VCS_HASH" yaml:"vcs_hash,omitempty"`
	// Repository is the git working tree queried for the revision.
	Repository string `env:"REPOSITORY" yaml:"repository,omitempty"`
	// BuildDate pins the build timestamp (RFC 3339) for reproducible output.
	BuildDate string `env:"BUILD_DATE" yaml:"build_date,omitempty"`
	// Extra holds additional bindings rendered verbatim.
	Extra map[string]string `yaml:"extra,omitempty"`
}

// Version holds the tracked version components.
type Version struct {
	// Major is the major version.
	Major int `yaml:"major"`
	// Minor is the minor version.
	Minor int `yaml:"minor"`
	// Patch is the patch version.
	Patch int `yaml:"patch"`
	// Build is the build counter, usually supplied by CI.
	Build int `env:"BUILD" yaml:"build"`
	// Suffix is the optional pre-release suffix such as "-beta1".
	Suffix string `env:"SUFFIX" yaml:"suffix"`
}

const (
	// DefaultConfigFilename is the default manifest filename.
	DefaultConfigFilename = "verstamp.yaml"
	// DefaultTemplateFilename is the default template path.
	DefaultTemplateFilename = "version.h.in"
	// DefaultOutputFilename is the default artifact path.
	DefaultOutputFilename = "version.h"
	// DefaultLiteralSuffix is appended to hex literals when not configured.
	DefaultLiteralSuffix = "UL"
	// DefaultRepository is the working tree queried for the revision.
	DefaultRepository = "."
	// StdoutOutput sends the artifact to standard output.
	StdoutOutput = "-"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "VERSTAMP_"

	// DefaultFilePermissions is the permission of saved manifests.
	DefaultFilePermissions = 0o644
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errTemplateRequired is returned when no template path is configured.
	errTemplateRequired = errors.New("template path must be provided")
	// errOutputRequired is returned when no output path is configured.
	errOutputRequired = errors.New("output path must be provided")
)

// Defaults returns the values used for every unset field.
// LiteralSuffix stays nil so that an explicit empty suffix survives merging;
// Literal supplies its default.
func Defaults() *Config {
	return &Config{
		Template:   DefaultTemplateFilename,
		Output:     DefaultOutputFilename,
		Delimiters: template.DefaultDelimiters,
		Repository: DefaultRepository,
	}
}

// Load reads the manifest at path, applies VERSTAMP_* overrides and defaults,
// and validates the result. Relative template and output paths are resolved
// against the manifest's directory.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	cfg, err := Parse(contents, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	cfg.resolvePaths(filepath.Dir(path))

	return cfg, nil
}

// Parse decodes manifest contents. ext selects JSONC handling for ".json"
// and ".jsonc"; everything else is decoded as YAML.
func Parse(contents []byte, ext string) (*Config, error) {
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		contents = jsonc.ToJSON(contents)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnv overrides cfg with VERSTAMP_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	return nil
}

// ApplyDefaults fills every unset field of cfg from Defaults.
func ApplyDefaults(cfg *Config) error {
	if err := mergo.Merge(cfg, Defaults()); err != nil {
		return fmt.Errorf("merge defaults: %w", err)
	}

	return nil
}

// Save writes the manifest to path as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Validate checks the manifest for required fields and representable values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Template == "" {
		return errTemplateRequired
	}

	if cfg.Output == "" {
		return errOutputRequired
	}

	if cfg.Delimiters.Left == "" || cfg.Delimiters.Right == "" {
		return template.ErrInvalidDelimiters
	}

	v := release.VersionNumber{
		Major:   cfg.Version.Major,
		Minor:   cfg.Version.Minor,
		Patch:   cfg.Version.Patch,
		Build:   cfg.Version.Build,
		VCSHash: encoder.ShortenHash(cfg.VCSHash),
	}
	if err := encoder.Validate(&v); err != nil {
		return fmt.Errorf("invalid version: %w", err)
	}

	if cfg.BuildDate != "" {
		if _, err := ParseBuildDate(cfg.BuildDate); err != nil {
			return err
		}
	}

	return nil
}

// ParseBuildDate parses an RFC 3339 build date and converts it to UTC.
func ParseBuildDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid build date %q: %w", s, err)
	}

	return t.UTC(), nil
}

// Literal returns the configured hex literal suffix.
func (c *Config) Literal() string {
	if c.LiteralSuffix == nil {
		return DefaultLiteralSuffix
	}

	return *c.LiteralSuffix
}

// SetVersion replaces the four numeric components.
func (c *Config) SetVersion(components [4]int) {
	c.Version.Major = components[0]
	c.Version.Minor = components[1]
	c.Version.Patch = components[2]
	c.Version.Build = components[3]
}

// resolvePaths makes relative template and output paths relative to dir.
func (c *Config) resolvePaths(dir string) {
	c.Template = resolvePath(dir, c.Template)
	if c.Output != StdoutOutput {
		c.Output = resolvePath(dir, c.Output)
	}

	c.Repository = resolvePath(dir, c.Repository)
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
