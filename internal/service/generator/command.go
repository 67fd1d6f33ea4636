package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/verstamp/internal/config"
	"github.com/oshokin/verstamp/internal/domain/release"
	"github.com/oshokin/verstamp/internal/encoder"
	"github.com/oshokin/verstamp/internal/logger"
	"github.com/oshokin/verstamp/internal/repository/artifact"
	"github.com/oshokin/verstamp/internal/template"
	"github.com/oshokin/verstamp/internal/vcs"
)

// Options contains inputs shared by every generator entry point.
// Zero values leave the manifest (and its VERSTAMP_* overrides) in charge.
type Options struct {
	// ConfigPath is the manifest path, defaults to verstamp.yaml.
	ConfigPath string
	// TemplatePath overrides the manifest's template.
	TemplatePath string
	// OutputPath overrides the manifest's output; "-" writes to Stdout.
	OutputPath string
	// Version overrides all four numeric components when non-nil.
	Version *[4]int
	// Suffix overrides the pre-release suffix when non-nil.
	Suffix *string
	// VCSHash pins the revision hash.
	VCSHash string
	// NoVCS skips the git query; the hash is absent unless pinned.
	NoVCS bool
	// BuildDate pins the build timestamp (RFC 3339).
	BuildDate string
	// Repository overrides the git working tree.
	Repository string
	// Set holds extra bindings that override everything else.
	Set map[string]string
	// Stdout receives the artifact when the output is "-". Defaults to os.Stdout.
	Stdout io.Writer
	// Now returns the build time when no date is pinned. Defaults to time.Now.
	Now func() time.Time
	// Revisioner replaces the git query. Nil uses git in Repository.
	Revisioner vcs.Revisioner
}

// run holds everything resolved for one generation pass.
type run struct {
	// cfg is the manifest after overrides.
	cfg *config.Config
	// tmpl is the template text.
	tmpl string
	// resolver substitutes tokens using the configured delimiters.
	resolver *template.Resolver
	// version is the resolved version-of-record.
	version *release.VersionNumber
	// encoded holds the derived representations of version.
	encoded *encoder.Encoded
	// bindings are the values available to the template.
	bindings *ResolvedBindings
}

var (
	// errStdoutNotComparable is returned when Check is asked to inspect stdout.
	errStdoutNotComparable = errors.New("cannot check an artifact written to stdout")
	// errTemplateNotFound is returned when the template file is missing.
	errTemplateNotFound = errors.New("template not found")
)

// Result describes a finished generation pass.
type Result struct {
	// Location is where the artifact was written.
	Location string
	// Written is false when the artifact already had identical content.
	Written bool
	// Version is the version-of-record the artifact was rendered from.
	Version *release.VersionNumber
	// Unused lists bindings the template did not reference.
	Unused []string
}

// Run executes one generation pass. Nothing is written unless the whole
// template renders, so a failed run leaves any previous artifact intact.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	ctx = logger.WithName(ctx, "generate")

	r, err := prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	rendered, err := r.render(ctx, r.bindings.Values)
	if err != nil {
		return nil, err
	}

	repo := opts.repository(r.cfg.Output)

	written, err := repo.Save(ctx, []byte(rendered.Text))
	if err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}

	result := &Result{
		Location: repo.Location(),
		Written:  written,
		Version:  r.version.Clone(),
	}

	if rendered.Warning != nil {
		result.Unused = rendered.Warning.Names
	}

	if written {
		logger.InfoKV(ctx, "Artifact generated",
			"path", repo.Location(),
			"version", r.encoded.Info,
			"bcd", encoder.FormatBCD(r.encoded.BCD, ""),
			"commit", r.version.VCSHash,
		)
	} else {
		logger.InfoKV(ctx, "Artifact is up to date", "path", repo.Location())
	}

	return result, nil
}

// prepare loads the manifest, applies options and resolves every binding.
func prepare(ctx context.Context, opts *Options) (*run, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	opts.applyTo(cfg)

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	ctx = logger.WithKV(ctx, "template", cfg.Template)

	contents, err := os.ReadFile(filepath.Clean(cfg.Template))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errTemplateNotFound, cfg.Template)
		}

		return nil, fmt.Errorf("read template: %w", err)
	}

	resolver, err := template.NewResolver(cfg.Delimiters)
	if err != nil {
		return nil, err
	}

	v, err := resolveVersion(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	enc, err := encoder.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode version: %w", err)
	}

	logger.DebugKV(ctx, "Version resolved",
		"dotted", enc.Dotted,
		"info", enc.Info,
		"bcd", encoder.FormatBCD(enc.BCD, cfg.Literal()),
		"hash", encoder.FormatHash(enc.Hash, cfg.Literal()),
		"timestamp", enc.Timestamp,
	)

	return &run{
		cfg:      cfg,
		tmpl:     string(contents),
		resolver: resolver,
		version:  v,
		encoded:  enc,
		bindings: NewBindings(cfg, v, enc, opts.Set),
	}, nil
}

// render resolves the template with values and logs unused bindings.
func (r *run) render(ctx context.Context, values template.Bindings) (*template.Result, error) {
	result, err := r.resolver.Render(r.tmpl, values, template.WithOptional(StandardNames()...))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", r.cfg.Template, err)
	}

	if result.Warning != nil {
		logger.WarnKV(ctx, "Bindings are not used by the template",
			"template", r.cfg.Template,
			"names", result.Warning.Names,
		)
	}

	return result, nil
}

// resolveVersion builds the version-of-record from the manifest, the VCS and the clock.
func resolveVersion(ctx context.Context, cfg *config.Config, opts *Options) (*release.VersionNumber, error) {
	v := &release.VersionNumber{
		Major:  cfg.Version.Major,
		Minor:  cfg.Version.Minor,
		Patch:  cfg.Version.Patch,
		Build:  cfg.Version.Build,
		Suffix: cfg.Version.Suffix,
	}

	hash, err := resolveHash(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	v.VCSHash = hash

	if cfg.BuildDate != "" {
		if v.BuildTimestamp, err = config.ParseBuildDate(cfg.BuildDate); err != nil {
			return nil, err
		}
	} else {
		now := opts.Now
		if now == nil {
			now = time.Now
		}

		v.BuildTimestamp = now().UTC().Truncate(time.Second)
	}

	return v, nil
}

// resolveHash returns the normalized 8 hex-digit hash or "" when unavailable.
// A failing VCS query degrades to an absent hash instead of failing the run.
func resolveHash(ctx context.Context, cfg *config.Config, opts *Options) (string, error) {
	var revisioner vcs.Revisioner

	switch {
	case cfg.VCSHash != "":
		revisioner = vcs.Static(encoder.ShortenHash(cfg.VCSHash))
	case opts.NoVCS:
		return "", nil
	case opts.Revisioner != nil:
		revisioner = opts.Revisioner
	default:
		revisioner = vcs.NewGit(cfg.Repository)
	}

	revision, err := revisioner.Revision(ctx)
	if err != nil {
		logger.WarnKV(ctx, "VCS hash unavailable, using the empty sentinel", "error", err)
		return "", nil
	}

	hash, err := encoder.ParseHash(revision)
	if err != nil {
		return "", err
	}

	if revision == "" {
		return "", nil
	}

	return fmt.Sprintf("%08x", hash), nil
}

// applyTo copies non-zero options over the manifest.
func (o *Options) applyTo(cfg *config.Config) {
	if o.TemplatePath != "" {
		cfg.Template = o.TemplatePath
	}

	if o.OutputPath != "" {
		cfg.Output = o.OutputPath
	}

	if o.Version != nil {
		cfg.SetVersion(*o.Version)
	}

	if o.Suffix != nil {
		cfg.Version.Suffix = *o.Suffix
	}

	if o.VCSHash != "" {
		cfg.VCSHash = o.VCSHash
	}

	if o.BuildDate != "" {
		cfg.BuildDate = o.BuildDate
	}

	if o.Repository != "" {
		cfg.Repository = o.Repository
	}
}

// repository picks the artifact repository for output.
//
//nolint:ireturn // Callers only need the Repository behaviour.
func (o *Options) repository(output string) artifact.Repository {
	if output == config.StdoutOutput {
		stdout := o.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}

		return artifact.NewStreamRepository(stdout, "stdout")
	}

	return artifact.NewFileRepository(output)
}
