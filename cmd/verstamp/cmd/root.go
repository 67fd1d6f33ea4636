package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/verstamp/internal/config"
	"github.com/oshokin/verstamp/internal/logger"
	"github.com/oshokin/verstamp/internal/service/generator"
	"github.com/oshokin/verstamp/internal/version"
)

var (
	// configPath to the version-of-record manifest.
	configPath string
	// logLevel is the minimum level of log output.
	logLevel string
	// quiet keeps only error logs.
	quiet bool

	// templatePath overrides the manifest's template.
	templatePath string
	// outputPath overrides the manifest's output.
	outputPath string
	// versionNumber overrides the manifest's version components.
	versionNumber versionValue
	// suffix overrides the manifest's pre-release suffix.
	suffix string
	// vcsHash pins the revision hash.
	vcsHash string
	// noVCS skips the git query.
	noVCS bool
	// buildDate pins the build timestamp.
	buildDate string
	// repository is the git working tree to query.
	repository string
	// bindings are extra NAME=VALUE bindings.
	bindings map[string]string

	// errInvalidLogLevel is returned for an unknown --log-level value.
	errInvalidLogLevel = errors.New("invalid log level")

	// rootCmd renders the artifact from the manifest.
	rootCmd = &cobra.Command{
		Use:   "verstamp",
		Short: "Generate a version header from a template and the project's version-of-record.",
		Long: `Renders a template (for example a C header) with the project's identity strings
and version: the four dotted components, a packed 32-bit version, the VCS hash and
the build timestamp. The artifact is written in one atomic step and only when the
whole template resolves; an unbound placeholder aborts the run.

Manifest values can be overridden with VERSTAMP_* environment variables
(VERSTAMP_BUILD, VERSTAMP_SUFFIX, VERSTAMP_VCS_HASH, VERSTAMP_BUILD_DATE, ...)
and with the flags below.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			_, err := generator.Run(ctx, generatorOptions(cmd))

			return err
		},
	}
)

// Execute runs the verstamp CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// generatorOptions collects the shared flags into generator options.
func generatorOptions(cmd *cobra.Command) *generator.Options {
	opts := &generator.Options{
		ConfigPath:   configPath,
		TemplatePath: templatePath,
		OutputPath:   outputPath,
		Version:      versionNumber.Components(),
		VCSHash:      vcsHash,
		NoVCS:        noVCS,
		BuildDate:    buildDate,
		Repository:   repository,
		Set:          bindings,
		Stdout:       cmd.OutOrStdout(),
	}

	if cmd.Flags().Changed("suffix") {
		value := suffix
		opts.Suffix = &value
	}

	return opts
}

// setupLogging applies --log-level and --quiet to the global logger.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, ok := logger.ParseLogLevel(logLevel)
	if !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, logLevel)
	}

	logger.SetLevel(level)

	if quiet {
		logger.SetLogger(logger.New(nil, logger.WithLevel(zapcore.ErrorLevel)))
	}

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to the version manifest")
	persistent.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	persistent.BoolVarP(&quiet, "quiet", "q", false, "log errors only")

	persistent.StringVarP(&templatePath, "template", "t", "", "template path (overrides the manifest)")
	persistent.StringVarP(&outputPath, "output", "o", "", "artifact path, \"-\" for stdout (overrides the manifest)")
	persistent.Var(&versionNumber, "version-number", "version components, e.g. 1.2.3.4 (overrides the manifest)")
	persistent.StringVar(&suffix, "suffix", "", "pre-release suffix such as -beta1 (overrides the manifest)")
	persistent.StringVar(&vcsHash, "vcs-hash", "", "pin the VCS hash instead of asking git")
	persistent.BoolVar(&noVCS, "no-vcs", false, "do not query git; the hash is absent unless pinned")
	persistent.StringVar(&buildDate, "build-date", "", "pin the build timestamp (RFC 3339)")
	persistent.StringVar(&repository, "repo", "", "git working tree to query (overrides the manifest)")
	persistent.StringToStringVar(&bindings, "set", nil, "extra bindings as NAME=VALUE, repeatable")

	rootCmd.AddCommand(checkCmd, describeCmd, initCmd)
}
