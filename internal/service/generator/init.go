package generator

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/verstamp/internal/config"
	"github.com/oshokin/verstamp/internal/logger"
	"github.com/oshokin/verstamp/internal/repository/artifact"
)

// defaultTemplate is the C header template written by Init.
//
//go:embed templates/version.h.in
var defaultTemplate []byte

// errAlreadyExists is returned when Init would overwrite a file without Force.
var errAlreadyExists = errors.New("file already exists")

// InitOptions are inputs accepted by Init.
type InitOptions struct {
	// ConfigPath is where the manifest is written.
	ConfigPath string
	// ProjectName seeds the manifest's project name.
	ProjectName string
	// Version seeds the four numeric components.
	Version [4]int
	// Force overwrites existing files.
	Force bool
}

// DefaultTemplate returns a copy of the built-in C header template.
func DefaultTemplate() []byte {
	return append([]byte(nil), defaultTemplate...)
}

// Init writes a starter manifest and, next to it, the default template.
func Init(ctx context.Context, opts *InitOptions) error {
	ctx = logger.WithName(ctx, "init")

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigFilename
	}

	cfg := config.Defaults()
	cfg.Project.ProjectName = opts.ProjectName
	cfg.SetVersion(opts.Version)

	templatePath := filepath.Join(filepath.Dir(configPath), cfg.Template)

	for _, path := range []string{configPath, templatePath} {
		if err := ensureWritable(path, opts.Force); err != nil {
			return err
		}
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if _, err := artifact.NewFileRepository(templatePath).Save(ctx, defaultTemplate); err != nil {
		return fmt.Errorf("write template: %w", err)
	}

	logger.InfoKV(ctx, "Project initialized", "manifest", configPath, "template", templatePath)

	return nil
}

// ensureWritable refuses to clobber an existing file unless force is set.
func ensureWritable(path string, force bool) error {
	_, err := os.Stat(path)

	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("stat %s: %w", path, err)
	case force:
		return nil
	default:
		return fmt.Errorf("%w: %s (use --force to overwrite)", errAlreadyExists, path)
	}
}
