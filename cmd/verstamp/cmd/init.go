package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oshokin/verstamp/internal/service/generator"
)

var (
	// projectName seeds the manifest created by init.
	projectName string
	// force lets init overwrite existing files.
	force bool

	// initCmd scaffolds a manifest and the default header template.
	initCmd = &cobra.Command{
		Use:          "init",
		Short:        "Create a starter manifest and C header template.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts := &generator.InitOptions{
				ConfigPath:  configPath,
				ProjectName: projectName,
				Force:       force,
			}

			if components := versionNumber.Components(); components != nil {
				opts.Version = *components
			}

			return generator.Init(context.Background(), opts)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	initCmd.Flags().StringVar(&projectName, "name", "", "project name")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
}
