package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/verstamp/internal/service/generator"
)

// describeFormat is the output format of describe.
//
//nolint:gochecknoglobals // Cobra flag storage.
var describeFormat string

// describeCmd prints the resolved bindings.
//
//nolint:gochecknoglobals // Cobra commands are package-level by convention.
var describeCmd = &cobra.Command{
	Use:          "describe",
	Short:        "Print every binding available to the template.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := generator.ParseFormat(describeFormat)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return generator.Describe(ctx, generatorOptions(cmd), format, cmd.OutOrStdout())
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", string(generator.FormatTable),
		"output format: table, yaml or json")
}
