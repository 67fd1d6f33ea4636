package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/verstamp/internal/service/generator"
)

// checkCmd verifies that the artifact matches its template and manifest.
//
//nolint:gochecknoglobals // Cobra commands are package-level by convention.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generated artifact is in sync with its template.",
	Long: `Renders the template in memory and compares it with the artifact on disk.
Exits with a non-zero status when the artifact is missing or differs. Unless a
build date is pinned, any well-formed build date in the artifact is accepted.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		result, err := generator.Check(ctx, generatorOptions(cmd))
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is in sync (blake3 %s)\n", result.Location, result.Fingerprint)

		return nil
	},
}
