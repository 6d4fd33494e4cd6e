// Package cli implements the Daybreak command-line interface using
// Cobra. Subcommands cover the daemon (serve) and direct local use of
// the progress engine (checkin, summary, milestones, profile).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daybreak",
	Short: "Daybreak recovery progress tracking",
	Long: `Daybreak tracks recovery progress from daily check-ins:
sobriety days, streaks, compliance, milestones, and pattern warnings,
with a local-midnight rollover per user timezone.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
