package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgertrace/ledgertrace/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgertrace",
		Short:   "Content-addressed, event-sourced statement ingestion and classification",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newBanksCommand())
	rootCmd.AddCommand(newEventsCommand())
	rootCmd.AddCommand(newQualityCheckCommand())

	return rootCmd
}
