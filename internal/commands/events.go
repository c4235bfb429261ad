package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgertrace/ledgertrace/internal/config"
	"github.com/ledgertrace/ledgertrace/internal/eventstore"
)

func newEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the append-only event log",
	}
	cmd.AddCommand(newEventsExportCommand())
	return cmd
}

func newEventsExportCommand() *cobra.Command {
	var configPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full event log as a human-auditable CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			store, err := eventstore.NewSQLiteStore(cfg.EventStorePath)
			if err != nil {
				return fmt.Errorf("opening event store: %w", err)
			}
			defer store.Close()

			events, err := store.Events(context.Background())
			if err != nil {
				return fmt.Errorf("reading events: %w", err)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()

			if err := eventstore.WriteCSV(f, events); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}

			fmt.Printf("Exported %d events to %s\n", len(events), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "ledgertrace.yaml", "path to ledgertrace.yaml")
	cmd.Flags().StringVar(&outPath, "out", "events.csv", "output CSV path")
	return cmd
}
