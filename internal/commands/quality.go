package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgertrace/ledgertrace/internal/attributes"
	"github.com/ledgertrace/ledgertrace/internal/config"
	"github.com/ledgertrace/ledgertrace/internal/contexts"
	"github.com/ledgertrace/ledgertrace/internal/eventstore"
	"github.com/ledgertrace/ledgertrace/internal/projections"
	"github.com/ledgertrace/ledgertrace/internal/shapes"
)

// qualityContexts are the use-case contexts a ledgered transaction is
// checked against: spec §4.6 names QualityCheck as one of the seven
// defined contexts, and ImportTime as the minimum bar every imported fact
// must already clear.
var qualityContexts = []contexts.Context{contexts.ImportTime, contexts.QualityCheck}

func newQualityCheckCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "quality-check",
		Short: "Validate every ledgered transaction against its shape and context requirements",
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

			ledger, err := projections.BuildLedger(events)
			if err != nil {
				return fmt.Errorf("building ledger: %w", err)
			}

			registry := attributes.NewCoreRegistry()
			violations := runQualityCheck(ledger, registry)
			for _, v := range violations {
				fmt.Println(v)
			}
			fmt.Printf("%d transactions checked, %d violations\n", ledger.Len(), len(violations))
			if len(violations) > 0 {
				return fmt.Errorf("quality check found %d violation(s)", len(violations))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "ledgertrace.yaml", "path to ledgertrace.yaml")
	return cmd
}

// runQualityCheck converts every ledgered transaction into a shapes.Instance
// and reports, per transaction, every shape violation plus every
// qualityContexts entry it fails to satisfy. Output is deterministic:
// Ledger.Transactions already sorts by identity, and contexts are checked
// in declared order.
func runQualityCheck(ledger *projections.Ledger, registry *attributes.Registry) []string {
	var out []string

	for _, tx := range ledger.Transactions() {
		instance := shapes.FromTransaction(tx)

		for _, e := range shapes.Validate(shapes.TransactionShape, instance, registry) {
			out = append(out, fmt.Sprintf("%s: shape violation: %s", tx.Identity, e.String()))
		}

		for _, ctx := range qualityContexts {
			ok, missing := contexts.Satisfies(instance, ctx)
			if ok {
				continue
			}
			out = append(out, fmt.Sprintf("%s: fails %s context, missing %v", tx.Identity, ctx, missing))
		}
	}
	return out
}
