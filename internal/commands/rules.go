package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgertrace/ledgertrace/internal/config"
	"github.com/ledgertrace/ledgertrace/internal/rules"
)

func newRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate the classification rule set",
	}
	cmd.AddCommand(newRulesValidateCommand())
	return cmd
}

func newRulesValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the configured rules file and report any violations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			engine, err := rules.LoadRules(cfg.RulesFile, rulesVersion(cfg.RulesFile))
			if err != nil {
				return fmt.Errorf("rule set is invalid: %w", err)
			}

			fmt.Printf("%s: %d rules valid\n", cfg.RulesFile, engine.RuleCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "ledgertrace.yaml", "path to ledgertrace.yaml")
	return cmd
}
