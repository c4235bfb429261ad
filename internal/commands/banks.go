package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgertrace/ledgertrace/internal/banks"
	"github.com/ledgertrace/ledgertrace/internal/config"
	"github.com/ledgertrace/ledgertrace/internal/model"
)

func newBanksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banks",
		Short: "Manage the bank registry a project's transactions attribute to",
	}
	cmd.AddCommand(newBanksListCommand())
	cmd.AddCommand(newBanksAddCommand())
	return cmd
}

func newBanksListCommand() *cobra.Command {
	var configPath string
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			svc, err := banks.Load(dir)
			if err != nil {
				return fmt.Errorf("loading bank registry: %w", err)
			}
			for _, b := range svc.All() {
				fmt.Printf("%s\t%s\t%s\t%s\n", b.ID, b.Name, b.LastFour, b.DefaultCurrency)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "ledgertrace.yaml", "path to ledgertrace.yaml")
	cmd.Flags().StringVar(&dir, "dir", ".", "project directory containing banks.csv")
	return cmd
}

func newBanksAddCommand() *cobra.Command {
	var dir string
	var name, lastFour, currency string

	cmd := &cobra.Command{
		Use:   "add [bank-id]",
		Short: "Register a new bank or update an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := banks.Load(dir)
			if err != nil {
				return fmt.Errorf("loading bank registry: %w", err)
			}

			updated := svc.Register(model.Bank{
				ID:              args[0],
				Name:            name,
				LastFour:        lastFour,
				DefaultCurrency: currency,
			})
			if err := svc.Save(dir); err != nil {
				return fmt.Errorf("saving bank registry: %w", err)
			}

			verb := "Registered"
			if updated {
				verb = "Updated"
			}
			fmt.Printf("%s bank %s\n", verb, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "project directory containing banks.csv")
	cmd.Flags().StringVar(&name, "name", "", "bank display name")
	cmd.Flags().StringVar(&lastFour, "last-four", "", "last four digits of the account number")
	cmd.Flags().StringVar(&currency, "currency", "USD", "default currency")
	return cmd
}
