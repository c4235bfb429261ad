package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgertrace/ledgertrace/internal/banks"
	"github.com/ledgertrace/ledgertrace/internal/config"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Scaffold a new ledgertrace project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir)
		},
	}

	return cmd
}

func runInit(dir string) error {
	dirs := []string{"import", filepath.Join("import", "processed")}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	if err := config.Save(filepath.Join(dir, "ledgertrace.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	svc := banks.NewService(banks.DefaultRegistry())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing bank registry: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.RulesFile), []byte("[]\n"), 0o644); err != nil {
		return fmt.Errorf("writing rules file: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Printf("Initialized ledgertrace project at %s\n", dir)
	return nil
}
