// Command ledgertrace is the CLI entry point: it wires spf13/cobra's root
// command and delegates everything to internal/commands.
package main

import (
	"os"

	"github.com/ledgertrace/ledgertrace/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
