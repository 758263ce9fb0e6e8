package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/preventivatore3d/internal/logging"
)

func main() {
	// Commands replace this once the configured level is known.
	if logger, err := logging.New("info"); err == nil {
		zap.ReplaceGlobals(logger)
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "preventivatore",
		Short:         "Quote 3D printing jobs from material, machine, design and finishing time.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newQuoteCommand())
	cmd.AddCommand(newHoursCommand())
	return cmd
}
