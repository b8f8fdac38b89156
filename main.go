package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.2.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "recall",
		Short:         "Terminal command memory",
		Long:          "recall records your shell command history and mines it for behavioral patterns.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRecordCmd(),
		newHistoryCmd(),
		newSearchCmd(),
		newStatsCmd(),
		newPatternsCmd(),
		newExportCmd(),
		newImportCmd(),
		newContextCmd(),
		newHookCmd(),
		newGCCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("recall %s\n", version)
			return nil
		},
	}
}

// withStore loads the configuration, opens the command store, runs fn, and
// closes the store again.
func withStore(fn func(store *CommandStore, cfg Config) error) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	store, err := OpenCommandStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store, cfg)
}
