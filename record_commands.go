package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// newRecordCmd is the hook target: the shell integration calls it after every
// executed command. It can also be invoked manually to log a one-off entry.
func newRecordCmd() *cobra.Command {
	var (
		exitCode   int
		durationMS int64
		dir        string
	)

	cmd := &cobra.Command{
		Use:    "record <command line>",
		Short:  "Record one executed command",
		Args:   cobra.MinimumNArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			return withStore(func(store *CommandStore, cfg Config) error {
				return recordCommand(store, cfg, raw, dir, exitCode, durationMS)
			})
		},
	}

	cmd.Flags().IntVar(&exitCode, "exit", 0, "exit code of the command")
	cmd.Flags().Int64Var(&durationMS, "duration-ms", 0, "wall time in milliseconds")
	cmd.Flags().StringVar(&dir, "dir", "", "working directory (defaults to the current directory)")
	return cmd
}
