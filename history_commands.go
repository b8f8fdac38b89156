package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *CommandStore, cfg Config) error {
				commands, err := store.Recent(limit)
				if err != nil {
					return err
				}
				if len(commands) == 0 {
					fmt.Println("No commands recorded yet. Run 'recall hook install' to set up shell integration.")
					return nil
				}
				printCommands(os.Stdout, commands)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "number of commands to show")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		limit       int
		dir         string
		since       string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search recorded commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *CommandStore, cfg Config) error {
				if interactive {
					return interactiveSearch(store, limit)
				}
				if len(args) == 0 {
					return fmt.Errorf("a query is required unless --interactive is set")
				}

				sinceTime, err := parseSince(since)
				if err != nil {
					return err
				}

				matches, err := store.Search(args[0], dir, sinceTime, limit)
				if err != nil {
					return err
				}
				if len(matches) == 0 {
					fmt.Println("No matches.")
					return nil
				}
				printCommands(os.Stdout, matches)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "maximum results")
	cmd.Flags().StringVar(&dir, "dir", "", "restrict to one working directory")
	cmd.Flags().StringVar(&since, "since", "", "restrict to commands after a date (2006-01-02) or duration (48h)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "interactive incremental search")
	return cmd
}

// parseSince accepts either an absolute date or a look-back duration.
func parseSince(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return time.Now().Add(-d), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --since value %q (expected 2006-01-02 or a duration like 48h)", value)
}

func newStatsCmd() *cobra.Command {
	var (
		sample int
		top    int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *CommandStore, cfg Config) error {
				if sample <= 0 {
					sample = cfg.AnalysisSampleSize
				}
				commands, err := store.Recent(sample)
				if err != nil {
					return err
				}

				stats := computeStats(commands, top)
				fmt.Printf("Usage statistics over the last %d commands\n\n", stats.TotalCommands)
				fmt.Printf("Unique commands:  %d\n", stats.UniqueCommands)
				fmt.Printf("Success rate:     %.1f%%\n", stats.SuccessRate*100)
				fmt.Printf("Average duration: %dms\n\n", stats.AvgDurationMS)

				rows := make([][]string, 0, len(stats.TopCommands))
				for _, cc := range stats.TopCommands {
					rows = append(rows, []string{cc.Base, strconv.Itoa(cc.Count)})
				}
				fmt.Print(formatTable([]string{"Command", "Count"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&sample, "sample", 0, "number of recent commands to analyze (0 uses the configured sample size)")
	cmd.Flags().IntVar(&top, "top", 10, "number of top commands to list")
	return cmd
}
