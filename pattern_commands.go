package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recall/patterns"
)

func newPatternsCmd() *cobra.Command {
	var (
		minConfidence float64
		typeName      string
		format        string
		sample        int
	)

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Detect behavioral patterns in recent history",
		Long: `Analyzes a sample of recent commands for recurring behavior: repeated
command sequences, time-of-day routines, directory workflows, error-recovery
cycles, and tool usage bursts. Patterns are recomputed on every run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind patterns.Kind
			if typeName != "" {
				parsed, err := patterns.ParseKind(typeName)
				if err != nil {
					return err
				}
				kind = parsed
			}

			return withStore(func(store *CommandStore, cfg Config) error {
				if sample <= 0 {
					sample = cfg.AnalysisSampleSize
				}
				commands, err := store.Recent(sample)
				if err != nil {
					return err
				}
				if len(commands) < 3 {
					fmt.Println("Not enough history to analyze yet. Record a few commands first.")
					return nil
				}

				detected := patterns.NewDetector(commands).Detect()
				detected = filterPatterns(detected, minConfidence, kind)
				if len(detected) == 0 {
					fmt.Println("No patterns above the confidence threshold.")
					return nil
				}
				return renderPatterns(os.Stdout, detected, format)
			})
		},
	}

	cmd.Flags().Float64VarP(&minConfidence, "min-confidence", "c", patterns.MinConfidence, "minimum confidence to show")
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "filter by pattern type (sequence, time, directory, error, build, vcs, file, system)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, plain, json)")
	cmd.Flags().IntVar(&sample, "sample", 0, "number of recent commands to analyze (0 uses the configured sample size)")
	return cmd
}
