package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"recall/patterns"
)

func newExportCmd() *cobra.Command {
	var (
		formatName string
		output     string
		limit      int
		push       bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export command history",
		Long: `Exports recorded history as JSON, CSV, or Markdown. With --push the JSON
export (including detected patterns) is POSTed to the configured endpoint for
downstream consumers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseExportFormat(formatName)
			if err != nil {
				return err
			}

			return withStore(func(store *CommandStore, cfg Config) error {
				commands, err := store.Recent(limit)
				if err != nil {
					return err
				}

				if push {
					if cfg.PushURL == "" {
						return fmt.Errorf("no push_url configured in config.yaml")
					}
					detected := patterns.NewDetector(commands).Detect()
					if err := pushExport(cfg.PushURL, commands, detected); err != nil {
						return err
					}
					fmt.Printf("Pushed %d commands to %s\n", len(commands), cfg.PushURL)
					return nil
				}

				var w io.Writer = os.Stdout
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("failed to create output file: %w", err)
					}
					defer f.Close()
					w = f
				}
				return exportCommands(w, commands, format)
			})
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "export format (json, csv, markdown)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().IntVarP(&limit, "limit", "n", 1000, "maximum commands to export")
	cmd.Flags().BoolVar(&push, "push", false, "POST the export to the configured endpoint")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		shell      string
		maxEntries int
	)

	cmd := &cobra.Command{
		Use:   "import <history file>",
		Short: "Import an existing shell history file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := NewHistoryParser().ParseFile(args[0], shell, maxEntries)
			if err != nil {
				return err
			}

			return withStore(func(store *CommandStore, cfg Config) error {
				imported, err := importHistory(store, cfg, entries)
				if err != nil {
					return err
				}
				fmt.Printf("Imported %d of %d commands from %s\n", imported, len(entries), args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "zsh", "history format (zsh, bash, plain)")
	cmd.Flags().IntVar(&maxEntries, "max", 0, "maximum entries to import (0 for all)")
	return cmd
}

func newContextCmd() *cobra.Command {
	var (
		sample      int
		maxPatterns int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Generate an AI-assistant context document",
		Long: `Writes a markdown summary of recent terminal activity, usage statistics,
and detected patterns, suitable for pasting into an AI assistant prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *CommandStore, cfg Config) error {
				if sample <= 0 {
					sample = cfg.AnalysisSampleSize
				}
				commands, err := store.Recent(sample)
				if err != nil {
					return err
				}

				stats := computeStats(commands, 10)
				detected := patterns.NewDetector(commands).Detect()

				var w io.Writer = os.Stdout
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("failed to create output file: %w", err)
					}
					defer f.Close()
					w = f
				}
				return writeContext(w, stats, detected, maxPatterns)
			})
		},
	}

	cmd.Flags().IntVar(&sample, "sample", 0, "number of recent commands to analyze (0 uses the configured sample size)")
	cmd.Flags().IntVar(&maxPatterns, "max-patterns", 5, "maximum patterns to include")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
