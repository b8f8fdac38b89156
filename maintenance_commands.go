package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHookCmd() *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage shell integration",
	}
	cmd.PersistentFlags().StringVar(&shell, "shell", "", "target shell (bash, zsh, fish; defaults to $SHELL)")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the hook script for a shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell == "" {
				shell = DetectShell()
			}
			script, err := HookScript(shell)
			if err != nil {
				return err
			}
			fmt.Print(script)
			return nil
		},
	}

	install := &cobra.Command{
		Use:   "install",
		Short: "Install the hook into the shell rc file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell == "" {
				shell = DetectShell()
			}
			rcPath, err := InstallHook(shell)
			if err != nil {
				return err
			}
			fmt.Printf("Shell integration installed for %s.\n", shell)
			fmt.Printf("Restart your shell or run: source %s\n", rcPath)
			return nil
		},
	}

	cmd.AddCommand(show, install)
	return cmd
}

func newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Apply the retention policy and compact the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *CommandStore, cfg Config) error {
				gc := NewGarbageCollector(store, cfg.RetentionDays, cfg.MaxDatabaseSizeMB)
				result, err := gc.Run()
				if err != nil {
					return err
				}

				if result.DeletedByAge > 0 {
					fmt.Printf("Deleted %d commands older than %d days\n", result.DeletedByAge, cfg.RetentionDays)
				}
				if result.DeletedBySize > 0 {
					fmt.Printf("Deleted %d commands to respect the %dMB size cap\n", result.DeletedBySize, cfg.MaxDatabaseSizeMB)
				}
				if result.DeletedByAge+result.DeletedBySize == 0 {
					fmt.Println("Nothing to clean up.")
				}
				fmt.Printf("Database size: %.1fMB\n", float64(result.SizeBytes)/(1024*1024))
				return nil
			})
		},
	}
}
