package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"recall/patterns"
)

// printCommands writes search or history results, one command per line.
func printCommands(w io.Writer, commands []patterns.Command) {
	for _, cmd := range commands {
		marker := " "
		if !cmd.Succeeded() {
			marker = "!"
		}
		fmt.Fprintf(w, "%s %s  %s\n",
			marker, cmd.Timestamp.Local().Format("2006-01-02 15:04:05"), cmd.Raw)
	}
}

// interactiveSearch runs a readline loop that re-queries the store for every
// entered term. Empty input or "exit" leaves the loop.
func interactiveSearch(store *CommandStore, limit int) error {
	rl, err := readline.New("recall> ")
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	fmt.Println("Interactive search. Type a query, or 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		query := strings.TrimSpace(line)
		if query == "" || query == "exit" || query == "quit" {
			return nil
		}

		matches, err := store.Search(query, "", time.Time{}, limit)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Println("No matches.")
			continue
		}
		printCommands(rl.Stdout(), matches)
	}
}
