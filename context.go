package main

import (
	"fmt"
	"io"
	"time"

	"recall/patterns"
)

// writeContext produces a markdown summary of recent terminal activity and
// detected patterns, suitable for pasting into an AI assistant prompt.
func writeContext(w io.Writer, stats HistoryStats, detected []patterns.DetectedPattern, maxPatterns int) error {
	fmt.Fprintln(w, "# Terminal Activity Context")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Overview")
	fmt.Fprintf(w, "- Commands in sample: %d\n", stats.TotalCommands)
	fmt.Fprintf(w, "- Unique commands: %d\n", stats.UniqueCommands)
	fmt.Fprintf(w, "- Success rate: %.1f%%\n", stats.SuccessRate*100)
	fmt.Fprintf(w, "- Average duration: %dms\n", stats.AvgDurationMS)
	fmt.Fprintln(w)

	if len(stats.TopCommands) > 0 {
		fmt.Fprintln(w, "## Most Used Commands")
		for _, cc := range stats.TopCommands {
			fmt.Fprintf(w, "- `%s` (%dx)\n", cc.Base, cc.Count)
		}
		fmt.Fprintln(w)
	}

	if len(detected) > 0 {
		fmt.Fprintln(w, "## Detected Patterns")
		shown := detected
		if len(shown) > maxPatterns {
			shown = shown[:maxPatterns]
		}
		for _, p := range shown {
			fmt.Fprintf(w, "### %s (confidence %.2f, %d occurrences)\n",
				describePatternType(p.Type), p.Confidence, p.Frequency)
			for _, cmd := range p.Commands {
				fmt.Fprintf(w, "- `%s`\n", cmd)
			}
			fmt.Fprintln(w)
		}
	}

	return nil
}
