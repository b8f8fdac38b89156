package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"recall/patterns"
)

// formatTable renders rows as a box-drawing table, sized to the widest cell
// per column.
func formatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var b strings.Builder
	writeBorder := func(left, mid, right string) {
		b.WriteString(left)
		for i, width := range widths {
			b.WriteString(strings.Repeat("─", width+2))
			if i < len(widths)-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		b.WriteByte('\n')
	}
	writeRow := func(cells []string) {
		b.WriteString("│")
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(fmt.Sprintf(" %-*s ", width, cell))
			b.WriteString("│")
		}
		b.WriteByte('\n')
	}

	writeBorder("┌", "┬", "┐")
	writeRow(headers)
	writeBorder("├", "┼", "┤")
	for _, row := range rows {
		writeRow(row)
	}
	writeBorder("└", "┴", "┘")

	return b.String()
}

// describePatternType renders the variant payload for display. The switch is
// exhaustive over the closed set of variants.
func describePatternType(t patterns.PatternType) string {
	switch v := t.(type) {
	case patterns.CommandSequence:
		return fmt.Sprintf("sequence (%d commands)", v.Length)
	case patterns.TimeBasedRoutine:
		return fmt.Sprintf("routine around %02d:00 (±%dm)", v.Hour, v.VarianceMinutes)
	case patterns.DirectorySpecific:
		return fmt.Sprintf("directory %s", v.Directory)
	case patterns.ErrorRecovery:
		return fmt.Sprintf("recovery %s → %s", v.ErrorCommand, v.FixCommand)
	case patterns.BuildTest:
		return fmt.Sprintf("build/test with %s", v.Tool)
	case patterns.VersionControl:
		return fmt.Sprintf("%s workflow", v.VCS)
	case patterns.FileManipulation:
		return "file manipulation"
	case patterns.SystemMaintenance:
		return "system maintenance"
	case patterns.DataProcessing:
		return "data processing"
	default:
		return "unknown"
	}
}

// filterPatterns applies the minimum-confidence threshold and optional type
// filter from the CLI.
func filterPatterns(detected []patterns.DetectedPattern, minConfidence float64, kind patterns.Kind) []patterns.DetectedPattern {
	var kept []patterns.DetectedPattern
	for _, p := range detected {
		if p.Confidence < minConfidence {
			continue
		}
		if kind != "" && p.Type.Kind() != kind {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// renderPatterns writes the pattern list in the requested output format:
// "table", "plain", or "json".
func renderPatterns(w io.Writer, detected []patterns.DetectedPattern, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(detected, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal patterns: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err

	case "plain":
		for _, p := range detected {
			fmt.Fprintf(w, "%-9s  %.2f  %3dx  %s\n",
				p.Type.Kind(), p.Confidence, p.Frequency, p.Description)
			for _, cmd := range p.Commands {
				fmt.Fprintf(w, "             %s\n", cmd)
			}
		}
		return nil

	case "table", "":
		rows := make([][]string, 0, len(detected))
		for _, p := range detected {
			rows = append(rows, []string{
				string(p.Type.Kind()),
				truncate(describePatternType(p.Type), 44),
				fmt.Sprintf("%.2f", p.Confidence),
				fmt.Sprintf("%d times", p.Frequency),
			})
		}
		_, err := fmt.Fprint(w, formatTable([]string{"Type", "Pattern", "Confidence", "Frequency"}, rows))
		return err

	default:
		return fmt.Errorf("unsupported output format %q (expected table, plain, or json)", format)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
