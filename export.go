package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"recall/patterns"
)

// ExportFormat selects how command history is serialized.
type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportCSV      ExportFormat = "csv"
	ExportMarkdown ExportFormat = "markdown"
)

// ParseExportFormat validates a --format flag value.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch ExportFormat(name) {
	case ExportJSON, ExportCSV, ExportMarkdown:
		return ExportFormat(name), nil
	}
	return "", fmt.Errorf("unsupported export format %q (expected json, csv, or markdown)", name)
}

// exportCommands writes the command history to w in the chosen format.
func exportCommands(w io.Writer, commands []patterns.Command, format ExportFormat) error {
	switch format {
	case ExportJSON:
		return writeJSONExport(w, commands)
	case ExportCSV:
		return writeCSVExport(w, commands)
	case ExportMarkdown:
		return writeMarkdownExport(w, commands)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func writeJSONExport(w io.Writer, commands []patterns.Command) error {
	data, err := json.MarshalIndent(commands, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal commands: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func writeCSVExport(w io.Writer, commands []patterns.Command) error {
	if _, err := fmt.Fprintln(w, "timestamp,command,directory,exit_code,duration_ms"); err != nil {
		return err
	}
	for _, cmd := range commands {
		_, err := fmt.Fprintf(w, "%s,%s,%s,%d,%d\n",
			cmd.Timestamp.UTC().Format(time.RFC3339),
			escapeCSV(cmd.Raw),
			escapeCSV(cmd.Dir),
			cmd.ExitCode,
			cmd.DurationMS,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func writeMarkdownExport(w io.Writer, commands []patterns.Command) error {
	fmt.Fprintln(w, "# Command History Export")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Time | Command | Directory | Status |")
	fmt.Fprintln(w, "|------|---------|-----------|--------|")

	for _, cmd := range commands {
		status := "ok"
		if !cmd.Succeeded() {
			status = fmt.Sprintf("exit %d", cmd.ExitCode)
		}
		_, err := fmt.Fprintf(w, "| %s | `%s` | %s | %s |\n",
			cmd.Timestamp.Local().Format("2006-01-02 15:04:05"),
			strings.ReplaceAll(cmd.Raw, "|", "\\|"),
			strings.ReplaceAll(cmd.Dir, "|", "\\|"),
			status,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// pushExport POSTs the JSON export to a downstream consumer endpoint.
func pushExport(url string, commands []patterns.Command, detected []patterns.DetectedPattern) error {
	payload := struct {
		GeneratedAt time.Time                  `json:"generated_at"`
		Commands    []patterns.Command         `json:"commands"`
		Patterns    []patterns.DetectedPattern `json:"patterns"`
	}{
		GeneratedAt: time.Now().UTC(),
		Commands:    commands,
		Patterns:    detected,
	}

	client := resty.New().SetTimeout(15 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		return fmt.Errorf("failed to push export: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("push endpoint returned %s", resp.Status())
	}
	return nil
}
