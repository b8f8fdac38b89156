package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"recall/patterns"
)

func exportFixture() []patterns.Command {
	ts := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return []patterns.Command{
		newCommand("git status", "/home/user/project", 0, 120, ts, "s1"),
		newCommand(`echo "a,b"`, "/home/user/project", 1, 5, ts.Add(time.Minute), "s1"),
	}
}

func TestEscapeCSV(t *testing.T) {
	cases := map[string]string{
		"plain":          "plain",
		"has,comma":      `"has,comma"`,
		`has"quote`:      `"has""quote"`,
		"has\nnewline":   "\"has\nnewline\"",
		"no special chr": "no special chr",
	}
	for input, want := range cases {
		if got := escapeCSV(input); got != want {
			t.Errorf("escapeCSV(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	if err := exportCommands(&buf, exportFixture(), ExportCSV); err != nil {
		t.Fatalf("failed to export CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "timestamp,command,directory,exit_code,duration_ms" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[2], `"echo ""a,b"""`) {
		t.Errorf("comma-containing command not quoted: %q", lines[2])
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := exportCommands(&buf, exportFixture(), ExportJSON); err != nil {
		t.Fatalf("failed to export JSON: %v", err)
	}

	var restored []patterns.Command
	if err := json.Unmarshal(buf.Bytes(), &restored); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(restored) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(restored))
	}
	if restored[0].Raw != "git status" {
		t.Errorf("first command = %q, want %q", restored[0].Raw, "git status")
	}
}

func TestMarkdownExport(t *testing.T) {
	var buf bytes.Buffer
	if err := exportCommands(&buf, exportFixture(), ExportMarkdown); err != nil {
		t.Fatalf("failed to export markdown: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "# Command History Export") {
		t.Error("missing markdown title")
	}
	if !strings.Contains(output, "`git status`") {
		t.Error("missing command cell")
	}
	if !strings.Contains(output, "exit 1") {
		t.Error("missing failure status cell")
	}
}

func TestParseExportFormat(t *testing.T) {
	for _, name := range []string{"json", "csv", "markdown"} {
		if _, err := ParseExportFormat(name); err != nil {
			t.Errorf("ParseExportFormat(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseExportFormat("xml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
