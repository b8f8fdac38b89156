package main

import (
	"strings"
	"testing"
	"time"
)

func TestParseZshHistory(t *testing.T) {
	input := ": 1740000000:2;git status\n" +
		": 1740000060:0;make build\n" +
		"plain command without metadata\n" +
		"\n" +
		"# a comment line\n"

	entries, err := NewHistoryParser().Parse(strings.NewReader(input), "zsh", 0)
	if err != nil {
		t.Fatalf("failed to parse zsh history: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Command != "git status" {
		t.Errorf("first command = %q, want %q", entries[0].Command, "git status")
	}
	if entries[0].Duration != 2 {
		t.Errorf("first duration = %d, want 2", entries[0].Duration)
	}
	if !entries[0].Timestamp.Equal(time.Unix(1740000000, 0)) {
		t.Errorf("first timestamp = %v, want %v", entries[0].Timestamp, time.Unix(1740000000, 0))
	}
	if entries[2].Command != "plain command without metadata" {
		t.Errorf("fallback command = %q", entries[2].Command)
	}
	if !entries[2].Timestamp.IsZero() {
		t.Errorf("fallback timestamp should be zero, got %v", entries[2].Timestamp)
	}
}

func TestParseBashHistoryWithTimestamps(t *testing.T) {
	input := "#1740000000\n" +
		"ls -la\n" +
		"cd /tmp\n" +
		"#not-a-timestamp\n" +
		"pwd\n"

	entries, err := NewHistoryParser().Parse(strings.NewReader(input), "bash", 0)
	if err != nil {
		t.Fatalf("failed to parse bash history: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !entries[0].Timestamp.Equal(time.Unix(1740000000, 0)) {
		t.Errorf("timestamp comment not attached: %v", entries[0].Timestamp)
	}
	if !entries[1].Timestamp.IsZero() {
		t.Errorf("timestamp leaked to a later entry: %v", entries[1].Timestamp)
	}
	if entries[2].Command != "pwd" {
		t.Errorf("third command = %q, want %q", entries[2].Command, "pwd")
	}
}

func TestParseMaxEntries(t *testing.T) {
	input := "one\ntwo\nthree\nfour\n"
	entries, err := NewHistoryParser().Parse(strings.NewReader(input), "plain", 2)
	if err != nil {
		t.Fatalf("failed to parse history: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with max 2, got %d", len(entries))
	}
}
