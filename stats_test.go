package main

import (
	"testing"
	"time"

	"recall/patterns"
)

func TestComputeStats(t *testing.T) {
	ts := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	var commands []patterns.Command
	for i, entry := range []struct {
		raw  string
		exit int
	}{
		{"git status", 0},
		{"git push", 0},
		{"make build", 2},
		{"ls", 0},
	} {
		cmd := newCommand(entry.raw, "/home/user/project", entry.exit, 100, ts.Add(time.Duration(i)*time.Minute), "s1")
		commands = append(commands, cmd)
	}

	stats := computeStats(commands, 2)

	if stats.TotalCommands != 4 {
		t.Errorf("total = %d, want 4", stats.TotalCommands)
	}
	if stats.UniqueCommands != 3 {
		t.Errorf("unique = %d, want 3", stats.UniqueCommands)
	}
	if stats.SuccessRate != 0.75 {
		t.Errorf("success rate = %v, want 0.75", stats.SuccessRate)
	}
	if len(stats.TopCommands) != 2 {
		t.Fatalf("top commands = %d entries, want 2", len(stats.TopCommands))
	}
	if stats.TopCommands[0].Base != "git" || stats.TopCommands[0].Count != 2 {
		t.Errorf("top command = %+v, want git x2", stats.TopCommands[0])
	}
	if stats.HourCounts[9] != 4 {
		t.Errorf("hour 9 count = %d, want 4", stats.HourCounts[9])
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := computeStats(nil, 10)
	if stats.TotalCommands != 0 || stats.SuccessRate != 0 {
		t.Errorf("empty input produced %+v", stats)
	}
}
