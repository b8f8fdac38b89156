package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *CommandStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "recall-store-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := OpenCommandStore(filepath.Join(tempDir, "recall.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCommandStore(t *testing.T) {
	store := openTestStore(t)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	raws := []string{"git status", "git add .", "make build", "make test"}
	for i, raw := range raws {
		cmd := newCommand(raw, "/home/user/project", 0, 100, start.Add(time.Duration(i)*time.Minute), "s1")
		if err := store.Save(cmd); err != nil {
			t.Fatalf("failed to save command: %v", err)
		}
	}

	t.Run("Count", func(t *testing.T) {
		count, err := store.CountAll()
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 4 {
			t.Errorf("count = %d, want 4", count)
		}
	})

	t.Run("RecentAscending", func(t *testing.T) {
		commands, err := store.Recent(3)
		if err != nil {
			t.Fatalf("failed to load recent: %v", err)
		}
		if len(commands) != 3 {
			t.Fatalf("expected 3 commands, got %d", len(commands))
		}
		if commands[0].Raw != "git add ." {
			t.Errorf("oldest of window = %q, want %q", commands[0].Raw, "git add .")
		}
		if commands[2].Raw != "make test" {
			t.Errorf("newest of window = %q, want %q", commands[2].Raw, "make test")
		}
		if !commands[0].Timestamp.Before(commands[1].Timestamp) {
			t.Error("recent commands not in ascending order")
		}
	})

	t.Run("Search", func(t *testing.T) {
		matches, err := store.Search("make", "", time.Time{}, 10)
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(matches) != 2 {
			t.Errorf("expected 2 matches for 'make', got %d", len(matches))
		}

		matches, err = store.Search("make", "", start.Add(3*time.Minute), 10)
		if err != nil {
			t.Fatalf("failed to search with since: %v", err)
		}
		if len(matches) != 1 {
			t.Errorf("expected 1 match after cutoff, got %d", len(matches))
		}
	})

	t.Run("RoundTripFields", func(t *testing.T) {
		commands, err := store.Recent(1)
		if err != nil {
			t.Fatalf("failed to load recent: %v", err)
		}
		cmd := commands[0]
		if cmd.Base != "make" {
			t.Errorf("base = %q, want %q", cmd.Base, "make")
		}
		if len(cmd.Args) != 1 || cmd.Args[0] != "test" {
			t.Errorf("args = %v, want [test]", cmd.Args)
		}
		if cmd.SessionID != "s1" {
			t.Errorf("session id = %q, want %q", cmd.SessionID, "s1")
		}
	})

	t.Run("DeleteBefore", func(t *testing.T) {
		deleted, err := store.DeleteBefore(start.Add(90 * time.Second))
		if err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if deleted != 2 {
			t.Errorf("deleted = %d, want 2", deleted)
		}
	})

	t.Run("SubsecondOrdering", func(t *testing.T) {
		store := openTestStore(t)
		sec := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

		// A whole-second entry and a fractional one inside the same second,
		// inserted newest first. Text timestamps would order these
		// lexicographically and get it wrong.
		late := newCommand("echo late", "/tmp", 0, 0, sec.Add(500*time.Millisecond), "s1")
		early := newCommand("echo early", "/tmp", 0, 0, sec, "s1")
		if err := store.Save(late); err != nil {
			t.Fatalf("failed to save command: %v", err)
		}
		if err := store.Save(early); err != nil {
			t.Fatalf("failed to save command: %v", err)
		}

		commands, err := store.Recent(10)
		if err != nil {
			t.Fatalf("failed to load recent: %v", err)
		}
		if len(commands) != 2 {
			t.Fatalf("expected 2 commands, got %d", len(commands))
		}
		if commands[0].Raw != "echo early" || commands[1].Raw != "echo late" {
			t.Errorf("sub-second timestamps out of order: %q before %q",
				commands[0].Raw, commands[1].Raw)
		}
	})

	t.Run("DeleteOldest", func(t *testing.T) {
		deleted, err := store.DeleteOldest(1)
		if err != nil {
			t.Fatalf("failed to delete oldest: %v", err)
		}
		if deleted != 1 {
			t.Errorf("deleted = %d, want 1", deleted)
		}

		commands, err := store.Recent(10)
		if err != nil {
			t.Fatalf("failed to load recent: %v", err)
		}
		if len(commands) != 1 || commands[0].Raw != "make test" {
			t.Errorf("wrong survivor after deletions: %+v", commands)
		}
	})
}
