package main

import (
	"testing"
	"time"
)

func TestNewCommand(t *testing.T) {
	ts := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	cmd := newCommand("Git commit -m 'fix'", "/home/user/project", 0, 150, ts, "s1")

	if cmd.ID == "" {
		t.Error("command id not assigned")
	}
	if cmd.Base != "git" {
		t.Errorf("base = %q, want lower-cased %q", cmd.Base, "git")
	}
	if len(cmd.Args) != 3 {
		t.Errorf("args = %v, want 3 tokens", cmd.Args)
	}
	if cmd.Args[0] != "commit" {
		t.Errorf("first arg = %q, want %q", cmd.Args[0], "commit")
	}
	if cmd.Raw != "Git commit -m 'fix'" {
		t.Errorf("raw text changed: %q", cmd.Raw)
	}
}

func TestNewCommandEmpty(t *testing.T) {
	cmd := newCommand("   ", "/tmp", 0, 0, time.Now(), "s1")
	if cmd.Base != "" || len(cmd.Args) != 0 {
		t.Errorf("empty input produced base %q args %v", cmd.Base, cmd.Args)
	}
}

func TestIsSensitive(t *testing.T) {
	filter := []string{"password", "TOKEN"}

	cases := map[string]bool{
		"export DB_PASSWORD=hunter2":  true,
		"curl -H 'X-Api-Token: abc'":  true,
		"git status":                  false,
		"echo hello":                  false,
	}
	for raw, want := range cases {
		if got := isSensitive(raw, filter); got != want {
			t.Errorf("isSensitive(%q) = %v, want %v", raw, got, want)
		}
	}

	if isSensitive("anything", []string{""}) {
		t.Error("empty filter entry must not match everything")
	}
}
