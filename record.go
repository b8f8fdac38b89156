package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"recall/patterns"
)

// newCommand builds a Command record from a raw command line. The base
// command is the lower-cased first token.
func newCommand(raw, dir string, exitCode int, durationMS int64, ts time.Time, sessionID string) patterns.Command {
	fields := strings.Fields(raw)
	base := ""
	var args []string
	if len(fields) > 0 {
		base = strings.ToLower(fields[0])
		args = fields[1:]
	}

	return patterns.Command{
		ID:         uuid.NewString(),
		Raw:        strings.TrimSpace(raw),
		Base:       base,
		Args:       args,
		Dir:        dir,
		ExitCode:   exitCode,
		DurationMS: durationMS,
		Timestamp:  ts,
		SessionID:  sessionID,
	}
}

// currentSessionID identifies the recording shell session. The hook exports
// RECALL_SESSION_ID once per shell; without it the parent pid is a usable
// stand-in.
func currentSessionID() string {
	if id := os.Getenv("RECALL_SESSION_ID"); id != "" {
		return id
	}
	return fmt.Sprintf("ppid-%d", os.Getppid())
}

// isSensitive reports whether a command line matches the privacy filter and
// must never be stored.
func isSensitive(raw string, filter []string) bool {
	lowered := strings.ToLower(raw)
	for _, needle := range filter {
		if needle == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

// recordCommand validates and stores one executed command.
func recordCommand(store *CommandStore, cfg Config, raw, dir string, exitCode int, durationMS int64) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if isSensitive(raw, cfg.PrivacyFilter) {
		return nil
	}

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = ""
		}
		dir = wd
	}

	cmd := newCommand(raw, dir, exitCode, durationMS, time.Now(), currentSessionID())
	if err := store.Save(cmd); err != nil {
		return fmt.Errorf("failed to record command: %w", err)
	}
	return nil
}
