// Package patterns mines a chronological log of shell commands for recurring
// behavioral patterns: repeated command sequences, time-of-day routines,
// directory-specific workflows, error-recovery cycles, and tool-specific
// usage bursts.
//
// The package performs no I/O and holds no state between calls. All detectors
// read the same immutable command slice, which must be supplied in ascending
// chronological order (oldest first). Results are recomputed from scratch on
// every call and never persisted.
package patterns

import "time"

// Command is one recorded shell invocation. It is read-only input to the
// detector; the caller owns the slice and the engine never mutates it.
type Command struct {
	ID         string    `json:"id"`
	Raw        string    `json:"raw"`
	Base       string    `json:"base"` // normalized base command, e.g. "git"
	Args       []string  `json:"args"`
	Dir        string    `json:"dir"`
	ExitCode   int       `json:"exit_code"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
}

// Succeeded reports whether the command exited with status 0.
func (c Command) Succeeded() bool {
	return c.ExitCode == 0
}
