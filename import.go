package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// HistoryEntry is one command parsed from an existing shell history file.
type HistoryEntry struct {
	Command   string
	Timestamp time.Time
	Duration  int64 // seconds, from zsh extended history
}

// HistoryParser parses bash, zsh, and plain shell history formats.
type HistoryParser struct {
	zshExtended *regexp.Regexp
}

// NewHistoryParser creates a parser instance.
func NewHistoryParser() *HistoryParser {
	// zsh extended history format: : <timestamp>:<duration>;<command>
	return &HistoryParser{
		zshExtended: regexp.MustCompile(`^:\s*(\d+):(\d+);(.*)$`),
	}
}

// ParseFile parses a history file. maxEntries of 0 means no limit.
func (p *HistoryParser) ParseFile(path, shell string, maxEntries int) ([]HistoryEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	return p.Parse(file, shell, maxEntries)
}

// Parse reads history entries from r in the given shell's format.
func (p *HistoryParser) Parse(r io.Reader, shell string, maxEntries int) ([]HistoryEntry, error) {
	switch shell {
	case "zsh":
		return p.parseZsh(r, maxEntries)
	default:
		return p.parsePlain(r, maxEntries)
	}
}

func (p *HistoryParser) parseZsh(r io.Reader, maxEntries int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	scanner := bufio.NewScanner(r)

	for scanner.Scan() && (maxEntries == 0 || len(entries) < maxEntries) {
		entry, ok := p.parseZshLine(scanner.Text())
		if ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read zsh history: %w", err)
	}
	return entries, nil
}

func (p *HistoryParser) parseZshLine(line string) (HistoryEntry, bool) {
	matches := p.zshExtended.FindStringSubmatch(line)
	if len(matches) == 4 {
		timestamp, err1 := strconv.ParseInt(matches[1], 10, 64)
		duration, err2 := strconv.ParseInt(matches[2], 10, 64)
		command := strings.TrimSpace(matches[3])

		if err1 == nil && err2 == nil && command != "" {
			return HistoryEntry{
				Command:   command,
				Timestamp: time.Unix(timestamp, 0),
				Duration:  duration,
			}, true
		}
	}

	// Not extended format; fall back to the line as a bare command.
	command := strings.TrimSpace(line)
	if command == "" || strings.HasPrefix(command, "#") {
		return HistoryEntry{}, false
	}
	return HistoryEntry{Command: command}, true
}

// parsePlain handles bash and plain newline-separated history files, skipping
// bash's "#<epoch>" timestamp comment lines (HISTTIMEFORMAT) by attaching
// them to the following command.
func (p *HistoryParser) parsePlain(r io.Reader, maxEntries int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	var pending time.Time
	scanner := bufio.NewScanner(r)

	for scanner.Scan() && (maxEntries == 0 || len(entries) < maxEntries) {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if epoch, err := strconv.ParseInt(strings.TrimPrefix(line, "#"), 10, 64); err == nil {
				pending = time.Unix(epoch, 0)
			}
			continue
		}

		entries = append(entries, HistoryEntry{Command: line, Timestamp: pending})
		pending = time.Time{}
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}

// importHistory bulk-loads parsed entries into the store, applying the
// privacy filter. Entries without a timestamp get the import time. Exit codes
// are unknown for imported commands and recorded as 0.
func importHistory(store *CommandStore, cfg Config, entries []HistoryEntry) (int, error) {
	imported := 0
	now := time.Now()
	sessionID := "import-" + now.Format("20060102-150405")

	for _, entry := range entries {
		if isSensitive(entry.Command, cfg.PrivacyFilter) {
			continue
		}

		ts := entry.Timestamp
		if ts.IsZero() {
			ts = now
		}

		cmd := newCommand(entry.Command, "", 0, entry.Duration*1000, ts, sessionID)
		if err := store.Save(cmd); err != nil {
			return imported, fmt.Errorf("failed to import command: %w", err)
		}
		imported++
	}
	return imported, nil
}
