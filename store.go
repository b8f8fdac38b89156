package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"recall/patterns"
)

// CommandStore persists recorded commands in a SQLite database.
type CommandStore struct {
	db   *sql.DB
	path string
}

const commandSchema = `
CREATE TABLE IF NOT EXISTS commands (
	id          TEXT PRIMARY KEY,
	raw         TEXT NOT NULL,
	base        TEXT NOT NULL,
	args        TEXT NOT NULL,
	dir         TEXT NOT NULL,
	exit_code   INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	timestamp   INTEGER NOT NULL,
	session_id  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_commands_timestamp ON commands(timestamp);
CREATE INDEX IF NOT EXISTS idx_commands_dir ON commands(dir);
CREATE INDEX IF NOT EXISTS idx_commands_base ON commands(base);
`

const commandColumns = "id, raw, base, args, dir, exit_code, duration_ms, timestamp, session_id"

// OpenCommandStore opens (and if necessary creates) the database at path.
func OpenCommandStore(path string) (*CommandStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(commandSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &CommandStore{db: db, path: path}, nil
}

// Close closes the underlying database handle.
func (s *CommandStore) Close() error {
	return s.db.Close()
}

// Save inserts one recorded command.
func (s *CommandStore) Save(cmd patterns.Command) error {
	args, err := json.Marshal(cmd.Args)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO commands (`+commandColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cmd.ID, cmd.Raw, cmd.Base, string(args), cmd.Dir,
		cmd.ExitCode, cmd.DurationMS, cmd.Timestamp.UnixNano(), cmd.SessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert command: %w", err)
	}
	return nil
}

// Recent returns the last limit commands in ascending chronological order,
// the convention every detector expects.
func (s *CommandStore) Recent(limit int) ([]patterns.Command, error) {
	rows, err := s.db.Query(
		`SELECT `+commandColumns+` FROM commands ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent commands: %w", err)
	}
	defer rows.Close()

	commands, err := scanCommands(rows)
	if err != nil {
		return nil, err
	}

	// Flip newest-first into oldest-first.
	for i, j := 0, len(commands)-1; i < j; i, j = i+1, j-1 {
		commands[i], commands[j] = commands[j], commands[i]
	}
	return commands, nil
}

// Search returns commands whose raw text contains query, optionally
// restricted to a directory and a start time, newest first.
func (s *CommandStore) Search(query, dir string, since time.Time, limit int) ([]patterns.Command, error) {
	sqlQuery := `SELECT ` + commandColumns + ` FROM commands WHERE raw LIKE ?`
	args := []interface{}{"%" + query + "%"}

	if dir != "" {
		sqlQuery += ` AND dir = ?`
		args = append(args, dir)
	}
	if !since.IsZero() {
		sqlQuery += ` AND timestamp >= ?`
		args = append(args, since.UnixNano())
	}
	sqlQuery += ` ORDER BY timestamp DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search commands: %w", err)
	}
	defer rows.Close()

	return scanCommands(rows)
}

// CountAll returns the total number of stored commands.
func (s *CommandStore) CountAll() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM commands`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count commands: %w", err)
	}
	return count, nil
}

// DeleteBefore removes every command older than cutoff and reports how many
// were deleted.
func (s *CommandStore) DeleteBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM commands WHERE timestamp < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old commands: %w", err)
	}
	return res.RowsAffected()
}

// DeleteOldest removes the n oldest commands.
func (s *CommandStore) DeleteOldest(n int) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM commands WHERE id IN (
			SELECT id FROM commands ORDER BY timestamp ASC LIMIT ?)`, n)
	if err != nil {
		return 0, fmt.Errorf("failed to delete oldest commands: %w", err)
	}
	return res.RowsAffected()
}

// SizeBytes returns the database file size.
func (s *CommandStore) SizeBytes() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat database: %w", err)
	}
	return info.Size(), nil
}

// Vacuum reclaims space after deletions.
func (s *CommandStore) Vacuum() error {
	if _, err := s.db.Exec(`VACUUM`); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}

func scanCommands(rows *sql.Rows) ([]patterns.Command, error) {
	var commands []patterns.Command
	for rows.Next() {
		var cmd patterns.Command
		var args string
		var nanos int64

		err := rows.Scan(&cmd.ID, &cmd.Raw, &cmd.Base, &args, &cmd.Dir,
			&cmd.ExitCode, &cmd.DurationMS, &nanos, &cmd.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan command row: %w", err)
		}

		if err := json.Unmarshal([]byte(args), &cmd.Args); err != nil {
			return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
		}
		cmd.Timestamp = time.Unix(0, nanos).UTC()

		commands = append(commands, cmd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read command rows: %w", err)
	}
	return commands, nil
}
