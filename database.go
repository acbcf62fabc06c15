// FILE: lixenwraith/conlog/database.go
package conlog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const createLogsTable = `CREATE TABLE IF NOT EXISTS logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL,
	indent INTEGER NOT NULL DEFAULT 0,
	"group" TEXT,
	message TEXT NOT NULL,
	stack TEXT,
	createdAt TEXT NOT NULL
)`

const insertLogsPrefix = `INSERT INTO logs (type, indent, "group", message, stack, createdAt) VALUES `

const selectLogs = `SELECT type, indent, "group", message, stack, createdAt FROM logs ORDER BY id`

// databaseDestination inserts batches into the embedded store, opening a
// connection for each flush and closing it afterwards
type databaseDestination struct {
	path     string
	tables   *tables
	pipeline *pipeline
}

func newDatabaseDestination(path string, cfg *Config, report func(error)) *databaseDestination {
	d := &databaseDestination{
		path:   path,
		tables: newTables(),
	}
	d.pipeline = newPipeline(cfg.flushInterval(), d.write, report)
	return d
}

func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmtErrorf("failed to create database directory '%s': %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmtErrorf("failed to open database '%s': %w", path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmtErrorf("failed to configure database '%s': %w", path, err)
	}
	return db, nil
}

// write ensures the table and inserts the batch in one transaction
func (d *databaseDestination) write(ctx context.Context, entries []Entry) (err error) {
	db, err := openDatabase(ctx, d.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			err = combineErrors(err, fmtErrorf("failed to close database '%s': %w", d.path, cerr))
		}
	}()

	if _, err := db.ExecContext(ctx, createLogsTable); err != nil {
		return fmtErrorf("failed to create logs table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmtErrorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rerr := tx.Rollback(); rerr != nil {
				err = combineErrors(err, fmtErrorf("failed to roll back insert: %w", rerr))
			}
		}
	}()

	for start := 0; start < len(entries); start += insertChunkRows {
		end := min(start+insertChunkRows, len(entries))
		query, args := buildInsert(entries[start:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmtErrorf("failed to insert %d log rows: %w", end-start, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmtErrorf("failed to commit log rows: %w", err)
	}
	committed = true
	return nil
}

// buildInsert renders one multi-row INSERT with bound values
func buildInsert(chunk []Entry) (string, []any) {
	var sb strings.Builder
	sb.Grow(len(insertLogsPrefix) + len(chunk)*20)
	sb.WriteString(insertLogsPrefix)

	args := make([]any, 0, len(chunk)*6)
	for i, e := range chunk {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?)")
		args = append(args,
			e.Level.String(),
			e.Indent,
			nullString(e.Group),
			e.Message,
			nullString(e.Stack),
			e.Timestamp(),
		)
	}
	return sb.String(), args
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ReadDatabaseEntries loads every stored entry in insertion order
func ReadDatabaseEntries(ctx context.Context, path string) ([]Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmtErrorf("database '%s' not found: %w", path, err)
	}
	db, err := openDatabase(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, selectLogs)
	if err != nil {
		return nil, fmtErrorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			levelName, message, createdAt string
			indent                        int
			group, stack                  sql.NullString
		)
		if err := rows.Scan(&levelName, &indent, &group, &message, &stack, &createdAt); err != nil {
			return entries, fmtErrorf("failed to scan log row: %w", err)
		}
		level, err := ParseLevel(levelName)
		if err != nil {
			return entries, err
		}
		ts, err := time.Parse(timestampLayout, createdAt)
		if err != nil {
			return entries, fmtErrorf("invalid timestamp '%s': %w", createdAt, err)
		}
		entries = append(entries, Entry{
			Level:     level,
			Indent:    indent,
			Group:     group.String,
			Message:   message,
			Stack:     stack.String,
			CreatedAt: ts,
		})
	}
	if err := rows.Err(); err != nil {
		return entries, fmtErrorf("failed to read log rows: %w", err)
	}
	return entries, nil
}

// DatabaseSink batches entries into the embedded store
type DatabaseSink struct {
	recorder
	dest *databaseDestination
}

func newDatabaseSink(dest *databaseDestination, clock Clock) *DatabaseSink {
	s := &DatabaseSink{dest: dest}
	s.recorder = recorder{
		tables:  dest.tables,
		clock:   clock,
		stacks:  true,
		deliver: dest.pipeline.append,
		discard: dest.pipeline.discard,
	}
	return s
}

func (s *DatabaseSink) Mode() Mode {
	return ModeDatabase
}

// Path is the database file location
func (s *DatabaseSink) Path() string {
	return s.dest.path
}

func (s *DatabaseSink) Flush(ctx context.Context) error {
	return s.dest.pipeline.flush(ctx)
}

func (s *DatabaseSink) Stats() (Stats, bool) {
	return s.dest.pipeline.snapshot(s.Mode()), true
}
