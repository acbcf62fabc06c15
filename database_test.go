// FILE: lixenwraith/conlog/database_test.go
package conlog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseSinkRoundTrip(t *testing.T) {
	logger, env := createTestLogger(t, "database")

	logger.Info("hello %s", "db")
	logger.Group("g")
	logger.Warn("inside")
	logger.Error("failure")
	logger.GroupEnd()
	flush(t, logger)

	entries, err := ReadDatabaseEntries(context.Background(), filepath.Join(env.dir, "log.db"))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, LevelInfo, entries[0].Level)
	assert.Equal(t, "hello db", entries[0].Message)
	assert.Empty(t, entries[0].Group)
	assert.Equal(t, 0, entries[0].Indent)
	assert.True(t, testEpoch.Equal(entries[0].CreatedAt))

	assert.Equal(t, LevelWarn, entries[1].Level)
	assert.Equal(t, "g", entries[1].Group)
	assert.Equal(t, 1, entries[1].Indent)
	assert.Empty(t, entries[1].Stack)

	assert.Equal(t, LevelError, entries[2].Level)
	assert.Equal(t, "failure", entries[2].Message)
	assert.Contains(t, entries[2].Stack, "TestDatabaseSinkRoundTrip")
}

func TestDatabaseSinkStoresNulls(t *testing.T) {
	logger, env := createTestLogger(t, "database")

	logger.Log("no group")
	flush(t, logger)

	db, err := sql.Open("sqlite3", filepath.Join(env.dir, "log.db"))
	require.NoError(t, err)
	defer db.Close()

	var group, stack sql.NullString
	var createdAt string
	err = db.QueryRow(`SELECT "group", stack, createdAt FROM logs`).Scan(&group, &stack, &createdAt)
	require.NoError(t, err)
	assert.False(t, group.Valid)
	assert.False(t, stack.Valid)
	assert.Equal(t, testTimestamp, createdAt)
}

func TestDatabaseSinkBindsValues(t *testing.T) {
	logger, env := createTestLogger(t, "database")

	hostile := `it's "quoted"'); DROP TABLE logs; --`
	logger.Log(hostile)
	logger.Group(`g'roup`)
	logger.Log("second")
	flush(t, logger)

	entries, err := ReadDatabaseEntries(context.Background(), filepath.Join(env.dir, "log.db"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, hostile, entries[0].Message)
	assert.Equal(t, `g'roup`, entries[1].Group)
}

func TestDatabaseSinkChunkedInsert(t *testing.T) {
	logger, env := createTestLogger(t, "database")

	total := insertChunkRows*2 + 17
	for i := 0; i < total; i++ {
		logger.Log("row %d", i)
	}
	flush(t, logger)

	entries, err := ReadDatabaseEntries(context.Background(), filepath.Join(env.dir, "log.db"))
	require.NoError(t, err)
	require.Len(t, entries, total)
	assert.Equal(t, "row 0", entries[0].Message)
	assert.Equal(t, "row 1016", entries[total-1].Message)

	stats := logger.Stats()[0]
	assert.Equal(t, ModeDatabase, stats.Mode)
	assert.Equal(t, uint64(1), stats.Flushes)
	assert.Equal(t, uint64(total), stats.EntriesWritten)
}

func TestDatabaseSinkAcrossFlushes(t *testing.T) {
	logger, env := createTestLogger(t, "database")

	logger.Log("first")
	flush(t, logger)
	logger.Log("second")
	flush(t, logger)

	entries, err := ReadDatabaseEntries(context.Background(), filepath.Join(env.dir, "log.db"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, messages(entries))
}

func TestDatabaseSinkWriteFailureKeepsEntries(t *testing.T) {
	logger, env := createTestLogger(t, "database")
	path := filepath.Join(env.dir, "log.db")
	require.NoError(t, os.Mkdir(path, 0755))

	logger.Log("kept")
	require.Error(t, logger.Flush(context.Background()))
	assert.Equal(t, 1, logger.Stats()[0].Pending)
	assert.NotEmpty(t, env.errs.all())

	require.NoError(t, os.Remove(path))
	flush(t, logger)

	entries, err := ReadDatabaseEntries(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, messages(entries))
}

func TestBuildInsert(t *testing.T) {
	query, args := buildInsert([]Entry{
		{Level: LevelLog, Message: "a", CreatedAt: testEpoch},
		{Level: LevelError, Indent: 2, Group: "g", Message: "b", Stack: "b\n    at x", CreatedAt: testEpoch},
	})

	assert.True(t, strings.HasPrefix(query, insertLogsPrefix))
	assert.Equal(t, 2, strings.Count(query, "(?, ?, ?, ?, ?, ?)"))
	require.Len(t, args, 12)
	assert.Equal(t, "log", args[0])
	assert.Equal(t, sql.NullString{}, args[2])
	assert.Equal(t, "error", args[6])
	assert.Equal(t, 2, args[7])
	assert.Equal(t, sql.NullString{String: "g", Valid: true}, args[8])
	assert.Equal(t, testTimestamp, args[11])
}

func TestReadDatabaseEntriesMissing(t *testing.T) {
	_, err := ReadDatabaseEntries(context.Background(), filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)
}
