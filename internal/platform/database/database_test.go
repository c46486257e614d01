package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := `UPDATE candidates SET vote_count = ? WHERE id = ? AND election_id = ?`
	assert.Equal(t, `UPDATE candidates SET vote_count = $1 WHERE id = $2 AND election_id = $3`, DialectPostgres.Rebind(q))
	assert.Equal(t, q, DialectSQLite.Rebind(q))
}

func TestDialectFor(t *testing.T) {
	for driver, want := range map[string]Dialect{
		"postgres": DialectPostgres,
		"pgx":      DialectPostgres,
		"sqlite":   DialectSQLite,
	} {
		got, err := DialectFor(driver)
		require.NoError(t, err)
		assert.Equal(t, want, got, driver)
	}

	_, err := DialectFor("mysql")
	assert.Error(t, err)
}

func TestMillisRoundTrip(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 30, 0, 123_000_000, time.UTC)
	assert.Equal(t, now, FromMillis(ToMillis(now)))
	assert.True(t, FromMillis(0).IsZero())
	assert.Equal(t, int64(0), ToMillis(time.Time{}))
}

func TestMigrate_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "votecast.db"), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx), "second run must skip applied files")

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 1, count)

	_, err = db.ExecContext(ctx, `SELECT id, has_voted FROM election_voters LIMIT 1`)
	assert.NoError(t, err)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("-- header\nCREATE TABLE a (x INTEGER);\n\n-- note\nCREATE INDEX i ON a (x);\n")
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE a")
	assert.Contains(t, stmts[1], "CREATE INDEX i")
}
