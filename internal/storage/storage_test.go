package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/progressboard/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_SQLiteCreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "board.db")

	db, err := Open(ctx, dbx.SQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, tableExists(t, db, "kv"))
	assert.True(t, tableExists(t, db, "goose_db_version"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "board.db")

	db, err := Open(ctx, dbx.SQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db, dbx.SQLite))

	_, err = db.ExecContext(ctx, `INSERT INTO kv(key, value) VALUES ('k', x'01')`)
	require.NoError(t, err)
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    dbx.Dialect
		wantErr bool
	}{
		{"", dbx.SQLite, false},
		{"sqlite3", dbx.SQLite, false},
		{"postgres", dbx.Postgres, false},
		{"pgx", dbx.Postgres, false},
		{"mysql", "", true},
	}
	for _, tc := range tests {
		got, err := ParseDialect(tc.in)
		if tc.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}
