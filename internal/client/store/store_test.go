package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabaseCreatesSchema(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer repos.DB.Close()

	require.NoError(t, repos.DB.PingContext(ctx))
	assert.True(t, tableExists(t, repos.DB, "goose_db_version"))
	assert.True(t, tableExists(t, repos.DB, "metadata"))
	assert.True(t, tableExists(t, repos.DB, "qr_codes"))
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
}

func TestRepositoriesShareOneDatabase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer repos.DB.Close()

	require.NoError(t, repos.Metadata.Set(ctx, "authToken", []byte("tok")))

	code := &models.QRCode{
		ID:          "id-1",
		ShortID:     "abc123",
		OriginalURL: "https://example.com",
		IsActive:    true,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repos.Artifacts.Upsert(ctx, code))

	got, err := repos.Artifacts.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ShortID)

	val, err := repos.Metadata.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), val)
}
