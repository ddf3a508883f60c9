// Package store opens the local sqlite database and wires the repositories
// on top of it. The database caches the account's QR codes for offline
// listing and holds session metadata between runs.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/qrtrack/internal/client/migrations"
	"github.com/dmitrijs2005/qrtrack/internal/client/repositories/artifacts"
	"github.com/dmitrijs2005/qrtrack/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Repositories bundles the data access layers sharing one connection.
type Repositories struct {
	Metadata  metadata.Repository
	Artifacts artifacts.Repository
	DB        *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the database at dsn, applies
// pending migrations and returns the wired repositories. Close the
// returned DB when done.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		Metadata:  metadata.NewSQLiteRepository(db),
		Artifacts: artifacts.NewSQLiteRepository(db),
		DB:        db,
	}, nil
}
