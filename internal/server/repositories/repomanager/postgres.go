// Package repomanager provides the concrete RepositoryManagers for PostgreSQL
// and SQLite, wiring repository constructors and goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/promisekeeper/internal/dbx"
	"github.com/dmitrijs2005/promisekeeper/internal/server/migrations"
	"github.com/dmitrijs2005/promisekeeper/internal/server/repositories/promises"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Promises returns a promises.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Promises(db dbx.DBTX) promises.Repository {
	return promises.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "pgx", migrations.PostgresDir)
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, dir)
}
