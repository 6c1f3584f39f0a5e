package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/promisekeeper/internal/dbx"
	"github.com/dmitrijs2005/promisekeeper/internal/server/repositories/promises"
)

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// RepositoryManager vends repositories bound to a DBTX and owns the schema
// migrations of its dialect.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Promises(db dbx.DBTX) promises.Repository
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// Open connects to the database of the given driver, verifies the connection
// and returns the matching RepositoryManager.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	var manager RepositoryManager
	switch driver {
	case DriverPostgres, "postgres":
		driver = DriverPostgres
		manager = NewPostgresRepositoryManager()
	case DriverSQLite, "sqlite3":
		driver = DriverSQLite
		manager = NewSQLiteRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// a single writer connection keeps transactions serialised
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, manager, nil
}
