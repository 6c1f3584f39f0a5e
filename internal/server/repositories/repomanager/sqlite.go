package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/promisekeeper/internal/dbx"
	"github.com/dmitrijs2005/promisekeeper/internal/server/migrations"
	"github.com/dmitrijs2005/promisekeeper/internal/server/repositories/promises"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager is the embedded backend used for local runs and
// tests.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Promises(db dbx.DBTX) promises.Repository {
	return promises.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "sqlite3", migrations.SQLiteDir)
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}
