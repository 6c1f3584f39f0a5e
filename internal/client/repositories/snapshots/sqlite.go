package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/dbx"
	"github.com/dmitrijs2005/promisekeeper/internal/filex"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
  key      TEXT PRIMARY KEY,
  value    BLOB NOT NULL,
  saved_at INTEGER NOT NULL
);`

// DBFileName is the database file created inside the local directory.
const DBFileName = "snapshots.db"

// Open creates dir if needed and opens the snapshot database inside it.
func Open(ctx context.Context, dir string) (*sql.DB, error) {
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("open snapshots db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func InitSchema(ctx context.Context, db dbx.DBTX) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Snapshot, error) {
	s := &Snapshot{Key: key}
	var savedAt int64
	err := r.db.QueryRowContext(ctx, `SELECT value, saved_at FROM snapshots WHERE key = ?`, key).Scan(&s.Value, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot[%s]: %w", key, err)
	}
	s.SavedAt = time.Unix(savedAt, 0)
	return s, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, key string, value []byte, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, saved_at = excluded.saved_at
	`, key, value, at.Unix())
	if err != nil {
		return fmt.Errorf("failed to save snapshot[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot[%s]: %w", key, err)
	}
	return nil
}
