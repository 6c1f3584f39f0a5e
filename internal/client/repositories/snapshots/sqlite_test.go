package snapshots

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(context.Background(), db))
	return db
}

func TestSaveAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Unix(1_700_000_000, 0)

	require.NoError(t, r.Save(ctx, "dashboard", []byte(`{"now":1}`), at))

	s, err := r.Get(ctx, "dashboard")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, []byte(`{"now":1}`), s.Value)
	assert.True(t, at.Equal(s.SavedAt))
}

func TestGet_Missing_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	s, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSave_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "k", []byte("old"), time.Unix(1, 0)))
	require.NoError(t, r.Save(ctx, "k", []byte("new"), time.Unix(2, 0)))

	s, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), s.Value)
	assert.Equal(t, int64(2), s.SavedAt.Unix())
}

func TestDelete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "x", []byte{1}, time.Now()))
	require.NoError(t, r.Delete(ctx, "x"))

	s, err := r.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestGet_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value, saved_at FROM snapshots").
		WithArgs("k").
		WillReturnError(assert.AnError)

	_, err = NewSQLiteRepository(db).Get(context.Background(), "k")
	require.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_CreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "local")

	db, err := Open(context.Background(), dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewSQLiteRepository(db)
	require.NoError(t, r.Save(context.Background(), "k", []byte("v"), time.Now()))

	_, err = os.Stat(filepath.Join(dir, DBFileName))
	require.NoError(t, err)
}
