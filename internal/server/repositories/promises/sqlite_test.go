package promises

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/server/migrations"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.SQLiteDir))
	return db
}

func newPromise(name string, createdAt, deadlineAt int64, status models.Status) *models.Promise {
	return &models.Promise{
		Name:        name,
		PromiseType: models.PromiseTypeSelf,
		Content:     "I promise I will " + name,
		CreatedAt:   createdAt,
		DeadlineAt:  deadlineAt,
		Status:      status,
	}
}

func TestSQLite_InsertGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupSQLite(t))

	who := "Alex"
	p := newPromise("gym", 100, 200, models.StatusActive)
	p.PromiseType = models.PromiseTypeOthers
	p.Participants = &who
	p.Fingerprint = "fp0"

	id, err := repo.Insert(ctx, p)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "gym", got.Name)
	assert.Equal(t, models.PromiseTypeOthers, got.PromiseType)
	assert.Equal(t, int64(100), got.CreatedAt)
	assert.Equal(t, int64(200), got.DeadlineAt)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, "fp0", got.Fingerprint)
	require.NotNil(t, got.Participants)
	assert.Equal(t, "Alex", *got.Participants)

	second, err := repo.Insert(ctx, newPromise("read", 100, 300, models.StatusActive))
	require.NoError(t, err)
	assert.Greater(t, second, id)

	got, err = repo.Get(ctx, second)
	require.NoError(t, err)
	assert.Nil(t, got.Participants)
}

func TestSQLite_GetMissing(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))
	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_RejectsDeadlineNotAfterCreation(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))
	_, err := repo.Insert(context.Background(), newPromise("bad", 100, 100, models.StatusActive))
	assert.Error(t, err)
}

func TestSQLite_ListByStatusOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupSQLite(t))

	late, err := repo.Insert(ctx, newPromise("late", 0, 300, models.StatusActive))
	require.NoError(t, err)
	early, err := repo.Insert(ctx, newPromise("early", 0, 100, models.StatusActive))
	require.NoError(t, err)
	tie, err := repo.Insert(ctx, newPromise("tie", 0, 300, models.StatusActive))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newPromise("done", 0, 50, models.StatusCompleted))
	require.NoError(t, err)

	list, err := repo.ListByStatus(ctx, models.StatusActive)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{early, late, tie}, []int64{list[0].ID, list[1].ID, list[2].ID})

	missed, err := repo.ListByStatus(ctx, models.StatusMissed)
	require.NoError(t, err)
	assert.Empty(t, missed)
}

func TestSQLite_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupSQLite(t))

	id, err := repo.Insert(ctx, newPromise("walk", 10, 20, models.StatusActive))
	require.NoError(t, err)

	p, err := repo.Get(ctx, id)
	require.NoError(t, err)
	p.Status = models.StatusMissed
	p.Fingerprint = "fp1"
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMissed, got.Status)
	assert.Equal(t, "fp1", got.Fingerprint)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, id), common.ErrorNotFound)
	assert.ErrorIs(t, repo.Update(ctx, p), common.ErrorNotFound)
}

func TestSQLite_CountByStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupSQLite(t))

	for _, s := range []models.Status{models.StatusActive, models.StatusCompleted, models.StatusCompleted, models.StatusMissed} {
		_, err := repo.Insert(ctx, newPromise("x", 0, 10, s))
		require.NoError(t, err)
	}

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.StatusActive])
	assert.Equal(t, int64(2), counts[models.StatusCompleted])
	assert.Equal(t, int64(1), counts[models.StatusMissed])
}
