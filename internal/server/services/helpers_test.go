package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/cryptox"
	"github.com/dmitrijs2005/promisekeeper/internal/dbx"
	"github.com/dmitrijs2005/promisekeeper/internal/logging"
	"github.com/dmitrijs2005/promisekeeper/internal/server/archive"
	"github.com/dmitrijs2005/promisekeeper/internal/server/collaborator"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/server/repositories/promises"
	"github.com/dmitrijs2005/promisekeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

const t0 = int64(1_700_000_000)

type clock struct {
	mu  sync.Mutex
	now int64
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Unix(c.now, 0)
}

func (c *clock) Advance(sec int64) {
	c.mu.Lock()
	c.now += sec
	c.mu.Unlock()
}

func setupDB(t *testing.T) (*sql.DB, *repomanager.SQLiteRepositoryManager) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := sql.Open("sqlite", "file:svc_"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db, m
}

// scriptedGenerator returns the reply registered for the first matching
// prompt marker, or err.
type scriptedGenerator struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
	calls   int
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	for marker, reply := range g.replies {
		if strings.Contains(prompt, marker) {
			return reply, nil
		}
	}
	return "", errors.New("no scripted reply")
}

type memArchive struct {
	mu      sync.Mutex
	records []archive.Record
	err     error
}

func (a *memArchive) Archive(_ context.Context, rec archive.Record) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.records = append(a.records, rec)
	return "k", nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (c *memCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = map[string]string{}
	}
	c.data[key] = value
}

// failingManager wraps a real manager and injects a Delete failure.
type failingManager struct {
	repomanager.RepositoryManager
	deleteErr error
}

func (m *failingManager) Promises(db dbx.DBTX) promises.Repository {
	return &failingRepo{Repository: m.RepositoryManager.Promises(db), deleteErr: m.deleteErr}
}

type failingRepo struct {
	promises.Repository
	deleteErr error
}

func (r *failingRepo) Delete(ctx context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.Repository.Delete(ctx, id)
}

type fixture struct {
	db       *sql.DB
	clock    *clock
	gen      *scriptedGenerator
	archive  *memArchive
	cache    *memCache
	promises *PromiseService
	reframe  *ReframeService
}

func newFixture(t *testing.T, extra ...Option) *fixture {
	t.Helper()
	db, m := setupDB(t)
	return newFixtureWith(t, db, m, extra...)
}

func newFixtureWith(t *testing.T, db *sql.DB, m repomanager.RepositoryManager, extra ...Option) *fixture {
	t.Helper()
	f := &fixture{
		db:      db,
		clock:   &clock{now: t0},
		gen:     &scriptedGenerator{replies: map[string]string{}},
		archive: &memArchive{},
		cache:   &memCache{},
	}
	formatter := collaborator.NewFormatter(f.gen, logging.Nop())
	opts := append([]Option{
		WithClock(f.clock.Now),
		WithArchiver(f.archive),
		WithSolutionCache(f.cache),
	}, extra...)
	f.promises = NewPromiseService(db, m, formatter, opts...)
	f.reframe = NewReframeService(f.promises, formatter, opts...)
	return f
}

func (f *fixture) create(t *testing.T, name, deadline string) *models.Promise {
	t.Helper()
	p, err := f.promises.Create(context.Background(), CreateInput{
		Name: name, PromiseType: "self", Content: "I promise I will " + name, Deadline: deadline,
	})
	require.NoError(t, err)
	return p
}

func sha256Fingerprint(t *testing.T, id, createdAt int64, name, promiseType, content string) string {
	t.Helper()
	h, err := cryptox.NewHasher(cryptox.SHA256)
	require.NoError(t, err)
	return h.Fingerprint(id, createdAt, name, promiseType, content)
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM promises`).Scan(&n))
	return n
}
