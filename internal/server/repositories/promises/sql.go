// Package promises provides the SQL-backed promise store shared by the
// PostgreSQL and SQLite backends.
package promises

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/dbx"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/jmoiron/sqlx"
)

const promiseColumns = `id, name, promise_type, content, created_at, deadline_at, status, fingerprint, participants`

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
// Queries are written with '?' placeholders and rebound for the target
// driver.
type SQLRepository struct {
	db       dbx.DBTX
	bindType int
}

// NewSQLRepository constructs a repository bound to db using the sqlx bind
// type of the driver (sqlx.DOLLAR, sqlx.QUESTION, ...).
func NewSQLRepository(db dbx.DBTX, bindType int) *SQLRepository {
	return &SQLRepository{db: db, bindType: bindType}
}

// NewPostgresRepository binds to a pgx connection ($1, $2, ...).
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return NewSQLRepository(db, sqlx.DOLLAR)
}

// NewSQLiteRepository binds to a SQLite connection.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return NewSQLRepository(db, sqlx.QUESTION)
}

func (r *SQLRepository) q(query string) string {
	return sqlx.Rebind(r.bindType, query)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPromise(s rowScanner) (*models.Promise, error) {
	var (
		p            models.Promise
		promiseType  string
		status       string
		participants sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Name, &promiseType, &p.Content, &p.CreatedAt, &p.DeadlineAt,
		&status, &p.Fingerprint, &participants); err != nil {
		return nil, err
	}
	p.PromiseType = models.PromiseType(promiseType)
	p.Status = models.Status(status)
	if participants.Valid {
		v := participants.String
		p.Participants = &v
	}
	return &p, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *SQLRepository) Insert(ctx context.Context, p *models.Promise) (int64, error) {
	query := r.q(`
		INSERT INTO promises (name, promise_type, content, created_at, deadline_at, status, fingerprint, participants)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.Name, string(p.PromiseType), p.Content, p.CreatedAt, p.DeadlineAt,
		string(p.Status), p.Fingerprint, nullable(p.Participants),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Promise, error) {
	query := r.q(`SELECT ` + promiseColumns + ` FROM promises WHERE id = ?`)

	p, err := scanPromise(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *SQLRepository) ListByStatus(ctx context.Context, status models.Status) ([]models.Promise, error) {
	query := r.q(`SELECT ` + promiseColumns + ` FROM promises WHERE status = ? ORDER BY deadline_at ASC, id ASC`)

	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to select promises: %w", err)
	}
	defer rows.Close()

	var result []models.Promise
	for rows.Next() {
		p, err := scanPromise(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Update(ctx context.Context, p *models.Promise) error {
	query := r.q(`
		UPDATE promises
		SET name = ?, promise_type = ?, content = ?, deadline_at = ?, status = ?, fingerprint = ?, participants = ?
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		p.Name, string(p.PromiseType), p.Content, p.DeadlineAt, string(p.Status),
		p.Fingerprint, nullable(p.Participants), p.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.q(`DELETE FROM promises WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) CountByStatus(ctx context.Context) (map[models.Status]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM promises GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Status]int64, 3)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[models.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
