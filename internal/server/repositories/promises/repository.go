package promises

import (
	"context"

	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
)

// Repository is the promise store boundary. Implementations are bound to a
// single dbx.DBTX, so a repository built from a *sql.Tx takes part in that
// transaction.
type Repository interface {
	// Insert stores p and returns the id assigned by the database.
	Insert(ctx context.Context, p *models.Promise) (int64, error)
	// Get returns common.ErrorNotFound when id does not exist.
	Get(ctx context.Context, id int64) (*models.Promise, error)
	// ListByStatus returns promises ordered by deadline_at, then id.
	ListByStatus(ctx context.Context, status models.Status) ([]models.Promise, error)
	// Update overwrites every mutable column of the row with p.ID.
	Update(ctx context.Context, p *models.Promise) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[models.Status]int64, error)
}
