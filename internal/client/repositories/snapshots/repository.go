package snapshots

import (
	"context"
	"time"
)

type Snapshot struct {
	Key     string
	Value   []byte
	SavedAt time.Time
}

type Repository interface {
	// Get returns (nil, nil) when nothing is stored under key.
	Get(ctx context.Context, key string) (*Snapshot, error)
	Save(ctx context.Context, key string, value []byte, at time.Time) error
	Delete(ctx context.Context, key string) error
}
