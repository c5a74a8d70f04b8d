package share

import (
	"context"

	"github.com/google/uuid"

	"scishare/internal/models"
)

// Default and maximum result sizes for the share projections.
const (
	DefaultHistoryLimit    = 50
	DefaultMostSharedLimit = 10
	MaxQueryLimit          = 100
)

// QueryStore is the read side of the share history.
type QueryStore interface {
	GetSharesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.SharedAbstractWithTitle, error)
	GetMostShared(ctx context.Context, limit int) ([]models.ShareCount, error)
}

// Queries serves read-only projections over the share history.
type Queries struct {
	store QueryStore
}

// NewQueries creates a new share query service.
func NewQueries(store QueryStore) *Queries {
	return &Queries{store: store}
}

// MyShared returns the user's own share history, newest first. The store
// filters by sharer, so one user's query can never surface another user's
// recipients or messages.
func (q *Queries) MyShared(ctx context.Context, userID uuid.UUID, limit int) ([]models.SharedAbstractWithTitle, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}
	return q.store.GetSharesByUser(ctx, userID, limit)
}

// MostShared returns the community-wide ranking of abstracts by share
// attempts. Anonymous by construction: only abstract identity and a count
// leave the store.
func (q *Queries) MostShared(ctx context.Context, limit int) ([]models.ShareCount, error) {
	if limit <= 0 {
		limit = DefaultMostSharedLimit
	}
	if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}
	return q.store.GetMostShared(ctx, limit)
}
