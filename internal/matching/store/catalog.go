package store

import (
	"context"
	"fmt"

	"channel-matcher/internal/apperrors"
	"channel-matcher/internal/matching/model"
)

// CatalogStore reads the canonical product table. This subsystem never
// writes it.
type CatalogStore struct {
	db *DB
}

func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// List returns all products (id, name) in insertion order.
func (s *CatalogStore) List(ctx context.Context) ([]model.CatalogEntry, error) {
	var entries []model.CatalogEntry
	err := s.db.SelectContext(ctx, &entries,
		`SELECT id, name FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", apperrors.ErrStore, err)
	}
	return entries, nil
}
