// Package store persists learned channel-title mappings and reads the
// canonical product catalog. Table and column names come from the channel
// registry, never from request input.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"channel-matcher/internal/apperrors"
	"channel-matcher/internal/channel"
)

// MappingStore is the per-channel raw-title -> product-id store. The
// uniqueness invariant (one product per title) is enforced by the unique
// index on the title column; upserts ride on ON CONFLICT, so concurrent
// writes to one title serialize to last-write-wins without app locks.
type MappingStore struct {
	db *DB
}

func NewMappingStore(db *DB) *MappingStore {
	return &MappingStore{db: db}
}

// Upsert inserts or replaces the mapping for title, refreshing updated_at.
func (s *MappingStore) Upsert(ctx context.Context, ch channel.Channel, title, productID string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(productID) == "" {
		return fmt.Errorf("%w: productId is required", apperrors.ErrValidation)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, product_id, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s) DO UPDATE
		SET product_id = EXCLUDED.product_id,
		    updated_at = NOW()`,
		ch.Table, ch.TitleColumn, ch.TitleColumn)

	if _, err := s.db.ExecContext(ctx, query, title, productID); err != nil {
		return fmt.Errorf("%w: upsert %s mapping: %v", apperrors.ErrStore, ch.Key, err)
	}
	return nil
}

// Lookup returns the learned product id for an exact title. No
// normalization here: this is the fast path for previously confirmed
// titles. A miss is apperrors.ErrNotFound.
func (s *MappingStore) Lookup(ctx context.Context, ch channel.Channel, title string) (string, error) {
	query := fmt.Sprintf(`SELECT product_id FROM %s WHERE %s = $1`, ch.Table, ch.TitleColumn)

	var productID string
	err := s.db.GetContext(ctx, &productID, query, title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: no %s mapping for title", apperrors.ErrNotFound, ch.Key)
	}
	if err != nil {
		return "", fmt.Errorf("%w: lookup %s mapping: %v", apperrors.ErrStore, ch.Key, err)
	}
	return productID, nil
}

// ResetAll deletes every mapping for the channel in one atomic statement
// and returns the number removed.
func (s *MappingStore) ResetAll(ctx context.Context, ch channel.Channel) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s`, ch.Table)

	res, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%w: reset %s mappings: %v", apperrors.ErrStore, ch.Key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: reset %s mappings: %v", apperrors.ErrStore, ch.Key, err)
	}
	return n, nil
}
