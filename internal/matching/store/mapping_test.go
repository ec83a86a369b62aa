package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel-matcher/internal/apperrors"
	"channel-matcher/internal/channel"
)

func newMockStore(t *testing.T) (*MappingStore, *CatalogStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db := &DB{DB: sqlx.NewDb(mockDB, "sqlmock")}
	return NewMappingStore(db), NewCatalogStore(db), mock
}

var rakuten, _ = channel.Parse("rakuten")

func TestUpsertValidation(t *testing.T) {
	s, _, mock := newMockStore(t)
	ctx := context.Background()

	err := s.Upsert(ctx, rakuten, "", "p1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = s.Upsert(ctx, rakuten, "たれ", "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// validation fails before any statement reaches the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertConflictTarget(t *testing.T) {
	s, _, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rakuten_product_mappings (rakuten_title, product_id, updated_at)")).
		WithArgs("チャーシューたれ", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Upsert(context.Background(), rakuten, "チャーシューたれ", "p1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertStoreError(t *testing.T) {
	s, _, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO rakuten_product_mappings").
		WithArgs("たれ", "p1").
		WillReturnError(assert.AnError)

	err := s.Upsert(context.Background(), rakuten, "たれ", "p1")
	assert.ErrorIs(t, err, apperrors.ErrStore)
	assert.Contains(t, err.Error(), assert.AnError.Error())
}

func TestLookupHit(t *testing.T) {
	s, _, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT product_id FROM rakuten_product_mappings WHERE rakuten_title = $1")).
		WithArgs("チャーシューたれ").
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow("p7"))

	id, err := s.Lookup(context.Background(), rakuten, "チャーシューたれ")
	require.NoError(t, err)
	assert.Equal(t, "p7", id)
}

func TestLookupMissIsNotFound(t *testing.T) {
	s, _, mock := newMockStore(t)

	mock.ExpectQuery("SELECT product_id FROM rakuten_product_mappings").
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}))

	_, err := s.Lookup(context.Background(), rakuten, "unknown")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResetAllReturnsCount(t *testing.T) {
	s, _, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rakuten_product_mappings")).
		WillReturnResult(sqlmock.NewResult(0, 42))

	n, err := s.ResetAll(context.Background(), rakuten)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestCatalogList(t *testing.T) {
	_, c, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM products")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("p1", "チャーシューたれ").
			AddRow("p2", "みそだれ"))

	entries, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p1", entries[0].ID)
	assert.Equal(t, "みそだれ", entries[1].Name)
}
