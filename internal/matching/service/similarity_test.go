package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel-matcher/internal/matching/model"
)

func TestSimilarity(t *testing.T) {
	t.Run("equal strings rate 1", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("たれ", "たれ"))
		assert.Equal(t, 1.0, Similarity("", ""))
	})

	t.Run("one side empty rates 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("たれ", ""))
		assert.Equal(t, 0.0, Similarity("", "たれ"))
	})

	t.Run("single runes without shared bigrams rate 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("あ", "い"))
	})

	t.Run("pinned dice value", func(t *testing.T) {
		// チャーシュー bigrams: チャ ャー ーシ シュ ュー (5)
		// シュー bigrams: シュ ュー (2); shared 2 -> 2*2/(5+2)
		assert.InDelta(t, 4.0/7.0, Similarity("チャーシュー", "シュー"), 1e-12)
	})

	t.Run("disjoint strings rate 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("みそだれ", "ぽんず"))
	})
}

func TestFindBestMatch(t *testing.T) {
	s := NewScorer(0.5)

	t.Run("nil for empty candidates", func(t *testing.T) {
		assert.Nil(t, s.FindBestMatch("チャーシューたれ", nil))
		assert.Nil(t, s.FindBestMatch("チャーシューたれ", []model.CatalogEntry{}))
	})

	t.Run("rating 1 when normalization coincides", func(t *testing.T) {
		m := s.FindBestMatch("【P】チャーシューたれ（大）", []model.CatalogEntry{
			{ID: "p1", Name: "チャーシューたれ"},
		})
		require.NotNil(t, m)
		assert.Equal(t, "p1", m.Entry.ID)
		assert.Equal(t, 1.0, m.Rating)
	})

	t.Run("nil below threshold", func(t *testing.T) {
		m := s.FindBestMatch("ぽんず", []model.CatalogEntry{{ID: "p1", Name: "みそだれ"}})
		assert.Nil(t, m)
	})

	t.Run("best wins, ties to first", func(t *testing.T) {
		cands := []model.CatalogEntry{
			{ID: "a", Name: "チャーシューたれ"},
			{ID: "b", Name: "チャーシューたれ"}, // identical normalization, later
			{ID: "c", Name: "みそだれ"},
		}
		m := s.FindBestMatch("チャーシューたれ", cands)
		require.NotNil(t, m)
		assert.Equal(t, "a", m.Entry.ID)
	})

	t.Run("BestMatch keeps below-threshold rating", func(t *testing.T) {
		m := s.BestMatch("ぽんず", []model.CatalogEntry{{ID: "p1", Name: "みそだれ"}})
		require.NotNil(t, m)
		assert.Less(t, m.Rating, 0.5)
	})
}

func TestNewScorerDefaults(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewScorer(0).Threshold())
	assert.Equal(t, DefaultThreshold, NewScorer(-1).Threshold())
	assert.Equal(t, 0.83, NewScorer(0.83).Threshold())
}
