package service

import "channel-matcher/internal/matching/model"

// DefaultThreshold is the acceptance threshold for fuzzy matches.
const DefaultThreshold = 0.5

// Scorer ranks catalog entries against a query title by bigram overlap of
// the normalized strings.
type Scorer struct {
	threshold float64
}

// NewScorer returns a scorer with the given acceptance threshold;
// non-positive values fall back to DefaultThreshold.
func NewScorer(threshold float64) *Scorer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Scorer{threshold: threshold}
}

func (s *Scorer) Threshold() float64 { return s.threshold }

// bigramCounts builds the character-bigram multiset of an
// already-normalized string.
func bigramCounts(s string) map[string]int {
	r := []rune(s)
	m := make(map[string]int, len(r))
	for i := 0; i+1 < len(r); i++ {
		m[string(r[i:i+2])]++
	}
	return m
}

// Similarity is the Dice coefficient over character bigrams of two
// normalized strings, in [0,1]. Equal strings rate 1 even when too short
// to form a bigram.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	ba := bigramCounts(a)
	bb := bigramCounts(b)
	na, nb := 0, 0
	for _, c := range ba {
		na += c
	}
	for _, c := range bb {
		nb += c
	}
	if na+nb == 0 {
		return 0
	}
	shared := 0
	for g, ca := range ba {
		if cb, ok := bb[g]; ok {
			shared += min(ca, cb)
		}
	}
	return 2 * float64(shared) / float64(na+nb)
}

// BestMatch returns the highest-rated candidate regardless of threshold,
// ties broken by input order. Nil when candidates is empty.
func (s *Scorer) BestMatch(query string, candidates []model.CatalogEntry) *model.Match {
	if len(candidates) == 0 {
		return nil
	}
	qn := Normalize(query)
	best := model.Match{Rating: -1}
	for _, c := range candidates {
		if r := Similarity(qn, Normalize(c.Name)); r > best.Rating {
			best = model.Match{Entry: c, Rating: r}
		}
	}
	return &best
}

// FindBestMatch is BestMatch with the acceptance threshold applied: nil
// when no candidate rates at or above it.
func (s *Scorer) FindBestMatch(query string, candidates []model.CatalogEntry) *model.Match {
	m := s.BestMatch(query, candidates)
	if m == nil || m.Rating < s.threshold {
		return nil
	}
	return m
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
