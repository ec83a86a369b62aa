package model

// CatalogEntry is one row of the canonical product table. Read-only here;
// the product-management side owns its lifecycle.
type CatalogEntry struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Row is one record of an import batch: the raw channel title plus the
// quantity sold under it.
type Row struct {
	Title    string  `json:"title"`
	Quantity float64 `json:"quantity"`
}

// Match is the scorer's pick: a catalog entry and its similarity rating.
type Match struct {
	Entry  CatalogEntry `json:"entry"`
	Rating float64      `json:"rating"`
}

// Resolution methods reported per row.
const (
	MethodMapping = "mapping" // learned mapping hit, exact title
	MethodFuzzy   = "fuzzy"   // similarity fallback above threshold
)

// MatchResult is the outcome of resolving a single raw title. An unresolved
// title is a normal result, not an error; Score then holds the best
// below-threshold rating (0 when the catalog was empty).
type MatchResult struct {
	Query    string        `json:"query"`
	Matched  *CatalogEntry `json:"matchedEntry,omitempty"`
	Score    float64       `json:"score"`
	Resolved bool          `json:"resolved"`
	Method   string        `json:"method,omitempty"`
	// ProductID is set even when the learned product is absent from the
	// catalog snapshot passed in (the mapping still wins).
	ProductID string `json:"productId,omitempty"`
}

// RowResult pairs a batch row with its resolution.
type RowResult struct {
	Title    string  `json:"title"`
	Quantity float64 `json:"quantity"`
	MatchResult
}

// DuplicateGroup flags distinct titles in one batch that resolved to the
// same product, for operator review.
type DuplicateGroup struct {
	ProductID     string   `json:"productId"`
	Titles        []string `json:"titles"`
	Count         int      `json:"count"`
	TotalQuantity float64  `json:"totalQuantity"`
}

// BatchResult is the full reconcile report for one import batch.
type BatchResult struct {
	Results         []RowResult      `json:"results"`
	Duplicates      []DuplicateGroup `json:"duplicates"`
	Unresolved      []RowResult      `json:"unresolved"`
	ResolvedCount   int              `json:"resolvedCount"`
	UnresolvedCount int              `json:"unresolvedCount"`
}
