package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"channel-matcher/internal/apperrors"
	"channel-matcher/internal/channel"
	"channel-matcher/internal/matching/model"
)

// MappingLookup is the slice of the mapping store the resolver needs:
// the exact-title fast path. Misses are apperrors.ErrNotFound.
type MappingLookup interface {
	Lookup(ctx context.Context, ch channel.Channel, title string) (string, error)
}

// Resolver maps raw channel titles to catalog products: learned mapping
// first, similarity fallback second. It never writes the store — learning
// is an explicit operator action, not a side effect of resolution.
type Resolver struct {
	store   MappingLookup
	scorer  *Scorer
	workers int
}

func NewResolver(store MappingLookup, scorer *Scorer, workers int) *Resolver {
	if workers <= 0 {
		workers = 8
	}
	return &Resolver{store: store, scorer: scorer, workers: workers}
}

func validateCatalog(catalog []model.CatalogEntry) error {
	for i, e := range catalog {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: catalog entry %d (id %q) has no name", apperrors.ErrValidation, i, e.ID)
		}
	}
	return nil
}

// Resolve maps one raw title against the catalog snapshot. "No match" is a
// normal result (Resolved false); only an empty title, a malformed catalog
// or a store failure returns an error.
func (r *Resolver) Resolve(ctx context.Context, ch channel.Channel, rawTitle string, catalog []model.CatalogEntry) (model.MatchResult, error) {
	if err := validateCatalog(catalog); err != nil {
		return model.MatchResult{}, err
	}
	byID := make(map[string]model.CatalogEntry, len(catalog))
	for _, e := range catalog {
		byID[e.ID] = e
	}
	return r.resolveOne(ctx, ch, rawTitle, catalog, byID)
}

func (r *Resolver) resolveOne(ctx context.Context, ch channel.Channel, rawTitle string, catalog []model.CatalogEntry, byID map[string]model.CatalogEntry) (model.MatchResult, error) {
	if strings.TrimSpace(rawTitle) == "" {
		return model.MatchResult{}, fmt.Errorf("%w: empty title", apperrors.ErrValidation)
	}
	res := model.MatchResult{Query: rawTitle}

	// learned mappings always short-circuit, whatever the catalog says now
	productID, err := r.store.Lookup(ctx, ch, rawTitle)
	switch {
	case err == nil:
		res.Resolved = true
		res.Score = 1.0
		res.Method = model.MethodMapping
		res.ProductID = productID
		if e, ok := byID[productID]; ok {
			res.Matched = &e
		}
		return res, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return model.MatchResult{}, err
	}

	best := r.scorer.BestMatch(rawTitle, catalog)
	if best == nil {
		return res, nil
	}
	if best.Rating >= r.scorer.Threshold() {
		e := best.Entry
		res.Resolved = true
		res.Score = best.Rating
		res.Method = model.MethodFuzzy
		res.ProductID = e.ID
		res.Matched = &e
		return res, nil
	}
	// keep the best-below-threshold rating so operators see how close it was
	res.Score = best.Rating
	return res, nil
}

// ResolveBatch resolves rows in parallel (bounded, order-preserving) and
// aggregates duplicate groups: distinct titles landing on one product.
func (r *Resolver) ResolveBatch(ctx context.Context, ch channel.Channel, rows []model.Row, catalog []model.CatalogEntry) (model.BatchResult, error) {
	if err := validateCatalog(catalog); err != nil {
		return model.BatchResult{}, err
	}
	byID := make(map[string]model.CatalogEntry, len(catalog))
	for _, e := range catalog {
		byID[e.ID] = e
	}

	results := make([]model.RowResult, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			mr, err := r.resolveOne(gctx, ch, row.Title, catalog, byID)
			if err != nil {
				return err
			}
			results[i] = model.RowResult{Title: row.Title, Quantity: row.Quantity, MatchResult: mr}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.BatchResult{}, err
	}

	out := model.BatchResult{Results: results}
	groups := make(map[string]*model.DuplicateGroup)
	order := make([]string, 0)
	for _, rr := range results {
		if !rr.Resolved {
			out.Unresolved = append(out.Unresolved, rr)
			out.UnresolvedCount++
			continue
		}
		out.ResolvedCount++
		grp, ok := groups[rr.ProductID]
		if !ok {
			grp = &model.DuplicateGroup{ProductID: rr.ProductID}
			groups[rr.ProductID] = grp
			order = append(order, rr.ProductID)
		}
		if !containsTitle(grp.Titles, rr.Title) {
			grp.Titles = append(grp.Titles, rr.Title)
		}
		grp.TotalQuantity += rr.Quantity
	}
	for _, id := range order {
		grp := groups[id]
		grp.Count = len(grp.Titles)
		if grp.Count >= 2 {
			out.Duplicates = append(out.Duplicates, *grp)
		}
	}
	return out, nil
}

func containsTitle(titles []string, t string) bool {
	for _, s := range titles {
		if s == t {
			return true
		}
	}
	return false
}
