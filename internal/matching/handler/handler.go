package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"channel-matcher/internal/apperrors"
	"channel-matcher/internal/channel"
	"channel-matcher/internal/fileio"
	"channel-matcher/internal/matching/model"
	"channel-matcher/internal/matching/service"
	"channel-matcher/internal/middleware"
)

// Store is the mapping-store surface the handlers drive.
type Store interface {
	Upsert(ctx context.Context, ch channel.Channel, title, productID string) error
	Lookup(ctx context.Context, ch channel.Channel, title string) (string, error)
	ResetAll(ctx context.Context, ch channel.Channel) (int64, error)
}

// Catalog reads the canonical product list.
type Catalog interface {
	List(ctx context.Context) ([]model.CatalogEntry, error)
}

type Handler struct {
	log      zerolog.Logger
	store    Store
	catalog  Catalog
	resolver *service.Resolver
}

func New(logger zerolog.Logger, store Store, catalog Catalog, resolver *service.Resolver) *Handler {
	return &Handler{log: logger, store: store, catalog: catalog, resolver: resolver}
}

func (h *Handler) reqLog(r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return h.log.With().Str("rid", rid).Logger()
	}
	return h.log
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}

// channelFrom resolves the {channel} route param; unknown channels 404
// with the valid list in the message.
func (h *Handler) channelFrom(w http.ResponseWriter, r *http.Request) (channel.Channel, bool) {
	key := chi.URLParam(r, "channel")
	ch, ok := channel.Parse(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "unknown channel " + key + "; valid: " + strings.Join(channel.Keys(), ", "),
		})
		return channel.Channel{}, false
	}
	return ch, true
}

// UpsertMapping is the learning write: confirm raw title -> product id.
// Accepts {"title": ...} or the channel-prefixed key ("amazonTitle") the
// dashboards send.
func (h *Handler) UpsertMapping(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.channelFrom(w, r)
	if !ok {
		return
	}
	defer r.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}
	title := strings.TrimSpace(body["title"])
	if title == "" {
		title = strings.TrimSpace(body[ch.TitleKey()])
	}
	productID := strings.TrimSpace(body["productId"])

	if err := h.store.Upsert(r.Context(), ch, title, productID); err != nil {
		writeErr(w, err)
		return
	}
	lg := h.reqLog(r)
	lg.Info().Str("channel", ch.Key).Str("product_id", productID).Msg("mapping learned")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "mapping saved"})
}

// ResetMappings bulk-clears all learning data for the channel. Safe only
// between import batches; see the concurrency note on the store.
func (h *Handler) ResetMappings(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.channelFrom(w, r)
	if !ok {
		return
	}
	n, err := h.store.ResetAll(r.Context(), ch)
	if err != nil {
		writeErr(w, err)
		return
	}
	lg := h.reqLog(r)
	lg.Info().Str("channel", ch.Key).Int64("deleted", n).Msg("mappings reset")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deletedCount": n})
}

// LookupMapping is exact-title lookup for operator debugging; a miss is a
// normal {"found": false} response, not an error status.
func (h *Handler) LookupMapping(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.channelFrom(w, r)
	if !ok {
		return
	}
	title := chi.URLParam(r, "title")
	productID, err := h.store.Lookup(r.Context(), ch, title)
	if errors.Is(err, apperrors.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "found": false})
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "found": true, "productId": productID})
}

// ListProducts returns the catalog (id, name).
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "products": entries, "count": len(entries)})
}

type importRequest struct {
	Rows    []model.Row          `json:"rows"`
	Catalog []model.CatalogEntry `json:"catalog"`
}

// ImportBatch resolves a JSON batch of sale rows against the catalog
// (inline snapshot or, when omitted, the product table). Resolution never
// writes mappings; confirming a match is a separate UpsertMapping call.
func (h *Handler) ImportBatch(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.channelFrom(w, r)
	if !ok {
		return
	}
	start := time.Now()
	defer r.Body.Close()

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}
	if len(req.Rows) == 0 {
		writeErr(w, fmt.Errorf("%w: rows are required", apperrors.ErrValidation))
		return
	}
	h.runBatch(w, r, ch, req.Rows, req.Catalog, start)
}

func (h *Handler) runBatch(w http.ResponseWriter, r *http.Request, ch channel.Channel, rows []model.Row, catalog []model.CatalogEntry, start time.Time) {
	var err error
	if catalog == nil {
		catalog, err = h.catalog.List(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
	}

	res, err := h.resolver.ResolveBatch(r.Context(), ch, rows, catalog)
	if err != nil {
		writeErr(w, err)
		return
	}

	lg := h.reqLog(r)
	lg.Info().
		Str("channel", ch.Key).
		Int("rows", len(rows)).
		Int("resolved", res.ResolvedCount).
		Int("unresolved", res.UnresolvedCount).
		Int("duplicate_groups", len(res.Duplicates)).
		Dur("elapsed", time.Since(start)).
		Msg("import batch resolved")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"results":         res.Results,
		"duplicates":      res.Duplicates,
		"unresolved":      res.Unresolved,
		"resolvedCount":   res.ResolvedCount,
		"unresolvedCount": res.UnresolvedCount,
	})
}

// ImportFile accepts a channel export upload (CSV/XLS/XLSX), maps its
// columns to title/quantity rows and runs the same batch pipeline.
// Form fields: file, title_key, qty_key, header_row.
func (h *Handler) ImportFile(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.channelFrom(w, r)
	if !ok {
		return
	}
	start := time.Now()
	defer r.Body.Close()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeErr(w, fmt.Errorf("%w: bad multipart form: %v", apperrors.ErrValidation, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, fmt.Errorf("%w: missing file", apperrors.ErrValidation))
		return
	}
	defer file.Close()

	maps, err := fileio.ReadAnyMaps(file, header.Filename, atoi(r.FormValue("header_row"), 1))
	if err != nil {
		writeErr(w, fmt.Errorf("%w: failed to read %s: %v", apperrors.ErrValidation, header.Filename, err))
		return
	}

	rows := mapRows(maps, r.FormValue("title_key"), r.FormValue("qty_key"))
	if len(rows) == 0 {
		writeErr(w, fmt.Errorf("%w: no usable rows in %s", apperrors.ErrValidation, header.Filename))
		return
	}
	h.runBatch(w, r, ch, rows, nil, start)
}
