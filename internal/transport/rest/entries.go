package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/parser"
	"github.com/jqhoogland/open-dictionary/internal/service/lookup"
)

type entriesService interface {
	Lookup(ctx context.Context, word, lang string) (*parser.Result, error)
	BatchLookup(ctx context.Context, items []lookup.Item) ([]lookup.ItemResult, error)
	Parse(ctx context.Context, word, lang, wikitext string) (*parser.Result, error)
}

// EntriesHandler serves the public lookup endpoints.
type EntriesHandler struct {
	svc          entriesService
	log          *slog.Logger
	maxBodyBytes int64
}

// NewEntriesHandler creates an EntriesHandler.
func NewEntriesHandler(svc entriesService, logger *slog.Logger, maxBodyBytes int64) *EntriesHandler {
	return &EntriesHandler{
		svc:          svc,
		log:          logger.With("handler", "entries"),
		maxBodyBytes: maxBodyBytes,
	}
}

// Get returns the entries of one word.
// GET /api/v1/entries/{lang}/{word...}
func (h *EntriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Lookup(r.Context(), r.PathValue("word"), r.PathValue("lang"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type batchRequest struct {
	Items []lookup.Item `json:"items"`
}

type batchResponse struct {
	Results []batchResult `json:"results"`
}

// batchResult is one item of a batch. Failed items carry an error and the
// status the single-item endpoint would have returned.
type batchResult struct {
	Word    string          `json:"word"`
	Lang    string          `json:"lang"`
	Status  int             `json:"status"`
	Entries []domain.Entry  `json:"entries,omitempty"`
	Notices []domain.Notice `json:"notices,omitempty"`
	Error   *errorResponse  `json:"error,omitempty"`
}

// Batch looks up several words at once.
// POST /api/v1/entries:batch
func (h *EntriesHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(w, r, h.maxBodyBytes, &req) {
		return
	}

	results, err := h.svc.BatchLookup(r.Context(), req.Items)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := batchResponse{Results: make([]batchResult, 0, len(results))}
	for _, ir := range results {
		br := batchResult{Word: ir.Item.Word, Lang: ir.Item.Lang, Status: http.StatusOK}
		if ir.Err != nil {
			status, body := errorBody(ir.Err)
			if status == http.StatusInternalServerError {
				h.log.ErrorContext(r.Context(), "batch item failed",
					slog.String("word", ir.Item.Word),
					slog.String("lang", ir.Item.Lang),
					slog.String("error", ir.Err.Error()),
				)
			}
			br.Status, br.Error = status, &body
		} else {
			br.Entries, br.Notices = ir.Result.Entries, ir.Result.Notices
		}
		resp.Results = append(resp.Results, br)
	}
	writeJSON(w, http.StatusOK, resp)
}

type parseRequest struct {
	Word     string `json:"word"`
	Lang     string `json:"lang"`
	Wikitext string `json:"wikitext"`
}

// Parse parses wikitext supplied by the caller. Nothing is fetched or
// cached.
// POST /api/v1/parse
func (h *EntriesHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeJSON(w, r, h.maxBodyBytes, &req) {
		return
	}

	res, err := h.svc.Parse(r.Context(), req.Word, req.Lang, req.Wikitext)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
