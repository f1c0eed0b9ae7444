package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jqhoogland/open-dictionary/internal/adapter/postgres/pagecache"
	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/parser"
	"github.com/jqhoogland/open-dictionary/pkg/ctxutil"
)

type adminService interface {
	Notices(ctx context.Context, f pagecache.NoticeFilter) ([]domain.NoticeStat, error)
	Evict(ctx context.Context, word string) error
	Refresh(ctx context.Context, word, lang string) (*parser.Result, error)
}

// AdminHandler serves operator endpoints. Routes are wrapped in
// middleware.AdminOnly.
type AdminHandler struct {
	svc adminService
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc: svc,
		log: logger.With("handler", "admin"),
	}
}

type noticesResponse struct {
	Notices []domain.NoticeStat `json:"notices"`
}

// Notices returns the most frequent parse notices.
// GET /admin/notices?kind=unmatched_template&lang=en&limit=50
func (h *AdminHandler) Notices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := pagecache.NoticeFilter{
		Kind:     domain.NoticeKind(q.Get("kind")),
		LangCode: strings.ToLower(q.Get("lang")),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			handleError(w, r, h.log, domain.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		f.Limit = n
	}

	stats, err := h.svc.Notices(r.Context(), f)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, noticesResponse{Notices: stats})
}

// EvictPage drops a page from the cache.
// DELETE /admin/pages/{word}
func (h *AdminHandler) EvictPage(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if err := h.svc.Evict(r.Context(), word); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.log.InfoContext(r.Context(), "page evicted by operator",
		slog.String("word", word),
		slog.String("subject", subject(r)),
	)
	w.WriteHeader(http.StatusNoContent)
}

// RefreshPage refetches a page and returns its entries for lang.
// POST /admin/pages/{word}/refresh?lang=en
func (h *AdminHandler) RefreshPage(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}

	res, err := h.svc.Refresh(r.Context(), r.PathValue("word"), lang)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func subject(r *http.Request) string {
	s, _ := ctxutil.SubjectFromCtx(r.Context())
	return s
}
