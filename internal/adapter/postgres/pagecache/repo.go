// Package pagecache stores fetched wiki pages and the notices produced by
// parsing them.
package pagecache

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/jqhoogland/open-dictionary/internal/adapter/postgres"
	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/provider"
)

const (
	tablePages   = "pages"
	tableNotices = "parse_notices"

	defaultSummaryLimit = 50
	maxSummaryLimit     = 500
)

var pageColumns = []string{"wiki", "title", "wikitext", "revision_id", "fetched_at"}

// Repo provides page cache persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new page cache repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func pageKey(wiki, title string) string { return wiki + "/" + title }

// GetPage returns the cached page. Returns domain.ErrNotFound if absent.
func (r *Repo) GetPage(ctx context.Context, wiki, title string) (*provider.Page, error) {
	query, args, err := postgres.Builder().
		Select(pageColumns...).
		From(tablePages).
		Where(sq.Eq{"wiki": wiki, "title": title}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get page: %w", err)
	}

	var p provider.Page
	err = postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, query, args...).
		Scan(&p.Wiki, &p.Title, &p.Wikitext, &p.RevisionID, &p.FetchedAt)
	if err != nil {
		return nil, postgres.MapError(err, "page", pageKey(wiki, title))
	}
	p.FetchedAt = p.FetchedAt.UTC()
	return &p, nil
}

// UpsertPage inserts the page or replaces the cached copy.
func (r *Repo) UpsertPage(ctx context.Context, p provider.Page) error {
	fetchedAt := p.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	query, args, err := postgres.Builder().
		Insert(tablePages).
		Columns(pageColumns...).
		Values(p.Wiki, p.Title, p.Wikitext, p.RevisionID, fetchedAt).
		Suffix(`ON CONFLICT (wiki, title) DO UPDATE SET
			wikitext = EXCLUDED.wikitext,
			revision_id = EXCLUDED.revision_id,
			fetched_at = EXCLUDED.fetched_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert page: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "page", pageKey(p.Wiki, p.Title))
	}
	return nil
}

// DeletePage removes a page and its notices. Returns domain.ErrNotFound if
// nothing was cached.
func (r *Repo) DeletePage(ctx context.Context, wiki, title string) error {
	query, args, err := postgres.Builder().
		Delete(tablePages).
		Where(sq.Eq{"wiki": wiki, "title": title}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete page: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "page", pageKey(wiki, title))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("page %s: %w", pageKey(wiki, title), domain.ErrNotFound)
	}
	return nil
}

// ReplaceNotices swaps the stored notices of one page and language for
// notices. Run it in the same transaction as UpsertPage.
func (r *Repo) ReplaceNotices(ctx context.Context, wiki, title, langCode string, notices []domain.Notice) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	del, args, err := postgres.Builder().
		Delete(tableNotices).
		Where(sq.Eq{"wiki": wiki, "title": title, "lang_code": langCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete notices: %w", err)
	}
	if _, err := q.Exec(ctx, del, args...); err != nil {
		return postgres.MapError(err, "parse_notices", pageKey(wiki, title))
	}

	if len(notices) == 0 {
		return nil
	}

	now := time.Now().UTC()
	ins := postgres.Builder().
		Insert(tableNotices).
		Columns("id", "wiki", "title", "lang_code", "kind", "subject", "detail", "created_at")
	for _, n := range notices {
		ins = ins.Values(uuid.New(), wiki, title, langCode, string(n.Kind), n.Subject, n.Detail, now)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert notices: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "parse_notices", pageKey(wiki, title))
	}
	return nil
}

// NoticeFilter narrows NoticeSummary.
type NoticeFilter struct {
	Kind     domain.NoticeKind // empty means every kind
	LangCode string            // empty means every language
	Limit    int               // default 50, max 500
}

// NoticeSummary returns the most frequent notice subjects across all cached
// pages, most frequent first.
func (r *Repo) NoticeSummary(ctx context.Context, f NoticeFilter) ([]domain.NoticeStat, error) {
	limit := f.Limit
	switch {
	case limit <= 0:
		limit = defaultSummaryLimit
	case limit > maxSummaryLimit:
		limit = maxSummaryLimit
	}

	b := postgres.Builder().
		Select("kind", "subject", "count(*) AS occurrences", "count(DISTINCT (wiki, title)) AS pages").
		From(tableNotices).
		GroupBy("kind", "subject").
		OrderBy("occurrences DESC", "kind", "subject").
		Limit(uint64(limit))
	if f.Kind != "" {
		b = b.Where(sq.Eq{"kind": string(f.Kind)})
	}
	if f.LangCode != "" {
		b = b.Where(sq.Eq{"lang_code": f.LangCode})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notice summary: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("notice summary: %w", err)
	}
	defer rows.Close()

	stats := []domain.NoticeStat{}
	for rows.Next() {
		var (
			s    domain.NoticeStat
			kind string
		)
		if err := rows.Scan(&kind, &s.Subject, &s.Occurrences, &s.Pages); err != nil {
			return nil, fmt.Errorf("scan notice summary: %w", err)
		}
		s.Kind = domain.NoticeKind(kind)
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("notice summary rows: %w", err)
	}
	return stats, nil
}
