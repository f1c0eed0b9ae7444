// Package lookup implements the get-or-fetch-then-parse use case: pages are
// served from the page cache when fresh, fetched from the wiki otherwise,
// and parsed for the requested language.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jqhoogland/open-dictionary/internal/adapter/postgres/pagecache"
	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/metrics"
	"github.com/jqhoogland/open-dictionary/internal/parser"
	"github.com/jqhoogland/open-dictionary/internal/provider"
)

type pageCache interface {
	GetPage(ctx context.Context, wiki, title string) (*provider.Page, error)
	UpsertPage(ctx context.Context, p provider.Page) error
	ReplaceNotices(ctx context.Context, wiki, title, langCode string, notices []domain.Notice) error
	DeletePage(ctx context.Context, wiki, title string) error
	NoticeSummary(ctx context.Context, f pagecache.NoticeFilter) ([]domain.NoticeStat, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pageProvider interface {
	FetchPage(ctx context.Context, word string) (*provider.Page, error)
	Wiki() string
}

// noTx runs fn directly, for caches without transactions.
type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

// Options tunes caching and batching.
type Options struct {
	PageTTL          time.Duration // zero keeps cached pages forever
	BatchConcurrency int
	BatchWait        time.Duration
	BatchCapacity    int
}

// Service implements entry lookups.
type Service struct {
	log     *slog.Logger
	cache   pageCache
	tx      txManager
	pages   pageProvider
	parser  *parser.Parser
	metrics metrics.Recorder
	opts    Options
	now     func() time.Time
}

// NewService creates a lookup service. cache and tx may both be nil, in
// which case every lookup fetches from the wiki.
func NewService(
	logger *slog.Logger,
	cache pageCache,
	tx txManager,
	pages pageProvider,
	p *parser.Parser,
	rec metrics.Recorder,
	opts Options,
) *Service {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	if tx == nil {
		tx = noTx{}
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = 4
	}
	if opts.BatchCapacity <= 0 {
		opts.BatchCapacity = 50
	}
	return &Service{
		log:     logger.With("service", "lookup"),
		cache:   cache,
		tx:      tx,
		pages:   pages,
		parser:  p,
		metrics: rec,
		opts:    opts,
		now:     time.Now,
	}
}

// Lookup returns the entries of word for lang, reading the page from the
// cache when it is fresh.
func (s *Service) Lookup(ctx context.Context, word, lang string) (*parser.Result, error) {
	return s.lookup(ctx, word, lang, false)
}

// Refresh is Lookup with the cache bypassed on read. The fetched page
// replaces the cached copy.
func (s *Service) Refresh(ctx context.Context, word, lang string) (*parser.Result, error) {
	return s.lookup(ctx, word, lang, true)
}

// Parse parses caller-supplied wikitext without fetching or caching.
func (s *Service) Parse(ctx context.Context, word, lang, wikitext string) (*parser.Result, error) {
	word, lang, err := s.validate(word, lang)
	if err != nil {
		s.metrics.IncLookup(metrics.LookupInvalid)
		return nil, err
	}
	res, err := s.parser.Parse(word, wikitext, lang)
	s.record(ctx, word, lang, res, err)
	return res, err
}

// Evict removes a page from the cache. Returns domain.ErrNotFound if it was
// not cached.
func (s *Service) Evict(ctx context.Context, word string) error {
	word = domain.NormalizeWord(word)
	if word == "" {
		return domain.NewValidationError("word", "required")
	}
	if s.cache == nil {
		return fmt.Errorf("page cache disabled: %w", domain.ErrNotFound)
	}
	if err := s.cache.DeletePage(ctx, s.pages.Wiki(), word); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "page evicted", slog.String("word", word))
	return nil
}

// Notices summarizes stored parse notices.
func (s *Service) Notices(ctx context.Context, f pagecache.NoticeFilter) ([]domain.NoticeStat, error) {
	if f.Kind != "" && !f.Kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown notice kind")
	}
	if s.cache == nil {
		return []domain.NoticeStat{}, nil
	}
	return s.cache.NoticeSummary(ctx, f)
}

func (s *Service) lookup(ctx context.Context, word, lang string, force bool) (*parser.Result, error) {
	word, lang, err := s.validate(word, lang)
	if err != nil {
		s.metrics.IncLookup(metrics.LookupInvalid)
		return nil, err
	}

	page, fetched, err := s.page(ctx, word, force)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			s.metrics.IncLookup(metrics.LookupPageNotFound)
			return nil, fmt.Errorf("lookup %q: %w", word, err)
		}
		s.metrics.IncLookup(metrics.LookupError)
		return nil, fmt.Errorf("lookup %q: %w", word, err)
	}

	res, parseErr := s.parser.Parse(word, page.Wikitext, lang)
	s.persist(ctx, page, fetched, lang, res)
	s.record(ctx, word, lang, res, parseErr)
	return res, parseErr
}

func (s *Service) validate(word, lang string) (string, string, error) {
	word = domain.NormalizeWord(word)
	lang = strings.ToLower(strings.TrimSpace(lang))

	var errs []domain.FieldError
	if word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if lang == "" {
		errs = append(errs, domain.FieldError{Field: "lang", Message: "required"})
	} else if _, err := s.parser.Languages().Name(lang); err != nil {
		errs = append(errs, domain.FieldError{Field: "lang", Message: "unknown language code"})
	}
	if len(errs) > 0 {
		return "", "", domain.NewValidationErrors(errs)
	}
	return word, lang, nil
}

// page returns the page for word and whether it came from the wiki.
func (s *Service) page(ctx context.Context, word string, force bool) (*provider.Page, bool, error) {
	wiki := s.pages.Wiki()

	outcome := metrics.CacheBypass
	if s.cache != nil && !force {
		cached, err := s.cache.GetPage(ctx, wiki, word)
		switch {
		case err == nil && s.fresh(cached):
			s.metrics.IncCache(metrics.CacheHit)
			return cached, false, nil
		case err == nil:
			outcome = metrics.CacheStale
		case errors.Is(err, domain.ErrNotFound):
			outcome = metrics.CacheMiss
		default:
			s.log.WarnContext(ctx, "page cache read failed",
				slog.String("word", word),
				slog.String("error", err.Error()),
			)
			outcome = metrics.CacheMiss
		}
	}
	s.metrics.IncCache(outcome)

	// External HTTP call is made outside any transaction.
	start := time.Now()
	page, err := s.pages.FetchPage(ctx, word)
	s.metrics.ObserveFetchDuration(time.Since(start))
	if err != nil {
		return nil, false, err
	}

	// Pages are cached under the requested title so that redirects hit.
	page.Wiki, page.Title = wiki, word
	return page, true, nil
}

func (s *Service) fresh(p *provider.Page) bool {
	return s.opts.PageTTL <= 0 || s.now().Sub(p.FetchedAt) < s.opts.PageTTL
}

// persist stores a fetched page and replaces the notices of a successful
// parse in one transaction. Failures are logged, not returned: the caller
// already has a valid result.
func (s *Service) persist(ctx context.Context, page *provider.Page, fetched bool, lang string, res *parser.Result) {
	if s.cache == nil || (!fetched && res == nil) {
		return
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if fetched {
			if err := s.cache.UpsertPage(txCtx, *page); err != nil {
				return err
			}
		}
		if res != nil {
			return s.cache.ReplaceNotices(txCtx, page.Wiki, page.Title, lang, res.Notices)
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadyExists):
		// A concurrent lookup stored the same page first.
		s.log.DebugContext(ctx, "page already cached", slog.String("word", page.Title))
	default:
		s.log.WarnContext(ctx, "page cache write failed",
			slog.String("word", page.Title),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) record(ctx context.Context, word, lang string, res *parser.Result, err error) {
	switch {
	case err == nil:
		s.metrics.IncLookup(metrics.LookupOK)
		s.metrics.AddParseNotices(res.Notices)
		s.log.InfoContext(ctx, "entries parsed",
			slog.String("word", word),
			slog.String("lang", lang),
			slog.Int("entries", len(res.Entries)),
			slog.Int("notices", len(res.Notices)),
		)
	case errors.Is(err, domain.ErrLanguageNotFound):
		s.metrics.IncLookup(metrics.LookupLanguageNotFound)
	case errors.Is(err, domain.ErrValidation):
		s.metrics.IncLookup(metrics.LookupInvalid)
	default:
		s.metrics.IncLookup(metrics.LookupError)
		s.log.ErrorContext(ctx, "parse failed",
			slog.String("word", word),
			slog.String("lang", lang),
			slog.String("error", err.Error()),
		)
	}
}
