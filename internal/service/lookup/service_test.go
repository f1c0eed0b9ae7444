package lookup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jqhoogland/open-dictionary/internal/adapter/postgres/pagecache"
	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/metrics"
	"github.com/jqhoogland/open-dictionary/internal/parser"
	"github.com/jqhoogland/open-dictionary/internal/provider"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockPageCache struct {
	GetPageFunc        func(ctx context.Context, wiki, title string) (*provider.Page, error)
	UpsertPageFunc     func(ctx context.Context, p provider.Page) error
	ReplaceNoticesFunc func(ctx context.Context, wiki, title, langCode string, notices []domain.Notice) error
	DeletePageFunc     func(ctx context.Context, wiki, title string) error
	NoticeSummaryFunc  func(ctx context.Context, f pagecache.NoticeFilter) ([]domain.NoticeStat, error)
}

func (m *mockPageCache) GetPage(ctx context.Context, wiki, title string) (*provider.Page, error) {
	return m.GetPageFunc(ctx, wiki, title)
}

func (m *mockPageCache) UpsertPage(ctx context.Context, p provider.Page) error {
	if m.UpsertPageFunc == nil {
		return nil
	}
	return m.UpsertPageFunc(ctx, p)
}

func (m *mockPageCache) ReplaceNotices(ctx context.Context, wiki, title, langCode string, notices []domain.Notice) error {
	if m.ReplaceNoticesFunc == nil {
		return nil
	}
	return m.ReplaceNoticesFunc(ctx, wiki, title, langCode, notices)
}

func (m *mockPageCache) DeletePage(ctx context.Context, wiki, title string) error {
	return m.DeletePageFunc(ctx, wiki, title)
}

func (m *mockPageCache) NoticeSummary(ctx context.Context, f pagecache.NoticeFilter) ([]domain.NoticeStat, error) {
	return m.NoticeSummaryFunc(ctx, f)
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	// Default: pass-through (no real transaction).
	return fn(ctx)
}

type mockPageProvider struct {
	FetchPageFunc func(ctx context.Context, word string) (*provider.Page, error)
}

func (m *mockPageProvider) FetchPage(ctx context.Context, word string) (*provider.Page, error) {
	return m.FetchPageFunc(ctx, word)
}

func (m *mockPageProvider) Wiki() string { return "en" }

type countingRecorder struct {
	mu      sync.Mutex
	lookups map[metrics.LookupResult]int
	cache   map[metrics.CacheOutcome]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		lookups: make(map[metrics.LookupResult]int),
		cache:   make(map[metrics.CacheOutcome]int),
	}
}

func (r *countingRecorder) IncLookup(l metrics.LookupResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups[l]++
}

func (r *countingRecorder) IncCache(o metrics.CacheOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[o]++
}

func (r *countingRecorder) ObserveFetchDuration(time.Duration) {}
func (r *countingRecorder) AddParseNotices([]domain.Notice)    {}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testPage = `==English==
===Etymology===
From {{inh|en|enm|hallow}}.
===Interjection===
{{en-interj}}
# A greeting.
===Anagrams===
{{unknown-template}}
`

func newTestService(cache pageCache, pages *mockPageProvider, rec metrics.Recorder) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, cache, &mockTxManager{}, pages, parser.New(logger, nil, nil), rec, Options{
		PageTTL:          time.Hour,
		BatchConcurrency: 2,
		BatchCapacity:    10,
	})
}

func fetchReturning(text string, calls *atomic.Int32) *mockPageProvider {
	return &mockPageProvider{
		FetchPageFunc: func(_ context.Context, word string) (*provider.Page, error) {
			if calls != nil {
				calls.Add(1)
			}
			return &provider.Page{Wiki: "en", Title: word, Wikitext: text, RevisionID: 1, FetchedAt: time.Now()}, nil
		},
	}
}

func notCached() *mockPageCache {
	return &mockPageCache{
		GetPageFunc: func(_ context.Context, _, _ string) (*provider.Page, error) {
			return nil, domain.ErrNotFound
		},
	}
}

// ---------------------------------------------------------------------------
// Lookup tests
// ---------------------------------------------------------------------------

func TestService_Lookup_CacheHit(t *testing.T) {
	t.Parallel()

	var replaced []domain.Notice
	cache := &mockPageCache{
		GetPageFunc: func(_ context.Context, wiki, title string) (*provider.Page, error) {
			assert.Equal(t, "en", wiki)
			assert.Equal(t, "hallo", title)
			return &provider.Page{Wiki: wiki, Title: title, Wikitext: testPage, FetchedAt: time.Now()}, nil
		},
		UpsertPageFunc: func(_ context.Context, _ provider.Page) error {
			t.Error("UpsertPage should NOT be called on a cache hit")
			return nil
		},
		ReplaceNoticesFunc: func(_ context.Context, _, _, lang string, ns []domain.Notice) error {
			assert.Equal(t, "en", lang)
			replaced = ns
			return nil
		},
	}
	pages := &mockPageProvider{
		FetchPageFunc: func(_ context.Context, _ string) (*provider.Page, error) {
			t.Error("FetchPage should NOT be called on a cache hit")
			return nil, nil
		},
	}
	rec := newCountingRecorder()

	res, err := newTestService(cache, pages, rec).Lookup(context.Background(), " hallo ", "EN")
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "hallo", res.Entries[0].Word)
	assert.Equal(t, res.Notices, replaced)
	assert.Equal(t, 1, rec.cache[metrics.CacheHit])
	assert.Equal(t, 1, rec.lookups[metrics.LookupOK])
}

func TestService_Lookup_CacheMiss_FetchesAndStores(t *testing.T) {
	t.Parallel()

	var (
		upserted    *provider.Page
		txCalls     int
		inTx        bool
		noticesInTx bool
	)
	cache := notCached()
	cache.UpsertPageFunc = func(_ context.Context, p provider.Page) error {
		upserted = &p
		return nil
	}
	cache.ReplaceNoticesFunc = func(_ context.Context, _, _, _ string, _ []domain.Notice) error {
		noticesInTx = inTx
		return nil
	}

	pages := &mockPageProvider{
		FetchPageFunc: func(_ context.Context, word string) (*provider.Page, error) {
			assert.False(t, inTx, "fetch must happen outside the transaction")
			// A redirect resolves to another title.
			return &provider.Page{Wiki: "en", Title: "Hallo", Wikitext: testPage, FetchedAt: time.Now()}, nil
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tx := &mockTxManager{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			txCalls++
			inTx = true
			defer func() { inTx = false }()
			return fn(ctx)
		},
	}
	rec := newCountingRecorder()
	svc := NewService(logger, cache, tx, pages, parser.New(logger, nil, nil), rec, Options{})

	res, err := svc.Lookup(context.Background(), "hallo", "en")
	require.NoError(t, err)
	require.NotEmpty(t, res.Entries)

	require.NotNil(t, upserted)
	assert.Equal(t, "hallo", upserted.Title, "pages are cached under the requested title")
	assert.Equal(t, 1, txCalls)
	assert.True(t, noticesInTx)
	assert.Equal(t, 1, rec.cache[metrics.CacheMiss])
}

func TestService_Lookup_StalePageRefetched(t *testing.T) {
	t.Parallel()

	cache := &mockPageCache{
		GetPageFunc: func(_ context.Context, wiki, title string) (*provider.Page, error) {
			return &provider.Page{Wiki: wiki, Title: title, Wikitext: "==English==\n", FetchedAt: time.Now().Add(-2 * time.Hour)}, nil
		},
	}
	var calls atomic.Int32
	rec := newCountingRecorder()

	res, err := newTestService(cache, fetchReturning(testPage, &calls), rec).Lookup(context.Background(), "hallo", "en")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "interjection", res.Entries[0].Definitions[0].ID, "fresh wikitext must be parsed")
	assert.Equal(t, 1, rec.cache[metrics.CacheStale])
}

func TestService_Lookup_ZeroTTLNeverStale(t *testing.T) {
	t.Parallel()

	cache := &mockPageCache{
		GetPageFunc: func(_ context.Context, wiki, title string) (*provider.Page, error) {
			return &provider.Page{Wiki: wiki, Title: title, Wikitext: testPage, FetchedAt: time.Now().Add(-24 * 365 * time.Hour)}, nil
		},
	}
	var calls atomic.Int32
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, cache, nil, fetchReturning(testPage, &calls), parser.New(logger, nil, nil), nil, Options{})

	_, err := svc.Lookup(context.Background(), "hallo", "en")
	require.NoError(t, err)
	assert.Zero(t, calls.Load())
}

func TestService_Lookup_CachedPageNewLanguageNoNetwork(t *testing.T) {
	t.Parallel()

	page := testPage + "==Dutch==\n===Interjection===\n# hallo\n"
	cache := &mockPageCache{
		GetPageFunc: func(_ context.Context, wiki, title string) (*provider.Page, error) {
			return &provider.Page{Wiki: wiki, Title: title, Wikitext: page, FetchedAt: time.Now()}, nil
		},
	}
	var calls atomic.Int32
	svc := newTestService(cache, fetchReturning(page, &calls), nil)

	for _, lang := range []string{"en", "nl"} {
		res, err := svc.Lookup(context.Background(), "hallo", lang)
		require.NoError(t, err)
		assert.Equal(t, lang, res.Entries[0].LanguageCode)
	}
	assert.Zero(t, calls.Load())
}

func TestService_Lookup_PageNotFound(t *testing.T) {
	t.Parallel()

	cache := notCached()
	cache.UpsertPageFunc = func(_ context.Context, _ provider.Page) error {
		t.Error("UpsertPage should NOT be called for a missing page")
		return nil
	}
	pages := &mockPageProvider{
		FetchPageFunc: func(_ context.Context, _ string) (*provider.Page, error) {
			return nil, domain.ErrPageNotFound
		},
	}
	rec := newCountingRecorder()

	_, err := newTestService(cache, pages, rec).Lookup(context.Background(), "qwxz", "en")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
	assert.Equal(t, 1, rec.lookups[metrics.LookupPageNotFound])
}

func TestService_Lookup_ProviderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	pages := &mockPageProvider{
		FetchPageFunc: func(_ context.Context, _ string) (*provider.Page, error) { return nil, boom },
	}
	rec := newCountingRecorder()

	_, err := newTestService(notCached(), pages, rec).Lookup(context.Background(), "hallo", "en")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, rec.lookups[metrics.LookupError])
}

func TestService_Lookup_LanguageNotFound_StillCachesPage(t *testing.T) {
	t.Parallel()

	var upserts int
	cache := notCached()
	cache.UpsertPageFunc = func(_ context.Context, _ provider.Page) error {
		upserts++
		return nil
	}
	cache.ReplaceNoticesFunc = func(_ context.Context, _, _, _ string, _ []domain.Notice) error {
		t.Error("ReplaceNotices should NOT be called without a parse result")
		return nil
	}
	rec := newCountingRecorder()

	_, err := newTestService(cache, fetchReturning(testPage, nil), rec).Lookup(context.Background(), "hallo", "fr")

	var lnf *domain.LanguageNotFoundError
	require.ErrorAs(t, err, &lnf)
	assert.Equal(t, "French", lnf.Name)
	assert.Equal(t, 1, upserts)
	assert.Equal(t, 1, rec.lookups[metrics.LookupLanguageNotFound])
}

func TestService_Lookup_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		word  string
		lang  string
		field string
	}{
		{"empty word", "  ", "en", "word"},
		{"empty lang", "hallo", "", "lang"},
		{"unknown lang", "hallo", "xx-nope", "lang"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pages := &mockPageProvider{
				FetchPageFunc: func(_ context.Context, _ string) (*provider.Page, error) {
					t.Error("FetchPage should NOT be called for invalid input")
					return nil, nil
				},
			}
			_, err := newTestService(notCached(), pages, nil).Lookup(context.Background(), tt.word, tt.lang)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestService_Lookup_CacheWriteFailureNotFatal(t *testing.T) {
	t.Parallel()

	cache := notCached()
	cache.UpsertPageFunc = func(_ context.Context, _ provider.Page) error {
		return errors.New("disk full")
	}

	res, err := newTestService(cache, fetchReturning(testPage, nil), nil).Lookup(context.Background(), "hallo", "en")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Entries)
}

func TestService_Lookup_CacheReadFailureFallsBackToFetch(t *testing.T) {
	t.Parallel()

	cache := &mockPageCache{
		GetPageFunc: func(_ context.Context, _, _ string) (*provider.Page, error) {
			return nil, errors.New("connection refused")
		},
	}
	var calls atomic.Int32

	_, err := newTestService(cache, fetchReturning(testPage, &calls), nil).Lookup(context.Background(), "hallo", "en")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestService_Lookup_WithoutCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	rec := newCountingRecorder()
	svc := newTestService(nil, fetchReturning(testPage, &calls), rec)

	_, err := svc.Lookup(context.Background(), "hallo", "en")
	require.NoError(t, err)
	_, err = svc.Lookup(context.Background(), "hallo", "en")
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, rec.cache[metrics.CacheBypass])
}

func TestService_Refresh_SkipsCacheRead(t *testing.T) {
	t.Parallel()

	cache := &mockPageCache{
		GetPageFunc: func(_ context.Context, _, _ string) (*provider.Page, error) {
			t.Error("GetPage should NOT be called on refresh")
			return nil, nil
		},
	}
	var calls atomic.Int32

	_, err := newTestService(cache, fetchReturning(testPage, &calls), nil).Refresh(context.Background(), "hallo", "en")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

// ---------------------------------------------------------------------------
// Parse, Evict, Notices
// ---------------------------------------------------------------------------

func TestService_Parse(t *testing.T) {
	t.Parallel()

	pages := &mockPageProvider{
		FetchPageFunc: func(_ context.Context, _ string) (*provider.Page, error) {
			t.Error("FetchPage should NOT be called by Parse")
			return nil, nil
		},
	}
	res, err := newTestService(nil, pages, nil).Parse(context.Background(), "hallo", "en", testPage)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Len(t, res.Entries[0].Etymology, 1)
}

func TestService_Evict(t *testing.T) {
	t.Parallel()

	var deleted string
	cache := &mockPageCache{
		DeletePageFunc: func(_ context.Context, wiki, title string) error {
			deleted = wiki + "/" + title
			return nil
		},
	}
	require.NoError(t, newTestService(cache, fetchReturning("", nil), nil).Evict(context.Background(), "hallo"))
	assert.Equal(t, "en/hallo", deleted)
}

func TestService_Evict_NotCached(t *testing.T) {
	t.Parallel()

	cache := &mockPageCache{
		DeletePageFunc: func(_ context.Context, _, _ string) error {
			return domain.ErrNotFound
		},
	}
	err := newTestService(cache, fetchReturning("", nil), nil).Evict(context.Background(), "hallo")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = newTestService(nil, fetchReturning("", nil), nil).Evict(context.Background(), "hallo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Notices(t *testing.T) {
	t.Parallel()

	want := []domain.NoticeStat{{Kind: domain.NoticeUnmatchedTemplate, Subject: "x", Occurrences: 3, Pages: 2}}
	cache := &mockPageCache{
		NoticeSummaryFunc: func(_ context.Context, f pagecache.NoticeFilter) ([]domain.NoticeStat, error) {
			assert.Equal(t, domain.NoticeUnmatchedTemplate, f.Kind)
			return want, nil
		},
	}
	svc := newTestService(cache, fetchReturning("", nil), nil)

	got, err := svc.Notices(context.Background(), pagecache.NoticeFilter{Kind: domain.NoticeUnmatchedTemplate})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.Notices(context.Background(), pagecache.NoticeFilter{Kind: "bogus"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
