package pagecache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/jqhoogland/open-dictionary/internal/adapter/postgres"
	"github.com/jqhoogland/open-dictionary/internal/adapter/postgres/pagecache"
	"github.com/jqhoogland/open-dictionary/internal/adapter/postgres/testhelper"
	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/provider"
)

func TestRepo_UpsertAndGetPage(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := pagecache.New(pool)
	ctx := context.Background()

	page := provider.Page{
		Wiki:       "en",
		Title:      testhelper.UniqueTitle("upsert"),
		Wikitext:   "==English==\n",
		RevisionID: 10,
		FetchedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.UpsertPage(ctx, page))

	got, err := repo.GetPage(ctx, page.Wiki, page.Title)
	require.NoError(t, err)
	assert.Equal(t, page, *got)

	page.Wikitext = "==English==\n===Noun===\n"
	page.RevisionID = 11
	require.NoError(t, repo.UpsertPage(ctx, page))

	got, err = repo.GetPage(ctx, page.Wiki, page.Title)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.RevisionID)
	assert.Equal(t, page.Wikitext, got.Wikitext)
}

func TestRepo_GetPage_NotFound(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := pagecache.New(pool)

	_, err := repo.GetPage(context.Background(), "en", testhelper.UniqueTitle("missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_GetPage_WikiIsPartOfKey(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := pagecache.New(pool)

	page := testhelper.SeedPage(t, pool, "en", testhelper.UniqueTitle("wiki"), "x")

	_, err := repo.GetPage(context.Background(), "fr", page.Title)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_DeletePage(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := pagecache.New(pool)
	ctx := context.Background()

	page := testhelper.SeedPage(t, pool, "en", testhelper.UniqueTitle("delete"), "x")
	require.NoError(t, repo.ReplaceNotices(ctx, page.Wiki, page.Title, "en", []domain.Notice{
		{Kind: domain.NoticeUnmatchedTemplate, Subject: "foo"},
	}))

	require.NoError(t, repo.DeletePage(ctx, page.Wiki, page.Title))

	_, err := repo.GetPage(ctx, page.Wiki, page.Title)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM parse_notices WHERE wiki = $1 AND title = $2`, page.Wiki, page.Title,
	).Scan(&count))
	assert.Zero(t, count, "notices must cascade")

	err = repo.DeletePage(ctx, page.Wiki, page.Title)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ReplaceNotices(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := pagecache.New(pool)
	ctx := context.Background()

	lang := testhelper.UniqueTitle("lang")
	page := testhelper.SeedPage(t, pool, "en", testhelper.UniqueTitle("notices"), "x")

	require.NoError(t, repo.ReplaceNotices(ctx, page.Wiki, page.Title, lang, []domain.Notice{
		{Kind: domain.NoticeUnmatchedTemplate, Subject: "foo"},
		{Kind: domain.NoticeUnmatchedTemplate, Subject: "foo"},
		{Kind: domain.NoticeUnhandledSection, Subject: "Anagrams", Detail: "outside etymology"},
	}))

	stats, err := repo.NoticeSummary(ctx, pagecache.NoticeFilter{LangCode: lang})
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, domain.NoticeStat{Kind: domain.NoticeUnmatchedTemplate, Subject: "foo", Occurrences: 2, Pages: 1}, stats[0])
	assert.Equal(t, "Anagrams", stats[1].Subject)

	// A second parse replaces, not appends.
	require.NoError(t, repo.ReplaceNotices(ctx, page.Wiki, page.Title, lang, []domain.Notice{
		{Kind: domain.NoticeClassificationMiss, Subject: "Synonyms"},
	}))
	stats, err = repo.NoticeSummary(ctx, pagecache.NoticeFilter{LangCode: lang})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, domain.NoticeClassificationMiss, stats[0].Kind)

	require.NoError(t, repo.ReplaceNotices(ctx, page.Wiki, page.Title, lang, nil))
	stats, err = repo.NoticeSummary(ctx, pagecache.NoticeFilter{LangCode: lang})
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestRepo_NoticeSummary_KindFilterAndLimit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := pagecache.New(pool)
	ctx := context.Background()

	lang := testhelper.UniqueTitle("lang")
	for _, title := range []string{testhelper.UniqueTitle("a"), testhelper.UniqueTitle("b")} {
		testhelper.SeedPage(t, pool, "en", title, "x")
		require.NoError(t, repo.ReplaceNotices(ctx, "en", title, lang, []domain.Notice{
			{Kind: domain.NoticeUnmatchedTemplate, Subject: "shared"},
			{Kind: domain.NoticeUnhandledSection, Subject: "Anagrams"},
		}))
	}

	stats, err := repo.NoticeSummary(ctx, pagecache.NoticeFilter{
		Kind:     domain.NoticeUnmatchedTemplate,
		LangCode: lang,
		Limit:    1,
	})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "shared", stats[0].Subject)
	assert.Equal(t, 2, stats[0].Pages)
}

func TestRepo_UpsertAndNoticesInTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := pagecache.New(pool)
	txm := postgres.NewTxManager(pool)
	ctx := context.Background()

	title := testhelper.UniqueTitle("tx")
	sentinel := errors.New("abort")

	err := txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := repo.UpsertPage(ctx, provider.Page{Wiki: "en", Title: title, Wikitext: "x"}); err != nil {
			return err
		}
		if err := repo.ReplaceNotices(ctx, "en", title, "en", []domain.Notice{{Kind: domain.NoticeUnmatchedTemplate, Subject: "x"}}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = repo.GetPage(ctx, "en", title)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ReplaceNotices_UnknownPage(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := pagecache.New(pool)

	err := repo.ReplaceNotices(context.Background(), "en", testhelper.UniqueTitle("orphan"), "en", []domain.Notice{
		{Kind: domain.NoticeUnmatchedTemplate, Subject: "x"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
