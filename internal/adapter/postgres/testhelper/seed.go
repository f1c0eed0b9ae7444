package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jqhoogland/open-dictionary/internal/provider"
)

// UniqueTitle returns a page title that no other test uses.
func UniqueTitle(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedPage inserts a page row and returns it.
func SeedPage(t *testing.T, pool *pgxpool.Pool, wiki, title, wikitext string) provider.Page {
	t.Helper()

	page := provider.Page{
		Wiki:       wiki,
		Title:      title,
		Wikitext:   wikitext,
		RevisionID: 1,
		FetchedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO pages (wiki, title, wikitext, revision_id, fetched_at) VALUES ($1, $2, $3, $4, $5)`,
		page.Wiki, page.Title, page.Wikitext, page.RevisionID, page.FetchedAt,
	)
	if err != nil {
		t.Fatalf("SeedPage: %v", err)
	}
	return page
}
