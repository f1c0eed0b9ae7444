package provider

import "time"

// Page is the raw source of one wiki page as returned by a page provider.
type Page struct {
	Wiki       string
	Title      string
	Wikitext   string
	RevisionID int64
	FetchedAt  time.Time
}
