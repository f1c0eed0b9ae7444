// Package metrics records lookup, cache and parse counters.
package metrics

import (
	"time"

	"github.com/jqhoogland/open-dictionary/internal/domain"
)

// LookupResult labels the outcome of one lookup.
type LookupResult string

const (
	LookupOK               LookupResult = "ok"
	LookupPageNotFound     LookupResult = "page_not_found"
	LookupLanguageNotFound LookupResult = "language_not_found"
	LookupInvalid          LookupResult = "invalid"
	LookupError            LookupResult = "error"
)

// CacheOutcome labels how a page was obtained.
type CacheOutcome string

const (
	CacheHit    CacheOutcome = "hit"
	CacheMiss   CacheOutcome = "miss"
	CacheStale  CacheOutcome = "stale"
	CacheBypass CacheOutcome = "bypass"
)

// Recorder receives service measurements.
type Recorder interface {
	IncLookup(LookupResult)
	IncCache(CacheOutcome)
	ObserveFetchDuration(time.Duration)
	AddParseNotices([]domain.Notice)
}

// NoopRecorder discards every measurement.
type NoopRecorder struct{}

func (NoopRecorder) IncLookup(LookupResult)             {}
func (NoopRecorder) IncCache(CacheOutcome)              {}
func (NoopRecorder) ObserveFetchDuration(time.Duration) {}
func (NoopRecorder) AddParseNotices([]domain.Notice)    {}
