package wiktionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jqhoogland/open-dictionary/internal/domain"
	"github.com/jqhoogland/open-dictionary/internal/provider"
)

const (
	defaultUserAgent = "open-dictionary/dev (https://github.com/jqhoogland/open-dictionary)"
	maxBodyBytes     = 16 << 20
)

// Config holds the provider settings.
type Config struct {
	Wiki          string
	BaseURL       string // defaults to https://{Wiki}.wiktionary.org
	UserAgent     string
	Timeout       time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration
}

// Provider fetches page wikitext through the MediaWiki action API.
type Provider struct {
	wiki       string
	endpoint   string
	userAgent  string
	attempts   uint
	delay      time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider for cfg.Wiki.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://" + cfg.Wiki + ".wiktionary.org"
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	return &Provider{
		wiki:       cfg.Wiki,
		endpoint:   base + "/w/api.php",
		userAgent:  ua,
		attempts:   attempts,
		delay:      cfg.RetryDelay,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "wiktionary"),
	}
}

// Wiki returns the wiki name pages are fetched from, such as "en".
func (p *Provider) Wiki() string { return p.wiki }

// statusError is a non-200 answer from the API.
type statusError struct {
	code int
}

func (e *statusError) Error() string { return fmt.Sprintf("unexpected status %d", e.code) }

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

// FetchPage fetches the current wikitext of the page titled word.
// Returns domain.ErrPageNotFound if the wiki has no such page.
func (p *Provider) FetchPage(ctx context.Context, word string) (*provider.Page, error) {
	p.log.DebugContext(ctx, "wiktionary request", slog.String("word", word))

	var body []byte
	err := retry.Do(
		func() error {
			b, err := p.get(ctx, word)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(p.attempts),
		retry.Delay(p.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.retryable()
			}
			return !errors.Is(err, domain.ErrPageNotFound) && ctx.Err() == nil
		}),
		retry.OnRetry(func(n uint, err error) {
			p.log.WarnContext(ctx, "wiktionary retry",
				slog.String("word", word),
				slog.Uint64("attempt", uint64(n+1)),
				slog.String("reason", err.Error()),
			)
		}),
	)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return nil, err
		}
		p.log.ErrorContext(ctx, "wiktionary request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("wiktionary: request failed: %w", err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("wiktionary: decode json: %w", err)
	}
	if resp.Error != nil {
		if resp.Error.Code == codeMissingTitle {
			return nil, domain.ErrPageNotFound
		}
		return nil, fmt.Errorf("wiktionary: api error %s: %s", resp.Error.Code, resp.Error.Info)
	}
	if resp.Parse == nil {
		return nil, fmt.Errorf("wiktionary: response without parse result")
	}

	page := &provider.Page{
		Wiki:       p.wiki,
		Title:      resp.Parse.Title,
		Wikitext:   resp.Parse.Wikitext,
		RevisionID: resp.Parse.RevID,
		FetchedAt:  time.Now().UTC(),
	}
	if page.Title == "" {
		page.Title = word
	}

	p.log.DebugContext(ctx, "wiktionary response",
		slog.String("word", word),
		slog.String("title", page.Title),
		slog.Int64("revision", page.RevisionID),
		slog.Int("bytes", len(page.Wikitext)),
	)
	return page, nil
}

func (p *Provider) get(ctx context.Context, word string) ([]byte, error) {
	q := url.Values{
		"action":        {"parse"},
		"page":          {word},
		"prop":          {"wikitext|revid"},
		"format":        {"json"},
		"formatversion": {"2"},
		"redirects":     {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrPageNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
