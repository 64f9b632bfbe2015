// Package sources fetches the upstream master-data feeds for each locale.
// Both locales publish the same file set on static mirrors; a fetch is a
// plain GET decoded straight into the projected record types.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sekaitools/promotrack/pkg/errors"
	"github.com/sekaitools/promotrack/pkg/feed"
	"github.com/sekaitools/promotrack/pkg/logging"
)

// DefaultHTTPTimeout bounds one feed download.
const DefaultHTTPTimeout = 30 * time.Second

// maxFeedBytes caps a feed response; the largest upstream file is a few
// tens of megabytes.
const maxFeedBytes = 256 << 20

// Mirror base URLs per locale.
const (
	jpBaseURL = "https://raw.githubusercontent.com/Sekai-World/sekai-master-db-diff/refs/heads/main"
	enBaseURL = "https://raw.githubusercontent.com/Sekai-World/sekai-master-db-en-diff/refs/heads/main"
)

// Client downloads feed files from the locale mirrors.
type Client struct {
	http    *http.Client
	baseURL map[feed.Locale]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithBaseURL overrides the mirror base URL for one locale. Tests point this
// at a local server.
func WithBaseURL(locale feed.Locale, baseURL string) Option {
	return func(c *Client) {
		c.baseURL[locale] = baseURL
	}
}

// New creates a feed client.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: DefaultHTTPTimeout},
		baseURL: map[feed.Locale]string{
			feed.LocaleJP: jpBaseURL,
			feed.LocaleEN: enBaseURL,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the feed file URL for a locale and kind.
func (c *Client) URL(locale feed.Locale, kind feed.Kind) string {
	return fmt.Sprintf("%s/%s.json", c.baseURL[locale], kind)
}

// fetch downloads one feed file and returns its raw bytes.
func (c *Client) fetch(ctx context.Context, locale feed.Locale, kind feed.Kind) ([]byte, error) {
	url := c.URL(locale, kind)
	ctx = logging.WithLocale(ctx, string(locale))
	ctx = logging.WithFeed(ctx, string(kind))
	logger := logging.Ctx(ctx)

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("fetch", "feed", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.FeedError{
			Feed:    string(kind),
			Locale:  string(locale),
			Message: "request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewFeedError(string(locale), string(kind), resp.StatusCode, "unexpected status")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, &errors.FeedError{
			Feed:    string(kind),
			Locale:  string(locale),
			Message: "reading response body",
			Err:     err,
		}
	}

	logger.Debug().
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("feed fetched")

	return data, nil
}

// Cards fetches and decodes one locale's card feed.
func (c *Client) Cards(ctx context.Context, locale feed.Locale) ([]feed.Card, error) {
	data, err := c.fetch(ctx, locale, feed.KindCards)
	if err != nil {
		return nil, err
	}
	return feed.Decode[feed.Card](data, c.URL(locale, feed.KindCards))
}

// Gachas fetches and decodes one locale's gacha feed.
func (c *Client) Gachas(ctx context.Context, locale feed.Locale) ([]feed.Gacha, error) {
	data, err := c.fetch(ctx, locale, feed.KindGachas)
	if err != nil {
		return nil, err
	}
	return feed.Decode[feed.Gacha](data, c.URL(locale, feed.KindGachas))
}

// Events fetches and decodes one locale's event feed.
func (c *Client) Events(ctx context.Context, locale feed.Locale) ([]feed.Event, error) {
	data, err := c.fetch(ctx, locale, feed.KindEvents)
	if err != nil {
		return nil, err
	}
	return feed.Decode[feed.Event](data, c.URL(locale, feed.KindEvents))
}

// EventCards fetches and decodes the JP event-card membership feed.
func (c *Client) EventCards(ctx context.Context) ([]feed.EventCard, error) {
	data, err := c.fetch(ctx, feed.LocaleJP, feed.KindEventCards)
	if err != nil {
		return nil, err
	}
	return feed.Decode[feed.EventCard](data, c.URL(feed.LocaleJP, feed.KindEventCards))
}
