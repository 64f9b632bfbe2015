package promotrack

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sekaitools/promotrack/internal/sources"
	"github.com/sekaitools/promotrack/pkg/errors"
	"github.com/sekaitools/promotrack/pkg/feed"
	"github.com/sekaitools/promotrack/pkg/logging"
	"github.com/sekaitools/promotrack/pkg/reconcile"
	"github.com/sekaitools/promotrack/pkg/timeline"
)

// DefaultDataDir is where catalogs and snapshots live unless overridden.
const DefaultDataDir = "data"

// config collects constructor options for a Tracker.
type config struct {
	dataDir    string
	httpClient *http.Client
	feeds      *sources.Client
	translator reconcile.Translator
	projector  *timeline.Projector
	logger     *zerolog.Logger
}

func newConfig() *config {
	return &config{
		dataDir:    DefaultDataDir,
		translator: reconcile.NopTranslator(),
		projector:  timeline.New(),
		logger:     logging.Default(),
	}
}

// Option configures a Tracker at construction time.
type Option func(*config) error

// WithDataDir sets the directory holding catalogs and feed snapshots.
func WithDataDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("dataDir", dir, "must not be empty")
		}
		c.dataDir = dir
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for feed downloads.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) error {
		c.httpClient = httpClient
		return nil
	}
}

// WithFeedClient replaces the feed client entirely. Tests use this to point
// the tracker at local servers.
func WithFeedClient(feeds *sources.Client) Option {
	return func(c *config) error {
		c.feeds = feeds
		return nil
	}
}

// WithTranslator sets the card name translator used for newly tracked cards.
func WithTranslator(t reconcile.Translator) Option {
	return func(c *config) error {
		c.translator = t
		return nil
	}
}

// WithClock pins the wall clock that drives the daylight-saving probe for
// timestamp projection.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		c.projector = timeline.New(timeline.WithClock(now))
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// SyncOptions collects per-cycle options.
type SyncOptions struct {
	// DryRun merges in memory and reports the result without writing
	// catalogs or replacing snapshots.
	DryRun bool

	// Locales restricts which upstream regions are fetched this cycle.
	Locales []feed.Locale
}

// SyncOption configures one Sync call.
type SyncOption func(*SyncOptions)

// NewSyncOptions applies options over the defaults: both locales, real run.
func NewSyncOptions(opts ...SyncOption) *SyncOptions {
	o := &SyncOptions{
		Locales: []feed.Locale{feed.LocaleJP, feed.LocaleEN},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDryRun toggles dry-run mode for one cycle.
func WithDryRun(enabled bool) SyncOption {
	return func(o *SyncOptions) {
		o.DryRun = enabled
	}
}

// WithLocales restricts the cycle to the given locales.
func WithLocales(locales ...feed.Locale) SyncOption {
	return func(o *SyncOptions) {
		if len(locales) > 0 {
			o.Locales = locales
		}
	}
}
