// Package promotrack maintains locale-aligned catalogs of a live game's
// promotional banners, events, and cards. Each sync cycle fetches the
// upstream master-data feeds for both regions, diffs them against the last
// processed snapshots, merges the new records into the persisted catalogs,
// and backfills the cross-locale and banner-to-event links that only become
// resolvable once both sides have caught up.
package promotrack

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sekaitools/promotrack/internal/sources"
	"github.com/sekaitools/promotrack/internal/storage"
	"github.com/sekaitools/promotrack/pkg/errors"
	"github.com/sekaitools/promotrack/pkg/reconcile"
)

// Tracker runs sync cycles against one data directory.
type Tracker interface {
	// Sync executes one full cycle: fetch, diff, merge, persist. A feed
	// that cannot be fetched or parsed is skipped for the cycle and its
	// snapshot left untouched; the remaining feeds still process.
	Sync(ctx context.Context, opts ...SyncOption) (*Result, error)
}

// tracker is the internal implementation of the Tracker interface.
type tracker struct {
	store  *storage.Store
	feeds  *sources.Client
	merger *reconcile.Merger
	logger *zerolog.Logger
}

// New creates a Tracker with the given options.
func New(opts ...Option) (Tracker, error) {
	c := newConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.WrapResource("configure", "tracker", "", err)
		}
	}

	feeds := c.feeds
	if feeds == nil {
		var srcOpts []sources.Option
		if c.httpClient != nil {
			srcOpts = append(srcOpts, sources.WithHTTPClient(c.httpClient))
		}
		feeds = sources.New(srcOpts...)
	}

	return &tracker{
		store: storage.New(c.dataDir),
		feeds: feeds,
		merger: reconcile.NewMerger(
			reconcile.WithProjector(c.projector),
			reconcile.WithTranslator(c.translator),
			reconcile.WithLogger(c.logger),
		),
		logger: c.logger,
	}, nil
}
