package promotrack

import (
	"context"

	"github.com/sekaitools/promotrack/internal/storage"
	"github.com/sekaitools/promotrack/pkg/catalog"
	"github.com/sekaitools/promotrack/pkg/differ"
	"github.com/sekaitools/promotrack/pkg/feed"
	"github.com/sekaitools/promotrack/pkg/logging"
	"github.com/sekaitools/promotrack/pkg/reconcile"
)

// Sync executes one cycle: load the persisted catalogs, fetch and diff every
// selected feed, merge the diffs, then write catalogs and replace snapshots.
// Snapshots are only replaced after the catalogs land, so a failed write
// means the next cycle re-processes the same records instead of losing them.
func (t *tracker) Sync(ctx context.Context, opts ...SyncOption) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := NewSyncOptions(opts...)

	ctx = logging.WithLogger(ctx, t.logger)
	ctx = logging.WithOperation(ctx, "sync")

	cats, err := t.loadCatalogs()
	if err != nil {
		return nil, err
	}

	c := &collector{tracker: t}
	for _, locale := range options.Locales {
		switch locale {
		case feed.LocaleJP:
			c.collectJP(ctx)
		case feed.LocaleEN:
			c.collectEN(ctx)
		}
	}

	merge, err := t.merger.Run(ctx, cats, c.diff)
	if err != nil {
		return nil, err
	}

	res := &Result{Merge: merge, DryRun: options.DryRun, FeedErrors: c.errs}
	if options.DryRun {
		t.logger.Info().
			Int("added", merge.Added()).
			Int("updated", merge.Updated()).
			Int("linked", len(merge.BannersLinked)+len(merge.EventsLinked)).
			Msg("dry run, nothing written")
		return res, nil
	}

	written, err := t.saveCatalogs(cats)
	if err != nil {
		return nil, err
	}
	res.CatalogsWritten = written

	for _, snap := range c.snapshots {
		if err := snap(); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// collector accumulates per-feed diffs and the snapshot writes to run once
// the merged catalogs have been persisted. A feed that fails to fetch or
// whose snapshot fails to load contributes nothing and keeps its old
// snapshot, so its records surface again next cycle.
type collector struct {
	tracker   *tracker
	diff      reconcile.Diff
	snapshots []func() error
	errs      []error
}

func (c *collector) collectJP(ctx context.Context) {
	t := c.tracker
	collectFeed(c, feed.LocaleJP, feed.KindCards, differ.ModeAppendOnly,
		func() ([]feed.Card, error) { return t.feeds.Cards(ctx, feed.LocaleJP) },
		func(d []feed.Card) { c.diff.JPCards = d })
	collectFeed(c, feed.LocaleJP, feed.KindGachas, differ.ModeContent,
		func() ([]feed.Gacha, error) { return t.feeds.Gachas(ctx, feed.LocaleJP) },
		func(d []feed.Gacha) { c.diff.JPGachas = d })
	collectFeed(c, feed.LocaleJP, feed.KindEvents, differ.ModeContent,
		func() ([]feed.Event, error) { return t.feeds.Events(ctx, feed.LocaleJP) },
		func(d []feed.Event) { c.diff.JPEvents = d })

	// The membership feed is consumed whole, not diffed; card derivation
	// needs the full relation every cycle.
	memberships, err := t.feeds.EventCards(ctx)
	if err != nil {
		c.skip(feed.LocaleJP, feed.KindEventCards, err)
		return
	}
	c.diff.EventCards = memberships
}

func (c *collector) collectEN(ctx context.Context) {
	t := c.tracker
	collectFeed(c, feed.LocaleEN, feed.KindCards, differ.ModeAppendOnly,
		func() ([]feed.Card, error) { return t.feeds.Cards(ctx, feed.LocaleEN) },
		func(d []feed.Card) { c.diff.ENCards = d })
	collectFeed(c, feed.LocaleEN, feed.KindGachas, differ.ModeContent,
		func() ([]feed.Gacha, error) { return t.feeds.Gachas(ctx, feed.LocaleEN) },
		func(d []feed.Gacha) { c.diff.ENGachas = d })
	collectFeed(c, feed.LocaleEN, feed.KindEvents, differ.ModeContent,
		func() ([]feed.Event, error) { return t.feeds.Events(ctx, feed.LocaleEN) },
		func(d []feed.Event) { c.diff.ENEvents = d })
}

func (c *collector) skip(locale feed.Locale, kind feed.Kind, err error) {
	c.errs = append(c.errs, err)
	c.tracker.logger.Warn().
		Err(err).
		Str("locale", string(locale)).
		Str("feed", string(kind)).
		Msg("feed skipped this cycle")
}

// collectFeed fetches one feed, diffs it against its snapshot, hands the
// fresh records to sink, and queues the snapshot replacement.
func collectFeed[T differ.Keyed](c *collector, locale feed.Locale, kind feed.Kind,
	mode differ.Mode, fetch func() ([]T, error), sink func([]T)) {
	current, err := fetch()
	if err != nil {
		c.skip(locale, kind, err)
		return
	}

	path := c.tracker.store.SnapshotPath(locale, kind)
	previous, err := storage.Load[T](path)
	if err != nil {
		c.skip(locale, kind, err)
		return
	}

	sink(differ.Records(previous, current, mode))
	c.snapshots = append(c.snapshots, func() error {
		_, err := storage.Save(path, current)
		return err
	})
}

func (t *tracker) loadCatalogs() (*reconcile.Catalogs, error) {
	cards, err := storage.Load[catalog.Card](t.store.CatalogPath(storage.CatalogCards))
	if err != nil {
		return nil, err
	}
	jpBanners, err := storage.Load[catalog.Banner](t.store.CatalogPath(storage.CatalogJPBanners))
	if err != nil {
		return nil, err
	}
	enBanners, err := storage.Load[catalog.Banner](t.store.CatalogPath(storage.CatalogENBanners))
	if err != nil {
		return nil, err
	}
	jpEvents, err := storage.Load[catalog.Event](t.store.CatalogPath(storage.CatalogJPEvents))
	if err != nil {
		return nil, err
	}
	enEvents, err := storage.Load[catalog.Event](t.store.CatalogPath(storage.CatalogENEvents))
	if err != nil {
		return nil, err
	}

	return &reconcile.Catalogs{
		Cards:     cards,
		JPBanners: jpBanners,
		ENBanners: enBanners,
		JPEvents:  jpEvents,
		ENEvents:  enEvents,
	}, nil
}

// saveCatalogs writes each catalog and returns the paths whose content
// actually changed.
func (t *tracker) saveCatalogs(cats *reconcile.Catalogs) ([]string, error) {
	var written []string

	save := func(name string, do func(path string) (bool, error)) error {
		path := t.store.CatalogPath(name)
		changed, err := do(path)
		if err != nil {
			return err
		}
		if changed {
			written = append(written, path)
		}
		return nil
	}

	if err := save(storage.CatalogCards, func(p string) (bool, error) {
		return storage.Save(p, cats.Cards)
	}); err != nil {
		return written, err
	}
	if err := save(storage.CatalogJPBanners, func(p string) (bool, error) {
		return storage.Save(p, cats.JPBanners)
	}); err != nil {
		return written, err
	}
	if err := save(storage.CatalogENBanners, func(p string) (bool, error) {
		return storage.Save(p, cats.ENBanners)
	}); err != nil {
		return written, err
	}
	if err := save(storage.CatalogJPEvents, func(p string) (bool, error) {
		return storage.Save(p, cats.JPEvents)
	}); err != nil {
		return written, err
	}
	if err := save(storage.CatalogENEvents, func(p string) (bool, error) {
		return storage.Save(p, cats.ENEvents)
	}); err != nil {
		return written, err
	}

	return written, nil
}
