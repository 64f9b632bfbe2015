// Package reconcile merges upstream feed diffs into the persisted locale
// catalogs. The merger composes classification, temporal projection, and
// identity allocation per new record, then backfills cross-locale links and
// event references over the combined result.
package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sekaitools/promotrack/pkg/catalog"
	"github.com/sekaitools/promotrack/pkg/feed"
	"github.com/sekaitools/promotrack/pkg/logging"
	"github.com/sekaitools/promotrack/pkg/timeline"
)

// Catalogs is the persisted state one run merges into. Slices are mutated in
// place; untouched entries are never discarded or re-ordered.
type Catalogs struct {
	Cards     []catalog.Card
	JPBanners []catalog.Banner
	ENBanners []catalog.Banner
	JPEvents  []catalog.Event
	ENEvents  []catalog.Event
}

// Diff carries the new or changed upstream records for one run, per feed.
// EventCards is the full JP membership feed, not a diff; card derivation and
// sub-unit lookups need the whole relation.
type Diff struct {
	JPCards    []feed.Card
	ENCards    []feed.Card
	JPGachas   []feed.Gacha
	ENGachas   []feed.Gacha
	JPEvents   []feed.Event
	ENEvents   []feed.Event
	EventCards []feed.EventCard
}

// Merger merges feed diffs into the catalogs. Construct with NewMerger.
type Merger struct {
	projector  *timeline.Projector
	translator Translator
	logger     *zerolog.Logger
}

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// WithProjector sets the temporal projector. Mostly used by tests to pin the
// daylight-saving probe.
func WithProjector(p *timeline.Projector) MergerOption {
	return func(m *Merger) {
		m.projector = p
	}
}

// WithTranslator sets the card name translator.
func WithTranslator(t Translator) MergerOption {
	return func(m *Merger) {
		m.translator = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) MergerOption {
	return func(m *Merger) {
		m.logger = logger
	}
}

// NewMerger creates a Merger. Defaults: wall-clock projector, no-op
// translator, package default logger.
func NewMerger(opts ...MergerOption) *Merger {
	m := &Merger{
		projector:  timeline.New(),
		translator: NopTranslator(),
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run merges one cycle's diffs into the catalogs: cards first (banner and
// event derivation reads the card catalog), then banners, then events, then
// the cross-locale banner links and event references. The context gates the
// translation calls only; everything else is CPU-bound.
func (m *Merger) Run(ctx context.Context, cats *Catalogs, diff Diff) (*Result, error) {
	res := &Result{}

	if err := m.mergeCards(ctx, cats, diff, res); err != nil {
		return nil, err
	}
	m.mergeBanners(cats, diff, res)
	m.mergeEvents(cats, diff, res)

	res.BannersLinked = LinkBanners(cats.JPBanners, cats.ENBanners)

	candidates := CandidateEvents(cats.JPEvents, cats.JPBanners, cats.ENBanners)
	res.EventsLinked = LinkEvents(cats.JPBanners, candidates)
	res.EventsLinked = append(res.EventsLinked, LinkEvents(cats.ENBanners, candidates)...)

	m.logger.Info().
		Int("cards_added", len(res.CardsAdded)).
		Int("banners_added", len(res.JPBannersAdded)+len(res.ENBannersAdded)).
		Int("events_added", len(res.JPEventsAdded)+len(res.ENEventsAdded)).
		Int("banners_linked", len(res.BannersLinked)).
		Int("events_linked", len(res.EventsLinked)).
		Msg("merge complete")

	return res, nil
}

// mergeEvents inserts new JP events with a projected EN counterpart, then
// patches EN events from the authoritative EN feed. Events keep the upstream
// id as their catalog id; both locales share it.
func (m *Merger) mergeEvents(cats *Catalogs, diff Diff, res *Result) {
	existing := make(map[int]bool, len(cats.JPEvents))
	for _, e := range cats.JPEvents {
		existing[e.ID] = true
	}

	for _, rec := range diff.JPEvents {
		if existing[rec.ID] {
			continue
		}
		existing[rec.ID] = true

		jp := catalog.Event{
			ID:        rec.ID,
			Name:      rec.Name,
			Start:     rec.StartAt,
			End:       rec.AggregateAt,
			Close:     rec.ClosedAt,
			Unit:      catalog.EventUnit(rec.Unit),
			Cards:     feed.EventCardIDs(rec.ID, diff.EventCards),
			Keywords:  []string{},
			EventType: rec.EventType,
		}
		cats.JPEvents = append(cats.JPEvents, jp)
		res.JPEventsAdded = append(res.JPEventsAdded, jp.ID)

		en := jp
		en.Start = m.projector.Instant(jp.Start)
		en.End = m.projector.Instant(jp.End)
		en.Close = m.projector.Instant(jp.Close)
		en.Cards = append([]int(nil), jp.Cards...)
		en.Keywords = []string{}
		cats.ENEvents = append(cats.ENEvents, en)
		res.ENEventsAdded = append(res.ENEventsAdded, en.ID)
	}

	byID := make(map[int]int, len(cats.ENEvents))
	for i, e := range cats.ENEvents {
		byID[e.ID] = i
	}

	for _, rec := range diff.ENEvents {
		if rec.ID < enEventFloor {
			continue
		}
		i, ok := byID[rec.ID]
		if !ok {
			continue
		}

		e := &cats.ENEvents[i]
		changed := false
		if e.Name != rec.Name {
			e.Name = rec.Name
			changed = true
		}
		if e.Start != rec.StartAt {
			e.Start = rec.StartAt
			changed = true
		}
		if e.End != rec.AggregateAt {
			e.End = rec.AggregateAt
			changed = true
		}
		if e.Close != rec.ClosedAt {
			e.Close = rec.ClosedAt
			changed = true
		}
		if changed {
			res.ENEventsUpdated = append(res.ENEventsUpdated, e.ID)
		}
	}
}
