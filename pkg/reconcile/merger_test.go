package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekaitools/promotrack/pkg/catalog"
	"github.com/sekaitools/promotrack/pkg/feed"
	"github.com/sekaitools/promotrack/pkg/reconcile"
	"github.com/sekaitools/promotrack/pkg/timeline"
)

func testMerger(opts ...reconcile.MergerOption) *reconcile.Merger {
	pinned := timeline.WithClock(func() time.Time {
		return time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	})
	defaults := []reconcile.MergerOption{
		reconcile.WithProjector(timeline.New(pinned)),
	}
	return reconcile.NewMerger(append(defaults, opts...)...)
}

func ts(year int, month time.Month, day, hour int) int64 {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC).UnixMilli()
}

func limitedCard(id, characterID int) feed.Card {
	return feed.Card{
		ID:             id,
		CharacterID:    characterID,
		Attr:           "cool",
		CardRarityType: "rarity_4",
		CardSupplyID:   3,
		Prefix:         "限定カード",
		ReleaseAt:      ts(2023, time.June, 1, 7),
	}
}

func pickups(cardIDs ...int) []feed.Pickup {
	ps := make([]feed.Pickup, len(cardIDs))
	for i, id := range cardIDs {
		ps[i] = feed.Pickup{CardID: id}
	}
	return ps
}

func TestRunEndToEndLinksOnSecondCycle(t *testing.T) {
	m := testMerger()
	cats := &reconcile.Catalogs{}

	first := reconcile.Diff{
		JPCards: []feed.Card{limitedCard(1, 13), limitedCard(2, 14), limitedCard(3, 15)},
		JPGachas: []feed.Gacha{{
			ID:           900,
			Name:         "ワンダーショウタイムガチャ",
			StartAt:      ts(2023, time.June, 1, 7),
			EndAt:        ts(2023, time.June, 11, 7),
			GachaPickups: pickups(1, 2, 3),
			GachaDetails: pickups(1, 2, 3),
		}},
	}

	res, err := m.Run(context.Background(), cats, first)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, res.CardsAdded)
	assert.Equal(t, []int{1}, res.JPBannersAdded)
	assert.Equal(t, []int{1}, res.ENBannersAdded)
	assert.Empty(t, res.BannersLinked)

	require.Len(t, cats.JPBanners, 1)
	jp := cats.JPBanners[0]
	assert.Equal(t, 1, jp.ID)
	assert.Equal(t, 900, jp.SekaiID)
	assert.Equal(t, catalog.BannerLimitedEvent, jp.BannerType)
	assert.Equal(t, []int{1, 2, 3}, jp.Cards)
	assert.Equal(t, []int{13, 14, 15}, jp.Characters)
	assert.Zero(t, jp.ENID, "link must wait for the EN feed")

	require.Len(t, cats.ENBanners, 1)
	en := cats.ENBanners[0]
	assert.Equal(t, 1, en.ID)
	assert.Equal(t, catalog.TypeEstimation, en.Type)
	assert.Equal(t, ts(2024, time.June, 2, 0), en.Start)
	assert.Equal(t, ts(2024, time.June, 12, 0), en.End)

	// A later cycle's EN feed supplies the real record for the same
	// upstream id; the estimate is confirmed and the link forms.
	second := reconcile.Diff{
		ENGachas: []feed.Gacha{{
			ID:           900,
			Name:         "Wonder Showtime Gacha",
			StartAt:      ts(2024, time.June, 2, 0),
			EndAt:        ts(2024, time.June, 12, 0),
			GachaPickups: pickups(1, 2, 3),
			GachaDetails: pickups(1, 2, 3),
		}},
	}

	res, err = m.Run(context.Background(), cats, second)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, res.ENBannersUpdated)
	assert.Equal(t, []int{1}, res.BannersLinked)

	assert.Equal(t, 1, cats.JPBanners[0].ENID)
	assert.Equal(t, "Wonder Showtime Gacha", cats.ENBanners[0].Name)
	assert.Empty(t, cats.ENBanners[0].Type)
	require.Len(t, cats.ENBanners, 1, "EN feed must patch, not duplicate")
}

func TestRunGroupsBirthdayGachas(t *testing.T) {
	m := testMerger()
	cats := &reconcile.Catalogs{
		ENBanners: []catalog.Banner{{
			ID:         1,
			BannerType: catalog.BannerBirthday,
			Name:       "Kanade Birthday 2023",
			Cards:      []int{10, 11},
		}},
	}

	bday := feed.Card{
		ID:             12,
		CharacterID:    17,
		Attr:           "mysterious",
		CardRarityType: "rarity_birthday",
		CardSupplyID:   2,
		Prefix:         "宵崎奏の誕生日2024",
		ReleaseAt:      ts(2024, time.February, 10, 7),
	}

	diff := reconcile.Diff{
		JPCards: []feed.Card{bday},
		JPGachas: []feed.Gacha{
			{
				ID:           910,
				Name:         "[宵崎奏の誕生日2024]HAPPY BIRTHDAYガチャ",
				StartAt:      ts(2024, time.February, 10, 7),
				EndAt:        ts(2024, time.February, 13, 7),
				GachaPickups: pickups(12),
			},
			{
				ID:           911,
				Name:         "[宵崎奏の誕生日2024]HAPPY BIRTHDAYガチャ",
				StartAt:      ts(2024, time.February, 10, 7),
				EndAt:        ts(2024, time.February, 13, 7),
				GachaPickups: pickups(10),
			},
		},
	}

	res, err := m.Run(context.Background(), cats, diff)
	require.NoError(t, err)

	// Both gachas collapse into one celebration banner.
	assert.Equal(t, []int{1}, res.JPBannersAdded)
	require.Len(t, cats.JPBanners, 1)

	jp := cats.JPBanners[0]
	assert.Equal(t, 910, jp.SekaiID)
	assert.Equal(t, catalog.BannerBirthday, jp.BannerType)
	assert.Equal(t, []int{12, 10}, jp.Cards)
	assert.Empty(t, jp.GachaDetails)

	// The counterpart reuses last year's EN name with the year advanced.
	require.Len(t, cats.ENBanners, 2)
	assert.Equal(t, "Kanade Birthday 2024", cats.ENBanners[1].Name)

	// The birthday card's provisional name advances the year instead of
	// going through translation.
	require.Len(t, cats.Cards, 1)
	assert.Equal(t, "宵崎奏の誕生日2025", cats.Cards[0].Name)
	assert.Equal(t, 5, cats.Cards[0].Rarity)
	assert.Equal(t, "Yoisaki Kanade", cats.Cards[0].Character)
	assert.Equal(t, "Nightcord at 25:00", cats.Cards[0].Unit)
}

func TestRunSynthesizesRerunEstimate(t *testing.T) {
	m := testMerger()
	cats := &reconcile.Catalogs{
		Cards: []catalog.Card{
			{ID: 30, Rarity: 4, CardType: "limited"},
			{ID: 31, Rarity: 4, CardType: "limited"},
		},
		ENBanners: []catalog.Banner{{
			ID:         1,
			BannerType: catalog.BannerLimitedEvent,
			Name:       "Magical Showtime",
			Cards:      []int{30, 31},
		}},
	}

	diff := reconcile.Diff{
		JPGachas: []feed.Gacha{{
			ID:           920,
			Name:         "[復刻]ワンダーマジカルショウタイムガチャ",
			StartAt:      ts(2023, time.June, 10, 4),
			EndAt:        ts(2023, time.June, 20, 4),
			GachaPickups: pickups(30, 31),
		}},
	}

	res, err := m.Run(context.Background(), cats, diff)
	require.NoError(t, err)
	require.Len(t, cats.ENBanners, 2)
	assert.Equal(t, []int{2}, res.ENBannersAdded)

	en := cats.ENBanners[1]
	assert.Equal(t, catalog.BannerLimitedRerun, en.BannerType)
	assert.Equal(t, catalog.TypeRerunEstimation, en.Type)
	assert.Equal(t, "[Rerun] Magical Showtime", en.Name)

	// Month-end anchor: 2024-06-30 12:00 UTC+8 is 04:00 UTC.
	assert.Equal(t, ts(2024, time.June, 30, 4), en.Start)
	assert.Equal(t, en.Start, en.End)
	assert.Equal(t, []int64{ts(2024, time.June, 5, 4), ts(2024, time.June, 25, 4)}, en.Rerun)
}

func TestRunMergesEventsAndLinksBanners(t *testing.T) {
	m := testMerger()
	cats := &reconcile.Catalogs{}

	diff := reconcile.Diff{
		JPCards: []feed.Card{limitedCard(1, 13), limitedCard(2, 14), limitedCard(3, 15)},
		JPGachas: []feed.Gacha{{
			ID:           930,
			Name:         "彩りガチャ",
			StartAt:      ts(2023, time.June, 1, 7),
			EndAt:        ts(2023, time.June, 11, 7),
			GachaPickups: pickups(1, 2, 3),
		}},
		JPEvents: []feed.Event{{
			ID:          200,
			Unit:        "school_refusal",
			EventType:   "marathon",
			Name:        "イベント名",
			StartAt:     ts(2023, time.June, 1, 6),
			AggregateAt: ts(2023, time.June, 9, 12),
			ClosedAt:    ts(2023, time.June, 15, 6),
		}},
		ENEvents: []feed.Event{{
			ID:          200,
			Name:        "Event Name",
			StartAt:     ts(2024, time.June, 1, 23),
			AggregateAt: ts(2024, time.June, 9, 23),
			ClosedAt:    ts(2024, time.June, 15, 23),
		}},
		EventCards: []feed.EventCard{
			{EventID: 200, CardID: 1},
			{EventID: 200, CardID: 2},
			{EventID: 200, CardID: 3},
		},
	}

	res, err := m.Run(context.Background(), cats, diff)
	require.NoError(t, err)

	assert.Equal(t, []int{200}, res.JPEventsAdded)
	assert.Equal(t, []int{200}, res.ENEventsAdded)
	assert.Equal(t, []int{200}, res.ENEventsUpdated)

	require.Len(t, cats.JPEvents, 1)
	assert.Equal(t, "n25", cats.JPEvents[0].Unit)
	assert.Equal(t, []int{1, 2, 3}, cats.JPEvents[0].Cards)

	// EN counterpart timing is a normal projection, then the EN feed's
	// authoritative record patches it in the same cycle.
	require.Len(t, cats.ENEvents, 1)
	assert.Equal(t, "Event Name", cats.ENEvents[0].Name)
	assert.Equal(t, ts(2024, time.June, 1, 23), cats.ENEvents[0].Start)

	// Both the JP banner and its EN counterpart link to the event by
	// card overlap.
	require.Len(t, cats.JPBanners, 1)
	require.Len(t, cats.ENBanners, 1)
	assert.Equal(t, 200, cats.JPBanners[0].EventID)
	assert.Equal(t, 200, cats.ENBanners[0].EventID)
	assert.Len(t, res.EventsLinked, 2)
}

func TestRunENInsertAndSkips(t *testing.T) {
	m := testMerger()
	cats := &reconcile.Catalogs{
		Cards: []catalog.Card{
			{ID: 40, Rarity: 4, CardType: "permanent", Character: "Hatsune Miku"},
			{ID: 41, Rarity: 3, CardType: "permanent"},
		},
	}

	diff := reconcile.Diff{
		ENGachas: []feed.Gacha{
			{ID: 560, Name: "Too Old Gacha", GachaPickups: pickups(40)},
			{ID: 601, Name: "3★ Member Free Gacha", GachaPickups: pickups(40)},
			{
				ID:           602,
				Name:         "Colorful Gacha",
				StartAt:      ts(2024, time.June, 1, 0),
				EndAt:        ts(2024, time.June, 11, 0),
				GachaPickups: pickups(40, 41),
				GachaDetails: pickups(40, 41),
			},
		},
	}

	res, err := m.Run(context.Background(), cats, diff)
	require.NoError(t, err)

	require.Len(t, cats.ENBanners, 1)
	assert.Equal(t, []int{1}, res.ENBannersAdded)

	en := cats.ENBanners[0]
	assert.Equal(t, 602, en.SekaiID)
	assert.Equal(t, "Colorful Gacha", en.Name)
	assert.Equal(t, []int{40, 41}, en.Cards)
	assert.Equal(t, []int{21}, en.Characters)
	// Only the rarity-4 detail card survives.
	assert.Equal(t, []int{40}, en.GachaDetails)
}

type fakeTranslator struct {
	text string
}

func (f fakeTranslator) Translate(_ context.Context, _ string) (string, error) {
	return f.text, nil
}

func TestRunTranslatesNewCardNames(t *testing.T) {
	m := testMerger(reconcile.WithTranslator(fakeTranslator{text: "Shining Moment"}))
	cats := &reconcile.Catalogs{}

	diff := reconcile.Diff{JPCards: []feed.Card{limitedCard(1, 21)}}

	_, err := m.Run(context.Background(), cats, diff)
	require.NoError(t, err)

	require.Len(t, cats.Cards, 1)
	card := cats.Cards[0]
	assert.Equal(t, "Shining Moment", card.Name)
	assert.Equal(t, "限定カード", card.JPName)
	assert.Equal(t, "Cool", card.Attribute)
	assert.Equal(t, "limited", card.CardType)
	assert.Equal(t, "Hatsune Miku", card.Character)
	assert.Equal(t, "Virtual Singers", card.Unit)
	// Projected EN release: one year on, standard-time offset.
	assert.Equal(t, ts(2024, time.June, 2, 0), card.ENReleased)
}

func TestRunResolvesSubUnitAcrossCycles(t *testing.T) {
	m := testMerger()
	cats := &reconcile.Catalogs{
		JPEvents: []catalog.Event{{
			ID:   200,
			Name: "夜に溶ける",
			Unit: "n25",
		}},
	}

	diff := reconcile.Diff{
		JPCards: []feed.Card{limitedCard(50, 21), limitedCard(51, 22)},
		JPEvents: []feed.Event{{
			ID:        201,
			Unit:      "street",
			EventType: "marathon",
			Name:      "新しいイベント",
			StartAt:   ts(2023, time.June, 1, 6),
		}},
		EventCards: []feed.EventCard{
			{EventID: 200, CardID: 50},
			{EventID: 201, CardID: 51},
		},
	}

	_, err := m.Run(context.Background(), cats, diff)
	require.NoError(t, err)
	require.Len(t, cats.Cards, 2)

	// Introducing event persisted in an earlier cycle.
	assert.Equal(t, "Virtual Singers", cats.Cards[0].Unit)
	assert.Equal(t, "Nightcord at 25:00", cats.Cards[0].SubUnit)

	// Introducing event arriving in the same cycle's diff.
	assert.Equal(t, "Vivid BAD SQUAD", cats.Cards[1].SubUnit)
}
