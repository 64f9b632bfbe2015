package reconcile

import (
	"slices"
	"strings"

	"github.com/sekaitools/promotrack/pkg/catalog"
	"github.com/sekaitools/promotrack/pkg/classify"
	"github.com/sekaitools/promotrack/pkg/feed"
)

// Tracked-record floors. Earlier upstream records predate the catalog and
// are never merged.
const (
	jpGachaFloor = 800 // inclusive
	enGachaFloor = 570 // exclusive
	enEventFloor = 140 // inclusive
)

// mergeBanners inserts new JP banners with synthesized EN counterparts, then
// applies the authoritative EN gacha feed as update-or-insert.
func (m *Merger) mergeBanners(cats *Catalogs, diff Diff, res *Result) {
	cardIdx := catalog.NewCardIndex(cats.Cards)

	if len(diff.JPGachas) > 0 {
		m.mergeJPBanners(cats, diff.JPGachas, cardIdx, res)
	}
	if len(diff.ENGachas) > 0 {
		m.mergeENBanners(cats, diff.ENGachas, cardIdx, res)
	}
}

// mergeJPBanners projects new JP gachas into the JP catalog, one banner per
// gacha after birthday grouping, and synthesizes an EN counterpart for every
// type except Collab.
func (m *Merger) mergeJPBanners(cats *Catalogs, gachas []feed.Gacha, cardIdx catalog.CardIndex, res *Result) {
	jpAlloc := catalog.NewAllocator(cats.JPBanners)
	enAlloc := catalog.NewAllocator(cats.ENBanners)

	tracked := make(map[int]bool, len(cats.JPBanners))
	for _, b := range cats.JPBanners {
		tracked[b.SekaiID] = true
	}

	for _, g := range groupBirthdayGachas(gachas) {
		if g.ID < jpGachaFloor || tracked[g.ID] {
			continue
		}
		tracked[g.ID] = true

		cardIDs := g.PickupCardIDs()
		bannerType := classify.Banner(g.Name, cardIDs, cardIdx)

		banner := catalog.Banner{
			ID:           jpAlloc.Next(),
			SekaiID:      g.ID,
			Name:         g.Name,
			Start:        g.StartAt,
			End:          g.EndAt,
			Cards:        cardIDs,
			Characters:   catalog.CharacterIDs(cardIDs, cardIdx),
			Keywords:     []string{},
			BannerType:   bannerType,
			GachaDetails: rarityFourDetails(g.DetailCardIDs(), cardIdx, bannerType),
		}
		cats.JPBanners = append(cats.JPBanners, banner)
		res.JPBannersAdded = append(res.JPBannersAdded, banner.ID)

		if en, ok := m.counterpart(banner, cats, enAlloc); ok {
			cats.ENBanners = append(cats.ENBanners, en)
			res.ENBannersAdded = append(res.ENBannersAdded, en.ID)
		}
	}
}

// counterpart synthesizes the EN banner for a newly inserted JP banner.
// Collab banners stay JP-only. Birthday banners reuse the previous year's EN
// name; reruns carry estimated timing, an expected window, and a "[Rerun] "
// name looked up from the original run.
func (m *Merger) counterpart(jp catalog.Banner, cats *Catalogs, alloc *catalog.Allocator) (catalog.Banner, bool) {
	if jp.BannerType == catalog.BannerCollab {
		return catalog.Banner{}, false
	}

	en := catalog.Banner{
		ID:           alloc.Next(),
		SekaiID:      jp.SekaiID,
		Name:         jp.Name,
		Cards:        slices.Clone(jp.Cards),
		Characters:   slices.Clone(jp.Characters),
		Keywords:     []string{},
		BannerType:   jp.BannerType,
		GachaDetails: slices.Clone(jp.GachaDetails),
	}

	switch jp.BannerType {
	case catalog.BannerBirthday:
		if name := previousBirthdayName(jp.Cards, cats.ENBanners); name != "" {
			en.Name = name
		}
		en.Start, en.End = m.projector.Normal(jp.Start, jp.End)
		en.Type = catalog.TypeEstimation

	case catalog.BannerLimitedRerun:
		start, end, winStart, winEnd := m.projector.Rerun(jp.Start, jp.End)
		en.Start, en.End = start, end
		en.Type = catalog.TypeRerunEstimation
		en.Rerun = []int64{winStart, winEnd}
		if name := originalLimitedName(jp.Cards, cats.ENBanners, cats.JPBanners); name != "" {
			en.Name = name
		}

	default:
		en.Start, en.End = m.projector.Normal(jp.Start, jp.End)
		en.Type = catalog.TypeEstimation
	}

	return en, true
}

// mergeENBanners applies the EN gacha feed: patch the banner sharing the
// upstream id when one exists, insert otherwise. Free 3-star banners are
// ignored, and name patches see through rerun prefixes so an estimated
// "[Rerun] " name is not clobbered by an identical upstream name.
func (m *Merger) mergeENBanners(cats *Catalogs, gachas []feed.Gacha, cardIdx catalog.CardIndex, res *Result) {
	alloc := catalog.NewAllocator(cats.ENBanners)

	bySekai := make(map[int]int, len(cats.ENBanners))
	for i, b := range cats.ENBanners {
		if _, ok := bySekai[b.SekaiID]; !ok {
			bySekai[b.SekaiID] = i
		}
	}

	processed := make(map[int]bool)
	for _, g := range gachas {
		if g.ID <= enGachaFloor || processed[g.ID] {
			continue
		}
		if strings.Contains(g.Name, "3★") {
			continue
		}
		processed[g.ID] = true

		cardIDs := g.PickupCardIDs()
		bannerType := classify.Banner(g.Name, cardIDs, cardIdx)
		details := rarityFourDetails(g.DetailCardIDs(), cardIdx, bannerType)

		if i, ok := bySekai[g.ID]; ok {
			b := &cats.ENBanners[i]
			changed := false
			if normalizeRerunName(b.Name) != normalizeRerunName(g.Name) {
				b.Name = g.Name
				changed = true
			}
			if b.Start != g.StartAt {
				b.Start = g.StartAt
				changed = true
			}
			if b.End != g.EndAt {
				b.End = g.EndAt
				changed = true
			}
			if !slices.Equal(b.GachaDetails, details) {
				b.GachaDetails = details
				changed = true
			}
			if b.Estimated() {
				// Upstream has the real record now; the timing is no
				// longer an estimate.
				b.Type = ""
				b.Rerun = nil
				changed = true
			}
			if changed {
				res.ENBannersUpdated = append(res.ENBannersUpdated, b.ID)
			}
			continue
		}

		banner := catalog.Banner{
			ID:           alloc.Next(),
			SekaiID:      g.ID,
			Name:         g.Name,
			Start:        g.StartAt,
			End:          g.EndAt,
			Cards:        cardIDs,
			Characters:   catalog.CharacterIDs(cardIDs, cardIdx),
			Keywords:     []string{},
			BannerType:   bannerType,
			GachaDetails: details,
		}
		cats.ENBanners = append(cats.ENBanners, banner)
		bySekai[g.ID] = len(cats.ENBanners) - 1
		res.ENBannersAdded = append(res.ENBannersAdded, banner.ID)
	}
}

// rarityFourDetails keeps the high-rarity card ids from a gacha's detail
// list. Birthday banners carry none; collab cards count regardless of rarity.
func rarityFourDetails(detailIDs []int, cards catalog.CardIndex, bannerType catalog.BannerType) []int {
	if bannerType == catalog.BannerBirthday {
		return []int{}
	}

	ids := []int{}
	for _, id := range detailIDs {
		card, ok := cards[id]
		if !ok {
			continue
		}
		if card.Rarity == 4 || card.CardType == "limited_collab" {
			ids = append(ids, id)
		}
	}
	return ids
}

// groupBirthdayGachas collapses the per-member birthday gachas that share one
// celebration into a single gacha carrying the union of their pickups. The
// lowest-id gacha of each group survives; non-birthday gachas pass through in
// input order after the groups.
func groupBirthdayGachas(gachas []feed.Gacha) []feed.Gacha {
	var order []string
	groups := make(map[string][]feed.Gacha)

	for _, g := range gachas {
		if g.ID < jpGachaFloor || !isBirthdayName(g.Name) {
			continue
		}
		jpName := bracketedName(g.Name)
		if jpName == "" {
			continue
		}
		if _, ok := groups[jpName]; !ok {
			order = append(order, jpName)
		}
		groups[jpName] = append(groups[jpName], g)
	}

	var result []feed.Gacha
	grouped := make(map[int]bool)

	for _, jpName := range order {
		members := groups[jpName]
		slices.SortFunc(members, func(a, b feed.Gacha) int { return a.ID - b.ID })

		combined := members[0]
		var pickups []feed.Pickup
		for _, g := range members {
			grouped[g.ID] = true
			pickups = append(pickups, g.GachaPickups...)
		}
		combined.GachaPickups = pickups
		result = append(result, combined)
	}

	for _, g := range gachas {
		if g.ID >= jpGachaFloor && !grouped[g.ID] {
			result = append(result, g)
		}
	}
	return result
}
