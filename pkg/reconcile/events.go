package reconcile

import (
	"github.com/sekaitools/promotrack/pkg/catalog"
)

// minSharedCards is the card overlap required to tie a banner to an event.
const minSharedCards = 3

// linkableTypes are the banner types that accompany an event.
var linkableTypes = map[catalog.BannerType]bool{
	catalog.BannerLimitedEvent: true,
	catalog.BannerEvent:        true,
	catalog.BannerUnitLimited:  true,
}

// CandidateEvents returns the events not yet referenced by any banner in the
// given catalogs, preserving catalog order. Both locale banner catalogs link
// against the same candidate set, so one event may back a banner per locale.
func CandidateEvents(events []catalog.Event, bannerLists ...[]catalog.Banner) []catalog.Event {
	referenced := make(map[int]bool)
	for _, banners := range bannerLists {
		for _, b := range banners {
			if b.EventID != 0 {
				referenced[b.EventID] = true
			}
		}
	}

	var candidates []catalog.Event
	for _, e := range events {
		if !referenced[e.ID] {
			candidates = append(candidates, e)
		}
	}
	return candidates
}

// LinkEvents fills event_id on eligible banners in place. A banner qualifies
// when its type accompanies an event and it carries no event id yet. The
// newest candidate wins ties: the search walks candidates back to front and
// links the first whose card overlap reaches the threshold. Returns the ids
// of banners that gained a link.
func LinkEvents(banners []catalog.Banner, candidates []catalog.Event) []int {
	var linked []int

	for i := range banners {
		if !linkableTypes[banners[i].BannerType] || banners[i].EventID != 0 {
			continue
		}

		cards := make(map[int]bool, len(banners[i].Cards))
		for _, id := range banners[i].Cards {
			cards[id] = true
		}

		for c := len(candidates) - 1; c >= 0; c-- {
			if sharedCards(cards, candidates[c].Cards) >= minSharedCards {
				banners[i].EventID = candidates[c].ID
				linked = append(linked, banners[i].ID)
				break
			}
		}
	}

	return linked
}

func sharedCards(set map[int]bool, cards []int) int {
	n := 0
	for _, id := range cards {
		if set[id] {
			n++
		}
	}
	return n
}
