package reconcile

import (
	"math"

	"github.com/sekaitools/promotrack/pkg/catalog"
)

// Rerun matching accepts a candidate only when its start falls roughly one
// year after the source banner's start.
const (
	minMatchGapDays = 350
	maxMatchGapDays = 380
)

const msPerDay = 1000 * 60 * 60 * 24

// LinkBanners fills en_id on source-locale banners from the target-locale
// catalog. Banners are grouped by shared upstream id in input order; a lone
// candidate links directly, multiple candidates (reruns) are resolved by
// day-distance in [350, 380] with the minimum winning, falling back to the
// first unassigned candidate. No target id is handed out twice in one run.
// Target banners whose timing is still a merge-time estimate are not
// candidates; a link forms only once the target feed has confirmed them.
// Returns the ids of banners whose link changed.
func LinkBanners(jp, en []catalog.Banner) []int {
	targets := make(map[int][]int)
	for i, b := range en {
		if b.Estimated() {
			continue
		}
		targets[b.SekaiID] = append(targets[b.SekaiID], i)
	}

	var order []int
	groups := make(map[int][]int)
	for i, b := range jp {
		if _, ok := groups[b.SekaiID]; !ok {
			order = append(order, b.SekaiID)
		}
		groups[b.SekaiID] = append(groups[b.SekaiID], i)
	}

	assigned := make(map[int]bool)
	var linked []int

	link := func(jpIdx, enIdx int) {
		id := en[enIdx].ID
		assigned[id] = true
		if jp[jpIdx].ENID != id {
			jp[jpIdx].ENID = id
			linked = append(linked, jp[jpIdx].ID)
		}
	}

	for _, sekaiID := range order {
		sources := groups[sekaiID]
		candidates := targets[sekaiID]

		switch {
		case len(candidates) == 0:
			// No counterpart yet, leave unlinked.

		case len(candidates) == 1:
			if !assigned[en[candidates[0]].ID] {
				for _, j := range sources {
					link(j, candidates[0])
					assigned[en[candidates[0]].ID] = true
				}
			}

		default:
			for _, j := range sources {
				best := -1
				bestDays := math.Inf(1)
				for _, c := range candidates {
					if assigned[en[c].ID] {
						continue
					}
					days := dayDistance(jp[j].Start, en[c].Start)
					if days < 0 {
						continue
					}
					if days >= minMatchGapDays && days <= maxMatchGapDays && days < bestDays {
						bestDays = days
						best = c
					}
				}

				if best < 0 {
					for _, c := range candidates {
						if !assigned[en[c].ID] {
							best = c
							break
						}
					}
				}
				if best >= 0 {
					link(j, best)
				}
			}
		}
	}

	return linked
}

// dayDistance returns the absolute distance between two start times in days,
// or -1 when either side is unset.
func dayDistance(a, b int64) float64 {
	if a <= 0 || b <= 0 {
		return -1
	}
	return math.Abs(float64(b-a)) / msPerDay
}
