// Package classify assigns a categorical banner type from the banner name
// and, failing that, from a card-type vote over the first pickup cards.
package classify

import (
	"strings"

	"github.com/sekaitools/promotrack/pkg/catalog"
)

// rule is one name-marker entry. Rules are evaluated in priority order and
// the first match wins; an optional refine hook narrows the result.
type rule struct {
	markers []string
	result  catalog.BannerType
	refine  func(name string) catalog.BannerType
}

// nameRules in strict priority order. Markers are the upstream JP feed's
// naming conventions plus the EN feed's "Premium Gift" label.
var nameRules = []rule{
	{markers: []string{"HAPPY BIRTHDAY", "HAPPY ANNIVERSARY"}, result: catalog.BannerBirthday},
	{markers: []string{"10連無料"}, result: catalog.BannerFreePull},
	{markers: []string{"復刻"}, result: catalog.BannerLimitedRerun},
	{markers: []string{"セレクトリスト"}, result: catalog.BannerYourPick},
	{markers: []string{"メモリアルセレクト"}, result: catalog.BannerMemorialSelect},
	{markers: []string{"プレミアムプレゼント", "Premium Gift"}, result: catalog.BannerPremiumGift, refine: refinePremiumGift},
}

// unitTokens are the unit spellings used inside gift banner names.
var unitTokens = []string{
	"バーチャル・シンガー",
	"Leo/need",
	"MORE MORE JUMP！",
	"Vivid BAD SQUAD",
	"ワンダーランズ×ショウタイム",
	"25時、ナイトコードで。",
}

// voteResults maps a unanimous first-three card_type to a banner type.
var voteResults = map[string]catalog.BannerType{
	"limited":        catalog.BannerLimitedEvent,
	"permanent":      catalog.BannerEvent,
	"unit_limited":   catalog.BannerUnitLimited,
	"bloom_fes":      catalog.BannerBloomFes,
	"limited_collab": catalog.BannerCollab,
}

// cardVoteSize is how many leading pickup cards take part in the vote.
const cardVoteSize = 3

// Banner classifies a banner. Name rules fire first; with no match and at
// least three known pickup cards, a unanimous card-type vote decides;
// otherwise the type silently defaults to Event.
func Banner(name string, cardIDs []int, cards catalog.CardIndex) catalog.BannerType {
	for _, r := range nameRules {
		for _, marker := range r.markers {
			if strings.Contains(name, marker) {
				if r.refine != nil {
					return r.refine(name)
				}
				return r.result
			}
		}
	}

	if t, ok := cardVote(cardIDs, cards); ok {
		return t
	}

	return catalog.BannerEvent
}

// refinePremiumGift narrows a premium gift to a unit-specific gift when a
// known unit token appears in the name.
func refinePremiumGift(name string) catalog.BannerType {
	for _, unit := range unitTokens {
		if strings.Contains(name, unit) {
			return catalog.BannerUnitPremiumGift
		}
	}
	return catalog.BannerPremiumGift
}

// cardVote inspects the first three pickup cards; all three must be known
// and share one card_type for the vote to carry.
func cardVote(cardIDs []int, cards catalog.CardIndex) (catalog.BannerType, bool) {
	if len(cardIDs) < cardVoteSize || len(cards) == 0 {
		return "", false
	}

	var types []string
	for _, id := range cardIDs[:cardVoteSize] {
		card, ok := cards[id]
		if !ok {
			return "", false
		}
		types = append(types, card.CardType)
	}

	first := types[0]
	for _, t := range types[1:] {
		if t != first {
			return "", false
		}
	}

	result, ok := voteResults[first]
	return result, ok
}
