package reconcile

import (
	"context"

	"github.com/sekaitools/promotrack/pkg/catalog"
	"github.com/sekaitools/promotrack/pkg/feed"
)

// mergeCards inserts new JP cards into the shared card catalog, then patches
// existing cards from the authoritative EN feed. Insert first so a card that
// appears in both diffs in one run still receives its EN name.
func (m *Merger) mergeCards(ctx context.Context, cats *Catalogs, diff Diff, res *Result) error {
	index := make(map[int]int, len(cats.Cards))
	for i, c := range cats.Cards {
		index[c.ID] = i
	}

	for _, rec := range diff.JPCards {
		if _, ok := index[rec.ID]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		card := m.newCard(ctx, rec, diff, cats.JPEvents)
		cats.Cards = append(cats.Cards, card)
		index[card.ID] = len(cats.Cards) - 1
		res.CardsAdded = append(res.CardsAdded, card.ID)
	}

	for _, rec := range diff.ENCards {
		i, ok := index[rec.ID]
		if !ok {
			continue
		}

		c := &cats.Cards[i]
		changed := false
		if c.Name != rec.Prefix {
			c.Name = rec.Prefix
			changed = true
		}
		if c.ENReleased != rec.ReleaseAt {
			c.ENReleased = rec.ReleaseAt
			changed = true
		}
		if changed {
			res.CardsUpdated = append(res.CardsUpdated, c.ID)
		}
	}

	return nil
}

// newCard projects one upstream JP card into a catalog card. Birthday cards
// get their provisional EN name by incrementing the year in the JP name;
// everything else goes through the translator, degrading to an empty name on
// failure. The EN release time is a normal projection of the JP one.
func (m *Merger) newCard(ctx context.Context, rec feed.Card, diff Diff, jpEvents []catalog.Event) catalog.Card {
	rarity := catalog.Rarity(rec.CardRarityType)

	var name string
	if rarity == catalog.RarityBirthday {
		name = incrementYear(rec.Prefix)
	} else {
		translated, err := m.translator.Translate(ctx, rec.Prefix)
		if err != nil {
			m.logger.Warn().Err(err).Int("card_id", rec.ID).Msg("card name translation failed")
		} else {
			name = translated
		}
	}

	character := catalog.CharacterName(rec.CharacterID)
	unit := catalog.UnitFor(character)

	card := catalog.Card{
		ID:         rec.ID,
		Name:       name,
		JPName:     rec.Prefix,
		Attribute:  catalog.FormatAttribute(rec.Attr),
		Rarity:     rarity,
		CardType:   catalog.CardType(rec.CardSupplyID),
		JPReleased: rec.ReleaseAt,
		ENReleased: m.projector.Instant(rec.ReleaseAt),
		Character:  character,
		Unit:       unit,
		CharID:     rec.CharacterID,
	}

	if unit == "Virtual Singers" {
		card.SubUnit = subUnitFor(rec.ID, diff.EventCards, diff.JPEvents, jpEvents)
	}

	return card
}

// subUnitFor resolves the sub-unit of a Virtual Singer card from the unit of
// the event that introduced it. The introducing event may arrive in the same
// cycle's diff or already live in the catalog from an earlier cycle. Empty
// when the card has no event.
func subUnitFor(cardID int, memberships []feed.EventCard, fresh []feed.Event, existing []catalog.Event) string {
	eventID := 0
	for _, ec := range memberships {
		if ec.CardID == cardID {
			eventID = ec.EventID
			break
		}
	}
	if eventID == 0 {
		return ""
	}

	for _, e := range fresh {
		if e.ID == eventID {
			return catalog.SubUnit(e.Unit)
		}
	}
	for _, e := range existing {
		if e.ID == eventID {
			return catalog.SubUnitForUnit(e.Unit)
		}
	}
	return ""
}
