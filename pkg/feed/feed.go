// Package feed defines the upstream record schemas that promotrack tracks.
// Upstream publishes full master-data JSON per locale; decoding into these
// types is the field projection step: only the tracked field set per record
// kind survives, everything else is dropped at the boundary.
package feed

import "sort"

// Locale identifies one upstream feed region.
type Locale string

// Supported locales. JP is the source locale, EN the target locale.
const (
	LocaleJP Locale = "jp"
	LocaleEN Locale = "en"
)

// Kind identifies one upstream feed file.
type Kind string

// Feed kinds published by the upstream master-data mirrors.
const (
	KindCards      Kind = "cards"
	KindGachas     Kind = "gachas"
	KindEvents     Kind = "events"
	KindEventCards Kind = "eventCards"
)

// Card is the projected schema for one upstream card record.
type Card struct {
	ID             int    `json:"id"`
	CharacterID    int    `json:"characterId"`
	Attr           string `json:"attr"`
	CardRarityType string `json:"cardRarityType"`
	CardSupplyID   int    `json:"cardSupplyId"`
	Prefix         string `json:"prefix"`
	ReleaseAt      int64  `json:"releaseAt"`
}

// Key returns the upstream-assigned identifier.
func (c Card) Key() int { return c.ID }

// Pickup references a single card inside a gacha record.
type Pickup struct {
	CardID int `json:"cardId"`
}

// Gacha is the projected schema for one upstream banner record.
type Gacha struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	StartAt      int64    `json:"startAt"`
	EndAt        int64    `json:"endAt"`
	GachaPickups []Pickup `json:"gachaPickups"`
	GachaDetails []Pickup `json:"gachaDetails"`
}

// Key returns the upstream-assigned identifier.
func (g Gacha) Key() int { return g.ID }

// PickupCardIDs returns the card ids referenced by the gacha's pickup list,
// skipping empty entries.
func (g Gacha) PickupCardIDs() []int {
	ids := make([]int, 0, len(g.GachaPickups))
	for _, p := range g.GachaPickups {
		if p.CardID != 0 {
			ids = append(ids, p.CardID)
		}
	}
	return ids
}

// DetailCardIDs returns the card ids referenced by the gacha's detail list,
// skipping empty entries.
func (g Gacha) DetailCardIDs() []int {
	ids := make([]int, 0, len(g.GachaDetails))
	for _, p := range g.GachaDetails {
		if p.CardID != 0 {
			ids = append(ids, p.CardID)
		}
	}
	return ids
}

// Event is the projected schema for one upstream event record.
type Event struct {
	ID          int    `json:"id"`
	Unit        string `json:"unit"`
	EventType   string `json:"eventType"`
	Name        string `json:"name"`
	StartAt     int64  `json:"startAt"`
	AggregateAt int64  `json:"aggregateAt"`
	ClosedAt    int64  `json:"closedAt"`
}

// Key returns the upstream-assigned identifier.
func (e Event) Key() int { return e.ID }

// EventCard links a card to the event it was introduced with.
type EventCard struct {
	EventID int `json:"eventId"`
	CardID  int `json:"cardId"`
}

// Key returns the upstream-assigned identifier of the membership row.
func (ec EventCard) Key() int { return ec.CardID }

// EventCardIDs collects the sorted card ids belonging to one event.
func EventCardIDs(eventID int, memberships []EventCard) []int {
	var ids []int
	for _, m := range memberships {
		if m.EventID == eventID && m.CardID != 0 {
			ids = append(ids, m.CardID)
		}
	}
	sort.Ints(ids)
	return ids
}
