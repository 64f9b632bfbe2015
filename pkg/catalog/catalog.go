// Package catalog defines promotrack's own persisted record types for
// banners, events, and cards, one catalog per locale. Catalog records are
// created once by the merge and only field-patched afterwards, never deleted.
package catalog

// BannerType is the categorical type assigned to a banner by classification.
type BannerType string

// Banner types. The string values are the persisted spellings and must not
// change without migrating the catalog files.
const (
	BannerBirthday        BannerType = "Birthday"
	BannerFreePull        BannerType = "Free Pull"
	BannerLimitedRerun    BannerType = "Limited Event Rerun"
	BannerYourPick        BannerType = "Your Pick"
	BannerMemorialSelect  BannerType = "Memorial Select"
	BannerUnitPremiumGift BannerType = "Unit Premium Gift"
	BannerPremiumGift     BannerType = "Premium Gift"
	BannerLimitedEvent    BannerType = "Limited Event"
	BannerEvent           BannerType = "Event"
	BannerUnitLimited     BannerType = "Unit Limited Event"
	BannerBloomFes        BannerType = "bloom_fes"
	BannerCollab          BannerType = "Collab"
)

// Markers for synthesized target-locale banners whose timing is an estimate
// derived from the source locale, not upstream data. The marker is cleared
// when the target feed supplies the real record.
const (
	TypeEstimation      = "estimation"
	TypeRerunEstimation = "rerun_estimation"
)

// Banner is one promotional banner in a locale catalog.
type Banner struct {
	ID           int        `json:"id"`
	SekaiID      int        `json:"sekai_id"`
	Name         string     `json:"name"`
	Start        int64      `json:"start"`
	End          int64      `json:"end"`
	Cards        []int      `json:"cards"`
	Characters   []int      `json:"characters"`
	Keywords     []string   `json:"keywords"`
	BannerType   BannerType `json:"banner_type"`
	GachaDetails []int      `json:"gachaDetails"`
	ENID         int        `json:"en_id,omitempty"`
	EventID      int        `json:"event_id,omitempty"`
	Type         string     `json:"type,omitempty"`
	Rerun        []int64    `json:"rerun,omitempty"`
}

// CatalogID implements Identified.
func (b Banner) CatalogID() int { return b.ID }

// Estimated reports whether the banner's timing is a merge-time estimate not
// yet confirmed by its own locale's feed.
func (b Banner) Estimated() bool {
	return b.Type == TypeEstimation || b.Type == TypeRerunEstimation
}

// Event is one time-boxed event in a locale catalog. Events keep the
// upstream id as their catalog id; both locales share it.
type Event struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Start     int64    `json:"start"`
	End       int64    `json:"end"`
	Close     int64    `json:"close"`
	Unit      string   `json:"unit"`
	Cards     []int    `json:"cards"`
	Keywords  []string `json:"keywords"`
	EventType string   `json:"event_type"`
	Type      string   `json:"type"`
}

// CatalogID implements Identified.
func (e Event) CatalogID() int { return e.ID }

// Card is one card in the shared card catalog. Cards carry both locales'
// release data; the EN side is projected until the EN feed publishes it.
type Card struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	JPName     string `json:"jp_name"`
	Attribute  string `json:"attribute"`
	Rarity     int    `json:"rarity"`
	CardType   string `json:"card_type"`
	JPReleased int64  `json:"jp_released"`
	ENReleased int64  `json:"en_released"`
	Character  string `json:"character"`
	Unit       string `json:"unit"`
	CharID     int    `json:"charId"`
	SubUnit    string `json:"sub_unit,omitempty"`
}

// CatalogID implements Identified.
func (c Card) CatalogID() int { return c.ID }

// CardIndex is a card-id lookup over the card catalog.
type CardIndex map[int]Card

// NewCardIndex builds an index from the card catalog.
func NewCardIndex(cards []Card) CardIndex {
	idx := make(CardIndex, len(cards))
	for _, c := range cards {
		idx[c.ID] = c
	}
	return idx
}
