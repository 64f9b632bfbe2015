package catalog

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Characters is the playable roster in upstream order; characterId is
// 1-indexed into this list.
var Characters = []string{
	"Hoshino Ichika",
	"Tenma Saki",
	"Mochizuki Honami",
	"Hinomori Shiho",
	"Hanasato Minori",
	"Kiritani Haruka",
	"Momoi Airi",
	"Hinomori Shizuku",
	"Azusawa Kohane",
	"Shiraishi An",
	"Shinonome Akito",
	"Aoyagi Toya",
	"Tenma Tsukasa",
	"Otori Emu",
	"Kusanagi Nene",
	"Kamishiro Rui",
	"Yoisaki Kanade",
	"Asahina Mafuyu",
	"Shinonome Ena",
	"Akiyama Mizuki",
	"Hatsune Miku",
	"Kagamine Rin",
	"Kagamine Len",
	"Megurine Luka",
	"MEIKO",
	"KAITO",
}

// unitMembers maps unit name to the characters belonging to it.
var unitMembers = map[string][]string{
	"Virtual Singers": {
		"Hatsune Miku",
		"Kagamine Rin",
		"Kagamine Len",
		"Megurine Luka",
		"MEIKO",
		"KAITO",
	},
	"Leo/Need": {
		"Hoshino Ichika",
		"Tenma Saki",
		"Mochizuki Honami",
		"Hinomori Shiho",
	},
	"MORE MORE JUMP!": {
		"Hanasato Minori",
		"Kiritani Haruka",
		"Momoi Airi",
		"Hinomori Shizuku",
	},
	"Vivid BAD SQUAD": {
		"Azusawa Kohane",
		"Shiraishi An",
		"Shinonome Akito",
		"Aoyagi Toya",
	},
	"Wonderlands x Showtime": {
		"Tenma Tsukasa",
		"Otori Emu",
		"Kusanagi Nene",
		"Kamishiro Rui",
	},
	"Nightcord at 25:00": {
		"Yoisaki Kanade",
		"Asahina Mafuyu",
		"Shinonome Ena",
		"Akiyama Mizuki",
	},
}

// rarities maps upstream cardRarityType to the numeric rarity we persist.
var rarities = map[string]int{
	"rarity_1":        1,
	"rarity_2":        2,
	"rarity_3":        3,
	"rarity_4":        4,
	"rarity_birthday": 5,
}

// RarityBirthday is the numeric rarity of birthday/anniversary cards.
const RarityBirthday = 5

// supplyTypes maps upstream cardSupplyId to the card_type we persist.
var supplyTypes = map[int]string{
	1: "permanent",
	2: "bday",
	3: "limited",
	4: "color_fes",
	5: "bloom_fes",
	6: "unit_limited",
	7: "limited_collab",
}

// subUnits maps upstream event unit codes to full unit names, used to tag
// Virtual Singer cards with the unit whose event introduced them.
var subUnits = map[string]string{
	"school_refusal": "Nightcord at 25:00",
	"street":         "Vivid BAD SQUAD",
	"none":           "mixed",
	"light_sound":    "Leo/Need",
	"theme_park":     "Wonderlands x Showtime",
	"idol":           "MORE MORE JUMP!",
}

// unitSubUnits maps catalog event unit labels to full unit names, for
// resolving a sub-unit against events already persisted in the catalog.
var unitSubUnits = map[string]string{
	"n25":   "Nightcord at 25:00",
	"vbs":   "Vivid BAD SQUAD",
	"mixed": "mixed",
	"l/n":   "Leo/Need",
	"wxs":   "Wonderlands x Showtime",
	"mmj":   "MORE MORE JUMP!",
}

// eventUnits maps upstream event unit codes to catalog unit labels.
var eventUnits = map[string]string{
	"school_refusal": "n25",
	"street":         "vbs",
	"none":           "mixed",
	"light_sound":    "l/n",
	"theme_park":     "wxs",
	"idol":           "mmj",
}

// attrCaser title-cases upstream attribute codes ("mysterious" -> "Mysterious").
var attrCaser = cases.Title(language.English)

// CharacterName converts a 1-indexed upstream characterId to a roster name.
func CharacterName(characterID int) string {
	if characterID < 1 || characterID > len(Characters) {
		return ""
	}
	return Characters[characterID-1]
}

// CharacterID converts a roster name back to its 1-indexed id, or 0.
func CharacterID(name string) int {
	for i, c := range Characters {
		if c == name {
			return i + 1
		}
	}
	return 0
}

// UnitFor returns the unit a character belongs to, or "".
func UnitFor(characterName string) string {
	for unit, members := range unitMembers {
		for _, m := range members {
			if m == characterName {
				return unit
			}
		}
	}
	return ""
}

// Rarity converts an upstream cardRarityType to its numeric rarity.
// Unknown types default to 1.
func Rarity(cardRarityType string) int {
	if r, ok := rarities[cardRarityType]; ok {
		return r
	}
	return 1
}

// CardType converts an upstream cardSupplyId to a catalog card_type.
// Unknown ids default to "permanent".
func CardType(cardSupplyID int) string {
	if t, ok := supplyTypes[cardSupplyID]; ok {
		return t
	}
	return "permanent"
}

// EventUnit converts an upstream event unit code to its catalog label, or "".
func EventUnit(code string) string {
	return eventUnits[code]
}

// SubUnit converts an upstream event unit code to a full unit name, or "".
func SubUnit(code string) string {
	return subUnits[code]
}

// SubUnitForUnit converts a catalog event unit label to a full unit name,
// or "".
func SubUnitForUnit(unit string) string {
	return unitSubUnits[unit]
}

// FormatAttribute renders an upstream attribute code in its persisted casing.
func FormatAttribute(attr string) string {
	return attrCaser.String(attr)
}

// CharacterIDs resolves the distinct, sorted character ids appearing on the
// given cards. Cards missing from the index are skipped.
func CharacterIDs(cardIDs []int, cards CardIndex) []int {
	seen := make(map[string]struct{})
	for _, id := range cardIDs {
		card, ok := cards[id]
		if !ok || card.Character == "" {
			continue
		}
		seen[card.Character] = struct{}{}
	}

	ids := make([]int, 0, len(seen))
	for name := range seen {
		if id := CharacterID(name); id != 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
