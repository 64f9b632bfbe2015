package reconcile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sekaitools/promotrack/pkg/catalog"
)

var (
	yearPattern      = regexp.MustCompile(`\d{4}`)
	bracketedPattern = regexp.MustCompile(`(?:\[復刻\])?\[([^\]]+)\]`)
)

// Prefixes the upstream EN feed puts on rerun banner names.
var rerunPrefixes = []string{"[Rerun] ", "[It's Back] "}

// incrementYear bumps the first 4-digit year found in a name and applies it
// to every 4-digit run. Names without a year pass through unchanged.
func incrementYear(name string) string {
	match := yearPattern.FindString(name)
	if match == "" {
		return name
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return name
	}
	return yearPattern.ReplaceAllString(name, strconv.Itoa(year+1))
}

// normalizeRerunName strips a known rerun prefix so estimated and upstream
// names compare equal.
func normalizeRerunName(name string) string {
	for _, prefix := range rerunPrefixes {
		if strings.HasPrefix(name, prefix) {
			return name[len(prefix):]
		}
	}
	return name
}

// isBirthdayName reports whether a gacha name carries a birthday marker.
func isBirthdayName(name string) bool {
	return strings.Contains(name, "HAPPY BIRTHDAY") || strings.Contains(name, "HAPPY ANNIVERSARY")
}

// bracketedName extracts the bracketed celebration name from a birthday
// gacha name, ignoring a leading rerun bracket.
func bracketedName(name string) string {
	match := bracketedPattern.FindStringSubmatch(name)
	if match == nil {
		return ""
	}
	return match[1]
}

// previousBirthdayName finds last year's EN banner for the same celebration,
// identified by every card except the newest one, and returns its name with
// the year advanced. Empty when no previous banner matches.
func previousBirthdayName(cards []int, enBanners []catalog.Banner) string {
	if len(cards) < 2 {
		return ""
	}
	previous := cards[1:]

	for _, b := range enBanners {
		if b.BannerType != catalog.BannerBirthday {
			continue
		}
		if !subsetOf(previous, b.Cards) {
			continue
		}
		if b.Name == "" {
			continue
		}
		return incrementYear(b.Name)
	}
	return ""
}

// originalLimitedName finds the limited banner that originally ran the first
// card of a rerun and returns its name behind a "[Rerun] " prefix. The EN
// catalog is searched before the JP one. Empty when no original is found.
func originalLimitedName(cards []int, enBanners, jpBanners []catalog.Banner) string {
	if len(cards) == 0 {
		return ""
	}
	first := cards[0]

	for _, banners := range [][]catalog.Banner{enBanners, jpBanners} {
		for _, b := range banners {
			if b.BannerType != catalog.BannerLimitedEvent {
				continue
			}
			if containsCard(b.Cards, first) {
				return "[Rerun] " + b.Name
			}
		}
	}
	return ""
}

func containsCard(cards []int, id int) bool {
	for _, c := range cards {
		if c == id {
			return true
		}
	}
	return false
}

func subsetOf(subset, of []int) bool {
	set := make(map[int]bool, len(of))
	for _, id := range of {
		set[id] = true
	}
	for _, id := range subset {
		if !set[id] {
			return false
		}
	}
	return true
}
