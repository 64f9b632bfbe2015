// Package differ detects which upstream records are new relative to the last
// persisted snapshot. Two policies are supported: an append-only mode keyed on
// monotonically increasing upstream ids, and a content mode that canonicalizes
// records and set-subtracts so in-place edits also surface.
package differ

import (
	"github.com/sekaitools/promotrack/pkg/feed"
)

// Keyed is any record carrying an upstream-assigned integer id.
type Keyed interface {
	Key() int
}

// Mode selects the diff policy for one feed.
type Mode int

const (
	// ModeAppendOnly returns records whose key exceeds the maximum key in
	// the previous snapshot. Reserved for feeds where ids only grow (cards);
	// an edited record that kept its key is not detected.
	ModeAppendOnly Mode = iota

	// ModeContent returns records whose canonical form is absent from the
	// previous snapshot. Late edits below the max id surface as changed
	// records; the merger decides update-vs-insert by shared upstream id.
	ModeContent
)

// Records returns the subset of current that is new relative to previous
// under the given mode. Re-running with current as the new previous yields
// an empty diff.
func Records[T Keyed](previous, current []T, mode Mode) []T {
	if len(previous) == 0 {
		return current
	}

	switch mode {
	case ModeAppendOnly:
		return appendOnly(previous, current)
	default:
		return contentDiff(previous, current)
	}
}

// appendOnly keeps every current record keyed above the previous maximum.
func appendOnly[T Keyed](previous, current []T) []T {
	maxKey := previous[0].Key()
	for _, rec := range previous[1:] {
		if rec.Key() > maxKey {
			maxKey = rec.Key()
		}
	}

	var fresh []T
	for _, rec := range current {
		if rec.Key() > maxKey {
			fresh = append(fresh, rec)
		}
	}
	return fresh
}

// contentDiff set-subtracts canonical record forms, preserving current order.
func contentDiff[T Keyed](previous, current []T) []T {
	seen := make(map[string]struct{}, len(previous))
	for _, rec := range previous {
		seen[feed.Canonical(rec)] = struct{}{}
	}

	var fresh []T
	for _, rec := range current {
		if _, ok := seen[feed.Canonical(rec)]; !ok {
			fresh = append(fresh, rec)
		}
	}
	return fresh
}
