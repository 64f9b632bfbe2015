package differ_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekaitools/promotrack/pkg/differ"
	"github.com/sekaitools/promotrack/pkg/feed"
)

func cards(ids ...int) []feed.Card {
	out := make([]feed.Card, len(ids))
	for i, id := range ids {
		out[i] = feed.Card{ID: id, Prefix: "card"}
	}
	return out
}

func TestRecordsColdStart(t *testing.T) {
	current := cards(1, 2, 3)

	assert.Equal(t, current, differ.Records(nil, current, differ.ModeAppendOnly))
	assert.Equal(t, current, differ.Records(nil, current, differ.ModeContent))
}

func TestRecordsIdempotent(t *testing.T) {
	snapshot := cards(1, 2, 3)

	assert.Empty(t, differ.Records(snapshot, snapshot, differ.ModeAppendOnly))
	assert.Empty(t, differ.Records(snapshot, snapshot, differ.ModeContent))
}

func TestAppendOnlyMode(t *testing.T) {
	previous := cards(1, 5, 3)
	current := cards(1, 5, 3, 6, 9)

	fresh := differ.Records(previous, current, differ.ModeAppendOnly)
	require.Len(t, fresh, 2)
	assert.Equal(t, 6, fresh[0].Key())
	assert.Equal(t, 9, fresh[1].Key())
}

func TestAppendOnlyModeMissesInPlaceEdit(t *testing.T) {
	previous := cards(1, 2, 3)
	current := cards(1, 2, 3)
	current[1].Prefix = "edited"

	// Known trade-off: append-only mode is reserved for feeds where edits
	// never happen below the max id.
	assert.Empty(t, differ.Records(previous, current, differ.ModeAppendOnly))
}

func TestContentModeDetectsInPlaceEdit(t *testing.T) {
	previous := []feed.Gacha{
		{ID: 801, Name: "original", StartAt: 100},
		{ID: 802, Name: "untouched", StartAt: 200},
	}
	current := []feed.Gacha{
		{ID: 801, Name: "renamed", StartAt: 100},
		{ID: 802, Name: "untouched", StartAt: 200},
		{ID: 803, Name: "brand new", StartAt: 300},
	}

	fresh := differ.Records(previous, current, differ.ModeContent)
	require.Len(t, fresh, 2)
	assert.Equal(t, 801, fresh[0].Key())
	assert.Equal(t, 803, fresh[1].Key())
}

func TestContentModePreservesCurrentOrder(t *testing.T) {
	previous := []feed.Event{{ID: 1, Name: "a"}}
	current := []feed.Event{
		{ID: 3, Name: "c"},
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b"},
	}

	fresh := differ.Records(previous, current, differ.ModeContent)
	require.Len(t, fresh, 2)
	assert.Equal(t, 3, fresh[0].Key())
	assert.Equal(t, 2, fresh[1].Key())
}
