package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sekaitools/promotrack/pkg/catalog"
	"github.com/sekaitools/promotrack/pkg/classify"
)

func cardIndex(types ...string) catalog.CardIndex {
	idx := catalog.CardIndex{}
	for i, t := range types {
		idx[i+1] = catalog.Card{ID: i + 1, CardType: t}
	}
	return idx
}

func TestBannerNameRules(t *testing.T) {
	tests := []struct {
		name   string
		banner string
		want   catalog.BannerType
	}{
		{"birthday", "草薙寧々 HAPPY BIRTHDAYガチャ", catalog.BannerBirthday},
		{"anniversary", "MEIKO HAPPY ANNIVERSARYガチャ", catalog.BannerBirthday},
		{"free pull", "3周年記念 10連無料ガチャ", catalog.BannerFreePull},
		{"rerun", "[復刻]ワンダーマジカルショウタイム!ガチャ", catalog.BannerLimitedRerun},
		{"your pick", "セレクトリストガチャ", catalog.BannerYourPick},
		{"memorial select", "メモリアルセレクトガチャ", catalog.BannerMemorialSelect},
		{"premium gift", "プレミアムプレゼントガチャ", catalog.BannerPremiumGift},
		{"premium gift en", "Premium Gift Gacha", catalog.BannerPremiumGift},
		{"unit premium gift", "Leo/need プレミアムプレゼントガチャ", catalog.BannerUnitPremiumGift},
		{"unit premium gift n25", "25時、ナイトコードで。プレミアムプレゼントガチャ", catalog.BannerUnitPremiumGift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Banner(tt.banner, nil, nil))
		})
	}
}

func TestBannerCardVote(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  catalog.BannerType
	}{
		{"limited", []string{"limited", "limited", "limited"}, catalog.BannerLimitedEvent},
		{"permanent", []string{"permanent", "permanent", "permanent"}, catalog.BannerEvent},
		{"unit limited", []string{"unit_limited", "unit_limited", "unit_limited"}, catalog.BannerUnitLimited},
		{"bloom fes", []string{"bloom_fes", "bloom_fes", "bloom_fes"}, catalog.BannerBloomFes},
		{"collab", []string{"limited_collab", "limited_collab", "limited_collab"}, catalog.BannerCollab},
		{"split vote defaults", []string{"limited", "permanent", "limited"}, catalog.BannerEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := cardIndex(tt.types...)
			got := classify.Banner("無印ガチャ", []int{1, 2, 3}, idx)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBannerNameRuleBeatsCardVote(t *testing.T) {
	idx := cardIndex("limited", "limited", "limited")
	got := classify.Banner("[復刻]限定ガチャ", []int{1, 2, 3}, idx)
	assert.Equal(t, catalog.BannerLimitedRerun, got)
}

func TestBannerDefaults(t *testing.T) {
	t.Run("too few cards", func(t *testing.T) {
		idx := cardIndex("limited", "limited")
		assert.Equal(t, catalog.BannerEvent, classify.Banner("無印ガチャ", []int{1, 2}, idx))
	})

	t.Run("unknown card", func(t *testing.T) {
		idx := cardIndex("limited", "limited")
		assert.Equal(t, catalog.BannerEvent, classify.Banner("無印ガチャ", []int{1, 2, 42}, idx))
	})

	t.Run("no lookup", func(t *testing.T) {
		assert.Equal(t, catalog.BannerEvent, classify.Banner("無印ガチャ", []int{1, 2, 3}, nil))
	})

	t.Run("unvoteable type", func(t *testing.T) {
		idx := cardIndex("bday", "bday", "bday")
		assert.Equal(t, catalog.BannerEvent, classify.Banner("無印ガチャ", []int{1, 2, 3}, idx))
	})
}
