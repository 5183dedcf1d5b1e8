package services_test

import (
	"testing"

	"freight/internal/core/domain/model/consignee"
	"freight/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(t *testing.T, names ...string) []consignee.Entry {
	t.Helper()
	out := make([]consignee.Entry, 0, len(names))
	for i, n := range names {
		e, err := consignee.NewEntry(string(rune('A'+i))+"001", n)
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestFuzzyMatcher_Resolve(t *testing.T) {
	m := services.NewFuzzyMatcher()

	tests := []struct {
		name       string
		text       string
		candidates []string
		want       string
		wantOK     bool
	}{
		{"contained candidate", "ABC Trading Pte Ltd", []string{"ABC Trading"}, "ABC Trading", true},
		{"unrelated name", "Totally Different Co", []string{"ABC Trading"}, "", false},
		{"punctuation and case ignored", "a.b.c. TRADING", []string{"ABC Trading"}, "ABC Trading", true},
		{"small typo", "ABC Tradnig", []string{"XYZ Logistics", "ABC Trading"}, "ABC Trading", true},
		{"distance above threshold", "ABD Tradnig Co", []string{"ABC Trading"}, "", false},
		{"containment ranks before distance", "Orient Star Shipping", []string{"Orient Stat", "Orient Star Shipping Pte"}, "Orient Star Shipping Pte", true},
		{"closer of two contained names", "Kim Seng Hardware", []string{"Kim Seng", "Kim Seng Hardwares"}, "Kim Seng Hardwares", true},
		{"short names do not contain-match", "Abacus Holdings", []string{"Aba"}, "", false},
		{"empty text", "  ", []string{"ABC Trading"}, "", false},
		{"no candidates", "ABC Trading", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Resolve(tt.text, entries(t, tt.candidates...))

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.Name())
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abctradingpteltd", services.Normalize("ABC Trading Pte. Ltd."))
	assert.Equal(t, "", services.Normalize("-- / --"))
}
