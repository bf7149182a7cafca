package category_test

import (
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/category"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leaves = []models.LeafCategory{
	{ID: 1, Name: "Çamaşır Deterjanı", Path: "Ev Temizlik > Çamaşır Bakım > Çamaşır Deterjanı"},
	{ID: 2, Name: "Yumuşatıcı", Path: "Ev Temizlik > Çamaşır Bakım > Yumuşatıcı"},
	{ID: 3, Name: "Bulaşık Deterjanı", Path: "Ev Temizlik > Mutfak > Bulaşık Deterjanı"},
}

func TestResolveExact(t *testing.T) {
	tests := map[string]struct {
		feedPath   string
		expectedID int
		ok         bool
	}{
		"last segment exact": {
			feedPath:   "Temizlik > Çamaşır Deterjanı",
			expectedID: 1,
			ok:         true,
		},
		"case folded": {
			feedPath:   "YUMUŞATICI",
			expectedID: 2,
			ok:         true,
		},
		"no match": {
			feedPath: "Kozmetik > Şampuan",
		},
		"empty path": {
			feedPath: "",
		},
	}

	resolver := category.NewResolver()

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			id, ok := resolver.ResolveExact(tt.feedPath, leaves)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestResolveFuzzy(t *testing.T) {
	t.Parallel()

	resolver := category.NewResolver()

	id, ok := resolver.ResolveFuzzy("Temizlik > Çamaşır Deterjan", leaves)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = resolver.ResolveFuzzy("Elektronik > Kulaklık", leaves)
	assert.False(t, ok)
}

func TestShortlist(t *testing.T) {
	t.Parallel()

	resolver := category.NewResolver()

	shortlist := resolver.Shortlist(
		"Temizlik > Çamaşır Deterjanı",
		"ABC Çamaşır Deterjanı 4 KG",
		leaves,
		25,
	)

	require.NotEmpty(t, shortlist)
	// Title substring plus shared tokens must rank the true leaf first.
	assert.Equal(t, 1, shortlist[0].ID)
	// Unrelated leaves with zero score are excluded.
	for _, leaf := range shortlist {
		assert.NotEqual(t, 0, leaf.ID)
	}
}

func TestShortlistLimit(t *testing.T) {
	t.Parallel()

	many := make([]models.LeafCategory, 0, 40)
	for i := 1; i <= 40; i++ {
		many = append(many, models.LeafCategory{ID: i, Name: "Deterjan", Path: "Temizlik > Deterjan"})
	}

	shortlist := category.NewResolver().Shortlist("Deterjan", "", many, 25)

	assert.Len(t, shortlist, 25)
}

func TestResolveBrand(t *testing.T) {
	t.Parallel()

	brands := []models.BrandMapping{
		{FeedBrand: "Bingo", BrandID: 42},
	}

	resolver := category.NewResolver()

	id, ok := resolver.ResolveBrand("BİNGO", brands)
	require.True(t, ok)
	assert.Equal(t, 42, id)

	_, ok = resolver.ResolveBrand("Omo", brands)
	assert.False(t, ok)
}

func TestCommissionFor(t *testing.T) {
	table := []models.CommissionCategory{
		{CategoryID: 1, Name: "Ev Temizlik > Çamaşır Deterjanı", CommissionRate: decimal.NewFromInt(18)},
		{CategoryID: 2, Name: "Yumuşatıcı", CommissionRate: decimal.NewFromInt(15)},
	}

	tests := map[string]struct {
		mapping  models.CategoryMapping
		expected *decimal.Decimal
	}{
		"id match": {
			mapping:  models.CategoryMapping{CategoryID: 2},
			expected: lo.ToPtr(decimal.NewFromInt(15)),
		},
		"display name exact": {
			mapping:  models.CategoryMapping{CategoryID: 99, CategoryName: lo.ToPtr("Yumuşatıcı")},
			expected: lo.ToPtr(decimal.NewFromInt(15)),
		},
		"hierarchical suffix": {
			mapping:  models.CategoryMapping{CategoryID: 99, CategoryName: lo.ToPtr("Çamaşır Deterjanı")},
			expected: lo.ToPtr(decimal.NewFromInt(18)),
		},
		"no match": {
			mapping: models.CategoryMapping{CategoryID: 99, CategoryName: lo.ToPtr("Şampuan")},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rate := category.CommissionFor(tt.mapping, table)

			if tt.expected == nil {
				assert.Nil(t, rate)
				return
			}
			require.NotNil(t, rate)
			assert.True(t, tt.expected.Equal(*rate))
		})
	}
}
