package trendyol_test

import (
	"strings"
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/attribute"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/marketfeed/trendyol-sync/internal/trendyol"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildProductPayload(t *testing.T) {
	t.Parallel()

	product := models.Product{
		SKU:              "A-1",
		Name:             strings.Repeat("ü", 120),
		Description:      "Açıklama",
		Barcode:          lo.ToPtr("8690000000001"),
		ModelCode:        lo.ToPtr("MODEL-9"),
		StockQuantity:    7,
		SellingPrice:     decimal.NewFromFloat(149.99),
		MarketBrandID:    lo.ToPtr(42),
		MarketCategoryID: lo.ToPtr(3),
	}
	settings := models.SupplierSettings{SellingVATRate: decimal.NewFromInt(20)}
	entries := []attribute.Entry{
		{AttributeID: 10, AttributeValueID: lo.ToPtr(100)},
	}

	payload := trendyol.BuildProductPayload(product, settings, []string{"https://cdn/1.jpg"}, entries)

	assert.Len(t, []rune(payload.Title), 100)
	assert.Equal(t, "MODEL-9", payload.ProductMainID)
	assert.Equal(t, "8690000000001", payload.Barcode)
	assert.Equal(t, "A-1", payload.StockCode)
	assert.Equal(t, 42, payload.BrandID)
	assert.Equal(t, 3, payload.CategoryID)
	assert.Equal(t, 20, payload.VATRate)
	assert.Equal(t, "TRY", payload.CurrencyType)
	assert.Len(t, payload.Images, 1)
	assert.Len(t, payload.Attributes, 1)
}

func TestBuildProductPayloadFallbacks(t *testing.T) {
	t.Parallel()

	product := models.Product{SKU: "A-2", Name: "Kısa"}

	payload := trendyol.BuildProductPayload(product, models.SupplierSettings{}, nil, nil)

	assert.Equal(t, "A-2", payload.ProductMainID)
	assert.Equal(t, "A-2", payload.Barcode)
	assert.Equal(t, "Kısa", payload.Title)
}
