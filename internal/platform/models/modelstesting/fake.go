// Package modelstesting provides fake models for tests.
package modelstesting

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FakeFeedItem returns a feed item with random fields and a valid SKU.
func FakeFeedItem() models.FeedItem {
	return models.FeedItem{
		SKU:          faker.UUIDDigit(),
		Name:         faker.Sentence(),
		Description:  faker.Paragraph(),
		Brand:        faker.Word(),
		Barcode:      faker.UUIDDigit(),
		CategoryPath: faker.Word() + " > " + faker.Word(),
		Stock:        rand.Intn(100),
		BuyingPrice:  decimal.NewFromFloat(float64(rand.Intn(10000)+1) / 100),
		ImageURLs:    []string{faker.URL()},
		Raw:          map[string]string{},
	}
}

// FakeProduct returns a persisted-looking product for the supplier.
func FakeProduct(supplierID int, sku string) models.Product {
	now := time.Now().UTC()
	return models.Product{
		ID:            rand.Intn(100000) + 1,
		SupplierID:    supplierID,
		SKU:           sku,
		Name:          faker.Sentence(),
		Description:   faker.Paragraph(),
		Brand:         lo.ToPtr(faker.Word()),
		Barcode:       lo.ToPtr(faker.UUIDDigit()),
		BuyingPrice:   decimal.NewFromFloat(float64(rand.Intn(10000)+100) / 100),
		SellingPrice:  decimal.NewFromFloat(float64(rand.Intn(20000)+200) / 100),
		StockQuantity: rand.Intn(50),
		AIStatus:      models.AIOriginal,
		Published:     true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// FakeSettings returns supplier settings with sane tax defaults.
func FakeSettings(supplierID int) models.SupplierSettings {
	return models.SupplierSettings{
		SupplierID:             supplierID,
		ProfitMargin:           decimal.NewFromInt(30),
		ShippingCost:           decimal.NewFromInt(30),
		BuyingPriceIncludesVAT: true,
		BuyingVATRate:          decimal.NewFromInt(20),
		SellingVATRate:         decimal.NewFromInt(20),
		DefaultCommissionRate:  decimal.NewFromInt(15),
	}
}

// FakeBatchRequest returns a processing batch request.
func FakeBatchRequest(batchType models.BatchType) models.BatchRequest {
	return models.BatchRequest{
		ID:        rand.Intn(100000) + 1,
		RequestID: fmt.Sprintf("batch-%s", faker.UUIDDigit()),
		Type:      batchType,
		Status:    models.BatchStatusProcessing,
		ItemCount: rand.Intn(1000) + 1,
		CreatedAt: time.Now().UTC(),
	}
}
