package trendyol

import (
	"github.com/marketfeed/trendyol-sync/internal/attribute"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/shopspring/decimal"
)

// Marketplace payload defaults. The cargo company is the integration's
// contracted carrier; dimensional weight is a catalog-wide assumption.
const (
	defaultCargoCompanyID    = 17
	defaultDimensionalWeight = 1
	maxTitleLength           = 100
)

// PayloadImage is one product image reference.
type PayloadImage struct {
	URL string `json:"url"`
}

// PayloadAttribute is one resolved attribute entry.
type PayloadAttribute struct {
	AttributeID      int     `json:"attributeId"`
	AttributeValueID *int    `json:"attributeValueId,omitempty"`
	CustomValue      *string `json:"customAttributeValue,omitempty"`
}

// ProductPayload is one item of a product creation batch.
type ProductPayload struct {
	Barcode           string             `json:"barcode"`
	Title             string             `json:"title"`
	ProductMainID     string             `json:"productMainId"`
	BrandID           int                `json:"brandId"`
	CategoryID        int                `json:"categoryId"`
	Quantity          int                `json:"quantity"`
	StockCode         string             `json:"stockCode"`
	DimensionalWeight int                `json:"dimensionalWeight"`
	Description       string             `json:"description"`
	CurrencyType      string             `json:"currencyType"`
	ListPrice         decimal.Decimal    `json:"listPrice"`
	SalePrice         decimal.Decimal    `json:"salePrice"`
	VATRate           int                `json:"vatRate"`
	CargoCompanyID    int                `json:"cargoCompanyId"`
	Images            []PayloadImage     `json:"images"`
	Attributes        []PayloadAttribute `json:"attributes"`
}

// BuildProductPayload assembles the creation payload for one product.
// The title is truncated to the marketplace's limit and the model code
// falls back to the SKU as the grouping id.
func BuildProductPayload(
	product models.Product,
	settings models.SupplierSettings,
	imageURLs []string,
	entries []attribute.Entry,
) ProductPayload {
	title := product.Name
	if len([]rune(title)) > maxTitleLength {
		title = string([]rune(title)[:maxTitleLength])
	}

	mainID := product.SKU
	if product.ModelCode != nil && *product.ModelCode != "" {
		mainID = *product.ModelCode
	}

	barcode := product.SKU
	if product.Barcode != nil && *product.Barcode != "" {
		barcode = *product.Barcode
	}

	brandID := 0
	if product.MarketBrandID != nil {
		brandID = *product.MarketBrandID
	}
	categoryID := 0
	if product.MarketCategoryID != nil {
		categoryID = *product.MarketCategoryID
	}

	images := make([]PayloadImage, 0, len(imageURLs))
	for _, url := range imageURLs {
		images = append(images, PayloadImage{URL: url})
	}

	attributes := make([]PayloadAttribute, 0, len(entries))
	for _, entry := range entries {
		attributes = append(attributes, PayloadAttribute{
			AttributeID:      entry.AttributeID,
			AttributeValueID: entry.AttributeValueID,
			CustomValue:      entry.CustomValue,
		})
	}

	return ProductPayload{
		Barcode:           barcode,
		Title:             title,
		ProductMainID:     mainID,
		BrandID:           brandID,
		CategoryID:        categoryID,
		Quantity:          product.StockQuantity,
		StockCode:         product.SKU,
		DimensionalWeight: defaultDimensionalWeight,
		Description:       product.Description,
		CurrencyType:      "TRY",
		ListPrice:         product.SellingPrice,
		SalePrice:         product.SellingPrice,
		VATRate:           int(settings.SellingVATRate.IntPart()),
		CargoCompanyID:    defaultCargoCompanyID,
		Images:            images,
		Attributes:        attributes,
	}
}
