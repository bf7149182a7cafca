package storage

import (
	"encoding/json"
	"fmt"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// productColumns is the column list every product query selects, in the
// order scanProduct reads them.
const productColumns = `
	id, supplier_id, sku,
	name, description, brand,
	barcode, original_barcode, model_code,
	original_name, original_description,
	ai_generated_name, ai_generated_description,
	ai_status, ai_last_run_at, ai_last_error,
	buying_price, selling_price, stock_quantity,
	category_path, published, market_category_id, market_brand_id,
	attributes, last_synced_at, created_at, updated_at`

func scanProduct(row rowScanner) (*models.Product, error) {
	var product models.Product
	var attributes []byte

	err := row.Scan(
		&product.ID, &product.SupplierID, &product.SKU,
		&product.Name, &product.Description, &product.Brand,
		&product.Barcode, &product.OriginalBarcode, &product.ModelCode,
		&product.OriginalName, &product.OriginalDescription,
		&product.AIGeneratedName, &product.AIGeneratedDescription,
		&product.AIStatus, &product.AILastRunAt, &product.AILastError,
		&product.BuyingPrice, &product.SellingPrice, &product.StockQuantity,
		&product.CategoryPath, &product.Published,
		&product.MarketCategoryID, &product.MarketBrandID,
		&attributes, &product.LastSyncedAt, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(attributes) > 0 {
		if err := json.Unmarshal(attributes, &product.Attributes); err != nil {
			return nil, fmt.Errorf("can't decode product attributes: %w", err)
		}
	}

	return &product, nil
}

func attributesJSON(attributes map[string]string) ([]byte, error) {
	if len(attributes) == 0 {
		return []byte("{}"), nil
	}
	encoded, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("can't encode product attributes: %w", err)
	}
	return encoded, nil
}

func detailsJSON(details map[string]any) ([]byte, error) {
	if len(details) == 0 {
		return []byte("{}"), nil
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("can't encode process details: %w", err)
	}
	return encoded, nil
}
