// Package storage is the Postgres persistence layer: suppliers and
// their settings, products, pricing and mapping reference tables, batch
// requests and background processes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/marketfeed/trendyol-sync/internal/platform"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
)

// Postgres is storage for suppliers, products, reference tables, batch
// requests and background processes.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// GetSupplier returns one supplier by id.
func (p Postgres) GetSupplier(ctx context.Context, supplierID int) (*models.Supplier, error) {
	var supplier models.Supplier
	err := p.db.QueryRowContext(ctx,
		`SELECT id, name, feed_url, is_active, created_at FROM suppliers WHERE id = $1`,
		supplierID,
	).Scan(&supplier.ID, &supplier.Name, &supplier.FeedURL, &supplier.IsActive, &supplier.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("can't get supplier %d: %w", supplierID, err)
	}

	return &supplier, nil
}

// GetSupplierSettings returns the settings of one supplier.
func (p Postgres) GetSupplierSettings(ctx context.Context, supplierID int) (*models.SupplierSettings, error) {
	var settings models.SupplierSettings
	err := p.db.QueryRowContext(ctx,
		`SELECT supplier_id,
			profit_margin, shipping_cost, price_rounding,
			sku_prefix, use_unique_barcode, min_stock,
			include_commission, default_commission_rate,
			service_fee, withholding_tax_rate,
			buying_price_includes_vat, buying_vat_rate, selling_vat_rate,
			stop_stock_update, stop_price_update,
			auto_update_interval, last_auto_update,
			batch_check_interval, last_batch_check,
			zero_stock_on_error
		FROM supplier_settings WHERE supplier_id = $1`,
		supplierID,
	).Scan(
		&settings.SupplierID,
		&settings.ProfitMargin, &settings.ShippingCost, &settings.PriceRounding,
		&settings.SKUPrefix, &settings.UseUniqueBarcode, &settings.MinStock,
		&settings.IncludeCommission, &settings.DefaultCommissionRate,
		&settings.ServiceFee, &settings.WithholdingTaxRate,
		&settings.BuyingPriceIncludesVAT, &settings.BuyingVATRate, &settings.SellingVATRate,
		&settings.StopStockUpdate, &settings.StopPriceUpdate,
		&settings.AutoUpdateInterval, &settings.LastAutoUpdate,
		&settings.BatchCheckInterval, &settings.LastBatchCheck,
		&settings.ZeroStockOnError,
	)
	if err != nil {
		return nil, fmt.Errorf("can't get settings of supplier %d: %w", supplierID, err)
	}

	return &settings, nil
}

// TouchSupplierAutoUpdate records the time of the last sync run.
func (p Postgres) TouchSupplierAutoUpdate(ctx context.Context, supplierID int, at time.Time) error {
	result, err := p.db.ExecContext(ctx,
		`UPDATE supplier_settings SET last_auto_update = $2 WHERE supplier_id = $1`,
		supplierID, at,
	)
	if err != nil {
		return fmt.Errorf("can't record sync time of supplier %d: %w", supplierID, err)
	}
	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't record sync time of supplier %d: no settings row", supplierID)
	}

	return nil
}

// ListPriceRules returns the supplier's price rules ordered by interval
// start, which is the order the pricing engine scans them in.
func (p Postgres) ListPriceRules(ctx context.Context, supplierID int) ([]models.PriceRule, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, supplier_id, min_price, max_price, rule_type, operation_type, value, extra_cost
		FROM price_rules WHERE supplier_id = $1 ORDER BY min_price, id`,
		supplierID,
	)
	if err != nil {
		return nil, fmt.Errorf("can't list price rules: %w", err)
	}
	defer rows.Close()

	var rules []models.PriceRule
	for rows.Next() {
		var rule models.PriceRule
		if err := rows.Scan(
			&rule.ID, &rule.SupplierID, &rule.MinPrice, &rule.MaxPrice,
			&rule.RuleType, &rule.OperationType, &rule.Value, &rule.ExtraCost,
		); err != nil {
			return nil, fmt.Errorf("can't scan price rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// ListCategoryMappings returns all category mappings.
func (p Postgres) ListCategoryMappings(ctx context.Context) ([]models.CategoryMapping, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, feed_category, category_id, category_name FROM category_mappings`,
	)
	if err != nil {
		return nil, fmt.Errorf("can't list category mappings: %w", err)
	}
	defer rows.Close()

	var mappings []models.CategoryMapping
	for rows.Next() {
		var mapping models.CategoryMapping
		if err := rows.Scan(&mapping.ID, &mapping.FeedCategory, &mapping.CategoryID, &mapping.CategoryName); err != nil {
			return nil, fmt.Errorf("can't scan category mapping: %w", err)
		}
		mappings = append(mappings, mapping)
	}

	return mappings, rows.Err()
}

// ListAttributeMappings returns the attribute mappings of one category
// mapping, required ones first.
func (p Postgres) ListAttributeMappings(ctx context.Context, categoryMappingID int) ([]models.AttributeMapping, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, category_mapping_id, attribute_id, attribute_name, type, static_value, feed_field, required
		FROM attribute_mappings WHERE category_mapping_id = $1 ORDER BY required DESC, id`,
		categoryMappingID,
	)
	if err != nil {
		return nil, fmt.Errorf("can't list attribute mappings: %w", err)
	}
	defer rows.Close()

	var mappings []models.AttributeMapping
	for rows.Next() {
		var mapping models.AttributeMapping
		if err := rows.Scan(
			&mapping.ID, &mapping.CategoryMappingID,
			&mapping.AttributeID, &mapping.AttributeName,
			&mapping.Type, &mapping.StaticValue, &mapping.FeedField, &mapping.Required,
		); err != nil {
			return nil, fmt.Errorf("can't scan attribute mapping: %w", err)
		}
		mappings = append(mappings, mapping)
	}

	return mappings, rows.Err()
}

// ListBrandMappings returns all brand mappings.
func (p Postgres) ListBrandMappings(ctx context.Context) ([]models.BrandMapping, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, feed_brand, brand_id FROM brand_mappings`,
	)
	if err != nil {
		return nil, fmt.Errorf("can't list brand mappings: %w", err)
	}
	defer rows.Close()

	var mappings []models.BrandMapping
	for rows.Next() {
		var mapping models.BrandMapping
		if err := rows.Scan(&mapping.ID, &mapping.FeedBrand, &mapping.BrandID); err != nil {
			return nil, fmt.Errorf("can't scan brand mapping: %w", err)
		}
		mappings = append(mappings, mapping)
	}

	return mappings, rows.Err()
}

// ListCommissionCategories returns the commission reference table.
func (p Postgres) ListCommissionCategories(ctx context.Context) ([]models.CommissionCategory, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, category_id, name, commission_rate FROM commission_categories`,
	)
	if err != nil {
		return nil, fmt.Errorf("can't list commission categories: %w", err)
	}
	defer rows.Close()

	var categories []models.CommissionCategory
	for rows.Next() {
		var category models.CommissionCategory
		if err := rows.Scan(&category.ID, &category.CategoryID, &category.Name, &category.CommissionRate); err != nil {
			return nil, fmt.Errorf("can't scan commission category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// GetProduct returns one product by id.
func (p Postgres) GetProduct(ctx context.Context, productID int) (*models.Product, error) {
	product, err := scanProduct(p.db.QueryRowContext(ctx,
		`SELECT`+productColumns+` FROM products WHERE id = $1`,
		productID,
	))
	if err != nil {
		return nil, fmt.Errorf("can't get product %d: %w", productID, err)
	}

	return product, nil
}

// GetProductBySKU returns a product or nil when unknown.
func (p Postgres) GetProductBySKU(ctx context.Context, supplierID int, sku string) (*models.Product, error) {
	product, err := scanProduct(p.db.QueryRowContext(ctx,
		`SELECT`+productColumns+` FROM products WHERE supplier_id = $1 AND sku = $2`,
		supplierID, sku,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't get product %q: %w", sku, err)
	}

	return product, nil
}

// ListPublishedProducts returns the supplier's published products.
func (p Postgres) ListPublishedProducts(ctx context.Context, supplierID int) ([]models.Product, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT`+productColumns+` FROM products WHERE supplier_id = $1 AND published ORDER BY id`,
		supplierID,
	)
	if err != nil {
		return nil, fmt.Errorf("can't list published products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan product: %w", err)
		}
		products = append(products, *product)
	}

	return products, rows.Err()
}

// UpsertProduct creates or updates a product keyed by supplier and SKU.
// Reports whether the product was created.
func (p Postgres) UpsertProduct(ctx context.Context, product *models.Product) (bool, error) {
	attributes, err := attributesJSON(product.Attributes)
	if err != nil {
		return false, err
	}

	var created bool
	err = p.db.QueryRowContext(ctx,
		`INSERT INTO products (
			supplier_id, sku, name, description, brand,
			barcode, original_barcode, model_code,
			original_name, original_description,
			ai_generated_name, ai_generated_description,
			ai_status, ai_last_run_at, ai_last_error,
			buying_price, selling_price, stock_quantity,
			category_path, published, market_category_id, market_brand_id,
			attributes, last_synced_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		ON CONFLICT (supplier_id, sku) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			brand = EXCLUDED.brand,
			barcode = EXCLUDED.barcode,
			original_barcode = EXCLUDED.original_barcode,
			model_code = EXCLUDED.model_code,
			original_name = EXCLUDED.original_name,
			original_description = EXCLUDED.original_description,
			ai_generated_name = EXCLUDED.ai_generated_name,
			ai_generated_description = EXCLUDED.ai_generated_description,
			ai_status = EXCLUDED.ai_status,
			ai_last_run_at = EXCLUDED.ai_last_run_at,
			ai_last_error = EXCLUDED.ai_last_error,
			buying_price = EXCLUDED.buying_price,
			selling_price = EXCLUDED.selling_price,
			stock_quantity = EXCLUDED.stock_quantity,
			category_path = EXCLUDED.category_path,
			published = EXCLUDED.published,
			market_category_id = EXCLUDED.market_category_id,
			market_brand_id = EXCLUDED.market_brand_id,
			attributes = EXCLUDED.attributes,
			last_synced_at = EXCLUDED.last_synced_at,
			updated_at = now()
		RETURNING id, created_at, updated_at, (xmax = 0)`,
		product.SupplierID, product.SKU, product.Name, product.Description, product.Brand,
		product.Barcode, product.OriginalBarcode, product.ModelCode,
		product.OriginalName, product.OriginalDescription,
		product.AIGeneratedName, product.AIGeneratedDescription,
		product.AIStatus, product.AILastRunAt, product.AILastError,
		product.BuyingPrice, product.SellingPrice, product.StockQuantity,
		product.CategoryPath, product.Published, product.MarketCategoryID, product.MarketBrandID,
		attributes, product.LastSyncedAt,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("can't upsert product %q: %w", product.SKU, err)
	}

	return created, nil
}

// UpdateProductAIState overwrites the product's content and AI
// bookkeeping fields.
func (p Postgres) UpdateProductAIState(ctx context.Context, product *models.Product) error {
	result, err := p.db.ExecContext(ctx,
		`UPDATE products SET
			name = $2, description = $3,
			original_name = $4, original_description = $5,
			ai_generated_name = $6, ai_generated_description = $7,
			ai_status = $8, ai_last_run_at = $9, ai_last_error = $10,
			updated_at = now()
		WHERE id = $1`,
		product.ID, product.Name, product.Description,
		product.OriginalName, product.OriginalDescription,
		product.AIGeneratedName, product.AIGeneratedDescription,
		product.AIStatus, product.AILastRunAt, product.AILastError,
	)
	if err != nil {
		return fmt.Errorf("can't update AI state of product %d: %w", product.ID, err)
	}
	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update AI state of product %d: no such product", product.ID)
	}

	return nil
}

// ZeroStockByBarcodes forces local stock of the products to zero.
func (p Postgres) ZeroStockByBarcodes(ctx context.Context, barcodes []string) error {
	if len(barcodes) == 0 {
		return nil
	}

	_, err := p.db.ExecContext(ctx,
		`UPDATE products SET stock_quantity = 0, updated_at = now() WHERE barcode = ANY($1)`,
		pq.Array(barcodes),
	)
	if err != nil {
		return fmt.Errorf("can't zero stock by barcodes: %w", err)
	}

	return nil
}

// UnpublishByBarcodes marks the products as not published locally.
func (p Postgres) UnpublishByBarcodes(ctx context.Context, barcodes []string) error {
	if len(barcodes) == 0 {
		return nil
	}

	_, err := p.db.ExecContext(ctx,
		`UPDATE products SET published = FALSE, updated_at = now() WHERE barcode = ANY($1)`,
		pq.Array(barcodes),
	)
	if err != nil {
		return fmt.Errorf("can't unpublish by barcodes: %w", err)
	}

	return nil
}

// CreateBatchRequest stores a new batch request row.
func (p Postgres) CreateBatchRequest(ctx context.Context, request models.BatchRequest) (*models.BatchRequest, error) {
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO batch_requests (
			request_id, type, status, supplier_id, item_count, failed_item_count, result, process_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		request.RequestID, request.Type, request.Status, request.SupplierID,
		request.ItemCount, request.FailedItemCount, request.Result, request.ProcessID,
	).Scan(&request.ID, &request.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("can't create batch request %q: %w", request.RequestID, err)
	}

	return &request, nil
}

// ListOpenBatchRequests returns all non-terminal batch requests, oldest
// first.
func (p Postgres) ListOpenBatchRequests(ctx context.Context) ([]models.BatchRequest, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, request_id, type, status, supplier_id,
			item_count, failed_item_count, result, process_id, created_at, last_checked_at
		FROM batch_requests
		WHERE status NOT IN ($1, $2, $3)
		ORDER BY created_at`,
		models.BatchStatusCompleted, models.BatchStatusFailed, models.BatchStatusVerified,
	)
	if err != nil {
		return nil, fmt.Errorf("can't list open batch requests: %w", err)
	}
	defer rows.Close()

	var requests []models.BatchRequest
	for rows.Next() {
		var request models.BatchRequest
		if err := rows.Scan(
			&request.ID, &request.RequestID, &request.Type, &request.Status, &request.SupplierID,
			&request.ItemCount, &request.FailedItemCount, &request.Result, &request.ProcessID,
			&request.CreatedAt, &request.LastCheckedAt,
		); err != nil {
			return nil, fmt.Errorf("can't scan batch request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// UpdateBatchRequest overwrites a batch request's mutable state.
func (p Postgres) UpdateBatchRequest(ctx context.Context, request *models.BatchRequest) error {
	result, err := p.db.ExecContext(ctx,
		`UPDATE batch_requests SET
			status = $2, failed_item_count = $3, result = $4, last_checked_at = $5
		WHERE id = $1`,
		request.ID, request.Status, request.FailedItemCount, request.Result, request.LastCheckedAt,
	)
	if err != nil {
		return fmt.Errorf("can't update batch request %q: %w", request.RequestID, err)
	}
	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update batch request %q: no such request", request.RequestID)
	}

	return nil
}

// MarkCompletedBatchesVerified promotes the supplier's COMPLETED batch
// requests to VERIFIED.
func (p Postgres) MarkCompletedBatchesVerified(ctx context.Context, supplierID int) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE batch_requests SET status = $3 WHERE supplier_id = $1 AND status = $2`,
		supplierID, models.BatchStatusCompleted, models.BatchStatusVerified,
	)
	if err != nil {
		return fmt.Errorf("can't mark batches verified: %w", err)
	}

	return nil
}

// StartProcess creates a background process record. It returns
// ErrAlreadyRunning when a sync process of the supplier is still
// processing.
func (p Postgres) StartProcess(ctx context.Context, process models.BackgroundProcess) (*models.BackgroundProcess, error) {
	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		if isSyncProcess(process.Type) && process.SupplierID != nil {
			var runningID int
			err := tx.QueryRowContext(ctx,
				`SELECT id FROM background_processes
				WHERE supplier_id = $1 AND type IN ($2, $3) AND status = $4
				LIMIT 1`,
				*process.SupplierID, models.ProcessFeedSync, models.ProcessManualFeedSync, models.ProcessProcessing,
			).Scan(&runningID)
			if err == nil {
				return platform.ErrAlreadyRunning
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("can't check running processes: %w", err)
			}
		}

		details, err := detailsJSON(process.Details)
		if err != nil {
			return err
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO background_processes (
				type, supplier_id, status, total_items, processed_items, message, details
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			process.Type, process.SupplierID, process.Status,
			process.TotalItems, process.ProcessedItems, process.Message, details,
		).Scan(&process.ID, &process.CreatedAt, &process.UpdatedAt)
		if err != nil {
			return fmt.Errorf("can't insert process: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't start process: %w", err)
	}

	return &process, nil
}

// UpdateProcessProgress updates a process's counters and message.
func (p Postgres) UpdateProcessProgress(ctx context.Context, process *models.BackgroundProcess) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE background_processes SET
			total_items = $2, processed_items = $3, message = $4, updated_at = now()
		WHERE id = $1`,
		process.ID, process.TotalItems, process.ProcessedItems, process.Message,
	)
	if err != nil {
		return fmt.Errorf("can't update process %d: %w", process.ID, err)
	}

	return nil
}

// FinishProcess finalizes a process record.
func (p Postgres) FinishProcess(ctx context.Context, process *models.BackgroundProcess) error {
	details, err := detailsJSON(process.Details)
	if err != nil {
		return err
	}

	result, err := p.db.ExecContext(ctx,
		`UPDATE background_processes SET
			status = $2, total_items = $3, processed_items = $4,
			message = $5, error_details = $6, details = $7,
			completed_at = $8, updated_at = now()
		WHERE id = $1`,
		process.ID, process.Status, process.TotalItems, process.ProcessedItems,
		process.Message, process.ErrorDetails, details, process.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("can't finish process %d: %w", process.ID, err)
	}
	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't finish process %d: no such process", process.ID)
	}

	return nil
}

// AppendProcessMessage appends one line to a background process log.
// A line already present in the log is not appended again.
func (p Postgres) AppendProcessMessage(ctx context.Context, processID int, message string) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE background_processes SET
			message = CASE WHEN message = '' THEN $2 ELSE message || E'\n' || $2 END,
			updated_at = now()
		WHERE id = $1 AND position($2 in message) = 0`,
		processID, message,
	)
	if err != nil {
		return fmt.Errorf("can't append message to process %d: %w", processID, err)
	}

	return nil
}

func isSyncProcess(processType models.ProcessType) bool {
	return processType == models.ProcessFeedSync || processType == models.ProcessManualFeedSync
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
