// Package syncer orchestrates one feed sync run: fetch and decode the
// supplier feed, resolve taxonomy and prices against the reference
// snapshot, upsert products and push changed published items to the
// marketplace.
package syncer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketfeed/trendyol-sync/internal/category"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/marketfeed/trendyol-sync/internal/pricing"
	"github.com/marketfeed/trendyol-sync/internal/trendyol"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Decoder --filename decoder.go
//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Submitter --filename submitter.go

// Fetcher fetches feed file.
type Fetcher interface {
	FetchFile(ctx context.Context, url string) (io.ReadCloser, error)
}

// Decoder decodes a feed file into feed items.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader) (items []models.FeedItem, skipped int, err error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Storage is suppliers, products, reference tables and processes
// storage.
type Storage interface {
	// GetSupplier returns one supplier by id.
	GetSupplier(ctx context.Context, supplierID int) (*models.Supplier, error)
	// GetSupplierSettings returns the settings of one supplier.
	GetSupplierSettings(ctx context.Context, supplierID int) (*models.SupplierSettings, error)
	// TouchSupplierAutoUpdate records the time of the last sync run.
	TouchSupplierAutoUpdate(ctx context.Context, supplierID int, at time.Time) error

	// ListPriceRules returns the supplier's price rules in priority order.
	ListPriceRules(ctx context.Context, supplierID int) ([]models.PriceRule, error)
	// ListCategoryMappings returns all category mappings.
	ListCategoryMappings(ctx context.Context) ([]models.CategoryMapping, error)
	// ListBrandMappings returns all brand mappings.
	ListBrandMappings(ctx context.Context) ([]models.BrandMapping, error)
	// ListCommissionCategories returns the commission reference table.
	ListCommissionCategories(ctx context.Context) ([]models.CommissionCategory, error)

	// GetProductBySKU returns a product or nil when unknown.
	GetProductBySKU(ctx context.Context, supplierID int, sku string) (*models.Product, error)
	// UpsertProduct creates or updates a product keyed by supplier and
	// SKU. Reports whether the product was created.
	UpsertProduct(ctx context.Context, product *models.Product) (created bool, err error)

	// StartProcess creates a background process record.
	StartProcess(ctx context.Context, process models.BackgroundProcess) (*models.BackgroundProcess, error)
	// UpdateProcessProgress updates a process's counters and message.
	UpdateProcessProgress(ctx context.Context, process *models.BackgroundProcess) error
	// FinishProcess finalizes a process record.
	FinishProcess(ctx context.Context, process *models.BackgroundProcess) error
}

// Submitter submits inventory changes to the marketplace.
type Submitter interface {
	SubmitInventory(
		ctx context.Context,
		supplierID int,
		items []trendyol.InventoryItem,
		processID *int,
	) ([]models.BatchRequest, error)
}

// Stats summarizes one sync run.
type Stats struct {
	Created   int
	Updated   int
	Skipped   int
	Failed    int
	Submitted int
}

// referenceSnapshot is the read-only reference data of one run, loaded
// once so a concurrent administrator's edits are not observed mid-run.
type referenceSnapshot struct {
	rules       []models.PriceRule
	categories  map[string]models.CategoryMapping
	brands      []models.BrandMapping
	commissions []models.CommissionCategory
}

// Option is custom configuration of Syncer.
type Option func(s *Syncer)

// Syncer runs feed sync passes.
type Syncer struct {
	fetcher   Fetcher
	decoder   Decoder
	storage   Storage
	submitter Submitter
	engine    *pricing.Engine
	resolver  *category.Resolver
	clock     Clock
}

// NewSyncer returns a new Syncer.
func NewSyncer(
	fetcher Fetcher,
	decoder Decoder,
	storage Storage,
	submitter Submitter,
	ops ...Option,
) *Syncer {
	syn := &Syncer{
		fetcher:   fetcher,
		decoder:   decoder,
		storage:   storage,
		submitter: submitter,
		engine:    pricing.NewEngine(),
		resolver:  category.NewResolver(),
		clock:     systemClock{},
	}

	for _, op := range ops {
		op(syn)
	}

	return syn
}

// WithClock sets Syncer's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Syncer) {
		s.clock = c
	}
}

// Sync runs one sync pass for the command's supplier.
func (s *Syncer) Sync(ctx context.Context, cmd models.SyncCommand) (Stats, error) {
	supplier, err := s.storage.GetSupplier(ctx, cmd.SupplierID)
	if err != nil {
		return Stats{}, fmt.Errorf("can't load supplier: %w", err)
	}
	if !supplier.IsActive {
		return Stats{}, ErrSupplierInactive
	}

	settings, err := s.storage.GetSupplierSettings(ctx, cmd.SupplierID)
	if err != nil {
		return Stats{}, fmt.Errorf("can't load supplier settings: %w", err)
	}

	if !cmd.Force && !s.due(settings) {
		return Stats{}, ErrNotDue
	}

	processType := models.ProcessFeedSync
	if cmd.Force {
		processType = models.ProcessManualFeedSync
	}
	process, err := s.storage.StartProcess(ctx, models.BackgroundProcess{
		Type:       processType,
		SupplierID: lo.ToPtr(cmd.SupplierID),
		Status:     models.ProcessProcessing,
	})
	if err != nil {
		return Stats{}, fmt.Errorf("can't start sync process: %w", err)
	}

	stats, err := s.runSync(ctx, cmd, supplier, settings, process)
	return stats, s.finishSync(ctx, process, stats, err)
}

func (s *Syncer) runSync(
	ctx context.Context,
	cmd models.SyncCommand,
	supplier *models.Supplier,
	settings *models.SupplierSettings,
	process *models.BackgroundProcess,
) (Stats, error) {
	feedFile, err := s.fetcher.FetchFile(ctx, supplier.FeedURL)
	if err != nil {
		return Stats{}, fmt.Errorf("can't fetch feed file: %w", err)
	}
	defer feedFile.Close()

	items, skipped, err := s.decoder.Decode(ctx, feedFile)
	if err != nil {
		return Stats{}, fmt.Errorf("can't decode feed file: %w", err)
	}

	snapshot, err := s.loadSnapshot(ctx, cmd.SupplierID)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Skipped: skipped}
	process.TotalItems = len(items)

	var changed []trendyol.InventoryItem
	targeted := targetSet(cmd.SKUs)

	for _, item := range items {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		sku := settings.SKUPrefix + item.SKU
		if targeted != nil && !targeted[sku] && !targeted[item.SKU] {
			continue
		}

		inventory, outcome, err := s.syncItem(ctx, cmd, settings, snapshot, sku, item)
		if err != nil {
			return stats, err
		}

		switch outcome {
		case itemCreated:
			stats.Created++
		case itemUpdated:
			stats.Updated++
		case itemFailed:
			stats.Failed++
		case itemSkipped:
			stats.Skipped++
		}

		if inventory != nil {
			changed = append(changed, *inventory)
		}

		process.ProcessedItems++
		if process.ProcessedItems%500 == 0 {
			_ = s.storage.UpdateProcessProgress(ctx, process)
		}
	}

	if len(changed) > 0 {
		if _, err := s.submitter.SubmitInventory(ctx, cmd.SupplierID, changed, lo.ToPtr(process.ID)); err != nil {
			return stats, fmt.Errorf("can't submit inventory changes: %w", err)
		}
		stats.Submitted = len(changed)
	}

	if err := s.storage.TouchSupplierAutoUpdate(ctx, cmd.SupplierID, *s.clock.Now()); err != nil {
		return stats, fmt.Errorf("can't record sync time: %w", err)
	}

	return stats, nil
}

type itemOutcome int

const (
	itemCreated itemOutcome = iota
	itemUpdated
	itemFailed
	itemSkipped
)

// syncItem processes one feed item. It returns the inventory change to
// submit when the item is published and its price or stock moved.
func (s *Syncer) syncItem(
	ctx context.Context,
	cmd models.SyncCommand,
	settings *models.SupplierSettings,
	snapshot *referenceSnapshot,
	sku string,
	item models.FeedItem,
) (*trendyol.InventoryItem, itemOutcome, error) {
	existing, err := s.storage.GetProductBySKU(ctx, settings.SupplierID, sku)
	if err != nil {
		return nil, itemFailed, fmt.Errorf("can't load product %q: %w", sku, err)
	}

	if cmd.PublishedOnly && (existing == nil || !existing.Published) {
		return nil, itemSkipped, nil
	}

	stock := item.Stock
	if stock < settings.MinStock {
		stock = 0
	}

	commissionRate := s.commissionRate(item.CategoryPath, snapshot)

	price, priceErr := s.price(item, settings, snapshot.rules, commissionRate)
	if priceErr != nil {
		// Calculation and input errors degrade, they never abort the run.
		if existing == nil {
			return nil, itemFailed, nil
		}
		if !settings.ZeroStockOnError {
			return nil, itemFailed, nil
		}
		price = existing.SellingPrice
		stock = 0
	}

	product := existing
	created := existing == nil
	if created {
		product = &models.Product{
			SupplierID: settings.SupplierID,
			SKU:        sku,
			AIStatus:   models.AIOriginal,
		}
		product.Barcode = lo.ToPtr(s.barcode(settings, sku, item))
		if item.Barcode != "" {
			product.OriginalBarcode = lo.ToPtr(item.Barcode)
		}
	}

	if created || product.AIStatus != models.AIGenerated {
		product.Name = item.Name
		product.Description = item.Description
	}
	if item.Brand != "" {
		product.Brand = lo.ToPtr(item.Brand)
	}
	if item.CategoryPath != "" {
		product.CategoryPath = lo.ToPtr(item.CategoryPath)
	}

	priceChanged := created || !product.SellingPrice.Equal(price)
	stockChanged := created || product.StockQuantity != stock

	if created || !settings.StopPriceUpdate {
		product.BuyingPrice = item.BuyingPrice
		product.SellingPrice = price
	} else {
		priceChanged = false
	}
	if created || !settings.StopStockUpdate {
		product.StockQuantity = stock
	} else {
		stockChanged = false
	}

	s.resolveTaxonomy(product, item, snapshot)

	product.LastSyncedAt = s.clock.Now()

	if _, err := s.storage.UpsertProduct(ctx, product); err != nil {
		return nil, itemFailed, fmt.Errorf("can't upsert product %q: %w", sku, err)
	}

	outcome := itemUpdated
	if created {
		outcome = itemCreated
	}

	if product.Published && (priceChanged || stockChanged) && product.Barcode != nil {
		return &trendyol.InventoryItem{
			Barcode:   *product.Barcode,
			Quantity:  product.StockQuantity,
			SalePrice: product.SellingPrice,
			ListPrice: product.SellingPrice,
		}, outcome, nil
	}

	return nil, outcome, nil
}

func (s *Syncer) price(
	item models.FeedItem,
	settings *models.SupplierSettings,
	rules []models.PriceRule,
	commissionRate *decimal.Decimal,
) (decimal.Decimal, error) {
	if item.BuyingPrice.IsZero() {
		return decimal.Zero, fmt.Errorf("item %q has no parseable price: %w", item.SKU, pricing.ErrInvalidConfig)
	}
	return s.engine.SellingPrice(item.BuyingPrice, *settings, rules, commissionRate)
}

func (s *Syncer) commissionRate(feedCategory string, snapshot *referenceSnapshot) *decimal.Decimal {
	mapping, ok := snapshot.categories[normalizePath(feedCategory)]
	if !ok {
		return nil
	}
	return category.CommissionFor(mapping, snapshot.commissions)
}

// resolveTaxonomy fills market category and brand ids from the
// reference snapshot; unresolved values stay nil for later matching.
func (s *Syncer) resolveTaxonomy(product *models.Product, item models.FeedItem, snapshot *referenceSnapshot) {
	if mapping, ok := snapshot.categories[normalizePath(item.CategoryPath)]; ok {
		product.MarketCategoryID = lo.ToPtr(mapping.CategoryID)
	}
	if item.Brand != "" {
		if brandID, ok := s.resolver.ResolveBrand(item.Brand, snapshot.brands); ok {
			product.MarketBrandID = lo.ToPtr(brandID)
		}
	}
}

// barcode picks the product's marketplace barcode. Suppliers reusing
// manufacturer barcodes across sellers get a generated unique one.
func (s *Syncer) barcode(settings *models.SupplierSettings, sku string, item models.FeedItem) string {
	if settings.UseUniqueBarcode {
		return fmt.Sprintf("TY-%s-%s", sku, uuid.NewString()[:8])
	}
	if item.Barcode != "" {
		return item.Barcode
	}
	return sku
}

func (s *Syncer) loadSnapshot(ctx context.Context, supplierID int) (*referenceSnapshot, error) {
	rules, err := s.storage.ListPriceRules(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("can't load price rules: %w", err)
	}
	mappings, err := s.storage.ListCategoryMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load category mappings: %w", err)
	}
	brands, err := s.storage.ListBrandMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load brand mappings: %w", err)
	}
	commissions, err := s.storage.ListCommissionCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load commission categories: %w", err)
	}

	categories := make(map[string]models.CategoryMapping, len(mappings))
	for _, mapping := range mappings {
		categories[normalizePath(mapping.FeedCategory)] = mapping
	}

	return &referenceSnapshot{
		rules:       rules,
		categories:  categories,
		brands:      brands,
		commissions: commissions,
	}, nil
}

func (s *Syncer) due(settings *models.SupplierSettings) bool {
	if settings.AutoUpdateInterval <= 0 || settings.LastAutoUpdate == nil {
		return true
	}
	interval := time.Duration(settings.AutoUpdateInterval) * time.Minute
	return s.clock.Now().Sub(*settings.LastAutoUpdate) >= interval
}

func (s *Syncer) finishSync(
	ctx context.Context,
	process *models.BackgroundProcess,
	stats Stats,
	status error,
) error {
	process.Status = models.ProcessCompleted
	process.Message = fmt.Sprintf("created %d, updated %d, failed %d, skipped %d, submitted %d",
		stats.Created, stats.Updated, stats.Failed, stats.Skipped, stats.Submitted)
	if status != nil {
		process.Status = models.ProcessFailed
		process.ErrorDetails = lo.ToPtr(status.Error())
	}
	process.CompletedAt = s.clock.Now()

	err := s.storage.FinishProcess(ctx, process)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish sync process: %w", err)
	}
	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed sync process: %w (fail reason: %w)", err, status)
	}

	return status
}

func targetSet(skus []string) map[string]bool {
	if len(skus) == 0 {
		return nil
	}
	set := make(map[string]bool, len(skus))
	for _, sku := range skus {
		set[sku] = true
	}
	return set
}

func normalizePath(path string) string {
	return strings.ToLower(strings.TrimSpace(path))
}
