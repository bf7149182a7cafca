package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeedItem is one product entry decoded from a supplier feed file.
// It lives only for the duration of a single sync pass.
type FeedItem struct {
	SKU          string
	Name         string
	Description  string
	Brand        string
	Barcode      string
	CategoryPath string
	Stock        int
	BuyingPrice  decimal.Decimal
	ImageURLs    []string
	Raw          map[string]string
}

// Supplier is a feed source.
type Supplier struct {
	ID        int
	Name      string
	FeedURL   string
	IsActive  bool
	CreatedAt time.Time
}

// SupplierSettings holds the tax, fee and margin configuration of one supplier.
// Fields named *Rate are percentages (20 means 20%).
type SupplierSettings struct {
	SupplierID int

	ProfitMargin  decimal.Decimal
	ShippingCost  decimal.Decimal
	PriceRounding bool

	SKUPrefix        string
	UseUniqueBarcode bool
	MinStock         int

	IncludeCommission     bool
	DefaultCommissionRate decimal.Decimal

	ServiceFee         decimal.Decimal
	WithholdingTaxRate decimal.Decimal

	BuyingPriceIncludesVAT bool
	BuyingVATRate          decimal.Decimal
	SellingVATRate         decimal.Decimal

	StopStockUpdate bool
	StopPriceUpdate bool

	AutoUpdateInterval int
	LastAutoUpdate     *time.Time
	BatchCheckInterval int
	LastBatchCheck     *time.Time

	ZeroStockOnError bool
}

// AIStatus is the state of AI generated content of a product.
type AIStatus string

// AI content states.
const (
	AIOriginal   AIStatus = "original"
	AIProcessing AIStatus = "processing"
	AIGenerated  AIStatus = "generated"
	AIError      AIStatus = "error"
)

// Product is the persistent product model.
// SellingPrice is always derived from BuyingPrice by the pricing engine.
type Product struct {
	ID         int
	SupplierID int
	SKU        string

	Name        string
	Description string
	Brand       *string

	Barcode         *string
	OriginalBarcode *string
	ModelCode       *string

	OriginalName           *string
	OriginalDescription    *string
	AIGeneratedName        *string
	AIGeneratedDescription *string
	AIStatus               AIStatus
	AILastRunAt            *time.Time
	AILastError            *string

	BuyingPrice   decimal.Decimal
	SellingPrice  decimal.Decimal
	StockQuantity int

	CategoryPath     *string
	Published        bool
	MarketCategoryID *int
	MarketBrandID    *int

	Attributes map[string]string

	LastSyncedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RuleType tells whether a price rule raises or lowers the price.
type RuleType string

// OperationType tells whether a price rule value is a percentage or an amount.
type OperationType string

// Price rule kinds.
const (
	RuleIncrease RuleType = "increase"
	RuleDecrease RuleType = "decrease"

	OperationPercentage OperationType = "percentage"
	OperationFixed      OperationType = "fixed"
)

// PriceRule overrides the cost model for costs inside [MinPrice, MaxPrice).
type PriceRule struct {
	ID         int
	SupplierID int

	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal

	RuleType      RuleType
	OperationType OperationType
	Value         decimal.Decimal
	ExtraCost     decimal.Decimal
}

// CategoryMapping binds one feed category path to a marketplace category.
type CategoryMapping struct {
	ID           int
	FeedCategory string
	CategoryID   int
	CategoryName *string
}

// BrandMapping binds one feed brand name to a marketplace brand id.
type BrandMapping struct {
	ID        int
	FeedBrand string
	BrandID   int
}

// MappingType is the source of an attribute value.
type MappingType string

// Attribute mapping sources.
const (
	MappingFixed MappingType = "fixed"
	MappingFeed  MappingType = "xml"
	MappingSmart MappingType = "smart"
)

// AttributeMapping declares how one marketplace attribute of a mapped
// category gets its value.
type AttributeMapping struct {
	ID                int
	CategoryMappingID int

	AttributeID   int
	AttributeName string

	Type        MappingType
	StaticValue *string
	FeedField   *string

	Required bool
}

// CommissionCategory is one row of the marketplace commission reference table.
type CommissionCategory struct {
	ID             int
	CategoryID     int
	Name           string
	CommissionRate decimal.Decimal
}

// AttributeValue is one enumerated value of a marketplace schema attribute.
type AttributeValue struct {
	ID   int
	Name string
}

// SchemaAttribute is one attribute of a marketplace category schema.
type SchemaAttribute struct {
	ID       int
	Name     string
	Required bool
	Values   []AttributeValue
}

// LeafCategory is a flattened leaf of the marketplace category tree.
type LeafCategory struct {
	ID   int
	Name string
	Path string
}

// BatchType is the kind of operation a batch request carries.
type BatchType string

// Batch request kinds, mirroring the marketplace vocabulary.
const (
	BatchCreate          BatchType = "ProductCreation"
	BatchInventoryUpdate BatchType = "ProductInventoryUpdate"
	BatchArchiveUpdate   BatchType = "ProductArchiveUpdate"
	BatchDeletion        BatchType = "ProductDeletion"
	BatchUpdate          BatchType = "ProductUpdate"
)

// Batch statuses. The marketplace reports PROCESSING, COMPLETED and FAILED;
// VERIFIED is set locally after a successful re-check and is terminal.
const (
	BatchStatusProcessing = "PROCESSING"
	BatchStatusCompleted  = "COMPLETED"
	BatchStatusFailed     = "FAILED"
	BatchStatusVerified   = "VERIFIED"
)

// BatchRequest tracks one asynchronous submission to the marketplace.
type BatchRequest struct {
	ID         int
	RequestID  string
	Type       BatchType
	Status     string
	SupplierID *int

	ItemCount       int
	FailedItemCount int

	Result []byte

	ProcessID *int

	CreatedAt     time.Time
	LastCheckedAt *time.Time
}

// IsTerminal reports whether the batch needs no further polling.
func (b *BatchRequest) IsTerminal() bool {
	switch b.Status {
	case BatchStatusCompleted, BatchStatusFailed, BatchStatusVerified:
		return true
	}
	return false
}

// ProcessType is the kind of a background process.
type ProcessType string

// ProcessStatus is the state of a background process.
type ProcessStatus string

// Background process kinds and states.
const (
	ProcessFeedSync          ProcessType = "feed_sync"
	ProcessManualFeedSync    ProcessType = "manual_feed_sync"
	ProcessMarketplaceUpdate ProcessType = "marketplace_update"

	ProcessPending    ProcessStatus = "pending"
	ProcessProcessing ProcessStatus = "processing"
	ProcessCompleted  ProcessStatus = "completed"
	ProcessFailed     ProcessStatus = "failed"
	ProcessCancelled  ProcessStatus = "cancelled"
)

// SyncCommand requests one sync run for a supplier.
type SyncCommand struct {
	SupplierID    int      `json:"supplierId"`
	Force         bool     `json:"force"`
	PublishedOnly bool     `json:"publishedOnly"`
	SKUs          []string `json:"skus,omitempty"`
	Verify        bool     `json:"verify"`
}

// CheckBatchesCommand requests one polling pass over open batches.
type CheckBatchesCommand struct{}

// BackgroundProcess tracks one long-running operation.
type BackgroundProcess struct {
	ID         int
	Type       ProcessType
	SupplierID *int
	Status     ProcessStatus

	TotalItems     int
	ProcessedItems int

	Message      string
	Details      map[string]any
	ErrorDetails *string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}
