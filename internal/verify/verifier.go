// Package verify re-checks the marketplace's live price and stock
// against local records and resubmits only the drifted subset, keeping
// correction traffic proportional to actual drift.
package verify

import (
	"context"
	"fmt"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/marketfeed/trendyol-sync/internal/trendyol"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Marketplace --filename marketplace.go
//go:generate mockery --name Submitter --filename submitter.go

// defaultBatchSize bounds how many barcodes go into one query; the
// query-by-barcode endpoint has a practical URL length ceiling.
const defaultBatchSize = 50

// defaultPriceTolerance is the price difference, in currency units,
// below which remote and local prices count as equal.
var defaultPriceTolerance = decimal.NewFromFloat(0.10)

// Storage reads published products and finalizes verified batches.
type Storage interface {
	// ListPublishedProducts returns the supplier's published products.
	ListPublishedProducts(ctx context.Context, supplierID int) ([]models.Product, error)
	// MarkCompletedBatchesVerified promotes the supplier's COMPLETED
	// batch requests to VERIFIED.
	MarkCompletedBatchesVerified(ctx context.Context, supplierID int) error
}

// Marketplace reads live product state.
type Marketplace interface {
	GetProductsByBarcodes(ctx context.Context, barcodes []string) ([]trendyol.RemoteProduct, error)
}

// Submitter submits correction batches.
type Submitter interface {
	SubmitInventory(
		ctx context.Context,
		supplierID int,
		items []trendyol.InventoryItem,
		processID *int,
	) ([]models.BatchRequest, error)
}

// Report summarizes one verification pass.
type Report struct {
	Checked   int
	Drifted   int
	Missing   int
	Corrected int
}

// Option is custom configuration of Verifier.
type Option func(v *Verifier)

// Verifier compares local and remote product state.
type Verifier struct {
	storage        Storage
	marketplace    Marketplace
	submitter      Submitter
	batchSize      int
	priceTolerance decimal.Decimal
}

// NewVerifier returns a new Verifier.
func NewVerifier(storage Storage, marketplace Marketplace, submitter Submitter, ops ...Option) *Verifier {
	ver := &Verifier{
		storage:        storage,
		marketplace:    marketplace,
		submitter:      submitter,
		batchSize:      defaultBatchSize,
		priceTolerance: defaultPriceTolerance,
	}

	for _, op := range ops {
		op(ver)
	}

	return ver
}

// WithBatchSize sets how many barcodes go into one remote query.
func WithBatchSize(size int) Option {
	return func(v *Verifier) {
		v.batchSize = size
	}
}

// WithPriceTolerance sets the price comparison tolerance.
func WithPriceTolerance(tolerance decimal.Decimal) Option {
	return func(v *Verifier) {
		v.priceTolerance = tolerance
	}
}

// Verify fetches the live state of every published product in bounded
// barcode batches, flags price drift beyond the tolerance and any stock
// difference, and resubmits only the mismatched subset. When remote
// state fully matches, the supplier's completed batches are promoted
// to VERIFIED.
func (v *Verifier) Verify(ctx context.Context, supplierID int, processID *int) (Report, error) {
	products, err := v.storage.ListPublishedProducts(ctx, supplierID)
	if err != nil {
		return Report{}, fmt.Errorf("can't list published products: %w", err)
	}

	byBarcode := make(map[string]models.Product, len(products))
	for _, product := range products {
		if product.Barcode != nil && *product.Barcode != "" {
			byBarcode[*product.Barcode] = product
		}
	}

	report := Report{Checked: len(byBarcode)}
	var corrections []trendyol.InventoryItem

	barcodes := lo.Keys(byBarcode)
	for _, chunk := range lo.Chunk(barcodes, v.batchSize) {
		remote, err := v.marketplace.GetProductsByBarcodes(ctx, chunk)
		if err != nil {
			return report, fmt.Errorf("can't fetch remote products: %w", err)
		}

		remoteByBarcode := make(map[string]trendyol.RemoteProduct, len(remote))
		for _, r := range remote {
			remoteByBarcode[r.Barcode] = r
		}

		for _, barcode := range chunk {
			local := byBarcode[barcode]
			live, ok := remoteByBarcode[barcode]
			if !ok {
				report.Missing++
				continue
			}
			if v.drifted(local, live) {
				report.Drifted++
				corrections = append(corrections, trendyol.InventoryItem{
					Barcode:   barcode,
					Quantity:  local.StockQuantity,
					SalePrice: local.SellingPrice,
					ListPrice: local.SellingPrice,
				})
			}
		}
	}

	if len(corrections) > 0 {
		if _, err := v.submitter.SubmitInventory(ctx, supplierID, corrections, processID); err != nil {
			return report, fmt.Errorf("can't submit corrections: %w", err)
		}
		report.Corrected = len(corrections)
		return report, nil
	}

	if report.Missing == 0 {
		if err := v.storage.MarkCompletedBatchesVerified(ctx, supplierID); err != nil {
			return report, fmt.Errorf("can't mark batches verified: %w", err)
		}
	}

	return report, nil
}

// drifted reports whether live state disagrees with the local record.
// Stock must match exactly; price may differ up to the tolerance.
func (v *Verifier) drifted(local models.Product, live trendyol.RemoteProduct) bool {
	if live.Quantity != local.StockQuantity {
		return true
	}
	return live.SalePrice.Sub(local.SellingPrice).Abs().GreaterThan(v.priceTolerance)
}
