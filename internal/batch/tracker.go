// Package batch tracks asynchronous marketplace submissions: chunked
// batch creation, idempotent status polling and automatic remediation
// of partial failures.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/marketfeed/trendyol-sync/internal/trendyol"
	"github.com/samber/lo"
)

//go:generate mockery --name Marketplace --filename marketplace.go
//go:generate mockery --name Storage --filename storage.go

// defaultChunkSize is the marketplace's per-request item cap.
const defaultChunkSize = 1000

// archiveRequiredPhrase appears in deletion failure reasons when the
// marketplace wants the product archived before it can be deleted.
const archiveRequiredPhrase = "arşivle"

// Marketplace is the subset of the marketplace API the tracker uses.
type Marketplace interface {
	CreateProducts(ctx context.Context, items []trendyol.ProductPayload) (string, error)
	UpdatePriceAndInventory(ctx context.Context, items []trendyol.InventoryItem) (string, error)
	DeleteProducts(ctx context.Context, barcodes []string) (string, error)
	SetArchived(ctx context.Context, barcodes []string, archived bool) (string, error)
	GetBatchStatus(ctx context.Context, batchRequestID string) (*trendyol.BatchStatus, error)
}

// Storage persists batch requests and applies remediation to products.
type Storage interface {
	// CreateBatchRequest stores a new batch request row.
	CreateBatchRequest(ctx context.Context, request models.BatchRequest) (*models.BatchRequest, error)
	// ListOpenBatchRequests returns all non-terminal batch requests.
	ListOpenBatchRequests(ctx context.Context) ([]models.BatchRequest, error)
	// UpdateBatchRequest overwrites a batch request's mutable state.
	UpdateBatchRequest(ctx context.Context, request *models.BatchRequest) error
	// GetSupplierSettings returns the settings of one supplier.
	GetSupplierSettings(ctx context.Context, supplierID int) (*models.SupplierSettings, error)
	// ZeroStockByBarcodes forces local stock of the products to zero.
	ZeroStockByBarcodes(ctx context.Context, barcodes []string) error
	// UnpublishByBarcodes marks the products as not published locally.
	UnpublishByBarcodes(ctx context.Context, barcodes []string) error
	// AppendProcessMessage appends one line to a background process log.
	AppendProcessMessage(ctx context.Context, processID int, message string) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Option is custom configuration of Tracker.
type Option func(t *Tracker)

// Tracker manages the batch request lifecycle.
type Tracker struct {
	marketplace Marketplace
	storage     Storage
	chunkSize   int
	clock       Clock
}

// NewTracker returns a new Tracker.
func NewTracker(marketplace Marketplace, storage Storage, ops ...Option) *Tracker {
	tr := &Tracker{
		marketplace: marketplace,
		storage:     storage,
		chunkSize:   defaultChunkSize,
		clock:       systemClock{},
	}

	for _, op := range ops {
		op(tr)
	}

	return tr
}

// WithChunkSize sets the per-request item cap.
func WithChunkSize(size int) Option {
	return func(t *Tracker) {
		t.chunkSize = size
	}
}

// WithClock sets Tracker's custom Clock.
func WithClock(c Clock) Option {
	return func(t *Tracker) {
		t.clock = c
	}
}

// SubmitInventory submits price and stock changes in chunks. Every
// chunk becomes its own batch request row; a chunk's failure does not
// abort the remaining chunks and is reported after all chunks ran.
func (t *Tracker) SubmitInventory(
	ctx context.Context,
	supplierID int,
	items []trendyol.InventoryItem,
	processID *int,
) ([]models.BatchRequest, error) {
	var firstErr error
	var requests []models.BatchRequest

	for _, chunk := range lo.Chunk(items, t.chunkSize) {
		requestID, err := t.marketplace.UpdatePriceAndInventory(ctx, chunk)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("can't submit inventory chunk: %w", err)
			}
			continue
		}

		request, err := t.recordSubmission(ctx, supplierID, requestID, models.BatchInventoryUpdate, len(chunk), processID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		requests = append(requests, *request)
	}

	return requests, firstErr
}

// SubmitCreation submits new products in chunks.
func (t *Tracker) SubmitCreation(
	ctx context.Context,
	supplierID int,
	payloads []trendyol.ProductPayload,
	processID *int,
) ([]models.BatchRequest, error) {
	var firstErr error
	var requests []models.BatchRequest

	for _, chunk := range lo.Chunk(payloads, t.chunkSize) {
		requestID, err := t.marketplace.CreateProducts(ctx, chunk)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("can't submit creation chunk: %w", err)
			}
			continue
		}

		request, err := t.recordSubmission(ctx, supplierID, requestID, models.BatchCreate, len(chunk), processID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		requests = append(requests, *request)
	}

	return requests, firstErr
}

// SubmitDeletion submits product deletions in chunks.
func (t *Tracker) SubmitDeletion(
	ctx context.Context,
	supplierID int,
	barcodes []string,
	processID *int,
) ([]models.BatchRequest, error) {
	var firstErr error
	var requests []models.BatchRequest

	for _, chunk := range lo.Chunk(barcodes, t.chunkSize) {
		requestID, err := t.marketplace.DeleteProducts(ctx, chunk)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("can't submit deletion chunk: %w", err)
			}
			continue
		}

		request, err := t.recordSubmission(ctx, supplierID, requestID, models.BatchDeletion, len(chunk), processID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		requests = append(requests, *request)
	}

	return requests, firstErr
}

// CheckOpenBatches polls every non-terminal batch request, updates its
// local state and runs failure remediation on batches that ended up
// FAILED. Returns the number of batches that reached a terminal state.
func (t *Tracker) CheckOpenBatches(ctx context.Context) (int, error) {
	open, err := t.storage.ListOpenBatchRequests(ctx)
	if err != nil {
		return 0, fmt.Errorf("can't list open batch requests: %w", err)
	}

	finished := 0
	var firstErr error
	for i := range open {
		done, err := t.checkBatch(ctx, &open[i])
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if done {
			finished++
		}
	}

	return finished, firstErr
}

// checkBatch polls one batch request. Updates are last-write-wins, so
// repeated polling of the same batch is safe.
func (t *Tracker) checkBatch(ctx context.Context, request *models.BatchRequest) (bool, error) {
	status, err := t.marketplace.GetBatchStatus(ctx, request.RequestID)
	if err != nil {
		return false, fmt.Errorf("can't get batch status %q: %w", request.RequestID, err)
	}

	request.Status = status.Status
	request.FailedItemCount = status.FailedItemCount
	request.LastCheckedAt = t.clock.Now()
	if result, err := json.Marshal(status); err == nil {
		request.Result = result
	}

	if err := t.storage.UpdateBatchRequest(ctx, request); err != nil {
		return false, fmt.Errorf("can't update batch request %q: %w", request.RequestID, err)
	}

	if request.ProcessID != nil {
		message := fmt.Sprintf("batch %s is %s, %d of %d items failed",
			request.RequestID, request.Status, request.FailedItemCount, request.ItemCount)
		_ = t.storage.AppendProcessMessage(ctx, *request.ProcessID, message)
	}

	if request.Status == models.BatchStatusFailed {
		if err := t.remediate(ctx, request, status); err != nil {
			return true, err
		}
	}

	return request.IsTerminal(), nil
}

// remediate applies the automatic failure policies: zero stock for
// suppliers configured that way, and archive-then-unpublish when a
// deletion failed because the marketplace requires archiving first.
func (t *Tracker) remediate(ctx context.Context, request *models.BatchRequest, status *trendyol.BatchStatus) error {
	failed := failedItems(status)
	if len(failed) == 0 {
		return nil
	}

	barcodes := lo.Map(failed, func(item trendyol.BatchItemResult, _ int) string { return item.Barcode })

	if request.Type == models.BatchDeletion {
		archivable := archiveRequiredBarcodes(failed)
		if len(archivable) > 0 {
			return t.archiveAndUnpublish(ctx, request, archivable)
		}
	}

	if request.SupplierID == nil {
		return nil
	}

	settings, err := t.storage.GetSupplierSettings(ctx, *request.SupplierID)
	if err != nil {
		return fmt.Errorf("can't load supplier settings for remediation: %w", err)
	}
	if settings.ZeroStockOnError {
		if err := t.storage.ZeroStockByBarcodes(ctx, barcodes); err != nil {
			return fmt.Errorf("can't zero stock of failed items: %w", err)
		}
	}

	return nil
}

// archiveAndUnpublish issues one follow-up archive batch covering only
// the affected barcodes and marks those products unpublished locally.
func (t *Tracker) archiveAndUnpublish(ctx context.Context, request *models.BatchRequest, barcodes []string) error {
	requestID, err := t.marketplace.SetArchived(ctx, barcodes, true)
	if err != nil {
		return fmt.Errorf("can't archive failed deletions: %w", err)
	}

	supplierID := 0
	if request.SupplierID != nil {
		supplierID = *request.SupplierID
	}
	if _, err := t.recordSubmission(
		ctx, supplierID, requestID, models.BatchArchiveUpdate, len(barcodes), request.ProcessID,
	); err != nil {
		return err
	}

	if err := t.storage.UnpublishByBarcodes(ctx, barcodes); err != nil {
		return fmt.Errorf("can't unpublish archived products: %w", err)
	}

	return nil
}

func (t *Tracker) recordSubmission(
	ctx context.Context,
	supplierID int,
	requestID string,
	batchType models.BatchType,
	itemCount int,
	processID *int,
) (*models.BatchRequest, error) {
	request := models.BatchRequest{
		RequestID:  requestID,
		Type:       batchType,
		Status:     models.BatchStatusProcessing,
		SupplierID: lo.ToPtr(supplierID),
		ItemCount:  itemCount,
		ProcessID:  processID,
	}

	stored, err := t.storage.CreateBatchRequest(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("can't record batch request %q: %w", requestID, err)
	}
	return stored, nil
}

func failedItems(status *trendyol.BatchStatus) []trendyol.BatchItemResult {
	return lo.Filter(status.Items, func(item trendyol.BatchItemResult, _ int) bool {
		return item.Status == models.BatchStatusFailed && item.Barcode != ""
	})
}

func archiveRequiredBarcodes(failed []trendyol.BatchItemResult) []string {
	var barcodes []string
	for _, item := range failed {
		for _, reason := range item.FailureReasons {
			if strings.Contains(strings.ToLower(reason), archiveRequiredPhrase) {
				barcodes = append(barcodes, item.Barcode)
				break
			}
		}
	}
	return barcodes
}
