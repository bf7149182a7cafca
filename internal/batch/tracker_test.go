package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/marketfeed/trendyol-sync/internal/batch"
	"github.com/marketfeed/trendyol-sync/internal/batch/mocks"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/marketfeed/trendyol-sync/internal/trendyol"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() *time.Time {
	now := c.now
	return &now
}

func TestSubmitInventoryChunking(t *testing.T) {
	t.Parallel()

	items := make([]trendyol.InventoryItem, 2500)
	for i := range items {
		items[i] = trendyol.InventoryItem{Barcode: "b", Quantity: 1, SalePrice: decimal.NewFromInt(10)}
	}

	marketplace := mocks.NewMarketplace(t)
	storage := mocks.NewStorage(t)

	marketplace.On("UpdatePriceAndInventory", mock.Anything, mock.Anything).
		Return("batch-id", nil).
		Times(3)

	var recorded []models.BatchRequest
	storage.On("CreateBatchRequest", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = append(recorded, args.Get(1).(models.BatchRequest))
		}).
		Return(&models.BatchRequest{ID: 1, RequestID: "batch-id"}, nil).
		Times(3)

	tracker := batch.NewTracker(marketplace, storage)

	requests, err := tracker.SubmitInventory(context.Background(), 1, items, nil)

	require.NoError(t, err)
	assert.Len(t, requests, 3)
	require.Len(t, recorded, 3)
	assert.Equal(t, 1000, recorded[0].ItemCount)
	assert.Equal(t, 1000, recorded[1].ItemCount)
	assert.Equal(t, 500, recorded[2].ItemCount)
	assert.Equal(t, models.BatchInventoryUpdate, recorded[0].Type)
	assert.Equal(t, models.BatchStatusProcessing, recorded[0].Status)
}

func TestSubmitInventoryChunkFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	items := make([]trendyol.InventoryItem, 4)

	marketplace := mocks.NewMarketplace(t)
	storage := mocks.NewStorage(t)

	marketplace.On("UpdatePriceAndInventory", mock.Anything, mock.Anything).
		Return("", assert.AnError).Once()
	marketplace.On("UpdatePriceAndInventory", mock.Anything, mock.Anything).
		Return("batch-2", nil).Once()
	storage.On("CreateBatchRequest", mock.Anything, mock.Anything).
		Return(&models.BatchRequest{ID: 2, RequestID: "batch-2"}, nil).Once()

	tracker := batch.NewTracker(marketplace, storage, batch.WithChunkSize(2))

	requests, err := tracker.SubmitInventory(context.Background(), 1, items, nil)

	require.ErrorIs(t, err, assert.AnError)
	assert.Len(t, requests, 1)
}

func TestCheckOpenBatchesCompleted(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	marketplace := mocks.NewMarketplace(t)
	storage := mocks.NewStorage(t)

	storage.On("ListOpenBatchRequests", mock.Anything).
		Return([]models.BatchRequest{
			{ID: 1, RequestID: "batch-1", Type: models.BatchInventoryUpdate, Status: models.BatchStatusProcessing},
		}, nil).Once()
	marketplace.On("GetBatchStatus", mock.Anything, "batch-1").
		Return(&trendyol.BatchStatus{
			BatchRequestID: "batch-1",
			Status:         models.BatchStatusCompleted,
			ItemCount:      10,
		}, nil).Once()
	storage.On("UpdateBatchRequest", mock.Anything, mock.MatchedBy(func(r *models.BatchRequest) bool {
		return r.Status == models.BatchStatusCompleted && r.LastCheckedAt != nil && r.LastCheckedAt.Equal(now)
	})).Return(nil).Once()

	tracker := batch.NewTracker(marketplace, storage, batch.WithClock(fakeClock{now: now}))

	finished, err := tracker.CheckOpenBatches(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, finished)
}

func TestCheckOpenBatchesZeroStockRemediation(t *testing.T) {
	t.Parallel()

	marketplace := mocks.NewMarketplace(t)
	storage := mocks.NewStorage(t)

	storage.On("ListOpenBatchRequests", mock.Anything).
		Return([]models.BatchRequest{
			{
				ID:         1,
				RequestID:  "batch-1",
				Type:       models.BatchInventoryUpdate,
				Status:     models.BatchStatusProcessing,
				SupplierID: lo.ToPtr(7),
			},
		}, nil).Once()
	marketplace.On("GetBatchStatus", mock.Anything, "batch-1").
		Return(&trendyol.BatchStatus{
			Status:          models.BatchStatusFailed,
			ItemCount:       2,
			FailedItemCount: 1,
			Items: []trendyol.BatchItemResult{
				{Barcode: "869-ok", Status: "SUCCESS"},
				{Barcode: "869-bad", Status: models.BatchStatusFailed, FailureReasons: []string{"stok hatası"}},
			},
		}, nil).Once()
	storage.On("UpdateBatchRequest", mock.Anything, mock.Anything).Return(nil).Once()
	storage.On("GetSupplierSettings", mock.Anything, 7).
		Return(&models.SupplierSettings{SupplierID: 7, ZeroStockOnError: true}, nil).Once()
	storage.On("ZeroStockByBarcodes", mock.Anything, []string{"869-bad"}).Return(nil).Once()

	tracker := batch.NewTracker(marketplace, storage)

	finished, err := tracker.CheckOpenBatches(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, finished)
}

func TestCheckOpenBatchesArchiveRemediation(t *testing.T) {
	t.Parallel()

	marketplace := mocks.NewMarketplace(t)
	storage := mocks.NewStorage(t)

	storage.On("ListOpenBatchRequests", mock.Anything).
		Return([]models.BatchRequest{
			{
				ID:         1,
				RequestID:  "del-1",
				Type:       models.BatchDeletion,
				Status:     models.BatchStatusProcessing,
				SupplierID: lo.ToPtr(7),
			},
		}, nil).Once()
	marketplace.On("GetBatchStatus", mock.Anything, "del-1").
		Return(&trendyol.BatchStatus{
			Status:          models.BatchStatusFailed,
			ItemCount:       2,
			FailedItemCount: 2,
			Items: []trendyol.BatchItemResult{
				{
					Barcode:        "869-a",
					Status:         models.BatchStatusFailed,
					FailureReasons: []string{"Silmeden önce ürünü arşivleyin"},
				},
				{
					Barcode:        "869-b",
					Status:         models.BatchStatusFailed,
					FailureReasons: []string{"Silmeden önce ürünü arşivleyin"},
				},
			},
		}, nil).Once()
	storage.On("UpdateBatchRequest", mock.Anything, mock.Anything).Return(nil).Once()

	// Exactly one follow-up archive submission for the affected barcodes.
	marketplace.On("SetArchived", mock.Anything, []string{"869-a", "869-b"}, true).
		Return("arch-1", nil).Once()
	storage.On("CreateBatchRequest", mock.Anything, mock.MatchedBy(func(r models.BatchRequest) bool {
		return r.Type == models.BatchArchiveUpdate && r.ItemCount == 2 && r.RequestID == "arch-1"
	})).Return(&models.BatchRequest{ID: 2, RequestID: "arch-1"}, nil).Once()
	storage.On("UnpublishByBarcodes", mock.Anything, []string{"869-a", "869-b"}).Return(nil).Once()

	tracker := batch.NewTracker(marketplace, storage)

	finished, err := tracker.CheckOpenBatches(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, finished)
}

func TestCheckOpenBatchesReportsProgress(t *testing.T) {
	t.Parallel()

	marketplace := mocks.NewMarketplace(t)
	storage := mocks.NewStorage(t)

	storage.On("ListOpenBatchRequests", mock.Anything).
		Return([]models.BatchRequest{
			{
				ID:        1,
				RequestID: "batch-1",
				Type:      models.BatchCreate,
				Status:    models.BatchStatusProcessing,
				ItemCount: 5,
				ProcessID: lo.ToPtr(99),
			},
		}, nil).Once()
	marketplace.On("GetBatchStatus", mock.Anything, "batch-1").
		Return(&trendyol.BatchStatus{Status: models.BatchStatusProcessing, ItemCount: 5}, nil).Once()
	storage.On("UpdateBatchRequest", mock.Anything, mock.Anything).Return(nil).Once()
	storage.On("AppendProcessMessage", mock.Anything, 99, mock.Anything).Return(nil).Once()

	tracker := batch.NewTracker(marketplace, storage)

	finished, err := tracker.CheckOpenBatches(context.Background())

	require.NoError(t, err)
	assert.Zero(t, finished)
}
