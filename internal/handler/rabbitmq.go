// Package handler consumes sync and batch-check commands from RabbitMQ
// and dispatches them to the right component.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/marketfeed/trendyol-sync/internal/platform/rabbitmq"
	"github.com/marketfeed/trendyol-sync/internal/syncer"
	"github.com/marketfeed/trendyol-sync/internal/verify"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Syncer --filename syncer.go
//go:generate mockery --name BatchChecker --filename batch_checker.go
//go:generate mockery --name Verifier --filename verifier.go

// Syncer runs feed sync passes.
type Syncer interface {
	Sync(ctx context.Context, cmd models.SyncCommand) (syncer.Stats, error)
}

// BatchChecker polls open marketplace batches.
type BatchChecker interface {
	CheckOpenBatches(ctx context.Context) (int, error)
}

// Verifier audits marketplace state against local products.
type Verifier interface {
	Verify(ctx context.Context, supplierID int, processID *int) (verify.Report, error)
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq      *rabbitmq.RabbitMQ
	syncer   Syncer
	checker  BatchChecker
	verifier Verifier
	logger   *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(
	rmq *rabbitmq.RabbitMQ,
	syn Syncer,
	checker BatchChecker,
	verifier Verifier,
	logger *zerolog.Logger,
) *RMQHandler {
	return &RMQHandler{
		rmq:      rmq,
		syncer:   syn,
		checker:  checker,
		verifier: verifier,
		logger:   logger,
	}
}

// Start starts consuming and handling sync commands from syncQueue and
// batch-check commands from batchQueue.
func (h *RMQHandler) Start(ctx context.Context, syncQueue, batchQueue string) error {
	syncErrors, err := h.rmq.Consume(ctx, syncQueue, h.handleSyncMessage)
	if err != nil {
		return fmt.Errorf("can't consume sync commands: %w", err)
	}
	batchErrors, err := h.rmq.Consume(ctx, batchQueue, h.handleBatchMessage)
	if err != nil {
		return fmt.Errorf("can't consume batch-check commands: %w", err)
	}

	go h.logErrors(syncErrors)
	go h.logErrors(batchErrors)

	return nil
}

func (h *RMQHandler) handleSyncMessage(ctx context.Context, message []byte) error {
	cmd, err := decodeSyncCommand(message)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Int("supplierId", cmd.SupplierID).
		Bool("force", cmd.Force).
		Msg("sync started")

	stats, err := h.syncer.Sync(ctx, *cmd)
	if errors.Is(err, syncer.ErrNotDue) || errors.Is(err, syncer.ErrSupplierInactive) {
		// Not a delivery failure, the command is consumed and dropped.
		h.logger.Warn().
			Err(err).
			Int("supplierId", cmd.SupplierID).
			Msg("sync skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	h.logger.Debug().
		Int("supplierId", cmd.SupplierID).
		Int("created", stats.Created).
		Int("updated", stats.Updated).
		Int("failed", stats.Failed).
		Int("submitted", stats.Submitted).
		Msg("sync finished")

	if !cmd.Verify {
		return nil
	}

	report, err := h.verifier.Verify(ctx, cmd.SupplierID, nil)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	h.logger.Debug().
		Int("supplierId", cmd.SupplierID).
		Int("checked", report.Checked).
		Int("drifted", report.Drifted).
		Int("missing", report.Missing).
		Msg("verification finished")

	return nil
}

func (h *RMQHandler) handleBatchMessage(ctx context.Context, message []byte) error {
	if _, err := decodeCheckBatchesCommand(message); err != nil {
		return err
	}

	closed, err := h.checker.CheckOpenBatches(ctx)
	if err != nil {
		return fmt.Errorf("batch check failed: %w", err)
	}

	h.logger.Debug().
		Int("closed", closed).
		Msg("batch check finished")

	return nil
}

func (h *RMQHandler) logErrors(errorsChan <-chan error) {
	for err := range errorsChan {
		h.logger.Error().
			Err(err).
			Msg("can't handle message")
	}
}

func decodeSyncCommand(msg []byte) (*models.SyncCommand, error) {
	var cmd models.SyncCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode sync command: %w", err)
	}

	return &cmd, nil
}

func decodeCheckBatchesCommand(msg []byte) (*models.CheckBatchesCommand, error) {
	var cmd models.CheckBatchesCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode batch-check command: %w", err)
	}

	return &cmd, nil
}
