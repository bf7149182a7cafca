package handler

import (
	"context"
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/handler/mocks"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/marketfeed/trendyol-sync/internal/syncer"
	"github.com/marketfeed/trendyol-sync/internal/verify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(syn Syncer, checker BatchChecker, verifier Verifier) *RMQHandler {
	logger := zerolog.Nop()
	return NewHandler(nil, syn, checker, verifier, &logger)
}

func TestHandleSyncMessage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message    string
		syncErr    error
		wantSync   bool
		wantVerify bool
		wantErr    bool
	}{
		"ok": {
			message:  `{"supplierId":7,"force":true}`,
			wantSync: true,
		},
		"ok with verification": {
			message:    `{"supplierId":7,"verify":true}`,
			wantSync:   true,
			wantVerify: true,
		},
		"not due is consumed silently": {
			message:  `{"supplierId":7}`,
			syncErr:  syncer.ErrNotDue,
			wantSync: true,
		},
		"inactive supplier is consumed silently": {
			message:  `{"supplierId":7}`,
			syncErr:  syncer.ErrSupplierInactive,
			wantSync: true,
		},
		"sync failure": {
			message:  `{"supplierId":7}`,
			syncErr:  assert.AnError,
			wantSync: true,
			wantErr:  true,
		},
		"broken message": {
			message: `{"supplierId":`,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			syn := mocks.NewSyncer(t)
			verifier := mocks.NewVerifier(t)
			if tt.wantSync {
				syn.On("Sync", mock.Anything, mock.MatchedBy(func(cmd models.SyncCommand) bool {
					return cmd.SupplierID == 7
				})).Return(syncer.Stats{}, tt.syncErr).Once()
			}
			if tt.wantVerify {
				verifier.On("Verify", mock.Anything, 7, (*int)(nil)).Return(verify.Report{}, nil).Once()
			}

			h := newTestHandler(syn, mocks.NewBatchChecker(t), verifier)
			err := h.handleSyncMessage(context.Background(), []byte(tt.message))

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestHandleBatchMessage(t *testing.T) {
	t.Parallel()

	checker := mocks.NewBatchChecker(t)
	checker.On("CheckOpenBatches", mock.Anything).Return(3, nil).Once()

	h := newTestHandler(mocks.NewSyncer(t), checker, mocks.NewVerifier(t))

	require.NoError(t, h.handleBatchMessage(context.Background(), []byte(`{}`)))
}

func TestHandleBatchMessageError(t *testing.T) {
	t.Parallel()

	checker := mocks.NewBatchChecker(t)
	checker.On("CheckOpenBatches", mock.Anything).Return(0, assert.AnError).Once()

	h := newTestHandler(mocks.NewSyncer(t), checker, mocks.NewVerifier(t))

	err := h.handleBatchMessage(context.Background(), []byte(`{}`))
	require.ErrorIs(t, err, assert.AnError)
}
