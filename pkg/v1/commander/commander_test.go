package commander_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/marketfeed/trendyol-sync/pkg/v1/commander"
	"github.com/marketfeed/trendyol-sync/pkg/v1/commander/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUniSendSyncCommand(t *testing.T) {
	supplierID := 42
	body := []byte(fmt.Sprintf(`{"supplierId":%d,"force":true,"publishedOnly":false,"verify":false}`, supplierID))

	tests := map[string]struct {
		senderError error
		wantErr     error
	}{
		"ok": {},
		"sender error": {
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, body).Return(tt.senderError)

			cmndr := commander.NewSyncCommander(sender, mocks.NewSender(t))
			err := cmndr.SendSyncCommand(context.TODO(), commander.SyncCommand{SupplierID: supplierID, Force: true})

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUniRabbitMQSenderSend(t *testing.T) {
	body := []byte(`{"supplierId":7}`)
	routingKey := "trendyol-sync.sync-commands"

	tests := map[string]struct {
		publisherError error
		wantErr        error
	}{
		"ok": {},
		"publisher error": {
			publisherError: assert.AnError,
			wantErr:        assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			publisher := mocks.NewRabbitMQPublisher(t)
			publisher.On("Publish", mock.Anything, routingKey, body).Return(tt.publisherError)

			sender := commander.NewRabbitMQSender(publisher, routingKey)
			err := sender.Send(context.TODO(), body)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUniSendCheckBatchesCommand(t *testing.T) {
	body := []byte(`{}`)

	tests := map[string]struct {
		senderError error
		wantErr     error
	}{
		"ok": {},
		"sender error": {
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, body).Return(tt.senderError)

			cmndr := commander.NewSyncCommander(mocks.NewSender(t), sender)
			err := cmndr.SendCheckBatchesCommand(context.TODO())

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
