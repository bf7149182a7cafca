// Package commander is the client side of the command queues. Other
// services use it to request feed syncs and batch polling passes.
package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go
//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// RabbitMQPublisher publishes raw messages to a routing key.
type RabbitMQPublisher interface {
	Publish(ctx context.Context, routingKey string, message []byte) error
}

// RabbitMQSender is a Sender bound to one command queue's routing key.
// The daemon consumes sync and batch-check commands from separate
// queues, so each queue gets its own sender.
type RabbitMQSender struct {
	publisher  RabbitMQPublisher
	routingKey string
}

// NewRabbitMQSender returns a RabbitMQSender publishing to routingKey.
func NewRabbitMQSender(publisher RabbitMQPublisher, routingKey string) RabbitMQSender {
	return RabbitMQSender{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// Send publishes one command message to the sender's routing key.
func (s RabbitMQSender) Send(ctx context.Context, message []byte) error {
	return s.publisher.Publish(ctx, s.routingKey, message)
}

// SyncCommand requests one feed sync pass for a supplier.
type SyncCommand struct {
	SupplierID    int      `json:"supplierId"`
	Force         bool     `json:"force"`
	PublishedOnly bool     `json:"publishedOnly"`
	SKUs          []string `json:"skus,omitempty"`
	Verify        bool     `json:"verify"`
}

// CheckBatchesCommand requests one polling pass over open batches.
type CheckBatchesCommand struct{}

// SyncCommander sends sync and batch-check commands.
type SyncCommander struct {
	syncSender  Sender
	batchSender Sender
}

// NewSyncCommander returns new SyncCommander using the provided senders
// for sync and batch-check commands.
func NewSyncCommander(syncSender, batchSender Sender) SyncCommander {
	return SyncCommander{
		syncSender:  syncSender,
		batchSender: batchSender,
	}
}

// SendSyncCommand sends a sync command.
func (c SyncCommander) SendSyncCommand(ctx context.Context, cmd SyncCommand) error {
	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal sync command: %w", err)
	}

	return c.syncSender.Send(ctx, cmdMsg)
}

// SendCheckBatchesCommand sends a batch-check command.
func (c SyncCommander) SendCheckBatchesCommand(ctx context.Context) error {
	cmdMsg, err := json.Marshal(CheckBatchesCommand{})
	if err != nil {
		return fmt.Errorf("can't marshal batch-check command: %w", err)
	}

	return c.batchSender.Send(ctx, cmdMsg)
}
