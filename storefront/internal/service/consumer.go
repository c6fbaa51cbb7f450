package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"overcooked-storefront/ordering/store"
	"overcooked-storefront/storefront/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type StatusApplier interface {
	ApplyStatusMessage(msg domain.StatusMessage) (*store.State, bool)
}

// Consumer feeds order status changes published by other storefront
// instances into the local store.
type Consumer struct {
	Reader MessageReader
	Orders StatusApplier
	Logger *zap.Logger
}

func NewConsumer(reader MessageReader, orders StatusApplier, logger *zap.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Orders: orders,
		Logger: logger,
	}
}

// Start reads until ctx is done or the reader is closed.
func (c *Consumer) Start(ctx context.Context) error {
	c.Logger.Info("starting order status consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			c.Logger.Warn("error reading status message", zap.Error(err))
			continue
		}

		var msg domain.StatusMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			c.Logger.Warn("error unmarshaling status message", zap.ByteString("key", message.Key), zap.Error(err))
			continue
		}
		c.ProcessStatus(msg)
	}
}

func (c *Consumer) ProcessStatus(msg domain.StatusMessage) {
	if msg.Type != domain.OrderStatusChanged {
		return
	}

	state, applied := c.Orders.ApplyStatusMessage(msg)
	if !applied {
		c.Logger.Debug("status message skipped", zap.String("order_id", msg.OrderID), zap.String("status", msg.Status))
		return
	}
	if rejection, rejected := state.Rejection(); rejected {
		c.Logger.Debug("status message not applied",
			zap.String("order_id", msg.OrderID),
			zap.String("status", msg.Status),
			zap.String("code", string(rejection.Code)))
		return
	}
	c.Logger.Debug("status message applied", zap.String("order_id", msg.OrderID), zap.String("status", msg.Status))
}
