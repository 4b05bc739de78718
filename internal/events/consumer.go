package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/metrics"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type AutoClearer interface {
	AutoMarkOrderNotificationsRead(ctx context.Context, orderID, newStatus, actorID string) domain.Result[domain.AutoClearResult]
}

// OrderStatusConsumer applies the auto-clear policy to order status changes
// published by the storefront. Every fetched message is committed, including
// malformed ones, so a poison message cannot stall the partition.
type OrderStatusConsumer struct {
	reader MessageReader
	clear  AutoClearer
	logger *zap.Logger
}

func NewOrderStatusConsumer(reader MessageReader, clear AutoClearer, logger *zap.Logger) *OrderStatusConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderStatusConsumer{reader: reader, clear: clear, logger: logger.Named("order_events")}
}

func (c *OrderStatusConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("failed to fetch order event", zap.Error(err))
			return err
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("failed to commit order event", zap.Int64("offset", msg.Offset), zap.Error(err))
			return err
		}
	}
}

func (c *OrderStatusConsumer) handle(ctx context.Context, msg kafka.Message) {
	var event domain.OrderStatusEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil || event.OrderID == "" || event.Status == "" {
		metrics.OrderEventsConsumedTotal.WithLabelValues("invalid").Inc()
		c.logger.Warn("skipping malformed order event",
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.ByteString("value", msg.Value),
		)
		return
	}

	res := c.clear.AutoMarkOrderNotificationsRead(ctx, event.OrderID, event.Status, event.ActorID)
	if !res.Success {
		metrics.OrderEventsConsumedTotal.WithLabelValues("failed").Inc()
		c.logger.Warn("auto clear from order event failed",
			zap.String("order_id", event.OrderID),
			zap.String("status", event.Status),
			zap.String("error", res.Error),
		)
		return
	}

	metrics.OrderEventsConsumedTotal.WithLabelValues("processed").Inc()
	c.logger.Debug("order event processed",
		zap.String("order_id", event.OrderID),
		zap.Int("marked", res.Data.Marked),
	)
}
