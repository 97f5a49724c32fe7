package service

import (
	"context"
	"fmt"

	"brasserie/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Consumer struct {
	Store  StoreInterface
	Logger *zap.SugaredLogger
}

func NewConsumer(store StoreInterface, logger *zap.SugaredLogger) *Consumer {
	return &Consumer{
		Store:  store,
		Logger: logger,
	}
}

// Handle is the events.HandlerFunc for the order events topic.
func (c *Consumer) Handle(ctx context.Context, msg kafka.Message) error {
	e, err := events.DecodeOrderEvent(msg.Value)
	if err != nil {
		return err
	}
	return c.Process(ctx, e)
}

func (c *Consumer) Process(ctx context.Context, e events.OrderEvent) error {
	if e.OrderID <= 0 || e.RestaurantID <= 0 {
		return fmt.Errorf("%s event without order or restaurant id", e.Type)
	}

	var err error
	switch e.Type {
	case events.OrderCreated:
		err = c.Store.RecordOrder(ctx, e)
	case events.PaymentRecorded:
		err = c.Store.RecordPayment(ctx, e)
	default:
		c.Logger.Debugw("event ignored", "type", e.Type, "order_id", e.OrderID)
		return nil
	}
	if err != nil {
		return err
	}

	c.Logger.Infow("event aggregated", "type", e.Type, "order_id", e.OrderID, "restaurant_id", e.RestaurantID)
	return nil
}
