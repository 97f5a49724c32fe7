package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"brasserie/internal/events"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher writes notification requests and order events to their
// topics.
type KafkaPublisher struct {
	Notifications MessageWriter
	OrderEvents   MessageWriter
}

func NewKafkaPublisher(notifications, orderEvents MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Notifications: notifications, OrderEvents: orderEvents}
}

func (p *KafkaPublisher) PublishNotification(ctx context.Context, n events.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return p.Notifications.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.Key()),
		Value: payload,
	})
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, e events.OrderEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	return p.OrderEvents.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(e.OrderID)),
		Value: payload,
	})
}
