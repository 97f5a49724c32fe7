package storage_test

import (
	"context"
	"testing"

	"brasserie/internal/events"
	"brasserie/restaurant-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestKafkaPublisher(t *testing.T) {
	notifications := &recordingWriter{}
	orderEvents := &recordingWriter{}
	pub := storage.NewKafkaPublisher(notifications, orderEvents)
	ctx := context.Background()

	err := pub.PublishNotification(ctx, events.Notification{
		Type:  events.NewOrder,
		Order: &events.OrderPayload{ID: 9, OrderNumber: "CMD-1", TableNumber: 3},
	})
	require.NoError(t, err)

	err = pub.PublishOrderEvent(ctx, events.OrderEvent{Type: events.OrderCreated, OrderID: 9})
	require.NoError(t, err)

	require.Len(t, notifications.msgs, 1)
	assert.Equal(t, "order-9", string(notifications.msgs[0].Key))
	n, err := events.DecodeNotification(notifications.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "CMD-1", n.Order.OrderNumber)

	require.Len(t, orderEvents.msgs, 1)
	assert.Equal(t, "9", string(orderEvents.msgs[0].Key))
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	pub := storage.NewKafkaPublisher(&recordingWriter{err: assert.AnError}, &recordingWriter{})

	err := pub.PublishNotification(context.Background(), events.Notification{Type: events.NewReservation})

	assert.ErrorIs(t, err, assert.AnError)
}
