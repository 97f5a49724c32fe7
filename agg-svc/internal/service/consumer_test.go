package service_test

import (
	"context"
	"errors"
	"testing"

	"brasserie/agg-svc/internal/mocks"
	"brasserie/agg-svc/internal/service"
	"brasserie/internal/events"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestConsumer_Process(t *testing.T) {
	created := events.OrderEvent{Type: events.OrderCreated, OrderID: 3, RestaurantID: 1,
		Items: []events.OrderEventItem{{ProductID: 10, ProductName: "Croque-monsieur", Quantity: 2}}}
	paid := events.OrderEvent{Type: events.PaymentRecorded, OrderID: 3, RestaurantID: 1, Amount: 33.68, PaymentMethod: "ESPECES"}

	tests := []struct {
		name           string
		inputEvent     events.OrderEvent
		setupMockStore func(*mocks.StoreInterface)
		wantErr        bool
	}{
		{
			name:       "order created",
			inputEvent: created,
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, created).Return(nil)
			},
		},
		{
			name:       "payment recorded",
			inputEvent: paid,
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordPayment", mock.Anything, paid).Return(nil)
			},
		},
		{
			name:       "RecordOrder error",
			inputEvent: created,
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, created).Return(errors.New("redis error"))
			},
			wantErr: true,
		},
		{
			name:           "status change is ignored",
			inputEvent:     events.OrderEvent{Type: events.OrderStatusChanged, OrderID: 3, RestaurantID: 1, Status: "SERVIE"},
			setupMockStore: func(*mocks.StoreInterface) {},
		},
		{
			name:           "missing restaurant",
			inputEvent:     events.OrderEvent{Type: events.OrderCreated, OrderID: 3},
			setupMockStore: func(*mocks.StoreInterface) {},
			wantErr:        true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(mockStore, zap.NewNop().Sugar())

			err := consumer.Process(context.Background(), testCase.inputEvent)
			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_Handle(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("RecordPayment", mock.Anything, mock.MatchedBy(func(e events.OrderEvent) bool {
		return e.OrderID == 9 && e.PaymentMethod == "CARTE_BANCAIRE"
	})).Return(nil)

	consumer := service.NewConsumer(mockStore, zap.NewNop().Sugar())

	body := `{"type":"payment.recorded","orderId":9,"restaurantId":1,"amount":18.7,"paymentMethod":"CARTE_BANCAIRE","timestamp":"2025-03-01T21:00:00Z"}`
	assert.NoError(t, consumer.Handle(context.Background(), kafka.Message{Value: []byte(body)}))

	assert.Error(t, consumer.Handle(context.Background(), kafka.Message{Value: []byte(`{"type":`)}))
	mockStore.AssertNotCalled(t, "RecordOrder", mock.Anything, mock.Anything)
}
