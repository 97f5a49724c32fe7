package mocks

import (
	"context"

	"brasserie/internal/events"
	"brasserie/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type PaymentRepository struct {
	mock.Mock
}

func NewPaymentRepository(t testingT) *PaymentRepository {
	m := &PaymentRepository{}
	register(&m.Mock, t)
	return m
}

func (m *PaymentRepository) RecordPayment(ctx context.Context, p *domain.Payment, tip, total float64) error {
	args := m.Called(ctx, p, tip, total)
	return args.Error(0)
}

func (m *PaymentRepository) GetPaymentByOrder(ctx context.Context, orderID int) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(*domain.Payment)
	return p, args.Error(1)
}

type SettlementCache struct {
	mock.Mock
}

func NewSettlementCache(t testingT) *SettlementCache {
	m := &SettlementCache{}
	register(&m.Mock, t)
	return m
}

func (m *SettlementCache) IsSettled(ctx context.Context, orderID int) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *SettlementCache) MarkSettled(ctx context.Context, orderID int) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	register(&m.Mock, t)
	return m
}

func (m *EventPublisher) PublishNotification(ctx context.Context, n events.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, e events.OrderEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
