package mocks

import (
	"context"
	"time"

	"brasserie/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	register(&m.Mock, t)
	return m
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *OrderRepository) ListOrders(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, status, limit)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *OrderRepository) ListQueue(ctx context.Context, station domain.Station) ([]domain.Order, error) {
	args := m.Called(ctx, station)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *OrderRepository) HasOpenOrder(ctx context.Context, tableID int) (bool, error) {
	args := m.Called(ctx, tableID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, from, to domain.OrderStatus, servedAt *time.Time) error {
	args := m.Called(ctx, id, from, to, servedAt)
	return args.Error(0)
}

func (m *OrderRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	args := m.Called(ctx, orderID, qr)
	return args.Error(0)
}

func (m *OrderRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	args := m.Called(ctx, orderID)
	qr, _ := args.Get(0).([]byte)
	return qr, args.Error(1)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	register(&m.Mock, t)
	return m
}

func (m *QRGenerator) Generate(orderNumber string) ([]byte, error) {
	args := m.Called(orderNumber)
	qr, _ := args.Get(0).([]byte)
	return qr, args.Error(1)
}
