package mocks

import (
	"context"
	"time"

	"brasserie/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type TableRepository struct {
	mock.Mock
}

func NewTableRepository(t testingT) *TableRepository {
	m := &TableRepository{}
	register(&m.Mock, t)
	return m
}

func (m *TableRepository) CreateTable(ctx context.Context, t *domain.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TableRepository) ListTables(ctx context.Context, restaurantID int) ([]domain.Table, error) {
	args := m.Called(ctx, restaurantID)
	tables, _ := args.Get(0).([]domain.Table)
	return tables, args.Error(1)
}

func (m *TableRepository) GetTable(ctx context.Context, id int) (*domain.Table, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*domain.Table)
	return t, args.Error(1)
}

func (m *TableRepository) UpdateTableStatus(ctx context.Context, id int, from, to domain.TableStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *TableRepository) FindAvailableTable(ctx context.Context, guests int, day time.Time) (*domain.Table, error) {
	args := m.Called(ctx, guests, day)
	t, _ := args.Get(0).(*domain.Table)
	return t, args.Error(1)
}

func (m *TableRepository) FirstTable(ctx context.Context) (*domain.Table, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).(*domain.Table)
	return t, args.Error(1)
}
