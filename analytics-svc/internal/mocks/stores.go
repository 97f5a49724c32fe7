// Package mocks holds testify mocks for the analytics stores.
package mocks

import (
	"context"
	"time"

	"brasserie/analytics-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CounterStore struct {
	mock.Mock
}

func NewCounterStore(t testingT) *CounterStore {
	m := &CounterStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CounterStore) TopProductsOn(ctx context.Context, restaurantID int, day time.Time, limit int) ([]domain.ProductStat, error) {
	args := m.Called(ctx, restaurantID, day, limit)
	products, _ := args.Get(0).([]domain.ProductStat)
	return products, args.Error(1)
}

func (m *CounterStore) TopProductsAllTime(ctx context.Context, restaurantID, limit int) ([]domain.ProductStat, error) {
	args := m.Called(ctx, restaurantID, limit)
	products, _ := args.Get(0).([]domain.ProductStat)
	return products, args.Error(1)
}

func (m *CounterStore) Revenue(ctx context.Context, restaurantID int, days []time.Time) (domain.Revenue, bool, error) {
	args := m.Called(ctx, restaurantID, days)
	return args.Get(0).(domain.Revenue), args.Bool(1), args.Error(2)
}

func (m *CounterStore) Hours(ctx context.Context, restaurantID int, day time.Time) (map[int]int, error) {
	args := m.Called(ctx, restaurantID, day)
	counts, _ := args.Get(0).(map[int]int)
	return counts, args.Error(1)
}

type LedgerStore struct {
	mock.Mock
}

func NewLedgerStore(t testingT) *LedgerStore {
	m := &LedgerStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LedgerStore) TopProducts(ctx context.Context, restaurantID int, from, to *time.Time, limit int) ([]domain.ProductStat, error) {
	args := m.Called(ctx, restaurantID, from, to, limit)
	products, _ := args.Get(0).([]domain.ProductStat)
	return products, args.Error(1)
}

func (m *LedgerStore) Revenue(ctx context.Context, restaurantID int, from, to time.Time) (domain.Revenue, error) {
	args := m.Called(ctx, restaurantID, from, to)
	return args.Get(0).(domain.Revenue), args.Error(1)
}

func (m *LedgerStore) Hours(ctx context.Context, restaurantID int, from, to time.Time) (map[int]int, error) {
	args := m.Called(ctx, restaurantID, from, to)
	counts, _ := args.Get(0).(map[int]int)
	return counts, args.Error(1)
}
