// Package mocks holds testify mocks for the aggregation service.
package mocks

import (
	"context"

	"brasserie/internal/events"

	"github.com/stretchr/testify/mock"
)

type StoreInterface struct {
	mock.Mock
}

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func NewStoreInterface(t testingT) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StoreInterface) RecordOrder(ctx context.Context, e events.OrderEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *StoreInterface) RecordPayment(ctx context.Context, e events.OrderEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
