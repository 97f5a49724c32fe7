package service

import (
	"context"

	"brasserie/agg-svc/internal/storage"
	"brasserie/internal/events"
)

type StoreInterface interface {
	RecordOrder(ctx context.Context, e events.OrderEvent) error
	RecordPayment(ctx context.Context, e events.OrderEvent) error
}

var _ StoreInterface = (*storage.Store)(nil)
