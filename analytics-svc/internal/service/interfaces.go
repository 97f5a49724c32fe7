package service

import (
	"context"
	"time"

	"brasserie/analytics-svc/internal/domain"
	"brasserie/analytics-svc/internal/storage"

	"github.com/shopspring/decimal"
)

// CounterStore is the fast path: pre-aggregated counters in Redis.
type CounterStore interface {
	TopProductsOn(ctx context.Context, restaurantID int, day time.Time, limit int) ([]domain.ProductStat, error)
	TopProductsAllTime(ctx context.Context, restaurantID, limit int) ([]domain.ProductStat, error)
	Revenue(ctx context.Context, restaurantID int, days []time.Time) (domain.Revenue, bool, error)
	Hours(ctx context.Context, restaurantID int, day time.Time) (map[int]int, error)
}

// LedgerStore recomputes the same figures from Postgres.
type LedgerStore interface {
	TopProducts(ctx context.Context, restaurantID int, from, to *time.Time, limit int) ([]domain.ProductStat, error)
	Revenue(ctx context.Context, restaurantID int, from, to time.Time) (domain.Revenue, error)
	Hours(ctx context.Context, restaurantID int, from, to time.Time) (map[int]int, error)
}

type AnalyticsInterface interface {
	TopToday(ctx context.Context, restaurantID int) (*domain.TopProducts, error)
	TopAllTime(ctx context.Context, restaurantID int) (*domain.TopProducts, error)
	Summary(ctx context.Context, restaurantID int, period domain.Period) (*domain.RevenueSummary, error)
	CashRegister(ctx context.Context, restaurantID int, day time.Time, opening decimal.Decimal, counted *decimal.Decimal) (*domain.CashRegister, error)
	PeakHours(ctx context.Context, restaurantID int, day time.Time) (*domain.PeakHours, error)
	Today() time.Time
}

var (
	_ CounterStore       = (*storage.Counters)(nil)
	_ LedgerStore        = (*storage.Ledger)(nil)
	_ AnalyticsInterface = (*AnalyticsService)(nil)
)
