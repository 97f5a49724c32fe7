package service

import (
	"context"
	"fmt"
	"time"

	"brasserie/analytics-svc/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const topLimit = 10

// AnalyticsService reads Redis first and falls back to Postgres when Redis
// has nothing for the request or cannot be reached.
type AnalyticsService struct {
	counters CounterStore
	ledger   LedgerStore
	loc      *time.Location
	logger   *zap.SugaredLogger

	// Now is the clock used to resolve "today".
	Now func() time.Time
}

func NewAnalyticsService(counters CounterStore, ledger LedgerStore, loc *time.Location, logger *zap.SugaredLogger) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{
		counters: counters,
		ledger:   ledger,
		loc:      loc,
		logger:   logger,
		Now:      time.Now,
	}
}

func (s *AnalyticsService) today() time.Time {
	return domain.StartOfDay(s.Now().In(s.loc))
}

// calendarDay reads only the date part of t, as the restaurant's local day.
func (s *AnalyticsService) calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

func (s *AnalyticsService) degraded(what string, restaurantID int, err error) {
	s.logger.Warnw("redis unavailable, reading from postgres", "query", what, "restaurant_id", restaurantID, "error", err)
}

func (s *AnalyticsService) TopToday(ctx context.Context, restaurantID int) (*domain.TopProducts, error) {
	day := s.today()
	result := &domain.TopProducts{RestaurantID: restaurantID, Scope: "today", Source: domain.SourceRedis}

	products, err := s.counters.TopProductsOn(ctx, restaurantID, day, topLimit)
	if err != nil {
		s.degraded("top-today", restaurantID, err)
	}
	if err != nil || len(products) == 0 {
		next := day.AddDate(0, 0, 1)
		products, err = s.ledger.TopProducts(ctx, restaurantID, &day, &next, topLimit)
		if err != nil {
			return nil, fmt.Errorf("top products today: %w", err)
		}
		result.Source = domain.SourcePostgres
	}

	result.Products = nonNil(products)
	return result, nil
}

func (s *AnalyticsService) TopAllTime(ctx context.Context, restaurantID int) (*domain.TopProducts, error) {
	result := &domain.TopProducts{RestaurantID: restaurantID, Scope: "alltime", Source: domain.SourceRedis}

	products, err := s.counters.TopProductsAllTime(ctx, restaurantID, topLimit)
	if err != nil {
		s.degraded("top-alltime", restaurantID, err)
	}
	if err != nil || len(products) == 0 {
		products, err = s.ledger.TopProducts(ctx, restaurantID, nil, nil, topLimit)
		if err != nil {
			return nil, fmt.Errorf("top products all time: %w", err)
		}
		result.Source = domain.SourcePostgres
	}

	result.Products = nonNil(products)
	return result, nil
}

func nonNil(products []domain.ProductStat) []domain.ProductStat {
	if products == nil {
		return []domain.ProductStat{}
	}
	return products
}

func (s *AnalyticsService) revenue(ctx context.Context, restaurantID int, days []time.Time) (domain.Revenue, string, error) {
	rev, found, err := s.counters.Revenue(ctx, restaurantID, days)
	if err == nil && found {
		return rev, domain.SourceRedis, nil
	}
	if err != nil {
		s.degraded("revenue", restaurantID, err)
	}

	from, to := days[0], days[len(days)-1].AddDate(0, 0, 1)
	rev, err = s.ledger.Revenue(ctx, restaurantID, from, to)
	if err != nil {
		return domain.Revenue{}, "", fmt.Errorf("revenue: %w", err)
	}
	return rev, domain.SourcePostgres, nil
}

func (s *AnalyticsService) Summary(ctx context.Context, restaurantID int, period domain.Period) (*domain.RevenueSummary, error) {
	days := period.Days(s.today())
	rev, source, err := s.revenue(ctx, restaurantID, days)
	if err != nil {
		return nil, err
	}
	summary := domain.NewRevenueSummary(restaurantID, period, days, rev, source)
	return &summary, nil
}

func (s *AnalyticsService) CashRegister(ctx context.Context, restaurantID int, day time.Time,
	opening decimal.Decimal, counted *decimal.Decimal) (*domain.CashRegister, error) {
	day = s.calendarDay(day)
	rev, source, err := s.revenue(ctx, restaurantID, []time.Time{day})
	if err != nil {
		return nil, err
	}
	cr := domain.NewCashRegister(restaurantID, day, rev, opening, counted, source)
	return &cr, nil
}

func (s *AnalyticsService) PeakHours(ctx context.Context, restaurantID int, day time.Time) (*domain.PeakHours, error) {
	day = s.calendarDay(day)
	source := domain.SourceRedis

	counts, err := s.counters.Hours(ctx, restaurantID, day)
	if err != nil {
		s.degraded("peak-hours", restaurantID, err)
	}
	if err != nil || len(counts) == 0 {
		counts, err = s.ledger.Hours(ctx, restaurantID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("peak hours: %w", err)
		}
		source = domain.SourcePostgres
	}

	p := domain.NewPeakHours(restaurantID, day, counts, source)
	return &p, nil
}

// Today is the current day in the restaurant's time zone.
func (s *AnalyticsService) Today() time.Time {
	return s.today()
}
