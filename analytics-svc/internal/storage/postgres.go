package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brasserie/analytics-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// Ledger answers the same questions as Counters straight from the order and
// payment tables. It is the fallback when Redis is empty or unreachable.
type Ledger struct {
	db  *sql.DB
	loc *time.Location
}

func NewLedger(db *sql.DB, loc *time.Location) *Ledger {
	if loc == nil {
		loc = time.UTC
	}
	return &Ledger{db: db, loc: loc}
}

// TopProducts ranks products by quantity ordered. A nil bound leaves that
// side of the range open.
func (l *Ledger) TopProducts(ctx context.Context, restaurantID int, from, to *time.Time, limit int) ([]domain.ProductStat, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT oi.product_id, MAX(oi.product_name), SUM(oi.quantity) AS quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.restaurant_id = $1
		  AND ($2::timestamptz IS NULL OR o.created_at >= $2)
		  AND ($3::timestamptz IS NULL OR o.created_at < $3)
		GROUP BY oi.product_id
		ORDER BY quantity DESC, oi.product_id
		LIMIT $4`, restaurantID, nullTime(from), nullTime(to), limit)
	if err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}
	defer rows.Close()

	var stats []domain.ProductStat
	for rows.Next() {
		s := domain.ProductStat{RestaurantID: restaurantID}
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Revenue sums completed payments taken in [from, to).
func (l *Ledger) Revenue(ctx context.Context, restaurantID int, from, to time.Time) (domain.Revenue, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT p.method, COALESCE(SUM(p.amount), 0), COALESCE(SUM(p.tip), 0), COUNT(*)
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE o.restaurant_id = $1
		  AND p.status = 'COMPLETE'
		  AND p.created_at >= $2 AND p.created_at < $3
		GROUP BY p.method`, restaurantID, from, to)
	if err != nil {
		return domain.Revenue{}, fmt.Errorf("query revenue: %w", err)
	}
	defer rows.Close()

	rev := domain.NewRevenue()
	for rows.Next() {
		var (
			method      string
			amount, tip decimal.Decimal
			orders      int
		)
		if err := rows.Scan(&method, &amount, &tip, &orders); err != nil {
			return domain.Revenue{}, fmt.Errorf("scan revenue: %w", err)
		}
		rev.Add(domain.Revenue{
			Total:    amount,
			Tips:     tip,
			Orders:   orders,
			ByMethod: map[string]decimal.Decimal{method: amount},
		})
	}
	return rev, rows.Err()
}

// Hours counts orders per hour of day, in the ledger's time zone.
func (l *Ledger) Hours(ctx context.Context, restaurantID int, from, to time.Time) (map[int]int, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT EXTRACT(HOUR FROM o.created_at AT TIME ZONE $4)::int AS hour, COUNT(*)
		FROM orders o
		WHERE o.restaurant_id = $1
		  AND o.created_at >= $2 AND o.created_at < $3
		GROUP BY hour`, restaurantID, from, to, l.loc.String())
	if err != nil {
		return nil, fmt.Errorf("query hours: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var hour, n int
		if err := rows.Scan(&hour, &n); err != nil {
			return nil, fmt.Errorf("scan hour: %w", err)
		}
		counts[hour] = n
	}
	return counts, rows.Err()
}
