package domain

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"brasserie/internal/analytics"

	"github.com/shopspring/decimal"
)

const (
	SourceRedis    = "redis"
	SourcePostgres = "postgres"
)

// Payment methods as recorded by restaurant-svc.
const (
	MethodCash = "ESPECES"
	MethodCard = "CARTE_BANCAIRE"
)

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var periodDays = map[Period]int{
	PeriodDay:   1,
	PeriodWeek:  7,
	PeriodMonth: 30,
	PeriodYear:  365,
}

// ParsePeriod defaults to a single day.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodDay, nil
	}
	p := Period(s)
	if _, ok := periodDays[p]; !ok {
		return "", fmt.Errorf("unknown period %q, expected day, week, month or year", s)
	}
	return p, nil
}

// Days lists the calendar days covered by p, oldest first, ending on the day
// of end.
func (p Period) Days(end time.Time) []time.Time {
	n := periodDays[p]
	if n == 0 {
		n = 1
	}
	last := StartOfDay(end)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = last.AddDate(0, 0, i-n+1)
	}
	return days
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type ProductStat struct {
	ProductID    int    `json:"productId"`
	ProductName  string `json:"productName"`
	RestaurantID int    `json:"restaurantId"`
	Quantity     int    `json:"quantity"`
}

type TopProducts struct {
	RestaurantID int           `json:"restaurantId"`
	Scope        string        `json:"scope"`
	Products     []ProductStat `json:"products"`
	Source       string        `json:"source"`
}

// Revenue is settled money over some span of days.
type Revenue struct {
	Total    decimal.Decimal
	Tips     decimal.Decimal
	Orders   int
	ByMethod map[string]decimal.Decimal
}

func NewRevenue() Revenue {
	return Revenue{ByMethod: make(map[string]decimal.Decimal)}
}

func (r *Revenue) Add(o Revenue) {
	if r.ByMethod == nil {
		r.ByMethod = make(map[string]decimal.Decimal)
	}
	r.Total = r.Total.Add(o.Total)
	r.Tips = r.Tips.Add(o.Tips)
	r.Orders += o.Orders
	for method, amount := range o.ByMethod {
		r.ByMethod[method] = r.ByMethod[method].Add(amount)
	}
}

// ParseRevenueHash reads the counters agg-svc keeps per day.
func ParseRevenueHash(fields map[string]string) (Revenue, error) {
	rev := NewRevenue()
	for field, raw := range fields {
		if field == analytics.FieldOrders {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return rev, fmt.Errorf("field %s: %w", field, err)
			}
			rev.Orders = n
			continue
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return rev, fmt.Errorf("field %s: %w", field, err)
		}
		switch field {
		case analytics.FieldTotal:
			rev.Total = amount
		case analytics.FieldTips:
			rev.Tips = amount
		default:
			if method, ok := analytics.MethodFromField(field); ok {
				rev.ByMethod[method] = amount
			}
		}
	}
	return rev, nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

type RevenueSummary struct {
	RestaurantID      int                `json:"restaurantId"`
	Period            Period             `json:"period"`
	From              string             `json:"from"`
	To                string             `json:"to"`
	Revenue           float64            `json:"revenue"`
	Orders            int                `json:"orders"`
	AverageOrderValue float64            `json:"averageOrderValue"`
	Tips              float64            `json:"tips"`
	RevenueByMethod   map[string]float64 `json:"revenueByMethod"`
	Source            string             `json:"source"`
}

func NewRevenueSummary(restaurantID int, period Period, days []time.Time, rev Revenue, source string) RevenueSummary {
	s := RevenueSummary{
		RestaurantID:    restaurantID,
		Period:          period,
		From:            days[0].Format(analytics.DateLayout),
		To:              days[len(days)-1].Format(analytics.DateLayout),
		Revenue:         money(rev.Total),
		Orders:          rev.Orders,
		Tips:            money(rev.Tips),
		RevenueByMethod: make(map[string]float64, len(rev.ByMethod)),
		Source:          source,
	}
	if rev.Orders > 0 {
		s.AverageOrderValue = money(rev.Total.Div(decimal.NewFromInt(int64(rev.Orders))))
	}
	for method, amount := range rev.ByMethod {
		s.RevenueByMethod[method] = money(amount)
	}
	return s
}

// CashRegister is the end-of-day drawer check: what the drawer should hold
// given the opening float and cash takings, against what was counted.
type CashRegister struct {
	RestaurantID int      `json:"restaurantId"`
	Date         string   `json:"date"`
	OpeningCash  float64  `json:"openingCash"`
	CashRevenue  float64  `json:"cashRevenue"`
	CardRevenue  float64  `json:"cardRevenue"`
	OtherRevenue float64  `json:"otherRevenue"`
	TotalRevenue float64  `json:"totalRevenue"`
	Tips         float64  `json:"tips"`
	Orders       int      `json:"orders"`
	ExpectedCash float64  `json:"expectedCash"`
	CountedCash  *float64 `json:"countedCash,omitempty"`
	Difference   *float64 `json:"difference,omitempty"`
	Source       string   `json:"source"`
}

func NewCashRegister(restaurantID int, day time.Time, rev Revenue, opening decimal.Decimal, counted *decimal.Decimal, source string) CashRegister {
	cash := rev.ByMethod[MethodCash]
	card := rev.ByMethod[MethodCard]
	expected := opening.Add(cash)

	cr := CashRegister{
		RestaurantID: restaurantID,
		Date:         day.Format(analytics.DateLayout),
		OpeningCash:  money(opening),
		CashRevenue:  money(cash),
		CardRevenue:  money(card),
		OtherRevenue: money(rev.Total.Sub(cash).Sub(card)),
		TotalRevenue: money(rev.Total),
		Tips:         money(rev.Tips),
		Orders:       rev.Orders,
		ExpectedCash: money(expected),
		Source:       source,
	}
	if counted != nil {
		c := money(*counted)
		diff := money(counted.Sub(expected))
		cr.CountedCash = &c
		cr.Difference = &diff
	}
	return cr
}

type HourCount struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

type PeakHours struct {
	RestaurantID int         `json:"restaurantId"`
	Date         string      `json:"date"`
	Hours        []HourCount `json:"hours"`
	Busiest      *HourCount  `json:"busiest,omitempty"`
	Source       string      `json:"source"`
}

// NewPeakHours lays counts out over the 24 hours of the day. Ties for the
// busiest hour go to the earliest.
func NewPeakHours(restaurantID int, day time.Time, counts map[int]int, source string) PeakHours {
	p := PeakHours{
		RestaurantID: restaurantID,
		Date:         day.Format(analytics.DateLayout),
		Hours:        make([]HourCount, 24),
		Source:       source,
	}
	for h := range p.Hours {
		p.Hours[h] = HourCount{Hour: h, Orders: counts[h]}
	}

	ranked := make([]HourCount, len(p.Hours))
	copy(ranked, p.Hours)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Orders > ranked[j].Orders })
	if ranked[0].Orders > 0 {
		busiest := ranked[0]
		p.Busiest = &busiest
	}
	return p
}
