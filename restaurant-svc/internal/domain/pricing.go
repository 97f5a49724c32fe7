package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultTaxRate = 0.10

// Totals is the money breakdown of an order, every field rounded to cents.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Tip      decimal.Decimal
	Total    decimal.Decimal
}

func ComputeTotals(items []OrderItem, taxRate, discount, tip float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	d := decimal.NewFromFloat(discount).Round(2)
	t := decimal.NewFromFloat(tip).Round(2)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: d,
		Tip:      t,
		Total:    subtotal.Add(tax).Sub(d).Add(t),
	}
}

// Apply copies the totals onto the order.
func (t Totals) Apply(o *Order) {
	o.Subtotal = t.Subtotal.InexactFloat64()
	o.TaxAmount = t.Tax.InexactFloat64()
	o.Discount = t.Discount.InexactFloat64()
	o.Tip = t.Tip.InexactFloat64()
	o.TotalAmount = t.Total.InexactFloat64()
}

// Validate rejects negative adjustments and a discount larger than what is
// owed before tip.
func (t Totals) Validate() error {
	var details []string
	if t.Discount.IsNegative() {
		details = append(details, "discount must not be negative")
	}
	if t.Tip.IsNegative() {
		details = append(details, "tip must not be negative")
	}
	if t.Discount.GreaterThan(t.Subtotal.Add(t.Tax)) {
		details = append(details, fmt.Sprintf("discount %s exceeds amount due %s", t.Discount.StringFixed(2), t.Subtotal.Add(t.Tax).StringFixed(2)))
	}
	if len(details) > 0 {
		return NewValidationError("invalid order amounts", details...)
	}
	return nil
}

func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("CMD-%s-%s", now.Format("20060102"), suffix)
}
