package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var settlementTolerance = decimal.RequireFromString("0.01")

// Settlement is the outcome of validating a payment against an order. The
// payment is not persisted yet; Tip and Total are the order's figures once
// the payment is recorded.
type Settlement struct {
	Payment Payment
	Tip     float64
	Total   float64
}

// Settle checks a payment request against the order it pays for.
//
// The order owns the tip. A tip can be entered once, either when the order is
// created or here; entering it twice is rejected.
func Settle(order *Order, in PaymentInput) (*Settlement, error) {
	if order.Status == OrderCancelled {
		return nil, ErrSettleCancelled
	}
	if order.Payment != nil {
		return nil, ErrAlreadySettled
	}

	var details []string
	if in.Method == "" {
		details = append(details, "method is required")
	}
	tip := decimal.NewFromFloat(in.Tip).Round(2)
	if tip.IsNegative() {
		details = append(details, "tip must not be negative")
	}
	if tip.IsPositive() && order.Tip > 0 {
		details = append(details, "tip was already recorded on the order")
	}
	if len(details) > 0 {
		return nil, NewValidationError("invalid payment", details...)
	}

	due := decimal.NewFromFloat(order.TotalAmount).Add(tip).Round(2)
	amount := decimal.NewFromFloat(in.Amount).Round(2)
	if amount.Sub(due).Abs().GreaterThan(settlementTolerance) {
		return nil, NewValidationError("invalid payment",
			fmt.Sprintf("amount %s does not match amount due %s", amount.StringFixed(2), due.StringFixed(2)))
	}

	p := Payment{
		OrderID: order.ID,
		Amount:  amount.InexactFloat64(),
		Method:  in.Method,
		Tip:     decimal.NewFromFloat(order.Tip).Add(tip).InexactFloat64(),
		Status:  PaymentComplete,
	}

	if in.Method == PaymentCash {
		if in.CashReceived == nil {
			return nil, NewValidationError("invalid payment", "cashReceived is required for cash payments")
		}
		received := decimal.NewFromFloat(*in.CashReceived).Round(2)
		if received.LessThan(amount) {
			return nil, NewValidationError("invalid payment",
				fmt.Sprintf("cash received %s is less than amount %s", received.StringFixed(2), amount.StringFixed(2)))
		}
		cash := received.InexactFloat64()
		change := received.Sub(amount).InexactFloat64()
		p.CashReceived = &cash
		p.Change = &change
	}

	if len(in.SplitPayments) > 0 {
		if err := checkSplits(in.SplitPayments, amount); err != nil {
			return nil, err
		}
		p.SplitPayments = in.SplitPayments
	}

	return &Settlement{
		Payment: p,
		Tip:     p.Tip,
		Total:   due.InexactFloat64(),
	}, nil
}

func checkSplits(splits []SplitPayment, amount decimal.Decimal) error {
	var details []string
	sum := decimal.Zero
	for i, s := range splits {
		if _, err := ParsePaymentMethod(string(s.Method)); err != nil {
			details = append(details, fmt.Sprintf("split %d: invalid method %q", i+1, s.Method))
		}
		a := decimal.NewFromFloat(s.Amount)
		if !a.IsPositive() {
			details = append(details, fmt.Sprintf("split %d: amount must be positive", i+1))
		}
		sum = sum.Add(a)
	}
	if sum.Sub(amount).Abs().GreaterThan(settlementTolerance) {
		details = append(details, fmt.Sprintf("split total %s does not match amount %s", sum.StringFixed(2), amount.StringFixed(2)))
	}
	if len(details) > 0 {
		return NewValidationError("invalid split payment", details...)
	}
	return nil
}
