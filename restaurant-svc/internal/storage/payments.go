package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"brasserie/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

// RecordPayment inserts the payment and writes the settled tip and total back
// onto the order in one transaction. A second payment for the same order hits
// the unique constraint on payments.order_id.
func (r *PostgresRepository) RecordPayment(ctx context.Context, p *domain.Payment, tip, total float64) error {
	splits := p.SplitPayments
	if splits == nil {
		splits = []domain.SplitPayment{}
	}
	splitJSON, err := json.Marshal(splits)
	if err != nil {
		return fmt.Errorf("encode split payments: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin payment tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, amount, method, cash_received, change_due, split_payments, tip, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		p.OrderID, p.Amount, p.Method, p.CashReceived, p.Change, splitJSON, p.Tip, p.Status, p.TransactionID,
	).Scan(&p.ID, &p.CreatedAt)
	if uniqueViolation(err, "payments_order_id_key") {
		return domain.ErrAlreadySettled
	}
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET tip = $1, total_amount = $2, updated_at = NOW()
		WHERE id = $3`, tip, total, p.OrderID); err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}

	return tx.Commit()
}

const paymentColumns = `
	id, order_id, amount, method, cash_received, change_due, split_payments, tip, status, transaction_id, created_at`

func scanPayment(s rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var cash, change sql.NullFloat64
	var splitJSON []byte
	if err := s.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &cash, &change, &splitJSON,
		&p.Tip, &p.Status, &p.TransactionID, &p.CreatedAt); err != nil {
		return nil, err
	}
	if cash.Valid {
		p.CashReceived = &cash.Float64
	}
	if change.Valid {
		p.Change = &change.Float64
	}
	if len(splitJSON) > 0 {
		if err := json.Unmarshal(splitJSON, &p.SplitPayments); err != nil {
			return nil, fmt.Errorf("decode split payments: %w", err)
		}
	}
	if len(p.SplitPayments) == 0 {
		p.SplitPayments = nil
	}
	return &p, nil
}

func (r *PostgresRepository) GetPaymentByOrder(ctx context.Context, orderID int) (*domain.Payment, error) {
	p, err := scanPayment(r.DB.QueryRowContext(ctx, `
		SELECT`+paymentColumns+`
		FROM payments
		WHERE order_id = $1`, orderID))
	if err != nil {
		return nil, notFound(err, "payment for order", orderID)
	}
	return p, nil
}

// paymentsFor loads the payments of several orders at once, keyed by order id.
func (r *PostgresRepository) paymentsFor(ctx context.Context, orderIDs []int) (map[int]*domain.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT`+paymentColumns+`
		FROM payments
		WHERE order_id = ANY($1)`, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	defer rows.Close()

	payments := make(map[int]*domain.Payment, len(orderIDs))
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments[p.OrderID] = p
	}
	return payments, rows.Err()
}
