package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brasserie/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

const orderColumns = `
	o.id, o.order_number, o.restaurant_id, o.table_id, t.number, o.notes,
	o.subtotal, o.tax_amount, o.discount, o.tip, o.total_amount, o.status,
	o.created_at, o.updated_at, o.served_at`

func scanOrder(s rowScanner) (domain.Order, error) {
	var o domain.Order
	var servedAt sql.NullTime
	err := s.Scan(&o.ID, &o.OrderNumber, &o.RestaurantID, &o.TableID, &o.TableNumber, &o.Notes,
		&o.Subtotal, &o.TaxAmount, &o.Discount, &o.Tip, &o.TotalAmount, &o.Status,
		&o.CreatedAt, &o.UpdatedAt, &servedAt)
	if servedAt.Valid {
		o.ServedAt = &servedAt.Time
	}
	return o, err
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (order_number, restaurant_id, table_id, notes, subtotal, tax_amount, discount, tip, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		order.OrderNumber, order.RestaurantID, order.TableID, order.Notes,
		order.Subtotal, order.TaxAmount, order.Discount, order.Tip, order.TotalAmount, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if uniqueViolation(err, "orders_one_open_per_table") {
		return domain.ErrTableHasOpenOrder
	}
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, category_name, station, quantity, unit_price, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName, item.CategoryName, item.Station,
			item.Quantity, item.UnitPrice, item.Notes,
		).Scan(&item.ID); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

// GetOrder loads an order with its items and payment, if any.
func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		WHERE o.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "order", id)
	}

	items, err := r.itemsFor(ctx, []int{o.ID}, "")
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}

	payment, err := r.GetPaymentByOrder(ctx, o.ID)
	var nf *domain.NotFoundError
	switch {
	case err == nil:
		o.Payment = payment
	case !errors.As(err, &nf):
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		WHERE ($1 = '' OR o.status = $1)
		ORDER BY o.created_at DESC
		LIMIT $2`, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	return r.attachDetails(ctx, orders, "")
}

// ListQueue returns the orders still waiting on station, oldest first, each
// carrying only the items that station prepares.
func (r *PostgresRepository) ListQueue(ctx context.Context, station domain.Station) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		WHERE o.status = ANY($1)
		  AND EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = o.id AND oi.station = $2)
		ORDER BY o.created_at ASC`,
		pq.Array([]string{string(domain.OrderPending), string(domain.OrderPreparing)}), station)
	if err != nil {
		return nil, fmt.Errorf("list %s queue: %w", station, err)
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	return r.attachDetails(ctx, orders, station)
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	defer rows.Close()
	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// attachDetails fills in the items (only those of station, when set) and the
// payment of each order.
func (r *PostgresRepository) attachDetails(ctx context.Context, orders []domain.Order, station domain.Station) ([]domain.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}
	ids := make([]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := r.itemsFor(ctx, ids, station)
	if err != nil {
		return nil, err
	}
	payments, err := r.paymentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
		orders[i].Payment = payments[orders[i].ID]
	}
	return orders, nil
}

func (r *PostgresRepository) itemsFor(ctx context.Context, orderIDs []int, station domain.Station) (map[int][]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, category_name, station, quantity, unit_price, notes
		FROM order_items
		WHERE order_id = ANY($1) AND ($2 = '' OR station = $2)
		ORDER BY id ASC`, pq.Array(orderIDs), string(station))
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make(map[int][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.CategoryName,
			&it.Station, &it.Quantity, &it.UnitPrice, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) HasOpenOrder(ctx context.Context, tableID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM orders
			WHERE table_id = $1 AND status = ANY($2)
		)`, tableID,
		pq.Array([]string{string(domain.OrderPending), string(domain.OrderPreparing), string(domain.OrderReady)}),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check open order: %w", err)
	}
	return exists, nil
}

// UpdateOrderStatus writes the new status only if the order is still in from.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, from, to domain.OrderStatus, servedAt *time.Time) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW(), served_at = COALESCE($2, served_at)
		WHERE id = $3 AND status = $4`,
		to, servedAt, id, from)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrStatusChanged
	}
	return nil
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	var qrCode []byte
	if err := r.DB.QueryRowContext(ctx, `SELECT qr_code FROM orders WHERE id = $1`, orderID).Scan(&qrCode); err != nil {
		return nil, notFound(err, "order", orderID)
	}
	return qrCode, nil
}
