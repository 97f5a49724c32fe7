package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brasserie/restaurant-svc/internal/domain"
)

const tableColumns = `id, restaurant_id, number, capacity, status, position_x, position_y, section`

func scanTable(s rowScanner) (domain.Table, error) {
	var t domain.Table
	err := s.Scan(&t.ID, &t.RestaurantID, &t.Number, &t.Capacity, &t.Status, &t.PositionX, &t.PositionY, &t.Section)
	return t, err
}

func (r *PostgresRepository) CreateTable(ctx context.Context, t *domain.Table) error {
	if t.Status == "" {
		t.Status = domain.TableFree
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO tables (restaurant_id, number, capacity, status, position_x, position_y, section)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		t.RestaurantID, t.Number, t.Capacity, t.Status, t.PositionX, t.PositionY, t.Section,
	).Scan(&t.ID)
	if uniqueViolation(err, "") {
		return domain.NewValidationError("table number already used", fmt.Sprintf("number %d", t.Number))
	}
	return err
}

func (r *PostgresRepository) ListTables(ctx context.Context, restaurantID int) ([]domain.Table, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+tableColumns+`
		FROM tables
		WHERE ($1 = 0 OR restaurant_id = $1)
		ORDER BY number ASC`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	tables := []domain.Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) GetTable(ctx context.Context, id int) (*domain.Table, error) {
	t, err := scanTable(r.DB.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "table", id)
	}
	return &t, nil
}

// UpdateTableStatus moves the table from one status to another. The write only
// lands if the table is still in from.
func (r *PostgresRepository) UpdateTableStatus(ctx context.Context, id int, from, to domain.TableStatus) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE tables SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return fmt.Errorf("update table status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrStatusChanged
	}
	return nil
}

// FindAvailableTable returns the smallest free table that seats guests and
// holds no active reservation on the given day, or nil when there is none.
func (r *PostgresRepository) FindAvailableTable(ctx context.Context, guests int, day time.Time) (*domain.Table, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	t, err := scanTable(r.DB.QueryRowContext(ctx, `
		SELECT `+tableColumns+`
		FROM tables t
		WHERE t.status = $1
		  AND t.capacity >= $2
		  AND NOT EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.table_id = t.id
			  AND r.status IN ($3, $4)
			  AND r.date >= $5 AND r.date < $6
		  )
		ORDER BY t.capacity ASC, t.number ASC
		LIMIT 1`,
		domain.TableFree, guests, domain.ReservationPending, domain.ReservationConfirmed, start, start.AddDate(0, 0, 1)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find available table: %w", err)
	}
	return &t, nil
}

func (r *PostgresRepository) FirstTable(ctx context.Context) (*domain.Table, error) {
	t, err := scanTable(r.DB.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY number ASC, id ASC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first table: %w", err)
	}
	return &t, nil
}
