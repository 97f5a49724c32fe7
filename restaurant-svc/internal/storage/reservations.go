package storage

import (
	"context"
	"fmt"
	"time"

	"brasserie/restaurant-svc/internal/domain"
)

const reservationColumns = `
	r.id, r.customer_name, r.customer_phone, r.customer_email, r.table_id, t.number,
	r.date, r.time, r.guests, r.status, r.notes, r.created_at`

func scanReservation(s rowScanner) (domain.Reservation, error) {
	var res domain.Reservation
	err := s.Scan(&res.ID, &res.CustomerName, &res.CustomerPhone, &res.CustomerEmail, &res.TableID, &res.TableNumber,
		&res.Date, &res.Time, &res.Guests, &res.Status, &res.Notes, &res.CreatedAt)
	return res, err
}

func (r *PostgresRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO reservations (customer_name, customer_phone, customer_email, table_id, date, time, guests, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, (SELECT number FROM tables WHERE id = $4)`,
		res.CustomerName, res.CustomerPhone, res.CustomerEmail, res.TableID, res.Date, res.Time,
		res.Guests, res.Status, res.Notes,
	).Scan(&res.ID, &res.CreatedAt, &res.TableNumber)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	res, err := scanReservation(r.DB.QueryRowContext(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations r
		JOIN tables t ON t.id = r.table_id
		WHERE r.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "reservation", id)
	}
	return &res, nil
}

func (r *PostgresRepository) ListReservations(ctx context.Context, limit int) ([]domain.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations r
		JOIN tables t ON t.id = r.table_id
		ORDER BY r.date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *PostgresRepository) UpdateReservationStatus(ctx context.Context, id int, from, to domain.ReservationStatus) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE reservations SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrStatusChanged
	}
	return nil
}

func (r *PostgresRepository) DeleteReservation(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete reservation: %w", err)
	}
	return result.RowsAffected()
}

// HasActiveReservation reports whether tableID already holds a pending or
// confirmed reservation on the same day at the same time slot.
func (r *PostgresRepository) HasActiveReservation(ctx context.Context, tableID int, day time.Time, slot string) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE table_id = $1
			  AND status IN ($2, $3)
			  AND date >= $4 AND date < $5
			  AND time = $6
		)`,
		tableID, domain.ReservationPending, domain.ReservationConfirmed, start, start.AddDate(0, 0, 1), slot,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check table reservations: %w", err)
	}
	return exists, nil
}
