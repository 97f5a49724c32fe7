package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/lib/pq"
)

type seedProduct struct {
	name        string
	description string
	price       float64
	category    string
}

var (
	seedCategories = []struct{ name, description string }{
		{"Entrées", "Plats d'entrée"},
		{"Plats", "Plats principaux"},
		{"Desserts", "Desserts"},
	}
	seedProducts = []seedProduct{
		{"Salade César", "Salade fraîche avec poulet grillé", 12.5, "Entrées"},
		{"Burger Maison", "Pain artisanal, steak 180g", 16.0, "Plats"},
		{"Tiramisu", "Dessert italien", 7.5, "Desserts"},
	}
	seedTables = []struct{ number, capacity int }{
		{1, 4},
		{2, 2},
	}
)

// Seed loads the demo restaurant. It is idempotent: rows that already exist
// are left alone. Every step runs even if an earlier one failed; all failures
// are returned together.
func Seed(ctx context.Context, db *sql.DB, now time.Time) error {
	var restaurantID int
	err := db.QueryRowContext(ctx, `
		INSERT INTO restaurants (name, slug, address, city, country)
		VALUES ('Restaurant Demo', 'restaurant-demo', '123 Rue de Test', 'Paris', 'FR')
		ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		RETURNING id`).Scan(&restaurantID)
	if err != nil {
		return fmt.Errorf("seed restaurant: %w", err)
	}

	var result *multierror.Error

	categoryIDs := map[string]int{}
	for i, c := range seedCategories {
		var id int
		err := db.QueryRowContext(ctx, `
			INSERT INTO categories (name, description, display_order, restaurant_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (restaurant_id, name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, c.name, c.description, i, restaurantID).Scan(&id)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("seed category %s: %w", c.name, err))
			continue
		}
		categoryIDs[c.name] = id
	}

	for _, p := range seedProducts {
		categoryID, ok := categoryIDs[p.category]
		if !ok {
			result = multierror.Append(result, fmt.Errorf("seed product %s: category %s missing", p.name, p.category))
			continue
		}
		if _, err := db.ExecContext(ctx, `
			INSERT INTO products (name, description, price, category_id, restaurant_id, allergens)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (restaurant_id, name) DO NOTHING`,
			p.name, p.description, p.price, categoryID, restaurantID, pq.Array([]string{})); err != nil {
			result = multierror.Append(result, fmt.Errorf("seed product %s: %w", p.name, err))
		}
	}

	for _, t := range seedTables {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO tables (restaurant_id, number, capacity, status)
			VALUES ($1, $2, $3, 'LIBRE')
			ON CONFLICT (restaurant_id, number) DO NOTHING`,
			restaurantID, t.number, t.capacity); err != nil {
			result = multierror.Append(result, fmt.Errorf("seed table %d: %w", t.number, err))
		}
	}

	if err := seedReservation(ctx, db, restaurantID, now); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func seedReservation(ctx context.Context, db *sql.DB, restaurantID int, now time.Time) error {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reservations WHERE customer_email = 'jean@example.com')`).Scan(&exists); err != nil {
		return fmt.Errorf("seed reservation: %w", err)
	}
	if exists {
		return nil
	}

	var tableID int
	err := db.QueryRowContext(ctx,
		`SELECT id FROM tables WHERE restaurant_id = $1 ORDER BY number ASC LIMIT 1`, restaurantID).Scan(&tableID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed reservation: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		INSERT INTO reservations (customer_name, customer_email, customer_phone, table_id, date, time, guests, status)
		VALUES ('Jean Dupont', 'jean@example.com', '+33612345678', $1, $2, '19:00', 2, 'CONFIRMEE')`,
		tableID, now); err != nil {
		return fmt.Errorf("seed reservation: %w", err)
	}
	return nil
}
