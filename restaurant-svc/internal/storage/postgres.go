package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"brasserie/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func notFound(err error, entity string, id int) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return err
}

// uniqueViolation reports whether err is a unique violation on constraint.
// An empty constraint matches any unique violation.
func uniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO restaurants (name, slug, address, city, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		rest.Name, rest.Slug, rest.Address, rest.City, rest.Country,
	).Scan(&rest.ID, &rest.CreatedAt)
	if uniqueViolation(err, "restaurants_slug_key") {
		return domain.NewValidationError("slug already taken", rest.Slug)
	}
	return err
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, slug, address, city, country, created_at
		FROM restaurants
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Slug, &rest.Address, &rest.City, &rest.Country, &rest.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, slug, address, city, country, created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Slug, &rest.Address, &rest.City, &rest.Country, &rest.CreatedAt)
	if err != nil {
		return nil, notFound(err, "restaurant", id)
	}
	return &rest, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, display_order, is_active, restaurant_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		c.Name, c.Description, c.Order, c.IsActive, c.RestaurantID,
	).Scan(&c.ID)
	if uniqueViolation(err, "") {
		return domain.NewValidationError("category already exists", c.Name)
	}
	return err
}

func (r *PostgresRepository) ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, description, display_order, is_active, restaurant_id
		FROM categories
		WHERE ($1 = 0 OR restaurant_id = $1)
		ORDER BY display_order ASC, id ASC`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Order, &c.IsActive, &c.RestaurantID); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.image_url, p.is_available,
	p.category_id, c.name, p.restaurant_id, p.allergens, p.preparation_time, p.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (domain.Product, error) {
	var p domain.Product
	var allergens pq.StringArray
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.IsAvailable,
		&p.CategoryID, &p.CategoryName, &p.RestaurantID, &allergens, &p.PreparationTime, &p.CreatedAt)
	p.Allergens = []string(allergens)
	if p.Allergens == nil {
		p.Allergens = []string{}
	}
	return p, err
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, image_url, is_available, category_id, restaurant_id, allergens, preparation_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		p.Name, p.Description, p.Price, p.ImageURL, p.IsAvailable, p.CategoryID, p.RestaurantID,
		pq.Array(p.Allergens), p.PreparationTime,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PostgresRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, image_url = $4, is_available = $5,
		    category_id = $6, allergens = $7, preparation_time = $8
		WHERE id = $9`,
		p.Name, p.Description, p.Price, p.ImageURL, p.IsAvailable, p.CategoryID,
		pq.Array(p.Allergens), p.PreparationTime, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "product", ID: p.ID}
	}
	return nil
}

func (r *PostgresRepository) SetProductAvailability(ctx context.Context, id int, available bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE products SET is_available = $1 WHERE id = $2`, available, id)
	if err != nil {
		return fmt.Errorf("set product availability: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "product", ID: id}
	}
	return nil
}

func (r *PostgresRepository) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	return &p, nil
}

// GetProductsByIDs loads the given products keyed by id. Missing ids are
// simply absent from the map.
func (r *PostgresRepository) GetProductsByIDs(ctx context.Context, ids []int) (map[int]domain.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	defer rows.Close()

	products := make(map[int]domain.Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

func (r *PostgresRepository) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM products p
		WHERE ($1 = 0 OR p.restaurant_id = $1) AND ($2 = 0 OR p.category_id = $2)`,
		f.RestaurantID, f.CategoryID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE ($1 = 0 OR p.restaurant_id = $1) AND ($2 = 0 OR p.category_id = $2)
		ORDER BY p.created_at DESC
		LIMIT $3 OFFSET $4`,
		f.RestaurantID, f.CategoryID, f.Limit, (f.Page-1)*f.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}
