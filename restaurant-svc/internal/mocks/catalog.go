package mocks

import (
	"context"

	"brasserie/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type RestaurantRepository struct {
	mock.Mock
}

func NewRestaurantRepository(t testingT) *RestaurantRepository {
	m := &RestaurantRepository{}
	register(&m.Mock, t)
	return m
}

func (m *RestaurantRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	args := m.Called(ctx, rest)
	return args.Error(0)
}

func (m *RestaurantRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	args := m.Called(ctx)
	restaurants, _ := args.Get(0).([]domain.Restaurant)
	return restaurants, args.Error(1)
}

func (m *RestaurantRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	rest, _ := args.Get(0).(*domain.Restaurant)
	return rest, args.Error(1)
}

type CategoryRepository struct {
	mock.Mock
}

func NewCategoryRepository(t testingT) *CategoryRepository {
	m := &CategoryRepository{}
	register(&m.Mock, t)
	return m
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepository) ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error) {
	args := m.Called(ctx, restaurantID)
	categories, _ := args.Get(0).([]domain.Category)
	return categories, args.Error(1)
}

type ProductRepository struct {
	mock.Mock
}

func NewProductRepository(t testingT) *ProductRepository {
	m := &ProductRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepository) SetProductAvailability(ctx context.Context, id int, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *ProductRepository) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *ProductRepository) GetProductsByIDs(ctx context.Context, ids []int) (map[int]domain.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).(map[int]domain.Product)
	return products, args.Error(1)
}

func (m *ProductRepository) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, f)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Int(1), args.Error(2)
}
