package service

import (
	"context"
	"time"

	"brasserie/internal/events"
	"brasserie/restaurant-svc/internal/domain"
)

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error)
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	SetProductAvailability(ctx context.Context, id int, available bool) error
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int) (map[int]domain.Product, error)
	ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error)
}

type TableRepository interface {
	CreateTable(ctx context.Context, t *domain.Table) error
	ListTables(ctx context.Context, restaurantID int) ([]domain.Table, error)
	GetTable(ctx context.Context, id int) (*domain.Table, error)
	UpdateTableStatus(ctx context.Context, id int, from, to domain.TableStatus) error
	FindAvailableTable(ctx context.Context, guests int, day time.Time) (*domain.Table, error)
	FirstTable(ctx context.Context) (*domain.Table, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error)
	ListQueue(ctx context.Context, station domain.Station) ([]domain.Order, error)
	HasOpenOrder(ctx context.Context, tableID int) (bool, error)
	UpdateOrderStatus(ctx context.Context, id int, from, to domain.OrderStatus, servedAt *time.Time) error
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}

type ReservationRepository interface {
	CreateReservation(ctx context.Context, res *domain.Reservation) error
	GetReservation(ctx context.Context, id int) (*domain.Reservation, error)
	ListReservations(ctx context.Context, limit int) ([]domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int, from, to domain.ReservationStatus) error
	DeleteReservation(ctx context.Context, id int) (int64, error)
	HasActiveReservation(ctx context.Context, tableID int, day time.Time, slot string) (bool, error)
}

type PaymentRepository interface {
	RecordPayment(ctx context.Context, p *domain.Payment, tip, total float64) error
	GetPaymentByOrder(ctx context.Context, orderID int) (*domain.Payment, error)
}

// SettlementCache is a fast, advisory check in front of the payments table.
type SettlementCache interface {
	IsSettled(ctx context.Context, orderID int) (bool, error)
	MarkSettled(ctx context.Context, orderID int) error
}

type EventPublisher interface {
	PublishNotification(ctx context.Context, n events.Notification) error
	PublishOrderEvent(ctx context.Context, e events.OrderEvent) error
}

type CatalogServiceInterface interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	SetProductAvailability(ctx context.Context, id int, available bool) (*domain.Product, error)
	ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, domain.ProductFilter, int, error)
}

type TableServiceInterface interface {
	Create(ctx context.Context, t *domain.Table) error
	List(ctx context.Context, restaurantID int) ([]domain.Table, error)
	UpdateStatus(ctx context.Context, id int, to domain.TableStatus) (*domain.Table, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	Queue(ctx context.Context, station domain.Station) ([]domain.Order, error)
	Transition(ctx context.Context, id int, action domain.OrderAction) (*domain.Order, error)
	QRCode(ctx context.Context, id int) ([]byte, error)
}

type ReservationServiceInterface interface {
	Create(ctx context.Context, in domain.CreateReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, id int) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	Transition(ctx context.Context, id int, action domain.ReservationAction) (*domain.Reservation, error)
	Delete(ctx context.Context, id int) error
}

type PaymentServiceInterface interface {
	Record(ctx context.Context, orderID int, in domain.PaymentInput) (*domain.Payment, error)
	Get(ctx context.Context, orderID int) (*domain.Payment, error)
}
