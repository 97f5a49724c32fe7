package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"brasserie/restaurant-svc/internal/domain"
	"brasserie/restaurant-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresRepository(db), mock
}

var productRowColumns = []string{
	"id", "name", "description", "price", "image_url", "is_available",
	"category_id", "category_name", "restaurant_id", "allergens", "preparation_time", "created_at",
}

func TestCreateRestaurant_SlugTaken(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("INSERT INTO restaurants").
		WithArgs("Demo", "demo", "", "", "FR").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "restaurants_slug_key"})

	err := repo.CreateRestaurant(context.Background(), &domain.Restaurant{Name: "Demo", Slug: "demo", Country: "FR"})

	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRestaurant_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("FROM restaurants").WithArgs(7).WillReturnError(sql.ErrNoRows)

	rest, err := repo.GetRestaurant(context.Background(), 7)

	assert.Nil(t, rest)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 7, nf.ID)
}

func TestListProducts(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(1, 0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery("ORDER BY p.created_at DESC").
		WithArgs(1, 0, 20, 20).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(3, "Tiramisu", "Dessert italien", 7.5, "", true, 2, "Desserts", 1, "{lait,oeuf}", 5, now))

	products, total, err := repo.ListProducts(context.Background(), domain.ProductFilter{RestaurantID: 1, Page: 2, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 21, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Desserts", products[0].CategoryName)
	assert.Equal(t, []string{"lait", "oeuf"}, products[0].Allergens)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetProductAvailability_Missing(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("UPDATE products SET is_available").
		WithArgs(false, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetProductAvailability(context.Background(), 99, false)

	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCreateOrder(t *testing.T) {
	tests := []struct {
		name     string
		orderErr error
		wantErr  error
	}{
		{
			name: "order and items inserted",
		},
		{
			name:     "table already has an open order",
			orderErr: &pq.Error{Code: "23505", Constraint: "orders_one_open_per_table"},
			wantErr:  domain.ErrTableHasOpenOrder,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := setupRepo(t)
			now := time.Now()
			order := &domain.Order{
				OrderNumber: "CMD-20240101-ABCDEF",
				TableID:     4,
				Status:      domain.OrderPending,
				Items: []domain.OrderItem{
					{ProductID: 1, ProductName: "Burger Maison", Station: domain.StationKitchen, Quantity: 2, UnitPrice: 16},
				},
			}

			mock.ExpectBegin()
			insert := mock.ExpectQuery("INSERT INTO orders")
			if testCase.orderErr != nil {
				insert.WillReturnError(testCase.orderErr)
				mock.ExpectRollback()
			} else {
				insert.WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))
				mock.ExpectQuery("INSERT INTO order_items").
					WithArgs(11, 1, "Burger Maison", "", domain.StationKitchen, 2, 16.0, "").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
				mock.ExpectCommit()
			}

			err := repo.CreateOrder(context.Background(), order)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 11, order.ID)
				assert.Equal(t, 11, order.Items[0].OrderID)
				assert.Equal(t, 100, order.Items[0].ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "status written", affected: 1},
		{name: "status changed underneath", affected: 0, wantErr: domain.ErrStatusChanged},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := setupRepo(t)

			mock.ExpectExec("UPDATE orders").
				WithArgs(domain.OrderPreparing, nil, 5, domain.OrderPending).
				WillReturnResult(sqlmock.NewResult(0, testCase.affected))

			err := repo.UpdateOrderStatus(context.Background(), 5, domain.OrderPending, domain.OrderPreparing, nil)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecordPayment_AlreadySettled(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "payments_order_id_key"})
	mock.ExpectRollback()

	err := repo.RecordPayment(context.Background(), &domain.Payment{OrderID: 3, Amount: 10, Method: domain.PaymentCard}, 0, 10)

	assert.True(t, errors.Is(err, domain.ErrAlreadySettled))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()
	cash, change := 40.0, 6.32

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(3, 33.68, domain.PaymentCash, 40.0, 6.32, []byte("[]"), 2.0, domain.PaymentComplete, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))
	mock.ExpectExec("UPDATE orders SET tip").
		WithArgs(2.0, 33.68, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := &domain.Payment{
		OrderID:      3,
		Amount:       33.68,
		Method:       domain.PaymentCash,
		CashReceived: &cash,
		Change:       &change,
		Tip:          2,
		Status:       domain.PaymentComplete,
	}
	err := repo.RecordPayment(context.Background(), p, 2, 33.68)

	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAvailableTable_None(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("FROM tables t").WillReturnError(sql.ErrNoRows)

	table, err := repo.FindAvailableTable(context.Background(), 6, time.Now())

	assert.NoError(t, err)
	assert.Nil(t, table)
}

func TestDeleteReservation(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("DELETE FROM reservations").WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteReservation(context.Background(), 8)

	assert.NoError(t, err)
	assert.Zero(t, n)
}

var orderRowColumns = []string{
	"id", "order_number", "restaurant_id", "table_id", "number", "notes",
	"subtotal", "tax_amount", "discount", "tip", "total_amount", "status",
	"created_at", "updated_at", "served_at",
}

var itemRowColumns = []string{
	"id", "order_id", "product_id", "product_name", "category_name", "station", "quantity", "unit_price", "notes",
}

var paymentRowColumns = []string{
	"id", "order_id", "amount", "method", "cash_received", "change_due", "split_payments",
	"tip", "status", "transaction_id", "created_at",
}

func TestListOrders_AttachesItemsAndPayments(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE \(\$1 = '' OR o.status = \$1\)\s+ORDER BY o.created_at DESC\s+LIMIT \$2`).
		WithArgs("SERVIE", 100).
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow(9, "CMD-20250301-00000A", 1, 4, 7, "", 28.8, 2.88, 0.0, 2.0, 33.68, "SERVIE", now, now, now).
			AddRow(8, "CMD-20250301-00000B", 1, 5, 8, "", 3.0, 0.3, 0.0, 0.0, 3.3, "SERVIE", now, now, now))
	mock.ExpectQuery("FROM order_items").
		WithArgs(sqlmock.AnyArg(), "").
		WillReturnRows(sqlmock.NewRows(itemRowColumns).
			AddRow(1, 9, 1, "Burger Maison", "Plats", "kitchen", 2, 12.9, "").
			AddRow(2, 8, 2, "Café", "Boissons chaudes", "bar", 1, 3.0, ""))
	mock.ExpectQuery("FROM payments").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns).
			AddRow(1, 9, 33.68, "ESPECES", 40.0, 6.32, []byte("[]"), 2.0, "COMPLETE", "", now))

	orders, err := repo.ListOrders(context.Background(), domain.OrderServed, 100)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 9, orders[0].ID)
	require.NotNil(t, orders[0].Payment)
	assert.Equal(t, 33.68, orders[0].Payment.Amount)
	assert.Equal(t, 6.32, *orders[0].Payment.Change)
	assert.Nil(t, orders[1].Payment, "order 8 is unpaid")
	assert.Len(t, orders[1].Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_Empty(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("FROM orders o").
		WithArgs("", 100).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	orders, err := repo.ListOrders(context.Background(), "", 100)

	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListQueue_OnlyStationItems(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery(`AND EXISTS \(SELECT 1 FROM order_items oi WHERE oi.order_id = o.id AND oi.station = \$2\)\s+ORDER BY o.created_at ASC`).
		WithArgs(sqlmock.AnyArg(), domain.StationBar).
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow(3, "CMD-20250301-00000C", 1, 4, 7, "", 15.9, 1.59, 0.0, 0.0, 17.49, "EN_ATTENTE", now, now, nil))
	mock.ExpectQuery(`FROM order_items\s+WHERE order_id = ANY\(\$1\) AND \(\$2 = '' OR station = \$2\)`).
		WithArgs(sqlmock.AnyArg(), "bar").
		WillReturnRows(sqlmock.NewRows(itemRowColumns).
			AddRow(5, 3, 2, "Mojito", "Cocktails", "bar", 1, 9.0, ""))
	mock.ExpectQuery("FROM payments").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))

	orders, err := repo.ListQueue(context.Background(), domain.StationBar)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, domain.StationBar, orders[0].Items[0].Station)
	assert.Nil(t, orders[0].ServedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReservations(t *testing.T) {
	repo, mock := setupRepo(t)
	day := time.Date(2024, 6, 14, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`ORDER BY r.date DESC\s+LIMIT \$1`).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_name", "customer_phone", "customer_email", "table_id", "number",
			"date", "time", "guests", "status", "notes", "created_at",
		}).AddRow(1, "Jean Dupont", "+33612345678", "jean@example.com", 1, 1, day, "19:00", 2, "EN_ATTENTE", "", day))

	reservations, err := repo.ListReservations(context.Background(), 100)

	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "Jean Dupont", reservations[0].CustomerName)
	assert.Equal(t, domain.ReservationPending, reservations[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
