package service_test

import (
	"context"
	"testing"
	"time"

	"brasserie/internal/events"
	"brasserie/restaurant-svc/internal/domain"
	"brasserie/restaurant-svc/internal/mocks"
	"brasserie/restaurant-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	orders   *mocks.OrderRepository
	products *mocks.ProductRepository
	tables   *mocks.TableRepository
	qr       *mocks.QRGenerator
	pub      *mocks.EventPublisher
	notifier *service.Notifier
	svc      *service.OrderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	f := &orderFixture{
		orders:   mocks.NewOrderRepository(t),
		products: mocks.NewProductRepository(t),
		tables:   mocks.NewTableRepository(t),
		qr:       mocks.NewQRGenerator(t),
		pub:      mocks.NewEventPublisher(t),
	}
	logger := zap.NewNop().Sugar()
	f.notifier = service.NewNotifier(f.pub, logger, time.Second)
	f.svc = service.NewOrderService(f.orders, f.products, f.tables, f.qr, f.notifier, logger, domain.DefaultTaxRate)
	return f
}

func notificationOf(kind events.NotificationType) interface{} {
	return mock.MatchedBy(func(n events.Notification) bool { return n.Type == kind })
}

func orderEventOf(kind events.OrderEventType) interface{} {
	return mock.MatchedBy(func(e events.OrderEvent) bool { return e.Type == kind })
}

var demoProducts = map[int]domain.Product{
	1: {ID: 1, Name: "Burger Maison", Price: 12.90, CategoryName: "Plats", IsAvailable: true},
	2: {ID: 2, Name: "Café", Price: 3.00, CategoryName: "Boissons chaudes", IsAvailable: true},
	3: {ID: 3, Name: "Tiramisu", Price: 7.50, CategoryName: "Desserts", IsAvailable: false},
}

func TestOrderService_Create(t *testing.T) {
	f := newOrderFixture(t)
	table := &domain.Table{ID: 4, RestaurantID: 1, Number: 7, Capacity: 4, Status: domain.TableFree}

	f.tables.On("GetTable", mock.Anything, 4).Return(table, nil).Once()
	f.products.On("GetProductsByIDs", mock.Anything, []int{1, 2}).Return(demoProducts, nil).Once()
	f.orders.On("HasOpenOrder", mock.Anything, 4).Return(false, nil).Once()
	f.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Order).ID = 11 }).
		Return(nil).Once()
	f.tables.On("UpdateTableStatus", mock.Anything, 4, domain.TableFree, domain.TableOccupied).Return(nil).Once()
	f.qr.On("Generate", mock.AnythingOfType("string")).Return([]byte("png"), nil).Once()
	f.orders.On("SaveQRCode", mock.Anything, 11, []byte("png")).Return(nil).Once()
	f.pub.On("PublishNotification", mock.Anything, notificationOf(events.NewOrder)).Return(nil).Once()
	f.pub.On("PublishNotification", mock.Anything, notificationOf(events.DishToPrepare)).Return(nil).Once()
	f.pub.On("PublishNotification", mock.Anything, notificationOf(events.DrinksOrder)).Return(nil).Once()
	f.pub.On("PublishOrderEvent", mock.Anything, orderEventOf(events.OrderCreated)).Return(nil).Once()

	order, err := f.svc.Create(context.Background(), domain.CreateOrderInput{
		TableID: 4,
		Items: []domain.OrderItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		Tip: 2,
	})
	f.notifier.Wait()

	require.NoError(t, err)
	assert.Equal(t, 11, order.ID)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, 7, order.TableNumber)
	assert.Regexp(t, `^CMD-\d{8}-[0-9A-F]{6}$`, order.OrderNumber)
	assert.InDelta(t, 28.80, order.Subtotal, 0.001)
	assert.InDelta(t, 2.88, order.TaxAmount, 0.001)
	assert.InDelta(t, 33.68, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, domain.StationKitchen, order.Items[0].Station)
	assert.Equal(t, domain.StationBar, order.Items[1].Station)
	assert.Equal(t, 12.90, order.Items[0].UnitPrice)
}

func TestOrderService_CreateRejected(t *testing.T) {
	tests := []struct {
		name      string
		input     domain.CreateOrderInput
		setupMock func(f *orderFixture)
		check     func(t *testing.T, err error)
	}{
		{
			name:  "every item problem is reported",
			input: domain.CreateOrderInput{TableID: 4, Items: []domain.OrderItemInput{{ProductID: 0, Quantity: 0}}},
			check: func(t *testing.T, err error) {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Len(t, ve.Details, 2)
			},
		},
		{
			name:  "empty order",
			input: domain.CreateOrderInput{TableID: 4},
			check: func(t *testing.T, err error) {
				var ve *domain.ValidationError
				assert.ErrorAs(t, err, &ve)
			},
		},
		{
			name:  "unknown product",
			input: domain.CreateOrderInput{TableID: 4, Items: []domain.OrderItemInput{{ProductID: 99, Quantity: 1}}},
			setupMock: func(f *orderFixture) {
				f.tables.On("GetTable", mock.Anything, 4).Return(&domain.Table{ID: 4}, nil).Once()
				f.products.On("GetProductsByIDs", mock.Anything, []int{99}).Return(demoProducts, nil).Once()
			},
			check: func(t *testing.T, err error) {
				var nf *domain.NotFoundError
				assert.ErrorAs(t, err, &nf)
			},
		},
		{
			name:  "unavailable product",
			input: domain.CreateOrderInput{TableID: 4, Items: []domain.OrderItemInput{{ProductID: 3, Quantity: 1}}},
			setupMock: func(f *orderFixture) {
				f.tables.On("GetTable", mock.Anything, 4).Return(&domain.Table{ID: 4}, nil).Once()
				f.products.On("GetProductsByIDs", mock.Anything, []int{3}).Return(demoProducts, nil).Once()
			},
			check: func(t *testing.T, err error) {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Details[0], "Tiramisu")
			},
		},
		{
			name:  "table already has an open order",
			input: domain.CreateOrderInput{TableID: 4, Items: []domain.OrderItemInput{{ProductID: 1, Quantity: 1}}},
			setupMock: func(f *orderFixture) {
				f.tables.On("GetTable", mock.Anything, 4).Return(&domain.Table{ID: 4}, nil).Once()
				f.products.On("GetProductsByIDs", mock.Anything, []int{1}).Return(demoProducts, nil).Once()
				f.orders.On("HasOpenOrder", mock.Anything, 4).Return(true, nil).Once()
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrTableHasOpenOrder)
			},
		},
		{
			name:  "discount larger than the bill",
			input: domain.CreateOrderInput{TableID: 4, Items: []domain.OrderItemInput{{ProductID: 1, Quantity: 1}}, Discount: 50},
			setupMock: func(f *orderFixture) {
				f.tables.On("GetTable", mock.Anything, 4).Return(&domain.Table{ID: 4}, nil).Once()
				f.products.On("GetProductsByIDs", mock.Anything, []int{1}).Return(demoProducts, nil).Once()
				f.orders.On("HasOpenOrder", mock.Anything, 4).Return(false, nil).Once()
			},
			check: func(t *testing.T, err error) {
				var ve *domain.ValidationError
				assert.ErrorAs(t, err, &ve)
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newOrderFixture(t)
			if testCase.setupMock != nil {
				testCase.setupMock(f)
			}

			order, err := f.svc.Create(context.Background(), testCase.input)

			assert.Nil(t, order)
			testCase.check(t, err)
		})
	}
}

func TestOrderService_Transition(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.OrderStatus
		action     domain.OrderAction
		wantStatus domain.OrderStatus
		wantErr    bool
	}{
		{name: "start preparation", status: domain.OrderPending, action: domain.ActionStartPreparation, wantStatus: domain.OrderPreparing},
		{name: "mark ready", status: domain.OrderPreparing, action: domain.ActionMarkReady, wantStatus: domain.OrderReady},
		{name: "serve", status: domain.OrderReady, action: domain.ActionMarkServed, wantStatus: domain.OrderServed},
		{name: "cancel frees the table", status: domain.OrderPreparing, action: domain.ActionCancelOrder, wantStatus: domain.OrderCancelled},
		{name: "start preparation on a ready order", status: domain.OrderReady, action: domain.ActionStartPreparation, wantErr: true},
		{name: "cancel a served order", status: domain.OrderServed, action: domain.ActionCancelOrder, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newOrderFixture(t)
			f.orders.On("GetOrder", mock.Anything, 5).
				Return(&domain.Order{ID: 5, TableID: 4, Status: testCase.status}, nil).Once()

			if !testCase.wantErr {
				f.orders.On("UpdateOrderStatus", mock.Anything, 5, testCase.status, testCase.wantStatus, mock.Anything).
					Return(nil).Once()
				f.pub.On("PublishOrderEvent", mock.Anything, orderEventOf(events.OrderStatusChanged)).Return(nil).Once()
			}
			if testCase.wantStatus == domain.OrderCancelled {
				f.tables.On("UpdateTableStatus", mock.Anything, 4, domain.TableOccupied, domain.TableFree).Return(nil).Once()
			}

			order, err := f.svc.Transition(context.Background(), 5, testCase.action)
			f.notifier.Wait()

			if testCase.wantErr {
				var te *domain.TransitionError
				assert.ErrorAs(t, err, &te)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantStatus, order.Status)
			if testCase.wantStatus == domain.OrderServed {
				assert.NotNil(t, order.ServedAt)
			}
		})
	}
}

func TestOrderService_TransitionLostRace(t *testing.T) {
	f := newOrderFixture(t)
	f.orders.On("GetOrder", mock.Anything, 5).Return(&domain.Order{ID: 5, Status: domain.OrderPending}, nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, 5, domain.OrderPending, domain.OrderPreparing, mock.Anything).
		Return(domain.ErrStatusChanged).Once()

	_, err := f.svc.Transition(context.Background(), 5, domain.ActionStartPreparation)

	assert.ErrorIs(t, err, domain.ErrStatusChanged)
}

func TestOrderService_CancelPaidOrder(t *testing.T) {
	f := newOrderFixture(t)
	paid := &domain.Order{
		ID:      5,
		TableID: 4,
		Status:  domain.OrderReady,
		Payment: &domain.Payment{ID: 1, OrderID: 5, Amount: 33.68, Status: domain.PaymentComplete},
	}
	f.orders.On("GetOrder", mock.Anything, 5).Return(paid, nil).Once()

	_, err := f.svc.Transition(context.Background(), 5, domain.ActionCancelOrder)

	assert.ErrorIs(t, err, domain.ErrCancelSettled)
	var se *domain.StateError
	assert.ErrorAs(t, err, &se)
}

func TestOrderService_CreateSurvivesPublishFailure(t *testing.T) {
	f := newOrderFixture(t)
	table := &domain.Table{ID: 4, RestaurantID: 1, Number: 7, Capacity: 4, Status: domain.TableFree}

	f.tables.On("GetTable", mock.Anything, 4).Return(table, nil).Once()
	f.products.On("GetProductsByIDs", mock.Anything, []int{1}).Return(demoProducts, nil).Once()
	f.orders.On("HasOpenOrder", mock.Anything, 4).Return(false, nil).Once()
	f.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Order).ID = 12 }).
		Return(nil).Once()
	f.tables.On("UpdateTableStatus", mock.Anything, 4, domain.TableFree, domain.TableOccupied).Return(nil).Once()
	f.qr.On("Generate", mock.AnythingOfType("string")).Return([]byte("png"), nil).Once()
	f.orders.On("SaveQRCode", mock.Anything, 12, []byte("png")).Return(nil).Once()
	f.pub.On("PublishNotification", mock.Anything, mock.Anything).Return(assert.AnError).Twice()
	f.pub.On("PublishOrderEvent", mock.Anything, orderEventOf(events.OrderCreated)).Return(assert.AnError).Once()

	order, err := f.svc.Create(context.Background(), domain.CreateOrderInput{
		TableID: 4,
		Items:   []domain.OrderItemInput{{ProductID: 1, Quantity: 1}},
	})
	f.notifier.Wait()

	require.NoError(t, err)
	assert.Equal(t, 12, order.ID)
	assert.Equal(t, domain.OrderPending, order.Status)
}

func TestOrderService_Queue(t *testing.T) {
	f := newOrderFixture(t)
	queue := []domain.Order{{
		ID:     7,
		Status: domain.OrderPending,
		Items:  []domain.OrderItem{{ID: 1, OrderID: 7, ProductName: "Mojito", Station: domain.StationBar}},
	}}
	f.orders.On("ListQueue", mock.Anything, domain.StationBar).Return(queue, nil).Once()

	orders, err := f.svc.Queue(context.Background(), domain.StationBar)

	require.NoError(t, err)
	assert.Equal(t, queue, orders)
}

func TestOrderService_QRCode(t *testing.T) {
	t.Run("stored code", func(t *testing.T) {
		f := newOrderFixture(t)
		f.orders.On("GetQRCode", mock.Anything, 5).Return([]byte("stored"), nil).Once()

		qr, err := f.svc.QRCode(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, []byte("stored"), qr)
	})

	t.Run("regenerated when missing", func(t *testing.T) {
		f := newOrderFixture(t)
		f.orders.On("GetQRCode", mock.Anything, 5).Return([]byte(nil), nil).Once()
		f.orders.On("GetOrder", mock.Anything, 5).Return(&domain.Order{ID: 5, OrderNumber: "CMD-20240101-ABCDEF"}, nil).Once()
		f.qr.On("Generate", "CMD-20240101-ABCDEF").Return([]byte("fresh"), nil).Once()
		f.orders.On("SaveQRCode", mock.Anything, 5, []byte("fresh")).Return(nil).Once()

		qr, err := f.svc.QRCode(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), qr)
	})
}

func TestReceiptQRGenerator(t *testing.T) {
	gen := service.ReceiptQRGenerator{BaseURL: "http://localhost:3000/"}

	assert.Equal(t, "http://localhost:3000/receipt?order=CMD-1", gen.Link("CMD-1"))

	qr, err := gen.Generate("CMD-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, qr)
}
