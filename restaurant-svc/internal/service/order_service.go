package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brasserie/internal/events"
	"brasserie/restaurant-svc/internal/domain"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

const recentLimit = 100

type OrderService struct {
	orders    OrderRepository
	products  ProductRepository
	tables    TableRepository
	qrEncoder QRGenerator
	notifier  *Notifier
	logger    *zap.SugaredLogger
	taxRate   float64
}

func NewOrderService(orders OrderRepository, products ProductRepository, tables TableRepository,
	qr QRGenerator, notifier *Notifier, logger *zap.SugaredLogger, taxRate float64) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		tables:    tables,
		qrEncoder: qr,
		notifier:  notifier,
		logger:    logger,
		taxRate:   taxRate,
	}
}

func checkOrderInput(in domain.CreateOrderInput) error {
	var result *multierror.Error
	if in.TableID <= 0 {
		result = multierror.Append(result, errors.New("tableId is required"))
	}
	if len(in.Items) == 0 {
		result = multierror.Append(result, errors.New("items must not be empty"))
	}
	for i, item := range in.Items {
		if item.ProductID <= 0 {
			result = multierror.Append(result, fmt.Errorf("item %d: productId is required", i+1))
		}
		if item.Quantity < 1 {
			result = multierror.Append(result, fmt.Errorf("item %d: quantity must be at least 1", i+1))
		}
	}
	return asValidation("invalid order", result)
}

// asValidation folds the collected problems into a single ValidationError.
func asValidation(msg string, result *multierror.Error) error {
	if result.ErrorOrNil() == nil {
		return nil
	}
	details := make([]string, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = err.Error()
	}
	return domain.NewValidationError(msg, details...)
}

func (s *OrderService) Create(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error) {
	if err := checkOrderInput(in); err != nil {
		return nil, err
	}

	table, err := s.tables.GetTable(ctx, in.TableID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var problems *multierror.Error
	items := make([]domain.OrderItem, 0, len(in.Items))
	for i, item := range in.Items {
		p, ok := products[item.ProductID]
		if !ok {
			return nil, &domain.NotFoundError{Entity: "product", ID: item.ProductID}
		}
		if !p.IsAvailable {
			problems = multierror.Append(problems, fmt.Errorf("item %d: %s is not available", i+1, p.Name))
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CategoryName: p.CategoryName,
			Station:      domain.StationForCategory(p.CategoryName),
			Quantity:     item.Quantity,
			UnitPrice:    p.Price,
			Notes:        item.Notes,
		})
	}
	if err := asValidation("invalid order", problems); err != nil {
		return nil, err
	}

	open, err := s.orders.HasOpenOrder(ctx, table.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, domain.ErrTableHasOpenOrder
	}

	totals := domain.ComputeTotals(items, s.taxRate, in.Discount, in.Tip)
	if err := totals.Validate(); err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderNumber:  domain.NewOrderNumber(time.Now()),
		RestaurantID: table.RestaurantID,
		TableID:      table.ID,
		TableNumber:  table.Number,
		Items:        items,
		Notes:        in.Notes,
		Status:       domain.OrderPending,
	}
	totals.Apply(order)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Infow("order created", "order_id", order.ID, "order_number", order.OrderNumber,
		"table", table.Number, "total", order.TotalAmount)

	if table.Status == domain.TableFree || table.Status == domain.TableReserved {
		moveTable(ctx, s.tables, s.logger, table.ID, table.Status, domain.TableOccupied)
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.OrderNumber); err == nil {
			if err := s.orders.SaveQRCode(ctx, order.ID, qr); err != nil {
				s.logger.Warnw("saving receipt qr code failed", "order_id", order.ID, "error", err)
			}
		}
	}

	s.announce(order)
	return order, nil
}

// announce sends the staff notifications for a new order and the analytics
// event. Kitchen and bar only hear about the items they prepare.
func (s *OrderService) announce(order *domain.Order) {
	var all, kitchen, bar []events.LineItem
	eventItems := make([]events.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		line := events.LineItem{Name: item.ProductName, Quantity: item.Quantity}
		all = append(all, line)
		if item.Station == domain.StationBar {
			bar = append(bar, line)
		} else {
			kitchen = append(kitchen, line)
		}
		eventItems = append(eventItems, events.OrderEventItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	payload := func(items []events.LineItem) *events.OrderPayload {
		return &events.OrderPayload{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			TableNumber: order.TableNumber,
			Items:       items,
		}
	}

	s.notifier.Notify(events.Notification{Type: events.NewOrder, Order: payload(all)})
	if len(kitchen) > 0 {
		s.notifier.Notify(events.Notification{Type: events.DishToPrepare, Order: payload(kitchen)})
	}
	if len(bar) > 0 {
		s.notifier.Notify(events.Notification{Type: events.DrinksOrder, Order: payload(bar)})
	}

	s.notifier.Record(events.OrderEvent{
		Type:         events.OrderCreated,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
		Items:        eventItems,
		Amount:       order.TotalAmount,
		Tip:          order.Tip,
		Timestamp:    order.CreatedAt,
	})
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx, status, recentLimit)
}

func (s *OrderService) Queue(ctx context.Context, station domain.Station) ([]domain.Order, error) {
	return s.orders.ListQueue(ctx, station)
}

// Transition applies a workflow action to an order. Serving stamps servedAt;
// cancelling frees the table. A paid order cannot be cancelled.
func (s *OrderService) Transition(ctx context.Context, id int, action domain.OrderAction) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if action == domain.ActionCancelOrder && order.Payment != nil {
		return nil, domain.ErrCancelSettled
	}
	next, err := domain.NextOrderStatus(order.Status, action)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var servedAt *time.Time
	if next == domain.OrderServed {
		servedAt = &now
	}
	if err := s.orders.UpdateOrderStatus(ctx, id, order.Status, next, servedAt); err != nil {
		return nil, err
	}
	s.logger.Infow("order status changed", "order_id", id, "from", order.Status, "to", next)

	order.Status = next
	order.UpdatedAt = now
	if servedAt != nil {
		order.ServedAt = servedAt
	}

	if next == domain.OrderCancelled {
		moveTable(ctx, s.tables, s.logger, order.TableID, domain.TableOccupied, domain.TableFree)
	}

	s.notifier.Record(events.OrderEvent{
		Type:         events.OrderStatusChanged,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       string(next),
		Timestamp:    now.UTC(),
	})
	return order, nil
}

// QRCode returns the stored receipt QR code, regenerating it when the order
// has none yet.
func (s *OrderService) QRCode(ctx context.Context, id int) ([]byte, error) {
	qr, err := s.orders.GetQRCode(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(qr) > 0 || s.qrEncoder == nil {
		return qr, nil
	}

	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	regenerated, err := s.qrEncoder.Generate(order.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	if err := s.orders.SaveQRCode(ctx, id, regenerated); err != nil {
		s.logger.Warnw("saving receipt qr code failed", "order_id", id, "error", err)
	}
	return regenerated, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
