package service

import (
	"context"
	"errors"

	"brasserie/internal/events"
	"brasserie/restaurant-svc/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService struct {
	payments PaymentRepository
	orders   OrderRepository
	tables   TableRepository
	cache    SettlementCache
	notifier *Notifier
	logger   *zap.SugaredLogger
}

func NewPaymentService(payments PaymentRepository, orders OrderRepository, tables TableRepository,
	cache SettlementCache, notifier *Notifier, logger *zap.SugaredLogger) *PaymentService {
	return &PaymentService{
		payments: payments,
		orders:   orders,
		tables:   tables,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// Record settles an order. An order is paid at most once: the cache marker
// short-circuits repeats and the unique payment per order catches the rest.
func (s *PaymentService) Record(ctx context.Context, orderID int, in domain.PaymentInput) (*domain.Payment, error) {
	settled, err := s.cache.IsSettled(ctx, orderID)
	if err != nil {
		s.logger.Warnw("settlement cache unavailable", "order_id", orderID, "error", err)
	}
	if settled {
		return nil, domain.ErrAlreadySettled
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	st, err := domain.Settle(order, in)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySettled) {
			s.markSettled(ctx, orderID)
		}
		return nil, err
	}

	payment := st.Payment
	if payment.Method != domain.PaymentCash {
		payment.TransactionID = uuid.NewString()
	}
	if err := s.payments.RecordPayment(ctx, &payment, st.Tip, st.Total); err != nil {
		if errors.Is(err, domain.ErrAlreadySettled) {
			s.markSettled(ctx, orderID)
		}
		return nil, err
	}
	s.logger.Infow("payment recorded", "order_id", orderID, "payment_id", payment.ID,
		"method", payment.Method, "amount", payment.Amount, "tip", payment.Tip)

	moveTable(ctx, s.tables, s.logger, order.TableID, domain.TableOccupied, domain.TableNeedsClean)
	s.markSettled(ctx, orderID)

	s.notifier.Record(events.OrderEvent{
		Type:          events.PaymentRecorded,
		OrderID:       orderID,
		RestaurantID:  order.RestaurantID,
		Status:        string(payment.Status),
		Amount:        payment.Amount,
		Tip:           payment.Tip,
		PaymentMethod: string(payment.Method),
		Timestamp:     payment.CreatedAt,
	})
	return &payment, nil
}

func (s *PaymentService) markSettled(ctx context.Context, orderID int) {
	if err := s.cache.MarkSettled(ctx, orderID); err != nil {
		s.logger.Warnw("marking order settled in cache failed", "order_id", orderID, "error", err)
	}
}

func (s *PaymentService) Get(ctx context.Context, orderID int) (*domain.Payment, error) {
	return s.payments.GetPaymentByOrder(ctx, orderID)
}

var _ PaymentServiceInterface = (*PaymentService)(nil)
