package service

import (
	"context"
	"strings"
	"time"

	"brasserie/internal/events"
	"brasserie/restaurant-svc/internal/domain"

	"go.uber.org/zap"
)

const slotLayout = "15:04"

var ErrNoTable = domain.NewValidationError("No table available, please create a table first")

type ReservationService struct {
	reservations ReservationRepository
	tables       TableRepository
	notifier     *Notifier
	logger       *zap.SugaredLogger
}

func NewReservationService(reservations ReservationRepository, tables TableRepository, notifier *Notifier, logger *zap.SugaredLogger) *ReservationService {
	return &ReservationService{reservations: reservations, tables: tables, notifier: notifier, logger: logger}
}

func (s *ReservationService) Create(ctx context.Context, in domain.CreateReservationInput) (*domain.Reservation, error) {
	var details []string
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if in.CustomerName == "" {
		details = append(details, "customerName is required")
	}
	if in.Date.IsZero() {
		details = append(details, "date is required")
	}
	if in.Guests < 1 {
		details = append(details, "partySize must be at least 1")
	}
	if in.Time == "" {
		in.Time = in.Date.Format(slotLayout)
	} else if _, err := time.Parse(slotLayout, in.Time); err != nil {
		details = append(details, "time must be HH:MM")
	}
	if len(details) > 0 {
		return nil, domain.NewValidationError("invalid reservation", details...)
	}

	table, err := s.pickTable(ctx, in)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		CustomerName:  in.CustomerName,
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerPhone: in.CustomerPhone,
		TableID:       table.ID,
		TableNumber:   table.Number,
		Date:          in.Date,
		Time:          in.Time,
		Guests:        in.Guests,
		Status:        domain.ReservationPending,
		Notes:         in.Notes,
	}
	if err := s.reservations.CreateReservation(ctx, res); err != nil {
		return nil, err
	}
	s.logger.Infow("reservation created", "reservation_id", res.ID, "table", res.TableNumber,
		"date", res.Date.Format("2006-01-02"), "time", res.Time, "guests", res.Guests)

	if res.CustomerEmail != "" {
		payload := reservationPayload(res)
		s.notifier.Notify(events.Notification{Type: events.ReservationConfirmation, Reservation: payload})
		s.notifier.Notify(events.Notification{Type: events.NewReservation, Reservation: payload})
	}
	return res, nil
}

// pickTable resolves the table a new reservation goes to. An explicit table
// must exist and be free at that slot. Otherwise the smallest free table that
// seats the party is used, falling back to the first table. Either way the
// table must not already be booked for that slot.
func (s *ReservationService) pickTable(ctx context.Context, in domain.CreateReservationInput) (*domain.Table, error) {
	if in.TableID > 0 {
		table, err := s.tables.GetTable(ctx, in.TableID)
		if err != nil {
			return nil, err
		}
		if err := s.checkSlot(ctx, table, in); err != nil {
			return nil, err
		}
		return table, nil
	}

	table, err := s.tables.FindAvailableTable(ctx, in.Guests, in.Date)
	if err != nil {
		return nil, err
	}
	if table != nil {
		return table, nil
	}
	table, err = s.tables.FirstTable(ctx)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrNoTable
	}
	if err := s.checkSlot(ctx, table, in); err != nil {
		return nil, err
	}
	s.logger.Warnw("no free table fits the party, using first table", "guests", in.Guests, "table", table.Number)
	return table, nil
}

func (s *ReservationService) checkSlot(ctx context.Context, table *domain.Table, in domain.CreateReservationInput) error {
	taken, err := s.reservations.HasActiveReservation(ctx, table.ID, in.Date, in.Time)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrTableDoubleBooked
	}
	return nil
}

func reservationPayload(res *domain.Reservation) *events.ReservationPayload {
	return &events.ReservationPayload{
		ID:            res.ID,
		CustomerName:  res.CustomerName,
		CustomerEmail: res.CustomerEmail,
		CustomerPhone: res.CustomerPhone,
		Date:          res.Date,
		Time:          res.Time,
		Guests:        res.Guests,
		TableNumber:   res.TableNumber,
		Notes:         res.Notes,
	}
}

func (s *ReservationService) Get(ctx context.Context, id int) (*domain.Reservation, error) {
	return s.reservations.GetReservation(ctx, id)
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.ListReservations(ctx, recentLimit)
}

// Transition applies a workflow action. Confirming holds the table; cancelling
// or a no-show releases it.
func (s *ReservationService) Transition(ctx context.Context, id int, action domain.ReservationAction) (*domain.Reservation, error) {
	res, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.NextReservationStatus(res.Status, action)
	if err != nil {
		return nil, err
	}
	if err := s.reservations.UpdateReservationStatus(ctx, id, res.Status, next); err != nil {
		return nil, err
	}
	s.logger.Infow("reservation status changed", "reservation_id", id, "from", res.Status, "to", next)
	res.Status = next

	switch next {
	case domain.ReservationConfirmed:
		moveTable(ctx, s.tables, s.logger, res.TableID, domain.TableFree, domain.TableReserved)
	case domain.ReservationCancelled, domain.ReservationNoShow:
		moveTable(ctx, s.tables, s.logger, res.TableID, domain.TableReserved, domain.TableFree)
	}
	if next == domain.ReservationCancelled {
		s.notifier.Notify(events.Notification{Type: events.ReservationCancelled, Reservation: reservationPayload(res)})
	}
	return res, nil
}

func (s *ReservationService) Delete(ctx context.Context, id int) error {
	n, err := s.reservations.DeleteReservation(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "reservation", ID: id}
	}
	return nil
}

var _ ReservationServiceInterface = (*ReservationService)(nil)
