package mocks

import (
	"context"
	"time"

	"brasserie/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReservationRepository struct {
	mock.Mock
}

func NewReservationRepository(t testingT) *ReservationRepository {
	m := &ReservationRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ReservationRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *ReservationRepository) GetReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

func (m *ReservationRepository) ListReservations(ctx context.Context, limit int) ([]domain.Reservation, error) {
	args := m.Called(ctx, limit)
	reservations, _ := args.Get(0).([]domain.Reservation)
	return reservations, args.Error(1)
}

func (m *ReservationRepository) UpdateReservationStatus(ctx context.Context, id int, from, to domain.ReservationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *ReservationRepository) DeleteReservation(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *ReservationRepository) HasActiveReservation(ctx context.Context, tableID int, day time.Time, slot string) (bool, error) {
	args := m.Called(ctx, tableID, day, slot)
	return args.Bool(0), args.Error(1)
}
