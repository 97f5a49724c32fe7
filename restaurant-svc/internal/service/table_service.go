package service

import (
	"context"
	"errors"

	"brasserie/restaurant-svc/internal/domain"

	"go.uber.org/zap"
)

type TableService struct {
	repo   TableRepository
	logger *zap.SugaredLogger
}

func NewTableService(repo TableRepository, logger *zap.SugaredLogger) *TableService {
	return &TableService{repo: repo, logger: logger}
}

func (s *TableService) Create(ctx context.Context, t *domain.Table) error {
	var details []string
	if t.RestaurantID <= 0 {
		details = append(details, "restaurantId is required")
	}
	if t.Number < 1 {
		details = append(details, "number must be at least 1")
	}
	if t.Capacity < 1 {
		details = append(details, "capacity must be at least 1")
	}
	if len(details) > 0 {
		return domain.NewValidationError("invalid table", details...)
	}
	t.Status = domain.TableFree
	return s.repo.CreateTable(ctx, t)
}

func (s *TableService) List(ctx context.Context, restaurantID int) ([]domain.Table, error) {
	return s.repo.ListTables(ctx, restaurantID)
}

// UpdateStatus moves a table to a new status. Setting the current status again
// is a no-op.
func (s *TableService) UpdateStatus(ctx context.Context, id int, to domain.TableStatus) (*domain.Table, error) {
	t, err := s.repo.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status == to {
		return t, nil
	}
	if err := domain.CheckTableTransition(t.Status, to); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTableStatus(ctx, id, t.Status, to); err != nil {
		return nil, err
	}
	s.logger.Infow("table status changed", "table_id", id, "from", t.Status, "to", to)
	t.Status = to
	return t, nil
}

// moveTable is the best-effort table side effect of order, reservation and
// payment operations. It only acts when the table is in from, and never
// fails the caller.
func moveTable(ctx context.Context, repo TableRepository, logger *zap.SugaredLogger, tableID int, from, to domain.TableStatus) {
	if err := repo.UpdateTableStatus(ctx, tableID, from, to); err != nil && !errors.Is(err, domain.ErrStatusChanged) {
		logger.Warnw("table side effect failed", "table_id", tableID, "from", from, "to", to, "error", err)
	}
}

var _ TableServiceInterface = (*TableService)(nil)
