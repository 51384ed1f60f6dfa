package repositories

import (
	"context"

	"visit-planner-service/internal/domain"
)

// In-memory VisitRepository for tests and local experiments.
type MockVisitRepository struct {
	Visits []domain.Visit
	Err    error
}

func NewMockVisitRepository(visits []domain.Visit) *MockVisitRepository {
	return &MockVisitRepository{Visits: visits}
}

func (m *MockVisitRepository) ListVisits(ctx context.Context) ([]domain.Visit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.Visit(nil), m.Visits...), nil
}
