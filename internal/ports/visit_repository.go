package ports

import (
	"context"

	"visit-planner-service/internal/domain"
)

// Port: a boundary for retrieving Visit entities from a data source.
type VisitRepository interface {
	// Retrieve all visits available for planning.
	ListVisits(ctx context.Context) ([]domain.Visit, error)
}
