package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"visit-planner-service/internal/domain"
)

// Postgres-backed implementation of the VisitRepository port, for deployments
// that share a database with the surrounding application.
type PostgresVisitRepository struct{ DB *sql.DB }

func NewPostgresVisitRepository(db *sql.DB) *PostgresVisitRepository {
	return &PostgresVisitRepository{DB: db}
}

func (p *PostgresVisitRepository) ListVisits(ctx context.Context) ([]domain.Visit, error) {
	if p.DB == nil {
		return nil, errors.New("postgres visit repository: DB is nil")
	}

	query := `
	SELECT
		visit_id,
		lat,
		lng,
		service_minutes,
		address
	FROM visits
	ORDER BY visit_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list visits: query visits table: %w", err)
	}
	defer rows.Close()

	visits := make([]domain.Visit, 0, 64)
	for rows.Next() {
		var (
			id      string
			lat     float64
			lng     float64
			minutes float64
			address string
		)
		if err := rows.Scan(&id, &lat, &lng, &minutes, &address); err != nil {
			return nil, fmt.Errorf("list visits: scan row: %w", err)
		}
		visits = append(visits, domain.Visit{
			ID:             id,
			Coordinate:     domain.Coordinate{Lat: lat, Lng: lng},
			ServiceMinutes: minutes,
			Address:        address,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list visits: row iteration: %w", err)
	}

	return visits, nil
}
