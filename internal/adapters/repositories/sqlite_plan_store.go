package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SqlitePlanStore keeps an audit trail of rendered plans. Every saved plan
// gets a fresh UUID so repeated plannings of the same visit set stay
// distinguishable.
type SqlitePlanStore struct{ DB *sql.DB }

func NewSqlitePlanStore(db *sql.DB) *SqlitePlanStore {
	return &SqlitePlanStore{DB: db}
}

// SavePlan records a rendered plan payload under a new plan ID and returns
// that ID.
func (s *SqlitePlanStore) SavePlan(ctx context.Context, fingerprint string, payload []byte) (string, error) {
	if s.DB == nil {
		return "", errors.New("sqlite plan store: DB is nil")
	}
	if fingerprint == "" {
		return "", errors.New("save plan: fingerprint must not be empty")
	}

	planID := uuid.New().String()

	query := `
	INSERT INTO plans (
		plan_id,
		fingerprint,
		created_at,
		payload
	)
	VALUES (?, ?, ?, ?);
	`
	_, err := s.DB.ExecContext(
		ctx,
		query,
		planID,
		fingerprint,
		time.Now().UTC().Format(time.RFC3339),
		string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("save plan: insert plan_id=%q: %w", planID, err)
	}

	return planID, nil
}
