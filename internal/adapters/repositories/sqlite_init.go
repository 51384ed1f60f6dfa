package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// defaultServiceMinutes fills in seed rows that omit an on-site estimate.
const defaultServiceMinutes = 45

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVisitsQuery := `
	CREATE TABLE IF NOT EXISTS visits (
		visit_id TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		service_minutes REAL NOT NULL,
		address TEXT NOT NULL DEFAULT ''
	);
	`

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS plans (
		plan_id TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		created_at TEXT NOT NULL,
		payload TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plans_fingerprint
	ON plans(fingerprint);
	`

	statements := []string{
		createVisitsQuery,
		createPlansQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type VisitSeed struct {
	VisitID        string  `json:"visit_id"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	ServiceMinutes float64 `json:"service_minutes"`
	Address        string  `json:"address"`
}

// Populate the database with visit data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed visits: read %q: %w", jsonPath, err)
	}

	var data []VisitSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed visits: parse json: %w", err)
	}

	rows := make([]VisitSeed, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.VisitID)
		if id == "" {
			return fmt.Errorf("seed visits: item at index %d: visit_id cannot be empty", i+1)
		}

		minutes := item.ServiceMinutes
		if minutes <= 0 {
			minutes = defaultServiceMinutes
		}

		rows = append(rows, VisitSeed{
			VisitID:        id,
			Lat:            item.Lat,
			Lng:            item.Lng,
			ServiceMinutes: minutes,
			Address:        strings.TrimSpace(item.Address),
		})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed visits: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO visits (
		visit_id,
		lat,
		lng,
		service_minutes,
		address
	)
	VALUES (?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed visits: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.VisitID, row.Lat, row.Lng, row.ServiceMinutes, row.Address); err != nil {
			return fmt.Errorf("seed visits: insert visit_id=%q: %w", row.VisitID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed visits: commit tx: %w", err)
	}

	return nil
}
