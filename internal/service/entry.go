package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
)

// storedTimeLayout is fixed-width so logged_at sorts lexically.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// LocalLog is a LogStore backed by the local SQLite food_log table. It plays
// the persistence collaborator's role when running without the remote API.
type LocalLog struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewLocalLog(db *sql.DB) *LocalLog {
	return &LocalLog{DB: db, Now: time.Now}
}

func (l *LocalLog) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

func (l *LocalLog) CreateEntry(ctx context.Context, name string, baseline model.BaselineProfile, grams float64) (model.LoggedEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.LoggedEntry{}, fmt.Errorf("food name is required")
	}
	if err := nutrition.ValidateGrams(grams); err != nil {
		return model.LoggedEntry{}, err
	}
	if err := validateNutrients("baseline ", baseline.Nutrients); err != nil {
		return model.LoggedEntry{}, err
	}

	abs := nutrition.Scale(baseline, grams)
	id := uuid.NewString()
	loggedAt := l.now().UTC()

	_, err := l.DB.ExecContext(ctx, `
INSERT INTO food_log(id, food_name, calories, protein_g, carbs_g, fat_g, grams, logged_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, id, name, abs.Calories, abs.ProteinG, abs.CarbsG, abs.FatG, grams, loggedAt.Format(storedTimeLayout))
	if err != nil {
		return model.LoggedEntry{}, fmt.Errorf("insert food log entry: %w", err)
	}
	return model.LoggedEntry{ID: id, Name: name, Nutrients: abs, Grams: grams, LoggedAt: loggedAt}, nil
}

func (l *LocalLog) ListEntries(ctx context.Context) ([]model.LoggedEntry, error) {
	rows, err := l.DB.QueryContext(ctx, `
SELECT id, food_name, calories, protein_g, carbs_g, fat_g, grams, logged_at
FROM food_log
ORDER BY logged_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list food log: %w", err)
	}
	defer rows.Close()

	entries := make([]model.LoggedEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food log: %w", err)
	}
	return entries, nil
}

// UpdateEntry rescales entry id to grams from the given baseline. An empty
// name keeps the stored one. logged_at is never rewritten.
func (l *LocalLog) UpdateEntry(ctx context.Context, id, name string, baseline model.BaselineProfile, grams float64) (model.LoggedEntry, error) {
	if strings.TrimSpace(id) == "" {
		return model.LoggedEntry{}, fmt.Errorf("entry id is required")
	}
	if err := nutrition.ValidateGrams(grams); err != nil {
		return model.LoggedEntry{}, err
	}
	if err := validateNutrients("baseline ", baseline.Nutrients); err != nil {
		return model.LoggedEntry{}, err
	}

	abs := nutrition.Scale(baseline, grams)
	res, err := l.DB.ExecContext(ctx, `
UPDATE food_log
SET food_name = COALESCE(NULLIF(?, ''), food_name), calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?, grams = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, strings.TrimSpace(name), abs.Calories, abs.ProteinG, abs.CarbsG, abs.FatG, grams, id)
	if err != nil {
		return model.LoggedEntry{}, fmt.Errorf("update food log entry %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.LoggedEntry{}, fmt.Errorf("read rows affected for entry %s: %w", id, err)
	}
	if affected == 0 {
		return model.LoggedEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return l.EntryByID(ctx, id)
}

func (l *LocalLog) DeleteEntry(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("entry id is required")
	}
	res, err := l.DB.ExecContext(ctx, `DELETE FROM food_log WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete food log entry %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for entry %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return nil
}

func (l *LocalLog) EntryByID(ctx context.Context, id string) (model.LoggedEntry, error) {
	row := l.DB.QueryRowContext(ctx, `
SELECT id, food_name, calories, protein_g, carbs_g, fat_g, grams, logged_at
FROM food_log
WHERE id = ?
`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return model.LoggedEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return e, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (model.LoggedEntry, error) {
	var e model.LoggedEntry
	var loggedAtRaw string
	n := &e.Nutrients.Nutrients
	if err := r.Scan(&e.ID, &e.Name, &n.Calories, &n.ProteinG, &n.CarbsG, &n.FatG, &e.Grams, &loggedAtRaw); err != nil {
		if err == sql.ErrNoRows {
			return model.LoggedEntry{}, err
		}
		return model.LoggedEntry{}, fmt.Errorf("scan food log entry: %w", err)
	}
	loggedAt, err := time.Parse(time.RFC3339Nano, loggedAtRaw)
	if err != nil {
		return model.LoggedEntry{}, fmt.Errorf("parse logged_at for entry %s: %w", e.ID, err)
	}
	e.LoggedAt = loggedAt
	return e, nil
}
