package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
)

var ErrTargetNotSet = errors.New("no macro target set")

// TargetSource supplies the user's daily macro goal.
type TargetSource interface {
	MacroTarget(ctx context.Context) (model.MacroTarget, error)
}

// ResolveTarget asks src for the current target. Any failure leaves the
// target unknown rather than zero.
func ResolveTarget(ctx context.Context, src TargetSource, log zerolog.Logger) model.TargetState {
	if src == nil {
		return model.UnknownTarget()
	}
	t, err := src.MacroTarget(ctx)
	if err != nil {
		if !errors.Is(err, ErrTargetNotSet) {
			log.Warn().Err(err).Msg("macro target unavailable")
		}
		return model.UnknownTarget()
	}
	return model.KnownTarget(t)
}

type SetTargetInput struct {
	Target        model.MacroTarget
	EffectiveDate string
}

func SetTarget(db *sql.DB, in SetTargetInput) error {
	t := in.Target
	if err := validateNutrients("", model.Nutrients{Calories: t.Calories, ProteinG: t.ProteinG, CarbsG: t.CarbsG, FatG: t.FatG}); err != nil {
		return err
	}
	in.EffectiveDate = strings.TrimSpace(in.EffectiveDate)
	if in.EffectiveDate == "" {
		in.EffectiveDate = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", in.EffectiveDate); err != nil {
		return fmt.Errorf("invalid effective date %q (expected YYYY-MM-DD)", in.EffectiveDate)
	}

	_, err := db.Exec(`
INSERT INTO goals(calories, protein_g, carbs_g, fat_g, effective_date)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(effective_date) DO UPDATE SET
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g
`, t.Calories, t.ProteinG, t.CarbsG, t.FatG, in.EffectiveDate)
	if err != nil {
		return fmt.Errorf("set target: %w", err)
	}
	return nil
}

// CurrentTarget returns the goal in effect on date, or nil when none has been set.
func CurrentTarget(db *sql.DB, date string) (*model.Goal, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}

	var g model.Goal
	err := db.QueryRow(`
SELECT id, calories, protein_g, carbs_g, fat_g, effective_date, created_at
FROM goals
WHERE effective_date <= ?
ORDER BY effective_date DESC
LIMIT 1
`, date).Scan(&g.ID, &g.Target.Calories, &g.Target.ProteinG, &g.Target.CarbsG, &g.Target.FatG, &g.EffectiveDate, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("current target for %s: %w", date, err)
	}
	return &g, nil
}

func TargetHistory(db *sql.DB) ([]model.Goal, error) {
	rows, err := db.Query(`
SELECT id, calories, protein_g, carbs_g, fat_g, effective_date, created_at
FROM goals
ORDER BY effective_date DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list target history: %w", err)
	}
	defer rows.Close()

	goals := make([]model.Goal, 0)
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Target.Calories, &g.Target.ProteinG, &g.Target.CarbsG, &g.Target.FatG, &g.EffectiveDate, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan target history: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate target history: %w", err)
	}
	return goals, nil
}

// LocalTargets serves targets stored in the local goals table.
type LocalTargets struct {
	DB  *sql.DB
	Now func() time.Time
}

func (l LocalTargets) MacroTarget(_ context.Context) (model.MacroTarget, error) {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	g, err := CurrentTarget(l.DB, now().Format("2006-01-02"))
	if err != nil {
		return model.MacroTarget{}, err
	}
	if g == nil {
		return model.MacroTarget{}, ErrTargetNotSet
	}
	return g.Target, nil
}
