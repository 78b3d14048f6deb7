package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/service"
)

func TestTargetVersioningByEffectiveDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	if err := service.SetTarget(db, service.SetTargetInput{
		Target:        model.MacroTarget{Calories: 2000, ProteinG: 150, CarbsG: 220, FatG: 70},
		EffectiveDate: "2026-01-01",
	}); err != nil {
		t.Fatalf("set first target: %v", err)
	}
	if err := service.SetTarget(db, service.SetTargetInput{
		Target:        model.MacroTarget{Calories: 1800, ProteinG: 160, CarbsG: 180, FatG: 60},
		EffectiveDate: "2026-02-01",
	}); err != nil {
		t.Fatalf("set second target: %v", err)
	}

	january, err := service.CurrentTarget(db, "2026-01-15")
	if err != nil {
		t.Fatalf("current january target: %v", err)
	}
	if january == nil || january.Target.Calories != 2000 {
		t.Fatalf("expected january target calories 2000, got %+v", january)
	}

	february, err := service.CurrentTarget(db, "2026-02-10")
	if err != nil {
		t.Fatalf("current february target: %v", err)
	}
	if february == nil || february.Target.Calories != 1800 {
		t.Fatalf("expected february target calories 1800, got %+v", february)
	}

	before, err := service.CurrentTarget(db, "2025-12-31")
	if err != nil {
		t.Fatalf("current target before history: %v", err)
	}
	if before != nil {
		t.Fatalf("expected no target before first effective date, got %+v", before)
	}

	history, err := service.TargetHistory(db)
	if err != nil {
		t.Fatalf("target history: %v", err)
	}
	if len(history) != 2 || history[0].EffectiveDate != "2026-02-01" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestSetTargetRejectsNegative(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	err := service.SetTarget(db, service.SetTargetInput{Target: model.MacroTarget{Calories: -1}})
	if err == nil {
		t.Fatalf("expected negative calories to be rejected")
	}
}

func TestLocalTargetsUnknownUntilSet(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	now := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local) }
	src := service.LocalTargets{DB: db, Now: now}

	if _, err := src.MacroTarget(context.Background()); !errors.Is(err, service.ErrTargetNotSet) {
		t.Fatalf("expected ErrTargetNotSet, got %v", err)
	}
	state := service.ResolveTarget(context.Background(), src, zerolog.Nop())
	if state.Known {
		t.Fatalf("expected unknown target, got %+v", state)
	}

	if err := service.SetTarget(db, service.SetTargetInput{
		Target:        model.MacroTarget{Calories: 2100, ProteinG: 140, CarbsG: 230, FatG: 70},
		EffectiveDate: "2026-03-01",
	}); err != nil {
		t.Fatalf("set target: %v", err)
	}
	state = service.ResolveTarget(context.Background(), src, zerolog.Nop())
	if !state.Known || state.Target.Calories != 2100 {
		t.Fatalf("expected known target 2100, got %+v", state)
	}
}
