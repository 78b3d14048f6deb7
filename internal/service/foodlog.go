package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
)

// LogStore is the food log persistence collaborator. Create and update take
// a per-100 g baseline plus grams; the store owns ids and timestamps.
type LogStore interface {
	ListEntries(ctx context.Context) ([]model.LoggedEntry, error)
	CreateEntry(ctx context.Context, name string, baseline model.BaselineProfile, grams float64) (model.LoggedEntry, error)
	UpdateEntry(ctx context.Context, id, name string, baseline model.BaselineProfile, grams float64) (model.LoggedEntry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// Catalog searches foods and returns per-100 g candidates.
type Catalog interface {
	SearchFoods(ctx context.Context, query string) ([]model.FoodCandidate, error)
}

const defaultCustomGrams = 100.0

// CustomFood is raw user input for a food that is not in the catalog.
// Nutrient fields are per 100 g. An empty Grams means 100.
type CustomFood struct {
	Name     string
	Calories string
	Protein  string
	Carbs    string
	Fat      string
	Grams    string
}

// DaySnapshot is the log as seen at one instant.
type DaySnapshot struct {
	Now    time.Time
	Today  []model.LoggedEntry
	Totals model.DailyTotals
}

// FoodLog keeps a read-through copy of the store's entries. The copy is
// discarded and refetched after every write, so it never lags the caller's
// own mutations. It is not safe for concurrent use.
type FoodLog struct {
	store   LogStore
	now     func() time.Time
	log     zerolog.Logger
	entries []model.LoggedEntry
	loaded  bool
}

type FoodLogOption func(*FoodLog)

func WithClock(now func() time.Time) FoodLogOption {
	return func(f *FoodLog) { f.now = now }
}

func WithLogger(log zerolog.Logger) FoodLogOption {
	return func(f *FoodLog) { f.log = log }
}

func NewFoodLog(store LogStore, opts ...FoodLogOption) *FoodLog {
	f := &FoodLog{store: store, now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FoodLog) Refresh(ctx context.Context) error {
	entries, err := f.store.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("fetch food log: %w", err)
	}
	f.entries = entries
	f.loaded = true
	f.log.Debug().Int("entries", len(entries)).Msg("food log refreshed")
	return nil
}

func (f *FoodLog) Entries() []model.LoggedEntry {
	out := make([]model.LoggedEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Snapshot filters and totals today's entries against a single clock read.
func (f *FoodLog) Snapshot() DaySnapshot {
	now := f.now()
	return DaySnapshot{
		Now:    now,
		Today:  nutrition.FilterToday(f.entries, now),
		Totals: nutrition.AggregateToday(f.entries, now),
	}
}

func (f *FoodLog) Totals() model.DailyTotals {
	return nutrition.AggregateToday(f.entries, f.now())
}

// Log records grams of a catalog food.
func (f *FoodLog) Log(ctx context.Context, food model.FoodCandidate, grams float64) (model.LoggedEntry, error) {
	if strings.TrimSpace(food.Name) == "" {
		return model.LoggedEntry{}, fmt.Errorf("food name is required")
	}
	if err := nutrition.ValidateGrams(grams); err != nil {
		return model.LoggedEntry{}, err
	}
	created, err := f.store.CreateEntry(ctx, food.Name, food.Per100g, grams)
	if err != nil {
		return model.LoggedEntry{}, fmt.Errorf("log %q: %w", food.Name, err)
	}
	f.log.Info().Str("id", created.ID).Str("food", food.Name).Float64("grams", grams).Msg("food logged")
	return created, f.Refresh(ctx)
}

// LogCustom parses a custom food and logs it. In lenient mode malformed
// nutrient values are recorded as 0; strict mode rejects them. Grams are
// always validated.
func (f *FoodLog) LogCustom(ctx context.Context, in CustomFood, strict bool) (model.LoggedEntry, error) {
	food, grams, err := ParseCustomFood(in, strict)
	if err != nil {
		return model.LoggedEntry{}, err
	}
	return f.Log(ctx, food, grams)
}

func ParseCustomFood(in CustomFood, strict bool) (model.FoodCandidate, float64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.FoodCandidate{}, 0, fmt.Errorf("food name is required")
	}
	var n model.Nutrients
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"calories", in.Calories, &n.Calories},
		{"protein", in.Protein, &n.ProteinG},
		{"carbs", in.Carbs, &n.CarbsG},
		{"fat", in.Fat, &n.FatG},
	}
	for _, fld := range fields {
		v, err := nutrition.ParseNutrient(fld.name, fld.raw, strict)
		if err != nil {
			return model.FoodCandidate{}, 0, err
		}
		*fld.dst = v
	}

	grams := defaultCustomGrams
	if raw := strings.TrimSpace(in.Grams); raw != "" {
		v, err := nutrition.ParseNutrient("grams", raw, strict)
		if err != nil {
			return model.FoodCandidate{}, 0, err
		}
		grams = v
	}
	if err := nutrition.ValidateGrams(grams); err != nil {
		return model.FoodCandidate{}, 0, err
	}
	return model.FoodCandidate{Name: name, Source: "custom", Per100g: model.BaselineProfile{Nutrients: n}}, grams, nil
}

// AdjustPortion re-logs entry id at newGrams, recovering its baseline from
// the stored values.
func (f *FoodLog) AdjustPortion(ctx context.Context, id string, newGrams float64) (model.LoggedEntry, error) {
	if err := nutrition.ValidateGrams(newGrams); err != nil {
		return model.LoggedEntry{}, err
	}
	entry, err := f.find(ctx, id)
	if err != nil {
		return model.LoggedEntry{}, err
	}
	if err := nutrition.ValidateGrams(entry.Grams); err != nil {
		return model.LoggedEntry{}, fmt.Errorf("entry %s has no usable gram amount: %w", id, err)
	}
	updated, err := f.store.UpdateEntry(ctx, entry.ID, entry.Name, nutrition.Unscale(entry), newGrams)
	if err != nil {
		return model.LoggedEntry{}, fmt.Errorf("update entry %s: %w", id, err)
	}
	f.log.Info().Str("id", id).Float64("from_grams", entry.Grams).Float64("to_grams", newGrams).Msg("portion adjusted")
	return updated, f.Refresh(ctx)
}

// ScalePortion multiplies an entry's gram amount by factor (0.5 halves it,
// 1.5 adds 50%).
func (f *FoodLog) ScalePortion(ctx context.Context, id string, factor float64) (model.LoggedEntry, error) {
	entry, err := f.find(ctx, id)
	if err != nil {
		return model.LoggedEntry{}, err
	}
	return f.AdjustPortion(ctx, id, entry.Grams*factor)
}

func (f *FoodLog) Delete(ctx context.Context, id string) error {
	if err := f.store.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	f.log.Info().Str("id", id).Msg("entry deleted")
	return f.Refresh(ctx)
}

func (f *FoodLog) find(ctx context.Context, id string) (model.LoggedEntry, error) {
	if !f.loaded {
		if err := f.Refresh(ctx); err != nil {
			return model.LoggedEntry{}, err
		}
	}
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.LoggedEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}
