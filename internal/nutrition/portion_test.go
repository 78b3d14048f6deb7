package nutrition_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
)

const tolerance = 1e-9

func baseline(cal, p, c, f float64) model.BaselineProfile {
	return model.BaselineProfile{Nutrients: model.Nutrients{Calories: cal, ProteinG: p, CarbsG: c, FatG: f}}
}

func assertNutrients(t *testing.T, want, got model.Nutrients) {
	t.Helper()
	assert.InDelta(t, want.Calories, got.Calories, tolerance, "calories")
	assert.InDelta(t, want.ProteinG, got.ProteinG, tolerance, "protein")
	assert.InDelta(t, want.CarbsG, got.CarbsG, tolerance, "carbs")
	assert.InDelta(t, want.FatG, got.FatG, tolerance, "fat")
}

func TestScaleApplePortion(t *testing.T) {
	apple := baseline(52, 0.3, 14, 0.2)

	got := nutrition.Scale(apple, 150)

	assertNutrients(t, model.Nutrients{Calories: 78, ProteinG: 0.45, CarbsG: 21, FatG: 0.3}, got.Nutrients)
}

func TestScaleAt100GramsIsIdentity(t *testing.T) {
	b := baseline(250, 10, 30, 9)
	assertNutrients(t, b.Nutrients, nutrition.Scale(b, 100).Nutrients)
}

func TestUnscaleRoundTrip(t *testing.T) {
	profiles := []model.BaselineProfile{
		baseline(52, 0.3, 14, 0.2),
		baseline(884, 0, 0, 100),
		baseline(0, 0, 0, 0),
		baseline(165, 31, 0, 3.6),
	}
	grams := []float64{0.5, 1, 33.3, 100, 150, 1234.5}

	for _, b := range profiles {
		for _, g := range grams {
			entry := model.LoggedEntry{Nutrients: nutrition.Scale(b, g), Grams: g}
			assertNutrients(t, b.Nutrients, nutrition.Unscale(entry).Nutrients)
		}
	}
}

func TestRescaleMatchesDirectScale(t *testing.T) {
	b := baseline(389, 16.9, 66.3, 6.9)
	pairs := [][2]float64{{100, 50}, {40, 250}, {150, 75}, {1, 999}}

	for _, p := range pairs {
		entry := model.LoggedEntry{ID: "1", Nutrients: nutrition.Scale(b, p[0]), Grams: p[0], LoggedAt: time.Now()}
		got := nutrition.Rescale(entry, p[1])
		assertNutrients(t, nutrition.Scale(b, p[1]).Nutrients, got.Nutrients)
	}
}

func TestRepeatedRescaleDoesNotDrift(t *testing.T) {
	b := baseline(52, 0.3, 14, 0.2)
	entry := model.LoggedEntry{Nutrients: nutrition.Scale(b, 100), Grams: 100}

	for i := 0; i < 50; i++ {
		next := entry.Grams * 1.5
		if i%2 == 1 {
			next = entry.Grams * 0.5
		}
		entry = model.LoggedEntry{Nutrients: nutrition.Rescale(entry, next), Grams: next}
	}

	assertNutrients(t, b.Nutrients, nutrition.Unscale(entry).Nutrients)
}

func TestValidateGrams(t *testing.T) {
	require.NoError(t, nutrition.ValidateGrams(0.1))
	require.NoError(t, nutrition.ValidateGrams(100))

	for _, g := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := nutrition.ValidateGrams(g)
		require.ErrorIs(t, err, nutrition.ErrInvalidGrams, "grams=%v", g)
	}
}
