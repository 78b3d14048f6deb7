// Package nutrition converts between per-100 g and logged-portion nutrient
// profiles and derives daily totals and target progress from logged entries.
package nutrition

import (
	"errors"
	"fmt"
	"math"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
)

const baselineGrams = 100.0

var ErrInvalidGrams = errors.New("grams must be a finite number > 0")

// ValidateGrams requires a finite grams > 0. It must pass before an
// entry is created or rescaled, since Unscale divides by the stored amount.
func ValidateGrams(grams float64) error {
	if math.IsNaN(grams) || math.IsInf(grams, 0) || grams <= 0 {
		return fmt.Errorf("%w (got %v)", ErrInvalidGrams, grams)
	}
	return nil
}

// Scale returns the nutrients contained in grams of a food with the given
// per-100 g baseline. No rounding is applied.
func Scale(baseline model.BaselineProfile, grams float64) model.AbsoluteProfile {
	return model.AbsoluteProfile{Nutrients: baseline.Nutrients.Mul(grams / baselineGrams)}
}

// Unscale recovers the per-100 g baseline of a logged entry. Entries always
// carry grams > 0 (see ValidateGrams).
func Unscale(entry model.LoggedEntry) model.BaselineProfile {
	n := entry.Nutrients.Nutrients
	return model.BaselineProfile{Nutrients: model.Nutrients{
		Calories: n.Calories * baselineGrams / entry.Grams,
		ProteinG: n.ProteinG * baselineGrams / entry.Grams,
		CarbsG:   n.CarbsG * baselineGrams / entry.Grams,
		FatG:     n.FatG * baselineGrams / entry.Grams,
	}}
}

// Rescale recomputes an entry's absolute profile for a new gram amount,
// passing through the baseline exactly once.
func Rescale(entry model.LoggedEntry, newGrams float64) model.AbsoluteProfile {
	return Scale(Unscale(entry), newGrams)
}
