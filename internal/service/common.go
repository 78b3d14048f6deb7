package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
)

var ErrEntryNotFound = errors.New("food log entry not found")

func validateNonNegativeFloat(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNutrients(prefix string, n model.Nutrients) error {
	if err := validateNonNegativeFloat(prefix+"calories", n.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat(prefix+"protein", n.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat(prefix+"carbs", n.CarbsG); err != nil {
		return err
	}
	return validateNonNegativeFloat(prefix+"fat", n.FatG)
}
