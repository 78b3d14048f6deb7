package model

import "time"

// Nutrients is the four-field macro record shared by every profile kind.
type Nutrients struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
}

func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		ProteinG: n.ProteinG + o.ProteinG,
		CarbsG:   n.CarbsG + o.CarbsG,
		FatG:     n.FatG + o.FatG,
	}
}

func (n Nutrients) Mul(factor float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * factor,
		ProteinG: n.ProteinG * factor,
		CarbsG:   n.CarbsG * factor,
		FatG:     n.FatG * factor,
	}
}

// BaselineProfile holds nutrient values normalized to 100 grams of a food.
type BaselineProfile struct {
	Nutrients
}

// AbsoluteProfile holds nutrient values for an actual logged quantity.
type AbsoluteProfile struct {
	Nutrients
}

// FoodCandidate is a catalog or manually entered food. Its profile is per 100 g.
type FoodCandidate struct {
	Name    string
	Source  string
	Per100g BaselineProfile
}

// LoggedEntry is a persisted food log row. Nutrients are already scaled to Grams.
type LoggedEntry struct {
	ID        string
	Name      string
	Nutrients AbsoluteProfile
	Grams     float64
	LoggedAt  time.Time
}

type DailyTotals struct {
	Nutrients
}

type MacroTarget struct {
	Calories float64 `json:"total_calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
}

// TargetState carries a macro target that may not have been loaded yet.
// An unknown target is not the same as a zero target.
type TargetState struct {
	Target MacroTarget
	Known  bool
}

func KnownTarget(t MacroTarget) TargetState {
	return TargetState{Target: t, Known: true}
}

func UnknownTarget() TargetState {
	return TargetState{}
}

type ActivityLevel string

const (
	ActivitySedentary   ActivityLevel = "sedentary"
	ActivityLight       ActivityLevel = "light"
	ActivityModerate    ActivityLevel = "moderate"
	ActivityVeryActive  ActivityLevel = "very_active"
	ActivityExtraActive ActivityLevel = "extra_active"
)

var ActivityLevels = []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityVeryActive, ActivityExtraActive}

type FitnessGoal string

const (
	GoalLoseWeight FitnessGoal = "lose_weight"
	GoalMaintain   FitnessGoal = "maintain"
	GoalGainMuscle FitnessGoal = "gain_muscle"
)

var FitnessGoals = []FitnessGoal{GoalLoseWeight, GoalMaintain, GoalGainMuscle}

type User struct {
	ID            int64         `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	Age           int           `json:"age"`
	Gender        string        `json:"gender"`
	WeightKg      float64       `json:"weight"`
	HeightCm      float64       `json:"height"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	FitnessGoal   FitnessGoal   `json:"fitness_goal"`
}

type Registration struct {
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	Password      string        `json:"password"`
	Age           int           `json:"age"`
	Gender        string        `json:"gender"`
	WeightKg      float64       `json:"weight"`
	HeightCm      float64       `json:"height"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	FitnessGoal   FitnessGoal   `json:"fitness_goal"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Goal is a locally stored daily target, versioned by effective date.
type Goal struct {
	ID            int64
	Target        MacroTarget
	EffectiveDate string
	CreatedAt     time.Time
}
