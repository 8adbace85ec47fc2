package entity

import (
	"time"
)

type StepRecord struct {
	ID             int64     `json:"id"`
	Steps          int       `json:"steps"`
	DistanceKm     float64   `json:"distance_km"`
	CaloriesBurned float64   `json:"calories_burned"`
	CreatedAt      time.Time `json:"created_at"`
}

// WeightGoal is the single row tracking progress toward the calorie target.
type WeightGoal struct {
	ID                  int16     `json:"id"`
	TargetWeightLossKg  float64   `json:"target_weight_loss_kg"`
	TotalCaloriesNeeded float64   `json:"total_calories_needed"`
	CaloriesBurnedSoFar float64   `json:"calories_burned_so_far"`
	CreatedAt           time.Time `json:"created_at"`
}

// StepTotals holds sums over all step records. Zero values for an empty table.
type StepTotals struct {
	Steps          int64
	DistanceKm     float64
	CaloriesBurned float64
}

type Dashboard struct {
	TotalSteps          int64
	TotalDistanceKm     float64
	TotalCaloriesBurned float64
	Goal                WeightGoal
	ProgressPercentage  float64
	RemainingCalories   float64
	RecentRecords       []*StepRecord
}
