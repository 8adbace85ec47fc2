package service

import "math"

// Conversion assumptions:
// average step length 0.762 m, walking speed 5 km/h,
// 700 kcal burned per hour at that pace
const (
	stepLengthM     = 0.762
	walkingSpeedKmh = 5.0
	caloriesPerHour = 700.0
)

// ConvertSteps maps a raw step count to walked distance in kilometers and an
// estimate of calories burned
func ConvertSteps(steps int) (distanceKm, caloriesBurned float64) {
	distanceKm = float64(steps) * stepLengthM / 1000
	timeHours := distanceKm / walkingSpeedKmh
	caloriesBurned = timeHours * caloriesPerHour
	return distanceKm, caloriesBurned
}

// GoalProgress computes the percentage of the calorie target reached, clamped
// to [0, 100], and the calories still to burn, clamped to >= 0. A target of
// zero (or less) counts as already met
func GoalProgress(burned, needed float64) (progressPercentage, remainingCalories float64) {
	if needed <= 0 {
		return 100, 0
	}
	progressPercentage = math.Min(burned/needed*100, 100)
	remainingCalories = math.Max(needed-burned, 0)
	return progressPercentage, remainingCalories
}
