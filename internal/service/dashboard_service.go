package service

import (
	"context"
	"errors"
	"log"

	"github.com/limbo/stride/internal/repository"
	"github.com/limbo/stride/pkg/entity"
)

const recentRecordsCount = 5

type DashboardService struct {
	stepsRepo repository.StepsRepositoryI
	goalsRepo repository.GoalsRepositoryI
}

func NewDashboardService(stepsRepo repository.StepsRepositoryI, goalsRepo repository.GoalsRepositoryI) *DashboardService {
	if stepsRepo == nil || goalsRepo == nil {
		log.Fatal("on dashboard service provided nil repos")
	}
	return &DashboardService{
		stepsRepo: stepsRepo,
		goalsRepo: goalsRepo,
	}
}

// GetDashboard recomputes calories_burned_so_far from the authoritative sum
// on every read, so the goal row heals itself after record deletions
func (ds *DashboardService) GetDashboard(ctx context.Context) (*entity.Dashboard, error) {
	totals, err := ds.stepsRepo.Totals(ctx)
	if err != nil {
		return nil, errors.New("steps repository error: " + err.Error())
	}
	goal, err := ds.goalsRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	if err = ds.goalsRepo.SetCaloriesBurned(ctx, totals.CaloriesBurned); err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	goal.CaloriesBurnedSoFar = totals.CaloriesBurned
	progressPercentage, remainingCalories := GoalProgress(goal.CaloriesBurnedSoFar, goal.TotalCaloriesNeeded)
	recent, err := ds.stepsRepo.GetRecent(ctx, recentRecordsCount)
	if err != nil {
		return nil, errors.New("steps repository error: " + err.Error())
	}
	return &entity.Dashboard{
		TotalSteps:          totals.Steps,
		TotalDistanceKm:     totals.DistanceKm,
		TotalCaloriesBurned: totals.CaloriesBurned,
		Goal:                *goal,
		ProgressPercentage:  progressPercentage,
		RemainingCalories:   remainingCalories,
		RecentRecords:       recent,
	}, nil
}
