package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/stride/internal/error_values"
	"github.com/limbo/stride/internal/repository"
	"github.com/limbo/stride/pkg/entity"
)

type StepsService struct {
	repo repository.StepsRepositoryI
}

func NewStepsService(stepsRepo repository.StepsRepositoryI) *StepsService {
	if stepsRepo == nil {
		log.Fatal("provided nil stepsRepo")
	}
	return &StepsService{
		repo: stepsRepo,
	}
}

func (ss *StepsService) AddSteps(ctx context.Context, req *AddStepsRequest) (*entity.StepRecord, error) {
	err := validate.Struct(*req)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return nil, errorvalues.ErrNegativeSteps
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	distanceKm, caloriesBurned := ConvertSteps(req.Steps)
	record := entity.StepRecord{
		Steps:          req.Steps,
		DistanceKm:     distanceKm,
		CaloriesBurned: caloriesBurned,
	}
	if err := ss.repo.Create(ctx, &record); err != nil {
		return nil, errors.New("steps repository error: " + err.Error())
	}
	return &record, nil
}

func (ss *StepsService) GetRecent(ctx context.Context, limit int) ([]*entity.StepRecord, error) {
	records, err := ss.repo.GetRecent(ctx, limit)
	if err != nil {
		return nil, errors.New("steps repository error: " + err.Error())
	}
	return records, nil
}

func (ss *StepsService) DeleteStep(ctx context.Context, id int64) error {
	err := ss.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStepRecordNotFound) {
			return err
		}
		return errors.New("steps repository error: " + err.Error())
	}
	return nil
}
