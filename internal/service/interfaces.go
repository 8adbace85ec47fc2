package service

import (
	"context"

	"github.com/limbo/stride/pkg/entity"
)

type AddStepsRequest struct {
	Steps int `validate:"gte=0"`
}

type StepsServiceI interface {
	// Validates the step count, derives distance and calories and stores
	// the record. Returns the record with its assigned id and timestamp
	AddSteps(ctx context.Context, req *AddStepsRequest) (*entity.StepRecord, error)
	// Lists step records, newest first. Limit is passed through to the store
	GetRecent(ctx context.Context, limit int) ([]*entity.StepRecord, error)
	DeleteStep(ctx context.Context, id int64) error
}

type DashboardServiceI interface {
	// Builds the aggregate view: totals, refreshed goal progress and the
	// most recent records
	GetDashboard(ctx context.Context) (*entity.Dashboard, error)
}
