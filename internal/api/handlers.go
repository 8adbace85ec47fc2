package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/stride/internal/error_values"
	"github.com/limbo/stride/internal/service"
	"github.com/limbo/stride/pkg/entity"
	"github.com/limbo/stride/pkg/httputil"
)

const defaultRecordsLimit = 10

type AddStepsRequest struct {
	Steps int `json:"steps"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type WeightGoalResponse struct {
	ID                  int16     `json:"id"`
	TargetWeightLossKg  float64   `json:"target_weight_loss_kg"`
	TotalCaloriesNeeded float64   `json:"total_calories_needed"`
	CaloriesBurnedSoFar float64   `json:"calories_burned_so_far"`
	ProgressPercentage  float64   `json:"progress_percentage"`
	RemainingCalories   float64   `json:"remaining_calories"`
	CreatedAt           time.Time `json:"created_at"`
}

type DashboardResponse struct {
	TotalSteps          int64                `json:"total_steps"`
	TotalDistanceKm     float64              `json:"total_distance_km"`
	TotalCaloriesBurned float64              `json:"total_calories_burned"`
	WeightGoal          WeightGoalResponse   `json:"weight_goal"`
	RecentRecords       []*entity.StepRecord `json:"recent_records"`
}

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, MessageResponse{
		Message: "Step Counter API is running!",
	})
}

func (s *Server) AddSteps(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req AddStepsRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("add steps error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	record, err := s.stepsService.AddSteps(ctx, &service.AddStepsRequest{
		Steps: req.Steps,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrNegativeSteps) {
			logger.Error("add steps error: negative steps count")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "steps must be non-negative", nil)
			return
		}
		logger.Error("add steps error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while adding steps", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, record)
	logger.Info("step record created")
}

func (s *Server) GetSteps(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = defaultRecordsLimit
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	records, err := s.stepsService.GetRecent(ctx, limit)
	if err != nil {
		logger.Error("getting step records error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting step records", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, records)
	logger.Info("step records provided")
}

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	dashboard, err := s.dashboardService.GetDashboard(ctx)
	if err != nil {
		logger.Error("getting dashboard error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building dashboard", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, DashboardResponse{
		TotalSteps:          dashboard.TotalSteps,
		TotalDistanceKm:     dashboard.TotalDistanceKm,
		TotalCaloriesBurned: dashboard.TotalCaloriesBurned,
		WeightGoal: WeightGoalResponse{
			ID:                  dashboard.Goal.ID,
			TargetWeightLossKg:  dashboard.Goal.TargetWeightLossKg,
			TotalCaloriesNeeded: dashboard.Goal.TotalCaloriesNeeded,
			CaloriesBurnedSoFar: dashboard.Goal.CaloriesBurnedSoFar,
			ProgressPercentage:  dashboard.ProgressPercentage,
			RemainingCalories:   dashboard.RemainingCalories,
			CreatedAt:           dashboard.Goal.CreatedAt,
		},
		RecentRecords: dashboard.RecentRecords,
	})
	logger.Info("dashboard provided")
}

func (s *Server) DeleteStep(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		logger.Error("step record deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid step record id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.stepsService.DeleteStep(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStepRecordNotFound) {
			logger.Error("step record deletion error: unexist record")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "step record not found", nil)
			return
		}
		logger.Error("step record deletion error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting step record", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, MessageResponse{
		Message: "step record deleted successfully",
	})
	logger.Info("step record deleted")
}
