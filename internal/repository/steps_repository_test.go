package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	_ "github.com/lib/pq"
	errorvalues "github.com/limbo/stride/internal/error_values"
	"github.com/limbo/stride/internal/repository"
	"github.com/limbo/stride/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	insertQuery     = regexp.QuoteMeta(`INSERT INTO step_records (steps, distance_km, calories_burned) VALUES ($1, $2, $3) RETURNING id, created_at;`)
	ensureGoalQuery = regexp.QuoteMeta(`INSERT INTO weight_goals (id) VALUES (1) ON CONFLICT (id) DO NOTHING;`)
	advanceQuery    = regexp.QuoteMeta(`UPDATE weight_goals SET calories_burned_so_far = calories_burned_so_far + $1 WHERE id = 1;`)
)

func TestCreateStepRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewStepsRepoWithConn(mock)
	record := entity.StepRecord{
		Steps:          10000,
		DistanceKm:     7.62,
		CaloriesBurned: 1066.8,
	}
	recordID := int64(1)
	createdAt := time.Now()
	ctx := context.Background()
	t.Run("successfully created", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(insertQuery).
			WithArgs(record.Steps, record.DistanceKm, record.CaloriesBurned).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(recordID, createdAt))
		mock.ExpectExec(ensureGoalQuery).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
		mock.ExpectExec(advanceQuery).
			WithArgs(record.CaloriesBurned).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()
		err := repo.Create(ctx, &record)
		assert.NoError(t, err)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, createdAt, record.CreatedAt)
	})
	t.Run("insert error rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(insertQuery).
			WithArgs(record.Steps, record.DistanceKm, record.CaloriesBurned).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()
		err := repo.Create(ctx, &record)
		assert.Error(t, err)
	})
	t.Run("goal advance error rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(insertQuery).
			WithArgs(record.Steps, record.DistanceKm, record.CaloriesBurned).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(recordID, createdAt))
		mock.ExpectExec(ensureGoalQuery).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
		mock.ExpectExec(advanceQuery).
			WithArgs(record.CaloriesBurned).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()
		err := repo.Create(ctx, &record)
		assert.Error(t, err)
	})
	t.Run("nil record", func(t *testing.T) {
		err := repo.Create(ctx, nil)
		assert.Error(t, err)
	})
}

func TestGetRecentStepRecords(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewStepsRepoWithConn(mock)
	records := []*entity.StepRecord{
		{
			ID:             3,
			Steps:          3000,
			DistanceKm:     2.286,
			CaloriesBurned: 320.04,
			CreatedAt:      time.Now(),
		},
		{
			ID:             2,
			Steps:          2000,
			DistanceKm:     1.524,
			CaloriesBurned: 213.36,
			CreatedAt:      time.Now().Add(-time.Hour),
		},
	}
	query := regexp.QuoteMeta(`SELECT id, steps, distance_km, calories_burned, created_at
		FROM step_records ORDER BY created_at DESC LIMIT $1;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		limit := 2
		rows := pgxmock.NewRows([]string{"id", "steps", "distance_km", "calories_burned", "created_at"})
		for _, rec := range records {
			rows.AddRow(rec.ID, rec.Steps, rec.DistanceKm, rec.CaloriesBurned, rec.CreatedAt)
		}
		mock.ExpectQuery(query).
			WithArgs(limit).
			WillReturnRows(rows)
		result, err := repo.GetRecent(ctx, limit)
		assert.NoError(t, err)
		for i := range result {
			assert.Equal(t, *records[i], *result[i])
		}
	})
	t.Run("empty table", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(10).
			WillReturnRows(pgxmock.NewRows([]string{"id", "steps", "distance_km", "calories_burned", "created_at"}))
		result, err := repo.GetRecent(ctx, 10)
		assert.NoError(t, err)
		assert.Empty(t, result)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(10).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetRecent(ctx, 10)
		assert.Error(t, err)
	})
}

func TestStepTotals(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewStepsRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT COALESCE(SUM(steps), 0), COALESCE(SUM(distance_km), 0), COALESCE(SUM(calories_burned), 0) FROM step_records;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows([]string{"sum", "sum", "sum"}).AddRow(int64(15000), 11.43, 1600.2))
		totals, err := repo.Totals(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(15000), totals.Steps)
		assert.InDelta(t, 11.43, totals.DistanceKm, 1e-9)
		assert.InDelta(t, 1600.2, totals.CaloriesBurned, 1e-9)
	})
	t.Run("empty table sums to zero", func(t *testing.T) {
		mock.ExpectQuery(query).
			WillReturnRows(pgxmock.NewRows([]string{"sum", "sum", "sum"}).AddRow(int64(0), 0.0, 0.0))
		totals, err := repo.Totals(ctx)
		assert.NoError(t, err)
		assert.Zero(t, totals.Steps)
		assert.Zero(t, totals.DistanceKm)
		assert.Zero(t, totals.CaloriesBurned)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WillReturnError(errors.New("db error"))
		_, err := repo.Totals(ctx)
		assert.Error(t, err)
	})
}

func TestDeleteStepRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewStepsRepoWithConn(mock)
	query := regexp.QuoteMeta(`DELETE FROM step_records WHERE id = $1;`)
	ctx := context.Background()
	recordID := int64(7)
	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(recordID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		err := repo.Delete(ctx, recordID)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(recordID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		err := repo.Delete(ctx, recordID)
		assert.ErrorIs(t, err, errorvalues.ErrStepRecordNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(recordID).
			WillReturnError(errors.New("db error"))
		err := repo.Delete(ctx, recordID)
		assert.Error(t, err)
	})
}

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func setupStepsTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("stride"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	connStr, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	connStr += "sslmode=disable"
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	err = goose.Up(conn, "../../migrations")
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	return &testPGConfig{
		connStr: connStr,
	}
}

func TestStepsRepositoryIntegration(t *testing.T) {
	cfg := setupStepsTestDB(t)
	stepsRepo := repository.NewStepsRepo(cfg)
	goalsRepo := repository.NewGoalsRepo(cfg)
	ctx := context.Background()

	inserted := make([]*entity.StepRecord, 0, 3)
	for _, steps := range []int{1000, 2000, 3000} {
		rec := entity.StepRecord{
			Steps:          steps,
			DistanceKm:     float64(steps) * 0.762 / 1000,
			CaloriesBurned: float64(steps) * 0.762 / 1000 / 5.0 * 700,
		}
		require.NoError(t, stepsRepo.Create(ctx, &rec))
		assert.NotZero(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
		inserted = append(inserted, &rec)
		// created_at must strictly order the records
		time.Sleep(50 * time.Millisecond)
	}

	t.Run("recent returns newest first", func(t *testing.T) {
		recent, err := stepsRepo.GetRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, inserted[2].ID, recent[0].ID)
		assert.Equal(t, inserted[1].ID, recent[1].ID)
	})

	t.Run("totals sum all records", func(t *testing.T) {
		totals, err := stepsRepo.Totals(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(6000), totals.Steps)
		assert.InDelta(t, 6000*0.762/1000, totals.DistanceKm, 1e-6)
	})

	t.Run("goal progress advanced transactionally", func(t *testing.T) {
		goal, err := goalsRepo.GetOrCreate(ctx)
		require.NoError(t, err)
		wantBurned := 0.0
		for _, rec := range inserted {
			wantBurned += rec.CaloriesBurned
		}
		assert.InDelta(t, wantBurned, goal.CaloriesBurnedSoFar, 1e-6)
		assert.Equal(t, 5.0, goal.TargetWeightLossKg)
		assert.Equal(t, 38500.0, goal.TotalCaloriesNeeded)
	})

	t.Run("delete removes exactly one record", func(t *testing.T) {
		require.NoError(t, stepsRepo.Delete(ctx, inserted[0].ID))
		totals, err := stepsRepo.Totals(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), totals.Steps)
	})

	t.Run("deleting unexist record", func(t *testing.T) {
		err := stepsRepo.Delete(ctx, 424242)
		assert.ErrorIs(t, err, errorvalues.ErrStepRecordNotFound)
	})
}
