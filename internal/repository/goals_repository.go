package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/stride/internal/error_values"
	"github.com/limbo/stride/pkg/cleanup"
	"github.com/limbo/stride/pkg/entity"
)

// The weight_goals table holds exactly one row with id = 1, enforced by a
// CHECK constraint in the schema. Column defaults carry the goal defaults.
type GoalsRepository struct {
	conn PgConnection
}

func NewGoalsRepo(cfg DBConfig) *GoalsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for goalsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &GoalsRepository{
		conn: pool,
	}
}

func NewGoalsRepoWithConn(conn PgConnection) *GoalsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	return &GoalsRepository{
		conn: conn,
	}
}

func (gr *GoalsRepository) GetOrCreate(ctx context.Context) (*entity.WeightGoal, error) {
	_, err := gr.conn.Exec(ctx, `INSERT INTO weight_goals (id) VALUES (1) ON CONFLICT (id) DO NOTHING;`)
	if err != nil {
		return nil, errors.New("ensuring weight goal error: " + err.Error())
	}
	var goal entity.WeightGoal
	row := gr.conn.QueryRow(ctx, `SELECT id, target_weight_loss_kg, total_calories_needed, calories_burned_so_far, created_at FROM weight_goals WHERE id = 1;`)
	if err := row.Scan(&goal.ID, &goal.TargetWeightLossKg, &goal.TotalCaloriesNeeded, &goal.CaloriesBurnedSoFar, &goal.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrGoalNotFound
		}
		return nil, errors.New("getting weight goal error: " + err.Error())
	}
	return &goal, nil
}

func (gr *GoalsRepository) SetCaloriesBurned(ctx context.Context, calories float64) error {
	ct, err := gr.conn.Exec(ctx, `UPDATE weight_goals SET calories_burned_so_far = $1 WHERE id = 1;`, calories)
	if err != nil {
		return errors.New("overwriting goal progress error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}
