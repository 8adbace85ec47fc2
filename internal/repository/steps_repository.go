package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/stride/internal/error_values"
	"github.com/limbo/stride/pkg/cleanup"
	"github.com/limbo/stride/pkg/entity"
)

type StepsRepository struct {
	conn PgConnection
}

func NewStepsRepo(cfg DBConfig) *StepsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for stepsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for stepsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &StepsRepository{
		conn: pool,
	}
}

func NewStepsRepoWithConn(conn PgConnection) *StepsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for stepsRepo: " + err.Error())
	}
	return &StepsRepository{
		conn: conn,
	}
}

func (sr *StepsRepository) Create(ctx context.Context, record *entity.StepRecord) error {
	if record == nil {
		return errors.New("step record is nil")
	}
	tx, err := sr.conn.Begin(ctx)
	if err != nil {
		return errors.New("opening transaction error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	row := tx.QueryRow(ctx, `INSERT INTO step_records (steps, distance_km, calories_burned) VALUES ($1, $2, $3) RETURNING id, created_at;`,
		record.Steps,
		record.DistanceKm,
		record.CaloriesBurned,
	)
	if err := row.Scan(&record.ID, &record.CreatedAt); err != nil {
		return errors.New("creating step record error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `INSERT INTO weight_goals (id) VALUES (1) ON CONFLICT (id) DO NOTHING;`)
	if err != nil {
		return errors.New("ensuring weight goal error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `UPDATE weight_goals SET calories_burned_so_far = calories_burned_so_far + $1 WHERE id = 1;`, record.CaloriesBurned)
	if err != nil {
		return errors.New("advancing goal progress error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing step record error: " + err.Error())
	}
	return nil
}

func (sr *StepsRepository) GetRecent(ctx context.Context, limit int) ([]*entity.StepRecord, error) {
	records := make([]*entity.StepRecord, 0)
	rows, err := sr.conn.Query(ctx, `SELECT id, steps, distance_km, calories_burned, created_at
		FROM step_records ORDER BY created_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, errors.New("getting recent step records error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		rec := entity.StepRecord{}
		err = rows.Scan(&rec.ID, &rec.Steps, &rec.DistanceKm, &rec.CaloriesBurned, &rec.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling step record error: " + err.Error())
		}
		records = append(records, &rec)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return records, nil
}

func (sr *StepsRepository) Totals(ctx context.Context) (*entity.StepTotals, error) {
	var totals entity.StepTotals
	row := sr.conn.QueryRow(ctx, `SELECT COALESCE(SUM(steps), 0), COALESCE(SUM(distance_km), 0), COALESCE(SUM(calories_burned), 0) FROM step_records;`)
	if err := row.Scan(&totals.Steps, &totals.DistanceKm, &totals.CaloriesBurned); err != nil {
		return nil, errors.New("summing step records error: " + err.Error())
	}
	return &totals, nil
}

func (sr *StepsRepository) Delete(ctx context.Context, id int64) error {
	ct, err := sr.conn.Exec(ctx, `DELETE FROM step_records WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting step record error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrStepRecordNotFound
	}
	return nil
}
