package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/stride/pkg/entity"
)

type StepsRepositoryI interface {
	// Inserts new step record and advances the weight goal progress by the
	// record's calories, all within one transaction. Fills in ID and CreatedAt
	Create(ctx context.Context, record *entity.StepRecord) error
	// Lists step records ordered by creation time, newest first.
	// Limit is passed to the store as-is
	GetRecent(ctx context.Context, limit int) ([]*entity.StepRecord, error)
	// Sums steps, distance and calories over all records
	Totals(ctx context.Context) (*entity.StepTotals, error)
	// Deletes record with id. The goal row is left untouched on purpose:
	// the next dashboard read recomputes it from the remaining records
	Delete(ctx context.Context, id int64) error
}

type GoalsRepositoryI interface {
	// Returns the singleton weight goal row, creating it with defaults first
	// if it doesn't exist yet
	GetOrCreate(ctx context.Context) (*entity.WeightGoal, error)
	// Overwrites calories_burned_so_far with the given value
	SetCaloriesBurned(ctx context.Context, calories float64) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
