package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/desimtools/simdb/internal/records"
)

// ExperimentByName returns the experiment row with the given name, or
// found=false when no such experiment exists.
func (s *Store) ExperimentByName(ctx context.Context, expName string) (*records.Experiment, bool, error) {
	query, args, err := sq.Select(records.Experiments.ColumnNames()...).
		From(records.Experiments.TableName()).
		Where(sq.Eq{"exp_name": expName}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build experiment lookup: %w", err)
	}

	var exp records.Experiment
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&exp.ExpID,
		&exp.SimName,
		&exp.ModelName,
		&exp.ExpName,
		&exp.NumReps,
		&exp.NumChunks,
		&exp.LengthOfRep,
		&exp.LengthOfWarmup,
		&exp.RepInitOption,
		&exp.Antithetic,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup experiment %q: %w", expName, err)
	}
	return &exp, true, nil
}

// RunIDsForExperiment returns the ids of every simulation run belonging to
// the experiment, ordered by run id for deterministic cascade planning.
func (s *Store) RunIDsForExperiment(ctx context.Context, expID int64) ([]int64, error) {
	query, args, err := sq.Select("run_id").
		From(records.SimulationRuns.TableName()).
		Where(sq.Eq{records.ColExpIDFk: expID}).
		OrderBy("run_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build run ids query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query run ids for experiment %d: %w", expID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run ids: %w", err)
	}
	return ids, nil
}

// RunIDByName returns the id of the run with the given name under the
// experiment, or found=false when no such run exists.
func (s *Store) RunIDByName(ctx context.Context, expID int64, runName string) (int64, bool, error) {
	query, args, err := sq.Select("run_id").
		From(records.SimulationRuns.TableName()).
		Where(sq.Eq{records.ColExpIDFk: expID, "run_name": runName}).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build run lookup: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup run %q under experiment %d: %w", runName, expID, err)
	}
	return id, true, nil
}

// DeleteRunByName removes the run row with the given name under the
// experiment. Used by chunked re-submission to make re-running a chunk
// idempotent. Deleting an absent run is a no-op.
func (s *Store) DeleteRunByName(ctx context.Context, expID int64, runName string) error {
	query, args, err := sq.Delete(records.SimulationRuns.TableName()).
		Where(sq.Eq{records.ColExpIDFk: expID, "run_name": runName}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build run delete: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete run %q under experiment %d: %w", runName, expID, err)
	}
	return nil
}

// CountAll returns the number of rows in table.
func (s *Store) CountAll(ctx context.Context, table string) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// CountWhere returns the number of rows in table matching column = value.
// Shared by the lifecycle tests and the cascade completeness checks.
func (s *Store) CountWhere(ctx context.Context, table, column string, value any) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{column: value}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s where %s: %w", table, column, err)
	}
	return count, nil
}
