// Package cascade removes an experiment and every dependent row across
// the simulation output tables inside one transaction.
//
// The target stores are not relied upon for declarative ON DELETE CASCADE,
// so the orchestrator walks a static dependency graph child-first: the
// run-scoped statistics tables, then the run rows, then the
// experiment-scoped snapshots, then the experiment row itself. A failure
// at any step rolls the whole transaction back, so a retry always starts
// from the original state and the child-first order means a manually
// repaired database never holds orphaned dependent rows.
package cascade

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"github.com/desimtools/simdb/internal/records"
	"github.com/desimtools/simdb/internal/store"
)

// Orchestrator deletes experiments with all their dependent rows.
type Orchestrator struct {
	store *store.Store
}

// New creates an Orchestrator over the given store. Fails with a
// *store.NotConfiguredError when the database lacks required tables.
func New(ctx context.Context, s *store.Store) (*Orchestrator, error) {
	if err := s.CheckConfigured(ctx); err != nil {
		return nil, err
	}
	return &Orchestrator{store: s}, nil
}

// step is one table delete in the cascade plan.
type step struct {
	table string
	where sq.Eq
}

// plan assembles the ordered delete steps for an experiment and its run
// ids. The list is never empty: the closing experiment delete is always
// present, and every dependent table contributes one step per scoping id,
// children strictly before parents.
func plan(expID int64, runIDs []int64) []step {
	var steps []step
	for _, runID := range runIDs {
		for _, t := range records.RunScoped() {
			steps = append(steps, step{table: t.TableName(), where: sq.Eq{records.ColSimRunIDFk: runID}})
		}
	}
	steps = append(steps, step{table: records.SimulationRuns.TableName(), where: sq.Eq{records.ColExpIDFk: expID}})
	for _, t := range records.ExperimentScoped() {
		steps = append(steps, step{table: t.TableName(), where: sq.Eq{records.ColExpIDFk: expID}})
	}
	steps = append(steps, step{table: records.Experiments.TableName(), where: sq.Eq{"exp_id": expID}})
	return steps
}

// DeleteExperiment removes the named experiment and every row referencing
// it or its runs.
//
// Returns (false, nil) when no experiment has that name: an absent
// experiment is a no-op, not an error. On any SQL failure the transaction
// is rolled back, the failure is logged, and the error is returned; the
// database is left exactly as it was.
func (o *Orchestrator) DeleteExperiment(ctx context.Context, expName string) (bool, error) {
	exp, found, err := o.store.ExperimentByName(ctx, expName)
	if err != nil {
		return false, err
	}
	if !found {
		slog.Debug("cascade delete skipped: experiment not found", "experiment", expName)
		return false, nil
	}

	runIDs, err := o.store.RunIDsForExperiment(ctx, exp.ExpID)
	if err != nil {
		return false, err
	}

	tx, err := o.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("cascade delete %q: begin tx: %w", expName, err)
	}
	defer tx.Rollback() // No-op if committed

	for _, st := range plan(exp.ExpID, runIDs) {
		query, args, err := sq.Delete(st.table).Where(st.where).ToSql()
		if err != nil {
			return false, fmt.Errorf("cascade delete %q: build delete for %s: %w", expName, st.table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			slog.Error("cascade delete failed, rolling back",
				"experiment", expName,
				"table", st.table,
				"error", err,
			)
			return false, fmt.Errorf("cascade delete %q: delete from %s: %w", expName, st.table, err)
		}
		slog.Debug("cascade delete step", "experiment", expName, "table", st.table)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("cascade delete %q: commit: %w", expName, err)
	}

	slog.Info("deleted experiment",
		"experiment", expName,
		"exp_id", exp.ExpID,
		"runs", len(runIDs),
	)
	return true, nil
}
