package registry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desimtools/simdb/internal/records"
	"github.com/desimtools/simdb/internal/store"
	"github.com/desimtools/simdb/internal/testutil"
)

func openConfigured(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.CreateTables(context.Background()))
	return s
}

func newRegistry(t *testing.T, s *store.Store) (*Registry, *testutil.FixedClock) {
	t.Helper()
	clock := testutil.NewFixedClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	r, err := New(context.Background(), s, WithClock(clock))
	require.NoError(t, err)
	return r, clock
}

func setup(expName string) ExperimentSetup {
	return ExperimentSetup{
		SimName:    "PharmacySim",
		ModelName:  "DriveThrough",
		ExpName:    expName,
		RunName:    "Run1",
		NumReps:    3,
		StartRepID: 1,
		Elements: []records.ModelElement{
			{ElementID: 1, ElementName: "PharmacyQ", ClassName: "Queue", LeftCount: 1, RightCount: 2},
		},
		Controls: []records.Control{
			{ElementIDFk: 1, KeyName: "serviceRate"},
		},
		RvParameters: []records.RvParameter{
			{ElementIDFk: 1, ClassName: "Exponential", DataType: "DOUBLE", RvName: "ServiceTime", ParamName: "mean", ParamValue: 0.7},
		},
	}
}

func TestNew_NotConfigured(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = New(context.Background(), s)
	require.Error(t, err)

	var ncErr *store.NotConfiguredError
	require.ErrorAs(t, err, &ncErr)
	assert.NotEmpty(t, ncErr.Missing)
}

func TestBeginExperiment_New(t *testing.T) {
	ctx := context.Background()
	s := openConfigured(t)
	r, _ := newRegistry(t, s)

	require.NoError(t, r.BeginExperiment(ctx, setup("Exp1")))

	exp, found, err := s.ExperimentByName(ctx, "Exp1")
	require.NoError(t, err)
	require.True(t, found)

	run := r.CurrentRun()
	require.NotNil(t, run)
	assert.Equal(t, exp.ExpID, run.ExpIDFk)
	assert.Equal(t, "Run1", run.RunName)
	require.NotNil(t, run.RunStartTimeStamp)

	// Experiment-scoped snapshots persisted once
	for _, tbl := range []string{"model_element", "control", "rv_parameter"} {
		count, err := s.CountWhere(ctx, tbl, records.ColExpIDFk, exp.ExpID)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", tbl)
	}
}

func TestBeginExperiment_DuplicateGuard(t *testing.T) {
	ctx := context.Background()
	s := openConfigured(t)
	r, _ := newRegistry(t, s)

	require.NoError(t, r.BeginExperiment(ctx, setup("Exp1")))
	require.NoError(t, r.EndExperiment(ctx, RunClosure{}))

	err := r.BeginExperiment(ctx, setup("Exp1"))
	require.Error(t, err)

	var dupErr *DuplicateExperimentError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "Exp1", dupErr.ExpName)
	assert.Equal(t, "PharmacySim", dupErr.SimName)

	// First experiment's data untouched
	count, err := s.CountWhere(ctx, "experiment", "exp_name", "Exp1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	exp, _, err := s.ExperimentByName(ctx, "Exp1")
	require.NoError(t, err)
	runs, err := s.RunIDsForExperiment(ctx, exp.ExpID)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestBeginExperiment_ChunkReusesExperiment(t *testing.T) {
	ctx := context.Background()
	s := openConfigured(t)
	r, _ := newRegistry(t, s)

	first := setup("Exp1")
	first.NumChunks = 2
	require.NoError(t, r.BeginExperiment(ctx, first))
	require.NoError(t, r.EndExperiment(ctx, RunClosure{}))

	second := setup("Exp1")
	second.NumChunks = 2
	second.RunName = "Run2"
	second.StartRepID = 4
	require.NoError(t, r.BeginExperiment(ctx, second))
	require.NoError(t, r.EndExperiment(ctx, RunClosure{}))

	// One experiment row, two run rows
	count, err := s.CountWhere(ctx, "experiment", "exp_name", "Exp1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	exp, _, err := s.ExperimentByName(ctx, "Exp1")
	require.NoError(t, err)
	runs, err := s.RunIDsForExperiment(ctx, exp.ExpID)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	// Snapshots not re-inserted for the second chunk
	elems, err := s.CountWhere(ctx, "model_element", records.ColExpIDFk, exp.ExpID)
	require.NoError(t, err)
	assert.Equal(t, 1, elems)
}

func TestBeginExperiment_ChunkResubmissionIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openConfigured(t)
	r, _ := newRegistry(t, s)

	chunk := setup("Exp1")
	chunk.NumChunks = 2
	require.NoError(t, r.BeginExperiment(ctx, chunk))
	require.NoError(t, r.EndExperiment(ctx, RunClosure{}))

	// Re-submitting the same chunked run name replaces the prior run row
	require.NoError(t, r.BeginExperiment(ctx, chunk))
	require.NoError(t, r.EndExperiment(ctx, RunClosure{}))

	exp, _, err := s.ExperimentByName(ctx, "Exp1")
	require.NoError(t, err)
	count, err := s.CountWhere(ctx, "simulation_run", records.ColExpIDFk, exp.ExpID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "exactly one run row for the re-submitted chunk name")
}

func TestBeginExperiment_GeneratesRunName(t *testing.T) {
	ctx := context.Background()
	s := openConfigured(t)
	r, _ := newRegistry(t, s)

	anon := setup("Exp1")
	anon.RunName = ""
	require.NoError(t, r.BeginExperiment(ctx, anon))

	run := r.CurrentRun()
	require.NotNil(t, run)
	assert.Len(t, run.RunName, 36, "generated run name should be a UUID")
}

func TestBeginExperiment_RejectsOpenRun(t *testing.T) {
	ctx := context.Background()
	s := openConfigured(t)
	r, _ := newRegistry(t, s)

	require.NoError(t, r.BeginExperiment(ctx, setup("Exp1")))
	err := r.BeginExperiment(ctx, setup("Exp2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still open")
}

func TestAfterReplication(t *testing.T) {
	ctx := context.Background()
	s := openConfigured(t)
	r, _ := newRegistry(t, s)
	require.NoError(t, r.BeginExperiment(ctx, setup("Exp1")))
	runID := r.CurrentRun().RunID

	avg := 4.5
	lastVal := 12.0
	obs := ReplicationObservation{
		RepID: 1,
		Responses: []records.WithinRepStat{
			{ElementIDFk: 1, StatName: "Wait Time", Average: &avg},
		},
		Counters: []records.WithinRepCounterStat{
			{ElementIDFk: 2, CounterName: "NumServed", LastValue: &lastVal},
		},
		BatchStats: []records.BatchStat{
			{ElementIDFk: 1, StatName: "Wait Time", Average: &avg},
		},
	}
	require.NoError(t, r.AfterReplication(ctx, obs))

	count, err := s.CountWhere(ctx, "within_rep_stat", records.ColSimRunIDFk, runID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = s.CountWhere(ctx, "within_rep_counter_stat", records.ColSimRunIDFk, runID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Batching disabled: batch stats are skipped
	count, err = s.CountWhere(ctx, "batch_stat", records.ColSimRunIDFk, runID)
	require.NoError(t, err)
	assert.Zero(t, count)

	obs.RepID = 2
	obs.BatchingEnabled = true
	require.NoError(t, r.AfterReplication(ctx, obs))

	count, err = s.CountWhere(ctx, "batch_stat", records.ColSimRunIDFk, runID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAfterReplication_NoActiveRun(t *testing.T) {
	s := openConfigured(t)
	r, _ := newRegistry(t, s)

	err := r.AfterReplication(context.Background(), ReplicationObservation{RepID: 1})
	assert.ErrorIs(t, err, ErrNoActiveRun)
}

func TestEndExperiment(t *testing.T) {
	ctx := context.Background()
	s := openConfigured(t)
	r, clock := newRegistry(t, s)
	require.NoError(t, r.BeginExperiment(ctx, setup("Exp1")))
	runID := r.CurrentRun().RunID

	require.NoError(t, r.AfterReplication(ctx, ReplicationObservation{RepID: 3}))
	clock.Advance(90 * time.Second)

	avg := 4.2
	msg := "rep 3 aborted"
	closure := RunClosure{
		ErrorMsg: &msg,
		AcrossRepStats: []records.AcrossRepStat{
			{ElementIDFk: 1, StatName: "Wait Time", Average: &avg},
		},
		Histograms: []records.Histogram{
			{ResponseName: "Wait Time", BinNum: 1, BinLabel: "[0,1)"},
		},
		Frequencies: []records.Frequency{
			{ElementIDFk: 2, Name: "Busy", CellLabel: "idle", Value: 0, Count: 10, Proportion: 0.5},
		},
		TimeSeries: []records.TimeSeriesResponse{
			{ElementIDFk: 1, ResponseType: "response", ResponseName: "Wait Time", RepNum: 1, Period: 1},
		},
	}
	require.NoError(t, r.EndExperiment(ctx, closure))
	assert.Nil(t, r.CurrentRun())

	// Run row closed with last rep id and error message
	count, err := s.CountWhere(ctx, "simulation_run", "last_rep_id", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = s.CountWhere(ctx, "simulation_run", "run_error_msg", "rep 3 aborted")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	for _, tbl := range []string{"across_rep_stat", "histogram", "frequency", "time_series_response"} {
		count, err := s.CountWhere(ctx, tbl, records.ColSimRunIDFk, runID)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", tbl)
	}
}

func TestEndExperiment_NoActiveRun(t *testing.T) {
	s := openConfigured(t)
	r, _ := newRegistry(t, s)

	err := r.EndExperiment(context.Background(), RunClosure{})
	assert.ErrorIs(t, err, ErrNoActiveRun)
}

func TestLifecycle_ReusableAfterEnd(t *testing.T) {
	ctx := context.Background()
	s := openConfigured(t)
	r, _ := newRegistry(t, s)

	require.NoError(t, r.BeginExperiment(ctx, setup("Exp1")))
	require.NoError(t, r.EndExperiment(ctx, RunClosure{}))
	require.NoError(t, r.BeginExperiment(ctx, setup("Exp2")))
	require.NoError(t, r.EndExperiment(ctx, RunClosure{}))

	count, err := s.CountAll(ctx, "experiment")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
