package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/desimtools/simdb/internal/records"
	"github.com/desimtools/simdb/internal/store"
)

// state tracks where the registry is in the lifecycle protocol.
type state int

const (
	noExperiment state = iota
	experimentFound
)

// Registry runs the experiment/run registration protocol against a store.
// It is not safe for concurrent use: the lifecycle is strictly sequential
// per database handle.
type Registry struct {
	store *store.Store
	clock Clock

	state   state
	current *records.Experiment
	run     *records.SimulationRun
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces the wall clock used for run timestamps.
func WithClock(c Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// New creates a Registry over the given store. Fails with a
// *store.NotConfiguredError when the database lacks required tables.
func New(ctx context.Context, s *store.Store, opts ...Option) (*Registry, error) {
	if err := s.CheckConfigured(ctx); err != nil {
		return nil, err
	}
	r := &Registry{store: s, clock: systemClock{}}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// BeginExperiment registers the experiment and opens its simulation run.
//
// Transitions:
//   - no experiment row for the name: create experiment, run, and
//     experiment-scoped snapshots
//   - existing row, chunked setup: reuse the experiment id, replace any
//     prior run with the same run name, skip snapshots
//   - existing row, non-chunked setup: *DuplicateExperimentError
func (r *Registry) BeginExperiment(ctx context.Context, setup ExperimentSetup) error {
	if r.run != nil {
		return fmt.Errorf("registry: run %q is still open; call EndExperiment first", r.run.RunName)
	}

	existing, found, err := r.store.ExperimentByName(ctx, setup.ExpName)
	if err != nil {
		return err
	}

	switch {
	case !found:
		return r.beginNewExperiment(ctx, setup)
	case setup.Chunked():
		return r.beginChunkRun(ctx, existing, setup)
	default:
		return &DuplicateExperimentError{ExpName: existing.ExpName, SimName: existing.SimName}
	}
}

// beginNewExperiment persists a brand-new experiment with its first run
// and the experiment-scoped snapshots.
func (r *Registry) beginNewExperiment(ctx context.Context, setup ExperimentSetup) error {
	exp := &records.Experiment{
		SimName:        setup.SimName,
		ModelName:      setup.ModelName,
		ExpName:        setup.ExpName,
		NumReps:        setup.NumReps,
		NumChunks:      setup.NumChunks,
		LengthOfRep:    setup.LengthOfRep,
		LengthOfWarmup: setup.LengthOfWarmup,
		RepInitOption:  setup.RepInitOption,
		Antithetic:     setup.Antithetic,
	}
	expID, err := store.Insert(ctx, r.store, records.Experiments, exp)
	if err != nil {
		return err
	}
	exp.ExpID = expID

	if err := r.openRun(ctx, exp, setup); err != nil {
		return err
	}

	if err := r.insertSnapshots(ctx, expID, setup); err != nil {
		return err
	}

	slog.Info("registered new experiment",
		"experiment", exp.ExpName,
		"exp_id", exp.ExpID,
		"run", r.run.RunName,
	)
	return nil
}

// beginChunkRun reuses an existing experiment row for one chunk of a
// larger execution. A prior run with the same run name is deleted first so
// a chunk can be re-submitted without accumulating duplicate run rows.
// Experiment-scoped snapshots are already present and are not re-inserted.
func (r *Registry) beginChunkRun(ctx context.Context, exp *records.Experiment, setup ExperimentSetup) error {
	runName := setup.runName()
	if err := r.store.DeleteRunByName(ctx, exp.ExpID, runName); err != nil {
		return err
	}

	setup.RunName = runName
	if err := r.openRun(ctx, exp, setup); err != nil {
		return err
	}

	slog.Info("reusing experiment for chunked run",
		"experiment", exp.ExpName,
		"exp_id", exp.ExpID,
		"run", runName,
		"num_chunks", setup.NumChunks,
	)
	return nil
}

// openRun creates the simulation run row and moves the registry into the
// experimentFound state.
func (r *Registry) openRun(ctx context.Context, exp *records.Experiment, setup ExperimentSetup) error {
	now := r.clock.Now()
	run := &records.SimulationRun{
		ExpIDFk:           exp.ExpID,
		RunName:           setup.runName(),
		NumReps:           setup.NumReps,
		StartRepID:        setup.StartRepID,
		RunStartTimeStamp: &now,
	}
	runID, err := store.Insert(ctx, r.store, records.SimulationRuns, run)
	if err != nil {
		return err
	}
	run.RunID = runID

	r.state = experimentFound
	r.current = exp
	r.run = run
	return nil
}

// insertSnapshots persists the experiment-scoped model element, control,
// and random-variable parameter snapshots with the experiment id filled.
func (r *Registry) insertSnapshots(ctx context.Context, expID int64, setup ExperimentSetup) error {
	elements := make([]records.ModelElement, len(setup.Elements))
	copy(elements, setup.Elements)
	for i := range elements {
		elements[i].ExpIDFk = expID
	}
	if err := store.InsertAll(ctx, r.store, records.ModelElements, elements); err != nil {
		return err
	}

	controls := make([]records.Control, len(setup.Controls))
	copy(controls, setup.Controls)
	for i := range controls {
		controls[i].ExpIDFk = expID
	}
	if err := store.InsertAll(ctx, r.store, records.Controls, controls); err != nil {
		return err
	}

	params := make([]records.RvParameter, len(setup.RvParameters))
	copy(params, setup.RvParameters)
	for i := range params {
		params[i].ExpIDFk = expID
	}
	return store.InsertAll(ctx, r.store, records.RvParameters, params)
}

// AfterReplication persists one replication's statistics for the open
// run. Batch statistics are persisted only when batching is enabled on
// the observation.
func (r *Registry) AfterReplication(ctx context.Context, obs ReplicationObservation) error {
	if r.run == nil {
		return ErrNoActiveRun
	}

	responses := make([]records.WithinRepStat, len(obs.Responses))
	copy(responses, obs.Responses)
	for i := range responses {
		responses[i].SimRunIDFk = r.run.RunID
		responses[i].RepID = obs.RepID
	}
	if err := store.InsertAll(ctx, r.store, records.WithinRepStats, responses); err != nil {
		return err
	}

	counters := make([]records.WithinRepCounterStat, len(obs.Counters))
	copy(counters, obs.Counters)
	for i := range counters {
		counters[i].SimRunIDFk = r.run.RunID
		counters[i].RepID = obs.RepID
	}
	if err := store.InsertAll(ctx, r.store, records.WithinRepCounterStats, counters); err != nil {
		return err
	}

	if obs.BatchingEnabled {
		batches := make([]records.BatchStat, len(obs.BatchStats))
		copy(batches, obs.BatchStats)
		for i := range batches {
			batches[i].SimRunIDFk = r.run.RunID
			batches[i].RepID = obs.RepID
		}
		if err := store.InsertAll(ctx, r.store, records.BatchStats, batches); err != nil {
			return err
		}
	}

	rep := obs.RepID
	r.run.LastRepID = &rep

	slog.Debug("recorded replication",
		"run_id", r.run.RunID,
		"rep_id", obs.RepID,
		"responses", len(obs.Responses),
		"counters", len(obs.Counters),
	)
	return nil
}

// EndExperiment closes the open run: it updates the run row's last
// replication id, end timestamp, and error message, then persists the
// across-replication aggregates. The registry is ready for the next
// BeginExperiment afterwards.
func (r *Registry) EndExperiment(ctx context.Context, closure RunClosure) error {
	if r.run == nil {
		return ErrNoActiveRun
	}

	now := r.clock.Now()
	r.run.RunEndTimeStamp = &now
	r.run.RunErrorMsg = closure.ErrorMsg
	if err := store.Update(ctx, r.store, records.SimulationRuns, r.run); err != nil {
		return err
	}

	if err := r.insertAggregates(ctx, closure); err != nil {
		return err
	}

	slog.Info("closed experiment run",
		"experiment", r.current.ExpName,
		"run_id", r.run.RunID,
		"failed", closure.ErrorMsg != nil,
	)

	r.state = noExperiment
	r.current = nil
	r.run = nil
	return nil
}

// insertAggregates persists the end-of-run statistics with the run id
// filled.
func (r *Registry) insertAggregates(ctx context.Context, closure RunClosure) error {
	runID := r.run.RunID

	across := make([]records.AcrossRepStat, len(closure.AcrossRepStats))
	copy(across, closure.AcrossRepStats)
	for i := range across {
		across[i].SimRunIDFk = runID
	}
	if err := store.InsertAll(ctx, r.store, records.AcrossRepStats, across); err != nil {
		return err
	}

	hists := make([]records.Histogram, len(closure.Histograms))
	copy(hists, closure.Histograms)
	for i := range hists {
		hists[i].SimRunIDFk = runID
	}
	if err := store.InsertAll(ctx, r.store, records.Histograms, hists); err != nil {
		return err
	}

	freqs := make([]records.Frequency, len(closure.Frequencies))
	copy(freqs, closure.Frequencies)
	for i := range freqs {
		freqs[i].SimRunIDFk = runID
	}
	if err := store.InsertAll(ctx, r.store, records.Frequencies, freqs); err != nil {
		return err
	}

	series := make([]records.TimeSeriesResponse, len(closure.TimeSeries))
	copy(series, closure.TimeSeries)
	for i := range series {
		series[i].SimRunIDFk = runID
	}
	return store.InsertAll(ctx, r.store, records.TimeSeriesResponses, series)
}

// CurrentRun returns the open simulation run, or nil outside a lifecycle.
// Exposed for callers that need the store-assigned run id (for example to
// label engine-side progress reporting).
func (r *Registry) CurrentRun() *records.SimulationRun {
	return r.run
}

// String returns the lifecycle state for diagnostics.
func (s state) String() string {
	if s == experimentFound {
		return "ExperimentFound"
	}
	return "NoExperiment"
}
