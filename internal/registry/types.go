package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/desimtools/simdb/internal/records"
)

// ExperimentSetup carries everything the driving simulation engine knows
// about an experiment at start time.
type ExperimentSetup struct {
	// SimName names the owning simulation.
	SimName string

	// ModelName names the simulated model.
	ModelName string

	// ExpName uniquely names the experiment. Uniqueness is enforced by
	// the registry, not by a database constraint.
	ExpName string

	// RunName names this execution. Empty defaults to a fresh UUIDv7 so
	// unnamed runs never collide; chunked executions must set it
	// explicitly to get idempotent re-submission.
	RunName string

	// NumReps is the planned replication count for this run.
	NumReps int32

	// StartRepID is the first replication id of this run. Chunks of one
	// experiment start at different offsets.
	StartRepID int32

	// NumChunks is the total chunk count of the logical experiment.
	// A value greater than 1 marks this submission as one chunk of a
	// larger execution.
	NumChunks int32

	// LengthOfRep and LengthOfWarmup describe the replication horizon;
	// nil means not configured.
	LengthOfRep    *float64
	LengthOfWarmup *float64

	// RepInitOption and Antithetic mirror the engine's run options.
	RepInitOption bool
	Antithetic    bool

	// Elements, Controls, and RvParameters are experiment-scoped
	// snapshots, persisted on first registration only. The registry fills
	// their exp_id_fk.
	Elements     []records.ModelElement
	Controls     []records.Control
	RvParameters []records.RvParameter
}

// Chunked reports whether this setup is one chunk of a larger execution.
func (s *ExperimentSetup) Chunked() bool { return s.NumChunks > 1 }

// runName returns the declared run name or a fresh UUIDv7.
func (s *ExperimentSetup) runName() string {
	if s.RunName != "" {
		return s.RunName
	}
	return uuid.Must(uuid.NewV7()).String()
}

// ReplicationObservation carries one replication's statistics. The
// registry fills sim_run_id_fk and rep_id on every record.
type ReplicationObservation struct {
	// RepID is the replication this observation closes.
	RepID int32

	// Responses and Counters are always persisted.
	Responses []records.WithinRepStat
	Counters  []records.WithinRepCounterStat

	// BatchStats are persisted only when BatchingEnabled is set.
	BatchingEnabled bool
	BatchStats      []records.BatchStat
}

// RunClosure carries the end-of-run aggregates. The registry fills
// sim_run_id_fk on every record.
type RunClosure struct {
	// ErrorMsg records an engine-reported failure; nil means the run
	// completed cleanly.
	ErrorMsg *string

	AcrossRepStats []records.AcrossRepStat
	Histograms     []records.Histogram
	Frequencies    []records.Frequency
	TimeSeries     []records.TimeSeriesResponse
}

// Clock supplies run timestamps. The default is the wall clock; tests
// inject a deterministic one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
