// Package records declares the persisted record kinds for simulation
// output and registers their table schemas.
//
// Twelve tables make up the layout. Experiment is the root; SimulationRun
// and the experiment-scoped snapshots (ModelElement, Control, RvParameter)
// reference it via exp_id_fk; the statistics tables reference their run via
// sim_run_id_fk. The references are a convention of this layout, not
// declared foreign keys; the cascade orchestrator enforces them on delete.
//
// Nullable columns use pointer fields; a nil pointer binds SQL NULL.
package records

import "time"

// Experiment is the root record for one named simulation experiment.
type Experiment struct {
	ExpID          int64
	SimName        string
	ModelName      string
	ExpName        string
	NumReps        int32
	NumChunks      int32
	LengthOfRep    *float64
	LengthOfWarmup *float64
	RepInitOption  bool
	Antithetic     bool
}

// SimulationRun records one execution (or one chunk) of an experiment.
// A chunked experiment accumulates several runs under one Experiment row.
type SimulationRun struct {
	RunID             int64
	ExpIDFk           int64
	RunName           string
	NumReps           int32
	StartRepID        int32
	LastRepID         *int32
	RunStartTimeStamp *time.Time
	RunEndTimeStamp   *time.Time
	RunErrorMsg       *string
}

// ModelElement is an experiment-scoped snapshot of one element of the
// simulation model tree. Keyed by (exp_id_fk, element_id): element ids are
// only unique within a model, so the experiment id is part of the key.
type ModelElement struct {
	ExpIDFk     int64
	ElementID   int32
	ElementName string
	ClassName   string
	ParentIDFk  *int32
	ParentName  *string
	LeftCount   int32
	RightCount  int32
}

// Control is an experiment-scoped snapshot of one tunable model control.
type Control struct {
	ControlID    int64
	ExpIDFk      int64
	ElementIDFk  int32
	KeyName      string
	ControlValue *float64
	LowerBound   *float64
	UpperBound   *float64
	Comment      *string
}

// RvParameter is an experiment-scoped snapshot of one random-variable
// parameter setting.
type RvParameter struct {
	RvParamID   int64
	ExpIDFk     int64
	ElementIDFk int32
	ClassName   string
	DataType    string
	RvName      string
	ParamName   string
	ParamValue  float64
}

// WithinRepStat holds within-replication observation statistics for one
// response in one replication.
type WithinRepStat struct {
	ID           int64
	SimRunIDFk   int64
	ElementIDFk  int32
	StatName     string
	RepID        int32
	StatCount    *float64
	Average      *float64
	Minimum      *float64
	Maximum      *float64
	WeightedSum  *float64
	SumOfWeights *float64
	LastValue    *float64
	LastWeight   *float64
}

// WithinRepCounterStat holds the terminal counter value for one counter in
// one replication.
type WithinRepCounterStat struct {
	ID          int64
	SimRunIDFk  int64
	ElementIDFk int32
	CounterName string
	RepID       int32
	LastValue   *float64
}

// AcrossRepStat holds across-replication aggregate statistics for one
// response over a whole run.
type AcrossRepStat struct {
	ID          int64
	SimRunIDFk  int64
	ElementIDFk int32
	StatName    string
	StatCount   *float64
	Average     *float64
	StdDev      *float64
	StdError    *float64
	HalfWidth   *float64
	ConfLevel   *float64
	Minimum     *float64
	Maximum     *float64
	SumOfObs    *float64
	DevSsq      *float64
	Lag1Corr    *float64
}

// BatchStat holds batch-means statistics for one response in one
// replication, recorded only when batching is enabled for the run.
type BatchStat struct {
	ID            int64
	SimRunIDFk    int64
	ElementIDFk   int32
	StatName      string
	RepID         int32
	StatCount     *float64
	Average       *float64
	StdDev        *float64
	HalfWidth     *float64
	Minimum       *float64
	Maximum       *float64
	TotalNumObs   *float64
	RejectedCount *float64
}

// Histogram holds one bin of a response histogram.
type Histogram struct {
	ID            int64
	SimRunIDFk    int64
	ResponseName  string
	BinNum        int32
	BinLabel      string
	BinLowerLimit *float64
	BinUpperLimit *float64
	BinCount      *float64
	CumCount      *float64
	Proportion    *float64
	CumProportion *float64
}

// Frequency holds one cell of a discrete-value frequency tabulation.
type Frequency struct {
	ID          int64
	SimRunIDFk  int64
	ElementIDFk int32
	Name        string
	CellLabel   string
	Value       int32
	Count       float64
	Proportion  float64
}

// TimeSeriesResponse holds one period observation of a time-series
// response or counter.
type TimeSeriesResponse struct {
	ID           int64
	SimRunIDFk   int64
	ElementIDFk  int32
	ResponseType string
	ResponseName string
	RepNum       int32
	Period       int64
	StartTime    *float64
	EndTime      *float64
	Value        *float64
}
