package records

import "github.com/desimtools/simdb/internal/schema"

// Foreign-key column names shared by the dependent tables.
const (
	ColExpIDFk    = "exp_id_fk"
	ColSimRunIDFk = "sim_run_id_fk"
)

// Experiments maps Experiment to the experiment table.
var Experiments = schema.Must(schema.New[Experiment]("experiment").
	AutoKey("exp_id", func(r *Experiment) any { return r.ExpID }).
	Column("sim_name", schema.String, func(r *Experiment) any { return r.SimName }).
	Column("model_name", schema.String, func(r *Experiment) any { return r.ModelName }).
	Column("exp_name", schema.String, func(r *Experiment) any { return r.ExpName }).
	Column("num_reps", schema.Int32, func(r *Experiment) any { return r.NumReps }).
	Column("num_chunks", schema.Int32, func(r *Experiment) any { return r.NumChunks }).
	Nullable("length_of_rep", schema.Double, func(r *Experiment) any { return r.LengthOfRep }).
	Nullable("length_of_warmup", schema.Double, func(r *Experiment) any { return r.LengthOfWarmup }).
	Column("rep_init_option", schema.Boolean, func(r *Experiment) any { return r.RepInitOption }).
	Column("antithetic_option", schema.Boolean, func(r *Experiment) any { return r.Antithetic }).
	Build())

// SimulationRuns maps SimulationRun to the simulation_run table.
var SimulationRuns = schema.Must(schema.New[SimulationRun]("simulation_run").
	AutoKey("run_id", func(r *SimulationRun) any { return r.RunID }).
	Column(ColExpIDFk, schema.Int64, func(r *SimulationRun) any { return r.ExpIDFk }).
	Column("run_name", schema.String, func(r *SimulationRun) any { return r.RunName }).
	Column("num_reps", schema.Int32, func(r *SimulationRun) any { return r.NumReps }).
	Column("start_rep_id", schema.Int32, func(r *SimulationRun) any { return r.StartRepID }).
	Nullable("last_rep_id", schema.Int32, func(r *SimulationRun) any { return r.LastRepID }).
	Nullable("run_start_time_stamp", schema.Timestamp, func(r *SimulationRun) any { return r.RunStartTimeStamp }).
	Nullable("run_end_time_stamp", schema.Timestamp, func(r *SimulationRun) any { return r.RunEndTimeStamp }).
	Nullable("run_error_msg", schema.String, func(r *SimulationRun) any { return r.RunErrorMsg }).
	Build())

// ModelElements maps ModelElement to the model_element table. The composite
// key exercises the multi-key update/where path.
var ModelElements = schema.Must(schema.New[ModelElement]("model_element").
	Key(ColExpIDFk, schema.Int64, func(r *ModelElement) any { return r.ExpIDFk }).
	Key("element_id", schema.Int32, func(r *ModelElement) any { return r.ElementID }).
	Column("element_name", schema.String, func(r *ModelElement) any { return r.ElementName }).
	Column("class_name", schema.String, func(r *ModelElement) any { return r.ClassName }).
	Nullable("parent_id_fk", schema.Int32, func(r *ModelElement) any { return r.ParentIDFk }).
	Nullable("parent_name", schema.String, func(r *ModelElement) any { return r.ParentName }).
	Column("left_count", schema.Int32, func(r *ModelElement) any { return r.LeftCount }).
	Column("right_count", schema.Int32, func(r *ModelElement) any { return r.RightCount }).
	Build())

// Controls maps Control to the control table.
var Controls = schema.Must(schema.New[Control]("control").
	AutoKey("control_id", func(r *Control) any { return r.ControlID }).
	Column(ColExpIDFk, schema.Int64, func(r *Control) any { return r.ExpIDFk }).
	Column("element_id_fk", schema.Int32, func(r *Control) any { return r.ElementIDFk }).
	Column("key_name", schema.String, func(r *Control) any { return r.KeyName }).
	Nullable("control_value", schema.Double, func(r *Control) any { return r.ControlValue }).
	Nullable("lower_bound", schema.Double, func(r *Control) any { return r.LowerBound }).
	Nullable("upper_bound", schema.Double, func(r *Control) any { return r.UpperBound }).
	Nullable("comment", schema.String, func(r *Control) any { return r.Comment }).
	Build())

// RvParameters maps RvParameter to the rv_parameter table.
var RvParameters = schema.Must(schema.New[RvParameter]("rv_parameter").
	AutoKey("rv_param_id", func(r *RvParameter) any { return r.RvParamID }).
	Column(ColExpIDFk, schema.Int64, func(r *RvParameter) any { return r.ExpIDFk }).
	Column("element_id_fk", schema.Int32, func(r *RvParameter) any { return r.ElementIDFk }).
	Column("class_name", schema.String, func(r *RvParameter) any { return r.ClassName }).
	Column("data_type", schema.String, func(r *RvParameter) any { return r.DataType }).
	Column("rv_name", schema.String, func(r *RvParameter) any { return r.RvName }).
	Column("param_name", schema.String, func(r *RvParameter) any { return r.ParamName }).
	Column("param_value", schema.Double, func(r *RvParameter) any { return r.ParamValue }).
	Build())

// WithinRepStats maps WithinRepStat to the within_rep_stat table.
var WithinRepStats = schema.Must(schema.New[WithinRepStat]("within_rep_stat").
	AutoKey("id", func(r *WithinRepStat) any { return r.ID }).
	Column(ColSimRunIDFk, schema.Int64, func(r *WithinRepStat) any { return r.SimRunIDFk }).
	Column("element_id_fk", schema.Int32, func(r *WithinRepStat) any { return r.ElementIDFk }).
	Column("stat_name", schema.String, func(r *WithinRepStat) any { return r.StatName }).
	Column("rep_id", schema.Int32, func(r *WithinRepStat) any { return r.RepID }).
	Nullable("stat_count", schema.Double, func(r *WithinRepStat) any { return r.StatCount }).
	Nullable("average", schema.Double, func(r *WithinRepStat) any { return r.Average }).
	Nullable("minimum", schema.Double, func(r *WithinRepStat) any { return r.Minimum }).
	Nullable("maximum", schema.Double, func(r *WithinRepStat) any { return r.Maximum }).
	Nullable("weighted_sum", schema.Double, func(r *WithinRepStat) any { return r.WeightedSum }).
	Nullable("sum_of_weights", schema.Double, func(r *WithinRepStat) any { return r.SumOfWeights }).
	Nullable("last_value", schema.Double, func(r *WithinRepStat) any { return r.LastValue }).
	Nullable("last_weight", schema.Double, func(r *WithinRepStat) any { return r.LastWeight }).
	Build())

// WithinRepCounterStats maps WithinRepCounterStat to the
// within_rep_counter_stat table.
var WithinRepCounterStats = schema.Must(schema.New[WithinRepCounterStat]("within_rep_counter_stat").
	AutoKey("id", func(r *WithinRepCounterStat) any { return r.ID }).
	Column(ColSimRunIDFk, schema.Int64, func(r *WithinRepCounterStat) any { return r.SimRunIDFk }).
	Column("element_id_fk", schema.Int32, func(r *WithinRepCounterStat) any { return r.ElementIDFk }).
	Column("counter_name", schema.String, func(r *WithinRepCounterStat) any { return r.CounterName }).
	Column("rep_id", schema.Int32, func(r *WithinRepCounterStat) any { return r.RepID }).
	Nullable("last_value", schema.Double, func(r *WithinRepCounterStat) any { return r.LastValue }).
	Build())

// AcrossRepStats maps AcrossRepStat to the across_rep_stat table.
var AcrossRepStats = schema.Must(schema.New[AcrossRepStat]("across_rep_stat").
	AutoKey("id", func(r *AcrossRepStat) any { return r.ID }).
	Column(ColSimRunIDFk, schema.Int64, func(r *AcrossRepStat) any { return r.SimRunIDFk }).
	Column("element_id_fk", schema.Int32, func(r *AcrossRepStat) any { return r.ElementIDFk }).
	Column("stat_name", schema.String, func(r *AcrossRepStat) any { return r.StatName }).
	Nullable("stat_count", schema.Double, func(r *AcrossRepStat) any { return r.StatCount }).
	Nullable("average", schema.Double, func(r *AcrossRepStat) any { return r.Average }).
	Nullable("std_dev", schema.Double, func(r *AcrossRepStat) any { return r.StdDev }).
	Nullable("std_error", schema.Double, func(r *AcrossRepStat) any { return r.StdError }).
	Nullable("half_width", schema.Double, func(r *AcrossRepStat) any { return r.HalfWidth }).
	Nullable("conf_level", schema.Double, func(r *AcrossRepStat) any { return r.ConfLevel }).
	Nullable("minimum", schema.Double, func(r *AcrossRepStat) any { return r.Minimum }).
	Nullable("maximum", schema.Double, func(r *AcrossRepStat) any { return r.Maximum }).
	Nullable("sum_of_obs", schema.Double, func(r *AcrossRepStat) any { return r.SumOfObs }).
	Nullable("dev_ssq", schema.Double, func(r *AcrossRepStat) any { return r.DevSsq }).
	Nullable("lag1_corr", schema.Double, func(r *AcrossRepStat) any { return r.Lag1Corr }).
	Build())

// BatchStats maps BatchStat to the batch_stat table.
var BatchStats = schema.Must(schema.New[BatchStat]("batch_stat").
	AutoKey("id", func(r *BatchStat) any { return r.ID }).
	Column(ColSimRunIDFk, schema.Int64, func(r *BatchStat) any { return r.SimRunIDFk }).
	Column("element_id_fk", schema.Int32, func(r *BatchStat) any { return r.ElementIDFk }).
	Column("stat_name", schema.String, func(r *BatchStat) any { return r.StatName }).
	Column("rep_id", schema.Int32, func(r *BatchStat) any { return r.RepID }).
	Nullable("stat_count", schema.Double, func(r *BatchStat) any { return r.StatCount }).
	Nullable("average", schema.Double, func(r *BatchStat) any { return r.Average }).
	Nullable("std_dev", schema.Double, func(r *BatchStat) any { return r.StdDev }).
	Nullable("half_width", schema.Double, func(r *BatchStat) any { return r.HalfWidth }).
	Nullable("minimum", schema.Double, func(r *BatchStat) any { return r.Minimum }).
	Nullable("maximum", schema.Double, func(r *BatchStat) any { return r.Maximum }).
	Nullable("total_num_obs", schema.Double, func(r *BatchStat) any { return r.TotalNumObs }).
	Nullable("rejected_count", schema.Double, func(r *BatchStat) any { return r.RejectedCount }).
	Build())

// Histograms maps Histogram to the histogram table.
var Histograms = schema.Must(schema.New[Histogram]("histogram").
	AutoKey("id", func(r *Histogram) any { return r.ID }).
	Column(ColSimRunIDFk, schema.Int64, func(r *Histogram) any { return r.SimRunIDFk }).
	Column("response_name", schema.String, func(r *Histogram) any { return r.ResponseName }).
	Column("bin_num", schema.Int32, func(r *Histogram) any { return r.BinNum }).
	Column("bin_label", schema.String, func(r *Histogram) any { return r.BinLabel }).
	Nullable("bin_lower_limit", schema.Double, func(r *Histogram) any { return r.BinLowerLimit }).
	Nullable("bin_upper_limit", schema.Double, func(r *Histogram) any { return r.BinUpperLimit }).
	Nullable("bin_count", schema.Double, func(r *Histogram) any { return r.BinCount }).
	Nullable("cum_count", schema.Double, func(r *Histogram) any { return r.CumCount }).
	Nullable("proportion", schema.Double, func(r *Histogram) any { return r.Proportion }).
	Nullable("cum_proportion", schema.Double, func(r *Histogram) any { return r.CumProportion }).
	Build())

// Frequencies maps Frequency to the frequency table.
var Frequencies = schema.Must(schema.New[Frequency]("frequency").
	AutoKey("id", func(r *Frequency) any { return r.ID }).
	Column(ColSimRunIDFk, schema.Int64, func(r *Frequency) any { return r.SimRunIDFk }).
	Column("element_id_fk", schema.Int32, func(r *Frequency) any { return r.ElementIDFk }).
	Column("name", schema.String, func(r *Frequency) any { return r.Name }).
	Column("cell_label", schema.String, func(r *Frequency) any { return r.CellLabel }).
	Column("value", schema.Int32, func(r *Frequency) any { return r.Value }).
	Column("count", schema.Double, func(r *Frequency) any { return r.Count }).
	Column("proportion", schema.Double, func(r *Frequency) any { return r.Proportion }).
	Build())

// TimeSeriesResponses maps TimeSeriesResponse to the time_series_response
// table.
var TimeSeriesResponses = schema.Must(schema.New[TimeSeriesResponse]("time_series_response").
	AutoKey("id", func(r *TimeSeriesResponse) any { return r.ID }).
	Column(ColSimRunIDFk, schema.Int64, func(r *TimeSeriesResponse) any { return r.SimRunIDFk }).
	Column("element_id_fk", schema.Int32, func(r *TimeSeriesResponse) any { return r.ElementIDFk }).
	Column("response_type", schema.String, func(r *TimeSeriesResponse) any { return r.ResponseType }).
	Column("response_name", schema.String, func(r *TimeSeriesResponse) any { return r.ResponseName }).
	Column("rep_num", schema.Int32, func(r *TimeSeriesResponse) any { return r.RepNum }).
	Column("period", schema.Int64, func(r *TimeSeriesResponse) any { return r.Period }).
	Nullable("start_time", schema.Double, func(r *TimeSeriesResponse) any { return r.StartTime }).
	Nullable("end_time", schema.Double, func(r *TimeSeriesResponse) any { return r.EndTime }).
	Nullable("value", schema.Double, func(r *TimeSeriesResponse) any { return r.Value }).
	Build())

// Tables returns every table descriptor in parent-before-child order:
// experiment first, then its direct dependents, then the run-scoped
// statistics tables. Reversing this order yields a safe bulk-delete order.
func Tables() []schema.Table {
	return []schema.Table{
		Experiments,
		SimulationRuns,
		ModelElements,
		Controls,
		RvParameters,
		WithinRepStats,
		WithinRepCounterStats,
		AcrossRepStats,
		BatchStats,
		Histograms,
		Frequencies,
		TimeSeriesResponses,
	}
}

// RunScoped returns the leaf tables keyed by sim_run_id_fk. The cascade
// orchestrator deletes these first, per run.
func RunScoped() []schema.Table {
	return []schema.Table{
		AcrossRepStats,
		WithinRepStats,
		BatchStats,
		WithinRepCounterStats,
		Frequencies,
		Histograms,
		TimeSeriesResponses,
	}
}

// ExperimentScoped returns the snapshot tables keyed by exp_id_fk,
// excluding simulation_run. Deleted after the run-scoped tables and the
// runs themselves, before the experiment row.
func ExperimentScoped() []schema.Table {
	return []schema.Table{
		Controls,
		RvParameters,
		ModelElements,
	}
}
