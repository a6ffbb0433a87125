// Package registry implements the experiment/run registration protocol.
//
// The registry is driven by a simulation engine through a strictly
// sequential lifecycle per experiment:
//
//	BeginExperiment -> AfterReplication (zero or more) -> EndExperiment
//
// BeginExperiment distinguishes three cases by experiment name:
//   - unknown name: a new experiment row, its first simulation run, and
//     the experiment-scoped snapshots (model elements, controls, random
//     variable parameters) are persisted
//   - known name, chunked submission: the experiment row is reused, a
//     prior run with the same run name is deleted (idempotent chunk
//     re-submission), and a fresh run row is created; snapshots are not
//     re-inserted
//   - known name, not chunked: the call fails with a
//     *DuplicateExperimentError so an earlier experiment's data is never
//     silently overwritten or duplicated
//
// The registry assumes one in-flight lifecycle at a time per database
// handle. Concurrent BeginExperiment calls for the same name race on the
// existence check; the registry does not resolve that race.
package registry
