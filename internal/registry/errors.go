package registry

import (
	"errors"
	"fmt"
)

// ErrNoActiveRun indicates AfterReplication or EndExperiment was called
// outside an open BeginExperiment/EndExperiment lifecycle.
var ErrNoActiveRun = errors.New("registry: no active simulation run")

// DuplicateExperimentError indicates a non-chunked experiment was
// submitted under a name that already has persisted data. This is a user
// error: the existing data must be deleted (see the cascade orchestrator)
// before the name can be reused.
type DuplicateExperimentError struct {
	// ExpName is the conflicting experiment name.
	ExpName string

	// SimName is the simulation that owns the existing experiment.
	SimName string
}

// Error implements the error interface.
func (e *DuplicateExperimentError) Error() string {
	return fmt.Sprintf("experiment %q already exists for simulation %q: delete its data or submit as a chunked run",
		e.ExpName, e.SimName)
}
