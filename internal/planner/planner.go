package planner

// #region imports
import (
	"context"
	"fmt"

	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/param"
)

// #endregion

// #region planner-interface

// Planner is the narrow contract of the external experiment planner.
// Given identical history (and a random seed fixed at construction time on
// the service side), recommendations are deterministic. The planner holds
// implicit internal state between calls, so calls must not overlap.
// A successful call always carries at least one sample; an empty
// recommendation is reported as an error, never as an empty slice.
type Planner interface {
	// Recommend proposes a batch of samples to measure at the requested
	// fidelity, conditioned on the full observation history.
	Recommend(ctx context.Context, history []ledger.Observation, fidelity float64, batchSize int) ([]param.Assignment, error)

	// RecommendTargetFidelity proposes the planner's greedy best guess at
	// the highest configured fidelity, ignoring the fidelity cadence.
	RecommendTargetFidelity(ctx context.Context, history []ledger.Observation, batchSize int) ([]param.Assignment, error)
}

// #endregion

// #region planner-error

// PlannerError reports that the planner could not produce a valid
// recommendation. It is fatal to the experiment loop: the planner is
// deterministic, so retrying the same request cannot succeed.
type PlannerError struct {
	Op  string
	Err error
}

func (e *PlannerError) Error() string {
	return fmt.Sprintf("planner: %s: %v", e.Op, e.Err)
}

func (e *PlannerError) Unwrap() error {
	return e.Err
}

// #endregion
