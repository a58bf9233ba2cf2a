package convergence

// #region imports
import (
	"fmt"
	"math"
)

// #endregion

// #region target

// Target is an optional known-optimal measurement. When a greedy
// target-fidelity recommendation matches it within Tolerance, the campaign
// terminates early. Tolerance 0 keeps exact floating-point equality, which
// is what lookup-table campaigns use: the recovered optimum is the very
// float stored in the table.
type Target struct {
	Value     float64
	Tolerance float64
}

// Validate rejects negative tolerances.
func (t Target) Validate() error {
	if t.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %g", t.Tolerance)
	}
	return nil
}

// Met reports whether a measurement matches the target.
func (t Target) Met(measurement float64) bool {
	return math.Abs(measurement-t.Value) <= t.Tolerance
}

// #endregion
