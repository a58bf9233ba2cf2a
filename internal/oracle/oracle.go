package oracle

// #region imports
import (
	"fmt"

	"github.com/mkhalilov/prospector/go-controller/internal/param"
)

// #endregion

// #region oracle-interface

// Oracle returns the measurement for a parameter assignment. Implementations
// are deterministic lookups: the same assignment always yields the same
// measurement, and assignments outside the known domain fail with
// *LookupError.
type Oracle interface {
	Measure(sample param.Assignment) (float64, error)
}

// #endregion

// #region lookup-error

// LookupError reports a sample outside the oracle's known domain.
// No measurement exists for it, so the requesting iteration cannot commit.
type LookupError struct {
	Key string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("oracle: no measurement for %q", e.Key)
}

// #endregion
