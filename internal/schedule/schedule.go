package schedule

// #region imports
import "fmt"

// #endregion

// #region cadence

// Cadence is the fidelity-selection policy: every Every-th iteration is
// queried at High fidelity, all others at Low. It is a pure function of the
// iteration index, so a crashed campaign can resume from a persisted
// iteration count without replaying the schedule.
type Cadence struct {
	Every int     // high-fidelity interval, >= 1
	Low   float64 // cheap fidelity level
	High  float64 // target fidelity level
}

// DefaultCadence returns the cadence used by the reference campaigns:
// one high-fidelity query for every eight total.
func DefaultCadence() Cadence {
	return Cadence{Every: 8, Low: 0.1, High: 1.0}
}

// #endregion

// #region validate

// Validate checks the cadence invariants. Every == 1 is legal and
// degenerates to single-fidelity optimization at High.
func (c Cadence) Validate() error {
	if c.Every < 1 {
		return fmt.Errorf("cadence interval must be >= 1, got %d", c.Every)
	}
	if c.Low <= 0 || c.High <= 0 {
		return fmt.Errorf("fidelity levels must be positive, got low=%g high=%g", c.Low, c.High)
	}
	if c.Low >= c.High {
		return fmt.Errorf("low fidelity %g must be below high fidelity %g", c.Low, c.High)
	}
	return nil
}

// #endregion

// #region fidelity-at

// IsHigh reports whether iteration i is a high-fidelity iteration.
// i must be non-negative.
func (c Cadence) IsHigh(i int) bool {
	return i%c.Every == 0
}

// FidelityAt returns the fidelity level requested at iteration i.
func (c Cadence) FidelityAt(i int) float64 {
	if c.IsHigh(i) {
		return c.High
	}
	return c.Low
}

// #endregion
