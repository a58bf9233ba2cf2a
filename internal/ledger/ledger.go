package ledger

// #region imports
import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mkhalilov/prospector/go-controller/internal/param"
)

// #endregion

// #region observation

// Observation is one committed (sample, measurement) pair.
type Observation struct {
	Sample      param.Assignment
	Measurement float64
}

// #endregion

// #region observation-ledger

// Ledger is the append-only, chronological record of observations. The
// planner conditions on the full ledger on every recommendation call, so
// entries are never mutated or removed.
type Ledger struct {
	obs []Observation
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records an observation.
func (l *Ledger) Append(o Observation) {
	l.obs = append(l.obs, o)
}

// Len returns the number of committed observations.
func (l *Ledger) Len() int {
	return len(l.obs)
}

// Last returns the most recent observation.
func (l *Ledger) Last() (Observation, bool) {
	if len(l.obs) == 0 {
		return Observation{}, false
	}
	return l.obs[len(l.obs)-1], true
}

// All returns the full history in chronological order. The returned slice
// is a copy; entries themselves are immutable values.
func (l *Ledger) All() []Observation {
	out := make([]Observation, len(l.obs))
	copy(out, l.obs)
	return out
}

// #endregion

// #region cost-model

// CostModel maps each fidelity level to the unit cost of one measurement
// at that level. Costs are configuration, never hardcoded in the loop.
type CostModel struct {
	PerFidelity map[float64]float64
}

// DefaultCostModel prices the reference fidelity levels: a low-fidelity
// query costs 1 unit, a high-fidelity query 10.
func DefaultCostModel() CostModel {
	return CostModel{PerFidelity: map[float64]float64{0.1: 1, 1.0: 10}}
}

// Validate checks that at least one fidelity is priced and all costs are
// strictly positive. Zero-cost queries would let the loop run unboundedly.
func (m CostModel) Validate() error {
	if len(m.PerFidelity) == 0 {
		return fmt.Errorf("cost model has no fidelity levels")
	}
	for fid, cost := range m.PerFidelity {
		if cost <= 0 {
			return fmt.Errorf("cost for fidelity %g must be positive, got %g", fid, cost)
		}
	}
	return nil
}

// Cost returns the unit cost of a measurement at the given fidelity.
func (m CostModel) Cost(fidelity float64) (float64, error) {
	cost, ok := m.PerFidelity[fidelity]
	if !ok {
		return 0, fmt.Errorf("no cost configured for fidelity %g", fidelity)
	}
	return cost, nil
}

// MarshalJSON encodes the fidelity keys as canonical decimal strings, since
// JSON objects cannot carry float keys.
func (m CostModel) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64, len(m.PerFidelity))
	for fid, cost := range m.PerFidelity {
		out[strconv.FormatFloat(fid, 'g', -1, 64)] = cost
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (m *CostModel) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.PerFidelity = make(map[float64]float64, len(raw))
	for key, cost := range raw {
		fid, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return fmt.Errorf("cost model key %q: %w", key, err)
		}
		m.PerFidelity[fid] = cost
	}
	return nil
}

// #endregion

// #region cost-ledger

// CostLedger tracks accumulated measurement cost. The total is
// monotonically non-decreasing and never negative.
type CostLedger struct {
	total float64
}

// NewCostLedger returns a zeroed cost ledger.
func NewCostLedger() *CostLedger {
	return &CostLedger{}
}

// Add accumulates the cost of one measurement. Negative costs are rejected
// to preserve monotonicity.
func (c *CostLedger) Add(cost float64) error {
	if cost < 0 {
		return fmt.Errorf("cost must be non-negative, got %g", cost)
	}
	c.total += cost
	return nil
}

// Total returns the accumulated cost.
func (c *CostLedger) Total() float64 {
	return c.total
}

// Exhausted reports whether the accumulated cost has reached the budget.
func (c *CostLedger) Exhausted(budget float64) bool {
	return c.total >= budget
}

// #endregion
