package campaign

// #region imports
import (
	"fmt"

	"github.com/mkhalilov/prospector/go-controller/internal/convergence"
	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/logging"
	"github.com/mkhalilov/prospector/go-controller/internal/param"
	"github.com/mkhalilov/prospector/go-controller/internal/schedule"
)

// #endregion

// #region phase

// Phase is the controller's position in its state machine.
type Phase string

const (
	// PhaseInitDesign covers iterations while the observation count is at
	// or below the configured initial-design size. The planner proposes
	// quasi-random samples in this phase.
	PhaseInitDesign Phase = "init_design"
	// PhaseSteadyState covers surrogate-driven iterations, with a separate
	// greedy target-fidelity recommendation per iteration.
	PhaseSteadyState Phase = "steady_state"
)

// #endregion

// #region outcome

// Outcome labels how a campaign ended.
type Outcome string

const (
	// OutcomeConverged: a greedy target-fidelity recommendation matched the
	// convergence target. Normal termination.
	OutcomeConverged Outcome = "converged"
	// OutcomeBudgetExhausted: accumulated cost reached the budget. Normal
	// termination.
	OutcomeBudgetExhausted Outcome = "budget_exhausted"
	// OutcomeAborted: a sample fell outside the oracle's domain. The ledger
	// retains only fully committed iterations.
	OutcomeAborted Outcome = "aborted"
	// OutcomeFailed: the planner could not produce a recommendation. Fatal.
	OutcomeFailed Outcome = "failed"
)

// #endregion

// #region goal

// Goal is the optimization direction, used for best-so-far reporting.
type Goal string

const (
	GoalMinimize Goal = "minimize"
	GoalMaximize Goal = "maximize"
)

// #endregion

// #region config

// Config holds everything the controller needs to run one campaign.
type Config struct {
	Budget     float64              // total cost budget, > 0
	Cadence    schedule.Cadence     // fidelity-selection policy
	Costs      ledger.CostModel     // unit cost per fidelity level
	InitDesign int                  // initial-design observation count, >= 0
	BatchSize  int                  // samples per Recommend call, >= 1
	Goal       Goal                 // optimization direction
	Target     *convergence.Target  // optional early-termination target
}

// DefaultConfig mirrors the reference campaign: budget 50, one
// high-fidelity query per eight, costs 1 and 10, ten initial-design
// observations, single-sample batches, minimization.
func DefaultConfig() Config {
	return Config{
		Budget:     50,
		Cadence:    schedule.DefaultCadence(),
		Costs:      ledger.DefaultCostModel(),
		InitDesign: 10,
		BatchSize:  1,
		Goal:       GoalMinimize,
	}
}

// Validate checks every configuration invariant before the first iteration.
// All violations surface as *ConfigError.
func (c Config) Validate() error {
	if c.Budget <= 0 {
		return &ConfigError{Field: "budget", Reason: fmt.Sprintf("must be positive, got %g", c.Budget)}
	}
	if err := c.Cadence.Validate(); err != nil {
		return &ConfigError{Field: "cadence", Reason: err.Error()}
	}
	if err := c.Costs.Validate(); err != nil {
		return &ConfigError{Field: "costs", Reason: err.Error()}
	}
	if _, err := c.Costs.Cost(c.Cadence.Low); err != nil {
		return &ConfigError{Field: "costs", Reason: err.Error()}
	}
	if _, err := c.Costs.Cost(c.Cadence.High); err != nil {
		return &ConfigError{Field: "costs", Reason: err.Error()}
	}
	if c.InitDesign < 0 {
		return &ConfigError{Field: "init_design", Reason: fmt.Sprintf("must be non-negative, got %d", c.InitDesign)}
	}
	if c.BatchSize < 1 {
		return &ConfigError{Field: "batch_size", Reason: fmt.Sprintf("must be >= 1, got %d", c.BatchSize)}
	}
	if c.Goal != GoalMinimize && c.Goal != GoalMaximize {
		return &ConfigError{Field: "goal", Reason: fmt.Sprintf("unknown goal %q", c.Goal)}
	}
	if c.Target != nil {
		if err := c.Target.Validate(); err != nil {
			return &ConfigError{Field: "target", Reason: err.Error()}
		}
	}
	return nil
}

// #endregion

// #region config-error

// ConfigError reports an invalid campaign configuration. Raised at
// construction, before any iteration runs.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("campaign config: %s: %s", e.Field, e.Reason)
}

// #endregion

// #region trace-entry

// TraceEntry is one entry in the target-recommendation trace. The trace is
// kept apart from the observation ledger so that greedy convergence probes
// never double-count cost.
type TraceEntry struct {
	Iteration   int
	Sample      param.Assignment
	Measurement float64
	// FromLedger marks initial-design entries, where the just-committed
	// observation doubles as the trace entry instead of a planner call.
	FromLedger bool
	Converged  bool
}

// #endregion

// #region result

// Result summarizes a finished campaign.
type Result struct {
	Outcome      Outcome
	Phase        Phase
	Iterations   int // completed iterations
	Observations int
	TotalCost    float64
	// Best high-fidelity observation seen (ledger or trace), per Goal.
	Best *ledger.Observation
}

// #endregion

// #region recorder

// Recorder receives committed loop events for persistence. Recording
// failures are logged, never fatal: the in-memory ledgers stay
// authoritative for the running campaign.
type Recorder interface {
	RecordObservation(iteration int, requestedFidelity float64, obs ledger.Observation, cost, totalCost float64) error
	RecordIteration(rec logging.IterationRecord) error
	RecordTrace(entry TraceEntry) error
	RecordOutcome(result Result) error
}

// #endregion
