package campaign

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/logging"
	"github.com/mkhalilov/prospector/go-controller/internal/oracle"
	"github.com/mkhalilov/prospector/go-controller/internal/planner"
)

// #endregion

// #region controller-struct

// Controller drives the multi-fidelity experiment loop: it owns the cost
// budget, the fidelity cadence, the observation ledger, and the convergence
// check, and delegates acquisition decisions to the planner. Execution is
// strictly sequential; the planner holds implicit internal state between
// calls, so calls must never overlap, and the ledger is only updated once a
// full iteration batch has been measured.
type Controller struct {
	config   Config
	planner  planner.Planner
	oracle   oracle.Oracle
	recorder Recorder // optional, may be nil

	obs   *ledger.Ledger
	cost  *ledger.CostLedger
	trace []TraceEntry
	phase Phase
	iter  int
	best  *ledger.Observation
}

// #endregion

// #region constructor

// New validates the configuration and wires a controller. All configuration
// violations surface here as *ConfigError, before any iteration runs.
func New(cfg Config, p planner.Planner, o oracle.Oracle, rec Recorder) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ConfigError{Field: "planner", Reason: "must not be nil"}
	}
	if o == nil {
		return nil, &ConfigError{Field: "oracle", Reason: "must not be nil"}
	}
	return &Controller{
		config:   cfg,
		planner:  p,
		oracle:   o,
		recorder: rec,
		obs:      ledger.NewLedger(),
		cost:     ledger.NewCostLedger(),
		phase:    PhaseInitDesign,
	}, nil
}

// #endregion

// #region accessors

// Phase returns the controller's current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Observations returns the committed observation history.
func (c *Controller) Observations() []ledger.Observation {
	return c.obs.All()
}

// Trace returns the target-recommendation trace.
func (c *Controller) Trace() []TraceEntry {
	out := make([]TraceEntry, len(c.trace))
	copy(out, c.trace)
	return out
}

// TotalCost returns the accumulated measurement cost.
func (c *Controller) TotalCost() float64 {
	return c.cost.Total()
}

// #endregion

// #region run

// Run executes the loop until the budget is exhausted, the convergence
// target is recovered, or a collaborator fails. On error the returned
// Result still reflects the last consistent ledger state: no observation is
// ever committed without its measurement and cost update.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	log.Printf("[CAMPAIGN] start: budget=%g cadence=1/%d fidelities={%g,%g} init_design=%d",
		c.config.Budget, c.config.Cadence.Every, c.config.Cadence.Low, c.config.Cadence.High, c.config.InitDesign)

	for {
		requested := c.config.Cadence.FidelityAt(c.iter)

		// 1. Ask the planner for this iteration's batch.
		batch, err := c.planner.Recommend(ctx, c.obs.All(), requested, c.config.BatchSize)
		if err != nil {
			return c.fail(OutcomeFailed, fmt.Errorf("iteration %d: %w", c.iter, err))
		}
		if len(batch) == 0 {
			return c.fail(OutcomeFailed, fmt.Errorf("iteration %d: %w", c.iter,
				&planner.PlannerError{Op: "recommend", Err: errors.New("planner returned no samples")}))
		}

		// 2. Measure and price the full batch before committing anything,
		// so the planner never observes a partially committed iteration.
		measurements := make([]float64, len(batch))
		units := make([]float64, len(batch))
		for i, sample := range batch {
			m, err := c.oracle.Measure(sample)
			if err != nil {
				return c.fail(OutcomeAborted, fmt.Errorf("iteration %d: %w", c.iter, err))
			}
			measurements[i] = m

			fid, ok := sample.Fidelity()
			if !ok {
				fid = requested
			}
			unit, err := c.config.Costs.Cost(fid)
			if err != nil {
				return c.fail(OutcomeFailed, fmt.Errorf("iteration %d: sample %s: %w", c.iter, sample.Key(), err))
			}
			units[i] = unit
		}

		// 3. Commit the iteration: ledger appends and cost updates together.
		var committed []ledger.Observation
		for i, sample := range batch {
			o := ledger.Observation{Sample: sample, Measurement: measurements[i]}
			c.obs.Append(o)
			if err := c.cost.Add(units[i]); err != nil {
				return c.fail(OutcomeFailed, fmt.Errorf("iteration %d: %w", c.iter, err))
			}
			c.noteBest(o)
			committed = append(committed, o)
			if c.recorder != nil {
				if err := c.recorder.RecordObservation(c.iter, requested, o, units[i], c.cost.Total()); err != nil {
					log.Printf("[CAMPAIGN] failed to record observation: %v", err)
				}
			}
		}
		log.Printf("[CAMPAIGN] iter=%d fidelity=%g committed=%d cost=%g/%g",
			c.iter, requested, len(committed), c.cost.Total(), c.config.Budget)

		// 4. Target-recommendation trace and convergence check.
		converged, err := c.checkConvergence(ctx, committed)
		if err != nil {
			return c.lastFailure(err)
		}

		if c.recorder != nil {
			if err := c.recorder.RecordIteration(c.iterationRecord(requested, committed, units)); err != nil {
				log.Printf("[CAMPAIGN] failed to record iteration: %v", err)
			}
		}

		c.iter++

		// 5. Termination: both are normal outcomes.
		if converged {
			log.Printf("[CAMPAIGN] converged after %d iterations, cost=%g", c.iter, c.cost.Total())
			return c.finish(OutcomeConverged), nil
		}
		if c.cost.Exhausted(c.config.Budget) {
			log.Printf("[CAMPAIGN] budget exhausted after %d iterations, cost=%g", c.iter, c.cost.Total())
			return c.finish(OutcomeBudgetExhausted), nil
		}
	}
}

// #endregion

// #region convergence

// checkConvergence appends this iteration's target-recommendation trace
// entry and reports whether it met the convergence target. Past the
// initial design the entry comes from a dedicated greedy high-fidelity
// recommendation, measured outside the cost ledger; within the initial
// design the last committed observation doubles as the entry, and only a
// high-fidelity observation can validate convergence. If the iteration
// committed nothing, no entry is written.
func (c *Controller) checkConvergence(ctx context.Context, committed []ledger.Observation) (bool, error) {
	if c.obs.Len() > c.config.InitDesign {
		if c.phase != PhaseSteadyState {
			log.Printf("[CAMPAIGN] entering steady state after %d observations", c.obs.Len())
			c.phase = PhaseSteadyState
		}

		greedy, err := c.planner.RecommendTargetFidelity(ctx, c.obs.All(), 1)
		if err != nil {
			return false, fmt.Errorf("iteration %d: %w", c.iter, err)
		}
		if len(greedy) == 0 {
			return false, fmt.Errorf("iteration %d: %w", c.iter,
				&planner.PlannerError{Op: "recommend target fidelity", Err: errors.New("planner returned no samples")})
		}
		m, err := c.oracle.Measure(greedy[0])
		if err != nil {
			return false, fmt.Errorf("iteration %d: greedy probe: %w", c.iter, err)
		}

		entry := TraceEntry{
			Iteration:   c.iter,
			Sample:      greedy[0],
			Measurement: m,
			Converged:   c.config.Target != nil && c.config.Target.Met(m),
		}
		c.appendTrace(entry)
		return entry.Converged, nil
	}

	if len(committed) == 0 {
		return false, nil
	}
	last := committed[len(committed)-1]
	entry := TraceEntry{
		Iteration:   c.iter,
		Sample:      last.Sample,
		Measurement: last.Measurement,
		FromLedger:  true,
	}
	if fid, ok := last.Sample.Fidelity(); ok && fid == c.config.Cadence.High {
		entry.Converged = c.config.Target != nil && c.config.Target.Met(last.Measurement)
	}
	c.appendTrace(entry)
	return entry.Converged, nil
}

func (c *Controller) appendTrace(entry TraceEntry) {
	c.trace = append(c.trace, entry)
	if !entry.FromLedger {
		// Greedy probes are high-fidelity by contract.
		c.noteBest(ledger.Observation{Sample: entry.Sample, Measurement: entry.Measurement})
	}
	if c.recorder != nil {
		if err := c.recorder.RecordTrace(entry); err != nil {
			log.Printf("[CAMPAIGN] failed to record trace entry: %v", err)
		}
	}
}

// #endregion

// #region iteration-record

// iterationRecord assembles the decision-log payload for the iteration that
// just completed: the committed batch, the ledger state, and the greedy
// probe if one ran. Called after checkConvergence so the trace entry for
// this iteration is already in place.
func (c *Controller) iterationRecord(requested float64, committed []ledger.Observation, units []float64) logging.IterationRecord {
	rec := logging.IterationRecord{
		Iteration:         c.iter,
		Phase:             string(c.phase),
		RequestedFidelity: requested,
		HistorySize:       c.obs.Len() - len(committed),
		TotalCost:         c.cost.Total(),
		Budget:            c.config.Budget,
	}
	for i, o := range committed {
		rec.SampleKeys = append(rec.SampleKeys, o.Sample.Key())
		rec.Measurements = append(rec.Measurements, o.Measurement)
		rec.Costs = append(rec.Costs, units[i])
	}
	if n := len(c.trace); n > 0 && c.trace[n-1].Iteration == c.iter {
		last := c.trace[n-1]
		rec.Converged = last.Converged
		if !last.FromLedger {
			rec.ProbeKey = last.Sample.Key()
			rec.ProbeMeasurement = last.Measurement
		}
	}
	return rec
}

// #endregion

// #region best

// noteBest tracks the best high-fidelity measurement seen so far.
func (c *Controller) noteBest(o ledger.Observation) {
	fid, ok := o.Sample.Fidelity()
	if !ok || fid != c.config.Cadence.High {
		return
	}
	if c.best == nil {
		cp := o
		c.best = &cp
		return
	}
	better := o.Measurement < c.best.Measurement
	if c.config.Goal == GoalMaximize {
		better = o.Measurement > c.best.Measurement
	}
	if better {
		cp := o
		c.best = &cp
	}
}

// #endregion

// #region result

func (c *Controller) snapshot(outcome Outcome) Result {
	res := Result{
		Outcome:      outcome,
		Phase:        c.phase,
		Iterations:   c.iter,
		Observations: c.obs.Len(),
		TotalCost:    c.cost.Total(),
	}
	if c.best != nil {
		cp := *c.best
		res.Best = &cp
	}
	return res
}

func (c *Controller) finish(outcome Outcome) Result {
	res := c.snapshot(outcome)
	if c.recorder != nil {
		if err := c.recorder.RecordOutcome(res); err != nil {
			log.Printf("[CAMPAIGN] failed to record outcome: %v", err)
		}
	}
	return res
}

func (c *Controller) fail(outcome Outcome, err error) (Result, error) {
	log.Printf("[CAMPAIGN] %s: %v", outcome, err)
	return c.finish(outcome), err
}

// lastFailure maps a convergence-stage error back to the outcome implied by
// its cause: oracle misses abort, planner failures are fatal.
func (c *Controller) lastFailure(err error) (Result, error) {
	var pe *planner.PlannerError
	if errors.As(err, &pe) {
		return c.fail(OutcomeFailed, err)
	}
	return c.fail(OutcomeAborted, err)
}

// #endregion
