package campaign

import (
	"context"
	"errors"
	"testing"

	"github.com/mkhalilov/prospector/go-controller/internal/convergence"
	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/logging"
	"github.com/mkhalilov/prospector/go-controller/internal/oracle"
	"github.com/mkhalilov/prospector/go-controller/internal/param"
	"github.com/mkhalilov/prospector/go-controller/internal/planner"
	"github.com/mkhalilov/prospector/go-controller/internal/schedule"
)

// #region stubs

// genPlanner fabricates deterministic samples: exploration samples walk x
// upward, greedy probes walk a separate counter. It mimics the external
// planner's contract without any surrogate machinery.
type genPlanner struct {
	cadence schedule.Cadence

	calls       int
	targetCalls int
	historyLens []int

	err       error
	errAtCall int // fail the errAtCall-th Recommend (1-based) with err
}

func (p *genPlanner) Recommend(_ context.Context, history []ledger.Observation, fidelity float64, batchSize int) ([]param.Assignment, error) {
	p.calls++
	p.historyLens = append(p.historyLens, len(history))
	if p.err != nil && p.calls >= p.errAtCall {
		return nil, &planner.PlannerError{Op: "recommend", Err: p.err}
	}
	batch := make([]param.Assignment, batchSize)
	for i := range batch {
		x := float64(p.calls*100 + i)
		batch[i] = param.NewAssignment(map[string]float64{"x": x, "s": fidelity}, nil)
	}
	return batch, nil
}

func (p *genPlanner) RecommendTargetFidelity(_ context.Context, history []ledger.Observation, batchSize int) ([]param.Assignment, error) {
	p.targetCalls++
	x := float64(100000 + p.targetCalls)
	return []param.Assignment{
		param.NewAssignment(map[string]float64{"x": x, "s": p.cadence.High}, nil),
	}, nil
}

// funcOracle computes measurements from the sample, with optional per-key
// overrides and misses.
type funcOracle struct {
	f        func(param.Assignment) float64
	override map[string]float64
	missKeys map[string]bool
}

func (o *funcOracle) Measure(sample param.Assignment) (float64, error) {
	key := sample.Key()
	if o.missKeys[key] {
		return 0, &oracle.LookupError{Key: key}
	}
	if m, ok := o.override[key]; ok {
		return m, nil
	}
	return o.f(sample), nil
}

func constOracle(v float64) *funcOracle {
	return &funcOracle{f: func(param.Assignment) float64 { return v }}
}

// captureRecorder stores everything recorded for assertions.
type captureRecorder struct {
	observations []recordedObs
	iterations   []logging.IterationRecord
	trace        []TraceEntry
	outcomes     []Result
}

type recordedObs struct {
	iteration int
	fidelity  float64
	obs       ledger.Observation
	cost      float64
	total     float64
}

func (r *captureRecorder) RecordObservation(iter int, fid float64, obs ledger.Observation, cost, total float64) error {
	r.observations = append(r.observations, recordedObs{iter, fid, obs, cost, total})
	return nil
}

func (r *captureRecorder) RecordIteration(rec logging.IterationRecord) error {
	r.iterations = append(r.iterations, rec)
	return nil
}

func (r *captureRecorder) RecordTrace(entry TraceEntry) error {
	r.trace = append(r.trace, entry)
	return nil
}

func (r *captureRecorder) RecordOutcome(res Result) error {
	r.outcomes = append(r.outcomes, res)
	return nil
}

// #endregion stubs

// #region config-tests

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero-budget", func(c *Config) { c.Budget = 0 }},
		{"negative-budget", func(c *Config) { c.Budget = -10 }},
		{"zero-cadence", func(c *Config) { c.Cadence.Every = 0 }},
		{"empty-cost-model", func(c *Config) { c.Costs = ledger.CostModel{} }},
		{"unpriced-fidelity", func(c *Config) { c.Cadence.Low = 0.5 }},
		{"negative-init-design", func(c *Config) { c.InitDesign = -1 }},
		{"zero-batch", func(c *Config) { c.BatchSize = 0 }},
		{"bad-goal", func(c *Config) { c.Goal = "sideways" }},
		{"negative-tolerance", func(c *Config) { c.Target = &convergence.Target{Value: 1, Tolerance: -1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, &genPlanner{cadence: cfg.Cadence}, constOracle(1), nil)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
		})
	}
}

func TestNewRejectsNilCollaborators(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := New(cfg, nil, constOracle(1), nil); err == nil {
		t.Fatal("expected error for nil planner")
	}
	if _, err := New(cfg, &genPlanner{cadence: cfg.Cadence}, nil, nil); err == nil {
		t.Fatal("expected error for nil oracle")
	}
}

// #endregion config-tests

// #region budget-scenario

// Reference scenario: budget=50, cadence k=8, low cost 1, high cost 10,
// init design 10. Iteration 0 is high fidelity (ledger=10), iterations 1-7
// low (ledger=17 after iteration 7), iteration 8 high again.
func TestBudgetScenario(t *testing.T) {
	cfg := DefaultConfig()
	p := &genPlanner{cadence: cfg.Cadence}
	rec := &captureRecorder{}

	ctrl, err := New(cfg, p, constOracle(2.0), rec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := ctrl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Outcome != OutcomeBudgetExhausted {
		t.Fatalf("outcome %q, want %q", res.Outcome, OutcomeBudgetExhausted)
	}

	// Cadence and cost accounting.
	want := []struct {
		iter  int
		fid   float64
		cost  float64
		total float64
	}{
		{0, 1.0, 10, 10},
		{1, 0.1, 1, 11},
		{7, 0.1, 1, 17},
		{8, 1.0, 10, 27},
	}
	for _, w := range want {
		got := rec.observations[w.iter]
		if got.iteration != w.iter || got.fidelity != w.fid || got.cost != w.cost || got.total != w.total {
			t.Fatalf("observation %d = {iter=%d fid=%g cost=%g total=%g}, want %+v",
				w.iter, got.iteration, got.fidelity, got.cost, got.total, w)
		}
	}

	// Exact run shape: cost crosses 50 after iteration 22.
	if res.Iterations != 23 {
		t.Fatalf("iterations %d, want 23", res.Iterations)
	}
	if res.TotalCost != 50 {
		t.Fatalf("total cost %g, want 50", res.TotalCost)
	}
	if res.Observations != 23 {
		t.Fatalf("observations %d, want 23", res.Observations)
	}

	// Monotone, non-negative cost curve.
	prev := 0.0
	for i, o := range rec.observations {
		if o.total < prev || o.total < 0 {
			t.Fatalf("cost curve not monotone at %d: %g -> %g", i, prev, o.total)
		}
		prev = o.total
	}

	// Phase transition after the observation count passes the initial
	// design, and one greedy probe per steady-state iteration.
	if res.Phase != PhaseSteadyState {
		t.Fatalf("final phase %q, want %q", res.Phase, PhaseSteadyState)
	}
	if p.targetCalls != 23-10 {
		t.Fatalf("greedy probes %d, want 13", p.targetCalls)
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0].Outcome != OutcomeBudgetExhausted {
		t.Fatalf("recorded outcomes %+v", rec.outcomes)
	}

	// One iteration record per completed iteration, carrying the committed
	// batch, the ledger state, and the probe once steady state begins.
	if len(rec.iterations) != 23 {
		t.Fatalf("iteration records %d, want 23", len(rec.iterations))
	}
	first := rec.iterations[0]
	if first.Iteration != 0 || first.RequestedFidelity != 1.0 || first.HistorySize != 0 ||
		first.TotalCost != 10 || len(first.SampleKeys) != 1 || first.Costs[0] != 10 {
		t.Fatalf("iteration record 0 = %+v", first)
	}
	if first.ProbeKey != "" || first.Phase != string(PhaseInitDesign) {
		t.Fatalf("initial-design record should have no probe: %+v", first)
	}
	steady := rec.iterations[12]
	if steady.Phase != string(PhaseSteadyState) || steady.ProbeKey == "" {
		t.Fatalf("steady-state record missing probe: %+v", steady)
	}
	if steady.HistorySize != 12 {
		t.Fatalf("record 12 history size %d, want 12", steady.HistorySize)
	}
}

// Greedy probes never touch the cost ledger.
func TestGreedyProbesAreFree(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitDesign = 0 // steady state from the first iteration
	cfg.Budget = 12
	p := &genPlanner{cadence: cfg.Cadence}

	ctrl, _ := New(cfg, p, constOracle(2.0), nil)
	res, err := ctrl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// iter 0 high (10), iter 1 low (11), iter 2 low (12) -> exhausted.
	if res.TotalCost != 12 || res.Iterations != 3 {
		t.Fatalf("cost=%g iterations=%d, want cost=12 iterations=3", res.TotalCost, res.Iterations)
	}
	if p.targetCalls != 3 {
		t.Fatalf("greedy probes %d, want 3", p.targetCalls)
	}
}

// #endregion budget-scenario

// #region convergence-tests

func TestConvergenceTerminatesRegardlessOfBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget = 1e9
	cfg.InitDesign = 2
	cfg.Target = &convergence.Target{Value: 0.8}

	p := &genPlanner{cadence: cfg.Cadence}
	// Every exploration sample measures 2.0; the second greedy probe hits
	// the known optimum exactly.
	probe2 := param.NewAssignment(map[string]float64{"x": 100002, "s": 1.0}, nil)
	o := constOracle(2.0)
	o.override = map[string]float64{probe2.Key(): 0.8}

	ctrl, _ := New(cfg, p, o, nil)
	res, err := ctrl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Outcome != OutcomeConverged {
		t.Fatalf("outcome %q, want %q", res.Outcome, OutcomeConverged)
	}
	if res.TotalCost >= cfg.Budget {
		t.Fatalf("converged run should not exhaust budget, cost=%g", res.TotalCost)
	}
	// Probes start at iteration 2 (3rd observation crosses init design);
	// the second probe converges during iteration 3.
	if res.Iterations != 4 {
		t.Fatalf("iterations %d, want 4", res.Iterations)
	}

	trace := ctrl.Trace()
	lastEntry := trace[len(trace)-1]
	if !lastEntry.Converged || lastEntry.FromLedger {
		t.Fatalf("last trace entry %+v, want converged greedy probe", lastEntry)
	}
}

func TestInitDesignHighFidelityCanConverge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Target = &convergence.Target{Value: 0.8}

	// Iteration 0 is high fidelity and its measurement matches the target
	// exactly, so the campaign converges inside the initial design.
	p := &genPlanner{cadence: cfg.Cadence}
	ctrl, _ := New(cfg, p, constOracle(0.8), nil)
	res, err := ctrl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Outcome != OutcomeConverged || res.Iterations != 1 {
		t.Fatalf("got outcome=%q iterations=%d, want converged after 1", res.Outcome, res.Iterations)
	}
	trace := ctrl.Trace()
	if len(trace) != 1 || !trace[0].FromLedger || !trace[0].Converged {
		t.Fatalf("trace %+v, want one converged from-ledger entry", trace)
	}
	if p.targetCalls != 0 {
		t.Fatalf("no greedy probe expected in initial design, got %d", p.targetCalls)
	}
}

func TestInitDesignLowFidelityCannotConverge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget = 15
	cfg.Target = &convergence.Target{Value: 0.8}
	cfg.Cadence = schedule.Cadence{Every: 100, Low: 0.1, High: 1.0}
	cfg.Costs = ledger.CostModel{PerFidelity: map[float64]float64{0.1: 1, 1.0: 10}}

	// All measurements equal the target, but iterations 1.. are low
	// fidelity: a low-fidelity sample cannot validate convergence at the
	// target fidelity. Iteration 0 is high fidelity and converges, so skip
	// it by checking iteration 1 onward via a non-matching first probe.
	p := &genPlanner{cadence: cfg.Cadence}
	o := constOracle(0.8)
	first := param.NewAssignment(map[string]float64{"x": 100, "s": 1.0}, nil)
	o.override = map[string]float64{first.Key(): 2.0}

	ctrl, _ := New(cfg, p, o, nil)
	res, err := ctrl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Low-fidelity matches never converge; the run exhausts its budget.
	if res.Outcome != OutcomeBudgetExhausted {
		t.Fatalf("outcome %q, want %q", res.Outcome, OutcomeBudgetExhausted)
	}
	for _, entry := range ctrl.Trace() {
		if entry.Converged {
			t.Fatalf("low-fidelity trace entry marked converged: %+v", entry)
		}
	}
}

func TestToleranceConvergence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitDesign = 0
	cfg.Target = &convergence.Target{Value: 0.8, Tolerance: 0.05}

	p := &genPlanner{cadence: cfg.Cadence}
	ctrl, _ := New(cfg, p, constOracle(0.83), nil)
	res, err := ctrl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Outcome != OutcomeConverged {
		t.Fatalf("outcome %q, want converged within tolerance", res.Outcome)
	}
}

// #endregion convergence-tests

// #region failure-tests

func TestOracleMissAbortsWithCommittedLedger(t *testing.T) {
	cfg := DefaultConfig()
	p := &genPlanner{cadence: cfg.Cadence}

	// The 4th exploration sample is outside the oracle's domain.
	miss := param.NewAssignment(map[string]float64{"x": 400, "s": 0.1}, nil)
	o := constOracle(2.0)
	o.missKeys = map[string]bool{miss.Key(): true}

	rec := &captureRecorder{}
	ctrl, _ := New(cfg, p, o, rec)
	res, err := ctrl.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from oracle miss")
	}
	var le *oracle.LookupError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LookupError, got %T: %v", err, err)
	}

	if res.Outcome != OutcomeAborted {
		t.Fatalf("outcome %q, want %q", res.Outcome, OutcomeAborted)
	}
	// Iterations 0-2 committed; iteration 3 did not.
	if res.Observations != 3 || res.Iterations != 3 {
		t.Fatalf("observations=%d iterations=%d, want 3/3", res.Observations, res.Iterations)
	}
	if res.TotalCost != 12 {
		t.Fatalf("total cost %g, want 12", res.TotalCost)
	}
	if len(rec.observations) != 3 {
		t.Fatalf("recorded %d observations, want 3", len(rec.observations))
	}
}

func TestOracleMissMidBatchCommitsNothingFromIteration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 3
	p := &genPlanner{cadence: cfg.Cadence}

	// Fail the middle sample of the first batch: the whole iteration must
	// roll back, leaving the ledger empty.
	miss := param.NewAssignment(map[string]float64{"x": 101, "s": 1.0}, nil)
	o := constOracle(2.0)
	o.missKeys = map[string]bool{miss.Key(): true}

	ctrl, _ := New(cfg, p, o, nil)
	res, err := ctrl.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if res.Observations != 0 || res.TotalCost != 0 {
		t.Fatalf("partial iteration leaked: obs=%d cost=%g", res.Observations, res.TotalCost)
	}
}

func TestPlannerErrorIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	p := &genPlanner{cadence: cfg.Cadence, err: errors.New("malformed parameter space"), errAtCall: 3}

	ctrl, _ := New(cfg, p, constOracle(2.0), nil)
	res, err := ctrl.Run(context.Background())
	if err == nil {
		t.Fatal("expected planner error")
	}
	var pe *planner.PlannerError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PlannerError, got %T: %v", err, err)
	}
	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome %q, want %q", res.Outcome, OutcomeFailed)
	}
	// No retry: exactly 3 Recommend calls, two committed iterations.
	if p.calls != 3 {
		t.Fatalf("recommend calls %d, want 3", p.calls)
	}
	if res.Observations != 2 {
		t.Fatalf("observations %d, want 2", res.Observations)
	}
}

// emptyBatchPlanner returns a nil-error empty batch, which the interface
// contract forbids.
type emptyBatchPlanner struct {
	genPlanner
}

func (p *emptyBatchPlanner) Recommend(_ context.Context, _ []ledger.Observation, _ float64, _ int) ([]param.Assignment, error) {
	return []param.Assignment{}, nil
}

func TestEmptyBatchIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	p := &emptyBatchPlanner{genPlanner{cadence: cfg.Cadence}}

	ctrl, _ := New(cfg, p, constOracle(2.0), nil)
	res, err := ctrl.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for empty batch")
	}
	var pe *planner.PlannerError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PlannerError, got %T: %v", err, err)
	}
	if res.Outcome != OutcomeFailed || res.Observations != 0 {
		t.Fatalf("outcome=%q observations=%d, want failed with empty ledger", res.Outcome, res.Observations)
	}
}

// emptyProbePlanner recommends normally but returns no greedy probe.
type emptyProbePlanner struct {
	genPlanner
}

func (p *emptyProbePlanner) RecommendTargetFidelity(_ context.Context, _ []ledger.Observation, _ int) ([]param.Assignment, error) {
	return nil, nil
}

func TestEmptyProbeIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitDesign = 0 // probe on the first iteration
	p := &emptyProbePlanner{genPlanner{cadence: cfg.Cadence}}

	ctrl, _ := New(cfg, p, constOracle(2.0), nil)
	res, err := ctrl.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for empty probe")
	}
	var pe *planner.PlannerError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PlannerError, got %T: %v", err, err)
	}
	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome %q, want %q", res.Outcome, OutcomeFailed)
	}
}

// #endregion failure-tests

// #region determinism-tests

// Replaying the same deterministic planner and oracle yields an identical
// run: same recommendations, measurements, costs, and outcome.
func TestDeterministicReplay(t *testing.T) {
	run := func() (Result, []recordedObs) {
		cfg := DefaultConfig()
		p := &genPlanner{cadence: cfg.Cadence}
		rec := &captureRecorder{}
		ctrl, err := New(cfg, p, constOracle(1.5), rec)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		res, err := ctrl.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return res, rec.observations
	}

	res1, obs1 := run()
	res2, obs2 := run()

	if res1 != res2 && (res1.Outcome != res2.Outcome || res1.TotalCost != res2.TotalCost ||
		res1.Iterations != res2.Iterations || res1.Observations != res2.Observations) {
		t.Fatalf("results differ: %+v vs %+v", res1, res2)
	}
	if len(obs1) != len(obs2) {
		t.Fatalf("observation counts differ: %d vs %d", len(obs1), len(obs2))
	}
	for i := range obs1 {
		if obs1[i].obs.Sample.Key() != obs2[i].obs.Sample.Key() ||
			obs1[i].obs.Measurement != obs2[i].obs.Measurement ||
			obs1[i].total != obs2[i].total {
			t.Fatalf("run diverged at observation %d: %+v vs %+v", i, obs1[i], obs2[i])
		}
	}
}

// The planner sees the full committed history on every call, never a
// partially committed iteration.
func TestPlannerSeesLinearizedHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 2
	cfg.Budget = 25
	p := &genPlanner{cadence: cfg.Cadence}

	ctrl, _ := New(cfg, p, constOracle(2.0), nil)
	if _, err := ctrl.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, n := range p.historyLens {
		if n != i*cfg.BatchSize {
			t.Fatalf("call %d saw %d observations, want %d", i, n, i*cfg.BatchSize)
		}
	}
}

// #endregion determinism-tests

// #region best-tracking

func TestBestTracksHighFidelityOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget = 30
	cfg.Goal = GoalMinimize

	// Low-fidelity samples measure 0.1 (better-looking than anything at
	// high fidelity) but must not win best-so-far.
	p := &genPlanner{cadence: cfg.Cadence}
	o := &funcOracle{f: func(a param.Assignment) float64 {
		if s, _ := a.Fidelity(); s == cfg.Cadence.High {
			x, _ := a.Value("x")
			return 1.0 + x/1e6
		}
		return 0.1
	}}

	ctrl, _ := New(cfg, p, o, nil)
	res, err := ctrl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Best == nil {
		t.Fatal("expected a best observation")
	}
	if s, _ := res.Best.Sample.Fidelity(); s != cfg.Cadence.High {
		t.Fatalf("best sample at fidelity %g, want high fidelity", s)
	}
	if res.Best.Measurement < 1.0 {
		t.Fatalf("best %g came from a low-fidelity sample", res.Best.Measurement)
	}
}

// #endregion best-tracking
