package replay

import (
	"context"
	"fmt"

	"github.com/mkhalilov/prospector/go-controller/internal/campaign"
	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/oracle"
	"github.com/mkhalilov/prospector/go-controller/internal/param"
	"github.com/mkhalilov/prospector/go-controller/internal/planner"
)

// #region scripted-planner

// ScriptedPlanner replays a recorded sequence of planner recommendations.
// Each Recommend call consumes the next scripted batch, each
// RecommendTargetFidelity call the next scripted greedy probe. Running past
// the script is a planner failure, same as a live planner fault.
type ScriptedPlanner struct {
	Batches [][]param.Assignment
	Greedy  []param.Assignment

	batchIdx  int
	greedyIdx int
}

func (p *ScriptedPlanner) Recommend(_ context.Context, _ []ledger.Observation, _ float64, _ int) ([]param.Assignment, error) {
	if p.batchIdx >= len(p.Batches) {
		return nil, &planner.PlannerError{
			Op:  "recommend",
			Err: fmt.Errorf("script exhausted after %d batches", len(p.Batches)),
		}
	}
	batch := p.Batches[p.batchIdx]
	p.batchIdx++
	if len(batch) == 0 {
		return nil, &planner.PlannerError{Op: "recommend", Err: fmt.Errorf("scripted batch %d is empty", p.batchIdx-1)}
	}
	return batch, nil
}

func (p *ScriptedPlanner) RecommendTargetFidelity(_ context.Context, _ []ledger.Observation, _ int) ([]param.Assignment, error) {
	if p.greedyIdx >= len(p.Greedy) {
		return nil, &planner.PlannerError{
			Op:  "recommend_target_fidelity",
			Err: fmt.Errorf("script exhausted after %d probes", len(p.Greedy)),
		}
	}
	probe := p.Greedy[p.greedyIdx]
	p.greedyIdx++
	return []param.Assignment{probe}, nil
}

// #endregion scripted-planner

// #region map-oracle

// MapOracle is an in-memory lookup-table oracle keyed by canonical sample
// key. Samples outside the table return a LookupError, same as the SQLite
// oracle.
type MapOracle struct {
	Measurements map[string]float64
}

func (o *MapOracle) Measure(sample param.Assignment) (float64, error) {
	m, ok := o.Measurements[sample.Key()]
	if !ok {
		return 0, &oracle.LookupError{Key: sample.Key()}
	}
	return m, nil
}

// #endregion map-oracle

// #region replay

// ReplayOutput bundles the result and traces of one replayed campaign.
type ReplayOutput struct {
	Result       campaign.Result
	Observations []ledger.Observation
	Trace        []campaign.TraceEntry
}

// Replay runs a fixture's campaign entirely in-memory: the scripted planner
// and the map oracle stand in for the live collaborators, everything else is
// the production loop. The run error is returned alongside the output so
// fixtures can assert on aborted campaigns too.
func Replay(f *Fixture) (ReplayOutput, error) {
	cfg, err := f.Config.ToConfig()
	if err != nil {
		return ReplayOutput{}, fmt.Errorf("fixture config: %w", err)
	}

	p := &ScriptedPlanner{
		Batches: f.Batches(),
		Greedy:  f.GreedyProbes(),
	}
	o := &MapOracle{Measurements: f.OracleTable()}

	ctrl, err := campaign.New(cfg, p, o, nil)
	if err != nil {
		return ReplayOutput{}, err
	}

	res, runErr := ctrl.Run(context.Background())
	return ReplayOutput{
		Result:       res,
		Observations: ctrl.Observations(),
		Trace:        ctrl.Trace(),
	}, runErr
}

// #endregion replay

// #region check

// Check compares a replay output against the fixture's expected results and
// returns a human-readable mismatch per deviation. An empty slice means the
// replay reproduced the recorded campaign.
func Check(f *Fixture, out ReplayOutput) []string {
	var mismatches []string
	exp := f.Expected

	if exp.Outcome != "" && string(out.Result.Outcome) != exp.Outcome {
		mismatches = append(mismatches, fmt.Sprintf("outcome: got %q, want %q", out.Result.Outcome, exp.Outcome))
	}
	if exp.Iterations != 0 && out.Result.Iterations != exp.Iterations {
		mismatches = append(mismatches, fmt.Sprintf("iterations: got %d, want %d", out.Result.Iterations, exp.Iterations))
	}
	if exp.Observations != 0 && out.Result.Observations != exp.Observations {
		mismatches = append(mismatches, fmt.Sprintf("observations: got %d, want %d", out.Result.Observations, exp.Observations))
	}
	if exp.TotalCost != 0 && out.Result.TotalCost != exp.TotalCost {
		mismatches = append(mismatches, fmt.Sprintf("total cost: got %g, want %g", out.Result.TotalCost, exp.TotalCost))
	}
	if exp.BestMeasurement != nil {
		switch {
		case out.Result.Best == nil:
			mismatches = append(mismatches, fmt.Sprintf("best: got none, want %g", *exp.BestMeasurement))
		case out.Result.Best.Measurement != *exp.BestMeasurement:
			mismatches = append(mismatches, fmt.Sprintf("best: got %g, want %g", out.Result.Best.Measurement, *exp.BestMeasurement))
		}
	}
	return mismatches
}

// #endregion check
