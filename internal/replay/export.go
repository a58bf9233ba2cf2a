package replay

import (
	"fmt"
	"strconv"

	"github.com/mkhalilov/prospector/go-controller/internal/campaign"
	"github.com/mkhalilov/prospector/go-controller/internal/param"
	"github.com/mkhalilov/prospector/go-controller/internal/store"
)

// #region export

// FromRecords reconstructs a replay fixture from a stored campaign: the
// committed observations become the scripted batches and the oracle table,
// the greedy trace entries become the scripted probes, and the recorded end
// state becomes the expected result. Replaying the fixture must reproduce
// the campaign bit for bit.
func FromRecords(camp store.CampaignRecord, obs []store.ObservationRecord, trace []store.TraceRecord) (*Fixture, error) {
	if len(obs) == 0 {
		return nil, fmt.Errorf("campaign %s has no observations", camp.CampaignID)
	}

	// The sample behind an oracle miss was never committed, so an aborted
	// campaign replays as a script exhaustion instead: the outcome label is
	// not reproducible and stays unchecked. Ledger counts and cost still are.
	outcome := string(camp.Outcome)
	if camp.Outcome == campaign.OutcomeAborted {
		outcome = ""
	}

	f := &Fixture{
		Description: fmt.Sprintf("exported from campaign %s", camp.CampaignID),
		Config:      toFixtureConfig(camp.Config),
		Expected: FixtureExpectedResult{
			Outcome:      outcome,
			Iterations:   camp.Iterations,
			Observations: camp.Observations,
			TotalCost:    camp.TotalCost,
		},
	}
	if camp.Best != nil {
		m := camp.Best.Measurement
		f.Expected.BestMeasurement = &m
	}

	// Group observations into per-iteration batches, preserving commit order.
	var batches [][]FixtureSample
	lastIter := -1
	for _, o := range obs {
		s := toFixtureSample(o.Sample)
		if o.Iteration != lastIter {
			batches = append(batches, nil)
			lastIter = o.Iteration
		}
		batches[len(batches)-1] = append(batches[len(batches)-1], s)
		f.Oracle = append(f.Oracle, FixtureOracleRow{Sample: s, Measurement: o.Measurement})
	}
	f.Recommendations = batches

	for _, tr := range trace {
		if tr.FromLedger {
			continue // ledger-derived entries replay from the batches
		}
		s := toFixtureSample(tr.Sample)
		f.Probes = append(f.Probes, s)
		f.Oracle = append(f.Oracle, FixtureOracleRow{Sample: s, Measurement: tr.Measurement})
	}

	return f, nil
}

func toFixtureSample(a param.Assignment) FixtureSample {
	s := FixtureSample{Values: a.Values()}
	if classes := a.Classes(); len(classes) > 0 {
		s.Classes = classes
	}
	return s
}

func toFixtureConfig(cfg campaign.Config) FixtureConfig {
	fc := FixtureConfig{
		Budget:       cfg.Budget,
		CadenceEvery: cfg.Cadence.Every,
		LowFidelity:  cfg.Cadence.Low,
		HighFidelity: cfg.Cadence.High,
		Costs:        make(map[string]float64, len(cfg.Costs.PerFidelity)),
		InitDesign:   &cfg.InitDesign,
		BatchSize:    cfg.BatchSize,
		Goal:         string(cfg.Goal),
	}
	for fid, cost := range cfg.Costs.PerFidelity {
		fc.Costs[strconv.FormatFloat(fid, 'g', -1, 64)] = cost
	}
	if cfg.Target != nil {
		v := cfg.Target.Value
		fc.Target = &v
		fc.Tolerance = cfg.Target.Tolerance
	}
	return fc
}

// #endregion export
