package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkhalilov/prospector/go-controller/internal/campaign"
	"github.com/mkhalilov/prospector/go-controller/internal/convergence"
	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/param"
	"github.com/mkhalilov/prospector/go-controller/internal/schedule"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: the
// campaign config, the scripted planner outputs, the oracle table, and the
// expected end state.
type Fixture struct {
	Description     string                 `json:"description"`
	Config          FixtureConfig          `json:"config"`
	Recommendations [][]FixtureSample      `json:"recommendations"`
	Probes          []FixtureSample        `json:"probes"`
	Oracle          []FixtureOracleRow     `json:"oracle"`
	Expected        FixtureExpectedResult  `json:"expected"`
}

// FixtureSample mirrors param.Assignment with JSON tags.
type FixtureSample struct {
	Values  map[string]float64 `json:"values"`
	Classes map[string]string  `json:"classes,omitempty"`
}

// FixtureOracleRow is one lookup-table entry.
type FixtureOracleRow struct {
	Sample      FixtureSample `json:"sample"`
	Measurement float64       `json:"measurement"`
}

// FixtureConfig mirrors campaign.Config with JSON tags.
type FixtureConfig struct {
	Budget        float64            `json:"budget"`
	CadenceEvery  int                `json:"cadence_every"`
	LowFidelity   float64            `json:"low_fidelity"`
	HighFidelity  float64            `json:"high_fidelity"`
	Costs         map[string]float64 `json:"costs"`
	InitDesign    *int               `json:"init_design,omitempty"`
	BatchSize     int                `json:"batch_size"`
	Goal          string             `json:"goal"`
	Target        *float64           `json:"target,omitempty"`
	Tolerance     float64            `json:"tolerance,omitempty"`
}

// FixtureExpectedResult captures the recorded campaign's end state. Zero
// fields are not checked.
type FixtureExpectedResult struct {
	Outcome         string   `json:"outcome,omitempty"`
	Iterations      int      `json:"iterations,omitempty"`
	Observations    int      `json:"observations,omitempty"`
	TotalCost       float64  `json:"total_cost,omitempty"`
	BestMeasurement *float64 `json:"best_measurement,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// SaveFixture writes a fixture as indented JSON.
func SaveFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// #endregion fixture-loader

// #region converters

// ToAssignment converts a FixtureSample to a domain Assignment.
func (s FixtureSample) ToAssignment() param.Assignment {
	return param.NewAssignment(s.Values, s.Classes)
}

// ToConfig converts a FixtureConfig to a domain campaign config, filling
// defaults for omitted fields.
func (c FixtureConfig) ToConfig() (campaign.Config, error) {
	cfg := campaign.DefaultConfig()
	if c.Budget != 0 {
		cfg.Budget = c.Budget
	}
	if c.CadenceEvery != 0 {
		cfg.Cadence = schedule.Cadence{Every: c.CadenceEvery, Low: c.LowFidelity, High: c.HighFidelity}
	}
	if len(c.Costs) != 0 {
		raw, err := json.Marshal(c.Costs)
		if err != nil {
			return campaign.Config{}, fmt.Errorf("costs: %w", err)
		}
		var model ledger.CostModel
		if err := json.Unmarshal(raw, &model); err != nil {
			return campaign.Config{}, fmt.Errorf("costs: %w", err)
		}
		cfg.Costs = model
	}
	if c.InitDesign != nil {
		cfg.InitDesign = *c.InitDesign
	}
	if c.BatchSize != 0 {
		cfg.BatchSize = c.BatchSize
	}
	if c.Goal != "" {
		cfg.Goal = campaign.Goal(c.Goal)
	}
	if c.Target != nil {
		cfg.Target = &convergence.Target{Value: *c.Target, Tolerance: c.Tolerance}
	}
	return cfg, nil
}

// Batches converts the scripted recommendations to domain assignments.
func (f *Fixture) Batches() [][]param.Assignment {
	out := make([][]param.Assignment, len(f.Recommendations))
	for i, batch := range f.Recommendations {
		out[i] = make([]param.Assignment, len(batch))
		for j, s := range batch {
			out[i][j] = s.ToAssignment()
		}
	}
	return out
}

// GreedyProbes converts the scripted greedy probes to domain assignments.
func (f *Fixture) GreedyProbes() []param.Assignment {
	out := make([]param.Assignment, len(f.Probes))
	for i, s := range f.Probes {
		out[i] = s.ToAssignment()
	}
	return out
}

// OracleTable builds the canonical-key measurement table.
func (f *Fixture) OracleTable() map[string]float64 {
	out := make(map[string]float64, len(f.Oracle))
	for _, row := range f.Oracle {
		out[row.Sample.ToAssignment().Key()] = row.Measurement
	}
	return out
}

// #endregion converters
