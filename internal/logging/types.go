package logging

import "time"

// #region decision-entry
// DecisionEntry is a single row in the decision_log table.
type DecisionEntry struct {
	CampaignID  string
	Iteration   int
	EventType   string // "recommend" | "commit" | "probe" | "terminate"
	DetailJSON  string
	Reason      string
	CreatedAt   time.Time
}

// Event types written by the controller loop.
const (
	EventRecommend = "recommend"
	EventCommit    = "commit"
	EventProbe     = "probe"
	EventTerminate = "terminate"
)
// #endregion decision-entry

// #region iteration-record
// IterationRecord captures the complete inputs and outputs of one loop
// iteration. Serialized as JSON into decision_log.detail_json for
// deterministic replay.
type IterationRecord struct {
	Iteration         int      `json:"iteration"`
	Phase             string   `json:"phase"`
	RequestedFidelity float64  `json:"requested_fidelity"`
	HistorySize       int      `json:"history_size"`

	// Exact batch as recommended and measured at runtime
	SampleKeys   []string  `json:"sample_keys"`
	Measurements []float64 `json:"measurements"`
	Costs        []float64 `json:"costs"`

	// Ledger state after the commit
	TotalCost float64 `json:"total_cost"`
	Budget    float64 `json:"budget"`

	// Greedy probe, steady state only
	ProbeKey         string  `json:"probe_key,omitempty"`
	ProbeMeasurement float64 `json:"probe_measurement,omitempty"`
	Converged        bool    `json:"converged"`
}
// #endregion iteration-record
