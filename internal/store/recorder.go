package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkhalilov/prospector/go-controller/internal/campaign"
	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/logging"
)

// #region recorder-struct
// campaignRecorder binds a Store to one campaign and feeds the controller's
// loop events into it.
type campaignRecorder struct {
	store      *Store
	campaignID string
}

// Recorder returns a campaign.Recorder that persists under the given
// campaign ID.
func (s *Store) Recorder(campaignID string) campaign.Recorder {
	return &campaignRecorder{store: s, campaignID: campaignID}
}
// #endregion recorder-struct

// #region record-observation
func (r *campaignRecorder) RecordObservation(iteration int, requestedFidelity float64, obs ledger.Observation, cost, totalCost float64) error {
	sampleJSON, err := json.Marshal(obs.Sample)
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}
	_, err = r.store.db.Exec(
		`INSERT INTO observations (campaign_id, iteration, requested_fidelity,
		        sample_json, sample_key, measurement, cost, total_cost, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.campaignID, iteration, requestedFidelity, string(sampleJSON),
		obs.Sample.Key(), obs.Measurement, cost, totalCost,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return logging.LogDecision(r.store.db, logging.DecisionEntry{
		CampaignID: r.campaignID,
		Iteration:  iteration,
		EventType:  logging.EventCommit,
		DetailJSON: string(sampleJSON),
	})
}
// #endregion record-observation

// #region record-iteration
func (r *campaignRecorder) RecordIteration(rec logging.IterationRecord) error {
	detail, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal iteration record: %w", err)
	}
	return logging.LogDecision(r.store.db, logging.DecisionEntry{
		CampaignID: r.campaignID,
		Iteration:  rec.Iteration,
		EventType:  logging.EventRecommend,
		DetailJSON: string(detail),
	})
}
// #endregion record-iteration

// #region record-trace
func (r *campaignRecorder) RecordTrace(entry campaign.TraceEntry) error {
	sampleJSON, err := json.Marshal(entry.Sample)
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}
	_, err = r.store.db.Exec(
		`INSERT INTO recommendation_trace (campaign_id, iteration, sample_json,
		        measurement, from_ledger, converged, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.campaignID, entry.Iteration, string(sampleJSON), entry.Measurement,
		boolInt(entry.FromLedger), boolInt(entry.Converged),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert trace entry: %w", err)
	}
	event := logging.EventProbe
	if entry.FromLedger {
		event = logging.EventCommit
	}
	return logging.LogDecision(r.store.db, logging.DecisionEntry{
		CampaignID: r.campaignID,
		Iteration:  entry.Iteration,
		EventType:  event,
		DetailJSON: string(sampleJSON),
		Reason:     traceReason(entry),
	})
}

func traceReason(entry campaign.TraceEntry) string {
	if entry.Converged {
		return "target recovered"
	}
	return ""
}
// #endregion record-trace

// #region record-outcome
func (r *campaignRecorder) RecordOutcome(result campaign.Result) error {
	var bestPtr interface{}
	if result.Best != nil {
		bestJSON, err := json.Marshal(result.Best)
		if err != nil {
			return fmt.Errorf("marshal best: %w", err)
		}
		bestPtr = string(bestJSON)
	}
	_, err := r.store.db.Exec(
		`UPDATE campaigns SET status = ?, outcome = ?, phase = ?, iterations = ?,
		        observations = ?, total_cost = ?, best_json = ?, finished_at = ?
		 WHERE campaign_id = ?`,
		StatusFinished, string(result.Outcome), string(result.Phase),
		result.Iterations, result.Observations, result.TotalCost, bestPtr,
		time.Now().UTC().Format(time.RFC3339Nano), r.campaignID,
	)
	if err != nil {
		return fmt.Errorf("finish campaign: %w", err)
	}
	return logging.LogDecision(r.store.db, logging.DecisionEntry{
		CampaignID: r.campaignID,
		Iteration:  result.Iterations,
		EventType:  logging.EventTerminate,
		Reason:     string(result.Outcome),
	})
}
// #endregion record-outcome

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
