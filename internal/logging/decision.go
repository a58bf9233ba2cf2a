package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region schema
// Schema creates the decision_log table. Ran by the store's migrations so
// the log lives alongside the campaign tables.
const Schema = `
CREATE TABLE IF NOT EXISTS decision_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	campaign_id   TEXT NOT NULL,
	iteration     INTEGER NOT NULL,
	event_type    TEXT NOT NULL,
	detail_json   TEXT,
	reason        TEXT,
	created_at    TEXT NOT NULL
);
`
// #endregion schema

// #region log-decision
// LogDecision writes one entry to the decision_log table.
func LogDecision(db *sql.DB, entry DecisionEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO decision_log (campaign_id, iteration, event_type, detail_json, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.CampaignID,
		entry.Iteration,
		entry.EventType,
		nullIfEmpty(entry.DetailJSON),
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}
// #endregion log-decision

// #region list-decisions
// ListDecisions returns a campaign's decision log in write order.
func ListDecisions(db *sql.DB, campaignID string) ([]DecisionEntry, error) {
	rows, err := db.Query(
		`SELECT campaign_id, iteration, event_type, detail_json, reason, created_at
		 FROM decision_log WHERE campaign_id = ? ORDER BY id`, campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var entries []DecisionEntry
	for rows.Next() {
		var e DecisionEntry
		var detail, reason sql.NullString
		var createdStr string
		if err := rows.Scan(&e.CampaignID, &e.Iteration, &e.EventType, &detail, &reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if detail.Valid {
			e.DetailJSON = detail.String
		}
		if reason.Valid {
			e.Reason = reason.String
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
// #endregion list-decisions

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
