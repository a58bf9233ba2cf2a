package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mkhalilov/prospector/go-controller/internal/campaign"
	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/logging"
	"github.com/mkhalilov/prospector/go-controller/internal/param"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
	campaign_id   TEXT PRIMARY KEY,
	config_json   TEXT NOT NULL,
	status        TEXT NOT NULL,
	outcome       TEXT,
	phase         TEXT,
	iterations    INTEGER NOT NULL DEFAULT 0,
	observations  INTEGER NOT NULL DEFAULT 0,
	total_cost    REAL NOT NULL DEFAULT 0,
	best_json     TEXT,
	created_at    TEXT NOT NULL,
	finished_at   TEXT
);

CREATE TABLE IF NOT EXISTS observations (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	campaign_id   TEXT NOT NULL,
	iteration     INTEGER NOT NULL,
	requested_fidelity REAL NOT NULL,
	sample_json   TEXT NOT NULL,
	sample_key    TEXT NOT NULL,
	measurement   REAL NOT NULL,
	cost          REAL NOT NULL,
	total_cost    REAL NOT NULL,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (campaign_id) REFERENCES campaigns(campaign_id)
);

CREATE TABLE IF NOT EXISTS recommendation_trace (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	campaign_id   TEXT NOT NULL,
	iteration     INTEGER NOT NULL,
	sample_json   TEXT NOT NULL,
	measurement   REAL NOT NULL,
	from_ledger   INTEGER NOT NULL,
	converged     INTEGER NOT NULL,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (campaign_id) REFERENCES campaigns(campaign_id)
);
`
// #endregion schema

// #region records

// CampaignRecord is one row in the campaigns table.
type CampaignRecord struct {
	CampaignID   string
	Config       campaign.Config
	Status       string
	Outcome      campaign.Outcome
	Phase        campaign.Phase
	Iterations   int
	Observations int
	TotalCost    float64
	Best         *ledger.Observation
	CreatedAt    time.Time
	FinishedAt   time.Time
}

// Campaign status values.
const (
	StatusRunning  = "running"
	StatusFinished = "finished"
)

// ObservationRecord is one committed observation row.
type ObservationRecord struct {
	CampaignID        string
	Iteration         int
	RequestedFidelity float64
	Sample            param.Assignment
	Measurement       float64
	Cost              float64
	TotalCost         float64
	CreatedAt         time.Time
}

// TraceRecord is one target-recommendation trace row.
type TraceRecord struct {
	CampaignID  string
	Iteration   int
	Sample      param.Assignment
	Measurement float64
	FromLedger  bool
	Converged   bool
	CreatedAt   time.Time
}

// #endregion records

// #region store-struct
// Store persists campaigns, observations, and recommendation traces in
// SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if _, err := db.Exec(logging.Schema); err != nil {
		return nil, fmt.Errorf("migrate decision log: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region create-campaign
// CreateCampaign registers a new campaign in the running state and returns
// its record.
func (s *Store) CreateCampaign(cfg campaign.Config) (CampaignRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return CampaignRecord{}, fmt.Errorf("marshal config: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO campaigns (campaign_id, config_json, status, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, string(cfgJSON), StatusRunning, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return CampaignRecord{}, fmt.Errorf("insert campaign: %w", err)
	}

	return CampaignRecord{
		CampaignID: id,
		Config:     cfg,
		Status:     StatusRunning,
		CreatedAt:  now,
	}, nil
}
// #endregion create-campaign

// #region get-campaign
// GetCampaign retrieves a campaign by ID.
func (s *Store) GetCampaign(id string) (CampaignRecord, error) {
	row := s.db.QueryRow(
		`SELECT campaign_id, config_json, status, outcome, phase, iterations,
		        observations, total_cost, best_json, created_at, finished_at
		 FROM campaigns WHERE campaign_id = ?`, id,
	)
	rec, err := scanCampaign(row)
	if err != nil {
		return CampaignRecord{}, fmt.Errorf("get campaign %s: %w", id, err)
	}
	return rec, nil
}
// #endregion get-campaign

// #region list-campaigns
// ListCampaigns returns the most recent campaigns.
func (s *Store) ListCampaigns(limit int) ([]CampaignRecord, error) {
	rows, err := s.db.Query(
		`SELECT campaign_id, config_json, status, outcome, phase, iterations,
		        observations, total_cost, best_json, created_at, finished_at
		 FROM campaigns ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var records []CampaignRecord
	for rows.Next() {
		rec, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
// #endregion list-campaigns

// #region scan-campaign

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (CampaignRecord, error) {
	var rec CampaignRecord
	var cfgJSON string
	var outcome, phase, bestJSON, finishedStr sql.NullString
	var createdStr string

	err := row.Scan(&rec.CampaignID, &cfgJSON, &rec.Status, &outcome, &phase,
		&rec.Iterations, &rec.Observations, &rec.TotalCost, &bestJSON,
		&createdStr, &finishedStr)
	if err != nil {
		return CampaignRecord{}, err
	}

	if err := json.Unmarshal([]byte(cfgJSON), &rec.Config); err != nil {
		return CampaignRecord{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if outcome.Valid {
		rec.Outcome = campaign.Outcome(outcome.String)
	}
	if phase.Valid {
		rec.Phase = campaign.Phase(phase.String)
	}
	if bestJSON.Valid {
		var best ledger.Observation
		if err := json.Unmarshal([]byte(bestJSON.String), &best); err != nil {
			return CampaignRecord{}, fmt.Errorf("unmarshal best: %w", err)
		}
		rec.Best = &best
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	if finishedStr.Valid {
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedStr.String)
	}
	return rec, nil
}

// #endregion scan-campaign

// #region observations
// Observations returns a campaign's committed observations in commit order.
func (s *Store) Observations(campaignID string) ([]ObservationRecord, error) {
	rows, err := s.db.Query(
		`SELECT campaign_id, iteration, requested_fidelity, sample_json,
		        measurement, cost, total_cost, created_at
		 FROM observations WHERE campaign_id = ? ORDER BY id`, campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()

	var records []ObservationRecord
	for rows.Next() {
		var rec ObservationRecord
		var sampleJSON, createdStr string
		if err := rows.Scan(&rec.CampaignID, &rec.Iteration, &rec.RequestedFidelity,
			&sampleJSON, &rec.Measurement, &rec.Cost, &rec.TotalCost, &createdStr); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		if err := json.Unmarshal([]byte(sampleJSON), &rec.Sample); err != nil {
			return nil, fmt.Errorf("unmarshal sample: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}
// #endregion observations

// #region trace
// Trace returns a campaign's target-recommendation trace in order.
func (s *Store) Trace(campaignID string) ([]TraceRecord, error) {
	rows, err := s.db.Query(
		`SELECT campaign_id, iteration, sample_json, measurement, from_ledger,
		        converged, created_at
		 FROM recommendation_trace WHERE campaign_id = ? ORDER BY id`, campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trace: %w", err)
	}
	defer rows.Close()

	var records []TraceRecord
	for rows.Next() {
		var rec TraceRecord
		var sampleJSON, createdStr string
		var fromLedger, converged int
		if err := rows.Scan(&rec.CampaignID, &rec.Iteration, &sampleJSON,
			&rec.Measurement, &fromLedger, &converged, &createdStr); err != nil {
			return nil, fmt.Errorf("scan trace: %w", err)
		}
		if err := json.Unmarshal([]byte(sampleJSON), &rec.Sample); err != nil {
			return nil, fmt.Errorf("unmarshal sample: %w", err)
		}
		rec.FromLedger = fromLedger != 0
		rec.Converged = converged != 0
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}
// #endregion trace
