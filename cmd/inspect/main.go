package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/mkhalilov/prospector/go-controller/internal/logging"
	"github.com/mkhalilov/prospector/go-controller/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to prospector.db")
	last := flag.Int("last", 20, "show N most recent campaigns")
	campaignID := flag.String("campaign", "", "show single campaign detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/prospector.db [--last N] [--campaign id] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *campaignID != "" {
		err = runDetailMode(st, *campaignID, *jsonOut)
	} else {
		err = runListMode(st, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	CampaignID   string  `json:"campaign_id"`
	Status       string  `json:"status"`
	Outcome      string  `json:"outcome,omitempty"`
	Iterations   int     `json:"iterations"`
	Observations int     `json:"observations"`
	TotalCost    float64 `json:"total_cost"`
	Budget       float64 `json:"budget"`
	CreatedAt    string  `json:"created_at"`
}

func runListMode(st *store.Store, last int, jsonOut bool) error {
	campaigns, err := st.ListCampaigns(last)
	if err != nil {
		return err
	}
	if len(campaigns) == 0 {
		fmt.Fprintln(os.Stderr, "no campaigns found")
		return nil
	}

	rows := make([]listRow, len(campaigns))
	for i, c := range campaigns {
		rows[i] = listRow{
			CampaignID:   c.CampaignID,
			Status:       c.Status,
			Outcome:      string(c.Outcome),
			Iterations:   c.Iterations,
			Observations: c.Observations,
			TotalCost:    c.TotalCost,
			Budget:       c.Config.Budget,
			CreatedAt:    humanize.Time(c.CreatedAt),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %-8s  %-16s  %5s  %5s  %12s  %s\n",
		"Campaign", "Status", "Outcome", "Iters", "Obs", "Cost", "Created")
	for _, r := range rows {
		outcome := r.Outcome
		if outcome == "" {
			outcome = "—"
		}
		fmt.Printf("%-12s  %-8s  %-16s  %5d  %5d  %6.1f/%-5.0f  %s\n",
			shortID(r.CampaignID), r.Status, outcome,
			r.Iterations, r.Observations, r.TotalCost, r.Budget, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	CampaignID   string   `json:"campaign_id"`
	Status       string   `json:"status"`
	Outcome      string   `json:"outcome,omitempty"`
	Phase        string   `json:"phase,omitempty"`
	Iterations   int      `json:"iterations"`
	Observations int      `json:"observations"`
	TotalCost    float64  `json:"total_cost"`
	Budget       float64  `json:"budget"`
	Best         *float64 `json:"best,omitempty"`
	BestSample   string   `json:"best_sample,omitempty"`
	CreatedAt    string   `json:"created_at"`
	Decisions    int      `json:"decisions"`
	IterationLog int      `json:"iteration_records"`
	Probes       int      `json:"probes"`
}

func runDetailMode(st *store.Store, campaignID string, jsonOut bool) error {
	camp, err := st.GetCampaign(campaignID)
	if err != nil {
		return err
	}
	obs, err := st.Observations(campaignID)
	if err != nil {
		return err
	}
	trace, err := st.Trace(campaignID)
	if err != nil {
		return err
	}
	decisions, err := logging.ListDecisions(st.DB(), campaignID)
	if err != nil {
		return err
	}

	probes := 0
	for _, tr := range trace {
		if !tr.FromLedger {
			probes++
		}
	}

	// Per-iteration payloads written by the controller loop.
	iterRecs := make(map[int]logging.IterationRecord)
	for _, d := range decisions {
		if d.EventType != logging.EventRecommend || d.DetailJSON == "" {
			continue
		}
		var ir logging.IterationRecord
		if err := json.Unmarshal([]byte(d.DetailJSON), &ir); err != nil {
			continue
		}
		iterRecs[ir.Iteration] = ir
	}

	out := detailOutput{
		CampaignID:   camp.CampaignID,
		Status:       camp.Status,
		Outcome:      string(camp.Outcome),
		Phase:        string(camp.Phase),
		Iterations:   camp.Iterations,
		Observations: camp.Observations,
		TotalCost:    camp.TotalCost,
		Budget:       camp.Config.Budget,
		CreatedAt:    camp.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Decisions:    len(decisions),
		IterationLog: len(iterRecs),
		Probes:       probes,
	}
	if camp.Best != nil {
		m := camp.Best.Measurement
		out.Best = &m
		out.BestSample = camp.Best.Sample.Key()
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Campaign:     %s\n", out.CampaignID)
	fmt.Printf("Status:       %s\n", out.Status)
	if out.Outcome != "" {
		fmt.Printf("Outcome:      %s\n", out.Outcome)
	}
	fmt.Printf("Iterations:   %d\n", out.Iterations)
	fmt.Printf("Observations: %s\n", humanize.Comma(int64(out.Observations)))
	fmt.Printf("Cost:         %g / %g\n", out.TotalCost, out.Budget)
	if out.Best != nil {
		fmt.Printf("Best:         %g at %s\n", *out.Best, out.BestSample)
	}
	fmt.Printf("Created:      %s (%s)\n", out.CreatedAt, humanize.Time(camp.CreatedAt))
	fmt.Printf("Decision log: %s entries, %d iteration records, %d greedy probes\n",
		humanize.Comma(int64(out.Decisions)), out.IterationLog, out.Probes)

	if len(obs) > 0 {
		fmt.Printf("\n%5s  %8s  %-28s  %12s  %8s  %5s\n", "Iter", "Fidelity", "Sample", "Measurement", "Cost", "Hist")
		for _, o := range obs {
			hist := "—"
			if ir, ok := iterRecs[o.Iteration]; ok {
				hist = fmt.Sprintf("%d", ir.HistorySize)
			}
			fmt.Printf("%5d  %8g  %-28s  %12g  %8g  %5s\n",
				o.Iteration, o.RequestedFidelity, o.Sample.Key(), o.Measurement, o.TotalCost, hist)
		}
	}

	if len(trace) > 0 {
		fmt.Printf("\nTarget-fidelity trace:\n")
		for _, tr := range trace {
			marker := " "
			if tr.Converged {
				marker = "*"
			}
			source := "probe"
			if tr.FromLedger {
				source = "ledger"
			}
			fmt.Printf("%s %5d  %-6s  %-28s  %g\n",
				marker, tr.Iteration, source, tr.Sample.Key(), tr.Measurement)
		}
	}

	return nil
}

// #endregion detail-mode

// #region helpers

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion helpers
