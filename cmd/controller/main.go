package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mkhalilov/prospector/go-controller/internal/campaign"
	"github.com/mkhalilov/prospector/go-controller/internal/convergence"
	"github.com/mkhalilov/prospector/go-controller/internal/ledger"
	"github.com/mkhalilov/prospector/go-controller/internal/oracle"
	"github.com/mkhalilov/prospector/go-controller/internal/planner"
	"github.com/mkhalilov/prospector/go-controller/internal/schedule"
	"github.com/mkhalilov/prospector/go-controller/internal/store"
)

// #region main
func main() {
	dbPath := envOr("PROSPECTOR_DB", "prospector.db")
	oraclePath := envOr("ORACLE_DB", "oracle.db")
	plannerAddr := envOr("PLANNER_ADDR", "localhost:50051")

	cfg := configFromEnv()

	// Campaign store
	st, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	// Lookup-table oracle
	table, err := oracle.OpenTable(oraclePath)
	if err != nil {
		log.Fatalf("failed to open oracle table at %s: %v", oraclePath, err)
	}
	defer table.Close()

	// Connect to Python planner service
	client, err := planner.NewClient(plannerAddr)
	if err != nil {
		log.Fatalf("failed to connect to planner service at %s: %v", plannerAddr, err)
	}
	defer client.Close()

	camp, err := st.CreateCampaign(cfg)
	if err != nil {
		log.Fatalf("failed to create campaign: %v", err)
	}

	fmt.Println("Prospector campaign controller ready.")
	fmt.Printf("  Campaign: %s | DB: %s | Oracle: %s | Planner: %s\n",
		camp.CampaignID, dbPath, oraclePath, plannerAddr)

	ctrl, err := campaign.New(cfg, client, table, st.Recorder(camp.CampaignID))
	if err != nil {
		log.Fatalf("invalid campaign: %v", err)
	}

	result, runErr := ctrl.Run(context.Background())

	fmt.Printf("\nCampaign %s finished.\n", camp.CampaignID)
	fmt.Printf("  Outcome:      %s\n", result.Outcome)
	fmt.Printf("  Iterations:   %d\n", result.Iterations)
	fmt.Printf("  Observations: %d\n", result.Observations)
	fmt.Printf("  Total cost:   %g / %g\n", result.TotalCost, cfg.Budget)
	if result.Best != nil {
		fmt.Printf("  Best:         %g at %s\n", result.Best.Measurement, result.Best.Sample.Key())
	}
	if runErr != nil {
		log.Fatalf("campaign error: %v", runErr)
	}
}

// #endregion main

// #region config
func configFromEnv() campaign.Config {
	cfg := campaign.DefaultConfig()
	cfg.Budget = envFloat("BUDGET", cfg.Budget)
	cfg.Cadence = schedule.Cadence{
		Every: envInt("CADENCE_EVERY", cfg.Cadence.Every),
		Low:   envFloat("LOW_FIDELITY", cfg.Cadence.Low),
		High:  envFloat("HIGH_FIDELITY", cfg.Cadence.High),
	}
	cfg.Costs = ledger.CostModel{PerFidelity: map[float64]float64{
		cfg.Cadence.Low:  envFloat("LOW_COST", 1),
		cfg.Cadence.High: envFloat("HIGH_COST", 10),
	}}
	cfg.InitDesign = envInt("INIT_DESIGN", cfg.InitDesign)
	cfg.BatchSize = envInt("BATCH_SIZE", cfg.BatchSize)
	cfg.Goal = campaign.Goal(envOr("GOAL", string(cfg.Goal)))
	if os.Getenv("TARGET") != "" {
		cfg.Target = &convergence.Target{
			Value:     envFloat("TARGET", 0),
			Tolerance: envFloat("TOLERANCE", 0),
		}
	}
	return cfg
}

// #endregion config

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid %s=%q: %v", key, v, err)
	}
	return f
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s=%q: %v", key, v, err)
	}
	return n
}

// #endregion helpers
