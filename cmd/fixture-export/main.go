package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mkhalilov/prospector/go-controller/internal/replay"
	"github.com/mkhalilov/prospector/go-controller/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to prospector.db")
	campaignID := flag.String("campaign", "", "campaign to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *campaignID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/prospector.db --campaign id --out path/to/fixture.json")
		os.Exit(2)
	}

	if err := run(*dbPath, *campaignID, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, campaignID, outPath string) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

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

	f, err := replay.FromRecords(camp, obs, trace)
	if err != nil {
		return err
	}
	if err := replay.SaveFixture(outPath, f); err != nil {
		return err
	}

	fmt.Printf("exported campaign %s: %d batches, %d probes, %d oracle rows -> %s\n",
		campaignID, len(f.Recommendations), len(f.Probes), len(f.Oracle), outPath)
	return nil
}

// #endregion export
