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
	dbPath := flag.String("db", "", "path to prospector.db (DB mode)")
	campaignID := flag.String("campaign", "", "campaign to replay (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/prospector.db --campaign id")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *campaignID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	return runAndCheck(f)
}

// #endregion fixture-mode

// #region db-mode

func runDBMode(dbPath, campaignID string) int {
	if campaignID == "" {
		fmt.Fprintln(os.Stderr, "--campaign is required in DB mode")
		return 2
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer st.Close()

	camp, err := st.GetCampaign(campaignID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get campaign: %v\n", err)
		return 2
	}
	obs, err := st.Observations(campaignID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get observations: %v\n", err)
		return 2
	}
	trace, err := st.Trace(campaignID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "get trace: %v\n", err)
		return 2
	}

	f, err := replay.FromRecords(camp, obs, trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build fixture: %v\n", err)
		return 2
	}
	return runAndCheck(f)
}

// #endregion db-mode

// #region check

func runAndCheck(f *replay.Fixture) int {
	if f.Description != "" {
		fmt.Printf("replaying: %s\n", f.Description)
	}

	out, runErr := replay.Replay(f)

	fmt.Printf("outcome=%s iterations=%d observations=%d cost=%g\n",
		out.Result.Outcome, out.Result.Iterations, out.Result.Observations, out.Result.TotalCost)
	if runErr != nil {
		fmt.Printf("run error: %v\n", runErr)
	}

	mismatches := replay.Check(f, out)
	if len(mismatches) == 0 {
		fmt.Println("PASS: replay matches recorded campaign")
		return 0
	}

	fmt.Printf("FAIL: %d mismatches\n", len(mismatches))
	for _, m := range mismatches {
		fmt.Printf("  - %s\n", m)
	}
	return 1
}

// #endregion check
