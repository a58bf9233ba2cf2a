package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mkhalilov/prospector/go-controller/internal/oracle"
	"github.com/mkhalilov/prospector/go-controller/internal/param"
)

// #region main

func main() {
	csvPath := flag.String("csv", "", "path to measurement CSV")
	dbPath := flag.String("db", "", "path to oracle database (created if absent)")
	measureCol := flag.String("measurement", "measurement", "name of the measurement column")
	flag.Parse()

	if *csvPath == "" || *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: oracle-import --csv path/to/table.csv --db path/to/oracle.db [--measurement col]")
		os.Exit(2)
	}

	if err := run(*csvPath, *dbPath, *measureCol); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region import

// run streams the CSV into the lookup table. Every column except the
// measurement column is a parameter: numeric values become continuous
// parameters, anything else a categorical class. The fidelity column "s"
// rides along as a normal numeric parameter, so each (composition,
// fidelity) pair lands in its own row.
func run(csvPath, dbPath, measureCol string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	table, err := oracle.OpenTable(dbPath)
	if err != nil {
		return err
	}
	defer table.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	measureIdx := -1
	for i, name := range header {
		if name == measureCol {
			measureIdx = i
		}
	}
	if measureIdx < 0 {
		return fmt.Errorf("csv has no %q column", measureCol)
	}

	imported := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row %d: %w", imported+1, err)
		}

		measurement, err := strconv.ParseFloat(record[measureIdx], 64)
		if err != nil {
			return fmt.Errorf("row %d: bad measurement %q: %w", imported+1, record[measureIdx], err)
		}

		values := map[string]float64{}
		classes := map[string]string{}
		for i, cell := range record {
			if i == measureIdx {
				continue
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				values[header[i]] = v
			} else {
				classes[header[i]] = cell
			}
		}

		sample := param.NewAssignment(values, classes)
		if err := table.Insert(sample, measurement); err != nil {
			return fmt.Errorf("row %d: %w", imported+1, err)
		}
		imported++
	}

	total, err := table.Count()
	if err != nil {
		return err
	}
	fmt.Printf("imported %d rows (%d total in table)\n", imported, total)

	return nil
}

// #endregion import
