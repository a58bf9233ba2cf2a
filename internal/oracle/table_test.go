package oracle

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mkhalilov/prospector/go-controller/internal/param"
)

func tempTable(t *testing.T) *Table {
	t.Helper()
	dir := t.TempDir()
	tbl, err := OpenTable(filepath.Join(dir, "oracle.db"))
	if err != nil {
		t.Fatalf("OpenTable: %v", err)
	}
	t.Cleanup(func() { tbl.Close() })
	return tbl
}

func sample(x, s float64) param.Assignment {
	return param.NewAssignment(map[string]float64{"x": x, "s": s}, nil)
}

func TestInsertAndMeasure(t *testing.T) {
	tbl := tempTable(t)

	if err := tbl.Insert(sample(1, 0.1), 1.52); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tbl.Insert(sample(1, 1.0), 1.38); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Same composition, different fidelity: distinct rows.
	m, err := tbl.Measure(sample(1, 0.1))
	if err != nil || m != 1.52 {
		t.Fatalf("Measure(s=0.1) = (%g, %v), want (1.52, nil)", m, err)
	}
	m, err = tbl.Measure(sample(1, 1.0))
	if err != nil || m != 1.38 {
		t.Fatalf("Measure(s=1.0) = (%g, %v), want (1.38, nil)", m, err)
	}

	n, err := tbl.Count()
	if err != nil || n != 2 {
		t.Fatalf("Count = (%d, %v), want (2, nil)", n, err)
	}
}

func TestMeasureMissReturnsLookupError(t *testing.T) {
	tbl := tempTable(t)
	if err := tbl.Insert(sample(1, 1.0), 0.8); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	_, err := tbl.Measure(sample(2, 1.0))
	if err == nil {
		t.Fatal("expected lookup error for unknown sample")
	}
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LookupError, got %T: %v", err, err)
	}
	if le.Key != sample(2, 1.0).Key() {
		t.Fatalf("error key %q, want %q", le.Key, sample(2, 1.0).Key())
	}
}

func TestMeasureWithCategoricalParams(t *testing.T) {
	tbl := tempTable(t)
	a := param.NewAssignment(map[string]float64{"s": 1.0}, map[string]string{"cation": "MA", "anion": "I"})
	if err := tbl.Insert(a, 1.61); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	m, err := tbl.Measure(param.NewAssignment(map[string]float64{"s": 1.0}, map[string]string{"anion": "I", "cation": "MA"}))
	if err != nil || m != 1.61 {
		t.Fatalf("Measure = (%g, %v), want (1.61, nil)", m, err)
	}
}

func TestInsertReplaces(t *testing.T) {
	tbl := tempTable(t)
	if err := tbl.Insert(sample(3, 1.0), 2.0); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tbl.Insert(sample(3, 1.0), 2.5); err != nil {
		t.Fatalf("re-Insert: %v", err)
	}

	m, err := tbl.Measure(sample(3, 1.0))
	if err != nil || m != 2.5 {
		t.Fatalf("Measure = (%g, %v), want (2.5, nil)", m, err)
	}
	n, _ := tbl.Count()
	if n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}

func TestBest(t *testing.T) {
	tbl := tempTable(t)
	tbl.Insert(sample(1, 1.0), 1.5)
	tbl.Insert(sample(2, 1.0), 0.8)
	tbl.Insert(sample(3, 0.1), 0.1) // different fidelity, ignored

	best, err := tbl.Best(1.0, false)
	if err != nil || best != 0.8 {
		t.Fatalf("Best(min) = (%g, %v), want (0.8, nil)", best, err)
	}
	best, err = tbl.Best(1.0, true)
	if err != nil || best != 1.5 {
		t.Fatalf("Best(max) = (%g, %v), want (1.5, nil)", best, err)
	}
	if _, err := tbl.Best(0.5, false); err == nil {
		t.Fatal("expected error for empty fidelity level")
	}
}
