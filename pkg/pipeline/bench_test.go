package pipeline

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/search"
)

// misleading is an instance on which A* with k = 0.5 settles the target via
// the detour 0-5-4 although 0-1-2-3-4 is shorter.
const misleading = `6 6 0.5 0 4
0 0 0
1 1 0
2 1 1
3 2 1
4 2 2
5 2.1 0
0 1
1 2
2 3
3 4
0 5
5 4
`

func TestBenchOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts BenchOptions
	}{
		{"no paths", BenchOptions{}},
		{"nan k", BenchOptions{Paths: []string{"x"}, Ks: []float64{math.NaN()}}},
		{"auto algorithm", BenchOptions{Paths: []string{"x"}, Algorithms: []search.Algorithm{search.AlgorithmAuto}}},
		{"negative budget", BenchOptions{Paths: []string{"x"}, MaxPasses: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ValidateAndSetDefaults() = %v, want INVALID_INPUT", err)
			}
		})
	}

	opts := BenchOptions{Paths: []string{"x"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Algorithms) != 2 || opts.Repeat != DefaultRepeat || opts.Workers < 1 {
		t.Errorf("defaults = %+v", opts)
	}
}

func TestBench(t *testing.T) {
	paths := []string{writeGrid(t, 4, 2), writeGrid(t, 6, 2)}
	runner := NewRunner(nil, nil, nil)

	report, err := runner.Bench(context.Background(), BenchOptions{
		Paths:   paths,
		Ks:      []float64{0, 1, 2, math.Inf(1), -1},
		Repeat:  2,
		Workers: 3,
	})
	if err != nil {
		t.Fatalf("Bench() error: %v", err)
	}

	if _, err := uuid.Parse(report.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", report.RunID, err)
	}
	if want := len(paths) * 5 * 2; len(report.Rows) != want {
		t.Fatalf("got %d rows, want %d", len(report.Rows), want)
	}
	if report.Mismatches != 0 {
		t.Errorf("mismatches = %d, want 0", report.Mismatches)
	}
	for _, row := range report.Rows {
		if row.Err != "" || !row.Agree || !row.Reachable || row.Dist == nil {
			t.Errorf("row %+v", row)
		}
		if row.Best > row.Mean {
			t.Errorf("best %v > mean %v", row.Best, row.Mean)
		}
	}
}

func TestBenchDetectsMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "misleading.txt")
	if err := os.WriteFile(path, []byte(misleading), 0o644); err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(nil, nil, nil)

	report, err := runner.Bench(context.Background(), BenchOptions{Paths: []string{path}})
	if err != nil {
		t.Fatal(err)
	}
	if report.Mismatches != 2 {
		t.Errorf("mismatches = %d, want 2", report.Mismatches)
	}
	for _, row := range report.Rows {
		if row.Agree {
			t.Errorf("%s row marked as agreeing", row.Algorithm)
		}
	}
}

func TestBenchRecordsSearchErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	report, err := runner.Bench(context.Background(), BenchOptions{
		Paths:         []string{writeGrid(t, 8, 2)},
		Algorithms:    []search.Algorithm{search.AlgorithmAStar},
		MaxExpansions: 1,
	})
	if err != nil {
		t.Fatalf("Bench() error: %v", err)
	}
	if len(report.Rows) != 1 || report.Rows[0].Err == "" {
		t.Errorf("rows = %+v, want one row with an error", report.Rows)
	}
}

func TestBenchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Bench(ctx, BenchOptions{Paths: []string{writeGrid(t, 4, 2)}})
	if err == nil {
		t.Error("Bench() on a cancelled context should fail")
	}
}

func TestBenchMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Bench(context.Background(), BenchOptions{Paths: []string{filepath.Join(t.TempDir(), "nope.txt")}})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Bench() error = %v, want FILE_NOT_FOUND", err)
	}
}
