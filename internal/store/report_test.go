package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/sim"
)

func testReport() *Report {
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	cfg.Bodies = 3
	cfg.Run.FPS = 4

	result := &sim.Result{
		Frames:        3,
		SimTime:       0.75,
		Wraps:         2,
		WrapsPerFrame: []float64{0, 2, 0},
		Metrics:       map[string]float64{"containment": 1},
	}
	return NewReport("classic", cfg, result)
}

func TestReportExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "report.json")
	r := testReport()

	if err := r.Export(path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Preset != "classic" || loaded.Seed != 42 {
		t.Errorf("unexpected header: preset=%q seed=%d", loaded.Preset, loaded.Seed)
	}
	if loaded.Bodies != 3 || loaded.Frames != 3 || loaded.Wraps != 2 {
		t.Errorf("unexpected counts: %+v", loaded)
	}
	if loaded.World != r.World {
		t.Errorf("expected world %+v, got %+v", r.World, loaded.World)
	}
	if len(loaded.WrapsPerFrame) != 3 || loaded.WrapsPerFrame[1] != 2 {
		t.Errorf("unexpected wraps per frame: %v", loaded.WrapsPerFrame)
	}
	if loaded.Metrics["containment"] != 1 {
		t.Errorf("expected containment 1, got %f", loaded.Metrics["containment"])
	}
}

func TestReportExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	if err := testReport().Export(path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}

	want := [][]string{
		{"frame", "time", "wraps"},
		{"0", "0.250000", "0"},
		{"1", "0.500000", "2"},
		{"2", "0.750000", "0"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d: expected %q, got %q", i, j, want[i][j], rows[i][j])
			}
		}
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing report")
	}
}

var errClose = errors.New("close failed")

type closeFailer struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return errClose
}

func TestWriteAndCloseReturnsCloseError(t *testing.T) {
	for _, ext := range []string{".json", ".csv"} {
		t.Run(ext, func(t *testing.T) {
			w := &closeFailer{}
			err := testReport().writeAndClose(w, ext)
			if !errors.Is(err, errClose) {
				t.Errorf("expected close error, got %v", err)
			}
			if !w.closed {
				t.Error("writer not closed")
			}
			if w.Len() == 0 {
				t.Error("nothing written before close")
			}
		})
	}
}

func TestExportIntoFileParentFails(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(parent, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := testReport().Export(filepath.Join(parent, "report.json")); err == nil {
		t.Error("expected error when parent is a file")
	}
}
