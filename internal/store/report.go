package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/field"
	"github.com/san-kum/planetfield/internal/sim"
)

// Report is the summary of one headless run. It carries the run's settings
// and per-frame wrap counts, never body positions.
type Report struct {
	Preset        string             `json:"preset,omitempty"`
	Seed          int64              `json:"seed"`
	Timestamp     time.Time          `json:"timestamp"`
	World         field.World        `json:"world"`
	Bodies        int                `json:"bodies"`
	FPS           int                `json:"fps"`
	Frames        int                `json:"frames"`
	SimTime       float64            `json:"sim_time"`
	Wraps         int                `json:"wraps"`
	WrapsPerFrame []float64          `json:"wraps_per_frame"`
	Metrics       map[string]float64 `json:"metrics"`
}

func NewReport(preset string, cfg *config.Config, result *sim.Result) *Report {
	return &Report{
		Preset:        preset,
		Seed:          cfg.Seed,
		Timestamp:     time.Now(),
		World:         cfg.World,
		Bodies:        cfg.Bodies,
		FPS:           cfg.Run.FPS,
		Frames:        result.Frames,
		SimTime:       result.SimTime,
		Wraps:         result.Wraps,
		WrapsPerFrame: result.WrapsPerFrame,
		Metrics:       result.Metrics,
	}
}

func (r *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// WriteCSV writes one row per frame: frame index, frame time and the wraps
// in that frame.
func (r *Report) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"frame", "time", "wraps"}); err != nil {
		return err
	}

	dt := 0.0
	if r.FPS > 0 {
		dt = 1 / float64(r.FPS)
	}
	for i, wraps := range r.WrapsPerFrame {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(float64(i+1)*dt, 'f', 6, 64),
			strconv.FormatFloat(wraps, 'f', 0, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Export writes the report to path, as CSV when the extension is .csv and
// JSON otherwise. A path of "-" writes JSON to stdout.
func (r *Report) Export(path string) error {
	if path == "-" {
		return r.WriteJSON(os.Stdout)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.writeAndClose(file, filepath.Ext(path)); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// writeAndClose encodes by extension and closes w, returning the first
// error from either.
func (r *Report) writeAndClose(w io.WriteCloser, ext string) error {
	var err error
	switch strings.ToLower(ext) {
	case ".csv":
		err = r.WriteCSV(w)
	default:
		err = r.WriteJSON(w)
	}
	if err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Load reads a JSON report written by Export.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
