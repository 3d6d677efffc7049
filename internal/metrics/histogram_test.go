package metrics

import "testing"

func TestHistogram(t *testing.T) {
	values := []float64{10, 0, 3, 1, 4, 2}
	bins := Histogram(values, 5)

	expected := []float64{2, 2, 1, 0, 1}
	for i := range expected {
		if bins[i] != expected[i] {
			t.Errorf("bin %d: expected %f, got %f", i, expected[i], bins[i])
		}
	}
	if values[0] != 10 || values[5] != 2 {
		t.Errorf("input reordered: %v", values)
	}

	flat := Histogram([]float64{2, 2, 2}, 4)
	if flat[0] != 3 {
		t.Errorf("expected all values in first bin, got %v", flat)
	}

	if len(Histogram(nil, 3)) != 3 {
		t.Error("expected empty bins for no values")
	}
}

func TestHistogramCountsEveryValue(t *testing.T) {
	values := make([]float64, 600)
	for i := range values {
		values[i] = 400 / float64(1+i%200)
	}

	total := 0.0
	for _, c := range Histogram(values, 60) {
		total += c
	}
	if total != 600 {
		t.Errorf("expected 600 counted values, got %f", total)
	}
}
