package services

import (
	"math"
	"testing"

	"housing-info/models"
)

func TestCountFurnishing(t *testing.T) {
	r := CountFurnishing(sampleHouses())

	if r.Total != 5 {
		t.Errorf("Total: got %d, want 5", r.Total)
	}
	if r.Counts[models.Furnished] != 2 {
		t.Errorf("Furnished: got %d, want 2", r.Counts[models.Furnished])
	}
	if r.Counts[models.SemiFurnished] != 1 {
		t.Errorf("SemiFurnished: got %d, want 1", r.Counts[models.SemiFurnished])
	}
	if r.Counts[models.Unfurnished] != 2 {
		t.Errorf("Unfurnished: got %d, want 2", r.Counts[models.Unfurnished])
	}

	sum := 0
	var pct float64
	for _, s := range models.FurnishingStatuses {
		sum += r.Counts[s]
		pct += r.Percentage(s)
	}
	if sum != r.Total {
		t.Errorf("counts sum to %d, want %d", sum, r.Total)
	}
	if math.Abs(pct-100) > 0.01 {
		t.Errorf("percentages sum to %.3f, want 100", pct)
	}
	if got := r.PercentageLabel(models.SemiFurnished); got != "20.0%" {
		t.Errorf("SemiFurnished label: got %q, want 20.0%%", got)
	}
}

func TestCountFurnishingEmptyDataset(t *testing.T) {
	r := CountFurnishing(nil)
	if !r.Empty() {
		t.Error("expected empty report")
	}
	for _, s := range models.FurnishingStatuses {
		if r.Counts[s] != 0 {
			t.Errorf("%s: got %d, want 0", s, r.Counts[s])
		}
		if got := r.PercentageLabel(s); got != "0.0%" {
			t.Errorf("%s label: got %q, want 0.0%%", s, got)
		}
	}
}

func TestFurnishingLines(t *testing.T) {
	lines := FurnishingLines(CountFurnishing(sampleHouses()))
	want := []string{
		"Furnished: 2 (40.0%)",
		"Semi-Furnished: 1 (20.0%)",
		"Unfurnished: 2 (40.0%)",
		"Total Houses: 5",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines: got %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}
