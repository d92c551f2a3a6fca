package main

import (
	"testing"

	"github.com/refsift/refsift/internal/query"
	"github.com/refsift/refsift/internal/record"
)

func TestDatasetName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"refs.ris", "refs.ris"},
		{"/data/exports/screening1.ris", "screening1.ris"},
		{"store:round2", "round2"},
	}
	for _, tt := range tests {
		if got := datasetName(tt.ref); got != tt.want {
			t.Errorf("datasetName(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestFormatAuthors(t *testing.T) {
	authors := []string{"Smith, J.", "Doe, A.", "Lee, K.", "Park, M."}

	if got := formatAuthors(authors, 3); got != "Smith, J., Doe, A., Lee, K., et al." {
		t.Errorf("formatAuthors = %q", got)
	}
	if got := formatAuthors(authors[:2], 3); got != "Smith, J., Doe, A." {
		t.Errorf("formatAuthors under limit = %q", got)
	}
	if got := formatAuthors(nil, 3); got != "" {
		t.Errorf("formatAuthors(nil) = %q, want empty", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString short = %q", got)
	}
	if got := truncateString("a very long title indeed", 10); got != "a very ..." {
		t.Errorf("truncateString long = %q", got)
	}
}

func TestHighlightField(t *testing.T) {
	spans := []query.Span{{Start: 0, End: 6}, {Start: 15, End: 21}}
	got := highlightField("Global Climate Change", spans)
	want := ">>Global<< Climate >>Change<<"
	if got != want {
		t.Errorf("highlightField = %q, want %q", got, want)
	}
}

func TestFindCounterpart(t *testing.T) {
	recsB := []record.Record{
		{Title: "Unrelated Work", Year: "2019"},
		{Title: "Machine Learning Basics", Year: "2020", DOI: "10.1/x"},
		{Title: "Deep Learning Survey", Year: "2021"},
	}

	// Exact fingerprint via DOI
	a := record.Record{Title: "ML Basics", DOI: " 10.1/X "}
	if got, ok := findCounterpart(a, recsB, 0.90); !ok || got.Title != "Machine Learning Basics" {
		t.Errorf("DOI counterpart = %+v, ok=%v", got, ok)
	}

	// Fuzzy title match within threshold, same year
	a = record.Record{Title: "Deep Learning Survy", Year: "2021"}
	if got, ok := findCounterpart(a, recsB, 0.90); !ok || got.Title != "Deep Learning Survey" {
		t.Errorf("fuzzy counterpart = %+v, ok=%v", got, ok)
	}

	// No counterpart
	a = record.Record{Title: "Quantum Chemistry", Year: "2021"}
	if _, ok := findCounterpart(a, recsB, 0.90); ok {
		t.Error("expected no counterpart")
	}
}
