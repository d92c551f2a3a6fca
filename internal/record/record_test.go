package record

import (
	"reflect"
	"testing"
)

func TestSearchField(t *testing.T) {
	rec := Record{
		Title:    "Citation Matching at Scale",
		Abstract: "We study matching.",
		Keywords: []string{"citations", "matching"},
	}

	if got := rec.SearchField("title"); got != "Citation Matching at Scale" {
		t.Errorf("title = %q", got)
	}
	if got := rec.SearchField("keywords"); got != "citations; matching" {
		t.Errorf("keywords = %q", got)
	}
	if got := rec.SearchField("journal"); got != "" {
		t.Errorf("unknown field = %q, want empty", got)
	}
}

func TestSearchFields(t *testing.T) {
	rec := Record{Title: "Only a Title"}

	fields := rec.SearchFields()
	want := map[string]string{"title": "Only a Title"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("SearchFields() = %v, want %v (absent fields skipped)", fields, want)
	}

	fields = rec.SearchFields("abstract")
	if len(fields) != 0 {
		t.Errorf("SearchFields(abstract) = %v, want empty", fields)
	}
}

func TestStripProvenance(t *testing.T) {
	rec := Record{
		Title:           "Kept",
		DOI:             "10.1/x",
		SourceFile:      "a.ris",
		AppearsIn:       []string{"a.ris", "b.ris"},
		OccurrenceCount: 2,
		DuplicateOf:     "a.ris",
		FuzzyMatch:      true,
	}

	stripped := rec.StripProvenance()
	want := Record{Title: "Kept", DOI: "10.1/x"}
	if !reflect.DeepEqual(stripped, want) {
		t.Errorf("StripProvenance() = %+v, want %+v", stripped, want)
	}
	// Original is untouched
	if rec.SourceFile != "a.ris" {
		t.Error("StripProvenance mutated the receiver")
	}
}
