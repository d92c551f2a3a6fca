package ris

import (
	"reflect"
	"strings"
	"testing"

	"github.com/refsift/refsift/internal/record"
)

const sampleRIS = `TY  - JOUR
TI  - Machine Learning in Healthcare
AU  - Smith, John
AU  - Doe, Alice
PY  - 2023
JO  - Journal of Medical Informatics
DO  - 10.1234/jmi.2023.001
AB  - A survey of machine learning applications in clinical settings.
KW  - machine learning
KW  - healthcare
ER  -

TY  - CONF
T1  - Deep Learning for Citation Matching
A1  - Lee, Kyung
Y1  - 2022
T2  - Proceedings of JCDL
ER  -
`

func TestParse(t *testing.T) {
	recs, err := Parse(strings.NewReader(sampleRIS))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	first := recs[0]
	if first.Title != "Machine Learning in Healthcare" {
		t.Errorf("title = %q", first.Title)
	}
	if !reflect.DeepEqual(first.Authors, []string{"Smith, John", "Doe, Alice"}) {
		t.Errorf("authors = %v", first.Authors)
	}
	if first.Year != "2023" || first.DOI != "10.1234/jmi.2023.001" {
		t.Errorf("year/doi = %q/%q", first.Year, first.DOI)
	}
	if !reflect.DeepEqual(first.Keywords, []string{"machine learning", "healthcare"}) {
		t.Errorf("keywords = %v", first.Keywords)
	}

	// Alias tags resolve to the same canonical fields.
	second := recs[1]
	if second.Title != "Deep Learning for Citation Matching" {
		t.Errorf("T1 alias not resolved: %q", second.Title)
	}
	if second.Year != "2022" || second.Journal != "Proceedings of JCDL" {
		t.Errorf("Y1/T2 aliases not resolved: %q/%q", second.Year, second.Journal)
	}
	if second.Type != "CONF" {
		t.Errorf("type = %q", second.Type)
	}
}

func TestParse_FirstAliasWins(t *testing.T) {
	input := "TI  - Primary Title\nCT  - Secondary Title\nER  - \n"
	recs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Primary Title" {
		t.Errorf("expected first alias to win, got %+v", recs)
	}
}

func TestParse_MissingTerminator(t *testing.T) {
	input := "TI  - Unterminated Record\nPY  - 2020\n"
	recs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected trailing record without ER, got %d", len(recs))
	}
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	input := "garbage line\nTI  - Good Title\nnot a tag\nER  - \n"
	recs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Good Title" {
		t.Errorf("expected malformed lines skipped, got %+v", recs)
	}
}

func TestRoundTrip(t *testing.T) {
	original := []record.Record{
		{
			Type:     "JOUR",
			Title:    "The Impact of AI",
			Authors:  []string{"Adams, Pat", "Berg, Chris"},
			Year:     "2023",
			Journal:  "AI Review",
			DOI:      "10.5555/ai.2023",
			Abstract: "Impact assessment of AI systems.",
			Keywords: []string{"AI", "impact"},
		},
	}

	recs, err := Parse(strings.NewReader(String(original)))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(recs, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", recs, original)
	}
}

func TestWrite_StripsProvenance(t *testing.T) {
	recs := []record.Record{{
		Title:           "Tracked Paper",
		Year:            "2021",
		SourceFile:      "a.ris",
		AppearsIn:       []string{"a.ris", "b.ris"},
		OccurrenceCount: 2,
		DuplicateOf:     "a.ris",
		FuzzyMatch:      true,
	}}

	out := String(recs)
	for _, forbidden := range []string{"a.ris", "b.ris", "occurrence"} {
		if strings.Contains(out, forbidden) {
			t.Errorf("serialized output leaks provenance %q:\n%s", forbidden, out)
		}
	}

	reparsed, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(reparsed) != 1 || reparsed[0].Title != "Tracked Paper" {
		t.Fatalf("unexpected reparse result: %+v", reparsed)
	}
	if reparsed[0].SourceFile != "" || reparsed[0].OccurrenceCount != 0 {
		t.Error("provenance must not survive a round trip")
	}
}

func TestWrite_DefaultsType(t *testing.T) {
	out := String([]record.Record{{Title: "No Type"}})
	if !strings.HasPrefix(out, "TY  - JOUR\n") {
		t.Errorf("expected default TY JOUR, got %q", out)
	}
}
