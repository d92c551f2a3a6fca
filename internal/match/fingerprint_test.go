package match

import (
	"testing"

	"github.com/refsift/refsift/internal/record"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"lowercase and strip punctuation", "Machine Learning: A Survey!", "machinelearningasurvey"},
		{"strips the", "The Impact of AI", "impactofai"},
		{"strips a", "A Study on Machine Learning", "studyonmachinelearning"},
		{"strips an", "An Overview of Deep Learning", "overviewofdeeplearning"},
		{"case insensitive article", "THE IMPACT OF AI", "impactofai"},
		{"strips only one article", "The A Team", "ateam"},
		{"article without space kept", "Another Look", "anotherlook"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTitle(tt.title)
			if got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
			// Normalization must be idempotent.
			if again := NormalizeTitle(got); again != got {
				t.Errorf("NormalizeTitle not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestYearToken(t *testing.T) {
	tests := []struct {
		name      string
		year      string
		normTitle string
		want      string
	}{
		{"plain year", "2023", "impactofai", "2023"},
		{"truncates to four digits", "20234", "x", "2023"},
		{"leading digits of date", "2021-03", "x", "2021"},
		{"missing year uses length placeholder", "", "impactofai", "noyear10"},
		{"non-numeric year uses placeholder", "forthcoming", "ab", "noyear2"},
		{"empty title still non-empty token", "", "", "noyear0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearToken(tt.year, tt.normTitle); got != tt.want {
				t.Errorf("YearToken(%q, %q) = %q, want %q", tt.year, tt.normTitle, got, tt.want)
			}
		})
	}
}

func TestFingerprint_DOIPriority(t *testing.T) {
	// A record with both DOI and title always keys by DOI, even when the
	// DOI string is syntactically unusual.
	rec := record.Record{Title: "The Impact of AI", Year: "2023", DOI: " NOT-a-real-doi "}
	key := Fingerprint(rec)
	if key.Kind != KeyDOI {
		t.Fatalf("expected DOI key, got kind %d", key.Kind)
	}
	if key.Value != "not-a-real-doi" {
		t.Errorf("expected trimmed lowercase DOI, got %q", key.Value)
	}
}

func TestFingerprint_ArticlePrefixEquivalence(t *testing.T) {
	a := record.Record{Title: "The Impact of AI", Year: "2023"}
	b := record.Record{Title: "Impact of AI", Year: "2023"}
	if Fingerprint(a).String() != Fingerprint(b).String() {
		t.Errorf("article-prefixed titles should fingerprint identically: %q vs %q",
			Fingerprint(a), Fingerprint(b))
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	rec := record.Record{Title: "Deep Learning", Year: "2019", Journal: "Nature"}
	first := Fingerprint(rec).String()
	for i := 0; i < 3; i++ {
		if got := Fingerprint(rec).String(); got != first {
			t.Fatalf("fingerprint changed across calls: %q vs %q", first, got)
		}
	}
}

func TestFingerprint_MissingYearDoesNotCollapseDifferentTitles(t *testing.T) {
	a := record.Record{Title: "Short Title"}
	b := record.Record{Title: "A Much Longer Different Title"}
	if Fingerprint(a).String() == Fingerprint(b).String() {
		t.Error("undated records with different-length titles must not share a key")
	}
}

func TestFingerprint_TotallyEmptyRecord(t *testing.T) {
	key := Fingerprint(record.Record{})
	if key.Kind != KeyTitleYear {
		t.Fatalf("expected TitleYear key for empty record, got kind %d", key.Kind)
	}
	if key.Year == "" {
		t.Error("year token must never be empty")
	}
}
