// Package stats computes descriptive statistics for a citation dataset.
package stats

import (
	"sort"
	"strconv"

	"github.com/refsift/refsift/internal/record"
)

// DefaultTopN is the number of entries kept in top-author/journal rankings.
const DefaultTopN = 10

// NameCount is one entry of a ranked listing.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// YearCount is the number of records published in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Summary describes a single dataset.
type Summary struct {
	Total        int         `json:"total"`
	WithDOI      int         `json:"with_doi"`
	WithAbstract int         `json:"with_abstract"`
	YearMin      int         `json:"year_min,omitempty"`
	YearMax      int         `json:"year_max,omitempty"`
	Years        []YearCount `json:"years,omitempty"`
	TopAuthors   []NameCount `json:"top_authors,omitempty"`
	TopJournals  []NameCount `json:"top_journals,omitempty"`
	Types        []NameCount `json:"types,omitempty"`
}

// Summarize computes a dataset summary. Rankings are sorted by descending
// count with name ascending as tie-break, truncated to topN (<=0 means
// DefaultTopN). Records with missing fields simply don't contribute to the
// affected figures.
func Summarize(recs []record.Record, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	s := Summary{Total: len(recs)}
	authors := make(map[string]int)
	journals := make(map[string]int)
	types := make(map[string]int)
	years := make(map[int]int)

	for _, rec := range recs {
		if rec.DOI != "" {
			s.WithDOI++
		}
		if rec.Abstract != "" {
			s.WithAbstract++
		}
		for _, a := range rec.Authors {
			authors[a]++
		}
		if rec.Journal != "" {
			journals[rec.Journal]++
		}
		if rec.Type != "" {
			types[rec.Type]++
		}
		if y, ok := recordYear(rec); ok {
			years[y]++
			if s.YearMin == 0 || y < s.YearMin {
				s.YearMin = y
			}
			if y > s.YearMax {
				s.YearMax = y
			}
		}
	}

	s.TopAuthors = rank(authors, topN)
	s.TopJournals = rank(journals, topN)
	s.Types = rank(types, 0)
	s.Years = yearCounts(years)
	return s
}

// recordYear parses the leading digits of the year field.
func recordYear(rec record.Record) (int, bool) {
	raw := rec.Year
	i := 0
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	if i > 4 {
		i = 4
	}
	y, err := strconv.Atoi(raw[:i])
	if err != nil {
		return 0, false
	}
	return y, true
}

// rank converts a count map to a sorted listing, truncated to topN when
// topN > 0.
func rank(counts map[string]int, topN int) []NameCount {
	if len(counts) == 0 {
		return nil
	}
	ranked := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, NameCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// yearCounts converts the per-year map to an ascending listing.
func yearCounts(years map[int]int) []YearCount {
	if len(years) == 0 {
		return nil
	}
	counts := make([]YearCount, 0, len(years))
	for y, c := range years {
		counts = append(counts, YearCount{Year: y, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Year < counts[j].Year })
	return counts
}
