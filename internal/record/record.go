// Package record defines the core domain type for bibliographic citation records.
package record

import "strings"

// Record represents one bibliographic entry from a RIS dataset.
//
// The first group of fields is the canonical metadata resolved from RIS tag
// aliases at parse time. The provenance group is populated by the matching
// passes and is never present in raw input nor written back to RIS.
type Record struct {
	Type     string   `json:"type,omitempty"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors,omitempty"`
	Year     string   `json:"year,omitempty"`
	Journal  string   `json:"journal,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	// Provenance
	SourceFile      string   `json:"source_file,omitempty"`
	AppearsIn       []string `json:"appears_in,omitempty"`
	OccurrenceCount int      `json:"occurrence_count,omitempty"`
	DuplicateOf     string   `json:"duplicate_of,omitempty"`
	FuzzyMatch      bool     `json:"fuzzy_match,omitempty"`
}

// SearchFieldNames lists the text fields the query engine can match against.
var SearchFieldNames = []string{"title", "abstract", "keywords"}

// SearchField returns the searchable text of the named field. Multi-valued
// fields are joined with "; ". Unknown names return "".
func (r Record) SearchField(name string) string {
	switch name {
	case "title":
		return r.Title
	case "abstract":
		return r.Abstract
	case "keywords":
		return strings.Join(r.Keywords, "; ")
	}
	return ""
}

// SearchFields returns the named searchable fields as a map, skipping fields
// absent from the record. Passing no names selects all searchable fields.
func (r Record) SearchFields(names ...string) map[string]string {
	if len(names) == 0 {
		names = SearchFieldNames
	}
	fields := make(map[string]string, len(names))
	for _, name := range names {
		if text := r.SearchField(name); text != "" {
			fields[name] = text
		}
	}
	return fields
}

// StripProvenance returns a copy with all provenance fields cleared,
// suitable for serialization back to RIS.
func (r Record) StripProvenance() Record {
	r.SourceFile = ""
	r.AppearsIn = nil
	r.OccurrenceCount = 0
	r.DuplicateOf = ""
	r.FuzzyMatch = false
	return r
}
