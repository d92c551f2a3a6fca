package match

import (
	"sort"
	"strconv"

	"github.com/refsift/refsift/internal/record"
)

// Source is one named dataset feeding deduplication.
type Source struct {
	Name    string
	Records []record.Record
}

// Group is one fingerprint key and the records sharing it, in global
// first-seen order. A group of size 1 is unique; size >= 2 is a duplicate
// group whose first record is the elected master.
type Group struct {
	Key     Key
	Records []record.Record
}

// Master returns the elected representative of the group.
func (g Group) Master() record.Record {
	return g.Records[0]
}

// GroupByFingerprint tags every record with its source name, fingerprints
// it, and groups records across all sources by key. Groups come back in the
// order their keys were first seen; records within a group keep global input
// order.
func GroupByFingerprint(sources []Source) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, src := range sources {
		for _, rec := range src.Records {
			rec.SourceFile = src.Name
			key := Fingerprint(rec)
			ks := key.String()
			i, seen := index[ks]
			if !seen {
				i = len(groups)
				index[ks] = i
				groups = append(groups, Group{Key: key})
			}
			groups[i].Records = append(groups[i].Records, rec)
		}
	}
	return groups
}

// Deduplicate merges N source datasets into a deduplicated set with
// provenance. For each fingerprint group the first-seen record becomes the
// master, emitted into unique with OccurrenceCount set to the group size and
// AppearsIn listing the distinct source names in first-sight order; every
// later group member is emitted into removed carrying DuplicateOf (the
// master's source name) and the same AppearsIn list. Unique records are
// sorted by descending year then title, ties keeping input order.
func Deduplicate(sources []Source) (unique, removed []record.Record) {
	for _, g := range GroupByFingerprint(sources) {
		appearsIn := sourceNames(g.Records)

		master := g.Records[0]
		master.OccurrenceCount = len(g.Records)
		master.AppearsIn = appearsIn
		unique = append(unique, master)

		for _, dup := range g.Records[1:] {
			dup.OccurrenceCount = len(g.Records)
			dup.AppearsIn = appearsIn
			dup.DuplicateOf = master.SourceFile
			removed = append(removed, dup)
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		yi, yj := yearSortValue(unique[i]), yearSortValue(unique[j])
		if yi != yj {
			return yi > yj
		}
		return unique[i].Title < unique[j].Title
	})
	return unique, removed
}

// sourceNames returns the distinct source names of a group in first-sight order.
func sourceNames(recs []record.Record) []string {
	var names []string
	seen := make(map[string]bool)
	for _, rec := range recs {
		if !seen[rec.SourceFile] {
			seen[rec.SourceFile] = true
			names = append(names, rec.SourceFile)
		}
	}
	return names
}

// yearSortValue converts a record's year to an int for sorting.
// Records without a usable year sort after all dated records.
func yearSortValue(rec record.Record) int {
	digits := leadingDigits(rec.Year)
	if digits == "" {
		return -1
	}
	y, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	return y
}
