// Package ris reads and writes RIS bibliographic files, resolving tag
// aliases into the canonical record fields so downstream code never sees raw
// tags.
package ris

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/refsift/refsift/internal/record"
)

// MaxLineCapacity bounds a single RIS line (abstracts can run long).
const MaxLineCapacity = 1024 * 1024

// canonicalTag maps each recognized RIS tag to its canonical field. Several
// aliases feed the same field; the alias lists mirror what reference
// managers actually emit. Unrecognized tags are ignored.
var canonicalTag = map[string]string{
	"TY": "type",
	"TI": "title", "T1": "title", "CT": "title",
	"AU": "author", "A1": "author", "A2": "author",
	"PY": "year", "Y1": "year",
	"JO": "journal", "JF": "journal", "JA": "journal", "T2": "journal",
	"DO": "doi",
	"AB": "abstract", "N2": "abstract",
	"KW": "keyword",
}

// Parse reads RIS records from r. Each line is `TAG  - value`; `ER`
// terminates a record. Later single-valued tags do not overwrite an earlier
// value (the first alias wins), multi-valued tags append in input order.
// Malformed lines are skipped, so a damaged file yields partial data rather
// than an error.
func Parse(r io.Reader) ([]record.Record, error) {
	var (
		recs    []record.Record
		current record.Record
		seen    bool
	)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, MaxLineCapacity)
	scanner.Buffer(buf, MaxLineCapacity)

	for scanner.Scan() {
		tag, value, ok := splitLine(scanner.Text())
		if !ok {
			continue
		}
		if tag == "ER" {
			if seen {
				recs = append(recs, current)
			}
			current = record.Record{}
			seen = false
			continue
		}

		field, known := canonicalTag[tag]
		if !known {
			continue
		}
		seen = true
		switch field {
		case "type":
			setIfEmpty(&current.Type, value)
		case "title":
			setIfEmpty(&current.Title, value)
		case "author":
			current.Authors = append(current.Authors, value)
		case "year":
			setIfEmpty(&current.Year, value)
		case "journal":
			setIfEmpty(&current.Journal, value)
		case "doi":
			setIfEmpty(&current.DOI, value)
		case "abstract":
			setIfEmpty(&current.Abstract, value)
		case "keyword":
			current.Keywords = append(current.Keywords, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading RIS: %w", err)
	}

	// Tolerate a final record missing its ER terminator.
	if seen {
		recs = append(recs, current)
	}
	return recs, nil
}

// ParseFile reads RIS records from a file on disk.
func ParseFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening RIS file: %w", err)
	}
	defer f.Close()

	recs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return recs, nil
}

// splitLine splits one RIS line into tag and value. The canonical form is
// `TAG  - value`; a single space before the dash is tolerated.
func splitLine(line string) (tag, value string, ok bool) {
	line = strings.TrimRight(line, "\r")
	if len(line) < 2 {
		return "", "", false
	}
	tag = strings.ToUpper(line[:2])
	rest := line[2:]
	for _, sep := range []string{"  - ", " - ", "  -"} {
		if strings.HasPrefix(rest, sep) {
			return tag, strings.TrimSpace(rest[len(sep):]), true
		}
	}
	if rest == "" || strings.TrimSpace(rest) == "-" {
		// `ER  -` style terminators with trailing whitespace trimmed away.
		return tag, "", true
	}
	return "", "", false
}

// setIfEmpty assigns value to dst only when dst is still empty, implementing
// first-alias-wins resolution.
func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
