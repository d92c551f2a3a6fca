package ris

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/refsift/refsift/internal/record"
)

// DefaultType is used when a record carries no reference type.
const DefaultType = "JOUR"

// Write serializes records as RIS, one tag per line, each block terminated
// by `ER  - ` and a blank line. Provenance fields are stripped before
// serialization; empty fields are omitted. A record written and re-parsed
// reproduces the same canonical field values.
func Write(w io.Writer, recs []record.Record) error {
	for _, rec := range recs {
		if _, err := io.WriteString(w, formatRecord(rec.StripProvenance())); err != nil {
			return fmt.Errorf("writing RIS record: %w", err)
		}
	}
	return nil
}

// WriteFile serializes records to a file on disk.
func WriteFile(path string, recs []record.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating RIS file: %w", err)
	}
	defer f.Close()

	if err := Write(f, recs); err != nil {
		return err
	}
	return f.Close()
}

// String serializes records to an in-memory RIS string.
func String(recs []record.Record) string {
	var b strings.Builder
	for _, rec := range recs {
		b.WriteString(formatRecord(rec.StripProvenance()))
	}
	return b.String()
}

func formatRecord(rec record.Record) string {
	var b strings.Builder

	recType := rec.Type
	if recType == "" {
		recType = DefaultType
	}
	writeTag(&b, "TY", recType)
	writeTag(&b, "TI", rec.Title)
	for _, author := range rec.Authors {
		writeTag(&b, "AU", author)
	}
	writeTag(&b, "PY", rec.Year)
	writeTag(&b, "JO", rec.Journal)
	writeTag(&b, "DO", rec.DOI)
	writeTag(&b, "AB", rec.Abstract)
	for _, kw := range rec.Keywords {
		writeTag(&b, "KW", kw)
	}
	b.WriteString("ER  - \n\n")

	return b.String()
}

func writeTag(b *strings.Builder, tag, value string) {
	if value == "" {
		return
	}
	b.WriteString(tag)
	b.WriteString("  - ")
	b.WriteString(value)
	b.WriteString("\n")
}
