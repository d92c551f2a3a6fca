// Package match implements record identity: fingerprint keys, fuzzy title
// matching, pairwise dataset comparison, and multi-source deduplication.
package match

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/refsift/refsift/internal/record"
)

// KeyKind distinguishes the two fingerprint branches.
type KeyKind int

const (
	// KeyDOI keys are derived from a non-empty DOI field.
	KeyDOI KeyKind = iota
	// KeyTitleYear keys fall back to normalized title plus year token.
	KeyTitleYear
)

// Key is a deterministic identity surrogate for a record. Two records with
// equal keys are grouped as the same work by the exact-match passes. For
// TitleYear keys equality is necessary but not sufficient evidence of
// identity; the fuzzy pass exists because key equality is too strict.
type Key struct {
	Kind  KeyKind
	Value string // normalized DOI, or normalized title
	Year  string // year token (TitleYear keys only)
}

// String returns the canonical string form used for set operations.
func (k Key) String() string {
	if k.Kind == KeyDOI {
		return "doi:" + k.Value
	}
	return "ty:" + k.Value + "_" + k.Year
}

// Fingerprint derives the matching key for a record. It is total: missing
// fields degrade to the TitleYear branch, with an empty title normalizing to
// "". The DOI branch is taken whenever a non-empty post-trim DOI exists,
// regardless of whether the string is a syntactically valid DOI.
func Fingerprint(rec record.Record) Key {
	if doi := strings.TrimSpace(rec.DOI); doi != "" {
		return Key{Kind: KeyDOI, Value: strings.ToLower(doi)}
	}
	norm := NormalizeTitle(rec.Title)
	return Key{Kind: KeyTitleYear, Value: norm, Year: YearToken(rec.Year, norm)}
}

// articlePrefixes are tried longest first so "an " wins over "a ".
var articlePrefixes = []string{"the ", "an ", "a "}

// NormalizeTitle lowercases a title, strips at most one leading English
// article, and removes every character that is not a letter or digit.
// The result is idempotent under repeated normalization.
func NormalizeTitle(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	for _, prefix := range articlePrefixes {
		if strings.HasPrefix(t, prefix) {
			t = t[len(prefix):]
			break
		}
	}
	var b strings.Builder
	for _, r := range t {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// YearToken returns the year component of a TitleYear key: the leading run
// of digits in the year field truncated to 4 characters. A record without a
// usable year gets a placeholder derived from the normalized title's length,
// so two undated records only share a token when their titles have the same
// normalized length.
func YearToken(year, normTitle string) string {
	if digits := leadingDigits(year); digits != "" {
		return digits
	}
	return fmt.Sprintf("noyear%d", len(normTitle))
}

// leadingDigits returns the leading digit run of the trimmed input,
// truncated to 4 characters, or "" if the input does not start with a digit.
func leadingDigits(s string) string {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 4 {
		i = 4
	}
	return s[:i]
}
