package match

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/refsift/refsift/internal/record"
)

// DefaultThreshold is the similarity cutoff for the fuzzy pass.
const DefaultThreshold = 0.90

// Pair couples the two sides of an accepted fuzzy match.
type Pair struct {
	A record.Record
	B record.Record
}

// Similarity returns a character-level similarity ratio in [0, 1] between
// two normalized titles: 1 minus the edit distance divided by the longer
// length. Equal strings score 1, entirely different strings approach 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(max)
}

// FuzzyMatch runs the approximate-matching pass over records that
// fingerprinting left unmatched. For each A record in original order it scans
// the B records in original order, skipping ones consumed by an earlier
// match, and accepts the first candidate whose normalized-title similarity
// meets the threshold and whose year token equals A's. The first acceptable
// candidate wins; there is no global optimum search. Records with empty
// normalized titles never match.
//
// Returns the accepted pairs plus the still-unmatched remainders of each
// side, in original order. O(n*m) over the residual sets left by key
// matching.
func FuzzyMatch(remainingA, remainingB []record.Record, threshold float64) (pairs []Pair, restA, restB []record.Record) {
	matchedA := make(map[int]bool)
	matchedB := make(map[int]bool)

	for i, a := range remainingA {
		titleA := NormalizeTitle(a.Title)
		if titleA == "" {
			continue
		}
		yearA := YearToken(a.Year, titleA)

		for j, b := range remainingB {
			if matchedB[j] {
				continue
			}
			titleB := NormalizeTitle(b.Title)
			if titleB == "" {
				continue
			}
			// Year gate: tokens must agree, including the case where both
			// sides carry the placeholder for equal-length undated titles.
			if yearA != YearToken(b.Year, titleB) {
				continue
			}
			if Similarity(titleA, titleB) >= threshold {
				pairs = append(pairs, Pair{A: a, B: b})
				matchedA[i] = true
				matchedB[j] = true
				break
			}
		}
	}

	for i, a := range remainingA {
		if !matchedA[i] {
			restA = append(restA, a)
		}
	}
	for j, b := range remainingB {
		if !matchedB[j] {
			restB = append(restB, b)
		}
	}
	return pairs, restA, restB
}
