package match

import (
	"fmt"
	"strings"

	"github.com/refsift/refsift/internal/record"
)

// Score rates the quality of a matched pair on a deterministic ladder;
// the first matching rule wins. It is total and never fails: a pair that
// satisfies no rule still gets the floor score.
//
//	1.00  DOI equality (trim/case-insensitive)
//	0.95  exact normalized title + year (year present on both sides)
//	0.90  title similarity >= 0.95, same year
//	0.85  title similarity >= 0.90, same year
//	0.75  title similarity >= 0.85, same year
//	0.50  everything else
func Score(a, b record.Record) (confidence float64, reason string) {
	doiA := strings.ToLower(strings.TrimSpace(a.DOI))
	doiB := strings.ToLower(strings.TrimSpace(b.DOI))
	if doiA != "" && doiA == doiB {
		return 1.00, "DOI match"
	}

	titleA := NormalizeTitle(a.Title)
	titleB := NormalizeTitle(b.Title)
	yearA := leadingDigits(a.Year)
	yearB := leadingDigits(b.Year)

	if titleA != "" && titleA == titleB && yearA != "" && yearA == yearB {
		return 0.95, "exact title+year match"
	}

	if titleA != "" && titleB != "" && yearA == yearB {
		sim := Similarity(titleA, titleB)
		switch {
		case sim >= 0.95:
			return 0.90, fmt.Sprintf("high similarity (%.2f)", sim)
		case sim >= 0.90:
			return 0.85, fmt.Sprintf("good similarity (%.2f)", sim)
		case sim >= 0.85:
			return 0.75, fmt.Sprintf("fair similarity (%.2f)", sim)
		}
	}

	return 0.50, "low confidence match"
}
