package match

import "github.com/refsift/refsift/internal/record"

// Options controls a pairwise comparison.
type Options struct {
	UseFuzzy  bool    // run the fuzzy pass over key-unmatched remainders
	Threshold float64 // similarity cutoff; <=0 means DefaultThreshold
}

// Result partitions the two input datasets. Every input record appears in
// exactly one of the three buckets: Overlap holds A's copy of each record
// whose key (or fuzzy match) also occurs in B, UniqueA and UniqueB hold the
// rest of each side.
type Result struct {
	Overlap []record.Record `json:"overlap"`
	UniqueA []record.Record `json:"unique_a"`
	UniqueB []record.Record `json:"unique_b"`
}

// Compare computes overlap and per-side unique sets for two datasets.
//
// Records are fingerprinted and bucketed by key-set intersection; the overlap
// representative is always A's copy. When fuzzy matching is enabled the
// remainders go through FuzzyMatch and each accepted pair promotes its A-side
// record into Overlap tagged FuzzyMatch=true. An empty side short-circuits:
// the other side is wholly unique.
func Compare(a, b []record.Record, opts Options) Result {
	if len(a) == 0 {
		return Result{UniqueB: b}
	}
	if len(b) == 0 {
		return Result{UniqueA: a}
	}

	keysA := keySet(a)
	keysB := keySet(b)

	var res Result
	for _, rec := range a {
		if keysB[Fingerprint(rec).String()] {
			res.Overlap = append(res.Overlap, rec)
		} else {
			res.UniqueA = append(res.UniqueA, rec)
		}
	}
	for _, rec := range b {
		if !keysA[Fingerprint(rec).String()] {
			res.UniqueB = append(res.UniqueB, rec)
		}
	}

	if opts.UseFuzzy && len(res.UniqueA) > 0 && len(res.UniqueB) > 0 {
		threshold := opts.Threshold
		if threshold <= 0 {
			threshold = DefaultThreshold
		}
		pairs, restA, restB := FuzzyMatch(res.UniqueA, res.UniqueB, threshold)
		for _, p := range pairs {
			promoted := p.A
			promoted.FuzzyMatch = true
			res.Overlap = append(res.Overlap, promoted)
		}
		res.UniqueA = restA
		res.UniqueB = restB
	}

	return res
}

// keySet returns the set of fingerprint key strings for a dataset.
func keySet(recs []record.Record) map[string]bool {
	keys := make(map[string]bool, len(recs))
	for _, rec := range recs {
		keys[Fingerprint(rec).String()] = true
	}
	return keys
}
