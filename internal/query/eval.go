package query

import "sort"

// Span is a half-open [Start, End) byte range within a field's text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MatchResult is the outcome of evaluating a query against one record.
// FieldMatches is populated independently of the boolean outcome: a field
// can contribute highlight spans even when the record as a whole does not
// satisfy the query, so a rendering layer can show partial matches.
type MatchResult struct {
	Matched          bool              `json:"matched"`
	FieldMatches     map[string][]Span `json:"field_matches,omitempty"`
	TotalOccurrences int               `json:"total_occurrences"`
}

// Evaluate runs a parsed query against a record's searchable fields, given
// as a field-name -> text map (absent fields simply omitted). The boolean
// verdict is a bottom-up tree walk; highlights are computed per field from
// every leaf pattern scoped to it, choosing the combination that maximizes
// the count of distinct non-overlapping spans rather than covered length.
func Evaluate(node Node, fields map[string]string) MatchResult {
	res := MatchResult{
		Matched:      eval(node, fields),
		FieldMatches: make(map[string][]Span),
	}

	leaves := collectLeaves(node)
	for _, name := range sortedNames(fields) {
		spans := selectSpans(candidateSpans(leaves, name, fields[name]))
		if len(spans) > 0 {
			res.FieldMatches[name] = spans
			res.TotalOccurrences += len(spans)
		}
	}
	if len(res.FieldMatches) == 0 {
		res.FieldMatches = nil
	}
	return res
}

// eval computes the boolean verdict. And/Or evaluate both children
// unconditionally: short-circuiting would change nothing for the verdict
// and highlights are collected separately anyway, but keeping the walk
// total makes the evaluator's cost independent of operand order.
func eval(node Node, fields map[string]string) bool {
	switch n := node.(type) {
	case *And:
		left := eval(n.Left, fields)
		right := eval(n.Right, fields)
		return left && right
	case *Or:
		left := eval(n.Left, fields)
		right := eval(n.Right, fields)
		return left || right
	case leaf:
		for name, text := range fields {
			if inScope(n.scope(), name) && n.pattern().MatchString(text) {
				return true
			}
		}
		return false
	}
	return false
}

// collectLeaves returns every Term/Phrase leaf of the tree in left-to-right
// order.
func collectLeaves(node Node) []leaf {
	switch n := node.(type) {
	case *And:
		return append(collectLeaves(n.Left), collectLeaves(n.Right)...)
	case *Or:
		return append(collectLeaves(n.Left), collectLeaves(n.Right)...)
	case leaf:
		return []leaf{n}
	}
	return nil
}

// candidateSpans gathers every match of every in-scope leaf pattern within
// one field's text.
func candidateSpans(leaves []leaf, fieldName, text string) []Span {
	var spans []Span
	for _, l := range leaves {
		if !inScope(l.scope(), fieldName) {
			continue
		}
		for _, m := range l.pattern().FindAllStringIndex(text, -1) {
			spans = append(spans, Span{Start: m[0], End: m[1]})
		}
	}
	return spans
}

// selectSpans picks the maximum number of non-overlapping spans from the
// candidates: earliest-end greedy interval selection, which is optimal for
// count. Ties sort by start offset so the result is deterministic for a
// fixed input; duplicates overlap themselves and drop out.
func selectSpans(candidates []Span) []Span {
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].End != candidates[j].End {
			return candidates[i].End < candidates[j].End
		}
		return candidates[i].Start < candidates[j].Start
	})

	var selected []Span
	lastEnd := -1
	for _, s := range candidates {
		if s.Start >= lastEnd {
			selected = append(selected, s)
			lastEnd = s.End
		}
	}
	return selected
}

// inScope reports whether a leaf's scope covers the named field. An empty
// scope means ScopeAll.
func inScope(scope, fieldName string) bool {
	return scope == "" || scope == ScopeAll || scope == fieldName
}

// sortedNames returns the field names in deterministic order.
func sortedNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
