// Package query implements the Boolean full-text query engine: a
// recursive-descent parser producing an AST over terms, phrases, AND/OR and
// parentheses, plus an evaluator that matches records and computes highlight
// spans.
package query

import (
	"fmt"
	"regexp"
)

// Field scopes a leaf can be restricted to. ScopeAll matches against every
// searchable field offered at evaluation time.
const (
	ScopeAll      = "all"
	ScopeTitle    = "title"
	ScopeAbstract = "abstract"
	ScopeKeywords = "keywords"
)

// validScopes is the closed set accepted by the parser.
var validScopes = map[string]bool{
	ScopeAll:      true,
	ScopeTitle:    true,
	ScopeAbstract: true,
	ScopeKeywords: true,
}

// Node is a node of a parsed query. The tree is immutable once parsed.
type Node interface {
	node()
}

// Term is a single token, possibly carrying * wildcards, restricted to a
// field scope.
type Term struct {
	Text  string
	Scope string

	re *regexp.Regexp
}

// Phrase is an exact quoted sequence; interior whitespace matches exactly as
// written.
type Phrase struct {
	Text  string
	Scope string

	re *regexp.Regexp
}

// And combines two subqueries; both must match. Binds tighter than Or.
type And struct {
	Left, Right Node
}

// Or combines two subqueries; either may match.
type Or struct {
	Left, Right Node
}

func (*Term) node()   {}
func (*Phrase) node() {}
func (*And) node()    {}
func (*Or) node()     {}

// SyntaxError reports malformed query text along with the byte offset of the
// offending token. The parser never recovers by guessing intent.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query syntax error at position %d: %s", e.Pos, e.Msg)
}

// leaf is the common view of Term and Phrase used by the evaluator.
type leaf interface {
	scope() string
	pattern() *regexp.Regexp
}

func (t *Term) scope() string             { return t.Scope }
func (t *Term) pattern() *regexp.Regexp   { return t.re }
func (p *Phrase) scope() string           { return p.Scope }
func (p *Phrase) pattern() *regexp.Regexp { return p.re }
