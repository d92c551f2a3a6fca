package query

import (
	"fmt"
	"regexp"
	"strings"
)

// token kinds produced by the lexer.
const (
	tokEOF = iota
	tokLParen
	tokRParen
	tokAnd
	tokOr
	tokTerm
	tokPhrase
)

type token struct {
	kind  int
	text  string // term text or phrase body (quotes stripped)
	scope string // field scope, "" when unscoped
	pos   int    // byte offset in the input
}

// Parse compiles a query string into an immutable AST. Leaf patterns are
// compiled once here, so evaluation never re-parses. Malformed input returns
// a *SyntaxError carrying the offending position.
//
// Grammar: OR-expressions of AND-expressions of primaries, AND binding
// tighter, parentheses overriding. Juxtaposed primaries combine as an
// implicit AND, so `climate "risk assessment"` means both must match.
func Parse(input string) (Node, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &SyntaxError{Pos: tok.pos, Msg: "unexpected " + describe(tok)}
	}
	return node, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }
func (p *parser) next() token { t := p.toks[p.i]; p.i++; return t }

// parseOr := and_expr (OR and_expr)*
func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

// parseAnd := primary (AND primary | primary)*
// The second alternative is the implicit-AND juxtaposition rule.
func (p *parser) parseAnd() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokAnd:
			p.next()
		case tokTerm, tokPhrase, tokLParen:
			// implicit AND
		default:
			return left, nil
		}
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
}

// parsePrimary := '(' or_expr ')' | phrase | term
func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokLParen:
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &SyntaxError{Pos: closing.pos, Msg: "expected ')', got " + describe(closing)}
		}
		return node, nil
	case tokPhrase:
		re, err := compilePhrase(tok.text)
		if err != nil {
			return nil, &SyntaxError{Pos: tok.pos, Msg: err.Error()}
		}
		return &Phrase{Text: tok.text, Scope: tok.scope, re: re}, nil
	case tokTerm:
		re, err := compileTerm(tok.text)
		if err != nil {
			return nil, &SyntaxError{Pos: tok.pos, Msg: err.Error()}
		}
		return &Term{Text: tok.text, Scope: tok.scope, re: re}, nil
	default:
		return nil, &SyntaxError{Pos: tok.pos, Msg: "expected term, phrase, or '(', got " + describe(tok)}
	}
}

// lex splits the input into tokens. AND/OR are recognized case-insensitively
// as bare words; everything else up to whitespace, parens, or quotes is a
// term. Phrases and terms may carry a ':scope' suffix.
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case c == '"':
			start := i
			end := strings.IndexByte(input[i+1:], '"')
			if end < 0 {
				return nil, &SyntaxError{Pos: start, Msg: "unterminated phrase"}
			}
			body := input[i+1 : i+1+end]
			i = i + 2 + end
			scope, n, err := lexScope(input, i, start)
			if err != nil {
				return nil, err
			}
			i = n
			if strings.TrimSpace(body) == "" {
				return nil, &SyntaxError{Pos: start, Msg: "empty phrase"}
			}
			toks = append(toks, token{kind: tokPhrase, text: body, scope: scope, pos: start})
		default:
			start := i
			for i < len(input) && !strings.ContainsAny(string(input[i]), " \t\n\r()\"") {
				i++
			}
			word := input[start:i]
			switch strings.ToUpper(word) {
			case "AND":
				toks = append(toks, token{kind: tokAnd, pos: start})
				continue
			case "OR":
				toks = append(toks, token{kind: tokOr, pos: start})
				continue
			}
			text, scope, err := splitScope(word, start)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokTerm, text: text, scope: scope, pos: start})
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

// lexScope reads an optional ':scope' suffix starting at offset i,
// returning the scope and the new offset.
func lexScope(input string, i, tokPos int) (string, int, error) {
	if i >= len(input) || input[i] != ':' {
		return "", i, nil
	}
	start := i + 1
	j := start
	for j < len(input) && !strings.ContainsAny(string(input[j]), " \t\n\r()\"") {
		j++
	}
	scope := strings.ToLower(input[start:j])
	if !validScopes[scope] {
		return "", 0, &SyntaxError{Pos: tokPos, Msg: fmt.Sprintf("unknown field scope %q", scope)}
	}
	return scope, j, nil
}

// splitScope separates a bare term from its optional ':scope' suffix.
func splitScope(word string, pos int) (text, scope string, err error) {
	idx := strings.IndexByte(word, ':')
	if idx < 0 {
		return word, "", nil
	}
	scope = strings.ToLower(word[idx+1:])
	if !validScopes[scope] {
		return "", "", &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unknown field scope %q", word[idx+1:])}
	}
	text = word[:idx]
	if text == "" {
		return "", "", &SyntaxError{Pos: pos, Msg: "empty term before field scope"}
	}
	return text, scope, nil
}

// compileTerm compiles a term into a word-boundary-anchored case-insensitive
// pattern. Each '*' matches zero or more word characters, never a free-form
// any-character run: `assess*` matches "assessment" and "assessing" but never
// the tail of "reassess". A trailing wildcard keeps only the leading anchor
// and a leading wildcard only the trailing one, while a term wildcarded on
// both sides anchors at both boundaries.
func compileTerm(text string) (*regexp.Regexp, error) {
	parts := strings.Split(text, "*")
	if strings.Join(parts, "") == "" {
		return nil, fmt.Errorf("term %q has no word characters", text)
	}
	leading := parts[0] == ""
	trailing := parts[len(parts)-1] == ""

	var b strings.Builder
	b.WriteString("(?i)")
	if !leading || trailing {
		b.WriteString(`\b`)
	}
	for i, part := range parts {
		if i > 0 {
			b.WriteString(`\w*`)
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	if !trailing || leading {
		b.WriteString(`\b`)
	}
	return regexp.Compile(b.String())
}

// compilePhrase compiles a quoted phrase into a literal boundary-anchored
// pattern; wildcards inside phrases are taken literally.
func compilePhrase(text string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(text) + `\b`)
}

// describe names a token for error messages.
func describe(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of query"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokAnd:
		return "'AND'"
	case tokOr:
		return "'OR'"
	case tokPhrase:
		return fmt.Sprintf("phrase %q", t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}
