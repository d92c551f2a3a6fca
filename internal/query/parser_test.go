package query

import (
	"errors"
	"testing"
)

func TestParse_Precedence(t *testing.T) {
	// AND binds tighter than OR: a OR b AND c == Or(a, And(b, c))
	node, err := Parse("alpha OR beta AND gamma")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	or, ok := node.(*Or)
	if !ok {
		t.Fatalf("expected Or at root, got %T", node)
	}
	if _, ok := or.Left.(*Term); !ok {
		t.Errorf("expected Term on left of Or, got %T", or.Left)
	}
	if _, ok := or.Right.(*And); !ok {
		t.Errorf("expected And on right of Or, got %T", or.Right)
	}
}

func TestParse_ParenthesesOverride(t *testing.T) {
	node, err := Parse("(alpha OR beta) AND gamma")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	and, ok := node.(*And)
	if !ok {
		t.Fatalf("expected And at root, got %T", node)
	}
	if _, ok := and.Left.(*Or); !ok {
		t.Errorf("expected parenthesized Or on left, got %T", and.Left)
	}
}

func TestParse_ImplicitAnd(t *testing.T) {
	node, err := Parse(`climate "risk assessment"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	and, ok := node.(*And)
	if !ok {
		t.Fatalf("juxtaposition should parse as And, got %T", node)
	}
	if _, ok := and.Left.(*Term); !ok {
		t.Errorf("expected Term left, got %T", and.Left)
	}
	phrase, ok := and.Right.(*Phrase)
	if !ok {
		t.Fatalf("expected Phrase right, got %T", and.Right)
	}
	if phrase.Text != "risk assessment" {
		t.Errorf("phrase text = %q, want %q", phrase.Text, "risk assessment")
	}
}

func TestParse_FieldScopes(t *testing.T) {
	node, err := Parse(`neural:title "deep learning":abstract`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	and := node.(*And)
	if term := and.Left.(*Term); term.Scope != ScopeTitle {
		t.Errorf("term scope = %q, want title", term.Scope)
	}
	if phrase := and.Right.(*Phrase); phrase.Scope != ScopeAbstract {
		t.Errorf("phrase scope = %q, want abstract", phrase.Scope)
	}
}

func TestParse_LowercaseOperators(t *testing.T) {
	node, err := Parse("alpha and beta or gamma")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := node.(*Or); !ok {
		t.Errorf("expected lowercase operators recognized, got %T root", node)
	}
}

func TestParse_RealWorldQuery(t *testing.T) {
	// The kind of string users paste from screening tools.
	node, err := Parse(`("ChatGPT" OR "LLM") AND ("Risk Assessment" OR "Risk-of-Bias")`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := node.(*And); !ok {
		t.Fatalf("expected And at root, got %T", node)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantPos int
	}{
		{"empty query", "", 0},
		{"blank query", "   ", 3},
		{"unbalanced open", "(alpha OR beta", 14},
		{"unbalanced close", "alpha)", 5},
		{"dangling and", "alpha AND", 9},
		{"leading or", "OR alpha", 0},
		{"unterminated phrase", `"risk assessment`, 0},
		{"empty phrase", `""`, 0},
		{"unknown scope", "alpha:venue", 0},
		{"empty term before scope", ":title", 0},
		{"wildcard only", "*", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want syntax error", tt.input)
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if synErr.Pos != tt.wantPos {
				t.Errorf("error position = %d, want %d (%v)", synErr.Pos, tt.wantPos, err)
			}
		})
	}
}

func TestWildcardBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		text  string
		match bool
	}{
		{"trailing wildcard matches suffixed form", "assess*", "a new assessment method", true},
		{"trailing wildcard matches gerund", "assess*", "assessing outcomes", true},
		{"trailing wildcard rejects interior start", "assess*", "we reassess yearly", false},
		{"trailing wildcard matches bare word", "assess*", "we assess yearly", true},
		{"leading wildcard matches prefixed form", "*assess", "we reassess yearly", true},
		{"leading wildcard rejects suffixed form", "*assess", "an assessment", false},
		{"both-side wildcard matches interior", "*sess*", "reassessment", true},
		{"plain term exact word only", "assess", "assessment", false},
		{"plain term matches word", "assess", "they assess risk", true},
		{"case insensitive", "chatgpt", "ChatGPT in education", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.term)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.term, err)
			}
			res := Evaluate(node, map[string]string{"title": tt.text})
			if res.Matched != tt.match {
				t.Errorf("Evaluate(%q, %q).Matched = %v, want %v", tt.term, tt.text, res.Matched, tt.match)
			}
		})
	}
}
