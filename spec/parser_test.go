package spec

import (
	"errors"
	"strings"
	"testing"

	"github.com/nihei9/xparse/lexer"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xparse.spec")
	defer teardown()

	rule := func(name, target string, items ...string) *RuleNode {
		return &RuleNode{
			Name:   name,
			Target: target,
			Items:  items,
		}
	}

	tests := []struct {
		caption string
		src     string
		rules   []*RuleNode
	}{
		{
			caption: "the empty source has no rules",
			src:     "",
		},
		{
			caption: "a rule referring to a terminal string",
			src: `A = B ;
B = "x" ;`,
			rules: []*RuleNode{
				rule("A_0", "A", "B"),
				rule("B_0", "B", "x"),
			},
		},
		{
			caption: "alternatives are numbered inside a group",
			src:     `E = E "+" T | T ; T = id | "(" E ")" ;`,
			rules: []*RuleNode{
				rule("E_0", "E", "E", "+", "T"),
				rule("E_1", "E", "T"),
				rule("T_0", "T", "id"),
				rule("T_1", "T", "(", "E", ")"),
			},
		},
		{
			caption: "brackets are separate symbols",
			src:     `F = ((E)) | [E]+ | a +- b ;`,
			rules: []*RuleNode{
				rule("F_0", "F", "(", "(", "E", ")", ")"),
				rule("F_1", "F", "[", "E", "]", "+"),
				rule("F_2", "F", "a", "+-", "b"),
			},
		},
		{
			caption: "the ordinal restarts in every group",
			src: `E = E + T ;
E = T ;`,
			rules: []*RuleNode{
				rule("E_0", "E", "E", "+", "T"),
				rule("E_0", "E", "T"),
			},
		},
		{
			caption: "empty alternatives",
			src:     `A = | a ; B = ;`,
			rules: []*RuleNode{
				rule("A_0", "A"),
				rule("A_1", "A", "a"),
				rule("B_0", "B"),
			},
		},
		{
			caption: "comments and escape sequences",
			src: `// a comment
S = "\"" "\\" ; // trailing comment`,
			rules: []*RuleNode{
				rule("S_0", "S", `"`, `\`),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			if len(root.Rules) != len(tt.rules) {
				t.Fatalf("unexpected rule count; want: %v, got: %v", len(tt.rules), len(root.Rules))
			}
			for i, r := range root.Rules {
				testRuleNode(t, r, tt.rules[i])
			}
		})
	}
}

func testRuleNode(t *testing.T, rule, expected *RuleNode) {
	t.Helper()
	if rule.Name != expected.Name || rule.Target != expected.Target {
		t.Fatalf("unexpected rule; want: %v (%v), got: %v (%v)", expected.Name, expected.Target, rule.Name, rule.Target)
	}
	if len(rule.Items) != len(expected.Items) {
		t.Fatalf("unexpected items; want: %q, got: %q", expected.Items, rule.Items)
	}
	for i, item := range rule.Items {
		if item != expected.Items[i] {
			t.Fatalf("unexpected items; want: %q, got: %q", expected.Items, rule.Items)
		}
	}
}

func TestParse_Error(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cause   error
		row     int
		col     int
	}{
		{
			caption: "a group must start with a target",
			src:     `= a ;`,
			cause:   synErrNoTarget,
			row:     1,
			col:     1,
		},
		{
			caption: "a terminal string cannot be a target",
			src:     `"a" = b ;`,
			cause:   synErrNoTarget,
			row:     1,
			col:     1,
		},
		{
			caption: "'=' must follow the target",
			src:     `A B ;`,
			cause:   synErrNoAssigner,
			row:     1,
			col:     3,
		},
		{
			caption: "'=' cannot appear among the items",
			src: `A = b
  = c ;`,
			cause: synErrUnexpectedToken,
			row:   2,
			col:   3,
		},
		{
			caption: "an unterminated group",
			src: `A = b ;
B = c`,
			cause: synErrUnexpectedEOF,
			row:   2,
			col:   1,
		},
		{
			caption: "an empty terminal string",
			src:     `A = "" ;`,
			cause:   synErrEmptyString,
			row:     1,
			col:     5,
		},
		{
			caption: "an unknown escape sequence",
			src:     `A = "\n" ;`,
			cause:   synErrInvalidEscSeq,
			row:     1,
			col:     5,
		},
		{
			caption: "an unrecognized character",
			src:     `A = 'a' ;`,
			cause:   lexer.ErrUnrecognizedSymbol,
			row:     1,
			col:     5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			if !errors.Is(err, tt.cause) {
				t.Fatalf("unexpected error; want: %v, got: %v", tt.cause, err)
			}
			row, col := errorPosition(t, err)
			if row != tt.row || col != tt.col {
				t.Fatalf("unexpected position; want: %v:%v, got: %v:%v", tt.row, tt.col, row, col)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	tok := func(kind, text string) *lexer.Token {
		return &lexer.Token{
			Kind: kind,
			Text: text,
			Row:  1,
			Col:  1,
		}
	}
	kinds := []*lexer.Token{
		tok(tokenKindID, "a"),
		tok(tokenKindString, `"a"`),
		tok(tokenKindSymbol, "+"),
		tok(tokenKindAssigner, "="),
		tok(tokenKindOr, "|"),
		tok(tokenKindSemicolon, ";"),
	}
	states := []loaderState{
		loaderStateTarget,
		loaderStateAssigner,
		loaderStateItems,
	}

	// Every pair of a state and a token kind either moves to a state or fails.
	for _, st := range states {
		for _, k := range kinds {
			acc := accumulator{
				target: "A",
				items:  []string{"x"},
			}
			next, _, _, err := transition(st, acc, k)
			if err != nil {
				if next != st {
					t.Fatalf("a failed transition must stay in its state; %v on %v", st, k.Kind)
				}
				continue
			}
			if len(acc.items) != 1 || acc.items[0] != "x" {
				t.Fatalf("a transition must not change its input; %v on %v", st, k.Kind)
			}
		}
	}

	acc := accumulator{
		target: "A",
		items:  make([]string, 1, 4),
	}
	acc.items[0] = "x"
	_, acc1, _, err := transition(loaderStateItems, acc, tok(tokenKindID, "y"))
	if err != nil {
		t.Fatal(err)
	}
	_, acc2, _, err := transition(loaderStateItems, acc, tok(tokenKindID, "z"))
	if err != nil {
		t.Fatal(err)
	}
	if acc1.items[1] != "y" || acc2.items[1] != "z" {
		t.Fatalf("accumulators must not share their items; got: %q and %q", acc1.items, acc2.items)
	}

	st, acc3, rule, err := transition(loaderStateItems, acc1, tok(tokenKindOr, "|"))
	if err != nil {
		t.Fatal(err)
	}
	if st != loaderStateItems || rule == nil || rule.Name != "A_0" || acc3.ordinal != 1 || len(acc3.items) != 0 {
		t.Fatalf("'|' must close the rule and start the next alternative; got: %v, %+v, %+v", st, rule, acc3)
	}
	st, _, rule, err = transition(loaderStateItems, acc3, tok(tokenKindSemicolon, ";"))
	if err != nil {
		t.Fatal(err)
	}
	if st != loaderStateTarget || rule == nil || rule.Name != "A_1" || len(rule.Items) != 0 {
		t.Fatalf("';' must close the rule and end the group; got: %v, %+v", st, rule)
	}
}

func TestParse_WithLexer(t *testing.T) {
	l, err := NewLexer()
	if err != nil {
		t.Fatal(err)
	}
	root, err := Parse(strings.NewReader(`S = a ;`), WithLexer(l))
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Rules) != 1 {
		t.Fatalf("unexpected rules: %v", root.Rules)
	}
}
