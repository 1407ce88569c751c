package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const testLeftRecursiveGrammar = `
E = E + T ;
E = T ;
T = id ;
`

func TestBuild_SingleChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xparse.grammar")
	defer teardown()

	g := loadTestGrammar(t, `A = B ;
B = "x" ;`, "A")
	tab := buildTestTable(t, g)

	if len(tab.States()) != 4 {
		t.Fatalf("unexpected state count; want: 4, got: %v", len(tab.States()))
	}

	initial := findTestState(t, tab)
	if initial.ID != StateIDInitial {
		t.Fatalf("the initial state must have the empty identity")
	}
	expectedItems := []string{
		"~ -> * A [$, ~_0]",
		"A -> * B [$, A_0]",
		"B -> * x [$, B_0]",
	}
	items := initial.Items()
	if len(items) != len(expectedItems) {
		t.Fatalf("unexpected items: %v", items)
	}
	for i, item := range items {
		if item.String() != expectedItems[i] {
			t.Fatalf("unexpected item; want: %v, got: %v", expectedItems[i], item)
		}
	}

	acts := map[string]ActionType{
		"A": ActionTypeGoTo,
		"B": ActionTypeGoTo,
		"x": ActionTypeShift,
	}
	for sym, ty := range acts {
		act, ok := initial.Action(sym)
		if !ok || act.Type != ty {
			t.Fatalf("unexpected action on %v: %v", sym, act)
		}
	}

	reduced, err := parseTestInput(tab, []string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"B_0", "A_0", "~_0"}
	if strings.Join(reduced, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected reductions; want: %v, got: %v", want, reduced)
	}

	for _, input := range [][]string{{}, {"x", "x"}} {
		if _, err := parseTestInput(tab, input); err == nil {
			t.Fatalf("%v must be rejected", input)
		}
	}
}

func TestBuild_LeftRecursion(t *testing.T) {
	g := loadTestGrammar(t, testLeftRecursiveGrammar, "E")
	tab := buildTestTable(t, g)

	expectedStates := [][]string{
		{},
		{"E"},
		{"T"},
		{"id"},
		{"E", "+"},
		{"E", "+", "T"},
	}
	if len(tab.States()) != len(expectedStates) {
		t.Fatalf("unexpected state count; want: %v, got: %v", len(expectedStates), len(tab.States()))
	}
	for i, path := range expectedStates {
		s := findTestState(t, tab, path...)
		if s.ID != StateID(i) {
			t.Fatalf("unexpected state order; %v must be #%v, got #%v", tab.StateName(s.ID), i, s.ID)
		}
	}

	afterE := findTestState(t, tab, "E")
	shift, ok := afterE.Action("+")
	if !ok || shift.Type != ActionTypeShift {
		t.Fatalf("a shift on + is expected; got: %v", shift)
	}
	if shift.Next == StateIDInitial {
		t.Fatal("the state reached via + must not be the initial state")
	}

	// The goal of `id` after `E +` is contained in the state reached from the
	// initial state.
	afterPlus := findTestState(t, tab, "E", "+")
	act, ok := afterPlus.Action("id")
	if !ok || act.Next != findTestState(t, tab, "id").ID {
		t.Fatalf("the state (id) must be reused; got: %v", act)
	}

	reduced, err := parseTestInput(tab, []string{"id", "+", "id", "+", "id"})
	if err != nil {
		t.Fatal(err)
	}
	want := "T_0 E_1 T_0 E_0 T_0 E_0 ~_0"
	if strings.Join(reduced, " ") != want {
		t.Fatalf("unexpected reductions; want: %v, got: %v", want, strings.Join(reduced, " "))
	}

	if len(tab.Report().ShiftReduceConflicts) != 0 {
		t.Fatalf("no conflicts are expected: %v", tab.Report().ShiftReduceConflicts)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	srcs := []string{
		testLeftRecursiveGrammar,
		`S = A B c ; A = a | ; B = b | ;`,
	}
	starts := []string{"E", "S"}
	for i, src := range srcs {
		g := loadTestGrammar(t, src, starts[i])
		tab1 := buildTestTable(t, g)
		tab2 := buildTestTable(t, g)
		tab3 := buildTestTable(t, loadTestGrammar(t, src, starts[i]))

		fp1, err := tab1.Fingerprint()
		if err != nil {
			t.Fatal(err)
		}
		for _, tab := range []*ParsingTable{tab2, tab3} {
			fp, err := tab.Fingerprint()
			if err != nil {
				t.Fatal(err)
			}
			if fp != fp1 {
				t.Fatalf("building twice must yield the same table")
			}
		}
	}
}

func TestBuild_ContainmentMerge(t *testing.T) {
	g := loadTestGrammar(t, `S = X "a" | X "b" | "c" X "b" ;
X = "d" ;`, "S")
	tab := buildTestTable(t, g)

	fromInitial, ok := findTestState(t, tab).Action("d")
	if !ok {
		t.Fatal("a shift on d is expected")
	}
	fromC, ok := findTestState(t, tab, "c").Action("d")
	if !ok {
		t.Fatal("a shift on d is expected")
	}
	if fromC.Next != fromInitial.Next {
		t.Fatalf("a goal contained in an existing state must reuse it; got: %v and %v",
			tab.StateName(fromInitial.Next), tab.StateName(fromC.Next))
	}

	for _, input := range [][]string{{"d", "a"}, {"d", "b"}, {"c", "d", "b"}} {
		if _, err := parseTestInput(tab, input); err != nil {
			t.Fatalf("%v must be accepted: %v", input, err)
		}
	}
	if _, err := parseTestInput(tab, []string{"c", "d", "a"}); err == nil {
		t.Fatal("c d a must be rejected")
	}
}

func TestBuild_CanonicalStatesAreKept(t *testing.T) {
	// Merging states with the same core would cause a reduce/reduce conflict.
	g := loadTestGrammar(t, `
S = a A d | b B d | a B e | b A e ;
A = c ;
B = c ;
`, "S")
	tab := buildTestTable(t, g)

	ac := findTestState(t, tab, "a", "c")
	bc := findTestState(t, tab, "b", "c")
	if ac.ID == bc.ID {
		t.Fatal("states with different lookaheads must not be merged")
	}
	if !InCore(ac.Items(), bc.Items()) || !InCore(bc.Items(), ac.Items()) {
		t.Fatal("both states must have the same core")
	}

	for _, input := range [][]string{{"a", "c", "d"}, {"b", "c", "d"}, {"a", "c", "e"}, {"b", "c", "e"}} {
		if _, err := parseTestInput(tab, input); err != nil {
			t.Fatalf("%v must be accepted: %v", input, err)
		}
	}
}

func TestBuild_EmptyRules(t *testing.T) {
	g := loadTestGrammar(t, `S = A "x" ;
A = ;`, "S")
	tab := buildTestTable(t, g)

	reduced, err := parseTestInput(tab, []string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	want := "A_0 S_0 ~_0"
	if strings.Join(reduced, " ") != want {
		t.Fatalf("unexpected reductions; want: %v, got: %v", want, strings.Join(reduced, " "))
	}
}

func TestBuild_ReduceReduceConflict(t *testing.T) {
	g := loadTestGrammar(t, `S = A | B ;
A = x ;
B = x ;`, "S")
	for _, opts := range [][]BuildOption{nil, {DisallowShiftReduce()}} {
		_, err := g.Build(opts...)
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("a conflict error is expected; got: %v", err)
		}
		if conflictErr.Kind != ConflictKindReduceReduce || conflictErr.LookAhead != "$" || conflictErr.State != "(x)" {
			t.Fatalf("unexpected conflict: %v", conflictErr)
		}
		if strings.Join(conflictErr.Rules, " ") != "A_0 B_0" {
			t.Fatalf("unexpected rules: %v", conflictErr.Rules)
		}
	}
}

func TestBuild_ShiftReduceConflict(t *testing.T) {
	g := loadTestGrammar(t, `E = E "+" E | id ;`, "E")

	tab := buildTestTable(t, g)
	confs := tab.Report().ShiftReduceConflicts
	if len(confs) != 1 {
		t.Fatalf("unexpected conflicts: %v", confs)
	}
	c := confs[0]
	if tab.StateName(c.State) != "(E, +, E)" || c.Symbol != "+" || c.Rule.Name != "E_0" || c.ResolvedBy != ResolvedByShift {
		t.Fatalf("unexpected conflict: %+v", c)
	}
	s, _ := tab.State(c.State)
	act, _ := s.Action("+")
	if act.Type != ActionTypeShift || act.Next != c.NextState {
		t.Fatalf("the shift must win; got: %v", act)
	}

	_, err := g.Build(DisallowShiftReduce())
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) || conflictErr.Kind != ConflictKindShiftReduce {
		t.Fatalf("a shift/reduce conflict error is expected; got: %v", err)
	}
}

func TestInCore(t *testing.T) {
	r1 := newRule("A_0", "A", []string{"a", "b"})
	r2 := newRule("A_1", "A", []string{"c"})

	tests := []struct {
		caption string
		a       []Item
		b       []Item
		inCore  bool
	}{
		{
			caption: "lookaheads are ignored",
			a:       []Item{newItem(r1, 1, "x")},
			b:       []Item{newItem(r1, 1, "y")},
			inCore:  true,
		},
		{
			caption: "dot positions are compared",
			a:       []Item{newItem(r1, 1, "x")},
			b:       []Item{newItem(r1, 2, "x")},
			inCore:  false,
		},
		{
			caption: "rules are compared",
			a:       []Item{newItem(r1, 0, "x")},
			b:       []Item{newItem(r2, 0, "x")},
			inCore:  false,
		},
		{
			caption: "the empty set is in every core",
			a:       nil,
			b:       []Item{newItem(r2, 0, "x")},
			inCore:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if InCore(tt.a, tt.b) != tt.inCore {
				t.Fatalf("unexpected result; want: %v", tt.inCore)
			}
		})
	}
}

func TestItem(t *testing.T) {
	r := newRule("E_0", "E", []string{"E", "+", "T"})
	tests := []struct {
		dot       int
		current   string
		ahead     string
		remain    []string
		reducible bool
		str       string
	}{
		{dot: 0, current: "E", ahead: "+", remain: []string{"E", "+", "T"}, str: "E -> * E + T [$, E_0]"},
		{dot: 2, current: "T", remain: []string{"T"}, str: "E -> E + * T [$, E_0]"},
		{dot: 3, reducible: true, str: "E -> E + T * [$, E_0]"},
	}
	for _, tt := range tests {
		item := newItem(r, tt.dot, SymbolEOF)
		cur, _ := item.Current()
		ahead, _ := item.Ahead()
		if cur != tt.current || ahead != tt.ahead || item.Reducible() != tt.reducible {
			t.Fatalf("unexpected item: %v", item)
		}
		if strings.Join(item.Remain(), " ") != strings.Join(tt.remain, " ") {
			t.Fatalf("unexpected remaining items: %v", item.Remain())
		}
		if item.String() != tt.str {
			t.Fatalf("unexpected string; want: %v, got: %v", tt.str, item)
		}
	}
}
