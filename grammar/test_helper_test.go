package grammar

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

func loadTestGrammar(t *testing.T, src, start string, opts ...LoadOption) *Grammar {
	t.Helper()
	g, err := Load(strings.NewReader(src), start, opts...)
	if err != nil {
		t.Fatalf("failed to load a grammar: %v", err)
	}
	return g
}

func buildTestTable(t *testing.T, g *Grammar, opts ...BuildOption) *ParsingTable {
	t.Helper()
	tab, err := g.Build(opts...)
	if err != nil {
		t.Fatalf("failed to build a parsing table: %v", err)
	}
	return tab
}

func testSymbolSet(t *testing.T, set *SymbolSet, expected ...string) {
	t.Helper()
	sort.Strings(expected)
	syms := set.Symbols()
	if len(syms) != len(expected) {
		t.Fatalf("unexpected symbols; want: %v, got: %v", expected, syms)
	}
	for i, sym := range syms {
		if sym != expected[i] {
			t.Fatalf("unexpected symbols; want: %v, got: %v", expected, syms)
		}
	}
}

func findTestState(t *testing.T, tab *ParsingTable, path ...string) *State {
	t.Helper()
	want := "(" + strings.Join(path, ", ") + ")"
	for _, s := range tab.States() {
		if tab.StateName(s.ID) == want {
			return s
		}
	}
	t.Fatalf("state was not found: %v", want)
	return nil
}

// parseTestInput runs the table over a sequence of terminals and reports
// whether it is accepted. It returns the rules reduced, in order.
func parseTestInput(tab *ParsingTable, input []string) ([]string, error) {
	input = append(append([]string{}, input...), SymbolEOF)
	stack := []StateID{StateIDInitial}
	var reduced []string
	for pos := 0; ; {
		top, _ := tab.State(stack[len(stack)-1])
		act, ok := top.Action(input[pos])
		if !ok {
			return reduced, fmt.Errorf("unexpected %v in state %v", input[pos], tab.StateName(top.ID))
		}
		switch act.Type {
		case ActionTypeShift:
			stack = append(stack, act.Next)
			pos++
		case ActionTypeReduce:
			reduced = append(reduced, act.Rule.Name)
			if act.Rule.Target == SymbolAugmentedStart {
				return reduced, nil
			}
			stack = stack[:len(stack)-act.Rule.Len()]
			from, _ := tab.State(stack[len(stack)-1])
			goTo, ok := from.Action(act.Rule.Target)
			if !ok || goTo.Type != ActionTypeGoTo {
				return reduced, fmt.Errorf("no goto on %v in state %v", act.Rule.Target, tab.StateName(from.ID))
			}
			stack = append(stack, goTo.Next)
		default:
			return reduced, fmt.Errorf("unexpected action %v", act)
		}
	}
}
