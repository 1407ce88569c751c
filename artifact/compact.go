package artifact

import (
	"fmt"

	"github.com/nihei9/xparse/compressor"
	"github.com/nihei9/xparse/grammar"
)

// CompactDocument is the parsing table with states, symbols, and rules
// replaced by numbers. A table entry e means:
//
//	e == 0: no action
//	e >  0: shift or goto to state e-1
//	e <  0: reduce by rule -e-1
//
// States and Rules map the numbers back to names. Columns follow Symbols:
// terminals first, then the end-of-input marker, then non-terminals.
//
// States sharing the same row share an entry of RowNums, and Table holds
// only the distinct rows.
type CompactDocument struct {
	States  []string                         `json:"states" yaml:"states"`
	Symbols []string                         `json:"symbols" yaml:"symbols"`
	Rules   []string                         `json:"rules" yaml:"rules"`
	RowNums []int                            `json:"row_nums" yaml:"row_nums"`
	Table   *compressor.RowDisplacementTable `json:"table" yaml:"table"`
}

const compactEmpty = 0

func encodeShift(next grammar.StateID) int {
	return next.Int() + 1
}

func encodeReduce(rule *grammar.Rule) int {
	return -(rule.Num() + 1)
}

func NewCompactDocument(gram *grammar.Grammar, tab *grammar.ParsingTable) (*CompactDocument, error) {
	syms := append(append(gram.Terminals(), grammar.SymbolEOF), gram.NonTerminals()...)
	col := map[string]int{}
	for i, sym := range syms {
		col[sym] = i
	}

	rules := []string{gram.AugmentedRule().Name}
	for _, r := range gram.Rules() {
		rules = append(rules, r.Name)
	}

	states := make([]string, len(tab.States()))
	entries := make([]int, len(tab.States())*len(syms))
	for _, s := range tab.States() {
		states[s.ID] = tab.StateName(s.ID)
		for _, sym := range s.Symbols() {
			act, _ := s.Action(sym)
			e := encodeShift(act.Next)
			if act.Type == grammar.ActionTypeReduce {
				e = encodeReduce(act.Rule)
			}
			entries[s.ID.Int()*len(syms)+col[sym]] = e
		}
	}

	m, err := compressor.NewMatrix(entries, len(syms))
	if err != nil {
		return nil, err
	}
	uniq := compressor.NewUniqueRowsTable()
	err = uniq.Compress(m)
	if err != nil {
		return nil, err
	}
	um, err := compressor.NewMatrix(uniq.Rows, uniq.RowLen)
	if err != nil {
		return nil, err
	}
	comp := compressor.NewRowDisplacementTable(compactEmpty)
	err = comp.Compress(um)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("compact table: %v entries, %v distinct rows, packed into %v", len(entries), comp.Rows, len(comp.Entries))

	return &CompactDocument{
		States:  states,
		Symbols: syms,
		Rules:   rules,
		RowNums: uniq.RowNums,
		Table:   comp,
	}, nil
}

type CompactAction struct {
	Type grammar.ActionType
	Next int
	Rule string
}

// Action decodes the entry for a state number and a symbol. It returns nil
// when the entry is empty.
func (d *CompactDocument) Action(state int, sym string) (*CompactAction, error) {
	col := -1
	for i, s := range d.Symbols {
		if s == sym {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("unknown symbol: %v", sym)
	}
	if state < 0 || state >= len(d.RowNums) {
		return nil, fmt.Errorf("state number out of range: %v", state)
	}
	e, err := d.Table.Lookup(d.RowNums[state], col)
	if err != nil {
		return nil, err
	}
	switch {
	case e == compactEmpty:
		return nil, nil
	case e < 0:
		n := -e - 1
		if n >= len(d.Rules) {
			return nil, fmt.Errorf("rule number out of range: %v", n)
		}
		return &CompactAction{
			Type: grammar.ActionTypeReduce,
			Rule: d.Rules[n],
		}, nil
	}
	ty := grammar.ActionTypeShift
	if d.isNonTerminalColumn(col) {
		ty = grammar.ActionTypeGoTo
	}
	return &CompactAction{
		Type: ty,
		Next: e - 1,
	}, nil
}

func (d *CompactDocument) isNonTerminalColumn(col int) bool {
	for i, s := range d.Symbols {
		if s == grammar.SymbolEOF {
			return col > i
		}
	}
	return false
}
