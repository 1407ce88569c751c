package artifact

import (
	"github.com/nihei9/xparse/grammar"
)

type TokensDocument struct {
	Terminal    []string `json:"terminal" yaml:"terminal"`
	NonTerminal []string `json:"non-terminal" yaml:"non-terminal"`
}

// MachineDocument maps a state name to its actions. An action is either the
// name of the next state, like `(E, +)`, or the name of the rule to reduce.
type MachineDocument map[string]map[string]string

type ConflictDocument struct {
	State      string `json:"state" yaml:"state"`
	Symbol     string `json:"symbol" yaml:"symbol"`
	Shift      string `json:"shift" yaml:"shift"`
	Reduce     string `json:"reduce" yaml:"reduce"`
	ResolvedBy string `json:"resolved_by" yaml:"resolved_by"`
}

type ReportDocument struct {
	Start                string              `json:"start" yaml:"start"`
	States               int                 `json:"states" yaml:"states"`
	Fingerprint          string              `json:"fingerprint" yaml:"fingerprint"`
	ShiftReduceConflicts []*ConflictDocument `json:"shift_reduce_conflicts" yaml:"shift_reduce_conflicts"`
}

type Documents struct {
	Tokens    *TokensDocument
	Rules     map[string]string
	FirstSet  map[string][]string
	FollowSet map[string][]string
	Machine   MachineDocument
	LRItems   map[string][]string
	Report    *ReportDocument
	Compact   *CompactDocument
}

type namedDocument struct {
	name string
	body interface{}
}

func (d *Documents) list() []namedDocument {
	docs := []namedDocument{
		{name: "tokens", body: d.Tokens},
		{name: "rules", body: d.Rules},
		{name: "first_set", body: d.FirstSet},
		{name: "follow_set", body: d.FollowSet},
		{name: "machine", body: d.Machine},
		{name: "lr_items", body: d.LRItems},
		{name: "report", body: d.Report},
	}
	if d.Compact != nil {
		docs = append(docs, namedDocument{name: "machine-compact", body: d.Compact})
	}
	return docs
}

func NewDocuments(gram *grammar.Grammar, tab *grammar.ParsingTable, compact bool) (*Documents, error) {
	docs := &Documents{
		Tokens: &TokensDocument{
			Terminal:    nonNil(gram.Terminals()),
			NonTerminal: nonNil(gram.NonTerminals()),
		},
		Rules:     genRules(gram),
		FirstSet:  genSymbolSets(gram, gram.First),
		FollowSet: genSymbolSets(gram, gram.Follow),
		Machine:   genMachine(tab),
		LRItems:   genLRItems(tab),
	}

	report, err := genReport(gram, tab)
	if err != nil {
		return nil, err
	}
	docs.Report = report

	if compact {
		c, err := NewCompactDocument(gram, tab)
		if err != nil {
			return nil, err
		}
		docs.Compact = c
	}

	return docs, nil
}

func genRules(gram *grammar.Grammar) map[string]string {
	rules := map[string]string{}
	aug := gram.AugmentedRule()
	rules[aug.Name] = aug.String()
	for _, r := range gram.Rules() {
		rules[r.Name] = r.String()
	}
	return rules
}

func genSymbolSets(gram *grammar.Grammar, find func(sym string) (*grammar.SymbolSet, bool)) map[string][]string {
	sets := map[string][]string{}
	for _, sym := range append([]string{grammar.SymbolAugmentedStart}, gram.Symbols()...) {
		set, ok := find(sym)
		if !ok {
			continue
		}
		sets[sym] = nonNil(set.Symbols())
	}
	return sets
}

func genMachine(tab *grammar.ParsingTable) MachineDocument {
	machine := MachineDocument{}
	for _, s := range tab.States() {
		acts := map[string]string{}
		for _, sym := range s.Symbols() {
			act, _ := s.Action(sym)
			if act.Type == grammar.ActionTypeReduce {
				acts[sym] = act.Rule.Name
				continue
			}
			acts[sym] = tab.StateName(act.Next)
		}
		machine[tab.StateName(s.ID)] = acts
	}
	return machine
}

func genLRItems(tab *grammar.ParsingTable) map[string][]string {
	items := map[string][]string{}
	for _, s := range tab.States() {
		strs := []string{}
		for _, item := range s.Items() {
			strs = append(strs, item.String())
		}
		items[tab.StateName(s.ID)] = strs
	}
	return items
}

func genReport(gram *grammar.Grammar, tab *grammar.ParsingTable) (*ReportDocument, error) {
	fp, err := tab.Fingerprint()
	if err != nil {
		return nil, err
	}
	report := tab.Report()
	confs := []*ConflictDocument{}
	for _, c := range report.ShiftReduceConflicts {
		confs = append(confs, &ConflictDocument{
			State:      tab.StateName(c.State),
			Symbol:     c.Symbol,
			Shift:      tab.StateName(c.NextState),
			Reduce:     c.Rule.Name,
			ResolvedBy: string(c.ResolvedBy),
		})
	}
	return &ReportDocument{
		Start:                gram.Start(),
		States:               report.States,
		Fingerprint:          fp,
		ShiftReduceConflicts: confs,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
