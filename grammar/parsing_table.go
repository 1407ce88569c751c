package grammar

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeGoTo   = ActionType("goto")
	ActionTypeReduce = ActionType("reduce")
)

// Action is an entry of the parsing table. Next is set for shift and goto
// actions, Rule for reduce actions.
type Action struct {
	Type ActionType
	Next StateID
	Rule *Rule
}

func (a *Action) String() string {
	if a.Type == ActionTypeReduce {
		return fmt.Sprintf("%v %v", a.Type, a.Rule.Name)
	}
	return fmt.Sprintf("%v %v", a.Type, a.Next)
}

type State struct {
	ID      StateID
	closure *closure
	actions map[string]*Action
}

// Items returns the closure of the state.
func (s *State) Items() []Item {
	return s.closure.items
}

func (s *State) Action(sym string) (*Action, bool) {
	act, ok := s.actions[sym]
	return act, ok
}

// Symbols returns the symbols having an action in ascending order.
func (s *State) Symbols() []string {
	syms := make([]string, 0, len(s.actions))
	for sym := range s.actions {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

type ResolvedBy string

const ResolvedByShift = ResolvedBy("shift")

// ShiftReduceConflict records a reduction overridden by a shift.
type ShiftReduceConflict struct {
	State      StateID
	Symbol     string
	NextState  StateID
	Rule       *Rule
	ResolvedBy ResolvedBy
}

type Report struct {
	States               int
	ShiftReduceConflicts []*ShiftReduceConflict
}

type ParsingTable struct {
	gram   *Grammar
	arena  *stateArena
	states []*State
	report *Report
}

func newParsingTable(g *Grammar) *ParsingTable {
	return &ParsingTable{
		gram:   g,
		arena:  newStateArena(),
		report: &Report{},
	}
}

func (t *ParsingTable) addState(id StateID, c *closure) {
	t.states = append(t.states, &State{
		ID:      id,
		closure: c,
		actions: map[string]*Action{},
	})
	tracer().Debugf("state %v %v: %v items", id, t.arena.name(id), len(c.items))
}

// writeReduce writes a reduction. Two different reductions on the same
// lookahead cannot be resolved.
func (t *ParsingTable) writeReduce(state *State, lookAhead string, rule *Rule) error {
	if act, ok := state.actions[lookAhead]; ok && act.Type == ActionTypeReduce && act.Rule != rule {
		return &ConflictError{
			Kind:      ConflictKindReduceReduce,
			State:     t.arena.name(state.ID),
			LookAhead: lookAhead,
			Rules:     []string{act.Rule.Name, rule.Name},
		}
	}
	state.actions[lookAhead] = &Action{
		Type: ActionTypeReduce,
		Rule: rule,
	}
	return nil
}

// writeTransition writes a shift on a terminal or a goto on a non-terminal.
// A shift overrides a reduction on the same terminal.
func (t *ParsingTable) writeTransition(state *State, sym string, next StateID, disallowShiftReduce bool) error {
	ty := ActionTypeGoTo
	if !t.gram.targets.Contains(sym) {
		ty = ActionTypeShift
	}
	if act, ok := state.actions[sym]; ok && act.Type == ActionTypeReduce {
		if disallowShiftReduce {
			return &ConflictError{
				Kind:      ConflictKindShiftReduce,
				State:     t.arena.name(state.ID),
				LookAhead: sym,
				Rules:     []string{act.Rule.Name},
			}
		}
		tracer().Infof("shift/reduce conflict in state %v on %v: shift to %v wins over reducing %v",
			t.arena.name(state.ID), sym, t.arena.name(next), act.Rule.Name)
		t.report.ShiftReduceConflicts = append(t.report.ShiftReduceConflicts, &ShiftReduceConflict{
			State:      state.ID,
			Symbol:     sym,
			NextState:  next,
			Rule:       act.Rule,
			ResolvedBy: ResolvedByShift,
		})
	}
	state.actions[sym] = &Action{
		Type: ty,
		Next: next,
	}
	return nil
}

func (t *ParsingTable) Grammar() *Grammar {
	return t.gram
}

// States returns the states in creation order; a state's ID is its index.
func (t *ParsingTable) States() []*State {
	return t.states
}

func (t *ParsingTable) State(id StateID) (*State, bool) {
	if id < 0 || int(id) >= len(t.states) {
		return nil, false
	}
	return t.states[id], true
}

// Identity returns the symbols leading from the initial state to the state.
func (t *ParsingTable) Identity(id StateID) []string {
	return t.arena.path(id)
}

// StateName renders the identity of a state, e.g. `(E, +, T)`.
func (t *ParsingTable) StateName(id StateID) string {
	return t.arena.name(id)
}

func (t *ParsingTable) Report() *Report {
	return t.report
}

type tableDigest struct {
	States []stateDigest
}

type stateDigest struct {
	Identity []string
	Items    []string
	Actions  []string
}

// Fingerprint hashes the states, their items, and their actions. Two builds
// of the same grammar have the same fingerprint.
func (t *ParsingTable) Fingerprint() (string, error) {
	d := tableDigest{
		States: make([]stateDigest, len(t.states)),
	}
	for i, s := range t.states {
		items := make([]string, len(s.closure.items))
		for j, item := range s.closure.items {
			items[j] = item.String()
		}
		var acts []string
		for _, sym := range s.Symbols() {
			act := s.actions[sym]
			if act.Type == ActionTypeReduce {
				acts = append(acts, fmt.Sprintf("%v: %v %v", sym, act.Type, act.Rule.Name))
				continue
			}
			acts = append(acts, fmt.Sprintf("%v: %v %v", sym, act.Type, t.arena.name(act.Next)))
		}
		d.States[i] = stateDigest{
			Identity: t.arena.path(s.ID),
			Items:    items,
			Actions:  acts,
		}
	}
	return structhash.Hash(d, 1)
}
