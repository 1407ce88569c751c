package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

type closure struct {
	items     []Item
	reducible []Item

	// groups maps the symbol after the dot to the items expecting it, in
	// ascending order of symbols.
	groups *treemap.Map
}

// genClosure expands a kernel until it is closed: for every item expecting a
// non-terminal B followed by β, with lookahead a, the items `B -> * γ` with a
// lookahead from FIRST(β a) are added.
func (g *Grammar) genClosure(kernel []Item) (*closure, error) {
	known := map[Item]struct{}{}
	items := []Item{}
	unchecked := []Item{}
	for _, item := range kernel {
		if _, ok := known[item]; ok {
			continue
		}
		known[item] = struct{}{}
		items = append(items, item)
		unchecked = append(unchecked, item)
	}

	for len(unchecked) > 0 {
		nextUnchecked := []Item{}
		for _, item := range unchecked {
			sym, ok := item.Current()
			if !ok {
				continue
			}
			rules, isTarget := g.rules.findByTarget(sym)
			if !isTarget {
				continue
			}
			fst, err := g.first.findSeq(item.Remain()[1:])
			if err != nil {
				return nil, err
			}
			lookAheads := fst.Symbols()
			if fst.Contains(SymbolEpsilon) {
				lookAheads = append(lookAheads, item.lookAhead)
			}
			for _, r := range rules {
				for _, la := range lookAheads {
					if la == SymbolEpsilon {
						continue
					}
					it := newItem(r, 0, la)
					if _, ok := known[it]; ok {
						continue
					}
					known[it] = struct{}{}
					items = append(items, it)
					nextUnchecked = append(nextUnchecked, it)
				}
			}
		}
		unchecked = nextUnchecked
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].less(items[j])
	})

	c := &closure{
		items:  items,
		groups: treemap.NewWithStringComparator(),
	}
	for _, item := range items {
		sym, ok := item.Current()
		if !ok {
			c.reducible = append(c.reducible, item)
			continue
		}
		var group []Item
		if v, found := c.groups.Get(sym); found {
			group = v.([]Item)
		}
		c.groups.Put(sym, append(group, item))
	}
	return c, nil
}

type ConflictKind string

const (
	ConflictKindReduceReduce = ConflictKind("reduce/reduce")
	ConflictKindShiftReduce  = ConflictKind("shift/reduce")
)

// ConflictError aborts a build. Reduce/reduce conflicts are always fatal;
// shift/reduce conflicts are fatal only when DisallowShiftReduce is given.
type ConflictError struct {
	Kind      ConflictKind
	State     string
	LookAhead string
	Rules     []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v conflict in state %v on %v: %v", e.Kind, e.State, e.LookAhead, strings.Join(e.Rules, ", "))
}

type buildConfig struct {
	disallowShiftReduce bool
}

type BuildOption func(config *buildConfig)

// DisallowShiftReduce makes shift/reduce conflicts fatal. By default the
// shift wins and the conflict is recorded in the report.
func DisallowShiftReduce() BuildOption {
	return func(config *buildConfig) {
		config.disallowShiftReduce = true
	}
}

// Build constructs the canonical collection of LR(1) states and the parsing
// table. A goal item set contained in the closure of an existing state reuses
// the earliest such state instead of creating a new one.
func (g *Grammar) Build(opts ...BuildOption) (*ParsingTable, error) {
	config := &buildConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tab := newParsingTable(g)
	index := newClosureIndex()

	initial, err := g.genClosure([]Item{newItem(g.augmented, 0, SymbolEOF)})
	if err != nil {
		return nil, err
	}
	tab.addState(StateIDInitial, initial)
	index.register(StateIDInitial, initial)

	for n := 0; n < len(tab.states); n++ {
		state := tab.states[n]
		c := state.closure

		for _, item := range c.reducible {
			err := tab.writeReduce(state, item.lookAhead, item.rule)
			if err != nil {
				return nil, err
			}
		}

		for _, k := range c.groups.Keys() {
			sym := k.(string)
			v, _ := c.groups.Get(sym)
			group := v.([]Item)
			goal := make([]Item, len(group))
			for i, item := range group {
				goal[i] = item.next()
			}

			next, ok := index.findSuperset(goal)
			if !ok {
				nextClosure, err := g.genClosure(goal)
				if err != nil {
					return nil, err
				}
				next = tab.arena.intern(state.ID, sym)
				tab.addState(next, nextClosure)
				index.register(next, nextClosure)
			}

			err := tab.writeTransition(state, sym, next, config.disallowShiftReduce)
			if err != nil {
				return nil, err
			}
		}
	}

	tab.report.States = len(tab.states)
	tracer().Infof("%v states, %v shift/reduce conflicts", len(tab.states), len(tab.report.ShiftReduceConflicts))

	return tab, nil
}
