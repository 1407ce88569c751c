package grammar

import (
	"fmt"
)

type firstSet struct {
	set map[string]*SymbolSet
}

func (fst *firstSet) find(sym string) (*SymbolSet, bool) {
	e, ok := fst.set[sym]
	return e, ok
}

// findSeq computes FIRST of a sequence of symbols. Unlike the entries of the
// set, the result is a fresh set owned by the caller.
func (fst *firstSet) findSeq(seq []string) (*SymbolSet, error) {
	entry := newSymbolSet()
	for _, sym := range seq {
		e, ok := fst.set[sym]
		if !ok {
			return nil, fmt.Errorf("%w: %v", semErrUndefinedSym, sym)
		}
		entry.mergeExcept(e, SymbolEpsilon)
		if !e.Contains(SymbolEpsilon) {
			return entry, nil
		}
	}
	entry.add(SymbolEpsilon)
	return entry, nil
}

// genFirstSet iterates over all rules until no FIRST set changes. A terminal
// is its own FIRST set.
func genFirstSet(g *Grammar) (*firstSet, error) {
	fst := &firstSet{
		set: map[string]*SymbolSet{},
	}
	for _, sym := range g.symbols.Symbols() {
		if g.targets.Contains(sym) {
			fst.set[sym] = newSymbolSet()
			continue
		}
		fst.set[sym] = newSymbolSet(sym)
	}
	start, ok := fst.set[g.start]
	if !ok {
		return nil, fmt.Errorf("%w: %v", semErrUndefinedStart, g.start)
	}
	fst.set[SymbolAugmentedStart] = start

	for pass := 1; ; pass++ {
		more := false
		for _, r := range g.rules.all() {
			if genRuleFirstEntry(fst, fst.set[r.Target], r) {
				more = true
			}
		}
		if !more {
			tracer().Debugf("FIRST sets converged after %v passes", pass)
			break
		}
	}
	return fst, nil
}

func genRuleFirstEntry(fst *firstSet, acc *SymbolSet, r *Rule) bool {
	changed := false
	for _, item := range r.Items {
		e := fst.set[item]
		if acc.mergeExcept(e, SymbolEpsilon) {
			changed = true
		}
		if !e.Contains(SymbolEpsilon) {
			return changed
		}
	}
	if acc.add(SymbolEpsilon) {
		changed = true
	}
	return changed
}
