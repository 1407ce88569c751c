package grammar

type followSet struct {
	set map[string]*SymbolSet
}

func (flw *followSet) find(sym string) (*SymbolSet, bool) {
	e, ok := flw.set[sym]
	return e, ok
}

// genFollowSet iterates over all rules until no FOLLOW set changes. FOLLOW
// sets never contain the epsilon marker.
func genFollowSet(g *Grammar) *followSet {
	flw := &followSet{
		set: map[string]*SymbolSet{},
	}
	for _, sym := range g.symbols.Symbols() {
		flw.set[sym] = newSymbolSet()
	}
	flw.set[g.start].add(SymbolEOF)
	flw.set[SymbolAugmentedStart] = flw.set[g.start]

	for pass := 1; ; pass++ {
		more := false
		for _, r := range g.rules.all() {
			if genRuleFollowEntry(g, flw, r) {
				more = true
			}
		}
		if !more {
			tracer().Debugf("FOLLOW sets converged after %v passes", pass)
			break
		}
	}
	return flw
}

func genRuleFollowEntry(g *Grammar, flw *followSet, r *Rule) bool {
	changed := false
	for i, item := range r.Items {
		e := flw.set[item]
		if i < len(r.Items)-1 {
			fst, err := g.first.findSeq(r.Items[i+1:])
			if err != nil {
				continue
			}
			if e.mergeExcept(fst, SymbolEpsilon) {
				changed = true
			}
			if !fst.Contains(SymbolEpsilon) {
				continue
			}
		}
		if e.mergeExcept(flw.set[r.Target], SymbolEpsilon) {
			changed = true
		}
	}
	return changed
}
