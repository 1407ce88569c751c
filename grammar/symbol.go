package grammar

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// Marker symbols. None of them can appear in a grammar.
const (
	SymbolEpsilon        = "#"
	SymbolEOF            = "$"
	SymbolAugmentedStart = "~"
)

func isReservedSymbol(sym string) bool {
	return sym == SymbolEpsilon || sym == SymbolEOF || sym == SymbolAugmentedStart
}

// SymbolSet is an ordered set of symbols.
type SymbolSet struct {
	set *treeset.Set
}

func newSymbolSet(syms ...string) *SymbolSet {
	s := &SymbolSet{
		set: treeset.NewWithStringComparator(),
	}
	for _, sym := range syms {
		s.set.Add(sym)
	}
	return s
}

func (s *SymbolSet) Contains(sym string) bool {
	return s.set.Contains(sym)
}

func (s *SymbolSet) Len() int {
	return s.set.Size()
}

// Symbols returns the symbols in ascending order.
func (s *SymbolSet) Symbols() []string {
	vals := s.set.Values()
	syms := make([]string, len(vals))
	for i, v := range vals {
		syms[i] = v.(string)
	}
	return syms
}

func (s *SymbolSet) String() string {
	return "{" + strings.Join(s.Symbols(), ", ") + "}"
}

func (s *SymbolSet) add(sym string) bool {
	if s.set.Contains(sym) {
		return false
	}
	s.set.Add(sym)
	return true
}

// mergeExcept adds every symbol of other except the excluded one.
func (s *SymbolSet) mergeExcept(other *SymbolSet, except string) bool {
	if other == nil || other == s {
		return false
	}
	changed := false
	for _, sym := range other.Symbols() {
		if sym == except {
			continue
		}
		if s.add(sym) {
			changed = true
		}
	}
	return changed
}
