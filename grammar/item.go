package grammar

import (
	"fmt"
	"strings"
)

// Item is an LR(1) item. Items are comparable and can be used as map keys.
type Item struct {
	rule *Rule

	// E → E + T
	//
	// Dot | Current | Item
	// ----+---------+------------
	// 0   | E       | E →・E + T
	// 1   | +       | E → E・+ T
	// 2   | T       | E → E +・T
	// 3   | none    | E → E + T・
	dot int

	lookAhead string
}

func newItem(rule *Rule, dot int, lookAhead string) Item {
	return Item{
		rule:      rule,
		dot:       dot,
		lookAhead: lookAhead,
	}
}

func (i Item) Rule() *Rule {
	return i.rule
}

func (i Item) Dot() int {
	return i.dot
}

func (i Item) LookAhead() string {
	return i.lookAhead
}

// Current returns the symbol right after the dot.
func (i Item) Current() (string, bool) {
	if i.dot >= len(i.rule.Items) {
		return "", false
	}
	return i.rule.Items[i.dot], true
}

// Ahead returns the symbol following the current one.
func (i Item) Ahead() (string, bool) {
	if i.dot+1 >= len(i.rule.Items) {
		return "", false
	}
	return i.rule.Items[i.dot+1], true
}

// Remain returns the items from the current one to the end of the rule.
func (i Item) Remain() []string {
	if i.dot >= len(i.rule.Items) {
		return nil
	}
	return i.rule.Items[i.dot:]
}

func (i Item) Reducible() bool {
	return i.dot >= len(i.rule.Items)
}

// next moves the dot over the current symbol. The caller must make sure the
// item is not reducible.
func (i Item) next() Item {
	return newItem(i.rule, i.dot+1, i.lookAhead)
}

// sameCore reports whether two items differ at most in their lookahead.
func (i Item) sameCore(j Item) bool {
	return i.rule == j.rule && i.dot == j.dot
}

func (i Item) less(j Item) bool {
	if i.rule.num != j.rule.num {
		return i.rule.num < j.rule.num
	}
	if i.dot != j.dot {
		return i.dot < j.dot
	}
	return i.lookAhead < j.lookAhead
}

func (i Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", i.rule.Target)
	for n, sym := range i.rule.Items {
		if n == i.dot {
			b.WriteString(" *")
		}
		fmt.Fprintf(&b, " %v", sym)
	}
	if i.Reducible() {
		b.WriteString(" *")
	}
	fmt.Fprintf(&b, " [%v, %v]", i.lookAhead, i.rule.Name)
	return b.String()
}

// InCore reports whether every item of a has an item of b with the same rule
// and dot position. Lookaheads are not compared.
func InCore(a, b []Item) bool {
	for _, i := range a {
		found := false
		for _, j := range b {
			if i.sameCore(j) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
