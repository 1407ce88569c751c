package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

type ruleID [32]byte

func (id ruleID) String() string {
	return hex.EncodeToString(id[:])
}

func genRuleID(target, name string, items []string) ruleID {
	var b strings.Builder
	b.WriteString(target)
	b.WriteByte(0)
	b.WriteString(name)
	for _, item := range items {
		b.WriteByte(0)
		b.WriteString(item)
	}
	return ruleID(sha256.Sum256([]byte(b.String())))
}

// SemanticAction builds the value of a reduced rule from the values of its
// items. Table construction ignores it.
type SemanticAction func(products []interface{}) interface{}

type Rule struct {
	Name   string
	Target string
	Items  []string
	Action SemanticAction

	id  ruleID
	num int
}

func newRule(name, target string, items []string) *Rule {
	return &Rule{
		Name:   name,
		Target: target,
		Items:  items,
		id:     genRuleID(target, name, items),
	}
}

// Num returns the position of the rule in declaration order. The augmented
// rule is number 0.
func (r *Rule) Num() int {
	return r.num
}

func (r *Rule) Len() int {
	return len(r.Items)
}

func (r *Rule) isEmpty() bool {
	return len(r.Items) == 0
}

func (r *Rule) Equal(o *Rule) bool {
	return r.id == o.id
}

// Reduce applies the semantic action. Without an action the products are
// returned as they are.
func (r *Rule) Reduce(products []interface{}) interface{} {
	if r.Action == nil {
		return products
	}
	return r.Action(products)
}

func (r *Rule) String() string {
	if r.isEmpty() {
		return fmt.Sprintf("%v ->", r.Target)
	}
	return fmt.Sprintf("%v -> %v", r.Target, strings.Join(r.Items, " "))
}

type ruleSet struct {
	rules    []*Rule
	byTarget map[string][]*Rule
	byName   map[string]*Rule
	byID     map[ruleID]*Rule
}

func newRuleSet() *ruleSet {
	return &ruleSet{
		byTarget: map[string][]*Rule{},
		byName:   map[string]*Rule{},
		byID:     map[ruleID]*Rule{},
	}
}

// append adds a rule unless an equal rule is already present.
func (rs *ruleSet) append(r *Rule) bool {
	if _, dup := rs.byID[r.id]; dup {
		return false
	}
	r.num = len(rs.rules)
	rs.rules = append(rs.rules, r)
	rs.byTarget[r.Target] = append(rs.byTarget[r.Target], r)
	rs.byName[r.Name] = r
	rs.byID[r.id] = r
	return true
}

func (rs *ruleSet) findByTarget(target string) ([]*Rule, bool) {
	rules, ok := rs.byTarget[target]
	return rules, ok
}

func (rs *ruleSet) findByName(name string) (*Rule, bool) {
	r, ok := rs.byName[name]
	return r, ok
}

func (rs *ruleSet) all() []*Rule {
	return rs.rules
}
