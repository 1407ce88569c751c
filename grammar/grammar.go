package grammar

import (
	"fmt"
	"io"

	verr "github.com/nihei9/xparse/error"
	"github.com/nihei9/xparse/lexer"
	"github.com/nihei9/xparse/spec"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("xparse.grammar")
}

// Grammar is a loaded grammar together with its FIRST and FOLLOW sets. It is
// never modified after loading, so it can be shared between builds.
type Grammar struct {
	start     string
	rules     *ruleSet
	augmented *Rule
	symbols   *SymbolSet
	targets   *SymbolSet
	first     *firstSet
	follow    *followSet
}

type loadConfig struct {
	lex     *lexer.Lexer
	actions map[string]SemanticAction
}

type LoadOption func(config *loadConfig)

// WithLexer replaces the lexer of the grammar description language.
func WithLexer(l *lexer.Lexer) LoadOption {
	return func(config *loadConfig) {
		config.lex = l
	}
}

// WithAction attaches a semantic action to the rule named name.
func WithAction(name string, act SemanticAction) LoadOption {
	return func(config *loadConfig) {
		if config.actions == nil {
			config.actions = map[string]SemanticAction{}
		}
		config.actions[name] = act
	}
}

// Load reads a grammar description and computes its FIRST and FOLLOW sets.
// start names the start symbol; it must be the target of a rule.
func Load(src io.Reader, start string, opts ...LoadOption) (*Grammar, error) {
	config := &loadConfig{}
	for _, opt := range opts {
		opt(config)
	}

	var parseOpts []spec.ParseOption
	if config.lex != nil {
		parseOpts = append(parseOpts, spec.WithLexer(config.lex))
	}
	ast, err := spec.Parse(src, parseOpts...)
	if err != nil {
		return nil, err
	}

	b := &GrammarBuilder{
		AST:     ast,
		Start:   start,
		Actions: config.actions,
	}
	return b.Build()
}

type GrammarBuilder struct {
	AST     *spec.RootNode
	Start   string
	Actions map[string]SemanticAction

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if len(b.AST.Rules) == 0 {
		return nil, &verr.SpecError{
			Cause: semErrNoRule,
		}
	}

	rules := newRuleSet()
	augmented := newRule(SymbolAugmentedStart+"_0", SymbolAugmentedStart, []string{b.Start})
	rules.append(augmented)

	for _, n := range b.AST.Rules {
		if !b.checkReserved(n) {
			continue
		}
		r := newRule(n.Name, n.Target, n.Items)
		if _, dup := rules.byID[r.id]; dup {
			tracer().Debugf("duplicate rule %v: %v was dropped", r.Name, r)
			continue
		}
		if _, taken := rules.findByName(r.Name); taken {
			name := freeRuleName(rules, r.Target)
			tracer().Debugf("rule %v (%v) was renamed to %v", r.Name, r, name)
			r = newRule(name, n.Target, n.Items)
		}
		rules.append(r)
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	if _, ok := rules.findByTarget(b.Start); !ok {
		return nil, &verr.SpecError{
			Cause:  semErrUndefinedStart,
			Detail: b.Start,
		}
	}

	for name, act := range b.Actions {
		r, ok := rules.findByName(name)
		if !ok || r == augmented {
			return nil, &verr.SpecError{
				Cause:  semErrUnknownRule,
				Detail: name,
			}
		}
		r.Action = act
	}

	symbols := newSymbolSet()
	targets := newSymbolSet()
	for _, r := range rules.all()[1:] {
		symbols.add(r.Target)
		targets.add(r.Target)
		for _, item := range r.Items {
			symbols.add(item)
		}
	}

	g := &Grammar{
		start:     b.Start,
		rules:     rules,
		augmented: augmented,
		symbols:   symbols,
		targets:   targets,
	}

	fst, err := genFirstSet(g)
	if err != nil {
		return nil, err
	}
	g.first = fst
	g.follow = genFollowSet(g)

	tracer().Infof("grammar loaded: %v rules, %v terminals, %v non-terminals",
		len(rules.all())-1, len(g.Terminals()), targets.Len())

	return g, nil
}

func (b *GrammarBuilder) checkReserved(n *spec.RuleNode) bool {
	ok := true
	for _, sym := range append([]string{n.Target}, n.Items...) {
		if isReservedSymbol(sym) {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedSymbol,
				Detail: sym,
				Row:    n.Pos.Row,
				Col:    n.Pos.Col,
			})
			ok = false
		}
	}
	return ok
}

func freeRuleName(rules *ruleSet, target string) string {
	for i := 0; ; i++ {
		name := fmt.Sprintf("%v_%v", target, i)
		if _, taken := rules.findByName(name); !taken {
			return name
		}
	}
}

func (g *Grammar) Start() string {
	return g.start
}

// Rules returns the rules in declaration order. The augmented rule is not
// included.
func (g *Grammar) Rules() []*Rule {
	return g.rules.all()[1:]
}

// AugmentedRule returns the rule `~ -> start`.
func (g *Grammar) AugmentedRule() *Rule {
	return g.augmented
}

// Rule looks a rule up by its name. The augmented rule is named `~_0`.
func (g *Grammar) Rule(name string) (*Rule, bool) {
	return g.rules.findByName(name)
}

func (g *Grammar) RulesOf(target string) []*Rule {
	rules, _ := g.rules.findByTarget(target)
	return rules
}

// Symbols returns every symbol of the grammar in ascending order.
func (g *Grammar) Symbols() []string {
	return g.symbols.Symbols()
}

func (g *Grammar) Terminals() []string {
	var terms []string
	for _, sym := range g.symbols.Symbols() {
		if !g.targets.Contains(sym) {
			terms = append(terms, sym)
		}
	}
	return terms
}

func (g *Grammar) NonTerminals() []string {
	return g.targets.Symbols()
}

func (g *Grammar) IsTerminal(sym string) bool {
	return g.symbols.Contains(sym) && !g.targets.Contains(sym)
}

// First returns FIRST(sym). The augmented start symbol shares the set of the
// start symbol.
func (g *Grammar) First(sym string) (*SymbolSet, bool) {
	return g.first.find(sym)
}

func (g *Grammar) Follow(sym string) (*SymbolSet, bool) {
	return g.follow.find(sym)
}

// FirstOf returns the FIRST set of a sequence of symbols. The set contains
// the epsilon marker when every symbol of the sequence is nullable, so the
// FIRST set of the empty sequence is {#}.
func (g *Grammar) FirstOf(seq []string) (*SymbolSet, error) {
	return g.first.findSeq(seq)
}
