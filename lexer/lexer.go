package lexer

import (
	"fmt"
	"sort"
)

type Role int

const (
	RoleToken Role = iota
	RoleSkipWhitespace
	RoleSkipNewline
	RoleErrorHook
)

func (r Role) String() string {
	switch r {
	case RoleToken:
		return "token"
	case RoleSkipWhitespace:
		return "skip-whitespace"
	case RoleSkipNewline:
		return "skip-newline"
	case RoleErrorHook:
		return "error-hook"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ErrorHook is called when nothing matches at the current position. input is
// the unconsumed rest of the source. When the hook returns nil the stream
// ends as if the input were exhausted.
type ErrorHook func(input string, row, col int) error

// Definition is one registration passed to AddPatterns. Use the constructor
// functions below rather than filling in the fields by hand.
type Definition struct {
	Role    Role
	Name    string
	Pattern string
	Matcher Matcher
	Hook    ErrorHook
}

// Pattern defines a token kind recognized by a regular expression. The
// expression is anchored at the current position.
func Pattern(name, pattern string) *Definition {
	return &Definition{
		Role:    RoleToken,
		Name:    name,
		Pattern: pattern,
	}
}

// Func defines a token kind recognized by a function.
func Func(name string, f func(input string) (*Match, bool)) *Definition {
	return &Definition{
		Role:    RoleToken,
		Name:    name,
		Matcher: MatcherFunc(f),
	}
}

// Custom defines a token kind recognized by an arbitrary Matcher.
func Custom(name string, m Matcher) *Definition {
	return &Definition{
		Role:    RoleToken,
		Name:    name,
		Matcher: m,
	}
}

func SkipWhitespace(pattern string) *Definition {
	return &Definition{
		Role:    RoleSkipWhitespace,
		Pattern: pattern,
	}
}

// SkipNewline defines the newline skipper. Every line feed it consumes
// advances the row counter.
func SkipNewline(pattern string) *Definition {
	return &Definition{
		Role:    RoleSkipNewline,
		Pattern: pattern,
	}
}

func OnError(hook ErrorHook) *Definition {
	return &Definition{
		Role: RoleErrorHook,
		Hook: hook,
	}
}

type MatchMode int

const (
	MatchFastest MatchMode = iota
	MatchLongest
)

type Token struct {
	Kind   string
	Text   string
	Row    int
	Col    int
	Groups []string

	// Leading holds the whitespace and newlines skipped right before the token.
	Leading string
}

func (t *Token) String() string {
	return fmt.Sprintf("%v:%v %v %q", t.Row, t.Col, t.Kind, t.Text)
}

type entry struct {
	name    string
	matcher Matcher
}

type Lexer struct {
	name       string
	priorities []int
	buckets    map[int][]*entry
	names      map[string]struct{}
	whitespace Matcher
	newline    Matcher
	onError    ErrorHook
	literals   []string
	litTab     *literalTable
}

func New(name string) *Lexer {
	return &Lexer{
		name:    name,
		buckets: map[int][]*entry{},
		names:   map[string]struct{}{},
	}
}

func (l *Lexer) Name() string {
	return l.name
}

// AddPatterns registers definitions at a priority. Either all definitions are
// registered or, on error, none is.
func (l *Lexer) AddPatterns(priority int, defs ...*Definition) error {
	var entries []*entry
	var whitespace, newline Matcher
	var onError ErrorHook
	names := map[string]struct{}{}
	for _, def := range defs {
		switch def.Role {
		case RoleToken:
			if def.Name == "" {
				return errNoName
			}
			if def.Name == KindLiteral {
				return fmt.Errorf("%w: %v", errReservedName, def.Name)
			}
			if _, dup := l.names[def.Name]; dup {
				return fmt.Errorf("%w: %v", errDuplicateName, def.Name)
			}
			if _, dup := names[def.Name]; dup {
				return fmt.Errorf("%w: %v", errDuplicateName, def.Name)
			}
			m, err := def.matcher()
			if err != nil {
				return fmt.Errorf("%w (token: %v)", err, def.Name)
			}
			names[def.Name] = struct{}{}
			entries = append(entries, &entry{
				name:    def.Name,
				matcher: m,
			})
		case RoleSkipWhitespace:
			if l.whitespace != nil || whitespace != nil {
				return fmt.Errorf("%w: %v", errDuplicateAssist, def.Role)
			}
			m, err := def.matcher()
			if err != nil {
				return fmt.Errorf("%w (%v)", err, def.Role)
			}
			whitespace = m
		case RoleSkipNewline:
			if l.newline != nil || newline != nil {
				return fmt.Errorf("%w: %v", errDuplicateAssist, def.Role)
			}
			m, err := def.matcher()
			if err != nil {
				return fmt.Errorf("%w (%v)", err, def.Role)
			}
			newline = m
		case RoleErrorHook:
			if def.Hook == nil {
				return errNoHook
			}
			if l.onError != nil || onError != nil {
				return fmt.Errorf("%w: %v", errDuplicateAssist, def.Role)
			}
			onError = def.Hook
		default:
			return fmt.Errorf("%w: %v", errUnknownRole, def.Role)
		}
	}

	if len(entries) > 0 {
		if _, ok := l.buckets[priority]; !ok {
			l.priorities = append(l.priorities, priority)
			sort.Sort(sort.Reverse(sort.IntSlice(l.priorities)))
		}
		l.buckets[priority] = append(l.buckets[priority], entries...)
		for _, e := range entries {
			l.names[e.name] = struct{}{}
			tracer().Debugf("%v: token %v registered at priority %v", l.name, e.name, priority)
		}
	}
	if whitespace != nil {
		l.whitespace = whitespace
	}
	if newline != nil {
		l.newline = newline
	}
	if onError != nil {
		l.onError = onError
	}

	return nil
}

func (d *Definition) matcher() (Matcher, error) {
	if d.Matcher != nil {
		return d.Matcher, nil
	}
	if d.Pattern == "" {
		return nil, errNoMatcher
	}
	return newRegexpMatcher(d.Pattern)
}

// AddLiterals adds keyword literals. A token produced by a literal has the
// quoted literal as its kind, e.g. `"if"`.
func (l *Lexer) AddLiterals(literals ...string) error {
	for _, lit := range literals {
		if lit == "" {
			return errEmptyLiteral
		}
	}
	lits := append(append([]string{}, l.literals...), literals...)
	tab, err := newLiteralTable(lits)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidPattern, err)
	}
	l.literals = lits
	l.litTab = tab
	return nil
}

// Match matches a single token at the start of input without skipping any
// whitespace. The token's position is reported as 1:1.
func (l *Lexer) Match(input string, mode MatchMode) (*Token, bool) {
	return l.match(input, mode, 1, 1)
}

func (l *Lexer) match(input string, mode MatchMode, row, col int) (*Token, bool) {
	var best *Match
	var bestName string
	for _, p := range l.priorities {
		for _, e := range l.buckets[p] {
			m, ok := matchNonEmpty(e.matcher, input)
			if !ok {
				continue
			}
			if mode == MatchFastest {
				return newToken(e.name, m, row, col), true
			}
			if best == nil || len(m.Text) > len(best.Text) {
				best = m
				bestName = e.name
			}
		}
	}
	if best != nil {
		return newToken(bestName, best, row, col), true
	}

	return l.matchLiteral(input, row, col)
}

func (l *Lexer) matchLiteral(input string, row, col int) (*Token, bool) {
	lit, ok := l.litTab.match(input)
	if !ok {
		return nil, false
	}
	return &Token{
		Kind:   literalKind(lit),
		Text:   lit,
		Row:    row,
		Col:    col,
		Groups: []string{lit},
	}, true
}

// KindLiteral selects the literal table in MatchKind.
const KindLiteral = "_literal_"

// MatchKind matches a single token at the start of input using only the
// matcher registered under kind, or only the literal table when kind is
// KindLiteral. Priorities do not apply. An unknown kind never matches.
func (l *Lexer) MatchKind(input, kind string) (*Token, bool) {
	if kind == KindLiteral {
		return l.matchLiteral(input, 1, 1)
	}
	for _, p := range l.priorities {
		for _, e := range l.buckets[p] {
			if e.name != kind {
				continue
			}
			m, ok := matchNonEmpty(e.matcher, input)
			if !ok {
				return nil, false
			}
			return newToken(e.name, m, 1, 1), true
		}
	}
	return nil, false
}

func newToken(name string, m *Match, row, col int) *Token {
	kind := name
	if m.Kind != "" {
		kind = m.Kind
	}
	return &Token{
		Kind:   kind,
		Text:   m.Text,
		Row:    row,
		Col:    col,
		Groups: m.Groups,
	}
}
