package lexer

import (
	"fmt"
	"regexp"
)

// Match is the result of a successful Matcher.Match call. Text is always a
// prefix of the input.
type Match struct {
	// Kind overrides the name the matcher was registered with. Matchers
	// recognizing several kinds of tokens, like DFAMatcher, set it.
	Kind   string
	Text   string
	Groups []string
}

// Matcher recognizes a token at the start of its input. An empty match counts
// as no match.
type Matcher interface {
	Match(input string) (*Match, bool)
}

type MatcherFunc func(input string) (*Match, bool)

func (f MatcherFunc) Match(input string) (*Match, bool) {
	return f(input)
}

type regexpMatcher struct {
	re *regexp.Regexp
}

func newRegexpMatcher(pattern string) (*regexpMatcher, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPattern, err)
	}
	return &regexpMatcher{
		re: re,
	}, nil
}

func (m *regexpMatcher) Match(input string) (*Match, bool) {
	loc := m.re.FindStringSubmatchIndex(input)
	if loc == nil || loc[1] == 0 {
		return nil, false
	}
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] < 0 {
			continue
		}
		groups[i] = input[loc[2*i]:loc[2*i+1]]
	}
	return &Match{
		Text:   input[:loc[1]],
		Groups: groups,
	}, true
}

func matchNonEmpty(m Matcher, input string) (*Match, bool) {
	if m == nil {
		return nil, false
	}
	res, ok := m.Match(input)
	if !ok || res == nil || res.Text == "" {
		return nil, false
	}
	return res, true
}
