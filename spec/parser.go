package spec

import (
	"fmt"
	"io"
	"strings"

	verr "github.com/nihei9/xparse/error"
	"github.com/nihei9/xparse/lexer"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("xparse.spec")
}

type RootNode struct {
	Rules []*RuleNode
}

// RuleNode is one alternative of a rule group. Name is `<target>_<ordinal>`,
// where the ordinal counts the alternatives of the group.
type RuleNode struct {
	Name   string
	Target string
	Items  []string
	Pos    Position
}

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type loaderState int

const (
	loaderStateTarget loaderState = iota
	loaderStateAssigner
	loaderStateItems
)

func (s loaderState) String() string {
	switch s {
	case loaderStateTarget:
		return "target"
	case loaderStateAssigner:
		return "assigner"
	case loaderStateItems:
		return "items"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type accumulator struct {
	target  string
	items   []string
	ordinal int
	group   Position
	pos     Position
}

// transition is the loader's state machine. It never changes its arguments;
// the rule it returns, if any, is complete.
func transition(st loaderState, acc accumulator, tok *lexer.Token) (loaderState, accumulator, *RuleNode, error) {
	pos := newPosition(tok.Row, tok.Col)
	switch st {
	case loaderStateTarget:
		if tok.Kind != tokenKindID {
			return st, acc, nil, newSyntaxErrorAt(synErrNoTarget, tok)
		}
		return loaderStateAssigner, accumulator{
			target: tok.Text,
			group:  pos,
			pos:    pos,
		}, nil, nil
	case loaderStateAssigner:
		if tok.Kind != tokenKindAssigner {
			return st, acc, nil, newSyntaxErrorAt(synErrNoAssigner, tok)
		}
		return loaderStateItems, acc, nil, nil
	case loaderStateItems:
		switch tok.Kind {
		case tokenKindID, tokenKindSymbol:
			acc.items = append(acc.items[:len(acc.items):len(acc.items)], tok.Text)
			return st, acc, nil, nil
		case tokenKindString:
			text, err := unquote(tok.Text)
			if err != nil {
				return st, acc, nil, newSyntaxErrorAt(err.(*SyntaxError), tok)
			}
			acc.items = append(acc.items[:len(acc.items):len(acc.items)], text)
			return st, acc, nil, nil
		case tokenKindOr:
			rule := acc.close()
			return st, accumulator{
				target:  acc.target,
				ordinal: acc.ordinal + 1,
				group:   acc.group,
				pos:     pos,
			}, rule, nil
		case tokenKindSemicolon:
			return loaderStateTarget, accumulator{}, acc.close(), nil
		}
		return st, acc, nil, newSyntaxErrorAt(synErrUnexpectedToken, tok)
	}
	return st, acc, nil, fmt.Errorf("invalid loader state: %v", st)
}

func (acc accumulator) close() *RuleNode {
	return &RuleNode{
		Name:   fmt.Sprintf("%v_%v", acc.target, acc.ordinal),
		Target: acc.target,
		Items:  acc.items,
		Pos:    acc.pos,
	}
}

func newSyntaxErrorAt(synErr *SyntaxError, tok *lexer.Token) *verr.SpecError {
	return &verr.SpecError{
		Cause:  synErr,
		Detail: fmt.Sprintf("%v (%v)", tok.Text, tok.Kind),
		Row:    tok.Row,
		Col:    tok.Col,
	}
}

func unquote(s string) (string, error) {
	body := s[1 : len(s)-1]
	if body == "" {
		return "", synErrEmptyString
	}
	if !strings.Contains(body, `\`) {
		return body, nil
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) || (body[i] != '"' && body[i] != '\\') {
			return "", synErrInvalidEscSeq
		}
		b.WriteByte(body[i])
	}
	return b.String(), nil
}

type parseConfig struct {
	lex *lexer.Lexer
}

type ParseOption func(config *parseConfig)

// WithLexer replaces the lexer of the description language. The lexer must
// produce the same token kinds as the one NewLexer returns.
func WithLexer(l *lexer.Lexer) ParseOption {
	return func(config *parseConfig) {
		config.lex = l
	}
}

func Parse(src io.Reader, opts ...ParseOption) (*RootNode, error) {
	config := &parseConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.lex == nil {
		l, err := NewLexer()
		if err != nil {
			return nil, err
		}
		config.lex = l
	}

	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	root := &RootNode{}
	st := loaderStateTarget
	acc := accumulator{}
	s := config.lex.Tokenize(string(b))
	for {
		tok, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var rule *RuleNode
		st, acc, rule, err = transition(st, acc, tok)
		if err != nil {
			return nil, err
		}
		if rule != nil {
			tracer().Debugf("rule %v: %v -> %v", rule.Name, rule.Target, strings.Join(rule.Items, " "))
			root.Rules = append(root.Rules, rule)
		}
	}
	if st != loaderStateTarget {
		return nil, &verr.SpecError{
			Cause:  synErrUnexpectedEOF,
			Detail: acc.target,
			Row:    acc.group.Row,
			Col:    acc.group.Col,
		}
	}

	return root, nil
}
