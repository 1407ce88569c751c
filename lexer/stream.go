package lexer

import (
	"io"
	"unicode/utf8"

	verr "github.com/nihei9/xparse/error"
)

// Stream is a lazy sequence of tokens over one source. Each Next call resumes
// from where the previous one stopped.
type Stream struct {
	lex      *Lexer
	src      string
	pos      int
	row      int
	col      int
	trailing string
	err      error
}

func (l *Lexer) Tokenize(src string) *Stream {
	return &Stream{
		lex: l,
		src: src,
		row: 1,
		col: 1,
	}
}

// Next returns the next token. It returns io.EOF when the source is
// exhausted. Once Next has returned an error, it keeps returning that error.
func (s *Stream) Next() (*Token, error) {
	if s.err != nil {
		return nil, s.err
	}

	skipped := s.skip()
	if s.pos >= len(s.src) {
		s.trailing = skipped
		s.err = io.EOF
		return nil, s.err
	}

	rest := s.src[s.pos:]
	tok, ok := s.lex.match(rest, MatchFastest, s.row, s.col)
	if !ok {
		s.err = s.lex.fail(rest, s.row, s.col)
		return nil, s.err
	}
	tok.Leading = skipped
	s.consume(tok.Text)

	return tok, nil
}

// Trailing returns the whitespace and newlines skipped after the last token.
// It is only meaningful once Next has returned io.EOF.
func (s *Stream) Trailing() string {
	return s.trailing
}

// Position returns the row and column of the next unread character.
func (s *Stream) Position() (int, int) {
	return s.row, s.col
}

func (s *Stream) skip() string {
	start := s.pos
	for s.pos < len(s.src) {
		rest := s.src[s.pos:]
		if m, ok := matchNonEmpty(s.lex.whitespace, rest); ok {
			s.consume(m.Text)
			continue
		}
		if m, ok := matchNonEmpty(s.lex.newline, rest); ok {
			s.consume(m.Text)
			continue
		}
		break
	}
	return s.src[start:s.pos]
}

func (s *Stream) consume(text string) {
	for _, c := range text {
		if c == '\n' {
			s.row++
			s.col = 1
			continue
		}
		s.col++
	}
	s.pos += len(text)
}

func (l *Lexer) fail(rest string, row, col int) error {
	if l.onError != nil {
		err := l.onError(rest, row, col)
		if err == nil {
			tracer().Debugf("%v: error hook stopped the stream at %v:%v", l.name, row, col)
			return io.EOF
		}
		return err
	}
	c, _ := utf8.DecodeRuneInString(rest)
	tracer().Infof("%v: unrecognized symbol %q at %v:%v", l.name, c, row, col)
	return &verr.SpecError{
		Cause:      ErrUnrecognizedSymbol,
		Detail:     string(c),
		SourceName: l.name,
		Row:        row,
		Col:        col,
	}
}

// TokenizeAll drains a stream over src.
func (l *Lexer) TokenizeAll(src string) ([]*Token, error) {
	var toks []*Token
	s := l.Tokenize(src)
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}
