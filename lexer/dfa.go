package lexer

import (
	"fmt"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

// DFAEntry is one kind of token recognized by a DFAMatcher. Kind must be
// lower snake case.
type DFAEntry struct {
	Kind    string
	Pattern string
}

// DFAMatcher recognizes a group of token kinds with a single compiled DFA.
// The longest match wins; among matches of the same length the entry
// declared first wins. The reported Match.Kind is the kind of the entry.
type DFAMatcher struct {
	spec mldriver.LexSpec
}

// NewDFAMatcher compiles entries into one DFA. name names the lexical
// specification and must be lower snake case, like the kinds.
func NewDFAMatcher(name string, entries ...DFAEntry) (*DFAMatcher, error) {
	lexEntries := make([]*mlspec.LexEntry, 0, len(entries))
	for _, e := range entries {
		lexEntries = append(lexEntries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(e.Kind),
			Pattern: mlspec.LexPattern(e.Pattern),
		})
	}

	clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    name,
		Entries: lexEntries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr)
			}
			return nil, fmt.Errorf("%w: %v", errInvalidPattern, b.String())
		}
		return nil, fmt.Errorf("%w: %v", errInvalidPattern, err)
	}

	return &DFAMatcher{
		spec: mldriver.NewLexSpec(clspec),
	}, nil
}

func writeCompileError(w *strings.Builder, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

// EscapeDFAPattern escapes the meta characters of a DFA pattern so that it
// matches s literally.
func EscapeDFAPattern(s string) string {
	return mlspec.EscapePattern(s)
}

// Match runs the DFA from the start of input until it gets stuck and reports
// the last accepted prefix. Only the bytes the DFA consumes are read.
func (m *DFAMatcher) Match(input string) (*Match, bool) {
	mode := m.spec.InitialMode()
	state := m.spec.InitialState(mode)
	var accepted mldriver.ModeKindID
	n := 0
	for i := 0; i < len(input); i++ {
		next, ok := m.spec.NextState(mode, state, int(input[i]))
		if !ok {
			break
		}
		state = next
		if kind, ok := m.spec.Accept(mode, state); ok {
			accepted = kind
			n = i + 1
		}
	}
	if n == 0 {
		return nil, false
	}
	_, kind := m.spec.KindIDAndName(mode, accepted)
	text := input[:n]
	return &Match{
		Kind:   kind,
		Text:   text,
		Groups: []string{text},
	}, true
}
