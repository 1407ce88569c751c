package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	verr "github.com/nihei9/xparse/error"
	"github.com/nihei9/xparse/grammar"
)

// readGrammar loads a grammar from a file, or from stdin when path is empty.
func readGrammar(path, start string) (gram *grammar.Grammar, retErr error) {
	sourceName := path
	if path == "" {
		sourceName = "stdin"
	}
	defer func() {
		if retErr != nil {
			setSource(retErr, path, sourceName)
		}
	}()

	var src io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}

	return grammar.Load(src, start)
}

func setSource(err error, path, sourceName string) {
	var specErrs verr.SpecErrors
	if errors.As(err, &specErrs) {
		specErrs.SetSource(path, sourceName)
		return
	}
	var specErr *verr.SpecError
	if errors.As(err, &specErr) {
		specErr.FilePath = path
		specErr.SourceName = sourceName
	}
}
