// Package artifact turns a grammar and its parsing table into documents and
// writes them out as JSON or YAML files.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nihei9/xparse/grammar"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

func tracer() tracing.Trace {
	return tracing.Select("xparse.artifact")
}

type Format string

const (
	FormatJSON = Format("json")
	FormatYAML = Format("yaml")
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format: %v (json or yaml is available)", s)
}

func (f Format) ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

type dumpConfig struct {
	format  Format
	compact bool
}

type DumpOption func(config *dumpConfig)

func WithFormat(f Format) DumpOption {
	return func(config *dumpConfig) {
		config.format = f
	}
}

// WithCompact adds the numbered, compressed parsing table.
func WithCompact() DumpOption {
	return func(config *dumpConfig) {
		config.compact = true
	}
}

// Dump writes one file per document into dest, creating it when needed.
// Existing files are overwritten.
func Dump(dest string, gram *grammar.Grammar, tab *grammar.ParsingTable, opts ...DumpOption) error {
	config := &dumpConfig{
		format: FormatJSON,
	}
	for _, opt := range opts {
		opt(config)
	}

	docs, err := NewDocuments(gram, tab, config.compact)
	if err != nil {
		return err
	}

	err = os.MkdirAll(dest, 0755)
	if err != nil {
		return err
	}
	for _, d := range docs.list() {
		b, err := Marshal(d.body, config.format)
		if err != nil {
			return fmt.Errorf("failed to marshal %v: %w", d.name, err)
		}
		path := filepath.Join(dest, d.name+config.format.ext())
		err = os.WriteFile(path, b, 0644)
		if err != nil {
			return err
		}
		tracer().Debugf("%v written", path)
	}
	tracer().Infof("%v documents written to %v", len(docs.list()), dest)

	return nil
}

// Marshal encodes a document. JSON output is indented.
func Marshal(v interface{}, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		var b bytes.Buffer
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case FormatJSON, "":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}
	return nil, fmt.Errorf("unknown format: %v", f)
}
