package main

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "xparse",
	Short: "Generate an LR(1) parsing table from a grammar",
	Long: `xparse provides three features:
- Generates the canonical LR(1) states and the parsing table of a grammar.
- Shows the parsing table of a grammar.
- Tokenizes a grammar description, which helps debugging a grammar.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setTraceLevel(*rootFlags.trace)
	},
}

var traceKeys = []string{
	"xparse.lexer",
	"xparse.spec",
	"xparse.grammar",
	"xparse.artifact",
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

// setTraceLevel routes every tracer of xparse to the standard logger (stderr)
// and applies the given level to them.
func setTraceLevel(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	l := tracing.TraceLevelFromString(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err)
		return err
	}
	return nil
}
