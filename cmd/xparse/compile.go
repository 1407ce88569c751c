package main

import (
	"fmt"
	"os"

	"github.com/nihei9/xparse/artifact"
	"github.com/nihei9/xparse/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	start   *string
	output  *string
	format  *string
	compact *bool
	strict  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar into LR(1) states and a parsing table",
		Example: `  xparse compile regex.xnf --start Regexp -o out`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.start = cmd.Flags().StringP("start", "s", "", "start symbol")
	compileFlags.output = cmd.Flags().StringP("output", "o", ".", "output directory")
	compileFlags.format = cmd.Flags().StringP("format", "f", "json", "output format [json|yaml]")
	compileFlags.compact = cmd.Flags().Bool("compact", false, "also write the numbered, compressed parsing table")
	compileFlags.strict = cmd.Flags().Bool("strict", false, "fail on shift/reduce conflicts")
	cmd.MarkFlagRequired("start")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	format, err := artifact.ParseFormat(*compileFlags.format)
	if err != nil {
		return err
	}

	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}
	gram, err := readGrammar(grmPath, *compileFlags.start)
	if err != nil {
		return err
	}

	var buildOpts []grammar.BuildOption
	if *compileFlags.strict {
		buildOpts = append(buildOpts, grammar.DisallowShiftReduce())
	}
	tab, err := gram.Build(buildOpts...)
	if err != nil {
		return err
	}

	dumpOpts := []artifact.DumpOption{
		artifact.WithFormat(format),
	}
	if *compileFlags.compact {
		dumpOpts = append(dumpOpts, artifact.WithCompact())
	}
	err = artifact.Dump(*compileFlags.output, gram, tab, dumpOpts...)
	if err != nil {
		return fmt.Errorf("Cannot write the output files: %w", err)
	}

	if n := len(tab.Report().ShiftReduceConflicts); n > 0 {
		pterm.Warning.Printfln("%v shift/reduce conflicts were resolved by shifting", n)
	}
	fmt.Fprintf(os.Stdout, "%v states\n", len(tab.States()))

	return nil
}
