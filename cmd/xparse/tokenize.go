package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/xparse/lexer"
	"github.com/nihei9/xparse/spec"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tokenizeFlags = struct {
	interactive *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Tokenize a grammar description",
		Example: `  xparse tokenize regex.xnf
  xparse tokenize -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTokenize,
	}
	tokenizeFlags.interactive = cmd.Flags().BoolP("interactive", "i", false, "read lines from a prompt")
	rootCmd.AddCommand(cmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	lex, err := spec.NewLexer()
	if err != nil {
		return err
	}

	if *tokenizeFlags.interactive {
		return tokenizeInteractively(lex)
	}

	var src io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("Cannot open the file %s: %w", args[0], err)
		}
		defer f.Close()
		src = f
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	return printTokens(os.Stdout, lex, string(b))
}

func tokenizeInteractively(lex *lexer.Lexer) error {
	rl, err := readline.New("xparse> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		err = printTokens(rl.Stdout(), lex, line)
		if err != nil {
			pterm.Error.Println(err)
		}
	}
}

func printTokens(w io.Writer, lex *lexer.Lexer, src string) error {
	s := lex.Tokenize(src)
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v:%v\t%v\t%q\n", tok.Row, tok.Col, tok.Kind, tok.Text)
	}
}
