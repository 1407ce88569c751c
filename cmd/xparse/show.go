package main

import (
	"fmt"
	"strings"

	"github.com/nihei9/xparse/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	start *string
	items *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the parsing table of a grammar in a readable format",
		Example: `  xparse show regex.xnf --start Regexp`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runShow,
	}
	showFlags.start = cmd.Flags().StringP("start", "s", "", "start symbol")
	showFlags.items = cmd.Flags().Bool("items", false, "print the LR(1) items of every state")
	cmd.MarkFlagRequired("start")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}
	gram, err := readGrammar(grmPath, *showFlags.start)
	if err != nil {
		return err
	}
	tab, err := gram.Build()
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("Rules")
	rules := pterm.TableData{{"#", "Name", "Rule"}}
	aug := gram.AugmentedRule()
	rules = append(rules, []string{fmt.Sprint(aug.Num()), aug.Name, aug.String()})
	for _, r := range gram.Rules() {
		rules = append(rules, []string{fmt.Sprint(r.Num()), r.Name, r.String()})
	}
	err = pterm.DefaultTable.WithHasHeader().WithData(rules).Render()
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("States")
	states := pterm.TableData{{"#", "State", "Actions"}}
	for _, s := range tab.States() {
		var acts []string
		for _, sym := range s.Symbols() {
			act, _ := s.Action(sym)
			acts = append(acts, fmt.Sprintf("%v: %v", sym, describeAction(tab, act)))
		}
		states = append(states, []string{fmt.Sprint(s.ID), tab.StateName(s.ID), strings.Join(acts, ", ")})
		if *showFlags.items {
			for _, item := range s.Items() {
				states = append(states, []string{"", "", "  " + item.String()})
			}
		}
	}
	err = pterm.DefaultTable.WithHasHeader().WithData(states).Render()
	if err != nil {
		return err
	}

	confs := tab.Report().ShiftReduceConflicts
	if len(confs) == 0 {
		pterm.Success.Println("no conflicts")
		return nil
	}
	for _, c := range confs {
		pterm.Warning.Printfln("shift/reduce conflict in %v on %v: shift to %v instead of reducing %v",
			tab.StateName(c.State), c.Symbol, tab.StateName(c.NextState), c.Rule.Name)
	}
	return nil
}

func describeAction(tab *grammar.ParsingTable, act *grammar.Action) string {
	switch act.Type {
	case grammar.ActionTypeReduce:
		return "reduce " + act.Rule.Name
	case grammar.ActionTypeShift:
		return "shift " + tab.StateName(act.Next)
	}
	return "goto " + tab.StateName(act.Next)
}
