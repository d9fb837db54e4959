package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/alecthomas/repr"
	"github.com/renfmt/pgen/dialect"
	"github.com/renfmt/pgen/grammar"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	rule *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "show [grammar file]",
		Short: "Summarize a compiled grammar, or the embedded dialects when no file is given",
		Example: `  pgen show grammar.txt
  pgen show grammar.txt --rule atom
  pgen show`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
	showFlags.rule = cmd.Flags().String("rule", "", "dump the automaton of a single rule")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return showDialects()
	}

	g, err := compileGrammar(args[0], true)
	if err != nil {
		return err
	}

	if *showFlags.rule != "" {
		sym, ok := g.SymbolToNumber[*showFlags.rule]
		if !ok {
			return fmt.Errorf("the grammar has no rule named %v", *showFlags.rule)
		}
		repr.New(os.Stdout, repr.Indent("  ")).Print(g.DFAs[sym])
		return nil
	}

	summarize(args[0], g)
	return nil
}

func showDialects() error {
	set, err := dialect.Load()
	if err != nil {
		return err
	}
	for _, d := range []struct {
		name string
		g    *grammar.Grammar
	}{
		{"legacy", set.Legacy},
		{"no-print", set.NoPrint},
		{"no-print-no-exec", set.NoPrintNoExec},
		{"async-keywords", set.AsyncKeywords},
		{"soft-keywords", set.SoftKeywords},
		{"pattern", set.Pattern},
	} {
		summarize(d.name, d.g)
	}
	return nil
}

func summarize(name string, g *grammar.Grammar) {
	keywords := make([]string, 0, len(g.Keywords))
	for kw := range g.Keywords {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	soft := make([]string, 0, len(g.SoftKeywords))
	for kw := range g.SoftKeywords {
		soft = append(soft, kw)
	}
	sort.Strings(soft)

	fmt.Printf("%v:\n", name)
	fmt.Printf("  version:       %v\n", g.Version)
	fmt.Printf("  start symbol:  %v\n", g.NumberToSymbol[g.StartSymbol])
	fmt.Printf("  rules:         %v\n", len(g.DFAs))
	fmt.Printf("  labels:        %v\n", len(g.Labels))
	fmt.Printf("  keywords:      %v\n", keywords)
	if len(soft) > 0 {
		fmt.Printf("  soft keywords: %v\n", soft)
	}
}
