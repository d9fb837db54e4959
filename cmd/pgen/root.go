package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgen",
	Short: "Compile a grammar into table-driven parsing automata",
	Long: `pgen compiles a BNF-like grammar description into one deterministic
automaton per rule and emits the result as JSON. It can also inspect the
grammar dialects embedded in the library.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
