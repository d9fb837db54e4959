package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/renfmt/pgen/dialect"
	verr "github.com/renfmt/pgen/error"
	"github.com/renfmt/pgen/grammar"
	"github.com/renfmt/pgen/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar file into parsing automata",
		Example: `  pgen compile grammar.txt -o grammar.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	srcName := "stdin"
	if len(args) > 0 {
		srcName = args[0]
	}
	defer func() {
		switch err := retErr.(type) {
		case verr.SpecErrors:
			for _, e := range err {
				e.SourceName = srcName
			}
		case *verr.SpecError:
			err.SourceName = srcName
		}
	}()

	g, err := compileGrammar(srcName, len(args) > 0)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *compileFlags.output != "" {
		f, err := os.OpenFile(*compileFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("cannot write the output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	b, err := json.Marshal(g)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))

	return nil
}

func compileGrammar(srcName string, fromFile bool) (*grammar.Grammar, error) {
	var src io.Reader = os.Stdin
	if fromFile {
		f, err := os.Open(srcName)
		if err != nil {
			return nil, fmt.Errorf("cannot open the grammar file %s: %w", srcName, err)
		}
		defer f.Close()
		src = f
	}

	root, err := spec.Parse(src)
	if err != nil {
		return nil, err
	}

	b := grammar.Builder{
		Root:   root,
		Tokens: dialect.Tokens(),
	}
	return b.Build()
}
