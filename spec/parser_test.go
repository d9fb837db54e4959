package spec

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	verr "github.com/renfmt/pgen/error"
)

func TestParse(t *testing.T) {
	lit := func(text string) *LiteralNode {
		return &LiteralNode{Text: text}
	}
	softLit := func(text string) *LiteralNode {
		return &LiteralNode{Text: text, Soft: true}
	}
	ref := func(name string) *ReferenceNode {
		return &ReferenceNode{Name: name}
	}
	seq := func(elems ...ExprNode) *SequenceNode {
		return &SequenceNode{Elems: elems}
	}
	alt := func(alts ...ExprNode) *AlternationNode {
		return &AlternationNode{Alts: alts}
	}
	opt := func(expr ExprNode) *OptionNode {
		return &OptionNode{Expr: expr}
	}
	rep := func(expr ExprNode, min int) *RepeatNode {
		return &RepeatNode{Expr: expr, Min: min}
	}

	tests := []*struct {
		caption  string
		src      string
		rules    map[string]ExprNode
		literals []string
		start    string
		err      error
	}{
		{
			caption: "a literal alternation",
			src:     "greeting: 'hi' | 'hello'\n",
			rules: map[string]ExprNode{
				"greeting": alt(lit("hi"), lit("hello")),
			},
			literals: []string{"hi", "hello"},
			start:    "greeting",
		},
		{
			caption: "a sequence with an optional suffix",
			src:     "opt_thing: NAME ['!']\n",
			rules: map[string]ExprNode{
				"opt_thing": seq(ref("NAME"), opt(lit("!"))),
			},
			literals: []string{"!"},
			start:    "opt_thing",
		},
		{
			caption: "star and plus wrap the preceding atom",
			src:     "r: a* b+\n",
			rules: map[string]ExprNode{
				"r": seq(rep(ref("a"), 0), rep(ref("b"), 1)),
			},
			start: "r",
		},
		{
			caption: "a group is transparent and repeatable",
			src:     "r: (a | b)* c\n",
			rules: map[string]ExprNode{
				"r": seq(rep(alt(ref("a"), ref("b")), 0), ref("c")),
			},
			start: "r",
		},
		{
			caption: "alternation binds looser than sequencing",
			src:     "r: a b | c\n",
			rules: map[string]ExprNode{
				"r": alt(seq(ref("a"), ref("b")), ref("c")),
			},
			start: "r",
		},
		{
			caption: "the first rule is the start rule",
			src:     "first: a\nsecond: b\n",
			rules: map[string]ExprNode{
				"first":  ref("a"),
				"second": ref("b"),
			},
			start: "first",
		},
		{
			caption: "the final rule may end at EOF without a newline",
			src:     "r: a",
			rules: map[string]ExprNode{
				"r": ref("a"),
			},
			start: "r",
		},
		{
			caption: "soft literals keep their quoting",
			src:     "m: \"match\" 'case'\n",
			rules: map[string]ExprNode{
				"m": seq(softLit("match"), lit("case")),
			},
			literals: []string{"match", "case"},
			start:    "m",
		},
		{
			caption: "literals are recorded once in order of first appearance",
			src:     "r: 'b' 'a' 'b'\n",
			rules: map[string]ExprNode{
				"r": seq(lit("b"), lit("a"), lit("b")),
			},
			literals: []string{"b", "a"},
			start:    "r",
		},
		{
			caption: "an empty grammar is an error",
			src:     "\n# only comments\n",
			err:     synErrNoRules,
		},
		{
			caption: "a rule needs a colon",
			src:     "r 'hi'\n",
			err:     synErrNoColon,
		},
		{
			caption: "a rule body may not be empty",
			src:     "r:\n",
			err:     synErrEmptyAlternative,
		},
		{
			caption: "an alternative may not be empty",
			src:     "r: a | | b\n",
			err:     synErrEmptyAlternative,
		},
		{
			caption: "a group must be closed",
			src:     "r: (a | b\n",
			err:     synErrUnclosedGroup,
		},
		{
			caption: "an option must be closed",
			src:     "r: [a\n",
			err:     synErrUnclosedOption,
		},
		{
			caption: "two rules may not share a line",
			src:     "r: a q: b\n",
			err:     synErrNoNewline,
		},
		{
			caption: "an invalid character aborts the parse",
			src:     "r: a ? b\n",
			err:     synErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tt.src))
			if tt.err != nil {
				if err == nil {
					t.Fatalf("expected an error; got none")
				}
				specErr := &verr.SpecError{}
				if !errors.As(err, &specErr) {
					t.Fatalf("unexpected error type: %T", err)
				}
				if !errors.Is(err, tt.err) {
					t.Fatalf("unexpected cause: want: %v, got: %v", tt.err, specErr.Cause)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if root.Start != tt.start {
				t.Fatalf("unexpected start rule: want: %v, got: %v", tt.start, root.Start)
			}
			if len(root.Rules) != len(tt.rules) {
				t.Fatalf("unexpected rule count: want: %v, got: %v", len(tt.rules), len(root.Rules))
			}
			for _, rule := range root.Rules {
				want, ok := tt.rules[rule.LHS]
				if !ok {
					t.Fatalf("unexpected rule: %v", rule.LHS)
				}
				if !reflect.DeepEqual(rule.RHS, want) {
					t.Fatalf("unexpected tree for rule %v:\nwant: %#v\ngot:  %#v", rule.LHS, want, rule.RHS)
				}
			}
			if tt.literals != nil && !reflect.DeepEqual(root.Literals, tt.literals) {
				t.Fatalf("unexpected literals: want: %v, got: %v", tt.literals, root.Literals)
			}
		})
	}
}

func TestParse_errorPositions(t *testing.T) {
	_, err := Parse(strings.NewReader("r: a\nq: (b\n"))
	if err == nil {
		t.Fatal("expected an error; got none")
	}
	specErr := &verr.SpecError{}
	if !errors.As(err, &specErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if !errors.Is(err, synErrUnclosedGroup) {
		t.Fatalf("unexpected cause: %v", specErr.Cause)
	}
	if specErr.Row == 0 {
		t.Fatalf("the error should carry a position: %+v", specErr)
	}
	if !strings.Contains(specErr.Detail, "q") {
		t.Fatalf("the detail should name the offending rule: %v", specErr.Detail)
	}
}

func TestParse_duplicateRulesAreKept(t *testing.T) {
	// Name collisions are a semantic matter; the parser keeps both rules
	// so the compiler can report them with positions.
	root, err := Parse(strings.NewReader("r: a\nr: b\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Rules) != 2 {
		t.Fatalf("unexpected rule count: want: 2, got: %v", len(root.Rules))
	}
}
