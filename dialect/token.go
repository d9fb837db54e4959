package dialect

import "github.com/renfmt/pgen/grammar"

// Token-type ids shared by both embedded dialects. The numbering is fixed
// by the tokenizer the compiled grammars are driven with; nonterminal ids
// start at NTBase and never collide with it.
const (
	Endmarker = iota
	Name
	Number
	String
	Newline
	Indent
	Dedent
	LPar
	RPar
	LSqb
	RSqb
	Colon
	Comma
	Semi
	Plus
	Minus
	Star
	Slash
	VBar
	Amper
	Less
	Greater
	Equal
	Dot
	Percent
	Backquote
	LBrace
	RBrace
	EqEqual
	NotEqual
	LessEqual
	GreaterEqual
	Tilde
	Circumflex
	LeftShift
	RightShift
	DoubleStar
	PlusEqual
	MinEqual
	StarEqual
	SlashEqual
	PercentEqual
	AmperEqual
	VBarEqual
	CircumflexEqual
	LeftShiftEqual
	RightShiftEqual
	DoubleStarEqual
	DoubleSlash
	DoubleSlashEqual
	At
	AtEqual
	Op
	Comment
	NL
	RArrow
	Await
	Async
	ErrorToken
	ColonEqual
)

// NTBase is the first nonterminal id in every dialect grammar.
const NTBase = 256

// Tokens returns a fresh token table for the embedded dialects. Each call
// returns an independently owned value; the table is never shared mutable
// state.
func Tokens() *grammar.TokenTable {
	return &grammar.TokenTable{
		Categories: map[string]int{
			"ENDMARKER": Endmarker,
			"NAME":      Name,
			"NUMBER":    Number,
			"STRING":    String,
			"NEWLINE":   Newline,
			"INDENT":    Indent,
			"DEDENT":    Dedent,
			"ASYNC":     Async,
			"AWAIT":     Await,
		},
		Operators: map[string]int{
			"(":   LPar,
			")":   RPar,
			"[":   LSqb,
			"]":   RSqb,
			":":   Colon,
			",":   Comma,
			";":   Semi,
			"+":   Plus,
			"-":   Minus,
			"*":   Star,
			"/":   Slash,
			"|":   VBar,
			"&":   Amper,
			"<":   Less,
			">":   Greater,
			"=":   Equal,
			".":   Dot,
			"%":   Percent,
			"`":   Backquote,
			"{":   LBrace,
			"}":   RBrace,
			"==":  EqEqual,
			"!=":  NotEqual,
			"<>":  NotEqual,
			"<=":  LessEqual,
			">=":  GreaterEqual,
			"~":   Tilde,
			"^":   Circumflex,
			"<<":  LeftShift,
			">>":  RightShift,
			"**":  DoubleStar,
			"+=":  PlusEqual,
			"-=":  MinEqual,
			"*=":  StarEqual,
			"/=":  SlashEqual,
			"%=":  PercentEqual,
			"&=":  AmperEqual,
			"|=":  VBarEqual,
			"^=":  CircumflexEqual,
			"<<=": LeftShiftEqual,
			">>=": RightShiftEqual,
			"**=": DoubleStarEqual,
			"//":  DoubleSlash,
			"//=": DoubleSlashEqual,
			"@":   At,
			"@=":  AtEqual,
			"->":  RArrow,
			":=":  ColonEqual,
		},
		NonTerminalBase: NTBase,
	}
}
