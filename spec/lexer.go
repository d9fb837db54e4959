package spec

import (
	"bufio"
	"io"
	"strings"

	verr "github.com/renfmt/pgen/error"
)

type tokenKind string

const (
	tokenKindName     = tokenKind("name")
	tokenKindString   = tokenKind("string")
	tokenKindColon    = tokenKind(":")
	tokenKindOr       = tokenKind("|")
	tokenKindStar     = tokenKind("*")
	tokenKindPlus     = tokenKind("+")
	tokenKindLParen   = tokenKind("(")
	tokenKindRParen   = tokenKind(")")
	tokenKindLBracket = tokenKind("[")
	tokenKindRBracket = tokenKind("]")
	tokenKindNewline  = tokenKind("newline")
	tokenKindEOF      = tokenKind("eof")
	tokenKindInvalid  = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	soft bool
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newNameToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindName,
		text: text,
		pos:  pos,
	}
}

func newStringToken(text string, soft bool, pos Position) *token {
	return &token{
		kind: tokenKindString,
		text: text,
		soft: soft,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

type lexer struct {
	src *bufio.Reader
	row int
	col int

	// depth is the bracket nesting level. Newlines inside brackets are
	// insignificant, the same implicit line joining the rule syntax allows
	// for long right-hand sides.
	depth int

	// midLine reports whether the current logical line has produced a token
	// yet. Blank lines and comment-only lines yield no newline token.
	midLine bool
}

func newLexer(src io.Reader) *lexer {
	return &lexer{
		src: bufio.NewReader(src),
		row: 1,
		col: 1,
	}
}

func (l *lexer) next() (*token, error) {
	for {
		pos := newPosition(l.row, l.col)
		c, eof, err := l.read()
		if err != nil {
			return nil, err
		}
		if eof {
			return newEOFToken(pos), nil
		}

		switch c {
		case ' ', '\t', '\r':
			continue
		case '\n':
			if tok := l.lineBreak(pos); tok != nil {
				return tok, nil
			}
			continue
		case '#':
			tok, err := l.skipComment()
			if err != nil {
				return nil, err
			}
			if tok != nil {
				return tok, nil
			}
			continue
		case ':':
			l.midLine = true
			return newSymbolToken(tokenKindColon, pos), nil
		case '|':
			l.midLine = true
			return newSymbolToken(tokenKindOr, pos), nil
		case '*':
			l.midLine = true
			return newSymbolToken(tokenKindStar, pos), nil
		case '+':
			l.midLine = true
			return newSymbolToken(tokenKindPlus, pos), nil
		case '(':
			l.midLine = true
			l.depth++
			return newSymbolToken(tokenKindLParen, pos), nil
		case ')':
			l.midLine = true
			if l.depth > 0 {
				l.depth--
			}
			return newSymbolToken(tokenKindRParen, pos), nil
		case '[':
			l.midLine = true
			l.depth++
			return newSymbolToken(tokenKindLBracket, pos), nil
		case ']':
			l.midLine = true
			if l.depth > 0 {
				l.depth--
			}
			return newSymbolToken(tokenKindRBracket, pos), nil
		case '\'', '"':
			l.midLine = true
			return l.lexString(c, pos)
		default:
			l.midLine = true
			if isNameStart(c) {
				return l.lexName(c, pos)
			}
			return newInvalidToken(string(c), pos), nil
		}
	}
}

// lineBreak ends the current logical line. It returns a newline token only
// when the line produced at least one token outside of brackets.
func (l *lexer) lineBreak(pos Position) *token {
	if l.depth > 0 || !l.midLine {
		return nil
	}
	l.midLine = false
	return newSymbolToken(tokenKindNewline, pos)
}

func (l *lexer) skipComment() (*token, error) {
	for {
		pos := newPosition(l.row, l.col)
		c, eof, err := l.read()
		if err != nil {
			return nil, err
		}
		if eof {
			return nil, nil
		}
		if c == '\n' {
			return l.lineBreak(pos), nil
		}
	}
}

func (l *lexer) lexName(head rune, pos Position) (*token, error) {
	var b strings.Builder
	b.WriteRune(head)
	for {
		c, eof, err := l.peek()
		if err != nil {
			return nil, err
		}
		if eof || !isNameChar(c) {
			break
		}
		if _, _, err := l.read(); err != nil {
			return nil, err
		}
		b.WriteRune(c)
	}
	return newNameToken(b.String(), pos), nil
}

func (l *lexer) lexString(quote rune, pos Position) (*token, error) {
	var b strings.Builder
	for {
		c, eof, err := l.read()
		if err != nil {
			return nil, err
		}
		if eof || c == '\n' {
			return nil, &verr.SpecError{
				Cause: synErrUnclosedString,
				Row:   pos.Row,
				Col:   pos.Col,
			}
		}
		if c == quote {
			text := b.String()
			if text == "" {
				return nil, &verr.SpecError{
					Cause: synErrEmptyString,
					Row:   pos.Row,
					Col:   pos.Col,
				}
			}
			return newStringToken(text, quote == '"', pos), nil
		}
		b.WriteRune(c)
	}
}

func (l *lexer) read() (rune, bool, error) {
	c, _, err := l.src.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, true, nil
		}
		return 0, false, err
	}
	if c == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}
	return c, false, nil
}

func (l *lexer) peek() (rune, bool, error) {
	c, _, err := l.src.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, true, nil
		}
		return 0, false, err
	}
	if err := l.src.UnreadRune(); err != nil {
		return 0, false, err
	}
	return c, false, nil
}

func isNameStart(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isNameChar(c rune) bool {
	return isNameStart(c) || c >= '0' && c <= '9'
}
