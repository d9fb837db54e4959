package spec

import (
	"fmt"
	"io"

	verr "github.com/renfmt/pgen/error"
)

// Parse reads a grammar description and returns its expression trees, one
// per rule, along with the literals encountered and the start rule name.
// The returned tree is never partial: any malformed rule aborts the parse.
func Parse(src io.Reader) (*RootNode, error) {
	p := newParser(src)
	return p.parse()
}

type parser struct {
	lex         *lexer
	peekedTok   *token
	lastTok     *token
	currentRule string
	literals    []string
	litSeen     map[string]struct{}
}

func newParser(src io.Reader) *parser {
	return &parser{
		lex:     newLexer(src),
		litSeen: map[string]struct{}{},
	}
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			var ok bool
			retErr, ok = err.(error)
			if !ok {
				panic(err)
			}
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	var rules []*RuleNode
	for {
		if p.consume(tokenKindNewline) {
			continue
		}
		if p.consume(tokenKindEOF) {
			break
		}
		rules = append(rules, p.parseRule())
	}
	if len(rules) == 0 {
		p.raiseSyntaxError(synErrNoRules)
	}
	return &RootNode{
		Rules:    rules,
		Literals: p.literals,
		Start:    rules[0].LHS,
	}
}

func (p *parser) parseRule() *RuleNode {
	if !p.consume(tokenKindName) {
		p.raiseSyntaxError(synErrNoRuleName)
	}
	lhs := p.lastTok.text
	pos := p.lastTok.pos
	p.currentRule = lhs
	defer func() {
		p.currentRule = ""
	}()

	if !p.consume(tokenKindColon) {
		p.raiseSyntaxError(synErrNoColon)
	}
	rhs := p.parseAlternation()
	if !p.consume(tokenKindNewline) && !p.consume(tokenKindEOF) {
		p.raiseSyntaxError(synErrNoNewline)
	}
	return &RuleNode{
		LHS: lhs,
		RHS: rhs,
		Pos: pos,
	}
}

func (p *parser) parseAlternation() ExprNode {
	alt := p.parseSequence()
	if alt == nil {
		p.raiseSyntaxError(synErrEmptyAlternative)
	}
	alts := []ExprNode{alt}
	for {
		if !p.consume(tokenKindOr) {
			break
		}
		alt := p.parseSequence()
		if alt == nil {
			p.raiseSyntaxError(synErrEmptyAlternative)
		}
		alts = append(alts, alt)
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return &AlternationNode{
		Alts: alts,
	}
}

func (p *parser) parseSequence() ExprNode {
	var elems []ExprNode
	for {
		item := p.parseItem()
		if item == nil {
			break
		}
		elems = append(elems, item)
	}
	switch len(elems) {
	case 0:
		return nil
	case 1:
		return elems[0]
	}
	return &SequenceNode{
		Elems: elems,
	}
}

func (p *parser) parseItem() ExprNode {
	if p.consume(tokenKindLBracket) {
		inner := p.parseAlternation()
		if !p.consume(tokenKindRBracket) {
			p.raiseSyntaxError(synErrUnclosedOption)
		}
		return &OptionNode{
			Expr: inner,
		}
	}

	atom := p.parseAtom()
	if atom == nil {
		return nil
	}
	switch {
	case p.consume(tokenKindStar):
		return &RepeatNode{
			Expr: atom,
			Min:  0,
		}
	case p.consume(tokenKindPlus):
		return &RepeatNode{
			Expr: atom,
			Min:  1,
		}
	}
	return atom
}

func (p *parser) parseAtom() ExprNode {
	switch {
	case p.consume(tokenKindLParen):
		inner := p.parseAlternation()
		if !p.consume(tokenKindRParen) {
			p.raiseSyntaxError(synErrUnclosedGroup)
		}
		return inner
	case p.consume(tokenKindName):
		return &ReferenceNode{
			Name: p.lastTok.text,
		}
	case p.consume(tokenKindString):
		p.recordLiteral(p.lastTok.text)
		return &LiteralNode{
			Text: p.lastTok.text,
			Soft: p.lastTok.soft,
		}
	}
	return nil
}

func (p *parser) recordLiteral(text string) {
	if _, seen := p.litSeen[text]; seen {
		return
	}
	p.litSeen[text] = struct{}{}
	p.literals = append(p.literals, text)
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		var err error
		tok, err = p.lex.next()
		if err != nil {
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		p.raiseSyntaxError(synErrInvalidToken)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}

func (p *parser) raiseSyntaxError(synErr *SyntaxError) {
	tok := p.peekedTok
	if tok == nil {
		tok = p.lastTok
	}

	var detail string
	var pos Position
	if tok != nil {
		detail = describeToken(tok)
		pos = tok.pos
	}
	if p.currentRule != "" {
		if detail != "" {
			detail = fmt.Sprintf("rule %v: %v", p.currentRule, detail)
		} else {
			detail = fmt.Sprintf("rule %v", p.currentRule)
		}
	}

	panic(&verr.SpecError{
		Cause:  synErr,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

func describeToken(tok *token) string {
	switch tok.kind {
	case tokenKindName, tokenKindInvalid:
		return fmt.Sprintf("unexpected token %#v", tok.text)
	case tokenKindString:
		return fmt.Sprintf("unexpected literal %#v", tok.text)
	case tokenKindEOF:
		return "unexpected end of grammar"
	case tokenKindNewline:
		return "unexpected end of rule"
	default:
		return fmt.Sprintf("unexpected token %#v", string(tok.kind))
	}
}
