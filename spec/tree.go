package spec

// RootNode is the parsed form of one grammar description.
type RootNode struct {
	Rules []*RuleNode

	// Literals lists every quoted literal in the order of first appearance.
	Literals []string

	// Start is the name of the first rule, the implicit start symbol.
	Start string
}

type RuleNode struct {
	LHS string
	RHS ExprNode
	Pos Position
}

// ExprNode is a node of a rule's expression tree. Nodes are immutable
// once Parse returns.
type ExprNode interface {
	isExprNode()
}

// LiteralNode is a quoted keyword or operator. Soft marks a double-quoted
// literal, a keyword that is significant only in certain positions.
type LiteralNode struct {
	Text string
	Soft bool
}

// ReferenceNode names another rule or a token category.
type ReferenceNode struct {
	Name string
}

type SequenceNode struct {
	Elems []ExprNode
}

type AlternationNode struct {
	Alts []ExprNode
}

// OptionNode wraps an expression written as [...].
type OptionNode struct {
	Expr ExprNode
}

// RepeatNode wraps an expression suffixed with * (Min 0) or + (Min 1).
type RepeatNode struct {
	Expr ExprNode
	Min  int
}

func (*LiteralNode) isExprNode()     {}
func (*ReferenceNode) isExprNode()   {}
func (*SequenceNode) isExprNode()    {}
func (*AlternationNode) isExprNode() {}
func (*OptionNode) isExprNode()      {}
func (*RepeatNode) isExprNode()      {}
