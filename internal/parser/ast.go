package parser

import "fmt"

// NodeType represents the type of AST node
type NodeType string

// Python AST node types. Names follow Python's abstract grammar so the
// detectors read the same way the language reference does.
const (
	NodeModule NodeType = "Module"

	// Definitions
	NodeFunctionDef NodeType = "FunctionDef"
	NodeClassDef    NodeType = "ClassDef"
	NodeArg         NodeType = "arg"
	NodeLambda      NodeType = "Lambda"

	// Control flow
	NodeIf            NodeType = "If"
	NodeFor           NodeType = "For"
	NodeWhile         NodeType = "While"
	NodeWith          NodeType = "With"
	NodeWithItem      NodeType = "withitem"
	NodeTry           NodeType = "Try"
	NodeExceptHandler NodeType = "ExceptHandler"
	NodeReturn        NodeType = "Return"
	NodeRaise         NodeType = "Raise"
	NodePass          NodeType = "Pass"
	NodeBreak         NodeType = "Break"
	NodeContinue      NodeType = "Continue"

	// Statements
	NodeAssign    NodeType = "Assign"
	NodeAugAssign NodeType = "AugAssign"
	NodeAnnAssign NodeType = "AnnAssign"
	NodeExpr      NodeType = "Expr"

	// Expressions
	NodeBoolOp        NodeType = "BoolOp"
	NodeNamedExpr     NodeType = "NamedExpr"
	NodeCall          NodeType = "Call"
	NodeKeyword       NodeType = "keyword"
	NodeName          NodeType = "Name"
	NodeAttribute     NodeType = "Attribute"
	NodeSubscript     NodeType = "Subscript"
	NodeStarred       NodeType = "Starred"
	NodeTuple         NodeType = "Tuple"
	NodeList          NodeType = "List"
	NodeConstant      NodeType = "Constant"
	NodeComprehension NodeType = "comprehension"
	NodeListComp      NodeType = "ListComp"
	NodeSetComp       NodeType = "SetComp"
	NodeDictComp      NodeType = "DictComp"
	NodeGeneratorExp  NodeType = "GeneratorExp"
	NodeJoinedStr     NodeType = "JoinedStr"

	// Statements without analyzable sub-nodes
	NodeImport NodeType = "Import"
	NodeGlobal NodeType = "Global"
	NodeDelete NodeType = "Delete"
)

// ExprContext tells whether a name is read, written or deleted
type ExprContext int

const (
	CtxNone ExprContext = iota
	CtxLoad
	CtxStore
	CtxDel
)

// ArgKind classifies a function parameter
type ArgKind int

const (
	ArgPositional ArgKind = iota
	ArgPositionalOnly
	ArgVararg
	ArgKeywordOnly
	ArgKwarg
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node represents an AST node. Children holds every sub-node in source
// field order; the named fields below point into Children and are never
// walked separately.
type Node struct {
	Type     NodeType
	Children []*Node
	Location Location
	Parent   *Node

	// Name holds the identifier of a def/class/arg/keyword, the id of a
	// Name node, the attr of an Attribute node and the bound name of an
	// except handler
	Name string

	// Raw is the source text of leaf nodes and operators
	Raw string

	Ctx      ExprContext
	ArgKind  ArgKind
	Operator string // "and" / "or" for BoolOp, operator text for AugAssign
	Async    bool

	// Definitions
	Params     []*Node
	Decorators []*Node
	Bases      []*Node
	Keywords   []*Node
	Returns    *Node

	// Blocks
	Body      []*Node
	Orelse    []*Node
	Handlers  []*Node
	Finalbody []*Node
	Items     []*Node

	// Expressions and simple statements. Value also holds the exception
	// type of an except handler.
	Targets    []*Node
	Target     *Node
	Value      *Node
	Test       *Node
	Iter       *Node
	Func       *Node
	Args       []*Node
	Values     []*Node
	Annotation *Node
	Cause      *Node // raise ... from Cause
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType) *Node {
	return &Node{Type: nodeType}
}

// AddChild appends child to Children and links its parent
func (n *Node) AddChild(child *Node) *Node {
	if child == nil {
		return nil
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// Walk traverses the AST depth-first in pre-order and calls the visitor
// for each node. If the visitor returns false, the branch below that node
// is skipped.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visitor)
	}
}

// WalkBreadthFirst visits the node and its descendants level by level
func (n *Node) WalkBreadthFirst(fn func(*Node)) {
	if n == nil {
		return
	}
	queue := []*Node{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		fn(node)
		queue = append(queue, node.Children...)
	}
}

// Each calls fn for the node and all of its descendants
func (n *Node) Each(fn func(*Node)) {
	n.Walk(func(node *Node) bool {
		fn(node)
		return true
	})
}

// Find returns all descendants (including n) for which match returns true
func (n *Node) Find(match func(*Node) bool) []*Node {
	var found []*Node
	n.Each(func(node *Node) {
		if match(node) {
			found = append(found, node)
		}
	})
	return found
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}

// Line returns the 1-based start line
func (n *Node) Line() int {
	return n.Location.StartLine
}

// EndLine returns the 1-based end line
func (n *Node) EndLine() int {
	if n.Location.EndLine == 0 {
		return n.Location.StartLine
	}
	return n.Location.EndLine
}

// IsFunction returns true for function definitions (sync and async)
func (n *Node) IsFunction() bool {
	return n.Type == NodeFunctionDef
}

// IsClass returns true for class definitions
func (n *Node) IsClass() bool {
	return n.Type == NodeClassDef
}

// IsConditional returns true for if statements (including elif branches)
func (n *Node) IsConditional() bool {
	return n.Type == NodeIf
}

// IsLoop returns true for for and while loops
func (n *Node) IsLoop() bool {
	return n.Type == NodeFor || n.Type == NodeWhile
}

// IsExceptionHandler returns true for except clauses
func (n *Node) IsExceptionHandler() bool {
	return n.Type == NodeExceptHandler
}

// IsBoolOp returns true for and/or chains
func (n *Node) IsBoolOp() bool {
	return n.Type == NodeBoolOp
}

// IsAssignment returns true for plain, annotated and augmented assignments
func (n *Node) IsAssignment() bool {
	return n.Type == NodeAssign || n.Type == NodeAnnAssign || n.Type == NodeAugAssign
}

// IsCall returns true for call expressions
func (n *Node) IsCall() bool {
	return n.Type == NodeCall
}

// IsReturn returns true for return statements
func (n *Node) IsReturn() bool {
	return n.Type == NodeReturn
}

// IsRaise returns true for raise statements
func (n *Node) IsRaise() bool {
	return n.Type == NodeRaise
}

// IsDecorated returns true when a def or class carries decorators
func (n *Node) IsDecorated() bool {
	return len(n.Decorators) > 0
}

// IsName returns true for name references
func (n *Node) IsName() bool {
	return n.Type == NodeName
}

// IsStore returns true for nodes in a write position
func (n *Node) IsStore() bool {
	return n.Ctx == CtxStore
}

// IsLoad returns true for nodes in a read position
func (n *Node) IsLoad() bool {
	return n.Ctx == CtxLoad
}

// IsScopeNesting returns true for constructs that open a nesting level:
// conditionals, loops, context managers and try blocks
func (n *Node) IsScopeNesting() bool {
	switch n.Type {
	case NodeIf, NodeFor, NodeWhile, NodeWith, NodeTry:
		return true
	}
	return false
}

// IsDunder returns true for names of the form __x__ or __x
func IsDunder(name string) bool {
	return len(name) >= 2 && name[:2] == "__"
}

// InLoopBinding reports whether a Store name is bound by a for loop or a
// comprehension target, possibly through tuple/list unpacking
func (n *Node) InLoopBinding() bool {
	current := n
	for current.Parent != nil {
		parent := current.Parent
		switch parent.Type {
		case NodeTuple, NodeList, NodeStarred:
			current = parent
			continue
		case NodeFor, NodeComprehension:
			return parent.Target == current
		}
		return false
	}
	return false
}

// Methods returns the function definitions directly inside a class body
func (n *Node) Methods() []*Node {
	var methods []*Node
	for _, stmt := range n.Body {
		if stmt.IsFunction() {
			methods = append(methods, stmt)
		}
	}
	return methods
}

// ClassAssignments returns the plain assignments directly inside a class body
func (n *Node) ClassAssignments() []*Node {
	var assigns []*Node
	for _, stmt := range n.Body {
		if stmt.Type == NodeAssign {
			assigns = append(assigns, stmt)
		}
	}
	return assigns
}

// PositionalParams returns the ordinary positional parameters, excluding
// positional-only, variadic and keyword-only ones
func (n *Node) PositionalParams() []*Node {
	var params []*Node
	for _, p := range n.Params {
		if p.ArgKind == ArgPositional {
			params = append(params, p)
		}
	}
	return params
}

// Span returns end line minus start line
func (n *Node) Span() int {
	return n.EndLine() - n.Line()
}
