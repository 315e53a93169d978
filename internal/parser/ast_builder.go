package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds our internal AST from tree-sitter CST
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build builds the AST from a tree-sitter node
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	return b.buildNode(tsNode)
}

// buildNode converts a tree-sitter node to our internal AST node
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil || isTrivia(tsNode) {
		return nil
	}

	switch tsNode.Type() {
	case "module":
		return b.buildModule(tsNode)
	case "function_definition":
		return b.buildFunctionDefinition(tsNode)
	case "class_definition":
		return b.buildClassDefinition(tsNode)
	case "decorated_definition":
		return b.buildDecoratedDefinition(tsNode)
	case "if_statement":
		return b.buildIfStatement(tsNode)
	case "for_statement":
		return b.buildForStatement(tsNode)
	case "while_statement":
		return b.buildWhileStatement(tsNode)
	case "with_statement":
		return b.buildWithStatement(tsNode)
	case "try_statement":
		return b.buildTryStatement(tsNode)
	case "return_statement":
		return b.buildReturnStatement(tsNode)
	case "raise_statement":
		return b.buildRaiseStatement(tsNode)
	case "pass_statement":
		return b.buildSimple(tsNode, NodePass)
	case "break_statement":
		return b.buildSimple(tsNode, NodeBreak)
	case "continue_statement":
		return b.buildSimple(tsNode, NodeContinue)
	case "import_statement", "import_from_statement", "future_import_statement":
		return b.buildSimple(tsNode, NodeImport)
	case "global_statement", "nonlocal_statement":
		return b.buildSimple(tsNode, NodeGlobal)
	case "delete_statement":
		return b.buildDeleteStatement(tsNode)
	case "expression_statement":
		return b.buildExpressionStatement(tsNode)
	case "assignment":
		return b.buildAssignment(tsNode)
	case "augmented_assignment":
		return b.buildAugmentedAssignment(tsNode)
	case "identifier":
		return b.buildIdentifier(tsNode)
	case "attribute":
		return b.buildAttribute(tsNode)
	case "subscript":
		return b.buildSubscript(tsNode)
	case "call":
		return b.buildCall(tsNode)
	case "keyword_argument":
		return b.buildKeywordArgument(tsNode)
	case "boolean_operator":
		return b.buildBooleanOperator(tsNode)
	case "named_expression":
		return b.buildNamedExpression(tsNode)
	case "parenthesized_expression":
		return b.buildParenthesized(tsNode)
	case "tuple", "expression_list", "pattern_list", "tuple_pattern":
		return b.buildSequence(tsNode, NodeTuple)
	case "list", "list_pattern":
		return b.buildSequence(tsNode, NodeList)
	case "list_splat", "list_splat_pattern":
		return b.buildStarred(tsNode)
	case "string", "concatenated_string":
		return b.buildString(tsNode)
	case "integer", "float", "true", "false", "none", "ellipsis":
		return b.buildConstant(tsNode)
	case "list_comprehension":
		return b.buildComprehension(tsNode, NodeListComp)
	case "set_comprehension":
		return b.buildComprehension(tsNode, NodeSetComp)
	case "dictionary_comprehension":
		return b.buildComprehension(tsNode, NodeDictComp)
	case "generator_expression":
		return b.buildComprehension(tsNode, NodeGeneratorExp)
	case "lambda":
		return b.buildLambda(tsNode)
	default:
		// For unknown nodes, create a generic node and process children
		return b.buildGenericNode(tsNode)
	}
}

// buildModule builds the root module node
func (b *ASTBuilder) buildModule(tsNode *sitter.Node) *Node {
	node := NewNode(NodeModule)
	node.Location = b.getLocation(tsNode)
	node.Body = b.addStatements(node, tsNode)
	return node
}

// buildFunctionDefinition builds a def or async def
func (b *ASTBuilder) buildFunctionDefinition(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFunctionDef)
	node.Location = b.getLocation(tsNode)
	node.Async = b.hasToken(tsNode, "async")

	if name := b.getChildByFieldName(tsNode, "name"); name != nil {
		node.Name = b.content(name)
	}
	if params := b.getChildByFieldName(tsNode, "parameters"); params != nil {
		b.buildParameters(node, params)
	}
	if body := b.getChildByFieldName(tsNode, "body"); body != nil {
		node.Body = b.addStatements(node, body)
	}
	if returns := b.getChildByFieldName(tsNode, "return_type"); returns != nil {
		node.Returns = node.AddChild(b.buildNode(returns))
	}

	b.closeBlock(node)
	return node
}

// buildParameters fills Params of a function or lambda. Parameters before a
// bare "/" become positional-only, those after "*" or "*args" keyword-only.
func (b *ASTBuilder) buildParameters(fn *Node, params *sitter.Node) {
	kind := ArgPositional
	var defaults []*sitter.Node

	addArg := func(nameNode *sitter.Node, argKind ArgKind, annotation *sitter.Node) {
		if nameNode == nil {
			return
		}
		arg := NewNode(NodeArg)
		arg.Location = b.getLocation(nameNode)
		arg.Name = b.content(nameNode)
		arg.ArgKind = argKind
		if annotation != nil {
			arg.Annotation = arg.AddChild(b.buildNode(annotation))
		}
		fn.Params = append(fn.Params, fn.AddChild(arg))
	}

	for i := 0; i < int(params.ChildCount()); i++ {
		child := params.Child(i)
		if child == nil || isTrivia(child) {
			continue
		}

		switch child.Type() {
		case "identifier":
			addArg(child, kind, nil)
		case "default_parameter", "typed_default_parameter":
			addArg(b.getChildByFieldName(child, "name"), kind, b.getChildByFieldName(child, "type"))
			if value := b.getChildByFieldName(child, "value"); value != nil {
				defaults = append(defaults, value)
			}
		case "typed_parameter":
			annotation := b.getChildByFieldName(child, "type")
			inner := child.NamedChild(0)
			if inner == nil {
				continue
			}
			switch inner.Type() {
			case "list_splat_pattern":
				addArg(inner.NamedChild(0), ArgVararg, annotation)
				kind = ArgKeywordOnly
			case "dictionary_splat_pattern":
				addArg(inner.NamedChild(0), ArgKwarg, annotation)
			default:
				addArg(inner, kind, annotation)
			}
		case "list_splat_pattern":
			addArg(child.NamedChild(0), ArgVararg, nil)
			kind = ArgKeywordOnly
		case "dictionary_splat_pattern":
			addArg(child.NamedChild(0), ArgKwarg, nil)
		case "keyword_separator", "*":
			kind = ArgKeywordOnly
		case "positional_separator", "/":
			for _, p := range fn.Params {
				if p.ArgKind == ArgPositional {
					p.ArgKind = ArgPositionalOnly
				}
			}
		}
	}

	for _, value := range defaults {
		fn.AddChild(b.buildNode(value))
	}
}

// buildClassDefinition builds a class with its bases and keywords
func (b *ASTBuilder) buildClassDefinition(tsNode *sitter.Node) *Node {
	node := NewNode(NodeClassDef)
	node.Location = b.getLocation(tsNode)

	if name := b.getChildByFieldName(tsNode, "name"); name != nil {
		node.Name = b.content(name)
	}
	if supers := b.getChildByFieldName(tsNode, "superclasses"); supers != nil {
		for _, child := range b.namedChildren(supers) {
			if kw := b.buildKeyword(child); kw != nil {
				node.Keywords = append(node.Keywords, node.AddChild(kw))
				continue
			}
			if base := b.buildNode(child); base != nil {
				node.Bases = append(node.Bases, node.AddChild(base))
			}
		}
	}
	if body := b.getChildByFieldName(tsNode, "body"); body != nil {
		node.Body = b.addStatements(node, body)
	}

	b.closeBlock(node)
	return node
}

// buildDecoratedDefinition unwraps the decorator wrapper. The definition keeps
// the line of its def/class keyword.
func (b *ASTBuilder) buildDecoratedDefinition(tsNode *sitter.Node) *Node {
	def := b.getChildByFieldName(tsNode, "definition")
	if def == nil {
		return b.buildGenericNode(tsNode)
	}
	node := b.buildNode(def)
	if node == nil {
		return nil
	}

	for _, child := range b.namedChildren(tsNode) {
		if child.Type() != "decorator" {
			continue
		}
		expr := child.NamedChild(0)
		if expr == nil {
			continue
		}
		if dec := b.buildNode(expr); dec != nil {
			node.Decorators = append(node.Decorators, node.AddChild(dec))
		}
	}
	return node
}

// buildIfStatement builds an if statement. Each elif becomes an If nested
// as the single statement of the previous branch's Orelse.
func (b *ASTBuilder) buildIfStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIf)
	node.Location = b.getLocation(tsNode)
	node.Test = node.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "condition")))
	if consequence := b.getChildByFieldName(tsNode, "consequence"); consequence != nil {
		node.Body = b.addStatements(node, consequence)
	}

	chain := []*Node{node}
	current := node
	for _, child := range b.namedChildren(tsNode) {
		switch child.Type() {
		case "elif_clause":
			elif := NewNode(NodeIf)
			elif.Location = b.getLocation(child)
			elif.Test = elif.AddChild(b.buildNode(b.getChildByFieldName(child, "condition")))
			if consequence := b.getChildByFieldName(child, "consequence"); consequence != nil {
				elif.Body = b.addStatements(elif, consequence)
			}
			current.Orelse = []*Node{current.AddChild(elif)}
			current = elif
			chain = append(chain, elif)
		case "else_clause":
			current.Orelse = b.addElseBody(current, child)
		}
	}

	for i := len(chain) - 1; i >= 0; i-- {
		b.closeBlock(chain[i])
	}
	return node
}

// buildForStatement builds a for or async for loop
func (b *ASTBuilder) buildForStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeFor)
	node.Location = b.getLocation(tsNode)
	node.Async = b.hasToken(tsNode, "async")
	node.Target = node.AddChild(b.buildTarget(b.getChildByFieldName(tsNode, "left"), CtxStore))
	node.Iter = node.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "right")))
	if body := b.getChildByFieldName(tsNode, "body"); body != nil {
		node.Body = b.addStatements(node, body)
	}
	if alt := b.getChildByFieldName(tsNode, "alternative"); alt != nil {
		node.Orelse = b.addElseBody(node, alt)
	}
	b.closeBlock(node)
	return node
}

// buildWhileStatement builds a while loop
func (b *ASTBuilder) buildWhileStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeWhile)
	node.Location = b.getLocation(tsNode)
	node.Test = node.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "condition")))
	if body := b.getChildByFieldName(tsNode, "body"); body != nil {
		node.Body = b.addStatements(node, body)
	}
	if alt := b.getChildByFieldName(tsNode, "alternative"); alt != nil {
		node.Orelse = b.addElseBody(node, alt)
	}
	b.closeBlock(node)
	return node
}

// buildWithStatement builds a with or async with block
func (b *ASTBuilder) buildWithStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeWith)
	node.Location = b.getLocation(tsNode)
	node.Async = b.hasToken(tsNode, "async")

	for _, child := range b.namedChildren(tsNode) {
		if child.Type() != "with_clause" {
			continue
		}
		for _, item := range b.namedChildren(child) {
			if item.Type() == "with_item" {
				node.Items = append(node.Items, node.AddChild(b.buildWithItem(item)))
			}
		}
	}
	if body := b.getChildByFieldName(tsNode, "body"); body != nil {
		node.Body = b.addStatements(node, body)
	}
	b.closeBlock(node)
	return node
}

// buildWithItem splits "expr as target" into the context expression and
// the bound target
func (b *ASTBuilder) buildWithItem(tsNode *sitter.Node) *Node {
	item := NewNode(NodeWithItem)
	item.Location = b.getLocation(tsNode)

	value := b.getChildByFieldName(tsNode, "value")
	if value == nil {
		value = tsNode.NamedChild(0)
	}
	if value == nil {
		return item
	}

	if value.Type() == "as_pattern" {
		item.Value = item.AddChild(b.buildNode(value.NamedChild(0)))
		if target := b.asPatternTarget(value); target != nil {
			item.Target = item.AddChild(b.buildTarget(target, CtxStore))
		}
		return item
	}

	item.Value = item.AddChild(b.buildNode(value))
	if alias := b.getChildByFieldName(tsNode, "alias"); alias != nil {
		item.Target = item.AddChild(b.buildTarget(alias, CtxStore))
	}
	return item
}

// asPatternTarget returns the bound expression of "expr as target"
func (b *ASTBuilder) asPatternTarget(asPattern *sitter.Node) *sitter.Node {
	for i, child := range b.namedChildren(asPattern) {
		if i > 0 && child.Type() == "as_pattern_target" {
			return child.NamedChild(0)
		}
	}
	if alias := b.getChildByFieldName(asPattern, "alias"); alias != nil {
		if alias.Type() == "as_pattern_target" {
			return alias.NamedChild(0)
		}
		return alias
	}
	return nil
}

// buildTryStatement builds a try block with its handlers, else and finally
func (b *ASTBuilder) buildTryStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeTry)
	node.Location = b.getLocation(tsNode)
	if body := b.getChildByFieldName(tsNode, "body"); body != nil {
		node.Body = b.addStatements(node, body)
	}

	for _, child := range b.namedChildren(tsNode) {
		switch child.Type() {
		case "except_clause", "except_group_clause":
			node.Handlers = append(node.Handlers, node.AddChild(b.buildExceptClause(child)))
		case "else_clause":
			node.Orelse = b.addElseBody(node, child)
		case "finally_clause":
			for _, block := range b.namedChildren(child) {
				if block.Type() == "block" {
					node.Finalbody = b.addStatements(node, block)
				}
			}
		}
	}

	b.closeBlock(node)
	return node
}

// buildExceptClause builds an except handler. Both "except E as e" layouts
// of the grammar are accepted.
func (b *ASTBuilder) buildExceptClause(tsNode *sitter.Node) *Node {
	node := NewNode(NodeExceptHandler)
	node.Location = b.getLocation(tsNode)

	afterAs := false
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || isTrivia(child) {
			continue
		}
		if !child.IsNamed() {
			afterAs = child.Type() == "as"
			continue
		}

		switch {
		case child.Type() == "block":
			node.Body = b.addStatements(node, child)
		case child.Type() == "as_pattern":
			node.Value = node.AddChild(b.buildNode(child.NamedChild(0)))
			if target := b.asPatternTarget(child); target != nil {
				node.Name = b.content(target)
			}
		case afterAs:
			node.Name = b.content(child)
		case node.Value == nil:
			node.Value = node.AddChild(b.buildNode(child))
		}
		afterAs = false
	}

	b.closeBlock(node)
	return node
}

// buildReturnStatement builds a return with an optional value
func (b *ASTBuilder) buildReturnStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeReturn)
	node.Location = b.getLocation(tsNode)
	if children := b.namedChildren(tsNode); len(children) > 0 {
		node.Value = node.AddChild(b.buildNode(children[0]))
	}
	return node
}

// buildRaiseStatement builds a raise with optional exception and cause
func (b *ASTBuilder) buildRaiseStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeRaise)
	node.Location = b.getLocation(tsNode)

	afterFrom := false
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || isTrivia(child) {
			continue
		}
		if !child.IsNamed() {
			afterFrom = child.Type() == "from"
			continue
		}
		if afterFrom {
			node.Cause = node.AddChild(b.buildNode(child))
		} else if node.Value == nil {
			node.Value = node.AddChild(b.buildNode(child))
		}
	}
	return node
}

// buildDeleteStatement marks every deleted target with the Del context
func (b *ASTBuilder) buildDeleteStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeDelete)
	node.Location = b.getLocation(tsNode)
	for _, child := range b.namedChildren(tsNode) {
		if target := b.buildTarget(child, CtxDel); target != nil {
			node.Targets = append(node.Targets, node.AddChild(target))
		}
	}
	return node
}

// buildExpressionStatement returns assignments as statements of their own
// and wraps any other expression in an Expr node
func (b *ASTBuilder) buildExpressionStatement(tsNode *sitter.Node) *Node {
	children := b.namedChildren(tsNode)
	if len(children) == 0 {
		return nil
	}
	if len(children) == 1 {
		switch children[0].Type() {
		case "assignment", "augmented_assignment":
			return b.buildNode(children[0])
		}
	}

	node := NewNode(NodeExpr)
	node.Location = b.getLocation(tsNode)
	if len(children) == 1 {
		node.Value = node.AddChild(b.buildNode(children[0]))
		return node
	}

	tuple := NewNode(NodeTuple)
	tuple.Location = node.Location
	tuple.Ctx = CtxLoad
	for _, child := range children {
		tuple.AddChild(b.buildNode(child))
	}
	node.Value = node.AddChild(tuple)
	return node
}

// buildAssignment builds Assign or AnnAssign. A chained "a = b = v" becomes
// a single Assign with both targets.
func (b *ASTBuilder) buildAssignment(tsNode *sitter.Node) *Node {
	if annotation := b.getChildByFieldName(tsNode, "type"); annotation != nil {
		node := NewNode(NodeAnnAssign)
		node.Location = b.getLocation(tsNode)
		node.Target = node.AddChild(b.buildTarget(b.getChildByFieldName(tsNode, "left"), CtxStore))
		node.Annotation = node.AddChild(b.buildNode(annotation))
		if right := b.getChildByFieldName(tsNode, "right"); right != nil {
			node.Value = node.AddChild(b.buildNode(right))
		}
		return node
	}

	node := NewNode(NodeAssign)
	node.Location = b.getLocation(tsNode)

	current := tsNode
	for {
		if target := b.buildTarget(b.getChildByFieldName(current, "left"), CtxStore); target != nil {
			node.Targets = append(node.Targets, node.AddChild(target))
		}
		right := b.getChildByFieldName(current, "right")
		if right != nil && right.Type() == "assignment" && b.getChildByFieldName(right, "type") == nil {
			current = right
			continue
		}
		if right != nil {
			node.Value = node.AddChild(b.buildNode(right))
		}
		break
	}
	return node
}

// buildAugmentedAssignment builds x op= value
func (b *ASTBuilder) buildAugmentedAssignment(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAugAssign)
	node.Location = b.getLocation(tsNode)
	node.Target = node.AddChild(b.buildTarget(b.getChildByFieldName(tsNode, "left"), CtxStore))
	if op := b.getChildByFieldName(tsNode, "operator"); op != nil {
		node.Operator = b.content(op)
	}
	node.Value = node.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "right")))
	return node
}

// buildIdentifier builds a Name in Load context
func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := NewNode(NodeName)
	node.Location = b.getLocation(tsNode)
	node.Name = b.content(tsNode)
	node.Raw = node.Name
	node.Ctx = CtxLoad
	return node
}

// buildAttribute builds obj.attr; the attribute name is kept in Name
func (b *ASTBuilder) buildAttribute(tsNode *sitter.Node) *Node {
	node := NewNode(NodeAttribute)
	node.Location = b.getLocation(tsNode)
	node.Ctx = CtxLoad
	node.Value = node.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "object")))
	if attr := b.getChildByFieldName(tsNode, "attribute"); attr != nil {
		node.Name = b.content(attr)
	}
	return node
}

// buildSubscript builds value[index]
func (b *ASTBuilder) buildSubscript(tsNode *sitter.Node) *Node {
	node := NewNode(NodeSubscript)
	node.Location = b.getLocation(tsNode)
	node.Ctx = CtxLoad
	value := b.getChildByFieldName(tsNode, "value")
	node.Value = node.AddChild(b.buildNode(value))
	for _, child := range b.namedChildren(tsNode) {
		if value != nil && child.StartByte() == value.StartByte() && child.EndByte() == value.EndByte() {
			continue
		}
		node.AddChild(b.buildNode(child))
	}
	return node
}

// buildCall builds a call with positional and keyword arguments
func (b *ASTBuilder) buildCall(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCall)
	node.Location = b.getLocation(tsNode)
	node.Func = node.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "function")))

	args := b.getChildByFieldName(tsNode, "arguments")
	if args == nil {
		return node
	}
	if args.Type() == "generator_expression" {
		node.Args = append(node.Args, node.AddChild(b.buildNode(args)))
		return node
	}

	for _, child := range b.namedChildren(args) {
		if kw := b.buildKeyword(child); kw != nil {
			node.Keywords = append(node.Keywords, node.AddChild(kw))
			continue
		}
		if arg := b.buildNode(child); arg != nil {
			node.Args = append(node.Args, node.AddChild(arg))
		}
	}
	return node
}

// buildKeyword builds name=value and **mapping arguments, or returns nil
// for anything else
func (b *ASTBuilder) buildKeyword(tsNode *sitter.Node) *Node {
	switch tsNode.Type() {
	case "keyword_argument":
		return b.buildKeywordArgument(tsNode)
	case "dictionary_splat":
		kw := NewNode(NodeKeyword)
		kw.Location = b.getLocation(tsNode)
		kw.Value = kw.AddChild(b.buildNode(tsNode.NamedChild(0)))
		return kw
	}
	return nil
}

// buildKeywordArgument builds name=value
func (b *ASTBuilder) buildKeywordArgument(tsNode *sitter.Node) *Node {
	kw := NewNode(NodeKeyword)
	kw.Location = b.getLocation(tsNode)
	if name := b.getChildByFieldName(tsNode, "name"); name != nil {
		kw.Name = b.content(name)
	}
	kw.Value = kw.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "value")))
	return kw
}

// buildBooleanOperator builds a BoolOp. Unparenthesized chains of the same
// operator collapse into one node with all operands in Values.
func (b *ASTBuilder) buildBooleanOperator(tsNode *sitter.Node) *Node {
	node := NewNode(NodeBoolOp)
	node.Location = b.getLocation(tsNode)
	if op := b.getChildByFieldName(tsNode, "operator"); op != nil {
		node.Operator = b.content(op)
	}

	var collect func(ts *sitter.Node)
	collect = func(ts *sitter.Node) {
		for _, field := range []string{"left", "right"} {
			operand := b.getChildByFieldName(ts, field)
			if operand == nil {
				continue
			}
			if operand.Type() == "boolean_operator" && b.operatorOf(operand) == node.Operator {
				collect(operand)
				continue
			}
			if value := b.buildNode(operand); value != nil {
				node.Values = append(node.Values, node.AddChild(value))
			}
		}
	}
	collect(tsNode)
	return node
}

func (b *ASTBuilder) operatorOf(tsNode *sitter.Node) string {
	if op := b.getChildByFieldName(tsNode, "operator"); op != nil {
		return b.content(op)
	}
	return ""
}

// buildNamedExpression builds name := value
func (b *ASTBuilder) buildNamedExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeNamedExpr)
	node.Location = b.getLocation(tsNode)
	node.Target = node.AddChild(b.buildTarget(b.getChildByFieldName(tsNode, "name"), CtxStore))
	node.Value = node.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "value")))
	return node
}

// buildParenthesized drops the parentheses and returns the inner expression
func (b *ASTBuilder) buildParenthesized(tsNode *sitter.Node) *Node {
	children := b.namedChildren(tsNode)
	if len(children) == 0 {
		return b.buildGenericNode(tsNode)
	}
	return b.buildNode(children[0])
}

// buildSequence builds tuples and lists in both expression and pattern form
func (b *ASTBuilder) buildSequence(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	node.Ctx = CtxLoad
	for _, child := range b.namedChildren(tsNode) {
		node.AddChild(b.buildNode(child))
	}
	return node
}

// buildStarred builds *value
func (b *ASTBuilder) buildStarred(tsNode *sitter.Node) *Node {
	node := NewNode(NodeStarred)
	node.Location = b.getLocation(tsNode)
	node.Ctx = CtxLoad
	if inner := tsNode.NamedChild(0); inner != nil {
		node.Value = node.AddChild(b.buildNode(inner))
	}
	return node
}

// buildString builds a Constant, or a JoinedStr holding the interpolated
// expressions of an f-string
func (b *ASTBuilder) buildString(tsNode *sitter.Node) *Node {
	var interpolations []*sitter.Node
	var collect func(ts *sitter.Node)
	collect = func(ts *sitter.Node) {
		for _, child := range b.namedChildren(ts) {
			switch child.Type() {
			case "interpolation":
				interpolations = append(interpolations, child)
			case "string":
				collect(child)
			}
		}
	}
	collect(tsNode)

	if len(interpolations) == 0 {
		return b.buildConstant(tsNode)
	}

	node := NewNode(NodeJoinedStr)
	node.Location = b.getLocation(tsNode)
	node.Raw = b.content(tsNode)
	for _, interp := range interpolations {
		expr := b.getChildByFieldName(interp, "expression")
		if expr == nil {
			expr = interp.NamedChild(0)
		}
		node.AddChild(b.buildNode(expr))
	}
	return node
}

// buildConstant builds a literal
func (b *ASTBuilder) buildConstant(tsNode *sitter.Node) *Node {
	node := NewNode(NodeConstant)
	node.Location = b.getLocation(tsNode)
	node.Raw = b.content(tsNode)
	return node
}

// buildComprehension builds list/set/dict comprehensions and generator
// expressions. Each for clause becomes a comprehension node that owns the
// if clauses following it.
func (b *ASTBuilder) buildComprehension(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	node.Value = node.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "body")))

	var current *Node
	for _, child := range b.namedChildren(tsNode) {
		switch child.Type() {
		case "for_in_clause":
			comp := NewNode(NodeComprehension)
			comp.Location = b.getLocation(child)
			comp.Async = b.hasToken(child, "async")
			comp.Target = comp.AddChild(b.buildTarget(b.getChildByFieldName(child, "left"), CtxStore))
			comp.Iter = comp.AddChild(b.buildNode(b.getChildByFieldName(child, "right")))
			current = node.AddChild(comp)
		case "if_clause":
			if current != nil {
				current.AddChild(b.buildNode(child.NamedChild(0)))
			}
		}
	}
	return node
}

// buildLambda builds a lambda with its parameters and body expression
func (b *ASTBuilder) buildLambda(tsNode *sitter.Node) *Node {
	node := NewNode(NodeLambda)
	node.Location = b.getLocation(tsNode)
	if params := b.getChildByFieldName(tsNode, "parameters"); params != nil {
		b.buildParameters(node, params)
	}
	node.Value = node.AddChild(b.buildNode(b.getChildByFieldName(tsNode, "body")))
	return node
}

// buildSimple builds a statement without analyzable sub-nodes
func (b *ASTBuilder) buildSimple(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	return node
}

// buildGenericNode builds a generic node, keeping the tree-sitter type name
func (b *ASTBuilder) buildGenericNode(tsNode *sitter.Node) *Node {
	node := NewNode(NodeType(tsNode.Type()))
	node.Location = b.getLocation(tsNode)
	children := b.namedChildren(tsNode)
	if len(children) == 0 {
		node.Raw = b.content(tsNode)
	}
	for _, child := range children {
		node.AddChild(b.buildNode(child))
	}
	return node
}

// buildTarget builds an assignment target and propagates ctx through
// tuple, list and starred containers
func (b *ASTBuilder) buildTarget(tsNode *sitter.Node, ctx ExprContext) *Node {
	node := b.buildNode(tsNode)
	setContext(node, ctx)
	return node
}

func setContext(node *Node, ctx ExprContext) {
	if node == nil {
		return
	}
	switch node.Type {
	case NodeName, NodeAttribute, NodeSubscript:
		node.Ctx = ctx
	case NodeTuple, NodeList, NodeStarred:
		node.Ctx = ctx
		for _, child := range node.Children {
			setContext(child, ctx)
		}
	}
}

// addStatements builds every statement of a block as a child of parent and
// returns them in source order
func (b *ASTBuilder) addStatements(parent *Node, block *sitter.Node) []*Node {
	var stmts []*Node
	for _, child := range b.namedChildren(block) {
		if stmt := b.buildNode(child); stmt != nil {
			stmts = append(stmts, parent.AddChild(stmt))
		}
	}
	return stmts
}

// addElseBody builds the statements of an else clause
func (b *ASTBuilder) addElseBody(parent *Node, elseClause *sitter.Node) []*Node {
	if body := b.getChildByFieldName(elseClause, "body"); body != nil {
		return b.addStatements(parent, body)
	}
	for _, child := range b.namedChildren(elseClause) {
		if child.Type() == "block" {
			return b.addStatements(parent, child)
		}
	}
	return nil
}

// closeBlock sets the end line of a compound statement to the end of its
// last sub-node, so trailing comments do not extend it
func (b *ASTBuilder) closeBlock(node *Node) {
	end := 0
	for _, child := range node.Children {
		if child.EndLine() > end {
			end = child.EndLine()
		}
	}
	if end >= node.Location.StartLine {
		node.Location.EndLine = end
	}
}

// Helper methods

func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	start := tsNode.StartPoint()
	end := tsNode.EndPoint()
	loc := Location{
		File:      b.filename,
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column),
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column),
	}
	// A node ending at column 0 ends on the previous line
	if loc.EndCol == 0 && loc.EndLine > loc.StartLine {
		loc.EndLine--
	}
	return loc
}

func (b *ASTBuilder) getChildByFieldName(tsNode *sitter.Node, fieldName string) *sitter.Node {
	if tsNode == nil {
		return nil
	}
	return tsNode.ChildByFieldName(fieldName)
}

// namedChildren returns the named children without comments
func (b *ASTBuilder) namedChildren(tsNode *sitter.Node) []*sitter.Node {
	if tsNode == nil {
		return nil
	}
	children := make([]*sitter.Node, 0, tsNode.NamedChildCount())
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil || isTrivia(child) {
			continue
		}
		children = append(children, child)
	}
	return children
}

// hasToken reports whether an anonymous keyword token is a direct child
func (b *ASTBuilder) hasToken(tsNode *sitter.Node, token string) bool {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

func (b *ASTBuilder) content(tsNode *sitter.Node) string {
	return tsNode.Content(b.source)
}

// isTrivia reports whether the node carries no syntax of interest
func isTrivia(tsNode *sitter.Node) bool {
	return tsNode.Type() == "comment"
}
