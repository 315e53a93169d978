package analyzer

import (
	"math"

	"github.com/ludo-technologies/pyreview/internal/parser"
)

// CalculateComplexity computes the cyclomatic complexity of a function: one
// plus every if/elif, loop and except clause in its subtree, plus one per
// extra operand of each and/or chain. Nested definitions count toward the
// enclosing function.
func CalculateComplexity(fn *parser.Node) int {
	complexity := 1

	fn.Each(func(n *parser.Node) {
		switch {
		case n.IsConditional(), n.IsLoop(), n.IsExceptionHandler():
			complexity++
		case n.IsBoolOp():
			if extra := len(n.Values) - 1; extra > 0 {
				complexity += extra
			}
		}
	})

	return complexity
}

// NestingDepth returns the deepest chain of if/for/while/with/try blocks
// below node. An elif counts one level deeper than its if.
func NestingDepth(node *parser.Node) int {
	return nestingDepth(node, 0)
}

func nestingDepth(node *parser.Node, current int) int {
	maxDepth := current
	for _, child := range node.Children {
		depth := current
		if child.IsScopeNesting() {
			depth++
		}
		if d := nestingDepth(child, depth); d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// Functions returns every function definition in the tree in level order
func Functions(ast *parser.Node) []*parser.Node {
	var functions []*parser.Node
	ast.WalkBreadthFirst(func(n *parser.Node) {
		if n.IsFunction() {
			functions = append(functions, n)
		}
	})
	return functions
}

// Classes returns every class definition in the tree in level order
func Classes(ast *parser.Node) []*parser.Node {
	var classes []*parser.Node
	ast.WalkBreadthFirst(func(n *parser.Node) {
		if n.IsClass() {
			classes = append(classes, n)
		}
	})
	return classes
}

// AverageComplexity returns the mean function complexity of a module, or 0
// when it defines no functions
func AverageComplexity(ast *parser.Node) float64 {
	functions := Functions(ast)
	if len(functions) == 0 {
		return 0
	}
	total := 0
	for _, fn := range functions {
		total += CalculateComplexity(fn)
	}
	return float64(total) / float64(len(functions))
}

// MaintainabilityIndex is a simplified index in [0,100] derived from the
// average complexity and the number of non-blank lines. Empty files score 100.
func MaintainabilityIndex(avgComplexity float64, nonBlankLines int) float64 {
	if nonBlankLines == 0 {
		return 100
	}
	cc := avgComplexity
	if cc == 0 {
		cc = 1
	}
	mi := (171 - 5.2*cc - 0.23*float64(nonBlankLines)) * 100 / 171
	return math.Min(100, math.Max(0, mi))
}

// MethodSpan sums end line minus start line over the given methods
func MethodSpan(methods []*parser.Node) int {
	total := 0
	for _, m := range methods {
		total += m.Span()
	}
	return total
}
