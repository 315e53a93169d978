package parser

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, code string) *Node {
	t.Helper()
	parser := NewParser()
	defer parser.Close()

	ast, err := parser.ParseString(code)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if ast == nil {
		t.Fatal("AST is nil")
	}
	return ast
}

func TestParseSimpleFunction(t *testing.T) {
	ast := mustParse(t, "def hello():\n    return 42\n")

	if ast.Type != NodeModule {
		t.Errorf("Expected NodeModule, got %s", ast.Type)
	}
	if len(ast.Body) != 1 {
		t.Fatalf("Expected 1 statement in body, got %d", len(ast.Body))
	}

	fn := ast.Body[0]
	if fn.Type != NodeFunctionDef {
		t.Errorf("Expected NodeFunctionDef, got %s", fn.Type)
	}
	if fn.Name != "hello" {
		t.Errorf("Expected function name 'hello', got '%s'", fn.Name)
	}
	if fn.Line() != 1 || fn.EndLine() != 2 {
		t.Errorf("Expected lines 1-2, got %d-%d", fn.Line(), fn.EndLine())
	}
	if len(fn.Body) != 1 || fn.Body[0].Type != NodeReturn {
		t.Fatalf("Expected a single return statement")
	}
	if fn.Body[0].Value == nil || fn.Body[0].Value.Type != NodeConstant {
		t.Errorf("Expected return value to be a constant")
	}
}

func TestParseAsyncFunction(t *testing.T) {
	ast := mustParse(t, "async def fetch(url):\n    async with session() as s:\n        pass\n")

	fn := ast.Body[0]
	if fn.Type != NodeFunctionDef || !fn.Async {
		t.Fatalf("Expected async FunctionDef, got %s async=%v", fn.Type, fn.Async)
	}
	if len(fn.Body) != 1 || fn.Body[0].Type != NodeWith {
		t.Fatalf("Expected with statement in body")
	}
	with := fn.Body[0]
	if len(with.Items) != 1 || with.Items[0].Target == nil {
		t.Fatalf("Expected a with item with target")
	}
	if with.Items[0].Target.Name != "s" || !with.Items[0].Target.IsStore() {
		t.Errorf("Expected store target 's', got %q ctx=%d", with.Items[0].Target.Name, with.Items[0].Target.Ctx)
	}
}

func TestParseDecoratedDefinition(t *testing.T) {
	code := `@staticmethod
@cache(size=3)
def compute(x):
    return x
`
	ast := mustParse(t, code)
	fn := ast.Body[0]
	if fn.Type != NodeFunctionDef {
		t.Fatalf("Expected decorated definition to be unwrapped, got %s", fn.Type)
	}
	if fn.Line() != 3 {
		t.Errorf("Expected def line 3, got %d", fn.Line())
	}
	if len(fn.Decorators) != 2 {
		t.Fatalf("Expected 2 decorators, got %d", len(fn.Decorators))
	}
	if fn.Decorators[0].Type != NodeName || fn.Decorators[0].Name != "staticmethod" {
		t.Errorf("Unexpected first decorator: %s", fn.Decorators[0])
	}
	if fn.Decorators[1].Type != NodeCall {
		t.Errorf("Expected second decorator to be a call, got %s", fn.Decorators[1].Type)
	}
}

func TestParseElifChain(t *testing.T) {
	code := `if a:
    x = 1
elif b:
    x = 2
else:
    x = 3
`
	ast := mustParse(t, code)
	ifNode := ast.Body[0]
	if ifNode.Type != NodeIf {
		t.Fatalf("Expected If, got %s", ifNode.Type)
	}
	if len(ifNode.Orelse) != 1 || ifNode.Orelse[0].Type != NodeIf {
		t.Fatalf("Expected elif to be a nested If in Orelse")
	}
	elif := ifNode.Orelse[0]
	if elif.Line() != 3 {
		t.Errorf("Expected elif on line 3, got %d", elif.Line())
	}
	if len(elif.Orelse) != 1 || elif.Orelse[0].Type != NodeAssign {
		t.Errorf("Expected else body on the elif node")
	}
	if ifNode.EndLine() != 6 {
		t.Errorf("Expected if to end on line 6, got %d", ifNode.EndLine())
	}
}

func TestParseChainedAssignment(t *testing.T) {
	ast := mustParse(t, "a = b = 1\nc: int = 2\nd += 3\n")

	if len(ast.Body) != 3 {
		t.Fatalf("Expected 3 statements, got %d", len(ast.Body))
	}
	assign := ast.Body[0]
	if assign.Type != NodeAssign || len(assign.Targets) != 2 {
		t.Fatalf("Expected Assign with 2 targets, got %s with %d", assign.Type, len(assign.Targets))
	}
	for _, target := range assign.Targets {
		if !target.IsStore() {
			t.Errorf("Expected target %s to be a store", target.Name)
		}
	}
	if ast.Body[1].Type != NodeAnnAssign {
		t.Errorf("Expected AnnAssign, got %s", ast.Body[1].Type)
	}
	if ast.Body[2].Type != NodeAugAssign {
		t.Errorf("Expected AugAssign, got %s", ast.Body[2].Type)
	}
}

func TestParseBoolOpFlattening(t *testing.T) {
	ast := mustParse(t, "r = a and b and c\ns = a and (b and c)\nu = a or b and c\n")

	tests := []struct {
		stmt   int
		values int
	}{
		{0, 3},
		{1, 2},
		{2, 2},
	}
	for _, tt := range tests {
		value := ast.Body[tt.stmt].Value
		if value == nil || value.Type != NodeBoolOp {
			t.Fatalf("statement %d: expected BoolOp value", tt.stmt)
		}
		if len(value.Values) != tt.values {
			t.Errorf("statement %d: expected %d operands, got %d", tt.stmt, tt.values, len(value.Values))
		}
	}
}

func TestParseParameters(t *testing.T) {
	ast := mustParse(t, "def f(a, b, /, c, d=1, *args, e, f: int = 2, **kw):\n    pass\n")

	fn := ast.Body[0]
	kinds := map[string]ArgKind{}
	for _, p := range fn.Params {
		kinds[p.Name] = p.ArgKind
	}

	expected := map[string]ArgKind{
		"a":    ArgPositionalOnly,
		"b":    ArgPositionalOnly,
		"c":    ArgPositional,
		"d":    ArgPositional,
		"args": ArgVararg,
		"e":    ArgKeywordOnly,
		"f":    ArgKeywordOnly,
		"kw":   ArgKwarg,
	}
	for name, kind := range expected {
		got, ok := kinds[name]
		if !ok {
			t.Errorf("parameter %s missing", name)
			continue
		}
		if got != kind {
			t.Errorf("parameter %s: expected kind %d, got %d", name, kind, got)
		}
	}
	if n := len(fn.PositionalParams()); n != 2 {
		t.Errorf("Expected 2 positional params, got %d", n)
	}
}

func TestParseLoopBindings(t *testing.T) {
	code := `for i, (a, b) in pairs:
    pass
squares = [x * x for x in range(3)]
q = 1
`
	ast := mustParse(t, code)

	bound := map[string]bool{}
	ast.Each(func(n *Node) {
		if n.IsName() && n.IsStore() {
			bound[n.Name] = n.InLoopBinding()
		}
	})

	for _, name := range []string{"i", "a", "b", "x"} {
		if !bound[name] {
			t.Errorf("Expected %s to be a loop binding", name)
		}
	}
	if bound["q"] || bound["squares"] {
		t.Errorf("Expected plain assignments not to be loop bindings")
	}
}

func TestParseClass(t *testing.T) {
	code := `class Service(Base, metaclass=Meta):
    retries = 3

    def run(self):
        return self.client.call()

    # trailing comment

`
	ast := mustParse(t, code)
	cls := ast.Body[0]
	if cls.Type != NodeClassDef || cls.Name != "Service" {
		t.Fatalf("Expected class Service, got %s", cls)
	}
	if len(cls.Bases) != 1 || cls.Bases[0].Name != "Base" {
		t.Errorf("Expected single base Base")
	}
	if len(cls.Keywords) != 1 || cls.Keywords[0].Name != "metaclass" {
		t.Errorf("Expected metaclass keyword")
	}
	if len(cls.Methods()) != 1 {
		t.Errorf("Expected 1 method, got %d", len(cls.Methods()))
	}
	if len(cls.ClassAssignments()) != 1 {
		t.Errorf("Expected 1 class assignment, got %d", len(cls.ClassAssignments()))
	}
	if cls.EndLine() != 5 {
		t.Errorf("Expected class to end at line 5, got %d", cls.EndLine())
	}
}

func TestParseTryStatement(t *testing.T) {
	code := `try:
    run()
except ValueError as exc:
    handle(exc)
except Exception:
    pass
finally:
    close()
`
	ast := mustParse(t, code)
	try := ast.Body[0]
	if try.Type != NodeTry {
		t.Fatalf("Expected Try, got %s", try.Type)
	}
	if len(try.Handlers) != 2 {
		t.Fatalf("Expected 2 handlers, got %d", len(try.Handlers))
	}
	if try.Handlers[0].Name != "exc" {
		t.Errorf("Expected handler name exc, got %q", try.Handlers[0].Name)
	}
	if try.Handlers[0].Value == nil || try.Handlers[0].Value.Name != "ValueError" {
		t.Errorf("Expected handler type ValueError")
	}
	if len(try.Finalbody) != 1 {
		t.Errorf("Expected finally body")
	}
}

func TestParseRaise(t *testing.T) {
	ast := mustParse(t, "def f():\n    raise NotImplementedError('x') from None\n")
	raise := ast.Body[0].Body[0]
	if raise.Type != NodeRaise {
		t.Fatalf("Expected Raise, got %s", raise.Type)
	}
	if raise.Value == nil || raise.Value.Type != NodeCall || raise.Value.Func.Name != "NotImplementedError" {
		t.Errorf("Expected raised call to NotImplementedError")
	}
	if raise.Cause == nil {
		t.Errorf("Expected raise cause")
	}
}

func TestParseCommentsExcluded(t *testing.T) {
	ast := mustParse(t, "# header\nx = 1  # inline\n# footer\n")
	if len(ast.Body) != 1 {
		t.Errorf("Expected comments to be excluded, got %d statements", len(ast.Body))
	}
	ast.Each(func(n *Node) {
		if n.Type == "comment" {
			t.Errorf("Unexpected comment node at %s", n.Location)
		}
	})
}

func TestWalkBreadthFirst(t *testing.T) {
	ast := mustParse(t, "def outer():\n    def inner():\n        pass\nz = 1\n")

	var order []NodeType
	ast.WalkBreadthFirst(func(n *Node) {
		if n.Type == NodeFunctionDef || n.Type == NodeAssign {
			order = append(order, n.Type)
		}
	})
	if len(order) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(order))
	}
	if order[0] != NodeFunctionDef || order[1] != NodeAssign || order[2] != NodeFunctionDef {
		t.Errorf("Unexpected breadth-first order: %v", order)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source []byte
	}{
		{"unbalanced paren", []byte("def broken(:\n    pass\n")},
		{"missing colon", []byte("if x\n    pass\n")},
		{"invalid utf8", []byte{'x', ' ', '=', ' ', 0xff, '\n'}},
		{"null byte", []byte("x = 1\x00\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource("bad.py", tt.source)
			if err == nil {
				t.Fatal("Expected parse error")
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Errorf("Expected *SyntaxError, got %T", err)
			}
		})
	}
}

func TestParseEmptySource(t *testing.T) {
	ast := mustParse(t, "")
	if ast.Type != NodeModule || len(ast.Body) != 0 {
		t.Errorf("Expected empty module")
	}
}
