package analyzer

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/ludo-technologies/pyreview/internal/testutil"
)

// nestedIfs builds a function with depth nested if statements
func nestedIfs(name string, depth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "def %s(value):\n", name)
	for i := 0; i < depth; i++ {
		fmt.Fprintf(&b, "%sif value > %d:\n", strings.Repeat("    ", i+1), i)
	}
	fmt.Fprintf(&b, "%sreturn value\n", strings.Repeat("    ", depth+1))
	return b.String()
}

func TestCalculateComplexity_Simple(t *testing.T) {
	ast := testutil.CreateTestAST(t, "def simple():\n    return 1\n")

	if got := CalculateComplexity(testutil.FindFunctionInAST(ast, "simple")); got != 1 {
		t.Errorf("Expected complexity 1, got %d", got)
	}
}

func TestCalculateComplexity_DecisionPoints(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{"if elif else", "    if value > 0:\n        pass\n    elif value < 0:\n        pass\n    else:\n        pass\n", 3},
		{"for and while", "    for item in range(3):\n        pass\n    while value:\n        value -= 1\n", 3},
		{"except clause", "    try:\n        pass\n    except ValueError:\n        pass\n", 2},
		{"bool chain", "    return value and value > 1 and value < 5\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast := testutil.CreateTestAST(t, "def branchy(value):\n"+tt.body)
			if got := CalculateComplexity(testutil.FindFunctionInAST(ast, "branchy")); got != tt.expected {
				t.Errorf("CalculateComplexity = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestCalculateComplexity_AllDecisionPoints(t *testing.T) {
	source := `def branchy(value):
    if value > 0:
        pass
    elif value < 0:
        pass
    else:
        pass
    for item in range(3):
        pass
    while value:
        value -= 1
    try:
        pass
    except ValueError:
        pass
    return value and value > 1 and value < 5
`
	ast := testutil.CreateTestAST(t, source)
	if got := CalculateComplexity(testutil.FindFunctionInAST(ast, "branchy")); got != 8 {
		t.Errorf("Expected complexity 8, got %d", got)
	}
}

func TestCalculateComplexity_IncludesNestedFunctions(t *testing.T) {
	source := `def outer(value):
    def inner():
        if value:
            return 1
        return 0
    return inner()
`
	ast := testutil.CreateTestAST(t, source)

	if got := CalculateComplexity(testutil.FindFunctionInAST(ast, "outer")); got != 2 {
		t.Errorf("Expected outer complexity 2, got %d", got)
	}
	if got := CalculateComplexity(testutil.FindFunctionInAST(ast, "inner")); got != 2 {
		t.Errorf("Expected inner complexity 2, got %d", got)
	}
}

func TestNestingDepth(t *testing.T) {
	for _, depth := range []int{0, 1, 4, 5, 7} {
		t.Run(fmt.Sprintf("depth_%d", depth), func(t *testing.T) {
			ast := testutil.CreateTestAST(t, nestedIfs("deep", depth))
			fn := testutil.FindFunctionInAST(ast, "deep")
			if got := NestingDepth(fn); got != depth {
				t.Errorf("NestingDepth = %d, expected %d", got, depth)
			}
		})
	}
}

func TestNestingDepth_ElifCountsDeeper(t *testing.T) {
	source := `def chain(value):
    if value == 1:
        pass
    elif value == 2:
        pass
    elif value == 3:
        pass
`
	ast := testutil.CreateTestAST(t, source)
	if got := NestingDepth(testutil.FindFunctionInAST(ast, "chain")); got != 3 {
		t.Errorf("Expected elif chain depth 3, got %d", got)
	}
}

func TestNestingDepth_WithAndTry(t *testing.T) {
	source := `def io(path):
    with open(path) as handle:
        try:
            for line in handle:
                pass
        except OSError:
            pass
`
	ast := testutil.CreateTestAST(t, source)
	if got := NestingDepth(testutil.FindFunctionInAST(ast, "io")); got != 3 {
		t.Errorf("Expected depth 3, got %d", got)
	}
}

func TestAverageComplexity(t *testing.T) {
	if got := AverageComplexity(testutil.CreateTestAST(t, "value = 1\n")); got != 0 {
		t.Errorf("Expected 0 without functions, got %v", got)
	}

	source := `def one():
    return 1

def three(value):
    if value:
        return 1
    if not value:
        return 2
    return 3
`
	if got := AverageComplexity(testutil.CreateTestAST(t, source)); got != 2 {
		t.Errorf("Expected average 2, got %v", got)
	}
}

func TestMaintainabilityIndex(t *testing.T) {
	tests := []struct {
		name       string
		complexity float64
		lines      int
		expected   float64
	}{
		{"empty file", 0, 0, 100},
		{"no functions counts as one", 0, 10, (171 - 5.2 - 2.3) * 100 / 171},
		{"complexity one", 1, 10, (171 - 5.2 - 2.3) * 100 / 171},
		{"clamped at zero", 10, 2000, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MaintainabilityIndex(tc.complexity, tc.lines)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("MaintainabilityIndex(%v, %d) = %v, expected %v", tc.complexity, tc.lines, got, tc.expected)
			}
		})
	}
}

func TestFunctionsAndClassesLevelOrder(t *testing.T) {
	source := `class Outer:
    def method(self):
        def helper():
            pass

def top():
    pass
`
	ast := testutil.CreateTestAST(t, source)

	var names []string
	for _, fn := range Functions(ast) {
		names = append(names, fn.Name)
	}
	expected := []string{"top", "method", "helper"}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Functions order = %v, expected %v", names, expected)
	}

	if classes := Classes(ast); len(classes) != 1 || classes[0].Name != "Outer" {
		t.Errorf("Expected one class Outer, got %v", classes)
	}
}
