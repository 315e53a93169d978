package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/testutil"
)

func analyzePatterns(t *testing.T, source string) []domain.PatternDetection {
	t.Helper()
	ast, src := testutil.CreateTestSource(t, source)
	return NewPatternAnalyzer(config.DefaultPatternConfig()).AnalyzeFile(ast, src)
}

func detectionsNamed(detections []domain.PatternDetection, name string) []domain.PatternDetection {
	var out []domain.PatternDetection
	for _, d := range detections {
		if d.Name == name {
			out = append(out, d)
		}
	}
	return out
}

func TestPatterns_Singleton(t *testing.T) {
	source := `class Config:
    _instance = None

    def __new__(cls):
        if cls._instance is None:
            cls._instance = super().__new__(cls)
        return cls._instance
`
	found := detectionsNamed(analyzePatterns(t, source), PatternSingleton)
	require.Len(t, found, 1)
	assert.Equal(t, domain.PatternKindPattern, found[0].Kind)
	assert.Equal(t, 0.8, found[0].Confidence)
	assert.Equal(t, 1, found[0].LineNumber)
	assert.Equal(t, "Class 'Config' implements Singleton pattern", found[0].Description)

	plain := "class Config:\n    def __new__(cls):\n        return super().__new__(cls)\n"
	assert.Empty(t, detectionsNamed(analyzePatterns(t, plain), PatternSingleton))
}

func TestPatterns_FactoryMethod(t *testing.T) {
	source := `class Shapes:
    def create_shape(self, kind):
        if kind == "circle":
            return Circle()
        return Square()

    def make_default(self):
        return Square()
`
	found := detectionsNamed(analyzePatterns(t, source), PatternFactoryMethod)
	require.Len(t, found, 1, "a single return is not a factory")
	assert.Equal(t, 2, found[0].LineNumber)
	assert.Equal(t, "def create_shape(...)  # Factory method", found[0].CodeExample)
	assert.Equal(t, "Method 'create_shape' in class 'Shapes' appears to implement Factory pattern", found[0].Description)
}

func TestPatterns_Builder(t *testing.T) {
	source := `class QueryBuilder:
    def select(self, cols):
        self.cols = cols
        return self

    def where(self, cond):
        self.cond = cond
        return self

    def limit(self, count):
        self.count = count
        return self

    def build(self):
        return Query(self.cols, self.cond, self.count)
`
	found := detectionsNamed(analyzePatterns(t, source), PatternBuilder)
	require.Len(t, found, 1)
	assert.Equal(t, 0.9, found[0].Confidence)

	twoChainable := `class QueryBuilder:
    def select(self, cols):
        return self

    def where(self, cond):
        return self

    def build(self):
        return Query()
`
	assert.Empty(t, detectionsNamed(analyzePatterns(t, twoChainable), PatternBuilder))
}

func TestPatterns_Decorator(t *testing.T) {
	source := `class LoggingDecorator:
    def __init__(self, component):
        self._component = component

    def operation(self):
        return self._component.operation()
`
	found := detectionsNamed(analyzePatterns(t, source), PatternDecorator)
	require.Len(t, found, 1)
	assert.Equal(t, "# Decorator pattern with delegation", found[0].CodeExample)

	noDelegation := `class Holder:
    def __init__(self, wrapped):
        self.wrapped = wrapped
`
	assert.Empty(t, detectionsNamed(analyzePatterns(t, noDelegation), PatternDecorator))
}

func TestPatterns_NameBasedDetectors(t *testing.T) {
	source := `class PaymentAdapter:
    pass

class SortStrategy:
    pass

class SystemFacade:
    def start(self):
        pass

    def stop(self):
        pass

    def status(self):
        pass

    def restart(self):
        pass

class TaskManager:
    def start(self):
        pass
`
	detections := analyzePatterns(t, source)

	adapter := detectionsNamed(detections, PatternAdapter)
	require.Len(t, adapter, 1)
	assert.Equal(t, "class PaymentAdapter  # Adapter pattern", adapter[0].CodeExample)
	assert.Equal(t, 0.6, adapter[0].Confidence)

	strategy := detectionsNamed(detections, PatternStrategy)
	require.Len(t, strategy, 1)
	assert.Equal(t, "Class 'SortStrategy' suggests Strategy pattern", strategy[0].Description)

	facade := detectionsNamed(detections, PatternFacade)
	require.Len(t, facade, 1, "TaskManager has too few methods")
	assert.Equal(t, 7, facade[0].LineNumber)
}

func TestPatterns_Observer(t *testing.T) {
	source := `class EventBus:
    def subscribe(self, handler):
        pass

    def notify(self):
        pass

    def close(self):
        pass
`
	found := detectionsNamed(analyzePatterns(t, source), PatternObserver)
	require.Len(t, found, 1)
	assert.Equal(t, "# Observer methods: subscribe, notify", found[0].CodeExample)

	single := "class Listener:\n    def update(self):\n        pass\n"
	assert.Empty(t, detectionsNamed(analyzePatterns(t, single), PatternObserver))
}

func TestPatterns_GodObject(t *testing.T) {
	found := detectionsNamed(analyzePatterns(t, classWithMethods("Everything", 21)), AntiPatternGodObject)
	require.Len(t, found, 1)
	assert.Equal(t, domain.PatternKindAntiPattern, found[0].Kind)
	assert.Equal(t, "class Everything:  # God Object with 21 methods", found[0].CodeExample)

	assert.Empty(t, detectionsNamed(analyzePatterns(t, classWithMethods("Enough", 20)), AntiPatternGodObject))
}

func TestPatterns_AnemicDomainModel(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected int
	}{
		{
			name: "only accessors",
			source: `class Person:
    def __init__(self):
        self.name = ""

    def get_name(self):
        return self.name

    def set_name(self, value):
        self.name = value
`,
			expected: 1,
		},
		{
			name: "three of four accessors",
			source: `class Person:
    def get_name(self):
        pass

    def set_name(self, value):
        pass

    def getter(self):
        pass

    def promote(self):
        pass
`,
			expected: 1,
		},
		{
			name: "two of three accessors",
			source: `class Person:
    def get_name(self):
        pass

    def set_name(self, value):
        pass

    def promote(self):
        pass
`,
			expected: 0,
		},
		{
			name:     "only dunder methods",
			source:   "class Person:\n    def __init__(self):\n        pass\n",
			expected: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, detectionsNamed(analyzePatterns(t, tc.source), AntiPatternAnemic), tc.expected)
		})
	}
}

func TestPatterns_SpaghettiCode(t *testing.T) {
	found := detectionsNamed(analyzePatterns(t, nestedIfs("tangled", 7)), AntiPatternSpaghetti)
	require.Len(t, found, 1)
	assert.Equal(t, "Function 'tangled' has excessive nesting depth (7 levels)", found[0].Description)

	assert.Empty(t, detectionsNamed(analyzePatterns(t, nestedIfs("tangled", 6)), AntiPatternSpaghetti))
}

func TestPatterns_CopyPaste(t *testing.T) {
	source := `def work(item):
    result = compute_value(item)
    result = compute_value(item)
    result = compute_value(item)
    total = compute_value(item)
    total = compute_value(item)
`
	found := detectionsNamed(analyzePatterns(t, source), AntiPatternCopyPaste)
	require.Len(t, found, 1)
	assert.Equal(t, "Duplicated code found on lines [2, 3, 4]", found[0].Description)
	assert.Equal(t, 2, found[0].LineNumber)
}

func TestPatterns_InvocationOrder(t *testing.T) {
	source := `class PaymentAdapter:
    pass

class QueryBuilder:
    def select(self):
        return self

    def where(self):
        return self

    def limit(self):
        return self

    def build(self):
        return None
`
	detections := analyzePatterns(t, source)
	require.Len(t, detections, 2)
	assert.Equal(t, PatternBuilder, detections[0].Name, "creational detectors run before structural ones")
	assert.Equal(t, PatternAdapter, detections[1].Name)
}

func TestPatterns_ConfidenceFromConfig(t *testing.T) {
	cfg := config.DefaultPatternConfig()
	cfg.AdapterConfidence = 0.95

	ast, src := testutil.CreateTestSource(t, "class PaymentAdapter:\n    pass\n")
	detections := NewPatternAnalyzer(cfg).AnalyzeFile(ast, src)
	require.Len(t, detections, 1)
	assert.Equal(t, 0.95, detections[0].Confidence)
}
