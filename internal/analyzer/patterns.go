package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// Pattern and anti-pattern names
const (
	PatternSingleton     = "Singleton"
	PatternFactoryMethod = "Factory Method"
	PatternBuilder       = "Builder"
	PatternDecorator     = "Decorator"
	PatternAdapter       = "Adapter"
	PatternFacade        = "Facade"
	PatternStrategy      = "Strategy"
	PatternObserver      = "Observer"

	AntiPatternGodObject = "God Object"
	AntiPatternAnemic    = "Anemic Domain Model"
	AntiPatternSpaghetti = "Spaghetti Code"
	AntiPatternCopyPaste = "Copy-Paste Programming"
)

var (
	factoryKeywords  = []string{"create", "make", "build", "get_instance", "factory"}
	observerKeywords = []string{"notify", "update", "subscribe", "unsubscribe", "add_observer"}
	wrapperKeywords  = []string{"component", "wrapped"}
	facadeKeywords   = []string{"facade", "manager"}
	accessorNames    = []string{"getter", "setter"}
)

// PatternAnalyzer detects design patterns and anti-patterns with fixed
// confidence levels
type PatternAnalyzer struct {
	config config.PatternConfig
}

// NewPatternAnalyzer creates a pattern analyzer
func NewPatternAnalyzer(cfg config.PatternConfig) *PatternAnalyzer {
	return &PatternAnalyzer{config: cfg}
}

// AnalyzeFile runs the creational, structural and behavioral detectors over
// every class, then the anti-pattern detectors
func (pa *PatternAnalyzer) AnalyzeFile(ast *parser.Node, src *domain.SourceFile) []domain.PatternDetection {
	var detections []domain.PatternDetection
	classes := Classes(ast)

	for _, class := range classes {
		detections = append(detections, pa.detectSingleton(class, src.Path)...)
		detections = append(detections, pa.detectFactory(class, src.Path)...)
		detections = append(detections, pa.detectBuilder(class, src.Path)...)
	}
	for _, class := range classes {
		detections = append(detections, pa.detectDecorator(class, src.Path)...)
		detections = append(detections, pa.detectAdapter(class, src.Path)...)
		detections = append(detections, pa.detectFacade(class, src.Path)...)
	}
	for _, class := range classes {
		detections = append(detections, pa.detectStrategy(class, src.Path)...)
		detections = append(detections, pa.detectObserver(class, src.Path)...)
	}
	for _, class := range classes {
		detections = append(detections, pa.detectGodObject(class, src.Path)...)
		detections = append(detections, pa.detectAnemicDomainModel(class, src.Path)...)
	}
	detections = append(detections, pa.detectSpaghettiCode(ast, src.Path)...)
	detections = append(detections, pa.detectCopyPaste(src)...)

	return detections
}

func (pa *PatternAnalyzer) detectSingleton(class *parser.Node, filePath string) []domain.PatternDetection {
	var detections []domain.PatternDetection

	for _, method := range class.Methods() {
		if method.Name != "__new__" {
			continue
		}
		checksInstance := len(method.Find(func(n *parser.Node) bool {
			return n.Type == parser.NodeAttribute && n.Name == "_instance"
		})) > 0
		if !checksInstance {
			continue
		}
		detections = append(detections, domain.PatternDetection{
			Kind:        domain.PatternKindPattern,
			Name:        PatternSingleton,
			Confidence:  pa.config.SingletonConfidence,
			Description: fmt.Sprintf("Class '%s' implements Singleton pattern", class.Name),
			FilePath:    filePath,
			LineNumber:  class.Line(),
			Suggestion:  "Consider using dependency injection instead of Singleton for better testability",
			CodeExample: "# Singleton implementation detected",
		})
	}

	return detections
}

func (pa *PatternAnalyzer) detectFactory(class *parser.Node, filePath string) []domain.PatternDetection {
	var detections []domain.PatternDetection

	for _, method := range class.Methods() {
		if !containsAny(strings.ToLower(method.Name), factoryKeywords) {
			continue
		}
		returns := method.Find(func(n *parser.Node) bool {
			return n.IsReturn() && n.Value != nil
		})
		if len(returns) <= 1 {
			continue
		}
		detections = append(detections, domain.PatternDetection{
			Kind:        domain.PatternKindPattern,
			Name:        PatternFactoryMethod,
			Confidence:  pa.config.FactoryConfidence,
			Description: fmt.Sprintf("Method '%s' in class '%s' appears to implement Factory pattern", method.Name, class.Name),
			FilePath:    filePath,
			LineNumber:  method.Line(),
			Suggestion:  "Good use of Factory pattern for object creation",
			CodeExample: fmt.Sprintf("def %s(...)  # Factory method", method.Name),
		})
	}

	return detections
}

func (pa *PatternAnalyzer) detectBuilder(class *parser.Node, filePath string) []domain.PatternDetection {
	hasBuild := false
	chainable := 0

	for _, method := range class.Methods() {
		if method.Name == "build" {
			hasBuild = true
		}
		if returnsSelf(method) {
			chainable++
		}
	}

	if !hasBuild || chainable <= pa.config.BuilderChainableMethods {
		return nil
	}
	return []domain.PatternDetection{{
		Kind:        domain.PatternKindPattern,
		Name:        PatternBuilder,
		Confidence:  pa.config.BuilderConfidence,
		Description: fmt.Sprintf("Class '%s' implements Builder pattern", class.Name),
		FilePath:    filePath,
		LineNumber:  class.Line(),
		Suggestion:  "Well-implemented Builder pattern for complex object construction",
		CodeExample: "# Builder pattern with method chaining",
	}}
}

// returnsSelf reports whether any return in method yields the bare name self
func returnsSelf(method *parser.Node) bool {
	found := false
	method.Walk(func(n *parser.Node) bool {
		if found {
			return false
		}
		if n.IsReturn() && n.Value != nil && n.Value.IsName() && n.Value.Name == "self" {
			found = true
			return false
		}
		return true
	})
	return found
}

func (pa *PatternAnalyzer) detectDecorator(class *parser.Node, filePath string) []domain.PatternDetection {
	wrapsObject := false
	delegates := false

	class.Each(func(n *parser.Node) {
		if n.IsFunction() && n.Name == "__init__" {
			for _, stmt := range n.Body {
				if stmt.Type != parser.NodeAssign {
					continue
				}
				for _, target := range stmt.Targets {
					if target.Type == parser.NodeAttribute && target.Value != nil && target.Value.IsName() &&
						containsAny(strings.ToLower(target.Name), wrapperKeywords) {
						wrapsObject = true
					}
				}
			}
		}
		if n.Type == parser.NodeAttribute && n.Value != nil && n.Value.Type == parser.NodeAttribute &&
			containsAny(strings.ToLower(n.Value.Name), wrapperKeywords) {
			delegates = true
		}
	})

	if !wrapsObject || !delegates {
		return nil
	}
	return []domain.PatternDetection{{
		Kind:        domain.PatternKindPattern,
		Name:        PatternDecorator,
		Confidence:  pa.config.DecoratorConfidence,
		Description: fmt.Sprintf("Class '%s' appears to implement Decorator pattern", class.Name),
		FilePath:    filePath,
		LineNumber:  class.Line(),
		Suggestion:  "Good use of Decorator pattern for extending functionality",
		CodeExample: "# Decorator pattern with delegation",
	}}
}

func (pa *PatternAnalyzer) detectAdapter(class *parser.Node, filePath string) []domain.PatternDetection {
	if !strings.Contains(strings.ToLower(class.Name), "adapter") {
		return nil
	}
	return []domain.PatternDetection{{
		Kind:        domain.PatternKindPattern,
		Name:        PatternAdapter,
		Confidence:  pa.config.AdapterConfidence,
		Description: fmt.Sprintf("Class '%s' suggests Adapter pattern by naming", class.Name),
		FilePath:    filePath,
		LineNumber:  class.Line(),
		Suggestion:  "Ensure adapter properly translates interface between incompatible classes",
		CodeExample: fmt.Sprintf("class %s  # Adapter pattern", class.Name),
	}}
}

func (pa *PatternAnalyzer) detectFacade(class *parser.Node, filePath string) []domain.PatternDetection {
	if !containsAny(strings.ToLower(class.Name), facadeKeywords) || len(class.Methods()) <= pa.config.FacadeMethods {
		return nil
	}
	return []domain.PatternDetection{{
		Kind:        domain.PatternKindPattern,
		Name:        PatternFacade,
		Confidence:  pa.config.FacadeConfidence,
		Description: fmt.Sprintf("Class '%s' appears to implement Facade pattern", class.Name),
		FilePath:    filePath,
		LineNumber:  class.Line(),
		Suggestion:  "Good use of Facade pattern to simplify complex subsystem",
		CodeExample: fmt.Sprintf("class %s  # Facade pattern", class.Name),
	}}
}

func (pa *PatternAnalyzer) detectStrategy(class *parser.Node, filePath string) []domain.PatternDetection {
	if !strings.Contains(strings.ToLower(class.Name), "strategy") {
		return nil
	}
	return []domain.PatternDetection{{
		Kind:        domain.PatternKindPattern,
		Name:        PatternStrategy,
		Confidence:  pa.config.StrategyConfidence,
		Description: fmt.Sprintf("Class '%s' suggests Strategy pattern", class.Name),
		FilePath:    filePath,
		LineNumber:  class.Line(),
		Suggestion:  "Good use of Strategy pattern for algorithm variation",
		CodeExample: fmt.Sprintf("class %s  # Strategy pattern", class.Name),
	}}
}

func (pa *PatternAnalyzer) detectObserver(class *parser.Node, filePath string) []domain.PatternDetection {
	var observerMethods []string
	for _, method := range class.Methods() {
		if containsAny(strings.ToLower(method.Name), observerKeywords) {
			observerMethods = append(observerMethods, method.Name)
		}
	}

	if len(observerMethods) < pa.config.ObserverMethods {
		return nil
	}
	return []domain.PatternDetection{{
		Kind:        domain.PatternKindPattern,
		Name:        PatternObserver,
		Confidence:  pa.config.ObserverConfidence,
		Description: fmt.Sprintf("Class '%s' implements Observer pattern", class.Name),
		FilePath:    filePath,
		LineNumber:  class.Line(),
		Suggestion:  "Good use of Observer pattern for event handling",
		CodeExample: "# Observer methods: " + strings.Join(observerMethods, ", "),
	}}
}

func (pa *PatternAnalyzer) detectGodObject(class *parser.Node, filePath string) []domain.PatternDetection {
	methods := class.Methods()
	totalLines := MethodSpan(methods)

	if len(methods) <= pa.config.GodObjectMethods && totalLines <= pa.config.GodObjectLines {
		return nil
	}
	return []domain.PatternDetection{{
		Kind:        domain.PatternKindAntiPattern,
		Name:        AntiPatternGodObject,
		Confidence:  pa.config.GodObjectConfidence,
		Description: fmt.Sprintf("Class '%s' is too large (%d methods, ~%d lines)", class.Name, len(methods), totalLines),
		FilePath:    filePath,
		LineNumber:  class.Line(),
		Suggestion:  "Split this large class into smaller, more focused classes",
		CodeExample: fmt.Sprintf("class %s:  # God Object with %d methods", class.Name, len(methods)),
	}}
}

func (pa *PatternAnalyzer) detectAnemicDomainModel(class *parser.Node, filePath string) []domain.PatternDetection {
	methods := 0
	accessors := 0
	for _, method := range class.Methods() {
		if parser.IsDunder(method.Name) {
			continue
		}
		methods++
		if strings.HasPrefix(method.Name, "get_") || strings.HasPrefix(method.Name, "set_") ||
			containsExact(method.Name, accessorNames) {
			accessors++
		}
	}

	if methods == 0 || float64(accessors)/float64(methods) <= pa.config.AnemicGetterRatio {
		return nil
	}
	return []domain.PatternDetection{{
		Kind:        domain.PatternKindAntiPattern,
		Name:        AntiPatternAnemic,
		Confidence:  pa.config.AnemicConfidence,
		Description: fmt.Sprintf("Class '%s' contains mostly getters/setters with little business logic", class.Name),
		FilePath:    filePath,
		LineNumber:  class.Line(),
		Suggestion:  "Add business logic methods to make the class more than a data container",
		CodeExample: fmt.Sprintf("class %s:  # Mostly getters/setters", class.Name),
	}}
}

func (pa *PatternAnalyzer) detectSpaghettiCode(ast *parser.Node, filePath string) []domain.PatternDetection {
	var detections []domain.PatternDetection

	for _, fn := range Functions(ast) {
		depth := NestingDepth(fn)
		if depth <= pa.config.SpaghettiNestingDepth {
			continue
		}
		detections = append(detections, domain.PatternDetection{
			Kind:        domain.PatternKindAntiPattern,
			Name:        AntiPatternSpaghetti,
			Confidence:  pa.config.SpaghettiConfidence,
			Description: fmt.Sprintf("Function '%s' has excessive nesting depth (%d levels)", fn.Name, depth),
			FilePath:    filePath,
			LineNumber:  fn.Line(),
			Suggestion:  "Refactor deeply nested code using early returns or extract methods",
			CodeExample: fmt.Sprintf("def %s():  # Too deeply nested", fn.Name),
		})
	}

	return detections
}

func (pa *PatternAnalyzer) detectCopyPaste(src *domain.SourceFile) []domain.PatternDetection {
	var detections []domain.PatternDetection

	for _, dup := range DuplicateLines(src.Lines, pa.config.CopyPasteMinLength) {
		if len(dup.Lines) < pa.config.CopyPasteOccurrences {
			continue
		}
		detections = append(detections, domain.PatternDetection{
			Kind:        domain.PatternKindAntiPattern,
			Name:        AntiPatternCopyPaste,
			Confidence:  pa.config.CopyPasteConfidence,
			Description: "Duplicated code found on lines " + formatLineList(dup.Lines),
			FilePath:    src.Path,
			LineNumber:  dup.Lines[0],
			Suggestion:  "Extract duplicated code into a reusable function",
			CodeExample: fmt.Sprintf("# Duplicated: %s...", truncateRunes(dup.Content, 50)),
		})
	}

	return detections
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsExact(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
