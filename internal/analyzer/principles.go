package analyzer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// concernGroup maps a responsibility to method name keywords
type concernGroup struct {
	name     string
	keywords []string
}

// concernGroups is checked in order; a method counts toward the first
// group with a matching keyword only
var concernGroups = []concernGroup{
	{"data", []string{"get", "set", "load", "save", "read", "write"}},
	{"validation", []string{"validate", "check", "verify", "ensure"}},
	{"formatting", []string{"format", "render", "display", "print"}},
	{"calculation", []string{"calculate", "compute", "process", "transform"}},
	{"networking", []string{"send", "receive", "connect", "request", "response"}},
	{"file_ops", []string{"open", "close", "create", "delete", "file"}},
}

// PrincipleAnalyzer detects violations of the five design principles
type PrincipleAnalyzer struct {
	config       config.PrincipleConfig
	allowedCalls map[string]bool
}

// NewPrincipleAnalyzer creates a principle analyzer
func NewPrincipleAnalyzer(cfg config.PrincipleConfig) *PrincipleAnalyzer {
	return &PrincipleAnalyzer{
		config:       cfg,
		allowedCalls: toSet(cfg.DIPAllowedCalls),
	}
}

// AnalyzeFile runs the S, O, L, I and D detectors over every class
func (pa *PrincipleAnalyzer) AnalyzeFile(ast *parser.Node, src *domain.SourceFile) []domain.PrincipleViolation {
	var violations []domain.PrincipleViolation

	for _, class := range Classes(ast) {
		violations = append(violations, pa.checkSingleResponsibility(class, src.Path)...)
		violations = append(violations, pa.checkOpenClosed(class, src.Path)...)
		violations = append(violations, pa.checkLiskovSubstitution(class, src.Path)...)
		violations = append(violations, pa.checkInterfaceSegregation(class, src.Path)...)
		violations = append(violations, pa.checkDependencyInversion(class, src.Path)...)
	}

	return violations
}

// Score builds the principle score board for a set of violations
func (pa *PrincipleAnalyzer) Score(violations []domain.PrincipleViolation) domain.PrincipleScoreBoard {
	board := domain.NewPrincipleScoreBoard()
	for _, v := range violations {
		board.Deduct(v.Principle, pa.config.Weights.Weight(v.Severity), pa.config.ScoreFloor)
	}
	return board
}

func (pa *PrincipleAnalyzer) checkSingleResponsibility(class *parser.Node, filePath string) []domain.PrincipleViolation {
	var violations []domain.PrincipleViolation
	methods := class.Methods()

	if len(methods) > pa.config.SRPMaxMethods {
		violations = append(violations, domain.PrincipleViolation{
			Principle:   domain.PrincipleSingleResponsibility,
			Severity:    domain.SeverityHigh,
			Description: fmt.Sprintf("Class '%s' has %d methods, indicating multiple responsibilities", class.Name, len(methods)),
			FilePath:    filePath,
			LineNumber:  class.Line(),
			Suggestion:  "Consider splitting this class into smaller, more focused classes",
			CodeExample: fmt.Sprintf("class %s:  # Too many responsibilities", class.Name),
		})
	}

	if concerns := IdentifyConcerns(methods); len(concerns) > pa.config.SRPMaxConcerns {
		violations = append(violations, domain.PrincipleViolation{
			Principle:   domain.PrincipleSingleResponsibility,
			Severity:    domain.SeverityMedium,
			Description: fmt.Sprintf("Class '%s' handles multiple concerns: %s", class.Name, strings.Join(concerns, ", ")),
			FilePath:    filePath,
			LineNumber:  class.Line(),
			Suggestion:  "Separate different concerns into different classes",
			CodeExample: "# Consider using composition or delegation",
		})
	}

	return violations
}

// IdentifyConcerns returns the distinct concern groups touched by the
// method names, in group order
func IdentifyConcerns(methods []*parser.Node) []string {
	seen := make(map[string]bool)
	for _, method := range methods {
		name := strings.ToLower(method.Name)
		for _, group := range concernGroups {
			if containsAny(name, group.keywords) {
				seen[group.name] = true
				break
			}
		}
	}

	var concerns []string
	for _, group := range concernGroups {
		if seen[group.name] {
			concerns = append(concerns, group.name)
		}
	}
	return concerns
}

func (pa *PrincipleAnalyzer) checkOpenClosed(class *parser.Node, filePath string) []domain.PrincipleViolation {
	var violations []domain.PrincipleViolation

	for _, method := range class.Methods() {
		chain := LongestIfChain(method)
		if chain <= pa.config.OCPMaxChainLength {
			continue
		}
		violations = append(violations, domain.PrincipleViolation{
			Principle:   domain.PrincipleOpenClosed,
			Severity:    domain.SeverityMedium,
			Description: fmt.Sprintf("Method '%s' in class '%s' has long if-elif chain (%d conditions)", method.Name, class.Name, chain),
			FilePath:    filePath,
			LineNumber:  method.Line(),
			Suggestion:  "Consider using Strategy pattern or polymorphism instead of if-elif chains",
			CodeExample: "# Replace if-elif with strategy pattern or factory method",
		})
	}

	return violations
}

// LongestIfChain returns the longest if/elif chain below node. Every if
// starts a chain, which grows while the else branch holds exactly one if.
func LongestIfChain(node *parser.Node) int {
	longest := 0
	node.Each(func(n *parser.Node) {
		if !n.IsConditional() {
			return
		}
		length := 1
		for current := n; len(current.Orelse) == 1 && current.Orelse[0].IsConditional(); current = current.Orelse[0] {
			length++
		}
		if length > longest {
			longest = length
		}
	})
	return longest
}

func (pa *PrincipleAnalyzer) checkLiskovSubstitution(class *parser.Node, filePath string) []domain.PrincipleViolation {
	if !hasNamedBase(class) {
		return nil
	}

	var violations []domain.PrincipleViolation
	for _, method := range class.Methods() {
		method.WalkBreadthFirst(func(n *parser.Node) {
			if !raisesNotImplemented(n) {
				return
			}
			violations = append(violations, domain.PrincipleViolation{
				Principle:   domain.PrincipleLiskovSubstitution,
				Severity:    domain.SeverityHigh,
				Description: fmt.Sprintf("Method '%s' in derived class '%s' raises NotImplementedError", method.Name, class.Name),
				FilePath:    filePath,
				LineNumber:  method.Line(),
				Suggestion:  "Avoid NotImplementedError in derived classes; use proper inheritance design",
				CodeExample: "# Consider using abstract base classes or composition",
			})
		})
	}
	return violations
}

func hasNamedBase(class *parser.Node) bool {
	for _, base := range class.Bases {
		if base.IsName() {
			return true
		}
	}
	return false
}

// raisesNotImplemented matches `raise NotImplementedError(...)`; a bare
// `raise NotImplementedError` is not a call and does not match
func raisesNotImplemented(n *parser.Node) bool {
	if !n.IsRaise() || n.Value == nil || !n.Value.IsCall() {
		return false
	}
	fn := n.Value.Func
	return fn != nil && fn.IsName() && fn.Name == "NotImplementedError"
}

func (pa *PrincipleAnalyzer) checkInterfaceSegregation(class *parser.Node, filePath string) []domain.PrincipleViolation {
	abstract := 0
	for _, method := range class.Methods() {
		for _, decorator := range method.Decorators {
			if decorator.IsName() && decorator.Name == "abstractmethod" {
				abstract++
				break
			}
		}
	}

	if abstract <= pa.config.ISPMaxAbstractMethods {
		return nil
	}
	return []domain.PrincipleViolation{{
		Principle:   domain.PrincipleInterfaceSegregation,
		Severity:    domain.SeverityMedium,
		Description: fmt.Sprintf("Interface/Abstract class '%s' has %d abstract methods", class.Name, abstract),
		FilePath:    filePath,
		LineNumber:  class.Line(),
		Suggestion:  "Consider splitting into smaller, more focused interfaces",
		CodeExample: "# Split large interfaces into smaller, role-specific ones",
	}}
}

func (pa *PrincipleAnalyzer) checkDependencyInversion(class *parser.Node, filePath string) []domain.PrincipleViolation {
	var violations []domain.PrincipleViolation

	class.WalkBreadthFirst(func(n *parser.Node) {
		if !n.IsCall() || n.Func == nil || !n.Func.IsName() {
			return
		}
		name := n.Func.Name
		if !startsUpper(name) || pa.allowedCalls[name] {
			return
		}
		violations = append(violations, domain.PrincipleViolation{
			Principle:   domain.PrincipleDependencyInversion,
			Severity:    domain.SeverityLow,
			Description: fmt.Sprintf("Class '%s' directly instantiates '%s'", class.Name, name),
			FilePath:    filePath,
			LineNumber:  n.Line(),
			Suggestion:  "Consider using dependency injection instead of direct instantiation",
			CodeExample: "# Use constructor injection or factory pattern",
		})
	})

	return violations
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r != utf8.RuneError && unicode.IsUpper(r)
}
