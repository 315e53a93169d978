package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"unicode/utf8"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// Smell names reported by the quality analyzer
const (
	SmellPoorFunctionNaming   = "Poor Function Naming"
	SmellUnclearFunctionName  = "Unclear Function Name"
	SmellPoorClassNaming      = "Poor Class Naming"
	SmellUnclearVariableName  = "Unclear Variable Name"
	SmellLongMethod           = "Long Method"
	SmellLongParameterList    = "Long Parameter List"
	SmellEmptyFunction        = "Empty Function"
	SmellDeepNesting          = "Deep Nesting"
	SmellLargeClass           = "Large Class"
	SmellDataClass            = "Data Class"
	SmellLazyClass            = "Lazy Class"
	SmellHighComplexity       = "High Cyclomatic Complexity"
	SmellCodeDuplication      = "Code Duplication"
	SmellInsufficientComments = "Insufficient Comments"
	SmellExcessiveComments    = "Excessive Comments"
)

// QualityFileResult holds the smells and metrics of one file
type QualityFileResult struct {
	Smells  []domain.CodeSmell
	Metrics domain.QualityMetrics
}

// QualityAnalyzer detects code smells and computes quality metrics
type QualityAnalyzer struct {
	config         config.QualityConfig
	functionName   *regexp.Regexp
	className      *regexp.Regexp
	shortNames     map[string]bool
	allowedLetters map[string]bool
}

// NewQualityAnalyzer creates a quality analyzer. The config is copied and
// never modified afterwards.
func NewQualityAnalyzer(cfg config.QualityConfig) (*QualityAnalyzer, error) {
	functionName, err := regexp.Compile(cfg.FunctionNamePattern)
	if err != nil {
		return nil, domain.NewConfigError("invalid function_name_pattern", err)
	}
	className, err := regexp.Compile(cfg.ClassNamePattern)
	if err != nil {
		return nil, domain.NewConfigError("invalid class_name_pattern", err)
	}

	return &QualityAnalyzer{
		config:         cfg,
		functionName:   functionName,
		className:      className,
		shortNames:     toSet(cfg.ShortFunctionNames),
		allowedLetters: toSet(cfg.SingleLetterVariables),
	}, nil
}

// AnalyzeFile runs every quality detector over one parsed file
func (qa *QualityAnalyzer) AnalyzeFile(ast *parser.Node, src *domain.SourceFile) *QualityFileResult {
	result := &QualityFileResult{}

	result.Smells = append(result.Smells, qa.detectNamingIssues(ast, src.Path)...)
	result.Smells = append(result.Smells, qa.detectFunctionIssues(ast, src.Path)...)
	result.Smells = append(result.Smells, qa.detectClassIssues(ast, src.Path)...)
	result.Smells = append(result.Smells, qa.detectComplexityIssues(ast, src.Path)...)
	result.Smells = append(result.Smells, qa.detectDuplicationIssues(src)...)
	result.Smells = append(result.Smells, qa.detectCommentIssues(src)...)

	result.Metrics = qa.calculateMetrics(ast, src)
	return result
}

// Score computes the quality score in [0,100] from findings and metrics
func (qa *QualityAnalyzer) Score(smells []domain.CodeSmell, metrics domain.QualityMetrics) float64 {
	cfg := qa.config
	score := 100.0

	for _, smell := range smells {
		score -= cfg.Weights.Weight(smell.Severity)
	}

	if metrics.CyclomaticComplexity > cfg.ComplexityPenaltyStart {
		score -= (metrics.CyclomaticComplexity - cfg.ComplexityPenaltyStart) * cfg.ComplexityPenalty
	}
	if metrics.MaintainabilityIndex < cfg.MaintainabilityTarget {
		score -= (cfg.MaintainabilityTarget - metrics.MaintainabilityIndex) * cfg.MaintainabilityPenalty
	}
	if metrics.CodeDuplication > cfg.DuplicationPenaltyFrom {
		score -= metrics.CodeDuplication * cfg.DuplicationPenalty
	}

	return math.Max(0, math.Min(100, score))
}

func (qa *QualityAnalyzer) calculateMetrics(ast *parser.Node, src *domain.SourceFile) domain.QualityMetrics {
	stats := CountLines(src.Lines)
	complexity := AverageComplexity(ast)

	return domain.QualityMetrics{
		CyclomaticComplexity: complexity,
		CognitiveComplexity:  complexity * qa.config.CognitiveFactor,
		MaintainabilityIndex: MaintainabilityIndex(complexity, stats.NonBlank),
		LinesOfCode:          stats.Code,
		CodeDuplication:      DuplicationPercentage(src.Lines),
	}
}

func (qa *QualityAnalyzer) detectNamingIssues(ast *parser.Node, filePath string) []domain.CodeSmell {
	var smells []domain.CodeSmell

	ast.WalkBreadthFirst(func(node *parser.Node) {
		switch {
		case node.IsFunction():
			if !qa.functionName.MatchString(node.Name) && !parser.IsDunder(node.Name) {
				smells = append(smells, domain.CodeSmell{
					Name:        SmellPoorFunctionNaming,
					Severity:    domain.SeverityMedium,
					Description: fmt.Sprintf("Function '%s' doesn't follow snake_case convention", node.Name),
					FilePath:    filePath,
					LineNumber:  node.Line(),
					Suggestion:  "Use snake_case for function names (e.g., calculate_total)",
					CodeExample: fmt.Sprintf("def %s():  # Should be snake_case", node.Name),
				})
			}
			if utf8.RuneCountInString(node.Name) < qa.config.MinFunctionNameLength && !qa.shortNames[node.Name] {
				smells = append(smells, domain.CodeSmell{
					Name:        SmellUnclearFunctionName,
					Severity:    domain.SeverityLow,
					Description: fmt.Sprintf("Function name '%s' is too short and unclear", node.Name),
					FilePath:    filePath,
					LineNumber:  node.Line(),
					Suggestion:  "Use descriptive names that clearly indicate the function's purpose",
					CodeExample: fmt.Sprintf("def %s():  # Name too short", node.Name),
				})
			}

		case node.IsClass():
			if !qa.className.MatchString(node.Name) {
				smells = append(smells, domain.CodeSmell{
					Name:        SmellPoorClassNaming,
					Severity:    domain.SeverityMedium,
					Description: fmt.Sprintf("Class '%s' doesn't follow PascalCase convention", node.Name),
					FilePath:    filePath,
					LineNumber:  node.Line(),
					Suggestion:  "Use PascalCase for class names (e.g., UserManager)",
					CodeExample: fmt.Sprintf("class %s:  # Should be PascalCase", node.Name),
				})
			}

		case node.IsName() && node.IsStore():
			if utf8.RuneCountInString(node.Name) != 1 || qa.allowedLetters[node.Name] || node.InLoopBinding() {
				return
			}
			smells = append(smells, domain.CodeSmell{
				Name:        SmellUnclearVariableName,
				Severity:    domain.SeverityLow,
				Description: fmt.Sprintf("Single-letter variable name '%s' outside loop context", node.Name),
				FilePath:    filePath,
				LineNumber:  node.Line(),
				Suggestion:  "Use descriptive variable names that explain the purpose",
				CodeExample: fmt.Sprintf("%s = ...  # Use descriptive name", node.Name),
			})
		}
	})

	return smells
}

func (qa *QualityAnalyzer) detectFunctionIssues(ast *parser.Node, filePath string) []domain.CodeSmell {
	var smells []domain.CodeSmell
	cfg := qa.config

	for _, fn := range Functions(ast) {
		if length := fn.Span(); length > cfg.LongMethodLines {
			severity := domain.SeverityMedium
			if length > cfg.VeryLongMethodLines {
				severity = domain.SeverityHigh
			}
			smells = append(smells, domain.CodeSmell{
				Name:        SmellLongMethod,
				Severity:    severity,
				Description: fmt.Sprintf("Function '%s' is too long (%d lines)", fn.Name, length),
				FilePath:    filePath,
				LineNumber:  fn.Line(),
				Suggestion:  "Break down into smaller, more focused functions",
				CodeExample: fmt.Sprintf("def %s():  # %d lines", fn.Name, length),
				MetricValue: domain.Metric(float64(length)),
			})
		}

		if params := len(fn.PositionalParams()); params > cfg.MaxParameters {
			smells = append(smells, domain.CodeSmell{
				Name:        SmellLongParameterList,
				Severity:    domain.SeverityMedium,
				Description: fmt.Sprintf("Function '%s' has too many parameters (%d)", fn.Name, params),
				FilePath:    filePath,
				LineNumber:  fn.Line(),
				Suggestion:  "Consider using a configuration object or splitting the function",
				CodeExample: fmt.Sprintf("def %s(...):  # %d parameters", fn.Name, params),
				MetricValue: domain.Metric(float64(params)),
			})
		}

		if len(fn.Body) == 1 && fn.Body[0].Type == parser.NodePass {
			smells = append(smells, domain.CodeSmell{
				Name:        SmellEmptyFunction,
				Severity:    domain.SeverityMedium,
				Description: fmt.Sprintf("Function '%s' is empty", fn.Name),
				FilePath:    filePath,
				LineNumber:  fn.Line(),
				Suggestion:  "Implement the function or remove if not needed",
				CodeExample: fmt.Sprintf("def %s(): pass  # Empty function", fn.Name),
			})
		}

		if depth := NestingDepth(fn); depth > cfg.MaxNestingDepth {
			smells = append(smells, domain.CodeSmell{
				Name:        SmellDeepNesting,
				Severity:    domain.SeverityHigh,
				Description: fmt.Sprintf("Function '%s' has deep nesting (%d levels)", fn.Name, depth),
				FilePath:    filePath,
				LineNumber:  fn.Line(),
				Suggestion:  "Use early returns or extract nested logic into separate functions",
				CodeExample: fmt.Sprintf("def %s():  # %d nesting levels", fn.Name, depth),
				MetricValue: domain.Metric(float64(depth)),
			})
		}
	}

	return smells
}

func (qa *QualityAnalyzer) detectClassIssues(ast *parser.Node, filePath string) []domain.CodeSmell {
	var smells []domain.CodeSmell
	cfg := qa.config

	for _, class := range Classes(ast) {
		methods := class.Methods()
		attributes := class.ClassAssignments()
		totalLines := MethodSpan(methods)

		if len(methods) > cfg.LargeClassMethods || totalLines > cfg.LargeClassLines {
			smells = append(smells, domain.CodeSmell{
				Name:        SmellLargeClass,
				Severity:    domain.SeverityHigh,
				Description: fmt.Sprintf("Class '%s' is too large (%d methods, ~%d lines)", class.Name, len(methods), totalLines),
				FilePath:    filePath,
				LineNumber:  class.Line(),
				Suggestion:  "Split into smaller, more focused classes",
				CodeExample: fmt.Sprintf("class %s:  # %d methods", class.Name, len(methods)),
				MetricValue: domain.Metric(float64(len(methods))),
			})
		}

		if len(attributes) > cfg.DataClassAssignments && len(methods) < cfg.DataClassMethods {
			smells = append(smells, domain.CodeSmell{
				Name:        SmellDataClass,
				Severity:    domain.SeverityMedium,
				Description: fmt.Sprintf("Class '%s' has many attributes but few methods", class.Name),
				FilePath:    filePath,
				LineNumber:  class.Line(),
				Suggestion:  "Consider adding behavior or using dataclasses/namedtuples",
				CodeExample: fmt.Sprintf("class %s:  # Data class pattern", class.Name),
			})
		}

		if len(methods) <= cfg.LazyClassMethods && len(attributes) <= cfg.LazyClassAssignments {
			smells = append(smells, domain.CodeSmell{
				Name:        SmellLazyClass,
				Severity:    domain.SeverityLow,
				Description: fmt.Sprintf("Class '%s' does very little", class.Name),
				FilePath:    filePath,
				LineNumber:  class.Line(),
				Suggestion:  "Consider merging with another class or removing if unnecessary",
				CodeExample: fmt.Sprintf("class %s:  # Lazy class", class.Name),
			})
		}
	}

	return smells
}

func (qa *QualityAnalyzer) detectComplexityIssues(ast *parser.Node, filePath string) []domain.CodeSmell {
	var smells []domain.CodeSmell

	for _, fn := range Functions(ast) {
		complexity := CalculateComplexity(fn)
		if complexity <= qa.config.ComplexityThreshold {
			continue
		}
		severity := domain.SeverityMedium
		if complexity > qa.config.HighComplexity {
			severity = domain.SeverityHigh
		}
		smells = append(smells, domain.CodeSmell{
			Name:        SmellHighComplexity,
			Severity:    severity,
			Description: fmt.Sprintf("Function '%s' has high complexity (%d)", fn.Name, complexity),
			FilePath:    filePath,
			LineNumber:  fn.Line(),
			Suggestion:  "Simplify by extracting conditions into separate functions",
			CodeExample: fmt.Sprintf("def %s():  # Complexity: %d", fn.Name, complexity),
			MetricValue: domain.Metric(float64(complexity)),
		})
	}

	return smells
}

func (qa *QualityAnalyzer) detectDuplicationIssues(src *domain.SourceFile) []domain.CodeSmell {
	var smells []domain.CodeSmell

	for _, dup := range DuplicateLines(src.Lines, qa.config.DuplicateMinLength) {
		if len(dup.Lines) < qa.config.DuplicateOccurrences {
			continue
		}
		smells = append(smells, domain.CodeSmell{
			Name:        SmellCodeDuplication,
			Severity:    domain.SeverityMedium,
			Description: "Duplicated code on lines " + formatLineList(dup.Lines),
			FilePath:    src.Path,
			LineNumber:  dup.Lines[0],
			Suggestion:  "Extract duplicated code into a reusable function",
			CodeExample: fmt.Sprintf("# Duplicated: %s...", truncateRunes(dup.Content, 50)),
			MetricValue: domain.Metric(float64(len(dup.Lines))),
		})
	}

	return smells
}

func (qa *QualityAnalyzer) detectCommentIssues(src *domain.SourceFile) []domain.CodeSmell {
	var smells []domain.CodeSmell
	stats := CountLines(src.Lines)
	if stats.NonBlank == 0 {
		return nil
	}
	ratio := float64(stats.Comments) / float64(stats.NonBlank)

	if stats.NonBlank > qa.config.CommentCheckMinLines && ratio < qa.config.MinCommentRatio {
		smells = append(smells, domain.CodeSmell{
			Name:        SmellInsufficientComments,
			Severity:    domain.SeverityLow,
			Description: fmt.Sprintf("File has very few comments (%d/%d lines)", stats.Comments, stats.NonBlank),
			FilePath:    src.Path,
			LineNumber:  1,
			Suggestion:  "Add comments to explain complex logic and public interfaces",
			CodeExample: "# Add explanatory comments",
		})
	}

	if ratio > qa.config.MaxCommentRatio {
		smells = append(smells, domain.CodeSmell{
			Name:        SmellExcessiveComments,
			Severity:    domain.SeverityLow,
			Description: fmt.Sprintf("File has many comments (%d/%d lines)", stats.Comments, stats.NonBlank),
			FilePath:    src.Path,
			LineNumber:  1,
			Suggestion:  "Consider simplifying code to reduce need for extensive comments",
			CodeExample: "# Code might be too complex",
		})
	}

	return smells
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
