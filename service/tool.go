package service

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
)

// Tool descriptions shown to tool-calling clients
const (
	qualityToolDescription = "Analyzes Python code quality using Clean Code principles and software metrics. " +
		"Detects code smells, calculates complexity metrics, and provides improvement suggestions. " +
		"Input should be the path to a Python file or directory."
	patternToolDescription = "Analyzes Python code to detect design patterns and anti-patterns. " +
		"Identifies GoF patterns, architectural patterns, and common anti-patterns. " +
		"Input should be the path to a Python file or directory."
	principleToolDescription = "Analyzes Python code for SOLID principles adherence. " +
		"Detects violations and provides refactoring recommendations. " +
		"Input should be the path to a Python file or directory."
)

// reportFunc analyzes resolved files and renders the report
type reportFunc func(ctx context.Context, req domain.ReviewRequest) (string, error)

// ReviewToolImpl implements domain.ReviewTool: path in, report string out
type ReviewToolImpl struct {
	kind        domain.AnalyzerKind
	name        string
	description string
	errorPrefix string
	collector   domain.FileCollector
	report      reportFunc
}

// NewQualityTool wraps the quality service as a review tool
func NewQualityTool(svc domain.QualityService, collector domain.FileCollector) *ReviewToolImpl {
	renderer := NewQualityReportRenderer()
	return &ReviewToolImpl{
		kind:        domain.AnalyzerQuality,
		name:        constants.ToolAnalyzeQuality,
		description: qualityToolDescription,
		errorPrefix: "Error analyzing code quality",
		collector:   collector,
		report: func(ctx context.Context, req domain.ReviewRequest) (string, error) {
			resp, err := svc.Analyze(ctx, req)
			if err != nil {
				return "", err
			}
			return renderer.Render(resp), nil
		},
	}
}

// NewPatternTool wraps the pattern service as a review tool
func NewPatternTool(svc domain.PatternService, collector domain.FileCollector) *ReviewToolImpl {
	renderer := NewPatternReportRenderer()
	return &ReviewToolImpl{
		kind:        domain.AnalyzerPatterns,
		name:        constants.ToolAnalyzePatterns,
		description: patternToolDescription,
		errorPrefix: "Error analyzing design patterns",
		collector:   collector,
		report: func(ctx context.Context, req domain.ReviewRequest) (string, error) {
			resp, err := svc.Analyze(ctx, req)
			if err != nil {
				return "", err
			}
			return renderer.Render(resp), nil
		},
	}
}

// NewPrincipleTool wraps the principle service as a review tool
func NewPrincipleTool(svc domain.PrincipleService, collector domain.FileCollector) *ReviewToolImpl {
	renderer := NewPrincipleReportRenderer()
	return &ReviewToolImpl{
		kind:        domain.AnalyzerPrinciples,
		name:        constants.ToolAnalyzePrinciples,
		description: principleToolDescription,
		errorPrefix: "Error analyzing code",
		collector:   collector,
		report: func(ctx context.Context, req domain.ReviewRequest) (string, error) {
			resp, err := svc.Analyze(ctx, req)
			if err != nil {
				return "", err
			}
			return renderer.Render(resp), nil
		},
	}
}

// Kind identifies the analyzer
func (t *ReviewToolImpl) Kind() domain.AnalyzerKind {
	return t.kind
}

// Name is the tool name exposed to clients
func (t *ReviewToolImpl) Name() string {
	return t.name
}

// Description tells clients what the tool reports
func (t *ReviewToolImpl) Description() string {
	return t.description
}

// Analyze resolves path, runs the analyzer and renders its report. A
// rejected path or an aborted run yields a single error line instead.
func (t *ReviewToolImpl) Analyze(ctx context.Context, path string) string {
	set, err := t.collector.Collect(path)
	if err != nil {
		return t.errorString(err)
	}

	report, err := t.report(ctx, domain.ReviewRequest{
		Path:    path,
		Files:   set.Files,
		Skipped: set.Skipped,
		Reader:  t.collector,
	})
	if err != nil {
		return t.errorString(err)
	}
	return report
}

func (t *ReviewToolImpl) errorString(err error) string {
	return fmt.Sprintf("%s: %s", t.errorPrefix, domain.ErrorMessage(err))
}
