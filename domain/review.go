package domain

import (
	"context"
	"math"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// AnalyzerKind names one of the three analyzers
type AnalyzerKind string

const (
	AnalyzerQuality    AnalyzerKind = "quality"
	AnalyzerPatterns   AnalyzerKind = "patterns"
	AnalyzerPrinciples AnalyzerKind = "principles"
)

// AllAnalyzers lists the analyzers in their canonical run order
var AllAnalyzers = []AnalyzerKind{AnalyzerQuality, AnalyzerPatterns, AnalyzerPrinciples}

// Title returns the human readable analyzer name
func (k AnalyzerKind) Title() string {
	switch k {
	case AnalyzerQuality:
		return "Code Quality Analyzer"
	case AnalyzerPatterns:
		return "Design Patterns Analyzer"
	case AnalyzerPrinciples:
		return "SOLID Principles Analyzer"
	}
	return string(k)
}

// ReviewRequest is the input of every analyzer service
type ReviewRequest struct {
	// Path names a single Python file or a directory
	Path string

	// Files is the resolved file list; filled by the use case when empty
	Files []string

	// Skipped lists discovery errors for items that were left out of Files
	Skipped []string

	// Reader loads each file of Files
	Reader SourceReader
}

// QualityMetrics is the aggregate numeric record of the quality analyzer
type QualityMetrics struct {
	CyclomaticComplexity float64 `json:"cyclomatic_complexity" yaml:"cyclomatic_complexity"`
	CognitiveComplexity  float64 `json:"cognitive_complexity" yaml:"cognitive_complexity"`
	MaintainabilityIndex float64 `json:"maintainability_index" yaml:"maintainability_index"`
	LinesOfCode          int     `json:"lines_of_code" yaml:"lines_of_code"`
	CodeDuplication      float64 `json:"code_duplication" yaml:"code_duplication"`
}

// Merge accumulates another file's metrics. Complexity-like fields and
// lines of code are summed, duplication keeps the worst file.
func (m *QualityMetrics) Merge(other QualityMetrics) {
	m.CyclomaticComplexity += other.CyclomaticComplexity
	m.CognitiveComplexity += other.CognitiveComplexity
	m.MaintainabilityIndex += other.MaintainabilityIndex
	m.LinesOfCode += other.LinesOfCode
	m.CodeDuplication = math.Max(m.CodeDuplication, other.CodeDuplication)
}

// Average divides the summed complexity-like fields by the file count
func (m *QualityMetrics) Average(files int) {
	if files <= 0 {
		return
	}
	n := float64(files)
	m.CyclomaticComplexity /= n
	m.CognitiveComplexity /= n
	m.MaintainabilityIndex /= n
}

// QualityResponse is the result of the quality analyzer
type QualityResponse struct {
	Smells        []CodeSmell    `json:"smells" yaml:"smells"`
	Metrics       QualityMetrics `json:"metrics" yaml:"metrics"`
	Score         float64        `json:"score" yaml:"score"`
	FilesAnalyzed int            `json:"files_analyzed" yaml:"files_analyzed"`
	Errors        []string       `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// CountBySeverity counts smells of the given severity
func (r *QualityResponse) CountBySeverity(severity Severity) int {
	count := 0
	for _, s := range r.Smells {
		if s.Severity == severity {
			count++
		}
	}
	return count
}

// PatternResponse is the result of the pattern analyzer
type PatternResponse struct {
	Detections    []PatternDetection `json:"detections" yaml:"detections"`
	FilesAnalyzed int                `json:"files_analyzed" yaml:"files_analyzed"`
	Errors        []string           `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// OfKind returns the detections of the given kind in insertion order
func (r *PatternResponse) OfKind(kind PatternKind) []PatternDetection {
	var out []PatternDetection
	for _, d := range r.Detections {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// PrincipleScoreBoard maps each principle to a score in [1,10]
type PrincipleScoreBoard map[Principle]float64

// MaxPrincipleScore is the starting score of every principle
const MaxPrincipleScore = 10.0

// NewPrincipleScoreBoard returns a board with every principle at the maximum
func NewPrincipleScoreBoard() PrincipleScoreBoard {
	board := make(PrincipleScoreBoard, len(Principles))
	for _, p := range Principles {
		board[p] = MaxPrincipleScore
	}
	return board
}

// Deduct lowers a principle score by weight without going below floor
func (b PrincipleScoreBoard) Deduct(p Principle, weight, floor float64) {
	b[p] = math.Max(floor, b[p]-weight)
}

// Overall returns the arithmetic mean of the principle scores
func (b PrincipleScoreBoard) Overall() float64 {
	if len(b) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range Principles {
		total += b[p]
	}
	return total / float64(len(Principles))
}

// PrincipleResponse is the result of the principle analyzer
type PrincipleResponse struct {
	Violations    []PrincipleViolation `json:"violations" yaml:"violations"`
	Scores        PrincipleScoreBoard  `json:"scores" yaml:"scores"`
	OverallScore  float64              `json:"overall_score" yaml:"overall_score"`
	FilesAnalyzed int                  `json:"files_analyzed" yaml:"files_analyzed"`
	Errors        []string             `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ReviewResult gathers the responses of the analyzers selected for one run.
// Analyzers that were not selected stay nil.
type ReviewResult struct {
	Path       string             `json:"path" yaml:"path"`
	Files      int                `json:"files" yaml:"files"`
	Quality    *QualityResponse   `json:"quality,omitempty" yaml:"quality,omitempty"`
	Patterns   *PatternResponse   `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Principles *PrincipleResponse `json:"principles,omitempty" yaml:"principles,omitempty"`
	Duration   time.Duration      `json:"-" yaml:"-"`
}

// QualityService analyzes code smells and metrics
type QualityService interface {
	Analyze(ctx context.Context, req ReviewRequest) (*QualityResponse, error)
}

// PatternService detects design patterns and anti-patterns
type PatternService interface {
	Analyze(ctx context.Context, req ReviewRequest) (*PatternResponse, error)
}

// PrincipleService detects design principle violations
type PrincipleService interface {
	Analyze(ctx context.Context, req ReviewRequest) (*PrincipleResponse, error)
}

// SourceReader loads one source file. Failures are IO errors that only
// skip the file.
type SourceReader interface {
	ReadSource(path string) (*SourceFile, error)
}

// FileSet is the outcome of resolving a target path
type FileSet struct {
	Files   []string
	Skipped []string
}

// FileCollector resolves a target path into the Python files to analyze and
// reads them
type FileCollector interface {
	SourceReader

	// Collect returns the eligible files under path in lexical order, or a
	// path error when the target is missing, has the wrong extension or
	// holds no eligible files. Unreadable directories below the target are
	// listed in Skipped and do not fail the scan.
	Collect(path string) (*FileSet, error)
}

// ReviewTool is the path-in, report-out surface of one analyzer
type ReviewTool interface {
	// Kind identifies the analyzer
	Kind() AnalyzerKind

	// Name is the tool name exposed to tool-calling clients
	Name() string

	// Description tells clients what the tool reports
	Description() string

	// Analyze returns the rendered report, or a single error string when the
	// target path is rejected
	Analyze(ctx context.Context, path string) string
}
