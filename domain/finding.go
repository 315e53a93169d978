package domain

import "strings"

// Severity ranks a finding
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// SeverityOrder lists severities from most to least severe
var SeverityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// SourceFile is one Python file read for a single analysis pass
type SourceFile struct {
	Path    string
	Content string
	Lines   []string
}

// NewSourceFile builds a SourceFile, splitting content on newlines
func NewSourceFile(path string, content []byte) *SourceFile {
	text := string(content)
	return &SourceFile{
		Path:    path,
		Content: text,
		Lines:   strings.Split(text, "\n"),
	}
}

// CodeSmell is a quality finding
type CodeSmell struct {
	Name        string   `json:"name" yaml:"name"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	FilePath    string   `json:"file_path" yaml:"file_path"`
	LineNumber  int      `json:"line_number" yaml:"line_number"`
	Suggestion  string   `json:"suggestion" yaml:"suggestion"`
	CodeExample string   `json:"code_example" yaml:"code_example"`
	MetricValue *float64 `json:"metric_value,omitempty" yaml:"metric_value,omitempty"`
}

// HasMetric reports whether the smell carries a non-zero metric value
func (s CodeSmell) HasMetric() bool {
	return s.MetricValue != nil && *s.MetricValue != 0
}

// Metric is a helper for building CodeSmell.MetricValue
func Metric(v float64) *float64 {
	return &v
}

// PatternKind separates design patterns from anti-patterns
type PatternKind string

const (
	PatternKindPattern     PatternKind = "pattern"
	PatternKindAntiPattern PatternKind = "anti-pattern"
)

// PatternDetection is one detected pattern or anti-pattern instance
type PatternDetection struct {
	Kind        PatternKind `json:"kind" yaml:"kind"`
	Name        string      `json:"name" yaml:"name"`
	Confidence  float64     `json:"confidence" yaml:"confidence"`
	Description string      `json:"description" yaml:"description"`
	FilePath    string      `json:"file_path" yaml:"file_path"`
	LineNumber  int         `json:"line_number" yaml:"line_number"`
	Suggestion  string      `json:"suggestion" yaml:"suggestion"`
	CodeExample string      `json:"code_example" yaml:"code_example"`
}

// Principle tags one of the five design principles
type Principle string

const (
	PrincipleSingleResponsibility Principle = "S"
	PrincipleOpenClosed           Principle = "O"
	PrincipleLiskovSubstitution   Principle = "L"
	PrincipleInterfaceSegregation Principle = "I"
	PrincipleDependencyInversion  Principle = "D"
)

// Principles lists the principle tags in report order
var Principles = []Principle{
	PrincipleSingleResponsibility,
	PrincipleOpenClosed,
	PrincipleLiskovSubstitution,
	PrincipleInterfaceSegregation,
	PrincipleDependencyInversion,
}

// Title returns the full principle name
func (p Principle) Title() string {
	switch p {
	case PrincipleSingleResponsibility:
		return "Single Responsibility Principle"
	case PrincipleOpenClosed:
		return "Open/Closed Principle"
	case PrincipleLiskovSubstitution:
		return "Liskov Substitution Principle"
	case PrincipleInterfaceSegregation:
		return "Interface Segregation Principle"
	case PrincipleDependencyInversion:
		return "Dependency Inversion Principle"
	}
	return string(p)
}

// ShortTitle returns the principle name without the "Principle" suffix
func (p Principle) ShortTitle() string {
	return strings.TrimSuffix(p.Title(), " Principle")
}

// PrincipleViolation is a violation of one design principle
type PrincipleViolation struct {
	Principle   Principle `json:"principle" yaml:"principle"`
	Severity    Severity  `json:"severity" yaml:"severity"`
	Description string    `json:"description" yaml:"description"`
	FilePath    string    `json:"file_path" yaml:"file_path"`
	LineNumber  int       `json:"line_number" yaml:"line_number"`
	Suggestion  string    `json:"suggestion" yaml:"suggestion"`
	CodeExample string    `json:"code_example" yaml:"code_example"`
}
