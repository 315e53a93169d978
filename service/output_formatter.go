package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/version"
)

// OutputFormatterImpl writes a review result as text reports, JSON or YAML
type OutputFormatterImpl struct {
	quality    *QualityReportRenderer
	patterns   *PatternReportRenderer
	principles *PrincipleReportRenderer
	now        func() time.Time
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{
		quality:    NewQualityReportRenderer(),
		patterns:   NewPatternReportRenderer(),
		principles: NewPrincipleReportRenderer(),
		now:        time.Now,
	}
}

// ReviewResultDocument wraps a ReviewResult with run metadata for
// structured output
type ReviewResultDocument struct {
	Version     string                    `json:"version" yaml:"version"`
	GeneratedAt string                    `json:"generated_at" yaml:"generated_at"`
	DurationMs  int64                     `json:"duration_ms" yaml:"duration_ms"`
	Path        string                    `json:"path" yaml:"path"`
	Files       int                       `json:"files" yaml:"files"`
	Quality     *domain.QualityResponse   `json:"quality,omitempty" yaml:"quality,omitempty"`
	Patterns    *domain.PatternResponse   `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Principles  *domain.PrincipleResponse `json:"principles,omitempty" yaml:"principles,omitempty"`
}

// Write writes the result in the given format
func (f *OutputFormatterImpl) Write(result *domain.ReviewResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return f.writeText(result, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, f.document(result))
	case domain.OutputFormatYAML:
		return WriteYAML(writer, f.document(result))
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// Reports renders the report of every analyzer that ran, keyed by analyzer
func (f *OutputFormatterImpl) Reports(result *domain.ReviewResult) map[domain.AnalyzerKind]string {
	reports := make(map[domain.AnalyzerKind]string, len(domain.AllAnalyzers))
	if result.Quality != nil {
		reports[domain.AnalyzerQuality] = f.quality.Render(result.Quality)
	}
	if result.Patterns != nil {
		reports[domain.AnalyzerPatterns] = f.patterns.Render(result.Patterns)
	}
	if result.Principles != nil {
		reports[domain.AnalyzerPrinciples] = f.principles.Render(result.Principles)
	}
	return reports
}

// writeText concatenates the per-analyzer reports, each attributed by the
// analyzer name
func (f *OutputFormatterImpl) writeText(result *domain.ReviewResult, writer io.Writer) error {
	reports := f.Reports(result)
	first := true
	for _, kind := range domain.AllAnalyzers {
		report, ok := reports[kind]
		if !ok {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(writer); err != nil {
				return domain.NewOutputError("failed to write report", err)
			}
		}
		first = false
		if _, err := fmt.Fprintf(writer, "=== %s ===\n%s", kind.Title(), report); err != nil {
			return domain.NewOutputError("failed to write report", err)
		}
	}
	return nil
}

func (f *OutputFormatterImpl) document(result *domain.ReviewResult) *ReviewResultDocument {
	return &ReviewResultDocument{
		Version:     version.GetVersion(),
		GeneratedAt: f.now().UTC().Format(time.RFC3339),
		DurationMs:  result.Duration.Milliseconds(),
		Path:        result.Path,
		Files:       result.Files,
		Quality:     result.Quality,
		Patterns:    result.Patterns,
		Principles:  result.Principles,
	}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	if err := encoder.Close(); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}
