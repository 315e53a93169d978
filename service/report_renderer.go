package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ludo-technologies/pyreview/domain"
)

// Quality score bands
const (
	qualityBandExcellent = 90.0
	qualityBandGood      = 80.0
	qualityBandFair      = 70.0
	qualityBandPoor      = 60.0
)

// Thresholds that trigger the quality improvement recommendations
const (
	recommendDuplicationAbove = 10.0
	recommendComplexityAbove  = 8.0
	recommendMediumIssues     = 5
)

// Principle guidance bands
const (
	principleBandGood     = 8.0
	principleBandModerate = 6.0
)

// formatNumber renders a float with the fewest digits that round-trip,
// so whole numbers carry no fractional part
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// QualityReportRenderer renders a quality response as a markdown report
type QualityReportRenderer struct{}

// NewQualityReportRenderer creates a new quality report renderer
func NewQualityReportRenderer() *QualityReportRenderer {
	return &QualityReportRenderer{}
}

// Render builds the report
func (r *QualityReportRenderer) Render(resp *domain.QualityResponse) string {
	var b strings.Builder
	m := resp.Metrics

	b.WriteString("\n# Code Quality Analysis Report\n\n")
	fmt.Fprintf(&b, "## Overall Quality Score: %.1f/100\n\n", resp.Score)

	b.WriteString("## Quality Metrics:\n")
	fmt.Fprintf(&b, "- **Lines of Code**: %d\n", m.LinesOfCode)
	fmt.Fprintf(&b, "- **Average Cyclomatic Complexity**: %.1f\n", m.CyclomaticComplexity)
	fmt.Fprintf(&b, "- **Average Cognitive Complexity**: %.1f\n", m.CognitiveComplexity)
	fmt.Fprintf(&b, "- **Maintainability Index**: %.1f/100\n", m.MaintainabilityIndex)
	fmt.Fprintf(&b, "- **Code Duplication**: %.1f%%\n\n", m.CodeDuplication)

	b.WriteString("## Code Smells Summary:\n")
	fmt.Fprintf(&b, "- **Critical Issues**: %d\n", resp.CountBySeverity(domain.SeverityCritical))
	fmt.Fprintf(&b, "- **High Priority**: %d\n", resp.CountBySeverity(domain.SeverityHigh))
	fmt.Fprintf(&b, "- **Medium Priority**: %d\n", resp.CountBySeverity(domain.SeverityMedium))
	fmt.Fprintf(&b, "- **Low Priority**: %d\n", resp.CountBySeverity(domain.SeverityLow))
	fmt.Fprintf(&b, "- **Total Issues**: %d\n\n", len(resp.Smells))

	b.WriteString("## Detailed Code Smells:\n")
	for _, severity := range domain.SeverityOrder {
		smells := groupSmellsByName(resp.Smells, severity)
		if len(smells) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s Priority Issues:\n", severity)
		for _, smell := range smells {
			metric := ""
			if smell.HasMetric() {
				metric = fmt.Sprintf(" (Value: %s)", formatNumber(*smell.MetricValue))
			}
			fmt.Fprintf(&b, "\n**%s**%s\n", smell.Name, metric)
			fmt.Fprintf(&b, "- Location: %s:%d\n", smell.FilePath, smell.LineNumber)
			fmt.Fprintf(&b, "- Issue: %s\n", smell.Description)
			fmt.Fprintf(&b, "- Suggestion: %s\n", smell.Suggestion)
			fmt.Fprintf(&b, "- Code: `%s`\n", smell.CodeExample)
		}
	}

	b.WriteString("\n## Quality Assessment:\n")
	b.WriteString(qualityBand(resp.Score))

	b.WriteString("\n## Improvement Recommendations:\n")
	if resp.CountBySeverity(domain.SeverityHigh) > 0 {
		b.WriteString("1. **Address High Priority Issues First**\n")
		b.WriteString("   - Focus on Large Classes and Long Methods\n")
		b.WriteString("   - Reduce cyclomatic complexity\n")
		b.WriteString("   - Fix deep nesting issues\n\n")
	}
	if m.CodeDuplication > recommendDuplicationAbove {
		b.WriteString("2. **Reduce Code Duplication**\n")
		b.WriteString("   - Extract common code into reusable functions\n")
		b.WriteString("   - Use inheritance or composition where appropriate\n\n")
	}
	if m.CyclomaticComplexity > recommendComplexityAbove {
		b.WriteString("3. **Simplify Complex Functions**\n")
		b.WriteString("   - Break down complex functions into smaller ones\n")
		b.WriteString("   - Use early returns to reduce nesting\n")
		b.WriteString("   - Consider using design patterns for complex logic\n\n")
	}
	if resp.CountBySeverity(domain.SeverityMedium) > recommendMediumIssues {
		b.WriteString("4. **Improve Code Organization**\n")
		b.WriteString("   - Follow naming conventions consistently\n")
		b.WriteString("   - Organize code into logical modules\n")
		b.WriteString("   - Add appropriate documentation\n\n")
	}

	b.WriteString("\n## Success Metrics:\n")
	b.WriteString("- Target Quality Score: 85+\n")
	b.WriteString("- Max Cyclomatic Complexity: 8 per function\n")
	b.WriteString("- Max Function Length: 20 lines\n")
	b.WriteString("- Max Class Methods: 15\n")
	b.WriteString("- Code Duplication: < 5%\n")

	return b.String()
}

// groupSmellsByName returns the smells of one severity, grouped by name in
// order of each name's first occurrence. Order within a name is preserved.
func groupSmellsByName(smells []domain.CodeSmell, severity domain.Severity) []domain.CodeSmell {
	rank := make(map[string]int)
	var out []domain.CodeSmell
	for _, smell := range smells {
		if smell.Severity != severity {
			continue
		}
		if _, ok := rank[smell.Name]; !ok {
			rank[smell.Name] = len(rank)
		}
		out = append(out, smell)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Name] < rank[out[j].Name]
	})
	return out
}

func qualityBand(score float64) string {
	switch {
	case score >= qualityBandExcellent:
		return "- **Excellent**: Code quality is very high with minimal issues\n"
	case score >= qualityBandGood:
		return "- **Good**: Code quality is good with some minor improvements needed\n"
	case score >= qualityBandFair:
		return "- **Fair**: Code quality is acceptable but needs attention to several issues\n"
	case score >= qualityBandPoor:
		return "- **Poor**: Code quality needs significant improvement\n"
	default:
		return "- **Critical**: Code quality is poor and requires immediate attention\n"
	}
}

// PatternReportRenderer renders a pattern response as a markdown report
type PatternReportRenderer struct{}

// NewPatternReportRenderer creates a new pattern report renderer
func NewPatternReportRenderer() *PatternReportRenderer {
	return &PatternReportRenderer{}
}

// Render builds the report. Patterns and anti-patterns are each listed by
// descending confidence; equal confidences keep detection order.
func (r *PatternReportRenderer) Render(resp *domain.PatternResponse) string {
	var b strings.Builder
	patterns := sortByConfidence(resp.OfKind(domain.PatternKindPattern))
	antiPatterns := sortByConfidence(resp.OfKind(domain.PatternKindAntiPattern))

	b.WriteString("\n# Design Patterns Analysis Report\n\n")
	b.WriteString("## Summary:\n")
	fmt.Fprintf(&b, "- **Design Patterns Found**: %d\n", len(patterns))
	fmt.Fprintf(&b, "- **Anti-Patterns Detected**: %d\n", len(antiPatterns))
	fmt.Fprintf(&b, "- **Total Issues**: %d\n\n", len(resp.Detections))

	b.WriteString("## Design Patterns Detected:\n")
	if len(patterns) == 0 {
		b.WriteString("\nNo design patterns detected in the analyzed code.\n")
	}
	for _, p := range patterns {
		fmt.Fprintf(&b, "\n### %s Pattern\n", p.Name)
		fmt.Fprintf(&b, "- **Confidence**: %s\n", formatConfidence(p.Confidence))
		fmt.Fprintf(&b, "- **Location**: %s:%d\n", p.FilePath, p.LineNumber)
		fmt.Fprintf(&b, "- **Description**: %s\n", p.Description)
		fmt.Fprintf(&b, "- **Assessment**: %s\n", p.Suggestion)
	}

	b.WriteString("\n## Anti-Patterns Found:\n")
	if len(antiPatterns) == 0 {
		b.WriteString("\nNo anti-patterns detected in the analyzed code.\n")
	}
	for _, a := range antiPatterns {
		fmt.Fprintf(&b, "\n### %s Anti-Pattern\n", a.Name)
		fmt.Fprintf(&b, "- **Confidence**: %s\n", formatConfidence(a.Confidence))
		fmt.Fprintf(&b, "- **Location**: %s:%d\n", a.FilePath, a.LineNumber)
		fmt.Fprintf(&b, "- **Issue**: %s\n", a.Description)
		fmt.Fprintf(&b, "- **Recommendation**: %s\n", a.Suggestion)
	}

	b.WriteString("\n## Recommendations:\n")
	if len(antiPatterns) > len(patterns) {
		b.WriteString("- Focus on addressing anti-patterns before implementing new patterns\n")
		b.WriteString("- Prioritize refactoring God Objects and reducing code duplication\n")
	}
	if len(patterns) > 0 {
		b.WriteString("- Good use of design patterns detected\n")
		b.WriteString("- Consider documenting pattern usage for team knowledge\n")
	}
	if len(patterns) == 0 && len(antiPatterns) == 0 {
		b.WriteString("- Consider applying appropriate design patterns for better code organization\n")
		b.WriteString("- Look for opportunities to use Strategy, Factory, or Observer patterns\n")
	}

	b.WriteString("\n## Pattern Opportunities:\n")
	b.WriteString("- **Strategy Pattern**: For algorithm variations or complex if-elif chains\n")
	b.WriteString("- **Factory Pattern**: For object creation based on conditions\n")
	b.WriteString("- **Observer Pattern**: For event handling and notifications\n")
	b.WriteString("- **Decorator Pattern**: For extending functionality without inheritance\n")

	return b.String()
}

func sortByConfidence(detections []domain.PatternDetection) []domain.PatternDetection {
	sort.SliceStable(detections, func(i, j int) bool {
		return detections[i].Confidence > detections[j].Confidence
	})
	return detections
}

// formatConfidence renders a confidence in [0,1] as a percentage, 0.8 -> 80.0%
func formatConfidence(c float64) string {
	return fmt.Sprintf("%.1f%%", c*100)
}

// PrincipleReportRenderer renders a principle response as a markdown report
type PrincipleReportRenderer struct{}

// NewPrincipleReportRenderer creates a new principle report renderer
func NewPrincipleReportRenderer() *PrincipleReportRenderer {
	return &PrincipleReportRenderer{}
}

// Render builds the report
func (r *PrincipleReportRenderer) Render(resp *domain.PrincipleResponse) string {
	var b strings.Builder

	b.WriteString("\n# SOLID Principles Analysis Report\n\n")
	fmt.Fprintf(&b, "## Overall Score: %.1f/10\n\n", resp.OverallScore)

	b.WriteString("## Individual Scores:\n")
	for _, p := range domain.Principles {
		score, ok := resp.Scores[p]
		if !ok {
			score = domain.MaxPrincipleScore
		}
		fmt.Fprintf(&b, "- %s (%s): %s/10\n", p.ShortTitle(), p, formatNumber(score))
	}

	fmt.Fprintf(&b, "\n## Violations Found (%d total):\n", len(resp.Violations))

	var order []domain.Principle
	grouped := make(map[domain.Principle][]domain.PrincipleViolation)
	for _, v := range resp.Violations {
		if _, ok := grouped[v.Principle]; !ok {
			order = append(order, v.Principle)
		}
		grouped[v.Principle] = append(grouped[v.Principle], v)
	}
	for _, p := range order {
		fmt.Fprintf(&b, "\n### %s Violations:\n", p.Title())
		for _, v := range grouped[p] {
			fmt.Fprintf(&b, "\n**%s Priority**\n", v.Severity)
			fmt.Fprintf(&b, "- File: %s:%d\n", v.FilePath, v.LineNumber)
			fmt.Fprintf(&b, "- Issue: %s\n", v.Description)
			fmt.Fprintf(&b, "- Suggestion: %s\n", v.Suggestion)
			fmt.Fprintf(&b, "- Code: `%s`\n", v.CodeExample)
		}
	}

	b.WriteString("\n## Recommendations:\n")
	switch {
	case resp.OverallScore >= principleBandGood:
		b.WriteString("- Code shows good adherence to SOLID principles\n")
		b.WriteString("- Focus on minor improvements and consistency\n")
	case resp.OverallScore >= principleBandModerate:
		b.WriteString("- Code has moderate SOLID compliance\n")
		b.WriteString("- Address high and medium priority violations\n")
	default:
		b.WriteString("- Code needs significant SOLID improvements\n")
		b.WriteString("- Start with critical and high priority violations\n")
		b.WriteString("- Consider architectural refactoring\n")
	}

	return b.String()
}
