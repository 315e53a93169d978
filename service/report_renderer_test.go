package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pyreview/domain"
)

// assertInOrder fails unless every fragment appears in text, in order
func assertInOrder(t *testing.T, text string, fragments ...string) {
	t.Helper()
	offset := 0
	for _, fragment := range fragments {
		i := strings.Index(text[offset:], fragment)
		require.GreaterOrEqual(t, i, 0, "%q not found after offset %d", fragment, offset)
		offset += i + len(fragment)
	}
}

func TestQualityReportRenderer_Header(t *testing.T) {
	resp := &domain.QualityResponse{
		Score: 75,
		Metrics: domain.QualityMetrics{
			CyclomaticComplexity: 2,
			CognitiveComplexity:  2.4,
			MaintainabilityIndex: 95.66,
			LinesOfCode:          8,
			CodeDuplication:      12.5,
		},
	}

	report := NewQualityReportRenderer().Render(resp)

	expected := "\n# Code Quality Analysis Report\n\n" +
		"## Overall Quality Score: 75.0/100\n\n" +
		"## Quality Metrics:\n" +
		"- **Lines of Code**: 8\n" +
		"- **Average Cyclomatic Complexity**: 2.0\n" +
		"- **Average Cognitive Complexity**: 2.4\n" +
		"- **Maintainability Index**: 95.7/100\n" +
		"- **Code Duplication**: 12.5%\n\n" +
		"## Code Smells Summary:\n" +
		"- **Critical Issues**: 0\n" +
		"- **High Priority**: 0\n" +
		"- **Medium Priority**: 0\n" +
		"- **Low Priority**: 0\n" +
		"- **Total Issues**: 0\n\n" +
		"## Detailed Code Smells:\n"
	assert.True(t, strings.HasPrefix(report, expected), report)
	assert.Contains(t, report, "- **Fair**: Code quality is acceptable but needs attention to several issues\n")
	assert.Contains(t, report, "2. **Reduce Code Duplication**")
	assert.NotContains(t, report, "1. **Address High Priority Issues First**")
	assert.True(t, strings.HasSuffix(report, "- Code Duplication: < 5%\n"))
}

func TestQualityReportRenderer_GroupsBySeverityThenName(t *testing.T) {
	resp := &domain.QualityResponse{
		Score: 55,
		Smells: []domain.CodeSmell{
			{Name: "Long Method", Severity: domain.SeverityHigh, FilePath: "a.py", LineNumber: 1, MetricValue: domain.Metric(21)},
			{Name: "Unclear Function Name", Severity: domain.SeverityLow, FilePath: "a.py", LineNumber: 2},
			{Name: "Large Class", Severity: domain.SeverityHigh, FilePath: "a.py", LineNumber: 3, MetricValue: domain.Metric(0)},
			{Name: "Long Method", Severity: domain.SeverityHigh, FilePath: "b.py", LineNumber: 4, MetricValue: domain.Metric(0.05)},
		},
	}

	report := NewQualityReportRenderer().Render(resp)

	assertInOrder(t, report,
		"### High Priority Issues:",
		"**Long Method** (Value: 21)\n- Location: a.py:1",
		"**Long Method** (Value: 0.05)\n- Location: b.py:4",
		"**Large Class**\n- Location: a.py:3",
		"### Low Priority Issues:",
		"**Unclear Function Name**",
		"- **Critical**: Code quality is poor and requires immediate attention",
		"1. **Address High Priority Issues First**",
	)
	assert.NotContains(t, report, "### Medium Priority Issues:")
}

func TestQualityBand(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{100, "**Excellent**"},
		{90, "**Excellent**"},
		{89.9, "**Good**"},
		{80, "**Good**"},
		{70, "**Fair**"},
		{60, "**Poor**"},
		{59.9, "**Critical**"},
	}
	for _, tc := range tests {
		assert.Contains(t, qualityBand(tc.score), tc.expected, "score %v", tc.score)
	}
}

func TestPatternReportRenderer_SortsByConfidence(t *testing.T) {
	resp := &domain.PatternResponse{
		Detections: []domain.PatternDetection{
			{Kind: domain.PatternKindPattern, Name: "Adapter", Confidence: 0.6, FilePath: "a.py", LineNumber: 1},
			{Kind: domain.PatternKindAntiPattern, Name: "God Object", Confidence: 0.8, FilePath: "a.py", LineNumber: 5},
			{Kind: domain.PatternKindPattern, Name: "Builder", Confidence: 0.9, FilePath: "a.py", LineNumber: 9},
			{Kind: domain.PatternKindPattern, Name: "Facade", Confidence: 0.6, FilePath: "b.py", LineNumber: 2},
		},
	}

	report := NewPatternReportRenderer().Render(resp)

	assertInOrder(t, report,
		"- **Design Patterns Found**: 3\n- **Anti-Patterns Detected**: 1\n- **Total Issues**: 4\n",
		"### Builder Pattern\n- **Confidence**: 90.0%\n- **Location**: a.py:9",
		"### Adapter Pattern\n- **Confidence**: 60.0%",
		"### Facade Pattern",
		"## Anti-Patterns Found:",
		"### God Object Anti-Pattern\n- **Confidence**: 80.0%",
		"## Recommendations:\n- Good use of design patterns detected\n",
		"## Pattern Opportunities:\n- **Strategy Pattern**",
	)
	assert.Equal(t, "Adapter", resp.Detections[0].Name, "rendering does not reorder the response")
}

func TestPatternReportRenderer_Empty(t *testing.T) {
	report := NewPatternReportRenderer().Render(&domain.PatternResponse{})

	assert.Contains(t, report, "\nNo design patterns detected in the analyzed code.\n")
	assert.Contains(t, report, "\nNo anti-patterns detected in the analyzed code.\n")
	assert.Contains(t, report, "- Look for opportunities to use Strategy, Factory, or Observer patterns\n")
	assert.Contains(t, report, "- **Decorator Pattern**: For extending functionality without inheritance\n")
}

func TestPatternReportRenderer_MoreAntiPatterns(t *testing.T) {
	resp := &domain.PatternResponse{
		Detections: []domain.PatternDetection{
			{Kind: domain.PatternKindAntiPattern, Name: "Spaghetti Code", Confidence: 0.7},
		},
	}
	report := NewPatternReportRenderer().Render(resp)
	assert.Contains(t, report, "- Focus on addressing anti-patterns before implementing new patterns\n")
	assert.NotContains(t, report, "Good use of design patterns")
}

func TestPrincipleReportRenderer(t *testing.T) {
	scores := domain.NewPrincipleScoreBoard()
	scores[domain.PrincipleDependencyInversion] = 9.5
	scores[domain.PrincipleSingleResponsibility] = 8
	resp := &domain.PrincipleResponse{
		Violations: []domain.PrincipleViolation{
			{Principle: domain.PrincipleDependencyInversion, Severity: domain.SeverityLow, FilePath: "a.py", LineNumber: 3, Description: "first D"},
			{Principle: domain.PrincipleSingleResponsibility, Severity: domain.SeverityHigh, FilePath: "a.py", LineNumber: 1, Description: "the S"},
			{Principle: domain.PrincipleDependencyInversion, Severity: domain.SeverityLow, FilePath: "a.py", LineNumber: 7, Description: "second D"},
		},
		Scores: scores,
	}
	resp.OverallScore = scores.Overall()

	report := NewPrincipleReportRenderer().Render(resp)

	assertInOrder(t, report,
		"## Overall Score: 9.5/10\n",
		"- Single Responsibility (S): 8/10\n",
		"- Open/Closed (O): 10/10\n",
		"- Liskov Substitution (L): 10/10\n",
		"- Interface Segregation (I): 10/10\n",
		"- Dependency Inversion (D): 9.5/10\n",
		"## Violations Found (3 total):\n",
		"### Dependency Inversion Principle Violations:\n",
		"**Low Priority**\n- File: a.py:3\n- Issue: first D",
		"second D",
		"### Single Responsibility Principle Violations:\n",
		"**High Priority**\n- File: a.py:1",
		"- Code shows good adherence to SOLID principles\n",
	)
}

func TestPrincipleReportRenderer_WholeScoreAfterLowDeductions(t *testing.T) {
	scores := domain.NewPrincipleScoreBoard()
	scores.Deduct(domain.PrincipleDependencyInversion, 0.5, 1)
	scores.Deduct(domain.PrincipleDependencyInversion, 0.5, 1)
	resp := &domain.PrincipleResponse{Scores: scores, OverallScore: scores.Overall()}

	report := NewPrincipleReportRenderer().Render(resp)

	assert.Contains(t, report, "- Dependency Inversion (D): 9/10\n")
	assert.Contains(t, report, "## Overall Score: 9.8/10\n")
}

func TestPrincipleReportRenderer_Bands(t *testing.T) {
	render := func(overall float64) string {
		return NewPrincipleReportRenderer().Render(&domain.PrincipleResponse{
			Scores:       domain.NewPrincipleScoreBoard(),
			OverallScore: overall,
		})
	}

	assert.Contains(t, render(8), "- Code shows good adherence to SOLID principles\n")
	assert.Contains(t, render(7.9), "- Code has moderate SOLID compliance\n")
	assert.Contains(t, render(6), "- Address high and medium priority violations\n")
	assert.Contains(t, render(5.9), "- Consider architectural refactoring\n")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "80.0%", formatConfidence(0.8))
	assert.Equal(t, "70.0%", formatConfidence(0.7))
	assert.Equal(t, "10", formatNumber(10))
	assert.Equal(t, "9.5", formatNumber(9.5))
}
