package analyzer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// LineStats summarizes the raw lines of a source file
type LineStats struct {
	NonBlank int // lines with any non-whitespace content
	Comments int // lines whose stripped text starts with '#'
	Code     int // non-blank lines that are not comments
}

// CountLines computes LineStats over lines
func CountLines(lines []string) LineStats {
	var stats LineStats
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		stats.NonBlank++
		if strings.HasPrefix(stripped, "#") {
			stats.Comments++
		} else {
			stats.Code++
		}
	}
	return stats
}

// DuplicateLine is one stripped line and the 1-based lines it appears on
type DuplicateLine struct {
	Content string
	Lines   []int
}

// DuplicateLines groups stripped, non-comment lines longer than minLength
// runes by content. Groups are returned in order of first appearance and
// line numbers ascend within each group; singletons are included.
func DuplicateLines(lines []string, minLength int) []DuplicateLine {
	index := make(map[string]int)
	var groups []DuplicateLine

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if utf8.RuneCountInString(stripped) <= minLength || strings.HasPrefix(stripped, "#") {
			continue
		}
		if pos, ok := index[stripped]; ok {
			groups[pos].Lines = append(groups[pos].Lines, i+1)
			continue
		}
		index[stripped] = len(groups)
		groups = append(groups, DuplicateLine{Content: stripped, Lines: []int{i + 1}})
	}

	return groups
}

// DuplicationPercentage returns the share of repeated stripped code lines
// among all stripped code lines, in [0,100]
func DuplicationPercentage(lines []string) float64 {
	unique := make(map[string]struct{})
	total := 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		total++
		unique[stripped] = struct{}{}
	}
	if total == 0 {
		return 0
	}
	return float64(total-len(unique)) / float64(total) * 100
}

// truncateRunes returns at most n runes of s
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// formatLineList renders line numbers as a bracketed, comma separated list
func formatLineList(lines []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, l := range lines {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(l))
	}
	b.WriteByte(']')
	return b.String()
}
