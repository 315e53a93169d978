package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/pyreview/domain"
)

const sampleModule = `class Monolith:
    def load(self):
        return 1

    def save(self):
        return 2


def helper(value):
    if value:
        return 1
    return 0
`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeCmd_FlagsExist(t *testing.T) {
	cmd := analyzeCmd()

	expectedFlags := []string{"select", "format", "output", "config", "exclude", "respect-gitignore", "max-goroutines", "verbose", "no-progress"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestAnalyzeCmd_ShortFlags(t *testing.T) {
	cmd := analyzeCmd()

	shortFlags := map[string]string{
		"s": "select",
		"f": "format",
		"o": "output",
		"c": "config",
		"e": "exclude",
		"v": "verbose",
	}
	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil || flag.Name != long {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestAnalyzeCmd_DefaultSelectsAllAnalyzers(t *testing.T) {
	selectFlag := analyzeCmd().Flags().Lookup("select")
	if selectFlag == nil {
		t.Fatal("select flag not found")
	}
	if selectFlag.DefValue != "[quality,patterns,principles]" {
		t.Errorf("Expected default select '[quality,patterns,principles]', got '%s'", selectFlag.DefValue)
	}
}

func TestAnalyzeCmd_RequiresPath(t *testing.T) {
	if _, _, err := runCommand(t, "analyze"); err == nil {
		t.Error("Expected error when no path is given")
	}
}

func TestAnalyzeCmd_TextReport(t *testing.T) {
	dir := writeProject(t, map[string]string{"app.py": sampleModule})

	stdout, _, err := runCommand(t, "analyze", "--no-progress", dir)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	for _, heading := range []string{
		"=== Code Quality Analyzer ===",
		"=== Design Patterns Analyzer ===",
		"=== SOLID Principles Analyzer ===",
		"# Code Quality Analysis Report",
	} {
		if !strings.Contains(stdout, heading) {
			t.Errorf("Expected %q in output:\n%s", heading, stdout)
		}
	}
}

func TestAnalyzeCmd_JSONSubset(t *testing.T) {
	dir := writeProject(t, map[string]string{"app.py": sampleModule})

	stdout, _, err := runCommand(t, "analyze", "--no-progress", "--select", "principles", "--format", "json", dir)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, stdout)
	}
	if _, ok := doc["principles"]; !ok {
		t.Error("Expected principles in the JSON output")
	}
	if _, ok := doc["quality"]; ok {
		t.Error("Unselected analyzers should be absent")
	}
}

func TestAnalyzeCmd_OutputFile(t *testing.T) {
	dir := writeProject(t, map[string]string{"app.py": sampleModule})
	out := filepath.Join(t.TempDir(), "review.yaml")

	stdout, stderr, err := runCommand(t, "analyze", "--no-progress", "-f", "yaml", "-o", out, dir)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("Expected nothing on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "Report written to") {
		t.Errorf("Expected a confirmation on stderr, got %q", stderr)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if !strings.Contains(string(content), "quality:") {
		t.Errorf("Expected a YAML report, got:\n%s", content)
	}
}

func TestAnalyzeCmd_WarnsAboutSkippedFiles(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"app.py":    sampleModule,
		"broken.py": "def broken(:\n    return 1\n",
	})

	_, stderr, err := runCommand(t, "analyze", "--no-progress", "--select", "quality", dir)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if strings.Count(stderr, "Warning:") != 1 || !strings.Contains(stderr, "broken.py") {
		t.Errorf("Expected one warning naming broken.py, got:\n%s", stderr)
	}
}

func TestAnalyzeCmd_ExcludeAndGitignore(t *testing.T) {
	files := map[string]string{
		"app.py":          sampleModule,
		"legacy/old.py":   "def broken(:\n    return 1\n",
		"scratch/temp.py": "def broken(:\n    return 1\n",
		".gitignore":      "scratch/\n",
	}

	tests := []struct {
		name     string
		args     []string
		warnings []string
	}{
		{name: "no filters", args: nil, warnings: []string{"old.py", "temp.py"}},
		{name: "exclude", args: []string{"--exclude", "legacy"}, warnings: []string{"temp.py"}},
		{name: "gitignore", args: []string{"--respect-gitignore"}, warnings: []string{"old.py"}},
		{name: "both", args: []string{"-e", "legacy", "--respect-gitignore", "--max-goroutines", "1"}, warnings: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeProject(t, files)
			args := append([]string{"analyze", "--no-progress", "--select", "quality"}, tt.args...)
			_, stderr, err := runCommand(t, append(args, dir)...)
			if err != nil {
				t.Fatalf("analyze failed: %v", err)
			}
			if got := strings.Count(stderr, "Warning:"); got != len(tt.warnings) {
				t.Errorf("Expected %d warnings, got %d:\n%s", len(tt.warnings), got, stderr)
			}
			for _, name := range tt.warnings {
				if !strings.Contains(stderr, name) {
					t.Errorf("Expected a warning naming %s, got:\n%s", name, stderr)
				}
			}
		})
	}
}

func TestAnalyzeCmd_InvalidExcludePattern(t *testing.T) {
	dir := writeProject(t, map[string]string{"app.py": sampleModule})

	_, _, err := runCommand(t, "analyze", "--no-progress", "--exclude", "[a-", dir)
	if domain.ErrorCode(err) != domain.ErrCodeConfigError {
		t.Errorf("Expected CONFIG_ERROR for a malformed exclude glob, got %v", err)
	}
}

func TestAnalyzeCmd_UnreadableDirectoryWarns(t *testing.T) {
	dir := writeProject(t, map[string]string{"good/app.py": sampleModule, "locked/inner.py": sampleModule})
	locked := filepath.Join(dir, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })
	if _, err := os.ReadDir(locked); err == nil {
		t.Skip("directory permissions are not enforced for this user")
	}

	stdout, stderr, err := runCommand(t, "analyze", "--no-progress", dir)
	if err != nil {
		t.Fatalf("An unreadable directory must not fail the run: %v", err)
	}
	if !strings.Contains(stdout, "# Code Quality Analysis Report") {
		t.Errorf("Expected the readable files to be reviewed, got:\n%s", stdout)
	}
	if strings.Count(stderr, "Warning:") != 1 || !strings.Contains(stderr, "locked") {
		t.Errorf("Expected one warning naming the locked directory, got:\n%s", stderr)
	}
}

func TestAnalyzeCmd_PathError(t *testing.T) {
	_, _, err := runCommand(t, "analyze", "--no-progress", filepath.Join(t.TempDir(), "missing.py"))
	if !domain.IsPathError(err) {
		t.Errorf("Expected a path error, got %v", err)
	}
}

func TestAnalyzeCmd_InvalidFormat(t *testing.T) {
	dir := writeProject(t, map[string]string{"app.py": sampleModule})

	_, _, err := runCommand(t, "analyze", "--no-progress", "--format", "html", dir)
	if domain.ErrorCode(err) != domain.ErrCodeConfigError {
		t.Errorf("Expected CONFIG_ERROR for an unknown format, got %v", err)
	}
}

func TestParseAnalyzers(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected []domain.AnalyzerKind
		errPart  string
	}{
		{
			name:     "all",
			values:   []string{"quality", "patterns", "principles"},
			expected: []domain.AnalyzerKind{domain.AnalyzerQuality, domain.AnalyzerPatterns, domain.AnalyzerPrinciples},
		},
		{
			name:     "case and spaces",
			values:   []string{" Quality "},
			expected: []domain.AnalyzerKind{domain.AnalyzerQuality},
		},
		{
			name:    "typo suggests",
			values:  []string{"qualty"},
			errPart: `did you mean "quality"?`,
		},
		{
			name:    "singular suggests",
			values:  []string{"principle"},
			errPart: `did you mean "principles"?`,
		},
		{
			name:    "unrelated lists available",
			values:  []string{"complexity"},
			errPart: "available: quality, patterns, principles",
		},
		{
			name:    "empty",
			values:  []string{""},
			errPart: "no analyzers selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnalyzers(tt.values)
			if tt.errPart != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errPart) {
					t.Fatalf("Expected error containing %q, got %v", tt.errPart, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "pyreview version ") {
		t.Errorf("Unexpected version output %q", stdout)
	}

	stdout, _, err = runCommand(t, "version", "-v")
	if err != nil {
		t.Fatalf("version -v failed: %v", err)
	}
	if !strings.Contains(stdout, "commit:") {
		t.Errorf("Expected detailed version output, got %q", stdout)
	}
}

func TestMCPCmd_Flags(t *testing.T) {
	cmd := mcpCmd()
	for _, flagName := range []string{"config", "verbose"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestNewLogger_RunID(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false)
	logger.Debug("hidden")
	logger.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Debug records should be dropped unless verbose")
	}
	if !strings.Contains(out, "run_id=") {
		t.Errorf("Expected a run_id attribute, got %q", out)
	}
}
