package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "pyreview"

	// ConfigFileName is the default config file name written by init
	ConfigFileName = ".pyreview.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "PYREVIEW"

	// SourceExtension is the only file extension analyzed
	SourceExtension = ".py"
)

// ConfigFileCandidates lists config file names in discovery order
var ConfigFileCandidates = []string{
	".pyreview.yaml",
	"pyreview.yaml",
	".pyreview.yml",
	"pyreview.yml",
	"pyreview.json",
}

// MCP tool names, one per analyzer
const (
	ToolAnalyzeQuality    = "analyze_code_quality"
	ToolAnalyzePatterns   = "analyze_design_patterns"
	ToolAnalyzePrinciples = "analyze_solid_principles"
)

// Performance defaults
const (
	DefaultMaxGoroutines  = 4
	DefaultTimeoutSeconds = 300
)
