package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
)

// Default naming rules
const (
	DefaultFunctionNamePattern = `^[a-z][a-z0-9_]*$`
	DefaultClassNamePattern    = `^[A-Z][a-zA-Z0-9]*$`
)

// Default quality thresholds. A finding is raised when a measured value
// exceeds the threshold.
const (
	DefaultLongMethodLines          = 20
	DefaultVeryLongMethodLines      = 50
	DefaultMaxParameters            = 5
	DefaultMaxNestingDepth          = 4
	DefaultLargeClassMethods        = 15
	DefaultLargeClassLines          = 200
	DefaultDataClassAssignments     = 5
	DefaultDataClassMethods         = 3
	DefaultLazyClassMethods         = 2
	DefaultLazyClassAssignments     = 1
	DefaultComplexityThreshold      = 10
	DefaultHighComplexityThreshold  = 15
	DefaultDuplicateMinLength       = 15
	DefaultDuplicateMinOccurrences  = 3
	DefaultCommentCheckMinLines     = 50
	DefaultMinCommentRatio          = 0.10
	DefaultMaxCommentRatio          = 0.30
	DefaultCognitiveFactor          = 1.2
	DefaultMaintainabilityTarget    = 70.0
	DefaultDuplicationPenaltyStart  = 10.0
	DefaultComplexityPenaltyStart   = 10.0
	DefaultComplexityPenaltyFactor  = 2.0
	DefaultMaintainabilityPenalty   = 0.3
	DefaultDuplicationPenaltyFactor = 0.5
)

// Default pattern detector confidences
const (
	DefaultSingletonConfidence = 0.8
	DefaultFactoryConfidence   = 0.7
	DefaultBuilderConfidence   = 0.9
	DefaultDecoratorConfidence = 0.7
	DefaultAdapterConfidence   = 0.6
	DefaultFacadeConfidence    = 0.6
	DefaultStrategyConfidence  = 0.7
	DefaultObserverConfidence  = 0.8
	DefaultGodObjectConfidence = 0.8
	DefaultAnemicConfidence    = 0.6
	DefaultSpaghettiConfidence = 0.7
	DefaultCopyPasteConfidence = 0.6
)

// Default pattern detector thresholds
const (
	DefaultBuilderChainableMethods = 2
	DefaultFacadeMethods           = 3
	DefaultObserverMethods         = 2
	DefaultGodObjectMethods        = 20
	DefaultGodObjectLines          = 500
	DefaultAnemicGetterRatio       = 0.7
	DefaultSpaghettiNestingDepth   = 6
	DefaultCopyPasteMinLength      = 20
)

// Default principle thresholds
const (
	DefaultSRPMaxMethods         = 10
	DefaultSRPMaxConcerns        = 3
	DefaultOCPMaxChainLength     = 5
	DefaultISPMaxAbstractMethods = 8
	DefaultPrincipleScoreFloor   = 1.0
)

// Config represents the main configuration structure
type Config struct {
	// Quality holds code smell thresholds and score weights
	Quality QualityConfig `json:"quality" mapstructure:"quality" yaml:"quality"`

	// Patterns holds design pattern detector confidences and thresholds
	Patterns PatternConfig `json:"patterns" mapstructure:"patterns" yaml:"patterns"`

	// Principles holds design principle thresholds and score weights
	Principles PrincipleConfig `json:"principles" mapstructure:"principles" yaml:"principles"`

	// Analysis holds file discovery configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Performance holds concurrency limits
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// SeverityWeights maps each severity to a score deduction
type SeverityWeights struct {
	Critical float64 `json:"critical" mapstructure:"critical" yaml:"critical"`
	High     float64 `json:"high" mapstructure:"high" yaml:"high"`
	Medium   float64 `json:"medium" mapstructure:"medium" yaml:"medium"`
	Low      float64 `json:"low" mapstructure:"low" yaml:"low"`
}

// Weight returns the deduction for a severity
func (w SeverityWeights) Weight(severity domain.Severity) float64 {
	switch severity {
	case domain.SeverityCritical:
		return w.Critical
	case domain.SeverityHigh:
		return w.High
	case domain.SeverityMedium:
		return w.Medium
	default:
		return w.Low
	}
}

// QualityConfig holds configuration for the quality analyzer
type QualityConfig struct {
	FunctionNamePattern    string   `json:"function_name_pattern" mapstructure:"function_name_pattern" yaml:"function_name_pattern"`
	ClassNamePattern       string   `json:"class_name_pattern" mapstructure:"class_name_pattern" yaml:"class_name_pattern"`
	MinFunctionNameLength  int      `json:"min_function_name_length" mapstructure:"min_function_name_length" yaml:"min_function_name_length"`
	ShortFunctionNames     []string `json:"short_function_names" mapstructure:"short_function_names" yaml:"short_function_names"`
	SingleLetterVariables  []string `json:"single_letter_variables" mapstructure:"single_letter_variables" yaml:"single_letter_variables"`
	LongMethodLines        int      `json:"long_method_lines" mapstructure:"long_method_lines" yaml:"long_method_lines"`
	VeryLongMethodLines    int      `json:"very_long_method_lines" mapstructure:"very_long_method_lines" yaml:"very_long_method_lines"`
	MaxParameters          int      `json:"max_parameters" mapstructure:"max_parameters" yaml:"max_parameters"`
	MaxNestingDepth        int      `json:"max_nesting_depth" mapstructure:"max_nesting_depth" yaml:"max_nesting_depth"`
	LargeClassMethods      int      `json:"large_class_methods" mapstructure:"large_class_methods" yaml:"large_class_methods"`
	LargeClassLines        int      `json:"large_class_lines" mapstructure:"large_class_lines" yaml:"large_class_lines"`
	DataClassAssignments   int      `json:"data_class_assignments" mapstructure:"data_class_assignments" yaml:"data_class_assignments"`
	DataClassMethods       int      `json:"data_class_methods" mapstructure:"data_class_methods" yaml:"data_class_methods"`
	LazyClassMethods       int      `json:"lazy_class_methods" mapstructure:"lazy_class_methods" yaml:"lazy_class_methods"`
	LazyClassAssignments   int      `json:"lazy_class_assignments" mapstructure:"lazy_class_assignments" yaml:"lazy_class_assignments"`
	ComplexityThreshold    int      `json:"complexity_threshold" mapstructure:"complexity_threshold" yaml:"complexity_threshold"`
	HighComplexity         int      `json:"high_complexity" mapstructure:"high_complexity" yaml:"high_complexity"`
	DuplicateMinLength     int      `json:"duplicate_min_length" mapstructure:"duplicate_min_length" yaml:"duplicate_min_length"`
	DuplicateOccurrences   int      `json:"duplicate_occurrences" mapstructure:"duplicate_occurrences" yaml:"duplicate_occurrences"`
	CommentCheckMinLines   int      `json:"comment_check_min_lines" mapstructure:"comment_check_min_lines" yaml:"comment_check_min_lines"`
	MinCommentRatio        float64  `json:"min_comment_ratio" mapstructure:"min_comment_ratio" yaml:"min_comment_ratio"`
	MaxCommentRatio        float64  `json:"max_comment_ratio" mapstructure:"max_comment_ratio" yaml:"max_comment_ratio"`
	CognitiveFactor        float64  `json:"cognitive_factor" mapstructure:"cognitive_factor" yaml:"cognitive_factor"`
	MaintainabilityTarget  float64  `json:"maintainability_target" mapstructure:"maintainability_target" yaml:"maintainability_target"`
	ComplexityPenaltyStart float64  `json:"complexity_penalty_start" mapstructure:"complexity_penalty_start" yaml:"complexity_penalty_start"`
	ComplexityPenalty      float64  `json:"complexity_penalty" mapstructure:"complexity_penalty" yaml:"complexity_penalty"`
	MaintainabilityPenalty float64  `json:"maintainability_penalty" mapstructure:"maintainability_penalty" yaml:"maintainability_penalty"`
	DuplicationPenaltyFrom float64  `json:"duplication_penalty_start" mapstructure:"duplication_penalty_start" yaml:"duplication_penalty_start"`
	DuplicationPenalty     float64  `json:"duplication_penalty" mapstructure:"duplication_penalty" yaml:"duplication_penalty"`

	// Weights are deducted from 100 per finding
	Weights SeverityWeights `json:"weights" mapstructure:"weights" yaml:"weights"`
}

// PatternConfig holds configuration for the pattern analyzer
type PatternConfig struct {
	SingletonConfidence float64 `json:"singleton_confidence" mapstructure:"singleton_confidence" yaml:"singleton_confidence"`
	FactoryConfidence   float64 `json:"factory_confidence" mapstructure:"factory_confidence" yaml:"factory_confidence"`
	BuilderConfidence   float64 `json:"builder_confidence" mapstructure:"builder_confidence" yaml:"builder_confidence"`
	DecoratorConfidence float64 `json:"decorator_confidence" mapstructure:"decorator_confidence" yaml:"decorator_confidence"`
	AdapterConfidence   float64 `json:"adapter_confidence" mapstructure:"adapter_confidence" yaml:"adapter_confidence"`
	FacadeConfidence    float64 `json:"facade_confidence" mapstructure:"facade_confidence" yaml:"facade_confidence"`
	StrategyConfidence  float64 `json:"strategy_confidence" mapstructure:"strategy_confidence" yaml:"strategy_confidence"`
	ObserverConfidence  float64 `json:"observer_confidence" mapstructure:"observer_confidence" yaml:"observer_confidence"`
	GodObjectConfidence float64 `json:"god_object_confidence" mapstructure:"god_object_confidence" yaml:"god_object_confidence"`
	AnemicConfidence    float64 `json:"anemic_confidence" mapstructure:"anemic_confidence" yaml:"anemic_confidence"`
	SpaghettiConfidence float64 `json:"spaghetti_confidence" mapstructure:"spaghetti_confidence" yaml:"spaghetti_confidence"`
	CopyPasteConfidence float64 `json:"copy_paste_confidence" mapstructure:"copy_paste_confidence" yaml:"copy_paste_confidence"`

	BuilderChainableMethods int     `json:"builder_chainable_methods" mapstructure:"builder_chainable_methods" yaml:"builder_chainable_methods"`
	FacadeMethods           int     `json:"facade_methods" mapstructure:"facade_methods" yaml:"facade_methods"`
	ObserverMethods         int     `json:"observer_methods" mapstructure:"observer_methods" yaml:"observer_methods"`
	GodObjectMethods        int     `json:"god_object_methods" mapstructure:"god_object_methods" yaml:"god_object_methods"`
	GodObjectLines          int     `json:"god_object_lines" mapstructure:"god_object_lines" yaml:"god_object_lines"`
	AnemicGetterRatio       float64 `json:"anemic_getter_ratio" mapstructure:"anemic_getter_ratio" yaml:"anemic_getter_ratio"`
	SpaghettiNestingDepth   int     `json:"spaghetti_nesting_depth" mapstructure:"spaghetti_nesting_depth" yaml:"spaghetti_nesting_depth"`
	CopyPasteMinLength      int     `json:"copy_paste_min_length" mapstructure:"copy_paste_min_length" yaml:"copy_paste_min_length"`
	CopyPasteOccurrences    int     `json:"copy_paste_occurrences" mapstructure:"copy_paste_occurrences" yaml:"copy_paste_occurrences"`
}

// PrincipleConfig holds configuration for the principle analyzer
type PrincipleConfig struct {
	SRPMaxMethods         int      `json:"srp_max_methods" mapstructure:"srp_max_methods" yaml:"srp_max_methods"`
	SRPMaxConcerns        int      `json:"srp_max_concerns" mapstructure:"srp_max_concerns" yaml:"srp_max_concerns"`
	OCPMaxChainLength     int      `json:"ocp_max_chain_length" mapstructure:"ocp_max_chain_length" yaml:"ocp_max_chain_length"`
	ISPMaxAbstractMethods int      `json:"isp_max_abstract_methods" mapstructure:"isp_max_abstract_methods" yaml:"isp_max_abstract_methods"`
	DIPAllowedCalls       []string `json:"dip_allowed_calls" mapstructure:"dip_allowed_calls" yaml:"dip_allowed_calls"`
	ScoreFloor            float64  `json:"score_floor" mapstructure:"score_floor" yaml:"score_floor"`

	// Weights are deducted from the principle score per violation
	Weights SeverityWeights `json:"weights" mapstructure:"weights" yaml:"weights"`
}

// AnalysisConfig holds file discovery configuration
type AnalysisConfig struct {
	// ExcludePatterns specifies glob patterns of files to skip
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// RespectGitignore skips files matched by the target's .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// PerformanceConfig holds concurrency limits
type PerformanceConfig struct {
	// MaxGoroutines bounds the per-file worker pool
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a whole run; 0 disables the timeout
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultQualityConfig returns the quality analyzer defaults
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		FunctionNamePattern:    DefaultFunctionNamePattern,
		ClassNamePattern:       DefaultClassNamePattern,
		MinFunctionNameLength:  3,
		ShortFunctionNames:     []string{"do", "go", "is", "at", "to"},
		SingleLetterVariables:  []string{"i", "j", "k", "x", "y", "z"},
		LongMethodLines:        DefaultLongMethodLines,
		VeryLongMethodLines:    DefaultVeryLongMethodLines,
		MaxParameters:          DefaultMaxParameters,
		MaxNestingDepth:        DefaultMaxNestingDepth,
		LargeClassMethods:      DefaultLargeClassMethods,
		LargeClassLines:        DefaultLargeClassLines,
		DataClassAssignments:   DefaultDataClassAssignments,
		DataClassMethods:       DefaultDataClassMethods,
		LazyClassMethods:       DefaultLazyClassMethods,
		LazyClassAssignments:   DefaultLazyClassAssignments,
		ComplexityThreshold:    DefaultComplexityThreshold,
		HighComplexity:         DefaultHighComplexityThreshold,
		DuplicateMinLength:     DefaultDuplicateMinLength,
		DuplicateOccurrences:   DefaultDuplicateMinOccurrences,
		CommentCheckMinLines:   DefaultCommentCheckMinLines,
		MinCommentRatio:        DefaultMinCommentRatio,
		MaxCommentRatio:        DefaultMaxCommentRatio,
		CognitiveFactor:        DefaultCognitiveFactor,
		MaintainabilityTarget:  DefaultMaintainabilityTarget,
		ComplexityPenaltyStart: DefaultComplexityPenaltyStart,
		ComplexityPenalty:      DefaultComplexityPenaltyFactor,
		MaintainabilityPenalty: DefaultMaintainabilityPenalty,
		DuplicationPenaltyFrom: DefaultDuplicationPenaltyStart,
		DuplicationPenalty:     DefaultDuplicationPenaltyFactor,
		Weights: SeverityWeights{
			Critical: 10,
			High:     5,
			Medium:   2,
			Low:      1,
		},
	}
}

// DefaultPatternConfig returns the pattern analyzer defaults
func DefaultPatternConfig() PatternConfig {
	return PatternConfig{
		SingletonConfidence:     DefaultSingletonConfidence,
		FactoryConfidence:       DefaultFactoryConfidence,
		BuilderConfidence:       DefaultBuilderConfidence,
		DecoratorConfidence:     DefaultDecoratorConfidence,
		AdapterConfidence:       DefaultAdapterConfidence,
		FacadeConfidence:        DefaultFacadeConfidence,
		StrategyConfidence:      DefaultStrategyConfidence,
		ObserverConfidence:      DefaultObserverConfidence,
		GodObjectConfidence:     DefaultGodObjectConfidence,
		AnemicConfidence:        DefaultAnemicConfidence,
		SpaghettiConfidence:     DefaultSpaghettiConfidence,
		CopyPasteConfidence:     DefaultCopyPasteConfidence,
		BuilderChainableMethods: DefaultBuilderChainableMethods,
		FacadeMethods:           DefaultFacadeMethods,
		ObserverMethods:         DefaultObserverMethods,
		GodObjectMethods:        DefaultGodObjectMethods,
		GodObjectLines:          DefaultGodObjectLines,
		AnemicGetterRatio:       DefaultAnemicGetterRatio,
		SpaghettiNestingDepth:   DefaultSpaghettiNestingDepth,
		CopyPasteMinLength:      DefaultCopyPasteMinLength,
		CopyPasteOccurrences:    DefaultDuplicateMinOccurrences,
	}
}

// DefaultPrincipleConfig returns the principle analyzer defaults
func DefaultPrincipleConfig() PrincipleConfig {
	return PrincipleConfig{
		SRPMaxMethods:         DefaultSRPMaxMethods,
		SRPMaxConcerns:        DefaultSRPMaxConcerns,
		OCPMaxChainLength:     DefaultOCPMaxChainLength,
		ISPMaxAbstractMethods: DefaultISPMaxAbstractMethods,
		DIPAllowedCalls:       []string{"Exception", "ValueError", "TypeError"},
		ScoreFloor:            DefaultPrincipleScoreFloor,
		Weights: SeverityWeights{
			Critical: 3,
			High:     2,
			Medium:   1,
			Low:      0.5,
		},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Quality:    DefaultQualityConfig(),
		Patterns:   DefaultPatternConfig(),
		Principles: DefaultPrincipleConfig(),
		Analysis: AnalysisConfig{
			ExcludePatterns:  []string{},
			RespectGitignore: false,
		},
		Output: OutputConfig{
			Format: string(domain.OutputFormatText),
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  constants.DefaultMaxGoroutines,
			TimeoutSeconds: constants.DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context. When
// configPath is empty a config file is discovered starting at targetPath.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for configuration files from the target upward,
// then in the working directory and the user config directories
func findDefaultConfig(targetPath string) string {
	candidates := constants.ConfigFileCandidates

	if targetPath != "" {
		if absPath, err := filepath.Abs(targetPath); err == nil {
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if err := c.Quality.validate(); err != nil {
		return err
	}
	if err := c.Patterns.validate(); err != nil {
		return err
	}
	if err := c.Principles.validate(); err != nil {
		return err
	}

	validFormats := map[string]bool{
		string(domain.OutputFormatText): true,
		string(domain.OutputFormatJSON): true,
		string(domain.OutputFormatYAML): true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}

	for _, pattern := range c.Analysis.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid analysis.exclude_patterns entry '%s': %w", pattern, err)
		}
	}

	if c.Performance.MaxGoroutines < 1 {
		return fmt.Errorf("performance.max_goroutines must be >= 1, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

func (q *QualityConfig) validate() error {
	if _, err := regexp.Compile(q.FunctionNamePattern); err != nil {
		return fmt.Errorf("quality.function_name_pattern is not a valid regular expression: %w", err)
	}
	if _, err := regexp.Compile(q.ClassNamePattern); err != nil {
		return fmt.Errorf("quality.class_name_pattern is not a valid regular expression: %w", err)
	}

	nonNegative := map[string]int{
		"quality.min_function_name_length": q.MinFunctionNameLength,
		"quality.long_method_lines":        q.LongMethodLines,
		"quality.max_parameters":           q.MaxParameters,
		"quality.max_nesting_depth":        q.MaxNestingDepth,
		"quality.large_class_methods":      q.LargeClassMethods,
		"quality.large_class_lines":        q.LargeClassLines,
		"quality.complexity_threshold":     q.ComplexityThreshold,
		"quality.duplicate_min_length":     q.DuplicateMinLength,
		"quality.comment_check_min_lines":  q.CommentCheckMinLines,
	}
	for name, value := range nonNegative {
		if value < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", name, value)
		}
	}

	if q.VeryLongMethodLines < q.LongMethodLines {
		return fmt.Errorf("quality.very_long_method_lines (%d) must be >= long_method_lines (%d)",
			q.VeryLongMethodLines, q.LongMethodLines)
	}
	if q.HighComplexity < q.ComplexityThreshold {
		return fmt.Errorf("quality.high_complexity (%d) must be >= complexity_threshold (%d)",
			q.HighComplexity, q.ComplexityThreshold)
	}
	if q.DuplicateOccurrences < 2 {
		return fmt.Errorf("quality.duplicate_occurrences must be >= 2, got %d", q.DuplicateOccurrences)
	}
	if q.MinCommentRatio < 0 || q.MaxCommentRatio > 1 || q.MinCommentRatio > q.MaxCommentRatio {
		return fmt.Errorf("quality comment ratios must satisfy 0 <= min (%.2f) <= max (%.2f) <= 1",
			q.MinCommentRatio, q.MaxCommentRatio)
	}
	return q.Weights.validate("quality.weights")
}

func (p *PatternConfig) validate() error {
	confidences := map[string]float64{
		"patterns.singleton_confidence":  p.SingletonConfidence,
		"patterns.factory_confidence":    p.FactoryConfidence,
		"patterns.builder_confidence":    p.BuilderConfidence,
		"patterns.decorator_confidence":  p.DecoratorConfidence,
		"patterns.adapter_confidence":    p.AdapterConfidence,
		"patterns.facade_confidence":     p.FacadeConfidence,
		"patterns.strategy_confidence":   p.StrategyConfidence,
		"patterns.observer_confidence":   p.ObserverConfidence,
		"patterns.god_object_confidence": p.GodObjectConfidence,
		"patterns.anemic_confidence":     p.AnemicConfidence,
		"patterns.spaghetti_confidence":  p.SpaghettiConfidence,
		"patterns.copy_paste_confidence": p.CopyPasteConfidence,
	}
	for name, value := range confidences {
		if value <= 0 || value > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %.2f", name, value)
		}
	}
	if p.AnemicGetterRatio < 0 || p.AnemicGetterRatio > 1 {
		return fmt.Errorf("patterns.anemic_getter_ratio must be between 0 and 1, got %.2f", p.AnemicGetterRatio)
	}
	if p.CopyPasteOccurrences < 2 {
		return fmt.Errorf("patterns.copy_paste_occurrences must be >= 2, got %d", p.CopyPasteOccurrences)
	}
	return nil
}

func (p *PrincipleConfig) validate() error {
	if p.ScoreFloor < 1 || p.ScoreFloor > domain.MaxPrincipleScore {
		return fmt.Errorf("principles.score_floor must be between 1 and %.0f, got %.2f",
			domain.MaxPrincipleScore, p.ScoreFloor)
	}
	if p.SRPMaxMethods < 0 || p.SRPMaxConcerns < 0 || p.OCPMaxChainLength < 0 || p.ISPMaxAbstractMethods < 0 {
		return fmt.Errorf("principles thresholds must be >= 0")
	}
	return p.Weights.validate("principles.weights")
}

func (w SeverityWeights) validate(prefix string) error {
	if w.Critical < 0 || w.High < 0 || w.Medium < 0 || w.Low < 0 {
		return fmt.Errorf("%s must be >= 0", prefix)
	}
	return nil
}

// HasTimeout reports whether a run timeout is configured
func (p PerformanceConfig) HasTimeout() bool {
	return p.TimeoutSeconds > 0
}
