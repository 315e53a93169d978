package service

import (
	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
)

// ConfigOverrides holds command line values that take precedence over the
// configuration file. Zero values leave the file's setting untouched.
type ConfigOverrides struct {
	OutputFormat     string
	MaxGoroutines    int
	ExcludePatterns  []string
	RespectGitignore bool
}

// ConfigurationLoaderImpl loads and merges pyreview configuration
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// Load reads configPath, or the first config file discovered from
// targetPath upward when configPath is empty. Without any config file the
// defaults are returned.
func (c *ConfigurationLoaderImpl) Load(configPath, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// Merge returns a copy of base with the overrides applied and validates it
func (c *ConfigurationLoaderImpl) Merge(base *config.Config, overrides ConfigOverrides) (*config.Config, error) {
	merged := *base

	if overrides.OutputFormat != "" {
		merged.Output.Format = overrides.OutputFormat
	}
	if overrides.MaxGoroutines > 0 {
		merged.Performance.MaxGoroutines = overrides.MaxGoroutines
	}
	if len(overrides.ExcludePatterns) > 0 {
		patterns := make([]string, 0, len(base.Analysis.ExcludePatterns)+len(overrides.ExcludePatterns))
		patterns = append(patterns, base.Analysis.ExcludePatterns...)
		merged.Analysis.ExcludePatterns = append(patterns, overrides.ExcludePatterns...)
	}
	if overrides.RespectGitignore {
		merged.Analysis.RespectGitignore = true
	}

	if err := merged.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return &merged, nil
}
