package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigurationLoader_LoadExplicitFile(t *testing.T) {
	path := writeConfig(t, ".pyreview.yaml", `
quality:
  long_method_lines: 30
  very_long_method_lines: 60
output:
  format: json
`)

	cfg, err := NewConfigurationLoader().Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Quality.LongMethodLines)
	assert.Equal(t, 60, cfg.Quality.VeryLongMethodLines)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, config.DefaultMaxParameters, cfg.Quality.MaxParameters, "unset values keep defaults")
}

func TestConfigurationLoader_DiscoversFromTarget(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyreview.yaml"), []byte("principles:\n  srp_max_methods: 4\n"), 0o644))
	target := filepath.Join(dir, "pkg")
	require.NoError(t, os.MkdirAll(target, 0o755))

	cfg, err := NewConfigurationLoader().Load("", target)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Principles.SRPMaxMethods)
}

func TestConfigurationLoader_Errors(t *testing.T) {
	loader := NewConfigurationLoader()

	_, err := loader.Load("/nonexistent/pyreview.yaml", "")
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))

	invalid := writeConfig(t, "pyreview.yaml", "output:\n  format: html\n")
	_, err = loader.Load(invalid, "")
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
}

func TestConfigurationLoader_Merge(t *testing.T) {
	loader := NewConfigurationLoader()
	base := config.DefaultConfig()
	base.Analysis.ExcludePatterns = []string{"build"}

	merged, err := loader.Merge(base, ConfigOverrides{
		OutputFormat:     "yaml",
		MaxGoroutines:    2,
		ExcludePatterns:  []string{"*_test.py"},
		RespectGitignore: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "yaml", merged.Output.Format)
	assert.Equal(t, 2, merged.Performance.MaxGoroutines)
	assert.Equal(t, []string{"build", "*_test.py"}, merged.Analysis.ExcludePatterns)
	assert.True(t, merged.Analysis.RespectGitignore)

	assert.Equal(t, "text", base.Output.Format, "base is not modified")
	assert.Equal(t, []string{"build"}, base.Analysis.ExcludePatterns)
}

func TestConfigurationLoader_MergeRejectsInvalid(t *testing.T) {
	_, err := NewConfigurationLoader().Merge(config.DefaultConfig(), ConfigOverrides{OutputFormat: "xml"})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
}
