package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sajari/fuzzy"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pyreview/app"
	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/service"
)

type analyzeOptions struct {
	selectAnalyzers  []string
	outputFormat     string
	outputPath       string
	configPath       string
	excludePatterns  []string
	respectGitignore bool
	maxGoroutines    int
	verbose          bool
	noProgress       bool
}

func analyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze PATH",
		Short: "Review a Python file or directory",
		Long: `Review a Python file or directory with the selected analyzers.

Examples:
  pyreview analyze src/
  pyreview analyze --select quality app.py
  pyreview analyze --select patterns,principles --format json src/
  pyreview analyze --format yaml --output review.yaml src/
  pyreview analyze --exclude "tests/*" --respect-gitignore src/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringSliceVarP(&opts.selectAnalyzers, "select", "s", analyzerNames(),
		"Analyzers to run (comma-separated): quality,patterns,principles")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", "",
		"Output format: text, json, yaml (default from config, text)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringSliceVarP(&opts.excludePatterns, "exclude", "e", nil,
		"Glob patterns to skip, added to the config's exclude_patterns")
	cmd.Flags().BoolVar(&opts.respectGitignore, "respect-gitignore", false,
		"Skip files ignored by the target's .gitignore")
	cmd.Flags().IntVar(&opts.maxGoroutines, "max-goroutines", 0,
		"Maximum files analyzed concurrently (default from config)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false,
		"Disable progress bars")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, path string) error {
	selected, err := parseAnalyzers(opts.selectAnalyzers)
	if err != nil {
		return err
	}

	loader := service.NewConfigurationLoader()
	base, err := loader.Load(opts.configPath, path)
	if err != nil {
		return err
	}
	cfg, err := loader.Merge(base, service.ConfigOverrides{
		OutputFormat:     opts.outputFormat,
		MaxGoroutines:    opts.maxGoroutines,
		ExcludePatterns:  opts.excludePatterns,
		RespectGitignore: opts.respectGitignore,
	})
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	pm := service.NewProgressManager(!opts.noProgress)
	defer pm.Close()

	useCase, err := buildReviewUseCase(cfg, logger, pm)
	if err != nil {
		return err
	}

	result, err := useCase.Execute(cmd.Context(), app.ReviewConfig{Analyzers: selected}, path)
	if err != nil {
		return err
	}
	printSkippedFiles(cmd.ErrOrStderr(), result)

	return writeResult(cmd, result, domain.OutputFormat(cfg.Output.Format), opts.outputPath)
}

// buildReviewUseCase wires the three analyzer services with cfg
func buildReviewUseCase(cfg *config.Config, l *slog.Logger, pm domain.ProgressManager) (*app.ReviewUseCase, error) {
	quality, err := service.NewQualityServiceWithProgress(cfg, l, pm)
	if err != nil {
		return nil, err
	}

	collector := app.NewFileHelper(
		app.WithExcludePatterns(cfg.Analysis.ExcludePatterns),
		app.WithGitignore(cfg.Analysis.RespectGitignore),
		app.WithLogger(l),
	)

	return app.NewReviewUseCaseBuilder().
		WithFileCollector(collector).
		WithQualityService(quality).
		WithPatternService(service.NewPatternServiceWithProgress(cfg, l, pm)).
		WithPrincipleService(service.NewPrincipleServiceWithProgress(cfg, l, pm)).
		WithExecutor(service.NewParallelExecutor(cfg.Performance)).
		WithLogger(l).
		Build()
}

func writeResult(cmd *cobra.Command, result *domain.ReviewResult, format domain.OutputFormat, outputPath string) error {
	formatter := service.NewOutputFormatter()
	if outputPath == "" {
		return formatter.Write(result, format, cmd.OutOrStdout())
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return domain.NewOutputError("failed to create output file", err)
	}
	defer file.Close()

	if err := formatter.Write(result, format, file); err != nil {
		return err
	}

	displayPath := outputPath
	if absPath, err := filepath.Abs(outputPath); err == nil {
		displayPath = absPath
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.GreenString("Report written to"), displayPath)
	return nil
}

// printSkippedFiles warns about directories and files that could not be
// read or parsed
func printSkippedFiles(w io.Writer, result *domain.ReviewResult) {
	var errs []string
	if result.Quality != nil {
		errs = append(errs, result.Quality.Errors...)
	}
	if result.Patterns != nil {
		errs = append(errs, result.Patterns.Errors...)
	}
	if result.Principles != nil {
		errs = append(errs, result.Principles.Errors...)
	}

	seen := make(map[string]bool, len(errs))
	for _, e := range errs {
		if seen[e] {
			continue
		}
		seen[e] = true
		fmt.Fprintf(w, "%s %s\n", color.YellowString("Warning:"), e)
	}
}

func analyzerNames() []string {
	names := make([]string, 0, len(domain.AllAnalyzers))
	for _, k := range domain.AllAnalyzers {
		names = append(names, string(k))
	}
	return names
}

// parseAnalyzers validates --select values. Unknown names are reported
// with the closest known analyzer when one is near enough.
func parseAnalyzers(values []string) ([]domain.AnalyzerKind, error) {
	known := make(map[string]bool, len(domain.AllAnalyzers))
	for _, name := range analyzerNames() {
		known[name] = true
	}

	var selected []domain.AnalyzerKind
	for _, v := range values {
		name := strings.ToLower(strings.TrimSpace(v))
		if name == "" {
			continue
		}
		if !known[name] {
			return nil, unknownAnalyzerError(name)
		}
		selected = append(selected, domain.AnalyzerKind(name))
	}
	if len(selected) == 0 {
		return nil, domain.NewInvalidInputError("no analyzers selected", nil)
	}
	return selected, nil
}

func unknownAnalyzerError(name string) error {
	msg := fmt.Sprintf("unknown analyzer %q (available: %s)", name, strings.Join(analyzerNames(), ", "))
	if suggestion := suggestAnalyzer(name); suggestion != "" {
		msg = fmt.Sprintf("unknown analyzer %q, did you mean %q?", name, suggestion)
	}
	return domain.NewInvalidInputError(msg, nil)
}

func suggestAnalyzer(name string) string {
	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	model.SetUseAutocomplete(true)
	model.Train(analyzerNames())
	return model.SpellCheck(name)
}
