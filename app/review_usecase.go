package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ludo-technologies/pyreview/domain"
)

// ReviewConfig holds configuration for the review use case
type ReviewConfig struct {
	// Analyzers selects which analyzers run; empty means all of them
	Analyzers []domain.AnalyzerKind
}

// DefaultReviewConfig returns a configuration that runs every analyzer
func DefaultReviewConfig() ReviewConfig {
	return ReviewConfig{Analyzers: append([]domain.AnalyzerKind(nil), domain.AllAnalyzers...)}
}

// Enabled reports whether kind is selected
func (c ReviewConfig) Enabled(kind domain.AnalyzerKind) bool {
	if len(c.Analyzers) == 0 {
		return true
	}
	for _, k := range c.Analyzers {
		if k == kind {
			return true
		}
	}
	return false
}

// ReviewUseCase resolves the target once and runs the selected analyzers
// over the same file list
type ReviewUseCase struct {
	collector  domain.FileCollector
	quality    domain.QualityService
	patterns   domain.PatternService
	principles domain.PrincipleService
	executor   domain.ParallelExecutor
	logger     *slog.Logger
}

// Execute reviews path. A rejected path fails the whole run; per-file
// failures are reported inside each analyzer's response.
func (uc *ReviewUseCase) Execute(ctx context.Context, config ReviewConfig, path string) (*domain.ReviewResult, error) {
	startTime := time.Now()

	set, err := uc.collector.Collect(path)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("starting review",
		slog.String("path", path),
		slog.Int("files", len(set.Files)),
		slog.Int("skipped", len(set.Skipped)))

	result := &domain.ReviewResult{Path: path, Files: len(set.Files)}
	req := domain.ReviewRequest{Path: path, Files: set.Files, Skipped: set.Skipped, Reader: uc.collector}

	tasks := []domain.ExecutableTask{
		&analyzerTask{
			kind:    domain.AnalyzerQuality,
			enabled: config.Enabled(domain.AnalyzerQuality) && uc.quality != nil,
			run: func(ctx context.Context) (interface{}, error) {
				resp, err := uc.quality.Analyze(ctx, req)
				result.Quality = resp
				return resp, err
			},
		},
		&analyzerTask{
			kind:    domain.AnalyzerPatterns,
			enabled: config.Enabled(domain.AnalyzerPatterns) && uc.patterns != nil,
			run: func(ctx context.Context) (interface{}, error) {
				resp, err := uc.patterns.Analyze(ctx, req)
				result.Patterns = resp
				return resp, err
			},
		},
		&analyzerTask{
			kind:    domain.AnalyzerPrinciples,
			enabled: config.Enabled(domain.AnalyzerPrinciples) && uc.principles != nil,
			run: func(ctx context.Context) (interface{}, error) {
				resp, err := uc.principles.Analyze(ctx, req)
				result.Principles = resp
				return resp, err
			},
		},
	}

	if err := uc.executor.Execute(ctx, tasks); err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("review of %s failed", path), err)
	}

	result.Duration = time.Since(startTime)
	uc.logger.Info("review complete", slog.String("path", path), slog.Duration("duration", result.Duration))
	return result, nil
}

// analyzerTask adapts one analyzer run to domain.ExecutableTask. Each task
// writes a different field of the shared result.
type analyzerTask struct {
	kind    domain.AnalyzerKind
	enabled bool
	run     func(ctx context.Context) (interface{}, error)
}

func (t *analyzerTask) Name() string {
	return string(t.kind)
}

func (t *analyzerTask) Execute(ctx context.Context) (interface{}, error) {
	return t.run(ctx)
}

func (t *analyzerTask) IsEnabled() bool {
	return t.enabled
}

// sequentialExecutor runs tasks one after another and stops at the first
// failure
type sequentialExecutor struct{}

func (sequentialExecutor) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	for _, t := range tasks {
		if !t.IsEnabled() {
			continue
		}
		if _, err := t.Execute(ctx); err != nil {
			return fmt.Errorf("[%s] %w", t.Name(), err)
		}
	}
	return nil
}

// ReviewUseCaseBuilder builds a ReviewUseCase
type ReviewUseCaseBuilder struct {
	collector  domain.FileCollector
	quality    domain.QualityService
	patterns   domain.PatternService
	principles domain.PrincipleService
	executor   domain.ParallelExecutor
	logger     *slog.Logger
}

// NewReviewUseCaseBuilder creates a new builder
func NewReviewUseCaseBuilder() *ReviewUseCaseBuilder {
	return &ReviewUseCaseBuilder{}
}

// WithFileCollector sets the shared file discovery
func (b *ReviewUseCaseBuilder) WithFileCollector(c domain.FileCollector) *ReviewUseCaseBuilder {
	b.collector = c
	return b
}

// WithQualityService sets the quality service
func (b *ReviewUseCaseBuilder) WithQualityService(s domain.QualityService) *ReviewUseCaseBuilder {
	b.quality = s
	return b
}

// WithPatternService sets the pattern service
func (b *ReviewUseCaseBuilder) WithPatternService(s domain.PatternService) *ReviewUseCaseBuilder {
	b.patterns = s
	return b
}

// WithPrincipleService sets the principle service
func (b *ReviewUseCaseBuilder) WithPrincipleService(s domain.PrincipleService) *ReviewUseCaseBuilder {
	b.principles = s
	return b
}

// WithExecutor sets the executor used to run the analyzers
func (b *ReviewUseCaseBuilder) WithExecutor(e domain.ParallelExecutor) *ReviewUseCaseBuilder {
	b.executor = e
	return b
}

// WithLogger sets the logger
func (b *ReviewUseCaseBuilder) WithLogger(l *slog.Logger) *ReviewUseCaseBuilder {
	b.logger = l
	return b
}

// Build creates the ReviewUseCase. Without a file collector a default
// FileHelper is used; without an executor analyzers run sequentially.
func (b *ReviewUseCaseBuilder) Build() (*ReviewUseCase, error) {
	if b.quality == nil && b.patterns == nil && b.principles == nil {
		return nil, domain.NewInvalidInputError("at least one analyzer service is required", nil)
	}

	uc := &ReviewUseCase{
		collector:  b.collector,
		quality:    b.quality,
		patterns:   b.patterns,
		principles: b.principles,
		executor:   b.executor,
		logger:     b.logger,
	}
	if uc.collector == nil {
		uc.collector = NewFileHelper()
	}
	if uc.executor == nil {
		uc.executor = sequentialExecutor{}
	}
	if uc.logger == nil {
		uc.logger = slog.New(slog.DiscardHandler)
	}
	return uc, nil
}
