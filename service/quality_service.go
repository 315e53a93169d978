package service

import (
	"context"
	"log/slog"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/analyzer"
	"github.com/ludo-technologies/pyreview/internal/config"
)

// QualityServiceImpl implements domain.QualityService
type QualityServiceImpl struct {
	analyzer *analyzer.QualityAnalyzer
	perf     config.PerformanceConfig
	progress domain.ProgressManager
	logger   *slog.Logger
}

// NewQualityService creates a new quality service. An invalid naming pattern
// in cfg is reported as a configuration error.
func NewQualityService(cfg *config.Config, logger *slog.Logger) (*QualityServiceImpl, error) {
	return NewQualityServiceWithProgress(cfg, logger, nil)
}

// NewQualityServiceWithProgress creates a new quality service with progress tracking
func NewQualityServiceWithProgress(cfg *config.Config, logger *slog.Logger, pm domain.ProgressManager) (*QualityServiceImpl, error) {
	qa, err := analyzer.NewQualityAnalyzer(cfg.Quality)
	if err != nil {
		return nil, err
	}
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	return &QualityServiceImpl{
		analyzer: qa,
		perf:     cfg.Performance,
		progress: pm,
		logger:   loggerOrDiscard(logger).With(slog.String("analyzer", string(domain.AnalyzerQuality))),
	}, nil
}

// Analyze collects smells from every file, averages the complexity-like
// metrics over the files that were analyzed and scores the result
func (s *QualityServiceImpl) Analyze(ctx context.Context, req domain.ReviewRequest) (*domain.QualityResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	pass, err := runFilePass(ctx, req, s.perf, s.progress, s.logger,
		"Analyzing code quality",
		s.analyzer.AnalyzeFile)
	if err != nil {
		return nil, err
	}

	response := &domain.QualityResponse{
		Smells:        []domain.CodeSmell{},
		FilesAnalyzed: len(pass.Results),
		Errors:        pass.Errors,
	}
	for _, file := range pass.Results {
		response.Smells = append(response.Smells, file.Smells...)
		response.Metrics.Merge(file.Metrics)
	}
	response.Metrics.Average(response.FilesAnalyzed)
	response.Score = s.analyzer.Score(response.Smells, response.Metrics)

	s.logger.Debug("quality analysis complete",
		slog.Int("files", response.FilesAnalyzed),
		slog.Int("smells", len(response.Smells)),
		slog.Float64("score", response.Score))

	return response, nil
}
