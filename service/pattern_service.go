package service

import (
	"context"
	"log/slog"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/analyzer"
	"github.com/ludo-technologies/pyreview/internal/config"
)

// PatternServiceImpl implements domain.PatternService
type PatternServiceImpl struct {
	analyzer *analyzer.PatternAnalyzer
	perf     config.PerformanceConfig
	progress domain.ProgressManager
	logger   *slog.Logger
}

// NewPatternService creates a new pattern service
func NewPatternService(cfg *config.Config, logger *slog.Logger) *PatternServiceImpl {
	return NewPatternServiceWithProgress(cfg, logger, nil)
}

// NewPatternServiceWithProgress creates a new pattern service with progress tracking
func NewPatternServiceWithProgress(cfg *config.Config, logger *slog.Logger, pm domain.ProgressManager) *PatternServiceImpl {
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	return &PatternServiceImpl{
		analyzer: analyzer.NewPatternAnalyzer(cfg.Patterns),
		perf:     cfg.Performance,
		progress: pm,
		logger:   loggerOrDiscard(logger).With(slog.String("analyzer", string(domain.AnalyzerPatterns))),
	}
}

// Analyze detects patterns and anti-patterns in every file
func (s *PatternServiceImpl) Analyze(ctx context.Context, req domain.ReviewRequest) (*domain.PatternResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	pass, err := runFilePass(ctx, req, s.perf, s.progress, s.logger,
		"Detecting design patterns",
		s.analyzer.AnalyzeFile)
	if err != nil {
		return nil, err
	}

	response := &domain.PatternResponse{
		Detections:    []domain.PatternDetection{},
		FilesAnalyzed: len(pass.Results),
		Errors:        pass.Errors,
	}
	for _, detections := range pass.Results {
		response.Detections = append(response.Detections, detections...)
	}

	s.logger.Debug("pattern analysis complete",
		slog.Int("files", response.FilesAnalyzed),
		slog.Int("detections", len(response.Detections)))

	return response, nil
}
