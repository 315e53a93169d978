package service

import (
	"context"
	"log/slog"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/analyzer"
	"github.com/ludo-technologies/pyreview/internal/config"
)

// PrincipleServiceImpl implements domain.PrincipleService
type PrincipleServiceImpl struct {
	analyzer *analyzer.PrincipleAnalyzer
	perf     config.PerformanceConfig
	progress domain.ProgressManager
	logger   *slog.Logger
}

// NewPrincipleService creates a new principle service
func NewPrincipleService(cfg *config.Config, logger *slog.Logger) *PrincipleServiceImpl {
	return NewPrincipleServiceWithProgress(cfg, logger, nil)
}

// NewPrincipleServiceWithProgress creates a new principle service with progress tracking
func NewPrincipleServiceWithProgress(cfg *config.Config, logger *slog.Logger, pm domain.ProgressManager) *PrincipleServiceImpl {
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	return &PrincipleServiceImpl{
		analyzer: analyzer.NewPrincipleAnalyzer(cfg.Principles),
		perf:     cfg.Performance,
		progress: pm,
		logger:   loggerOrDiscard(logger).With(slog.String("analyzer", string(domain.AnalyzerPrinciples))),
	}
}

// Analyze collects principle violations from every file and scores them
func (s *PrincipleServiceImpl) Analyze(ctx context.Context, req domain.ReviewRequest) (*domain.PrincipleResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	pass, err := runFilePass(ctx, req, s.perf, s.progress, s.logger,
		"Checking design principles",
		s.analyzer.AnalyzeFile)
	if err != nil {
		return nil, err
	}

	response := &domain.PrincipleResponse{
		Violations:    []domain.PrincipleViolation{},
		FilesAnalyzed: len(pass.Results),
		Errors:        pass.Errors,
	}
	for _, violations := range pass.Results {
		response.Violations = append(response.Violations, violations...)
	}
	response.Scores = s.analyzer.Score(response.Violations)
	response.OverallScore = response.Scores.Overall()

	s.logger.Debug("principle analysis complete",
		slog.Int("files", response.FilesAnalyzed),
		slog.Int("violations", len(response.Violations)),
		slog.Float64("overall", response.OverallScore))

	return response, nil
}
