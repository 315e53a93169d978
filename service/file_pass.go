package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/parser"
)

// filePassResult holds the per-file results of a pass in file order. Files
// that failed to read or parse are missing from Results and listed in Errors.
type filePassResult[T any] struct {
	Results []T
	Errors  []string
}

// fileSlot is the output of one worker. Each worker owns its slot, so no
// locking is needed while the pool runs.
type fileSlot[T any] struct {
	value T
	err   error
	done  bool
}

// runFilePass reads, parses and analyzes every file of req on a bounded
// worker pool. Per-file read and parse failures are logged and skipped after
// the discovery skips of req; context cancellation or any other failure
// aborts the pass.
func runFilePass[T any](
	ctx context.Context,
	req domain.ReviewRequest,
	perf config.PerformanceConfig,
	progress domain.ProgressManager,
	logger *slog.Logger,
	description string,
	analyze func(*parser.Node, *domain.SourceFile) T,
) (*filePassResult[T], error) {
	if progress == nil {
		progress = &NoOpProgressManager{}
	}
	files := req.Files
	task := progress.StartTask(description, len(files))
	defer task.Complete()

	limit := perf.MaxGoroutines
	if limit <= 0 {
		limit = DefaultMaxConcurrency
	}

	slots := make([]fileSlot[T], len(files))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			value, err := analyzeFile(req.Reader, path, analyze)
			slots[i] = fileSlot[T]{value: value, err: err, done: true}
			task.Increment(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &filePassResult[T]{Results: make([]T, 0, len(files))}
	result.Errors = append(result.Errors, req.Skipped...)
	for i, slot := range slots {
		if !slot.done {
			continue
		}
		if slot.err != nil {
			if !domain.IsFileSkipError(slot.err) {
				return nil, slot.err
			}
			logger.Warn("skipping file", slog.String("file", files[i]), slog.Any("error", slot.err))
			result.Errors = append(result.Errors, slot.err.Error())
			continue
		}
		result.Results = append(result.Results, slot.value)
	}
	return result, nil
}

func analyzeFile[T any](reader domain.SourceReader, path string, analyze func(*parser.Node, *domain.SourceFile) T) (T, error) {
	var zero T

	src, err := reader.ReadSource(path)
	if err != nil {
		return zero, err
	}

	ast, err := parser.ParseSource(path, []byte(src.Content))
	if err != nil {
		return zero, domain.NewParseError(path, err)
	}

	return analyze(ast, src), nil
}

// loggerOrDiscard returns a logger that drops records when l is nil
func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

func validateRequest(req domain.ReviewRequest) error {
	if len(req.Files) == 0 {
		return domain.NewInvalidInputError("no files to analyze in "+req.Path, nil)
	}
	if req.Reader == nil {
		return domain.NewInvalidInputError("no source reader for "+req.Path, nil)
	}
	return nil
}
