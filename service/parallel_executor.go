package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
)

// DefaultMaxConcurrency is used when the configured limit is not positive
const DefaultMaxConcurrency = 4

// TaskError represents a single task failure
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all task failures in task order
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d analyzers failed:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ParallelExecutorImpl runs the selected analyzers concurrently
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
}

// NewParallelExecutor creates a parallel executor from the performance
// configuration. A zero timeout runs without a deadline.
func NewParallelExecutor(cfg config.PerformanceConfig) *ParallelExecutorImpl {
	maxConcurrency := cfg.MaxGoroutines
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}

	var timeout time.Duration
	if cfg.HasTimeout() {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &ParallelExecutorImpl{
		maxConcurrency: maxConcurrency,
		timeout:        timeout,
	}
}

// NewParallelExecutorWithProgress creates a parallel executor with progress tracking
func NewParallelExecutorWithProgress(cfg config.PerformanceConfig, pm domain.ProgressManager) *ParallelExecutorImpl {
	executor := NewParallelExecutor(cfg)
	executor.progress = pm
	return executor
}

// Execute runs the enabled tasks and waits for all of them. A failing task
// does not cancel the others; every failure is returned in an
// AggregatedError ordered like tasks.
func (e *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	enabledTasks := filterEnabledTasks(tasks)
	if len(enabledTasks) == 0 {
		return nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if e.progress != nil {
		task = e.progress.StartTask("Running analyzers", len(enabledTasks))
	}
	defer task.Complete()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrency)

	failures := make([]error, len(enabledTasks))
	for i, t := range enabledTasks {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				failures[i] = gCtx.Err()
				return nil
			default:
			}

			_, err := t.Execute(gCtx)
			task.Increment(1)
			failures[i] = err
			return nil
		})
	}
	_ = g.Wait()

	var taskErrors []TaskError
	for i, err := range failures {
		if err != nil {
			taskErrors = append(taskErrors, TaskError{TaskName: enabledTasks[i].Name(), Err: err})
		}
	}
	if len(taskErrors) > 0 {
		return &AggregatedError{Errors: taskErrors}
	}
	return nil
}

// filterEnabledTasks returns only tasks where IsEnabled() returns true
func filterEnabledTasks(tasks []domain.ExecutableTask) []domain.ExecutableTask {
	enabled := make([]domain.ExecutableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	return enabled
}
