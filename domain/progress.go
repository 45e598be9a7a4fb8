package domain

import "context"

// ProgressManager reports move-engine progress to the user. It is
// implemented both by an interactive, progressbar-backed reporter and
// by a no-op for non-interactive/CI runs (service/progress_manager.go).
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks one unit of work, such as the workspace-wide
// scan performed for a single move.
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is one unit of parallel work submitted to a
// ParallelExecutor, such as the substring pre-filter scan of one file.
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (any, error)
	IsEnabled() bool
}

// ParallelExecutor runs a batch of ExecutableTasks with bounded
// concurrency, aggregating their failures (service/parallel_executor.go).
// The move engine uses it for the workspace-wide substring pre-filter,
// which spec.md §5 allows to run in parallel as long as it completes
// before the rewriter (strictly serial) touches any file.
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}
