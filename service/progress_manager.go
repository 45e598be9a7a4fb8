package service

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/dariusokafor/wsmove/domain"
)

// IsInteractiveEnvironment reports whether stderr is a terminal, so the
// progress manager knows whether drawing a bar makes sense.
func IsInteractiveEnvironment() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// ProgressManagerImpl implements domain.ProgressManager with an
// interactive progress bar per task.
type ProgressManagerImpl struct {
	writer io.Writer
	tasks  []*progressbar.ProgressBar
}

// NewProgressManager creates a progress manager appropriate for the
// current environment: a real bar when enabled and stderr is a
// terminal, a no-op otherwise (disabled, CI, piped output).
func NewProgressManager(enabled bool) domain.ProgressManager {
	if enabled && IsInteractiveEnvironment() {
		return &ProgressManagerImpl{
			writer: os.Stderr,
			tasks:  make([]*progressbar.ProgressBar, 0),
		}
	}
	return &NoOpProgressManager{}
}

// StartTask creates a new progress task with a description and total count.
func (pm *ProgressManagerImpl) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
	)
	pm.tasks = append(pm.tasks, bar)
	return &TaskProgressImpl{bar: bar}
}

// IsInteractive returns true.
func (pm *ProgressManagerImpl) IsInteractive() bool {
	return true
}

// Close finishes every task's bar.
func (pm *ProgressManagerImpl) Close() {
	for _, bar := range pm.tasks {
		_ = bar.Finish()
	}
	pm.tasks = nil
}

// TaskProgressImpl implements domain.TaskProgress with a progress bar.
type TaskProgressImpl struct {
	bar *progressbar.ProgressBar
}

// Increment adds n to the current progress.
func (tp *TaskProgressImpl) Increment(n int) {
	_ = tp.bar.Add(n)
}

// Describe updates the current item description.
func (tp *TaskProgressImpl) Describe(description string) {
	tp.bar.Describe(description)
}

// Complete marks the task as finished.
func (tp *TaskProgressImpl) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager implements domain.ProgressManager with no-op methods.
type NoOpProgressManager struct{}

// StartTask returns a no-op task progress.
func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

// IsInteractive returns false.
func (pm *NoOpProgressManager) IsInteractive() bool {
	return false
}

// Close is a no-op.
func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress implements domain.TaskProgress with no-op methods.
type NoOpTaskProgress struct{}

// Increment is a no-op.
func (tp *NoOpTaskProgress) Increment(_ int) {}

// Describe is a no-op.
func (tp *NoOpTaskProgress) Describe(_ string) {}

// Complete is a no-op.
func (tp *NoOpTaskProgress) Complete() {}
