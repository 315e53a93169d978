package service

import (
	"bytes"
	"testing"

	"github.com/ludo-technologies/pyreview/domain"
)

func TestNewProgressManager_Disabled(t *testing.T) {
	pm := NewProgressManager(false)
	if pm.IsInteractive() {
		t.Error("expected non-interactive progress manager when disabled")
	}
	var _ domain.ProgressManager = pm
}

func TestNoOpProgressManager(t *testing.T) {
	pm := &NoOpProgressManager{}

	if pm.IsInteractive() {
		t.Error("expected NoOpProgressManager.IsInteractive() to return false")
	}

	task := pm.StartTask("test", 100)
	if task == nil {
		t.Fatal("expected non-nil task from StartTask")
	}
	task.Increment(10)
	task.Describe("testing")
	task.Complete()
	pm.Close()
}

func TestProgressManagerWithWriter_DrawsBars(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManagerWithWriter(&buf)

	if !pm.IsInteractive() {
		t.Error("writer-backed progress manager should be interactive")
	}

	task := pm.StartTask("Analyzing code quality", 2)
	task.Increment(1)
	task.Describe("Analyzing code quality")
	task.Increment(1)
	task.Complete()
	pm.Close()

	if buf.Len() == 0 {
		t.Error("expected progress output to be written")
	}
	if len(pm.tasks) != 0 {
		t.Error("Close should release all tasks")
	}
}

func TestProgressManagerImpl_Interface(t *testing.T) {
	var _ domain.ProgressManager = &ProgressManagerImpl{}
	var _ domain.TaskProgress = &TaskProgressImpl{}
	var _ domain.TaskProgress = &NoOpTaskProgress{}
}
