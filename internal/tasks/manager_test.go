package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/VadimTolstov/rococo-sub000/internal/logging"
)

func TestTriggerRunsTask(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var runs atomic.Int64
	done := make(chan struct{})
	m.Register("cleanup", 0, func(_ context.Context, logger logging.InternalLogger) error {
		logger.Info("removed %d entries", 3)
		runs.Add(1)
		close(done)
		return nil
	})

	if err := m.Trigger("cleanup"); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}

	// wait for run() bookkeeping to finish
	deadline := time.Now().Add(2 * time.Second)
	for {
		logs, err := m.GetLogs("cleanup")
		if err != nil {
			t.Fatalf("GetLogs() error = %v", err)
		}
		if len(logs) >= 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("task logs incomplete: %+v", logs)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if runs.Load() != 1 {
		t.Errorf("task ran %d times, want 1", runs.Load())
	}
}

func TestTriggerUnknownTask(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	err := m.Trigger("nope")
	var notFound TaskNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Trigger() error = %v, want TaskNotFoundError", err)
	}
}

func TestListStatus(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	m.Register("a", 0, func(context.Context, logging.InternalLogger) error { return nil })
	m.Register("b", time.Hour, func(context.Context, logging.InternalLogger) error { return nil })

	statuses := m.ListStatus()
	if len(statuses) != 2 {
		t.Fatalf("ListStatus() returned %d tasks, want 2", len(statuses))
	}
	for _, s := range statuses {
		if s.Name == "b" && s.NextRun.IsZero() {
			t.Error("interval task has no next run time")
		}
		if s.Name == "a" && !s.NextRun.IsZero() {
			t.Error("trigger-only task reports a next run time")
		}
	}
}

func TestFailedTaskResult(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	m.Register("broken", 0, func(context.Context, logging.InternalLogger) error {
		return errors.New("boom")
	})
	if err := m.Trigger("broken"); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		var status TaskStatus
		for _, s := range m.ListStatus() {
			if s.Name == "broken" {
				status = s
			}
		}
		if status.LastResult != "" {
			if status.LastResult != "failed: boom" {
				t.Errorf("LastResult = %q, want \"failed: boom\"", status.LastResult)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("task never recorded a result")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
