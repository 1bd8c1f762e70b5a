package tasks

import (
	"context"
	"time"

	"github.com/VadimTolstov/rococo-sub000/internal/logging"
)

// TaskFunc is the unit of work. It receives a logger whose output is kept
// in the task's log buffer and mirrored to the process log.
type TaskFunc func(ctx context.Context, logger logging.InternalLogger) error

type TaskStatus struct {
	Name       string    `json:"name,omitempty"`
	Running    bool      `json:"running,omitempty"`
	LastRun    time.Time `json:"last_run"`
	LastResult string    `json:"last_result,omitempty"`
	NextRun    time.Time `json:"next_run"`
}

type LogEntry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level,omitempty"`
	Message string    `json:"message,omitempty"`
}
