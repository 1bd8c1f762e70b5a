package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/VadimTolstov/rococo-sub000/internal/logging"
)

const maxLogsPerTask = 1000

// defaultRunTimeout bounds a single task execution.
const defaultRunTimeout = 5 * time.Minute

// Manager keeps named background tasks and runs interval tasks on a ticker
// until Stop is called.
type Manager struct {
	mu    sync.RWMutex
	tasks map[string]*runnableTask

	stopCtx context.Context
	stop    context.CancelFunc
}

func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		tasks:   make(map[string]*runnableTask),
		stopCtx: ctx,
		stop:    cancel,
	}
}

// Register adds a task. A positive interval starts a scheduler goroutine;
// interval 0 registers a trigger-only task.
func (m *Manager) Register(name string, interval time.Duration, fn TaskFunc) {
	task := &runnableTask{
		name:         name,
		interval:     interval,
		handler:      fn,
		registeredAt: time.Now(),
	}

	m.mu.Lock()
	m.tasks[name] = task
	m.mu.Unlock()

	if interval > 0 {
		go m.scheduler(task)
	}
}

// Trigger runs the named task once, asynchronously.
func (m *Manager) Trigger(name string) error {
	task, ok := m.get(name)
	if !ok {
		return TaskNotFoundError{Name: name}
	}
	go task.run()
	return nil
}

func (m *Manager) ListStatus() []TaskStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]TaskStatus, 0, len(m.tasks))
	for _, task := range m.tasks {
		list = append(list, task.status())
	}
	return list
}

func (m *Manager) GetLogs(name string) ([]LogEntry, error) {
	task, ok := m.get(name)
	if !ok {
		return nil, TaskNotFoundError{Name: name}
	}
	return task.getLogs(), nil
}

// Stop ends all interval schedulers. Running executions finish on their own.
func (m *Manager) Stop() {
	m.stop()
}

func (m *Manager) get(name string) (*runnableTask, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[name]
	return task, ok
}

func (m *Manager) scheduler(task *runnableTask) {
	ticker := time.NewTicker(task.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			task.run()
		case <-m.stopCtx.Done():
			return
		}
	}
}

type runnableTask struct {
	name         string
	interval     time.Duration
	handler      TaskFunc
	registeredAt time.Time

	mu         sync.RWMutex
	running    bool
	lastRun    time.Time
	lastResult string
	logs       []LogEntry
}

func (t *runnableTask) run() {
	l := log.With().Str("task", t.name).Logger()

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		l.Warn().Msg("task is already running, skipping execution")
		return
	}
	t.running = true
	t.logs = t.logs[:0]
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.lastRun = time.Now()
		t.mu.Unlock()
	}()

	taskLogger := taskLogger{task: t, zlog: logging.NewZLogger(l)}
	taskLogger.Info("starting task execution")

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	start := time.Now()
	err := t.handler(ctx, taskLogger)
	duration := time.Since(start)

	t.mu.Lock()
	if err != nil {
		t.lastResult = fmt.Sprintf("failed: %v", err)
	} else {
		t.lastResult = "success"
	}
	t.mu.Unlock()

	if err != nil {
		taskLogger.Error("task failed after %s: %v", duration, err)
	} else {
		taskLogger.Info("task completed successfully in %s", duration)
	}
}

func (t *runnableTask) status() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var nextRun time.Time
	if t.interval > 0 {
		if !t.lastRun.IsZero() {
			nextRun = t.lastRun.Add(t.interval)
		} else {
			nextRun = t.registeredAt.Add(t.interval)
		}
	}

	return TaskStatus{
		Name:       t.name,
		Running:    t.running,
		LastRun:    t.lastRun,
		LastResult: t.lastResult,
		NextRun:    nextRun,
	}
}

func (t *runnableTask) getLogs() []LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cpy := make([]LogEntry, len(t.logs))
	copy(cpy, t.logs)
	return cpy
}

func (t *runnableTask) appendLog(level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.logs = append(t.logs, LogEntry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
	})
	if len(t.logs) > maxLogsPerTask {
		t.logs = t.logs[1:]
	}
}
