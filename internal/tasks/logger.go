package tasks

import (
	"fmt"

	"github.com/VadimTolstov/rococo-sub000/internal/logging"
)

var _ logging.InternalLogger = (*taskLogger)(nil)

// taskLogger duplicates task output into the task's log buffer and the
// process logger.
type taskLogger struct {
	task *runnableTask
	zlog logging.ZLogger
}

func (l taskLogger) Info(format string, args ...any) {
	l.task.appendLog("info", fmt.Sprintf(format, args...))
	l.zlog.Info(format, args...)
}

func (l taskLogger) Warn(format string, args ...any) {
	l.task.appendLog("warn", fmt.Sprintf(format, args...))
	l.zlog.Warn(format, args...)
}

func (l taskLogger) Error(format string, args ...any) {
	l.task.appendLog("error", fmt.Sprintf(format, args...))
	l.zlog.Error(format, args...)
}
