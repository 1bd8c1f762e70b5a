package authserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/VadimTolstov/rococo-sub000/internal/api/presenter"
	"github.com/VadimTolstov/rococo-sub000/internal/core"
	"github.com/VadimTolstov/rococo-sub000/internal/tasks"
)

const defaultAuditLimit = 50

// handleAdminAudit returns recent audit entries. Auditors that cannot be
// read back (file, noop) yield an empty list rather than an error.
func (s *Server) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			presenter.Error(w, r, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries := []core.AuditEntry{}
	if queryable, ok := s.auditor.(core.QueryableAuditor); ok {
		found, err := queryable.GetRecent(limit)
		if err != nil {
			presenter.Err(w, r, err, "failed to query audit log")
			return
		}
		entries = found
	}
	presenter.JSON(w, r, entries, http.StatusOK)
}

func (s *Server) handleAdminTasks(w http.ResponseWriter, r *http.Request) {
	if s.taskManager == nil {
		presenter.JSON(w, r, []tasks.TaskStatus{}, http.StatusOK)
		return
	}
	presenter.JSON(w, r, s.taskManager.ListStatus(), http.StatusOK)
}

func (s *Server) handleAdminTaskTrigger(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if s.taskManager == nil {
		presenter.Error(w, r, "task manager is not enabled", http.StatusNotFound)
		return
	}
	if err := s.taskManager.Trigger(name); err != nil {
		var notFound tasks.TaskNotFoundError
		if errors.As(err, &notFound) {
			presenter.Error(w, r, err.Error(), http.StatusNotFound)
			return
		}
		presenter.Err(w, r, err, "failed to trigger task")
		return
	}
	presenter.JSON(w, r, map[string]string{"status": "triggered", "task": name}, http.StatusAccepted)
}

func (s *Server) handleAdminTaskLogs(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if s.taskManager == nil {
		presenter.Error(w, r, "task manager is not enabled", http.StatusNotFound)
		return
	}
	logs, err := s.taskManager.GetLogs(name)
	if err != nil {
		var notFound tasks.TaskNotFoundError
		if errors.As(err, &notFound) {
			presenter.Error(w, r, err.Error(), http.StatusNotFound)
			return
		}
		presenter.Err(w, r, err, "failed to read task logs")
		return
	}
	presenter.JSON(w, r, logs, http.StatusOK)
}
