package client

import (
	"context"
	"strings"

	"github.com/VadimTolstov/rococo-sub000/internal/authserver"
	"github.com/VadimTolstov/rococo-sub000/internal/tasks"
)

func (c *Client) ListTasks(ctx context.Context) ([]tasks.TaskStatus, error) {
	var resp []tasks.TaskStatus
	_, err := c.get(ctx, c.url().
		setPath(authserver.AdminTasksRoute).
		build(), &resp)
	return resp, err
}

func (c *Client) TriggerTask(ctx context.Context, name string) error {
	_, err := c.post(ctx, c.url().
		setPath(taskRoute(authserver.AdminTaskTriggerRoute, name)).
		build(), nil)
	return err
}

func (c *Client) GetTaskLogs(ctx context.Context, name string) ([]tasks.LogEntry, error) {
	var resp []tasks.LogEntry
	_, err := c.get(ctx, c.url().
		setPath(taskRoute(authserver.AdminTaskLogsRoute, name)).
		build(), &resp)
	return resp, err
}

func taskRoute(pattern, name string) string {
	return strings.Replace(pattern, "{name}", name, 1)
}
