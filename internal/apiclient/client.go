package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"reportdesk/internal/model"
	"reportdesk/pkg/httpclient"
)

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("not found")

// Client talks to a running reportdesk API.
type Client struct {
	http httpclient.HTTPClient
}

func New(client httpclient.HTTPClient) *Client {
	return &Client{http: client}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	var env envelope
	resp, err := c.http.Get(ctx, endpoint, &env)
	if err != nil {
		return fmt.Errorf("GET %s: %w", endpoint, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("GET %s: %w", endpoint, ErrNotFound)
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("GET %s: status %d: %s", endpoint, resp.StatusCode, env.Message)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) ListReports(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	if err := c.get(ctx, "/api/reports", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) GetReport(ctx context.Context, id int64) (*model.Report, error) {
	var report model.Report
	if err := c.get(ctx, "/api/reports/"+strconv.FormatInt(id, 10), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) ListReportTasks(ctx context.Context, id int64) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, "/api/reports/"+strconv.FormatInt(id, 10)+"/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// DueTasks returns the active scheduled tasks with their next run.
func (c *Client) DueTasks(ctx context.Context) ([]model.ScheduledTask, error) {
	var tasks []model.ScheduledTask
	if err := c.get(ctx, "/api/tasks/scheduling", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/api/health", nil)
}
