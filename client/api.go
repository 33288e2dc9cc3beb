// Package client implements the consumer side of the CRM backend: a typed
// HTTP API client, the polling notification feed and the kanban board
// controller the dashboards are built on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/highq/crm-backend/model"
)

// API is a typed HTTP client for the CRM backend.
type API struct {
	baseURL string
	http    *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchNotifications returns the recipient's notifications, newest first.
func (a *API) FetchNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	path := "/api/notifications/" + url.PathEscape(userID)
	if err := a.get(ctx, path, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationsRead marks the given ids as read for the user; with no
// ids every notification is marked.
func (a *API) MarkNotificationsRead(ctx context.Context, userID string, ids []string) error {
	body := map[string]any{"userId": userID}
	if len(ids) > 0 {
		body["notificationIds"] = ids
	}
	return a.send(ctx, http.MethodPost, "/api/notifications/read", body, nil)
}

// FetchTasks returns tasks assigned to userID, or every task when userID is
// empty.
func (a *API) FetchTasks(ctx context.Context, userID string) ([]model.Task, error) {
	path := "/api/tasks"
	if userID != "" {
		path += "?userId=" + url.QueryEscape(userID)
	}
	var tasks []model.Task
	if err := a.get(ctx, path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task assigned to the given users.
func (a *API) CreateTask(ctx context.Context, title string, priority model.TaskPriority, assignees []string) (model.Task, error) {
	var task model.Task
	err := a.send(ctx, http.MethodPost, "/api/tasks", map[string]any{
		"title":     title,
		"priority":  priority,
		"assignees": assignees,
	}, &task)
	return task, err
}

// UpdateTaskStatus moves a task to status on behalf of userID.
func (a *API) UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus, userID string) (model.Task, error) {
	var task model.Task
	path := "/api/tasks/" + url.PathEscape(taskID) + "/status"
	err := a.send(ctx, http.MethodPut, path, map[string]any{
		"status": status,
		"userId": userID,
	}, &task)
	return task, err
}

// AddComment appends a comment to a task.
func (a *API) AddComment(ctx context.Context, taskID, authorID, text string) (model.Task, error) {
	var task model.Task
	path := "/api/tasks/" + url.PathEscape(taskID) + "/comments"
	err := a.send(ctx, http.MethodPost, path, map[string]any{
		"authorId": authorID,
		"text":     text,
	}, &task)
	return task, err
}

func (a *API) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *API) send(ctx context.Context, method, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, out)
}

func (a *API) do(req *http.Request, out any) error {
	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s (status %d)", req.Method, req.URL.Path, apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
