// Package client is a typed wrapper over the FocusRune HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"focusrune/internal/api"
	"focusrune/pkg/analytics"
	"focusrune/pkg/category"
	"focusrune/pkg/journal"
	"focusrune/pkg/task"
)

// Error is a non-2xx response from the API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to one FocusRune server.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client for the server at base, e.g. http://localhost:8080/.
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// TaskInput is the body of an add. Empty fields take the server defaults.
type TaskInput struct {
	Title     string `json:"title"`
	Priority  string `json:"priority,omitempty"`
	DueDate   string `json:"dueDate,omitempty"`
	Recurring string `json:"recurring,omitempty"`
}

// Tasks returns the current list.
func (c *Client) Tasks(ctx context.Context) ([]task.Task, error) {
	var out []task.Task
	err := c.do(ctx, "GET", "/api/tasks", nil, &out)
	return out, err
}

// Get returns one task.
func (c *Client) Get(ctx context.Context, id string) (task.Task, error) {
	var out task.Task
	err := c.do(ctx, "GET", "/api/tasks/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Add creates a task.
func (c *Client) Add(ctx context.Context, in TaskInput) (task.Task, error) {
	var out task.Task
	err := c.do(ctx, "POST", "/api/tasks", in, &out)
	return out, err
}

// Edit patches a task. Only keys present in fields are sent; an empty value
// clears an optional field.
func (c *Client) Edit(ctx context.Context, id string, fields map[string]string) (task.State, error) {
	var out task.State
	err := c.do(ctx, "PATCH", "/api/tasks/"+url.PathEscape(id), fields, &out)
	return out, err
}

// Toggle flips a task's completion.
func (c *Client) Toggle(ctx context.Context, id string) (task.State, error) {
	var out task.State
	err := c.do(ctx, "POST", "/api/tasks/"+url.PathEscape(id)+"/toggle", nil, &out)
	return out, err
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id string) (task.State, error) {
	var out task.State
	err := c.do(ctx, "DELETE", "/api/tasks/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Reorder moves the task at from to to.
func (c *Client) Reorder(ctx context.Context, from, to int) (task.State, error) {
	var out task.State
	err := c.do(ctx, "POST", "/api/tasks/reorder", map[string]int{"from": from, "to": to}, &out)
	return out, err
}

// Undo steps back one commit.
func (c *Client) Undo(ctx context.Context) (api.HistoryResult, error) {
	var out api.HistoryResult
	err := c.do(ctx, "POST", "/api/undo", nil, &out)
	return out, err
}

// Redo reapplies the last undone commit.
func (c *Client) Redo(ctx context.Context) (api.HistoryResult, error) {
	var out api.HistoryResult
	err := c.do(ctx, "POST", "/api/redo", nil, &out)
	return out, err
}

// Status returns the session counters.
func (c *Client) Status(ctx context.Context) (api.Status, error) {
	var out api.Status
	err := c.do(ctx, "GET", "/api/status", nil, &out)
	return out, err
}

// Stats returns the analytics summary.
func (c *Client) Stats(ctx context.Context) (analytics.Stats, error) {
	var out analytics.Stats
	err := c.do(ctx, "GET", "/api/stats", nil, &out)
	return out, err
}

// Export downloads the task list in format.
func (c *Client) Export(ctx context.Context, format string) ([]byte, error) {
	var out bytes.Buffer
	if err := c.do(ctx, "GET", "/api/export?format="+url.QueryEscape(format), nil, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Selection returns the selected IDs.
func (c *Client) Selection(ctx context.Context) (api.SelectionResult, error) {
	var out api.SelectionResult
	err := c.do(ctx, "GET", "/api/selection", nil, &out)
	return out, err
}

// Select toggles id in the selection.
func (c *Client) Select(ctx context.Context, id string) (api.SelectionResult, error) {
	var out api.SelectionResult
	err := c.do(ctx, "POST", "/api/selection/"+url.PathEscape(id)+"/toggle", nil, &out)
	return out, err
}

// SelectAll selects every task.
func (c *Client) SelectAll(ctx context.Context) (api.SelectionResult, error) {
	var out api.SelectionResult
	err := c.do(ctx, "POST", "/api/selection/all", nil, &out)
	return out, err
}

// ClearSelection empties the selection.
func (c *Client) ClearSelection(ctx context.Context) (api.SelectionResult, error) {
	var out api.SelectionResult
	err := c.do(ctx, "DELETE", "/api/selection", nil, &out)
	return out, err
}

// CompleteSelected toggles every selected task.
func (c *Client) CompleteSelected(ctx context.Context) (api.SelectionResult, error) {
	var out api.SelectionResult
	err := c.do(ctx, "POST", "/api/selection/complete", nil, &out)
	return out, err
}

// DeleteSelected deletes every selected task.
func (c *Client) DeleteSelected(ctx context.Context) (api.SelectionResult, error) {
	var out api.SelectionResult
	err := c.do(ctx, "POST", "/api/selection/delete", nil, &out)
	return out, err
}

// Categories lists categories, filtered by query when it is not empty.
func (c *Client) Categories(ctx context.Context, query string) ([]category.Category, error) {
	path := "/api/categories"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var out []category.Category
	err := c.do(ctx, "GET", path, nil, &out)
	return out, err
}

// AddCategory creates a category.
func (c *Client) AddCategory(ctx context.Context, name string) (category.Category, error) {
	var out category.Category
	err := c.do(ctx, "POST", "/api/categories", map[string]string{"name": name}, &out)
	return out, err
}

// RenameCategory renames a category.
func (c *Client) RenameCategory(ctx context.Context, id, name string) (category.Category, error) {
	var out category.Category
	err := c.do(ctx, "PATCH", "/api/categories/"+url.PathEscape(id), map[string]string{"name": name}, &out)
	return out, err
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/api/categories/"+url.PathEscape(id), nil, nil)
}

// ReorderCategories moves the category at from to to.
func (c *Client) ReorderCategories(ctx context.Context, from, to int) ([]category.Category, error) {
	var out []category.Category
	err := c.do(ctx, "POST", "/api/categories/reorder", map[string]int{"from": from, "to": to}, &out)
	return out, err
}

// Journal lists entries, optionally filtered by type or task.
func (c *Client) Journal(ctx context.Context, entryType, taskID string, limit int) ([]journal.Entry, error) {
	q := url.Values{}
	if entryType != "" {
		q.Set("type", entryType)
	}
	if taskID != "" {
		q.Set("task", taskID)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/journal"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []journal.Entry
	err := c.do(ctx, "GET", path, nil, &out)
	return out, err
}

// VerifyJournal checks the journal hash chain on the server.
func (c *Client) VerifyJournal(ctx context.Context) error {
	return c.do(ctx, "GET", "/api/journal/verify", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = resp.Status
		}
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}

	switch v := out.(type) {
	case nil:
		return nil
	case *bytes.Buffer:
		_, err = io.Copy(v, resp.Body)
		return err
	default:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return nil
	}
}
