package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusrune/pkg/analytics"
	"focusrune/pkg/category"
	"focusrune/pkg/journal"
	"focusrune/pkg/task"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	n := 1
	tasks := task.NewStore(task.WithIDFunc(func() string {
		n++
		return strconv.Itoa(n)
	}))
	s := New(NewSession(tasks, journal.NewBus(journal.NewMemStore())), t.TempDir())
	s.now = func() time.Time { return time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestTaskListSeeded(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, "GET", "/api/tasks", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, []task.Task{task.Welcome}, decode[[]task.Task](t, rec))
}

func TestTaskCreate(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, "POST", "/api/tasks", `{"title":"  Buy milk ","dueDate":"2026-10-18","recurring":"weekly"}`)
	require.Equal(t, 201, rec.Code, rec.Body.String())
	got := decode[task.Task](t, rec)
	assert.Equal(t, task.Task{
		ID:        "2",
		Title:     "Buy milk",
		Priority:  task.Medium,
		DueDate:   task.NewDate(2026, 10, 18),
		Recurring: task.Weekly,
	}, got)

	rec = do(t, s, "GET", "/api/tasks/2", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, got, decode[task.Task](t, rec))
}

func TestTaskCreateValidation(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{
		`{"title":"   "}`,
		`{"title":"x","priority":"urgent"}`,
		`{"title":"x","dueDate":"tomorrow"}`,
		`{"title":"x","recurring":"yearly"}`,
		`not json`,
	} {
		rec := do(t, s, "POST", "/api/tasks", body)
		assert.Equal(t, 400, rec.Code, body)
	}
	assert.Equal(t, 1, s.tasks.Len(), "nothing was added")
	assert.False(t, s.tasks.CanUndo())
}

func TestTaskGetMissing(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, 404, do(t, s, "GET", "/api/tasks/nope", "").Code)
}

func TestTaskUpdate(t *testing.T) {
	s := newTestServer(t)
	do(t, s, "POST", "/api/tasks", `{"title":"Buy milk","priority":"high","dueDate":"2026-10-18"}`)

	rec := do(t, s, "PATCH", "/api/tasks/2", `{"title":"Buy oat milk","dueDate":""}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	st := decode[task.State](t, rec)
	assert.Equal(t, "Buy oat milk", st.Tasks[1].Title)
	assert.Equal(t, task.High, st.Tasks[1].Priority)
	assert.True(t, st.Tasks[1].DueDate.IsZero())
	assert.Equal(t, 2, st.Past)

	assert.Equal(t, 400, do(t, s, "PATCH", "/api/tasks/2", `{"title":""}`).Code)

	rec = do(t, s, "PATCH", "/api/tasks/2", `{"title":"  Renamed  "}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Equal(t, "Renamed", decode[task.State](t, rec).Tasks[1].Title)
}

func TestTaskDeleteAndToggle(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, "POST", "/api/tasks/1/toggle", "")
	require.Equal(t, 200, rec.Code)
	assert.True(t, decode[task.State](t, rec).Tasks[0].Completed)

	rec = do(t, s, "DELETE", "/api/tasks/1", "")
	require.Equal(t, 200, rec.Code)
	st := decode[task.State](t, rec)
	assert.Empty(t, st.Tasks)
	assert.Equal(t, 2, st.Past)

	rec = do(t, s, "DELETE", "/api/tasks/missing", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, 3, decode[task.State](t, rec).Past, "deleting an absent id still commits")
}

func TestTaskReorder(t *testing.T) {
	s := newTestServer(t)
	do(t, s, "POST", "/api/tasks", `{"title":"A"}`)

	rec := do(t, s, "POST", "/api/tasks/reorder", `{"from":1,"to":0}`)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "A", decode[task.State](t, rec).Tasks[0].Title)

	rec = do(t, s, "POST", "/api/tasks/reorder", `{"from":0,"to":5}`)
	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, 400, do(t, s, "POST", "/api/tasks/reorder", `{"from":0}`).Code)
	assert.Equal(t, 2, s.tasks.State().Past, "rejected reorders do not commit")
}

func TestUndoRedo(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, "POST", "/api/undo", "")
	require.Equal(t, 200, rec.Code)
	assert.False(t, decode[HistoryResult](t, rec).Changed)

	do(t, s, "POST", "/api/tasks", `{"title":"A"}`)

	res := decode[HistoryResult](t, do(t, s, "POST", "/api/undo", ""))
	assert.True(t, res.Changed)
	assert.Equal(t, []task.Task{task.Welcome}, res.State.Tasks)
	assert.Equal(t, 1, res.State.Future)

	res = decode[HistoryResult](t, do(t, s, "POST", "/api/redo", ""))
	assert.True(t, res.Changed)
	assert.Len(t, res.State.Tasks, 2)

	res = decode[HistoryResult](t, do(t, s, "POST", "/api/redo", ""))
	assert.False(t, res.Changed)
}

func TestSelectionBulkComplete(t *testing.T) {
	s := newTestServer(t)
	do(t, s, "POST", "/api/tasks", `{"title":"A"}`)
	do(t, s, "POST", "/api/tasks", `{"title":"B"}`)

	res := decode[SelectionResult](t, do(t, s, "GET", "/api/selection", ""))
	assert.Equal(t, []string{}, res.IDs)

	do(t, s, "POST", "/api/selection/3/toggle", "")
	res = decode[SelectionResult](t, do(t, s, "POST", "/api/selection/1/toggle", ""))
	assert.Equal(t, []string{"3", "1"}, res.IDs)

	res = decode[SelectionResult](t, do(t, s, "POST", "/api/selection/complete", ""))
	assert.Equal(t, 2, res.Affected)
	assert.Empty(t, res.IDs)

	tasks := s.tasks.Tasks()
	assert.True(t, tasks[0].Completed)
	assert.False(t, tasks[1].Completed)
	assert.True(t, tasks[2].Completed)
}

func TestSelectionAllAndDelete(t *testing.T) {
	s := newTestServer(t)
	do(t, s, "POST", "/api/tasks", `{"title":"A"}`)

	res := decode[SelectionResult](t, do(t, s, "POST", "/api/selection/all", ""))
	assert.Equal(t, []string{"1", "2"}, res.IDs)

	res = decode[SelectionResult](t, do(t, s, "DELETE", "/api/selection", ""))
	assert.Empty(t, res.IDs)

	do(t, s, "POST", "/api/selection/all", "")
	res = decode[SelectionResult](t, do(t, s, "POST", "/api/selection/delete", ""))
	assert.Equal(t, 2, res.Affected)
	assert.Equal(t, 0, s.tasks.Len())
	assert.Equal(t, 3, s.tasks.State().Past, "one commit per deleted id")
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, "POST", "/api/categories", `{"name":" Work "}`)
	require.Equal(t, 201, rec.Code)
	work := decode[category.Category](t, rec)
	assert.Equal(t, "Work", work.Name)
	_, ok := category.Hue(work.Color)
	assert.True(t, ok)

	do(t, s, "POST", "/api/categories", `{"name":"Home"}`)
	assert.Equal(t, 400, do(t, s, "POST", "/api/categories", `{"name":""}`).Code)

	rec = do(t, s, "GET", "/api/categories?q=HO", "")
	found := decode[[]category.Category](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, "Home", found[0].Name)

	rec = do(t, s, "POST", "/api/categories/reorder", `{"from":1,"to":0}`)
	require.Equal(t, 200, rec.Code)
	list := decode[[]category.Category](t, rec)
	assert.Equal(t, "Home", list[0].Name)
	assert.Equal(t, 400, do(t, s, "POST", "/api/categories/reorder", `{"from":0,"to":9}`).Code)

	rec = do(t, s, "PATCH", "/api/categories/"+work.ID, `{"name":"Office"}`)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "Office", decode[category.Category](t, rec).Name)
	assert.Equal(t, 404, do(t, s, "PATCH", "/api/categories/nope", `{"name":"x"}`).Code)

	assert.Equal(t, 204, do(t, s, "DELETE", "/api/categories/"+work.ID, "").Code)
	assert.Equal(t, 404, do(t, s, "DELETE", "/api/categories/"+work.ID, "").Code)
	assert.Len(t, decode[[]category.Category](t, do(t, s, "GET", "/api/categories", "")), 1)
}

func TestStats(t *testing.T) {
	s := newTestServer(t)
	do(t, s, "POST", "/api/tasks", `{"title":"A","dueDate":"2026-10-16"}`)
	do(t, s, "POST", "/api/tasks", `{"title":"B","dueDate":"2026-10-17"}`)

	st := decode[analytics.Stats](t, do(t, s, "GET", "/api/stats", ""))
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Overdue)
	assert.Equal(t, 1, st.DueToday)
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, "GET", "/api/export?format=csv", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "focusrune.csv")
	assert.Contains(t, rec.Body.String(), "Welcome to FocusRune")

	rec = do(t, s, "GET", "/api/export", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = do(t, s, "GET", "/api/export?format=pdf", "")
	require.Equal(t, 200, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	assert.Equal(t, 400, do(t, s, "GET", "/api/export?format=xml", "").Code)
}

func TestStatus(t *testing.T) {
	s := newTestServer(t)
	do(t, s, "POST", "/api/tasks", `{"title":"A"}`)
	do(t, s, "POST", "/api/undo", "")
	do(t, s, "POST", "/api/selection/1/toggle", "")
	_, err := s.journal.Append(context.Background(), task.OpUndo, "", nil)
	require.NoError(t, err)

	rec := do(t, s, "GET", "/api/status", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, Status{Tasks: 1, Past: 0, Future: 1, Selected: 1, Journal: 1}, decode[Status](t, rec))
}

func TestJournal(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	for _, step := range []struct{ op, id string }{
		{task.OpAdded, "2"},
		{task.OpToggled, "2"},
		{task.OpAdded, "3"},
	} {
		_, err := s.journal.Append(ctx, step.op, step.id, nil)
		require.NoError(t, err)
	}

	assert.Len(t, decode[[]journal.Entry](t, do(t, s, "GET", "/api/journal", "")), 3)
	assert.Len(t, decode[[]journal.Entry](t, do(t, s, "GET", "/api/journal?limit=1", "")), 1)
	assert.Len(t, decode[[]journal.Entry](t, do(t, s, "GET", "/api/journal?limit=0", "")), 3)
	assert.Len(t, decode[[]journal.Entry](t, do(t, s, "GET", "/api/journal?limit=-1", "")), 3)
	assert.Len(t, decode[[]journal.Entry](t, do(t, s, "GET", "/api/journal?type=task.added", "")), 2)
	assert.Len(t, decode[[]journal.Entry](t, do(t, s, "GET", "/api/journal?task=3", "")), 1)

	rec := do(t, s, "GET", "/api/journal/verify", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, true, decode[map[string]any](t, rec)["ok"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, "GET", "/health", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func openStream(t *testing.T, ts *httptest.Server, path string) io.ReadCloser {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	return resp.Body
}

// nextEvent reads up to the first data line and returns the event name and
// its payload.
func nextEvent(t *testing.T, body io.Reader) (string, string) {
	t.Helper()
	sc := bufio.NewScanner(body)
	var event string
	for sc.Scan() {
		line := sc.Text()
		if v, ok := strings.CutPrefix(line, "event: "); ok {
			event = v
		}
		if v, ok := strings.CutPrefix(line, "data: "); ok {
			return event, v
		}
	}
	require.NoError(t, sc.Err())
	t.Fatal("stream ended before an event arrived")
	return "", ""
}

func TestTaskStream(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	body := openStream(t, ts, "/api/tasks/stream")

	// headers are flushed only after the handler has subscribed
	s.tasks.Toggle("1")

	event, data := nextEvent(t, body)
	assert.Equal(t, task.OpToggled, event)

	var ch task.Change
	require.NoError(t, json.Unmarshal([]byte(data), &ch))
	assert.Equal(t, "1", ch.TaskID)
	assert.True(t, ch.State.Tasks[0].Completed)
}

func TestJournalStream(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	body := openStream(t, ts, "/api/journal/stream")

	_, err := s.journal.Append(context.Background(), task.OpDeleted, "1", map[string]any{"tasks": 0})
	require.NoError(t, err)

	event, data := nextEvent(t, body)
	assert.Equal(t, task.OpDeleted, event)

	var e journal.Entry
	require.NoError(t, json.Unmarshal([]byte(data), &e))
	assert.Equal(t, "1", e.TaskID)
	assert.NotEmpty(t, e.Hash)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestWriteEventReportsDeadClient(t *testing.T) {
	err := writeEvent(brokenWriter{}, task.OpAdded, task.Change{Op: task.OpAdded})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	var buf bytes.Buffer
	require.NoError(t, writeEvent(&buf, task.OpAdded, map[string]int{"n": 1}))
	assert.Equal(t, "event: task.added\ndata: {\"n\":1}\n\n", buf.String())
}
