package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"focusrune/pkg/task"
)

var (
	now   = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	tasks = []task.Task{
		{ID: "1", Title: "Welcome to FocusRune"},
		{ID: "2", Title: "Buy milk", Priority: task.Low, DueDate: task.NewDate(2026, 10, 18), Recurring: task.Weekly},
		{ID: "3", Title: "Ship it", Completed: true, Priority: task.High},
	}
)

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "json", tasks, now))

	var doc struct {
		Generated string      `json:"generated"`
		Tasks     []task.Task `json:"tasks"`
		Summary   struct {
			Total     int `json:"total"`
			Completed int `json:"completed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2026-10-17T09:00:00Z", doc.Generated)
	assert.Equal(t, tasks, doc.Tasks)
	assert.Equal(t, 3, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Completed)
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "YAML", tasks, now))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	list, ok := doc["tasks"].([]any)
	require.True(t, ok)
	require.Len(t, list, 3)
	second := list[1].(map[string]any)
	assert.Equal(t, "Buy milk", second["title"])
	assert.Equal(t, "2026-10-18", second["dueDate"])
	_, hasDue := list[0].(map[string]any)["dueDate"]
	assert.False(t, hasDue, "absent due date is omitted")
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "csv", tasks, now))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"id", "title", "completed", "priority", "due_date", "recurring"}, rows[0])
	assert.Equal(t, []string{"2", "Buy milk", "false", "low", "2026-10-18", "Weekly"}, rows[2])
}

func TestExportPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "pdf", tasks, now))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "json", nil, now))
	assert.Contains(t, buf.String(), `"tasks": []`)
}

func TestExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Export(&buf, "xml", tasks, now))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("PDF"))
	assert.Equal(t, "text/csv", ContentType("csv"))
	assert.Equal(t, "application/octet-stream", ContentType("xml"))
}
