// Package report writes a task list out as JSON, YAML, CSV or a PDF summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"focusrune/pkg/analytics"
	"focusrune/pkg/task"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "yaml", "csv", "pdf"}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "json":
		return "application/json"
	case "yaml", "yml":
		return "application/yaml"
	case "csv":
		return "text/csv"
	case "pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}

type document struct {
	Generated string          `json:"generated" yaml:"generated"`
	Summary   analytics.Stats `json:"summary" yaml:"summary"`
	Tasks     []task.Task     `json:"tasks" yaml:"tasks"`
}

// Export writes tasks in the given format. now stamps the document and
// anchors the analytics summary.
func Export(w io.Writer, format string, tasks []task.Task, now time.Time) error {
	doc := document{
		Generated: now.Format(time.RFC3339),
		Summary:   analytics.Summarize(tasks, task.DateOf(now)),
		Tasks:     tasks,
	}
	if doc.Tasks == nil {
		doc.Tasks = []task.Task{}
	}

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "csv":
		return writeCSV(w, tasks)
	case "pdf":
		return writePDF(w, doc)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

func writeCSV(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "title", "completed", "priority", "due_date", "recurring"})
	for _, t := range tasks {
		_ = cw.Write([]string{
			t.ID,
			t.Title,
			strconv.FormatBool(t.Completed),
			string(t.Priority),
			t.DueDate.String(),
			string(t.Recurring),
		})
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, doc document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("FocusRune report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "FocusRune report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, "Generated "+doc.Generated)
	pdf.Ln(10)

	s := doc.Summary
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Tasks: %d   Completed: %d   Pending: %d   (%.0f%% done)", s.Total, s.Completed, s.Pending, s.CompletionRate*100),
		fmt.Sprintf("Overdue: %d   Due today: %d   Recurring: %d", s.Overdue, s.DueToday, s.Recurring),
	} {
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}
	pdf.Ln(2)
	drawBars(pdf, "By priority", s.ByPriority)
	drawBars(pdf, "Due in the next week", s.DueSoon)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Tasks")
	pdf.Ln(8)

	widths := []float64{10, 90, 22, 30, 28}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range []string{"#", "Title", "Priority", "Due", "Repeats"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for i, t := range doc.Tasks {
		title := t.Title
		if t.Completed {
			title = "[x] " + title
		}
		row := []string{strconv.Itoa(i + 1), tr(title), t.Priority.Label(), t.DueDate.String(), t.Recurring.Label()}
		for j, v := range row {
			pdf.CellFormat(widths[j], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawBars(pdf *gofpdf.Fpdf, title string, buckets []analytics.Bucket) {
	const (
		labelW = 30.0
		barMax = 100.0
		rowH   = 5.0
	)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 7, title)
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 9)

	top := analytics.Max(buckets)
	pdf.SetFillColor(48, 96, 160)
	for _, b := range buckets {
		x, y := pdf.GetXY()
		pdf.CellFormat(labelW, rowH, b.Label, "", 0, "L", false, 0, "")
		if b.Count > 0 {
			pdf.Rect(x+labelW, y+0.5, barMax*float64(b.Count)/float64(top), rowH-1, "F")
		}
		pdf.SetXY(x+labelW+barMax+2, y)
		pdf.CellFormat(10, rowH, strconv.Itoa(b.Count), "", 0, "L", false, 0, "")
		pdf.Ln(rowH)
	}
	pdf.Ln(3)
}
