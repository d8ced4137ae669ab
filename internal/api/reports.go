package api

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"focusrune/pkg/analytics"
	"focusrune/pkg/report"
	"focusrune/pkg/task"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, analytics.Summarize(s.tasks.Tasks(), task.DateOf(s.now())))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	if format == "yml" {
		format = "yaml"
	}
	if !slices.Contains(report.Formats, format) {
		writeError(w, 400, fmt.Sprintf("unknown format %q (want one of %s)", format, strings.Join(report.Formats, ", ")))
		return
	}

	var buf bytes.Buffer
	if err := report.Export(&buf, format, s.tasks.Tasks(), s.now()); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	w.Header().Set("Content-Type", report.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="focusrune.%s"`, format))
	w.WriteHeader(200)
	w.Write(buf.Bytes())
}
