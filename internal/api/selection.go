package api

import "net/http"

// SelectionResult is the body of the selection endpoints.
type SelectionResult struct {
	IDs      []string `json:"ids"`
	Affected int      `json:"affected,omitempty"`
}

func (s *Server) selection(affected int) SelectionResult {
	ids := s.sel.IDs()
	if ids == nil {
		ids = []string{}
	}
	return SelectionResult{IDs: ids, Affected: affected}
}

func (s *Server) handleSelectionGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, s.selection(0))
}

func (s *Server) handleSelectionToggle(w http.ResponseWriter, r *http.Request) {
	s.sel.Toggle(r.PathValue("id"))
	writeJSON(w, 200, s.selection(0))
}

func (s *Server) handleSelectionAll(w http.ResponseWriter, r *http.Request) {
	tasks := s.tasks.Tasks()
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	s.sel.SelectAll(ids)
	writeJSON(w, 200, s.selection(0))
}

func (s *Server) handleSelectionClear(w http.ResponseWriter, r *http.Request) {
	s.sel.Clear()
	writeJSON(w, 200, s.selection(0))
}

func (s *Server) handleSelectionComplete(w http.ResponseWriter, r *http.Request) {
	n := s.sel.CompleteSelected(s.tasks)
	writeJSON(w, 200, s.selection(n))
}

func (s *Server) handleSelectionDelete(w http.ResponseWriter, r *http.Request) {
	n := s.sel.DeleteSelected(s.tasks)
	writeJSON(w, 200, s.selection(n))
}
