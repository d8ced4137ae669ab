package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"focusrune/pkg/task"
)

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, s.tasks.Tasks())
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	t, ok := s.tasks.Get(id)
	if !ok {
		writeError(w, 404, "task not found: "+id)
		return
	}
	writeJSON(w, 200, t)
}

type taskRequest struct {
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	DueDate   string `json:"dueDate"`
	Recurring string `json:"recurring"`
}

func (req taskRequest) payload() (task.Payload, error) {
	p := task.Payload{Title: strings.TrimSpace(req.Title)}
	var err error
	if p.Priority, err = task.ParsePriority(req.Priority); err != nil {
		return p, err
	}
	if p.Priority == "" {
		p.Priority = task.Medium
	}
	if p.DueDate, err = task.ParseDate(req.DueDate); err != nil {
		return p, err
	}
	if p.Recurring, err = task.ParseRecurrence(req.Recurring); err != nil {
		return p, err
	}
	return p, p.Validate()
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	p, err := req.payload()
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	writeJSON(w, 201, s.tasks.Add(p))
}

// patchRequest uses pointers so absent fields stay untouched; an empty
// string clears an optional field.
type patchRequest struct {
	Title     *string `json:"title"`
	Priority  *string `json:"priority"`
	DueDate   *string `json:"dueDate"`
	Recurring *string `json:"recurring"`
}

func (req patchRequest) patch() (task.Patch, error) {
	var p task.Patch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		p.Title = &title
	}
	if req.Priority != nil {
		v, err := task.ParsePriority(*req.Priority)
		if err != nil {
			return p, err
		}
		p.Priority = &v
	}
	if req.DueDate != nil {
		v, err := task.ParseDate(*req.DueDate)
		if err != nil {
			return p, err
		}
		p.DueDate = &v
	}
	if req.Recurring != nil {
		v, err := task.ParseRecurrence(*req.Recurring)
		if err != nil {
			return p, err
		}
		p.Recurring = &v
	}
	return p, p.Validate()
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	p, err := req.patch()
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	s.tasks.Edit(id, p)
	writeJSON(w, 200, s.tasks.State())
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	s.tasks.Delete(r.PathValue("id"))
	writeJSON(w, 200, s.tasks.State())
}

func (s *Server) handleTaskToggle(w http.ResponseWriter, r *http.Request) {
	s.tasks.Toggle(r.PathValue("id"))
	writeJSON(w, 200, s.tasks.State())
}

func (s *Server) handleTaskReorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From *int `json:"from"`
		To   *int `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if req.From == nil || req.To == nil {
		writeError(w, 400, "from and to are required")
		return
	}
	if err := s.tasks.Reorder(*req.From, *req.To); err != nil {
		status := 500
		if errors.Is(err, task.ErrIndexOutOfRange) {
			status = 400
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, 200, s.tasks.State())
}

// HistoryResult is the body returned by undo and redo.
type HistoryResult struct {
	Changed bool       `json:"changed"`
	State   task.State `json:"state"`
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	changed := s.tasks.Undo()
	writeJSON(w, 200, HistoryResult{Changed: changed, State: s.tasks.State()})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	changed := s.tasks.Redo()
	writeJSON(w, 200, HistoryResult{Changed: changed, State: s.tasks.State()})
}
