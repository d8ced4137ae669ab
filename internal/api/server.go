package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"focusrune/pkg/category"
	"focusrune/pkg/journal"
	"focusrune/pkg/selection"
	"focusrune/pkg/task"
)

// Session is the state one server process owns. Nothing in it survives a
// restart except what the journal persists.
type Session struct {
	Tasks      *task.Store
	Selection  *selection.Set
	Categories category.Store
	Journal    *journal.Bus
}

// NewSession builds a fresh in-memory session around tasks. Entries must be
// appended through j for the journal stream to see them.
func NewSession(tasks *task.Store, j *journal.Bus) Session {
	return Session{
		Tasks:      tasks,
		Selection:  selection.New(),
		Categories: category.NewMemStore(),
		Journal:    j,
	}
}

// Server is the HTTP API server.
type Server struct {
	tasks      *task.Store
	sel        *selection.Set
	categories category.Store
	journal    *journal.Bus
	wasmDir    string
	now        func() time.Time
	mux        *http.ServeMux
}

// New creates a new Server. Static files are served from wasmDir.
func New(sess Session, wasmDir string) *Server {
	s := &Server{
		tasks:      sess.Tasks,
		sel:        sess.Selection,
		categories: sess.Categories,
		journal:    sess.Journal,
		wasmDir:    wasmDir,
		now:        time.Now,
		mux:        http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Tasks
	s.mux.HandleFunc("GET /api/tasks", s.handleTaskList)
	s.mux.HandleFunc("POST /api/tasks", s.handleTaskCreate)
	s.mux.HandleFunc("GET /api/tasks/stream", s.handleTaskStream)
	s.mux.HandleFunc("POST /api/tasks/reorder", s.handleTaskReorder)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.handleTaskGet)
	s.mux.HandleFunc("PATCH /api/tasks/{id}", s.handleTaskUpdate)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleTaskDelete)
	s.mux.HandleFunc("POST /api/tasks/{id}/toggle", s.handleTaskToggle)

	// History
	s.mux.HandleFunc("POST /api/undo", s.handleUndo)
	s.mux.HandleFunc("POST /api/redo", s.handleRedo)

	// Selection
	s.mux.HandleFunc("GET /api/selection", s.handleSelectionGet)
	s.mux.HandleFunc("DELETE /api/selection", s.handleSelectionClear)
	s.mux.HandleFunc("POST /api/selection/all", s.handleSelectionAll)
	s.mux.HandleFunc("POST /api/selection/complete", s.handleSelectionComplete)
	s.mux.HandleFunc("POST /api/selection/delete", s.handleSelectionDelete)
	s.mux.HandleFunc("POST /api/selection/{id}/toggle", s.handleSelectionToggle)

	// Categories
	s.mux.HandleFunc("GET /api/categories", s.handleCategoryList)
	s.mux.HandleFunc("POST /api/categories", s.handleCategoryCreate)
	s.mux.HandleFunc("POST /api/categories/reorder", s.handleCategoryReorder)
	s.mux.HandleFunc("PATCH /api/categories/{id}", s.handleCategoryRename)
	s.mux.HandleFunc("DELETE /api/categories/{id}", s.handleCategoryDelete)

	// Reports
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/export", s.handleExport)

	// Journal
	s.mux.HandleFunc("GET /api/journal", s.handleJournalList)
	s.mux.HandleFunc("GET /api/journal/verify", s.handleJournalVerify)
	s.mux.HandleFunc("GET /api/journal/stream", s.handleJournalStream)

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)

	// Static files (Gio WASM UI)
	s.mux.Handle("GET /", http.FileServer(http.Dir(s.wasmDir)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

// Status is the body of GET /api/status.
type Status struct {
	Tasks      int `json:"tasks"`
	Past       int `json:"past"`
	Future     int `json:"future"`
	Selected   int `json:"selected"`
	Categories int `json:"categories"`
	Journal    int `json:"journal"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := s.tasks.State()
	cats, err := s.categories.List(ctx)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	n, err := s.journal.Count(ctx)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, Status{
		Tasks:      len(st.Tasks),
		Past:       st.Past,
		Future:     st.Future,
		Selected:   s.sel.Len(),
		Categories: len(cats),
		Journal:    n,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
