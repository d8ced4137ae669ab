package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"focusrune/pkg/category"
)

func categoryStatus(err error) int {
	switch {
	case errors.Is(err, category.ErrNameRequired), errors.Is(err, category.ErrOutOfRange):
		return 400
	case errors.Is(err, category.ErrNotFound):
		return 404
	}
	return 500
}

func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	var (
		cats []category.Category
		err  error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		cats, err = s.categories.Search(r.Context(), q)
	} else {
		cats, err = s.categories.List(r.Context())
	}
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if cats == nil {
		cats = []category.Category{}
	}
	writeJSON(w, 200, cats)
}

func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	c, err := s.categories.Add(r.Context(), req.Name)
	if err != nil {
		writeError(w, categoryStatus(err), err.Error())
		return
	}
	writeJSON(w, 201, c)
}

func (s *Server) handleCategoryRename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	c, err := s.categories.Rename(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		writeError(w, categoryStatus(err), err.Error())
		return
	}
	writeJSON(w, 200, c)
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, categoryStatus(err), err.Error())
		return
	}
	w.WriteHeader(204)
}

func (s *Server) handleCategoryReorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if err := s.categories.Reorder(r.Context(), req.From, req.To); err != nil {
		writeError(w, categoryStatus(err), err.Error())
		return
	}
	s.handleCategoryList(w, r)
}
