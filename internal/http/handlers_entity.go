package http

import (
	"net/http"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

type entityRequest struct {
	Name string `json:"name"`
}

type entityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type categoryRequest struct {
	EntityID int64  `json:"entity_id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
}

type categoryResponse struct {
	ID       int64  `json:"id"`
	EntityID int64  `json:"entity_id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
}

func (s *Server) handleCreateEntity(w http.ResponseWriter, r *http.Request) {
	var req entityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := s.deps.Entities.Create(r.Context(), req.Name)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entityResponse{ID: id, Name: req.Name})
}

func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	entities, err := s.deps.Entities.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	resp := make([]entityResponse, 0, len(entities))
	for _, e := range entities {
		resp = append(resp, entityResponse{ID: e.ID, Name: e.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	c := core.Category{EntityID: req.EntityID, Name: req.Name, Color: req.Color}
	id, err := s.deps.Entities.CreateCategory(r.Context(), c)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	c.ID = id
	writeJSON(w, http.StatusCreated, categoryResponse{
		ID:       c.ID,
		EntityID: c.EntityID,
		Name:     c.Name,
		Color:    c.Color,
	})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	entityID, err := parseEntityID(r.URL.Query())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	cats, err := s.deps.Entities.ListCategories(r.Context(), entityID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	resp := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, categoryResponse{ID: c.ID, EntityID: c.EntityID, Name: c.Name, Color: c.Color})
	}
	writeJSON(w, http.StatusOK, resp)
}
