package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

// fromQuery builds a controller holding the workspace encoded in raw.
func (s *Server) fromQuery(ctx context.Context, raw string) (*workspace.Controller, error) {
	c := workspace.New(s.engine, s.controllerOpts...)
	if _, err := c.ApplyExternal(ctx, raw); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Server) renderWorkspace(w http.ResponseWriter, r *http.Request) {
	c, err := s.fromQuery(r.Context(), r.URL.RawQuery)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Render(r.Context(), ""))
}

func (s *Server) addWorkspaceState(w http.ResponseWriter, r *http.Request) {
	var cand domain.Candidate
	if err := json.NewDecoder(r.Body).Decode(&cand); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	c, err := s.fromQuery(r.Context(), r.URL.RawQuery)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := c.AddState(r.Context(), cand); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Render(r.Context(), ""))
}

func (s *Server) removeWorkspaceState(w http.ResponseWriter, r *http.Request) {
	c, err := s.fromQuery(r.Context(), r.URL.RawQuery)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := c.RemoveState(r.Context(), chi.URLParam(r, "stateId")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Render(r.Context(), ""))
}
