package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

type presetBody struct {
	Preset domain.Preset `json:"preset"`
	Query  string        `json:"query"`
}

func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	ids, err := s.presets.ListPresets(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"presets": ids})
}

func (s *Server) getPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.presets.GetPreset(r.Context(), chi.URLParam(r, "presetId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presetBody{Preset: p, Query: workspace.PresetQuery(p)})
}
