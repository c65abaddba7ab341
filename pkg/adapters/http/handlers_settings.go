package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/query"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

type settingsResponse struct {
	Settings workspace.ResolvedSettings `json:"settings"`
	// Query is the settings screen query: chart parameters dropped, states carried.
	Query string `json:"query"`
}

type pairRequest struct {
	Side      int    `json:"side"`
	Picked    string `json:"picked"`
	Property1 string `json:"property1"`
	Property2 string `json:"property2"`
}

type pairResponse struct {
	Property1 string            `json:"property1"`
	Property2 string            `json:"property2"`
	Options1  []domain.Property `json:"options1"`
	Options2  []domain.Property `json:"options2"`
}

func (s *Server) resolveSettings(w http.ResponseWriter, r *http.Request) {
	p, err := query.Parse(r.URL.RawQuery)
	if err != nil {
		s.logger.Warn("Malformed settings query", "err", err)
	}
	requested := domain.Settings{
		Fluid: p.Values.Get(query.KeyFluid),
		Units: p.Values.Get(query.KeyUnits),
	}
	resolved, err := workspace.ResolveSettings(r.Context(), s.engine, requested)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next := query.SettingsValues(query.BackToSettings(p.Values), resolved.Settings)
	writeJSON(w, http.StatusOK, settingsResponse{Settings: resolved, Query: query.Encode(next)})
}

func (s *Server) pairProperties(w http.ResponseWriter, r *http.Request) {
	var body pairRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if body.Side != 1 && body.Side != 2 {
		s.writeError(w, r, fmt.Errorf("%w: side must be 1 or 2", domain.ErrInvalidCandidate))
		return
	}
	if p, ok := domain.LookupProperty(body.Picked); !ok || !p.Input {
		s.writeError(w, r, fmt.Errorf("%w: %s", domain.ErrUnknownProperty, body.Picked))
		return
	}

	p1, p2 := workspace.PairProperties(body.Side, body.Picked, body.Property1, body.Property2)
	writeJSON(w, http.StatusOK, pairResponse{
		Property1: p1,
		Property2: p2,
		Options1:  workspace.PropertyOptions(p2),
		Options2:  workspace.PropertyOptions(p1),
	})
}
