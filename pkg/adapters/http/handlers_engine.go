package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/aretw0/thermoprops/pkg/codec"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/numeric"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

type computeRequest struct {
	domain.Candidate
	Fluid string `json:"fluid"`
}

type tokenBody struct {
	Token string `json:"token"`
}

type statesBody struct {
	States []domain.StateDefinition `json:"states"`
}

type normalizeBody struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

func (s *Server) listFluids(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil || !s.engine.Ready() {
		s.writeError(w, r, domain.ErrEngineUnavailable)
		return
	}
	fluids, err := s.engine.ListFluids(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"fluids": fluids})
}

func (s *Server) getFluid(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil || !s.engine.Ready() {
		s.writeError(w, r, domain.ErrEngineUnavailable)
		return
	}
	meta, err := s.engine.FluidMetadata(r.Context(), chi.URLParam(r, "fluid"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) computeState(w http.ResponseWriter, r *http.Request) {
	var body computeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := workspace.ValidateCandidate(body.Candidate); err != nil {
		s.writeError(w, r, err)
		return
	}

	def := domain.StateDefinition{
		Property1: body.Property1,
		Value1:    numeric.Normalize(body.Value1),
		Property2: body.Property2,
		Value2:    numeric.Normalize(body.Value2),
	}
	results, err := workspace.CalculateProperties(r.Context(), s.engine, body.Fluid, def)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.ComputedState{Definition: def, Results: results})
}

func (s *Server) encodeStates(w http.ResponseWriter, r *http.Request) {
	var body statesBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, tokenBody{Token: codec.Encode(body.States)})
}

func (s *Server) decodeStates(w http.ResponseWriter, r *http.Request) {
	var body tokenBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	c := codec.New(codec.WithLogger(s.logger))
	writeJSON(w, http.StatusOK, statesBody{States: c.Decode(r.Context(), body.Token)})
}

func (s *Server) normalizeNumber(w http.ResponseWriter, r *http.Request) {
	var body normalizeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	v := numeric.Normalize(body.Value)
	_, err := numeric.ParseCanonical(v)
	writeJSON(w, http.StatusOK, normalizeBody{Value: v, Valid: err == nil})
}

func (s *Server) describePlots(w http.ResponseWriter, r *http.Request) {
	var fluid string
	if err := runtime.BindQueryParameter("form", true, true, "fluid", r.URL.Query(), &fluid); err != nil {
		badRequest(w, err.Error())
		return
	}
	cat, err := s.plots.DescribePlots(r.Context(), fluid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// buildPlotParams mirrors the query parameters of GET /plots/{plotId}.
type buildPlotParams struct {
	Fluid      string
	Isoline    *int
	Count      *int
	Points     *int
	Saturation *bool
}

func (s *Server) buildPlot(w http.ResponseWriter, r *http.Request) {
	var plotID string
	err := runtime.BindStyledParameterWithOptions("simple", "plotId", chi.URLParam(r, "plotId"), &plotID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var params buildPlotParams
	q := r.URL.Query()
	for _, bind := range []struct {
		name     string
		required bool
		dest     any
	}{
		{"fluid", true, &params.Fluid},
		{"isoline", false, &params.Isoline},
		{"count", false, &params.Count},
		{"points", false, &params.Points},
		{"saturation", false, &params.Saturation},
	} {
		if err := runtime.BindQueryParameter("form", true, bind.required, bind.name, q, bind.dest); err != nil {
			badRequest(w, err.Error())
			return
		}
	}

	isoline := 0
	if params.Isoline != nil {
		isoline = *params.Isoline
	} else {
		cat, err := s.plots.DescribePlots(r.Context(), params.Fluid)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		def, ok := cat.Find(plotID)
		if !ok {
			s.writeError(w, r, domain.ErrUnknownPlot)
			return
		}
		if len(def.IsolineOptions) > 0 {
			isoline = def.IsolineOptions[0].Parameter
		}
	}

	req := domain.PlotRequest{Fluid: params.Fluid, PlotID: plotID}
	if isoline != 0 {
		ir := domain.IsolineRequest{Parameter: isoline}
		if params.Count != nil {
			ir.ValueCount = *params.Count
		}
		if params.Points != nil {
			ir.Points = *params.Points
		}
		req.Isolines = []domain.IsolineRequest{ir}
	}
	if params.Saturation != nil {
		req.IncludeSaturationCurves = *params.Saturation
	}

	data, err := s.plots.BuildPlot(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
