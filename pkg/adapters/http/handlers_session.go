package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

type createSessionBody struct {
	ID     string `json:"id"`
	Query  string `json:"query"`
	Preset string `json:"preset"`
}

type viewBody struct {
	View    *domain.ViewMode `json:"view"`
	Plot    *string          `json:"plot"`
	Isoline *int             `json:"isoline"`
}

// mutate runs fn on a stored workspace, publishes the diff and answers with
// the rendering that fn left behind.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(context.Context, *workspace.Controller) error) {
	id := chi.URLParam(r, "id")
	var out workspace.Rendering
	diff, err := s.sessions.Open(r.Context(), id, func(ctx context.Context, c *workspace.Controller) error {
		err := fn(ctx, c)
		out = c.Render(ctx, id)
		return err
	})
	s.streams.Publish(diff)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if body.ID == "" {
		body.ID = uuid.NewString()
	}

	initial := strings.TrimPrefix(body.Query, "?")
	if body.Preset != "" {
		if s.presets == nil {
			s.writeError(w, r, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, body.Preset))
			return
		}
		p, err := s.presets.GetPreset(r.Context(), body.Preset)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		initial = workspace.PresetQuery(p)
	}

	if _, err := s.sessions.Create(r.Context(), body.ID, initial); err != nil {
		s.writeError(w, r, err)
		return
	}

	var out workspace.Rendering
	_, err := s.sessions.Open(r.Context(), body.ID, func(ctx context.Context, c *workspace.Controller) error {
		out = c.Render(ctx, body.ID)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(context.Context, *workspace.Controller) error { return nil })
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addSessionState(w http.ResponseWriter, r *http.Request) {
	var cand domain.Candidate
	if err := json.NewDecoder(r.Body).Decode(&cand); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	s.mutate(w, r, func(ctx context.Context, c *workspace.Controller) error {
		_, err := c.AddState(ctx, cand)
		return err
	})
}

func (s *Server) removeSessionState(w http.ResponseWriter, r *http.Request) {
	stateID := chi.URLParam(r, "stateId")
	s.mutate(w, r, func(ctx context.Context, c *workspace.Controller) error {
		return c.RemoveState(ctx, stateID)
	})
}

func (s *Server) updateSessionView(w http.ResponseWriter, r *http.Request) {
	var body viewBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	s.mutate(w, r, func(ctx context.Context, c *workspace.Controller) error {
		if body.View != nil {
			if err := c.SetViewMode(ctx, *body.View); err != nil {
				return err
			}
		}
		if body.Plot != nil {
			if err := c.SetPlot(ctx, *body.Plot); err != nil {
				return err
			}
		}
		if body.Isoline != nil {
			if err := c.SetIsolineParameter(ctx, *body.Isoline); err != nil {
				return err
			}
		}
		return nil
	})
}

// subscribeSession streams workspace diffs as server-sent events.
func (s *Server) subscribeSession(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeSession: Streaming not supported")
		return
	}

	id := chi.URLParam(r, "id")
	var watch []string
	if raw := r.URL.Query().Get("watch"); raw != "" {
		watch = strings.Split(raw, ",")
	}

	ch, cancel := s.streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: Subscribed to workspace", "workspace_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: Client disconnected", "workspace_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if !matchesWatch(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
