// Package http exposes property evaluation, stateless query workspaces and
// stored workspace sessions over a chi router.
package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/aretw0/thermoprops/pkg/session"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

// Server holds the collaborators of the HTTP surface.
type Server struct {
	engine         ports.PropertyEngine
	plots          ports.PlotEngine
	sessions       *session.Manager
	presets        ports.PresetLoader
	streams        *StreamManager
	logger         *slog.Logger
	gatherer       prometheus.Gatherer
	origins        []string
	controllerOpts []workspace.Option
	version        string
	validate       bool
}

// Option configures a Server.
type Option func(*Server)

// WithPlotEngine enables the /plots endpoints.
func WithPlotEngine(p ports.PlotEngine) Option {
	return func(s *Server) { s.plots = p }
}

// WithSessions enables the /sessions endpoints.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) { s.sessions = m }
}

// WithPresets enables the /presets endpoints and preset-based session creation.
func WithPresets(l ports.PresetLoader) Option {
	return func(s *Server) { s.presets = l }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics exposes g at /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithCORSOrigins restricts cross-origin access. Empty allows any origin.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithControllerOptions configures the controllers built for stateless requests.
func WithControllerOptions(opts ...workspace.Option) Option {
	return func(s *Server) { s.controllerOpts = opts }
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithRequestValidation toggles schema validation of incoming requests.
func WithRequestValidation(enabled bool) Option {
	return func(s *Server) { s.validate = enabled }
}

// NewServer creates a Server.
func NewServer(engine ports.PropertyEngine, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		logger:   logging.NewNop(),
		version:  "dev",
		validate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	return s
}

// Streams returns the SSE fan-out.
func (s *Server) Streams() *StreamManager {
	return s.streams
}

// NewHandler builds the router for engine.
func NewHandler(engine ports.PropertyEngine, opts ...Option) (http.Handler, error) {
	return NewServer(engine, opts...).Handler()
}

// Handler builds the router. It fails only if the embedded document is invalid.
func (s *Server) Handler() (http.Handler, error) {
	doc, err := Spec()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)
	if s.validate {
		mw, err := validateRequests(doc, s.logger)
		if err != nil {
			return nil, err
		}
		r.Use(mw)
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(RawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)

	r.Get("/fluids", s.listFluids)
	r.Get("/fluids/{fluid}", s.getFluid)
	r.Post("/states/compute", s.computeState)
	r.Post("/codec/encode", s.encodeStates)
	r.Post("/codec/decode", s.decodeStates)
	r.Post("/normalize", s.normalizeNumber)
	r.Get("/settings", s.resolveSettings)
	r.Post("/form/pair", s.pairProperties)

	r.Get("/workspace", s.renderWorkspace)
	r.Post("/workspace/states", s.addWorkspaceState)
	r.Delete("/workspace/states/{stateId}", s.removeWorkspaceState)

	if s.plots != nil {
		r.Get("/plots", s.describePlots)
		r.Get("/plots/{plotId}", s.buildPlot)
	}

	if s.sessions != nil {
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessions)
			r.Post("/", s.createSession)
			r.Get("/{id}", s.getSession)
			r.Delete("/{id}", s.deleteSession)
			r.Post("/{id}/states", s.addSessionState)
			r.Delete("/{id}/states/{stateId}", s.removeSessionState)
			r.Put("/{id}/view", s.updateSessionView)
			r.Get("/{id}/events", s.subscribeSession)
		})
	}

	if s.presets != nil {
		r.Get("/presets", s.listPresets)
		r.Get("/presets/{presetId}", s.getPreset)
	}

	return r, nil
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if len(s.origins) > 0 {
			origin = ""
			if o := r.Header.Get("Origin"); slices.Contains(s.origins, o) {
				origin = o
				w.Header().Add("Vary", "Origin")
			}
		}
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.engine == nil || !s.engine.Ready() {
		status = "engine_loading"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := Spec(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "thermoprops-http",
		"version":     strings.TrimSpace(s.version),
		"api_version": apiVersion,
	})
}
