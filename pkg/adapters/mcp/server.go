// Package mcp exposes property evaluation and query-encoded workspaces as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/codec"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/numeric"
	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

// FluidsResponse lists the fluids known to the engine.
type FluidsResponse struct {
	Fluids []string `json:"fluids" jsonschema_description:"Fluid names, sorted"`
}

// StatesResponse carries decoded state definitions.
type StatesResponse struct {
	States []domain.StateDefinition `json:"states" jsonschema_description:"Decoded states; empty when the token is invalid"`
}

// FluidArgs selects a fluid.
type FluidArgs struct {
	Fluid string `json:"fluid"`
}

// ComputeArgs describes one state to evaluate.
type ComputeArgs struct {
	Fluid     string `json:"fluid"`
	Property1 string `json:"property1"`
	Value1    string `json:"value1"`
	Property2 string `json:"property2"`
	Value2    string `json:"value2"`
}

// QueryArgs carries a workspace query string.
type QueryArgs struct {
	Query string `json:"query"`
}

// AddStateArgs adds a state to a workspace query.
type AddStateArgs struct {
	Query     string `json:"query"`
	Property1 string `json:"property1"`
	Value1    string `json:"value1"`
	Property2 string `json:"property2"`
	Value2    string `json:"value2"`
}

// RemoveStateArgs removes a state from a workspace query.
type RemoveStateArgs struct {
	Query   string `json:"query"`
	StateID string `json:"state_id"`
}

// TokenArgs carries a states token.
type TokenArgs struct {
	Token string `json:"token"`
}

// Server wraps a property engine and exposes it as an MCP Server.
type Server struct {
	engine         ports.PropertyEngine
	presets        ports.PresetLoader
	controllerOpts []workspace.Option
	logger         *slog.Logger
	version        string
	mcpServer      *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithPresets exposes presets as resources.
func WithPresets(l ports.PresetLoader) Option {
	return func(s *Server) { s.presets = l }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithVersion sets the advertised server version.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = strings.TrimSpace(v) }
}

// WithControllerOptions configures the controllers built for workspace tools.
func WithControllerOptions(opts ...workspace.Option) Option {
	return func(s *Server) { s.controllerOpts = opts }
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.PropertyEngine, opts ...Option) *Server {
	s := &Server{
		engine:  engine,
		logger:  logging.NewNop(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcpServer = server.NewMCPServer("thermoprops-mcp", s.version)
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+host))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func stateParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("property1", mcp.Required(), mcp.Description("First input property (T, P, D, H, S, U)")),
		mcp.WithString("value1", mcp.Required(), mcp.Description("First input value; comma or dot decimals")),
		mcp.WithString("property2", mcp.Required(), mcp.Description("Second input property, distinct from the first")),
		mcp.WithString("value2", mcp.Required(), mcp.Description("Second input value")),
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_fluids",
		mcp.WithDescription("List the fluids known to the property engine."),
		mcp.WithOutputSchema[FluidsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListFluids))

	s.mcpServer.AddTool(mcp.NewTool("fluid_info",
		mcp.WithDescription("Get the name, aliases and formula of a fluid."),
		mcp.WithString("fluid", mcp.Required(), mcp.Description("Fluid name or alias")),
		mcp.WithOutputSchema[domain.FluidMetadata](),
	), mcp.NewStructuredToolHandler(s.handleFluidInfo))

	computeOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Evaluate every output property of one thermodynamic state."),
		mcp.WithString("fluid", mcp.Required(), mcp.Description("Fluid name")),
		mcp.WithOutputSchema[domain.ComputedState](),
	}, stateParams()...)
	s.mcpServer.AddTool(mcp.NewTool("compute_state", computeOpts...), mcp.NewStructuredToolHandler(s.handleComputeState))

	s.mcpServer.AddTool(mcp.NewTool("workspace_view",
		mcp.WithDescription("Render the workspace encoded in a URL query string."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Workspace query, e.g. fluid=Nitrogen&states=...")),
		mcp.WithOutputSchema[workspace.Rendering](),
	), mcp.NewStructuredToolHandler(s.handleWorkspaceView))

	addOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Add a state to a workspace query and return the updated workspace."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Workspace query")),
		mcp.WithOutputSchema[workspace.Rendering](),
	}, stateParams()...)
	s.mcpServer.AddTool(mcp.NewTool("add_state", addOpts...), mcp.NewStructuredToolHandler(s.handleAddState))

	s.mcpServer.AddTool(mcp.NewTool("remove_state",
		mcp.WithDescription("Remove a state from a workspace query and return the updated workspace."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Workspace query")),
		mcp.WithString("state_id", mcp.Required(), mcp.Description("ID of the state to remove")),
		mcp.WithOutputSchema[workspace.Rendering](),
	), mcp.NewStructuredToolHandler(s.handleRemoveState))

	s.mcpServer.AddTool(mcp.NewTool("decode_states",
		mcp.WithDescription("Decode the states token of a workspace query."),
		mcp.WithString("token", mcp.Required(), mcp.Description("Value of the states query parameter")),
		mcp.WithOutputSchema[StatesResponse](),
	), mcp.NewStructuredToolHandler(s.handleDecodeStates))
}

func (s *Server) ready() error {
	if s.engine == nil || !s.engine.Ready() {
		return domain.ErrEngineUnavailable
	}
	return nil
}

func (s *Server) handleListFluids(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (FluidsResponse, error) {
	if err := s.ready(); err != nil {
		return FluidsResponse{}, err
	}
	fluids, err := s.engine.ListFluids(ctx)
	if err != nil {
		return FluidsResponse{}, fmt.Errorf("list fluids: %w", err)
	}
	return FluidsResponse{Fluids: fluids}, nil
}

func (s *Server) handleFluidInfo(ctx context.Context, _ mcp.CallToolRequest, args FluidArgs) (domain.FluidMetadata, error) {
	if err := s.ready(); err != nil {
		return domain.FluidMetadata{}, err
	}
	return s.engine.FluidMetadata(ctx, args.Fluid)
}

func (s *Server) handleComputeState(ctx context.Context, _ mcp.CallToolRequest, args ComputeArgs) (domain.ComputedState, error) {
	cand := domain.Candidate{
		Property1: args.Property1,
		Value1:    numeric.Normalize(args.Value1),
		Property2: args.Property2,
		Value2:    numeric.Normalize(args.Value2),
	}
	if err := workspace.ValidateCandidate(cand); err != nil {
		return domain.ComputedState{}, err
	}
	def := domain.StateDefinition{
		Property1: cand.Property1,
		Value1:    cand.Value1,
		Property2: cand.Property2,
		Value2:    cand.Value2,
	}
	results, err := workspace.CalculateProperties(ctx, s.engine, args.Fluid, def)
	if err != nil {
		s.logger.Warn("MCP compute_state: Rejected", "fluid", args.Fluid, "err", err)
		return domain.ComputedState{}, err
	}
	return domain.ComputedState{Definition: def, Results: results}, nil
}

func (s *Server) controller(ctx context.Context, raw string) (*workspace.Controller, error) {
	c := workspace.New(s.engine, s.controllerOpts...)
	if _, err := c.ApplyExternal(ctx, raw); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Server) handleWorkspaceView(ctx context.Context, _ mcp.CallToolRequest, args QueryArgs) (workspace.Rendering, error) {
	c, err := s.controller(ctx, args.Query)
	if err != nil {
		return workspace.Rendering{}, err
	}
	return c.Render(ctx, ""), nil
}

func (s *Server) handleAddState(ctx context.Context, _ mcp.CallToolRequest, args AddStateArgs) (workspace.Rendering, error) {
	c, err := s.controller(ctx, args.Query)
	if err != nil {
		return workspace.Rendering{}, err
	}
	_, err = c.AddState(ctx, domain.Candidate{
		Property1: args.Property1,
		Value1:    args.Value1,
		Property2: args.Property2,
		Value2:    args.Value2,
	})
	if err != nil {
		return workspace.Rendering{}, fmt.Errorf("%s: %w", domain.UserMessage(err), err)
	}
	return c.Render(ctx, ""), nil
}

func (s *Server) handleRemoveState(ctx context.Context, _ mcp.CallToolRequest, args RemoveStateArgs) (workspace.Rendering, error) {
	c, err := s.controller(ctx, args.Query)
	if err != nil {
		return workspace.Rendering{}, err
	}
	if err := c.RemoveState(ctx, args.StateID); err != nil {
		return workspace.Rendering{}, err
	}
	return c.Render(ctx, ""), nil
}

func (s *Server) handleDecodeStates(ctx context.Context, _ mcp.CallToolRequest, args TokenArgs) (StatesResponse, error) {
	states := codec.New(codec.WithLogger(s.logger)).Decode(ctx, args.Token)
	if states == nil {
		states = []domain.StateDefinition{}
	}
	return StatesResponse{States: states}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("thermoprops://fluids", "Known fluids",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		resp, err := s.handleListFluids(ctx, mcp.CallToolRequest{}, struct{}{})
		if err != nil {
			return nil, err
		}
		return jsonResource("thermoprops://fluids", resp)
	})

	if s.presets == nil {
		return
	}
	s.mcpServer.AddResource(mcp.NewResource("thermoprops://presets", "Preset workspaces",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.presets.ListPresets(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list presets: %w", err)
		}
		queries := make(map[string]string, len(ids))
		for _, id := range ids {
			p, err := s.presets.GetPreset(ctx, id)
			if err != nil {
				return nil, err
			}
			queries[id] = workspace.PresetQuery(p)
		}
		return jsonResource("thermoprops://presets", queries)
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}
