package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpadapter "github.com/aretw0/thermoprops/pkg/adapters/http"
	"github.com/aretw0/thermoprops/pkg/adapters/mcp"
)

// HTTPHandler builds the HTTP API over the app's collaborators.
func (a *App) HTTPHandler(version string) (http.Handler, *httpadapter.Server, error) {
	srv := httpadapter.NewServer(a.Engine,
		httpadapter.WithPlotEngine(a.Plots),
		httpadapter.WithSessions(a.Sessions),
		httpadapter.WithPresets(a.Presets),
		httpadapter.WithLogger(a.Logger),
		httpadapter.WithMetrics(a.Registry),
		httpadapter.WithCORSOrigins(a.Config.Server.CORSOrigins...),
		httpadapter.WithControllerOptions(a.ControllerOptions()...),
		httpadapter.WithVersion(version),
	)
	h, err := srv.Handler()
	if err != nil {
		return nil, nil, err
	}
	return h, srv, nil
}

// MCPServer builds the MCP tool server over the app's collaborators.
func (a *App) MCPServer(version string) *mcp.Server {
	return mcp.NewServer(a.Engine,
		mcp.WithPresets(a.Presets),
		mcp.WithLogger(a.Logger),
		mcp.WithVersion(version),
		mcp.WithControllerOptions(a.ControllerOptions()...),
	)
}

// Serve runs the HTTP API on addr until ctx is cancelled, then drains requests.
func (a *App) Serve(ctx context.Context, addr, version string) error {
	handler, _, err := a.HTTPHandler(version)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: a.Config.Server.ReadTimeout,
		ReadTimeout:       a.Config.Server.ReadTimeout,
		// SSE streams stay open; WriteTimeout would cut them.
		IdleTimeout: 2 * a.Config.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting thermoprops server", "addr", addr, "engine", a.Config.Engine.Kind, "store", a.Config.Store.Driver)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.Logger.Info("Start shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("Graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		a.Logger.Info("Server stopped gracefully")
		return nil
	}
}
