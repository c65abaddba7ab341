package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/thermoprops"
	"github.com/aretw0/thermoprops/internal/cli"
	"github.com/aretw0/thermoprops/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API: stateless workspace rendering, stored sessions with
server-sent events, plots, presets and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close(cmd.Context())

		addr, _ := cmd.Flags().GetString("addr")
		if strings.TrimSpace(addr) == "" {
			addr = app.Config.Server.Addr
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(cmd.ErrOrStderr())
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if err := app.Serve(ctx, addr, thermoprops.Version()); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			app.Logger.Info("Stopped by signal", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default server.addr)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
