package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/thermoprops/internal/cli"
	"github.com/aretw0/thermoprops/internal/config"
	"github.com/aretw0/thermoprops/internal/presentation/tui"
	"github.com/aretw0/thermoprops/pkg/domain"
)

var rootCmd = &cobra.Command{
	Use:   "thermoprops",
	Short: "Thermodynamic states of fluids, shareable as URL query strings",
	Long: `thermoprops computes thermodynamic properties of fluids and keeps lists of
states in workspaces whose whole state is a URL query string.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Override log.level (debug, info, warn, error)")
}

// openApp loads the config named by --config and builds the app.
// The caller owns the app and must close it.
func openApp(cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	return cli.Build(cmd.Context(), cfg)
}

// withApp runs fn with a built app whose engine is ready, closing it afterwards.
func withApp(cmd *cobra.Command, fn func(*cli.App) error) (err error) {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(cmd.Context()); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := app.WaitEngine(cmd.Context()); err != nil {
		return err
	}
	return fn(app)
}

func printer(cmd *cobra.Command) cli.Printer {
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	render := tui.Plain
	if f, ok := out.(*os.File); ok {
		render = tui.RendererFor(f)
	}
	return cli.Printer{W: out, JSON: asJSON, Render: render}
}

// parseInput splits "T=300" into a property and its raw value.
func parseInput(arg string) (string, string, error) {
	prop, value, ok := strings.Cut(arg, "=")
	if !ok || strings.TrimSpace(prop) == "" {
		return "", "", fmt.Errorf("expected PROPERTY=VALUE, got %q", arg)
	}
	return strings.TrimSpace(prop), value, nil
}

// candidateFromArgs builds a candidate from two PROPERTY=VALUE arguments.
func candidateFromArgs(args []string) (domain.Candidate, error) {
	p1, v1, err := parseInput(args[0])
	if err != nil {
		return domain.Candidate{}, err
	}
	p2, v2, err := parseInput(args[1])
	if err != nil {
		return domain.Candidate{}, err
	}
	return domain.Candidate{Property1: p1, Value1: v1, Property2: p2, Value2: v2}, nil
}
