package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/thermoprops/internal/cli"
	"github.com/aretw0/thermoprops/internal/presentation/tui"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/query"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [query]",
	Short: "Resolve the fluid and units of a workspace query",
	Long: `Applies the settings defaults to a workspace query: an unknown or missing fluid
falls back to the first listed fluid and missing units to SI. Prints the fluid
and the settings query, which keeps the states but drops the chart parameters.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			p, _ := query.Parse(app.ApplyDefaults(firstArg(args)))
			resolved, err := workspace.ResolveSettings(cmd.Context(), app.Engine, domain.Settings{
				Fluid: p.Values.Get(query.KeyFluid),
				Units: p.Values.Get(query.KeyUnits),
			})
			if err != nil {
				return err
			}
			next := query.Encode(query.SettingsValues(query.BackToSettings(p.Values), resolved.Settings))

			var b strings.Builder
			b.WriteString(tui.FluidMarkdown(resolved.Metadata))
			fmt.Fprintf(&b, "\n**Units:** %s\n\n`?%s`\n", domain.UnitLabel(resolved.Units), next)
			return printer(cmd).Print(b.String(), struct {
				Settings workspace.ResolvedSettings `json:"settings"`
				Query    string                     `json:"query"`
			}{resolved, next})
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
