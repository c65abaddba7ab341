package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/thermoprops"
	"github.com/aretw0/thermoprops/internal/cli"
	"github.com/aretw0/thermoprops/internal/presentation/tui"
)

var stateCmd = &cobra.Command{
	Use:   "state PROPERTY=VALUE PROPERTY=VALUE",
	Short: "Compute every output property of a single state",
	Long: `Computes one state from two independent inputs, for example:

  thermoprops state --fluid Nitrogen T=300 "P=101 325"

Values may use a comma or a dot as decimal separator.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cand, err := candidateFromArgs(args)
		if err != nil {
			return err
		}
		return withApp(cmd, func(app *cli.App) error {
			fluid, _ := cmd.Flags().GetString("fluid")
			if fluid == "" {
				fluid = app.Config.Defaults.Fluid
			}
			cs, err := thermoprops.Compute(cmd.Context(), fluid, cand,
				thermoprops.WithEngine(app.Engine),
				thermoprops.WithLogger(app.Logger),
			)
			if err != nil {
				return err
			}
			return printer(cmd).Print(tui.StateMarkdown(cs), cs)
		})
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().StringP("fluid", "f", "", "Fluid name or alias (default defaults.fluid)")
}
