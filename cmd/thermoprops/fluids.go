package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/thermoprops/internal/cli"
	"github.com/aretw0/thermoprops/internal/presentation/tui"
)

var fluidsCmd = &cobra.Command{
	Use:   "fluids [name]",
	Short: "List fluids, or describe one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			p := printer(cmd)
			if len(args) == 1 {
				meta, err := app.Engine.FluidMetadata(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return p.Print(tui.FluidMarkdown(meta), meta)
			}
			fluids, err := app.Engine.ListFluids(cmd.Context())
			if err != nil {
				return err
			}
			return p.Print(tui.FluidsMarkdown(fluids), map[string][]string{"fluids": fluids})
		})
	},
}

func init() {
	rootCmd.AddCommand(fluidsCmd)
}
