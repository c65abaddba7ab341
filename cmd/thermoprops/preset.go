package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/thermoprops/internal/cli"
	"github.com/aretw0/thermoprops/internal/presentation/tui"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Browse workspace presets",
}

var presetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List preset ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			ids, err := app.Presets.ListPresets(cmd.Context())
			if err != nil {
				return err
			}
			var b strings.Builder
			b.WriteString("# Presets\n\n")
			for _, id := range ids {
				fmt.Fprintf(&b, "- %s\n", id)
			}
			return printer(cmd).Print(b.String(), map[string][]string{"presets": ids})
		})
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Describe a preset and the workspace query it opens",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			p, err := app.Presets.GetPreset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printer(cmd).Print(tui.PresetMarkdown(p), struct {
				Preset domain.Preset `json:"preset"`
				Query  string        `json:"query"`
			}{p, workspace.PresetQuery(p)})
		})
	},
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetLsCmd)
	presetCmd.AddCommand(presetShowCmd)
}
