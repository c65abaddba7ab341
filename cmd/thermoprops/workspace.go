package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/thermoprops/internal/cli"
	"github.com/aretw0/thermoprops/internal/presentation/graph"
	"github.com/aretw0/thermoprops/internal/presentation/tui"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

var workspaceCmd = &cobra.Command{
	Use:     "workspace [query]",
	Aliases: []string{"ws"},
	Short:   "Render the workspace encoded in a query string",
	Long: `Renders a workspace query such as "fluid=Nitrogen&states=...".
The subcommands edit the query and print the resulting workspace; the new
query is the last line of the output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editWorkspace(cmd, firstArg(args), func(context.Context, *workspace.Controller) error {
			return nil
		})
	},
}

var workspaceAddCmd = &cobra.Command{
	Use:   "add <query> PROPERTY=VALUE PROPERTY=VALUE",
	Short: "Add a state to a workspace query",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cand, err := candidateFromArgs(args[1:])
		if err != nil {
			return err
		}
		return editWorkspace(cmd, args[0], func(ctx context.Context, c *workspace.Controller) error {
			_, err := c.AddState(ctx, cand)
			return err
		})
	},
}

var workspaceRmCmd = &cobra.Command{
	Use:   "rm <query> <state-id>",
	Short: "Remove a state from a workspace query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editWorkspace(cmd, args[0], func(ctx context.Context, c *workspace.Controller) error {
			return c.RemoveState(ctx, args[1])
		})
	},
}

var workspaceViewCmd = &cobra.Command{
	Use:   "view <query>",
	Short: "Change the settings or view of a workspace query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editWorkspace(cmd, args[0], func(ctx context.Context, c *workspace.Controller) error {
			return applyViewFlags(ctx, cmd, c)
		})
	},
}

func init() {
	rootCmd.AddCommand(workspaceCmd)
	workspaceCmd.AddCommand(workspaceAddCmd)
	workspaceCmd.AddCommand(workspaceRmCmd)
	workspaceCmd.AddCommand(workspaceViewCmd)
	addViewFlags(workspaceViewCmd)
	workspaceCmd.PersistentFlags().Bool("mermaid", false, "Print the state path as a Mermaid diagram")
}

// printRendering prints r as markdown or JSON, or as a raw Mermaid diagram
// when the command carries a set --mermaid flag.
func printRendering(cmd *cobra.Command, r workspace.Rendering) error {
	if f := cmd.Flags().Lookup("mermaid"); f != nil && f.Changed {
		if asMermaid, _ := cmd.Flags().GetBool("mermaid"); asMermaid {
			_, err := fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(r))
			return err
		}
	}
	return printer(cmd).Print(tui.WorkspaceMarkdown(r), r)
}

// editWorkspace loads raw into a controller, runs fn and prints the result.
// The rendering is printed even when fn fails, so the form error is visible.
func editWorkspace(cmd *cobra.Command, raw string, fn func(context.Context, *workspace.Controller) error) error {
	return withApp(cmd, func(app *cli.App) error {
		ctx := cmd.Context()
		c := workspace.New(app.Engine, app.ControllerOptions()...)
		if _, err := c.ApplyExternal(ctx, app.ApplyDefaults(raw)); err != nil {
			return err
		}
		fnErr := fn(ctx, c)
		if err := printRendering(cmd, c.Render(ctx, "")); err != nil {
			return err
		}
		return fnErr
	})
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("fluid", "", "Fluid name")
	cmd.Flags().String("units", "", "Unit system id")
	cmd.Flags().String("mode", "", "View mode: graph or table")
	cmd.Flags().String("plot", "", "Chart id, for example ph or ts")
	cmd.Flags().Int("isoline", 0, "Isoline parameter code")
}

func applyViewFlags(ctx context.Context, cmd *cobra.Command, c *workspace.Controller) error {
	if cmd.Flags().Changed("fluid") || cmd.Flags().Changed("units") {
		s := c.Settings()
		if cmd.Flags().Changed("fluid") {
			s.Fluid, _ = cmd.Flags().GetString("fluid")
		}
		if cmd.Flags().Changed("units") {
			s.Units, _ = cmd.Flags().GetString("units")
		}
		if err := c.SetSettings(ctx, s); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("mode") {
		mode, _ := cmd.Flags().GetString("mode")
		if err := c.SetViewMode(ctx, domain.ViewMode(mode)); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("plot") {
		plotID, _ := cmd.Flags().GetString("plot")
		if err := c.SetPlot(ctx, plotID); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("isoline") {
		param, _ := cmd.Flags().GetInt("isoline")
		if err := c.SetIsolineParameter(ctx, param); err != nil {
			return err
		}
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
