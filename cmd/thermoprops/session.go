package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aretw0/thermoprops/internal/cli"
	"github.com/aretw0/thermoprops/pkg/workspace"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored workspaces",
	Long: `Create, list, inspect, edit and remove workspaces kept in the configured store.
The default memory store forgets everything on exit; set store.driver to file,
sqlite, postgres or redis to keep sessions between runs.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			ids, err := app.Sessions.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			var b strings.Builder
			if len(ids) == 0 {
				b.WriteString("No stored workspaces found.\n")
			} else {
				b.WriteString("# Workspaces\n\n")
				for _, id := range ids {
					fmt.Fprintf(&b, "- %s\n", id)
				}
			}
			return printer(cmd).Print(b.String(), map[string][]string{"sessions": ids})
		})
	},
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create [id]",
	Short: "Create a workspace from a query or a preset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			ctx := cmd.Context()
			id := firstArg(args)
			if id == "" {
				id = uuid.NewString()
			}

			initial, _ := cmd.Flags().GetString("query")
			if presetID, _ := cmd.Flags().GetString("preset"); presetID != "" {
				p, err := app.Presets.GetPreset(ctx, presetID)
				if err != nil {
					return err
				}
				initial = workspace.PresetQuery(p)
			}
			if _, err := app.Sessions.Create(ctx, id, app.ApplyDefaults(initial)); err != nil {
				return err
			}
			return printSession(cmd, app, id, nil)
		})
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Render a stored workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			return printSession(cmd, app, args[0], nil)
		})
	},
}

var sessionAddCmd = &cobra.Command{
	Use:   "add <id> PROPERTY=VALUE PROPERTY=VALUE",
	Short: "Add a state to a stored workspace",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cand, err := candidateFromArgs(args[1:])
		if err != nil {
			return err
		}
		return withApp(cmd, func(app *cli.App) error {
			return printSession(cmd, app, args[0], func(ctx context.Context, c *workspace.Controller) error {
				_, err := c.AddState(ctx, cand)
				return err
			})
		})
	},
}

var sessionViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Change the settings or view of a stored workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			return printSession(cmd, app, args[0], func(ctx context.Context, c *workspace.Controller) error {
				return applyViewFlags(ctx, cmd, c)
			})
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Remove one or more stored workspaces",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			hasError := false
			for _, id := range args {
				if err := app.Sessions.Delete(cmd.Context(), id); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", id, err)
					hasError = true
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", id)
				}
			}
			if hasError {
				return fmt.Errorf("failed to remove some sessions")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionViewCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionCreateCmd.Flags().String("query", "", "Initial workspace query")
	sessionCreateCmd.Flags().String("preset", "", "Initial preset id (overrides --query)")
	addViewFlags(sessionViewCmd)
	sessionInspectCmd.Flags().Bool("mermaid", false, "Print the state path as a Mermaid diagram")
}

// printSession opens a stored workspace, applies fn (if any) and prints the result.
func printSession(cmd *cobra.Command, app *cli.App, id string, fn func(context.Context, *workspace.Controller) error) error {
	var r workspace.Rendering
	_, err := app.Sessions.Open(cmd.Context(), id, func(ctx context.Context, c *workspace.Controller) error {
		var fnErr error
		if fn != nil {
			fnErr = fn(ctx, c)
		}
		r = c.Render(ctx, id)
		return fnErr
	})
	if r.ID == "" {
		return err
	}
	if perr := printRendering(cmd, r); perr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), perr)
	}
	return err
}
