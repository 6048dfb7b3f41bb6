package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/daybook/internal/client"
	"github.com/MKhiriev/daybook/models"
)

func (c *cli) goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals and milestones",
	}
	cmd.AddCommand(c.goalAddCmd(), c.goalProgressCmd(), c.goalToggleCmd(), c.goalListCmd())
	return cmd
}

func (c *cli) goalAddCmd() *cobra.Command {
	var (
		description string
		target      string
		milestones  []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Add a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal := models.Goal{
				Title:       strings.Join(args, " "),
				Description: description,
				Status:      models.GoalActive,
			}
			if target != "" {
				day, err := parseDay(target)
				if err != nil {
					return err
				}
				goal.TargetDate = &day
			}
			for _, title := range milestones {
				goal.Milestones = append(goal.Milestones, models.Milestone{Title: title})
			}

			return c.withSession(cmd, func(app *client.App) error {
				created, err := app.Services.Goals.Create(cmd.Context(), goal)
				if err = writeResult(cmd, err); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Goal %s added with %d milestones.\n", created.ID, len(created.Milestones))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "goal description")
	cmd.Flags().StringVar(&target, "target", "", "target date ("+models.DateLayout+")")
	cmd.Flags().StringArrayVar(&milestones, "milestone", nil, "milestone title, repeatable")

	return cmd
}

func (c *cli) goalProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <goal-id> <percent>",
		Short: "Set goal progress (0-100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkIDs(args[0]); err != nil {
				return err
			}
			progress, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("progress must be a number: %w", err)
			}

			return c.withSession(cmd, func(app *client.App) error {
				goal, err := app.Services.Goals.SetProgress(cmd.Context(), args[0], progress)
				if err = writeResult(cmd, err); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% (%s).\n", goal.Title, goal.Progress, goal.Status)
				return nil
			})
		},
	}
}

func (c *cli) goalToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <goal-id> <milestone-id>",
		Short: "Toggle a milestone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkIDs(args...); err != nil {
				return err
			}
			return c.withSession(cmd, func(app *client.App) error {
				goal, err := app.Services.Goals.ToggleMilestone(cmd.Context(), args[0], args[1])
				if err = writeResult(cmd, err); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% (%s).\n", goal.Title, goal.Progress, goal.Status)
				return nil
			})
		},
	}
}

func (c *cli) goalListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(app *client.App) error {
				var (
					goals []models.Goal
					err   error
				)
				if status == "" {
					goals, err = app.Services.Goals.List(cmd.Context())
				} else {
					goals, err = app.Services.Goals.ListByStatus(cmd.Context(), models.GoalStatus(status))
				}
				if err != nil {
					return userError(err)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				defer w.Flush()

				fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPROGRESS\tTARGET")
				for _, g := range goals {
					title := g.Title
					if g.Corrupted {
						title = "<unreadable>"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%s\n", g.ID, title, g.Status, g.Progress, formatOptionalDay(g.TargetDate))
					for _, m := range g.Milestones {
						mark := " "
						if m.Completed {
							mark = "x"
						}
						fmt.Fprintf(w, "\t  [%s] %s\t%s\t\t\n", mark, m.Title, m.ID)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "active, completed or abandoned")

	return cmd
}

func formatOptionalDay(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(models.DateLayout)
}
