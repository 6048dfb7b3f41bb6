package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/daybook/internal/client"
	"github.com/MKhiriev/daybook/models"
)

func (c *cli) habitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Track habits",
	}
	cmd.AddCommand(c.habitAddCmd(), c.habitDoneCmd(), c.habitListCmd())
	return cmd
}

func (c *cli) habitAddCmd() *cobra.Command {
	var (
		frequency   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add <name>...",
		Short: "Start tracking a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(app *client.App) error {
				habit, err := app.Services.Habits.Create(cmd.Context(), models.Habit{
					Name:        strings.Join(args, " "),
					Description: description,
					Frequency:   models.Frequency(frequency),
				})
				if err = writeResult(cmd, err); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Habit %s added.\n", habit.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&frequency, "frequency", string(models.FrequencyDaily), "daily, weekly or monthly")
	cmd.Flags().StringVar(&description, "description", "", "habit description")

	return cmd
}

func (c *cli) habitDoneCmd() *cobra.Command {
	var (
		date string
		undo bool
	)

	cmd := &cobra.Command{
		Use:   "done <habit-id>",
		Short: "Mark a habit as done for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkIDs(args[0]); err != nil {
				return err
			}
			day, err := parseDay(date)
			if err != nil {
				return err
			}

			return c.withSession(cmd, func(app *client.App) error {
				habits := app.Services.Habits

				var habit models.Habit
				if undo {
					habit, err = habits.Uncomplete(cmd.Context(), args[0], day)
				} else {
					habit, err = habits.Complete(cmd.Context(), args[0], day)
				}
				if err = writeResult(cmd, err); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: current streak %d, longest %d.\n",
					habit.Name, habit.CurrentStreak, habit.LongestStreak)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day ("+models.DateLayout+"), today by default")
	cmd.Flags().BoolVar(&undo, "undo", false, "remove the completion instead")

	return cmd
}

func (c *cli) habitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits with their streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(app *client.App) error {
				habits, err := app.Services.Habits.List(cmd.Context())
				if err != nil {
					return userError(err)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				defer w.Flush()

				fmt.Fprintln(w, "ID\tNAME\tFREQUENCY\tSTREAK\tBEST")
				for _, h := range habits {
					name := h.Name
					if h.Corrupted {
						name = "<unreadable>"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", h.ID, name, h.Frequency, h.CurrentStreak, h.LongestStreak)
				}
				return nil
			})
		},
	}
}
