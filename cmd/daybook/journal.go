package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/daybook/internal/client"
	"github.com/MKhiriev/daybook/models"
)

func (c *cli) journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
	}
	cmd.AddCommand(c.journalAddCmd(), c.journalListCmd())
	return cmd
}

func (c *cli) journalAddCmd() *cobra.Command {
	var (
		date  string
		title string
		mood  string
		tags  []string
	)

	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a journal entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}

			return c.withSession(cmd, func(app *client.App) error {
				entry, err := app.Services.Journal.Create(cmd.Context(), models.JournalEntry{
					Date:    day,
					Title:   title,
					Content: strings.Join(args, " "),
					Mood:    mood,
					Tags:    tags,
				})
				if err = writeResult(cmd, err); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Entry %s saved for %s.\n", entry.ID, entry.Date.Format(models.DateLayout))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date ("+models.DateLayout+"), today by default")
	cmd.Flags().StringVar(&title, "title", "", "entry title")
	cmd.Flags().StringVar(&mood, "mood", "", "mood")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag, repeatable")

	return cmd
}

func (c *cli) journalListCmd() *cobra.Command {
	var (
		from     string
		to       string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(app *client.App) error {
				ctx := cmd.Context()

				var (
					entries []models.JournalEntry
					err     error
				)
				switch {
				case from != "" || to != "":
					var start, end time.Time
					if start, err = parseDay(from); err != nil {
						return err
					}
					if end, err = parseDay(to); err != nil {
						return err
					}
					entries, err = app.Services.Journal.ListByDateRange(ctx, start, end)
				default:
					var p models.Page[models.JournalEntry]
					p, err = app.Services.Journal.ListPage(ctx, page, pageSize)
					entries = p.Items
					if err == nil && p.HasMore {
						defer fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d entries shown, use --page %d for more.\n", len(p.Items), p.Total, page+1)
					}
				}
				if err != nil {
					return userError(err)
				}

				printEntries(cmd, entries)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day ("+models.DateLayout+")")
	cmd.Flags().StringVar(&to, "to", "", "last day ("+models.DateLayout+")")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "entries per page")

	return cmd
}

func printEntries(cmd *cobra.Command, entries []models.JournalEntry) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "DATE\tID\tMOOD\tTEXT")
	for _, e := range entries {
		text := e.Content
		if e.Title != "" {
			text = e.Title + ": " + text
		}
		if e.Corrupted {
			text = "<unreadable>"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date.Format(models.DateLayout), e.ID, e.Mood, firstLine(text, 60))
	}
}

// parseDay parses a DateLayout day; empty means the local today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be %s", s, models.DateLayout)
	}
	return day, nil
}

func firstLine(s string, limit int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	if r := []rune(s); len(r) > limit {
		s = string(r[:limit-3]) + "..."
	}
	return s
}
