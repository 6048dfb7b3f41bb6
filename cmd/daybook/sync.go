package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/daybook/internal/client"
	"github.com/MKhiriev/daybook/models"
)

var errNoRemote = errors.New("no sync endpoint configured, set --remote or ADAPTER_HTTP_ADDRESS")

// Queue commands work on encrypted payloads only and need no passphrase.
func (c *cli) syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Inspect and drive the sync queue",
	}
	cmd.AddCommand(c.syncStatusCmd(), c.syncDrainCmd(), c.syncRetryCmd(), c.syncClearCmd())
	return cmd
}

func (c *cli) syncStatusCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show queue counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			status := app.Services.Sync.Status(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pending: %d\n", status.Pending)
			fmt.Fprintf(out, "failed:  %d\n", status.Failed)
			if status.LastSyncTimestamp != nil {
				fmt.Fprintf(out, "last sync: %s\n", status.LastSyncTimestamp.Local().Format("2006-01-02 15:04:05"))
			} else {
				fmt.Fprintln(out, "last sync: never")
			}

			if verbose {
				printOperations(cmd, app.Services.Sync.Operations(cmd.Context()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list queued operations")

	return cmd
}

func (c *cli) syncDrainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drain",
		Short: "Push queued operations to the sync endpoint now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp(cmd.Context(), client.WithInitialProbe())
			if err != nil {
				return err
			}
			defer app.Close()

			if !app.RemoteConfigured() {
				return errNoRemote
			}

			res, err := app.Services.Sync.Drain(cmd.Context())
			if err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			switch {
			case res.Offline:
				fmt.Fprintln(out, "Sync endpoint is unreachable, nothing was sent.")
			case res.Skipped:
				fmt.Fprintln(out, "Another drain is running.")
			default:
				fmt.Fprintf(out, "Sent %d of %d operations (%d will be retried, %d failed).\n",
					res.Succeeded, res.Attempted, res.Requeued, res.Failed)
			}
			return nil
		},
	}
}

func (c *cli) syncRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Move failed operations back to pending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := app.Services.Sync.RetryFailed(cmd.Context())
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d operations requeued.\n", n)
			return nil
		},
	}
}

func (c *cli) syncClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-failed",
		Short: "Drop failed operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := app.Services.Sync.ClearFailed(cmd.Context())
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d failed operations removed.\n", n)
			return nil
		},
	}
}

func printOperations(cmd *cobra.Command, ops []models.SyncOperation) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTYPE\tENTITY\tSTATUS\tRETRIES\tERROR")
	for _, op := range ops {
		fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\t%d\t%s\n", op.ID, op.Type, op.Entity, op.EntityID, op.Status, op.RetryCount, op.Error)
	}
}
