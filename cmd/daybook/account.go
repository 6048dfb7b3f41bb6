package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/daybook/internal/auth"
	"github.com/MKhiriev/daybook/internal/client"
	"github.com/MKhiriev/daybook/models"
)

var errPassphraseMismatch = errors.New("passphrases do not match")

func (c *cli) initCmd() *cobra.Command {
	var birthDate string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the account on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := time.Parse(models.DateLayout, birthDate)
			if err != nil {
				return fmt.Errorf("--birth-date must be %s: %w", models.DateLayout, err)
			}

			app, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if app.Services.Account.State() != auth.StateNoUser {
				return errors.New("an account already exists on this device")
			}

			passphrase, err := c.readPassphrase(cmd, "New passphrase: ")
			if err != nil {
				return err
			}
			confirm, err := c.readPassphrase(cmd, "Repeat passphrase: ")
			if err != nil {
				return err
			}
			if passphrase != confirm {
				return errPassphraseMismatch
			}

			user, err := app.Services.Account.CreateAccount(cmd.Context(), birth, passphrase)
			if err = writeResult(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account %s created.\n", user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date ("+models.DateLayout+")")
	_ = cmd.MarkFlagRequired("birth-date")

	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the passphrase against the stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(app *client.App) error {
				user, err := app.Services.Account.Current(cmd.Context())
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unlocked account %s.\n", user.ID)
				return nil
			})
		},
	}
}
