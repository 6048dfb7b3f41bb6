package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/daybook/internal/auth"
	"github.com/MKhiriev/daybook/internal/client"
	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/internal/service"
	"github.com/MKhiriev/daybook/internal/utils"
	"github.com/MKhiriev/daybook/models"
)

var errNoAccount = errors.New("no account on this device, run `daybook init` first")

// cli holds what every command shares. cfg and log are set by the root
// PersistentPreRunE.
type cli struct {
	flags *config.Flags
	build models.AppBuildInfo

	cfg *config.StructuredConfig
	log *logger.Logger

	stdin *bufio.Reader

	// newLogger builds the logger once the configuration is known.
	newLogger func(cfg config.Log) *logger.Logger
}

func newRootCmd(build models.AppBuildInfo) *cobra.Command {
	c := &cli{
		build: build,
		newLogger: func(cfg config.Log) *logger.Logger {
			return logger.NewFileLogger("daybook-cli", cfg.Level, cfg.File)
		},
	}

	root := &cobra.Command{
		Use:   "daybook",
		Short: "Daybook - an encrypted, local-first journal",
		Long: `Daybook keeps journal entries, goals and habits on this device,
encrypted with a key derived from your passphrase. Changes are queued and
pushed to a remote sync endpoint whenever it is reachable.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetStructuredConfig(c.flags)
			if err != nil {
				return fmt.Errorf("error getting configs: %w", err)
			}
			c.cfg = cfg
			c.log = c.newLogger(cfg.Log)
			return nil
		},
	}
	c.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		c.initCmd(),
		c.loginCmd(),
		c.journalCmd(),
		c.habitCmd(),
		c.goalCmd(),
		c.syncCmd(),
		c.serveCmd(),
		c.versionCmd(),
	)

	return root
}

// openApp builds the core. The caller must Close it.
func (c *cli) openApp(ctx context.Context, opts ...client.Option) (*client.App, error) {
	app, err := client.New(ctx, c.cfg, c.build, c.log, opts...)
	if err != nil {
		return nil, fmt.Errorf("init daybook: %w", err)
	}
	return app, nil
}

// withSession opens the core, prompts for the passphrase, unlocks the
// session and runs fn.
func (c *cli) withSession(cmd *cobra.Command, fn func(app *client.App) error) error {
	ctx := cmd.Context()

	app, err := c.openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.Services.Account.State() == auth.StateNoUser {
		return errNoAccount
	}

	passphrase, err := c.readPassphrase(cmd, "Passphrase: ")
	if err != nil {
		return err
	}
	if err = app.Services.Account.Login(ctx, passphrase); err != nil {
		return userError(err)
	}
	defer app.Services.Account.Logout()

	return fn(app)
}

// writeResult reports a write. A change saved locally but not queued for
// sync is a warning on stderr, not a failure.
func writeResult(cmd *cobra.Command, err error) error {
	if errors.Is(err, repository.ErrEnqueueFailed) {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", userError(err))
		return nil
	}
	return userError(err)
}

// checkIDs rejects arguments that cannot be record ids before the
// passphrase prompt.
func checkIDs(ids ...string) error {
	for _, id := range ids {
		if !utils.IsID(id) {
			return fmt.Errorf("%q is not a valid id", id)
		}
	}
	return nil
}

// userError replaces service errors with their user-facing message.
func userError(err error) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return errors.New(svcErr.Message())
	}
	return err
}
