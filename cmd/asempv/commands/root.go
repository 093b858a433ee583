package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"asempv/internal/app"
	"asempv/internal/config"
	"asempv/internal/logging"
)

var (
	cfgFile  string
	output   string
	settings config.Config
	wire     *app.Wire

	closeLog func() error
)

func Execute() error {
	root := &cobra.Command{
		Use:           "asempv",
		Short:         "Client for the ASEMPV inverter monitoring service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if settings, err = config.Load(cfgFile, cmd.Flags()); err != nil {
				return err
			}
			if err := os.MkdirAll(settings.Home, 0o700); err != nil {
				return err
			}

			if closeLog, err = logging.Setup(logging.Config{Dir: settings.LogDir(), Debug: settings.Debug}); err != nil {
				return fmt.Errorf("opening log: %w", err)
			}
			log := logging.L().With("command", cmd.CommandPath())
			log.Debug("cli.start", "config_file", settings.File, "base_url", settings.BaseURL)

			if wire, err = app.NewWire(app.ConfigFrom(settings, log)); err != nil {
				return err
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeLog != nil {
				return closeLog()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default <home>/config.yml)")
	pf.String(config.KeyHome, "", "data dir (default ~/.asempv)")
	pf.String(config.KeyBaseURL, "", "backend base URL")
	pf.Int(config.KeyPageSize, 0, "items per page")
	pf.String(config.KeyLang, "", "response language")
	pf.String(config.KeyPartner, "", "partner filter for lists and dashboard")
	pf.StringP(config.KeyTokenPassphrase, "p", "", "passphrase sealing the token file")
	pf.Bool(config.KeyDebug, false, "debug logging")
	pf.StringVarP(&output, "output", "o", "text", "output format: text or json")

	root.AddCommand(
		loginCmd(),
		logoutCmd(),
		statusCmd(),
		tokenCmd(),
		invertersCmd(),
		dashboardCmd(),
		dataTypesCmd(),
		browseCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// requestTimeout bounds one network round trip.
func requestTimeout() time.Duration {
	return settings.ConnectTimeout + settings.WriteTimeout + settings.ReadTimeout
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout())
}
