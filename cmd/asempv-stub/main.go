package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"asempv/internal/logging"
	"asempv/internal/stubserver"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		opts      stubserver.Options
		fixtures  string
		inverters int
		debug     bool
	)
	cmd := &cobra.Command{
		Use:          "asempv-stub",
		Short:        "Serve a local stand-in for the ASEMPV backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(logging.NewHandler(os.Stderr, debug))
			opts.Log = log
			if !debug {
				gin.SetMode(gin.ReleaseMode)
			}

			f := stubserver.DefaultFixtures(inverters)
			if fixtures != "" {
				var err error
				if f, err = stubserver.LoadFixtures(fixtures); err != nil {
					return err
				}
			}

			srv, err := stubserver.New(f, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), srv, log)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", stubserver.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.Secret, "secret", "", "HMAC secret for tokens")
	cmd.Flags().DurationVar(&opts.AccessTTL, "access-ttl", 15*time.Minute, "access token lifetime")
	cmd.Flags().DurationVar(&opts.RefreshTTL, "refresh-ttl", 24*time.Hour, "refresh token lifetime")
	cmd.Flags().StringVar(&fixtures, "fixtures", "", "YAML fixture file")
	cmd.Flags().IntVar(&inverters, "inverters", 60, "number of generated inverters")
	cmd.Flags().BoolVar(&debug, "debug", false, "debug logging")
	return cmd
}

// run serves until ctx is cancelled or a signal arrives, then shuts down.
func run(parent context.Context, srv *stubserver.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-ctx.Done()
		log.Info("stub.shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
