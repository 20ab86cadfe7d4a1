package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const daemonShutdownTimeout = 15 * time.Second

func newDaemonCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Own the slot: run the heartbeat, start automations and serve metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			owner, runner := app.newOwner(true)

			server, err := startMetricsServer(app)
			if err != nil {
				return err
			}

			runErr := make(chan error, 1)
			go func() { runErr <- owner.Run(ctx) }()

			if err := owner.Tick(ctx); err != nil {
				app.logger.Error("initial heartbeat", "error", err)
			}
			app.logger.Info("daemon started", "heartbeat", app.cfg.Heartbeat, "state_dir", app.cfg.StateDir)

			err = <-runErr
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			app.logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), daemonShutdownTimeout)
			defer cancel()

			if stopErr := runner.Shutdown(shutdownCtx); stopErr != nil {
				app.logger.Error("stop running sessions", "error", stopErr)
			}
			if server != nil {
				if stopErr := server.Shutdown(shutdownCtx); stopErr != nil {
					app.logger.Error("metrics server shutdown", "error", stopErr)
				}
			}

			return err
		},
	}
}

func startMetricsServer(app *app) (*http.Server, error) {
	addr := app.cfg.MetricsAddr
	if addr == "" {
		return nil, nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen: %w", err)
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("metrics server error", "error", err)
		}
	}()
	app.logger.Info("serving metrics", "addr", listener.Addr().String())

	return server, nil
}
