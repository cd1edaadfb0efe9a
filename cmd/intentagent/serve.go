package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/tbxark/intentagent/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve POST /api/v1/chat/intent over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		router, err := buildRouter(ctx, conf)
		if err != nil {
			return err
		}
		verifier := server.NewStaticTokenVerifier(conf.Server.Tokens...)
		if verifier.Open() {
			slog.Warn("no server.tokens configured, accepting every token")
		}
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		srv := server.New(router, verifier, registry)

		errCh := make(chan error, 1)
		go func() {
			slog.Info("listening", "addr", conf.Server.Addr)
			errCh <- srv.Listen(conf.Server.Addr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	},
}
