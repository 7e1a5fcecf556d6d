package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sagarc03/kvgate"
	"github.com/sagarc03/kvgate/boltstore"
	"github.com/sagarc03/kvgate/config"
	kvhttp "github.com/sagarc03/kvgate/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the kvgate HTTP server.

Every configured route is served at its path and below. Stores are opened
read-only for each request and closed before the response is written, so
store files can be replaced while the server runs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5708, "HTTP server port")
	serveCmd.Flags().Int("max-path-length", kvgate.DefaultMaxPathLength, "reject request paths of this many bytes or more")

	rootCmd.AddCommand(serveCmd)
}

func newGateway(cfg *config.Config) (*kvgate.Gateway, error) {
	reader := boltstore.NewReader(boltstore.Options{
		LockTimeout:  cfg.Store.LockTimeout,
		MaxValueSize: cfg.Store.MaxValueSize,
	})

	return kvgate.NewGateway(reader, kvgate.GatewayConfig{MaxPathLength: cfg.Server.MaxPathLength})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	routes, err := cfg.ResolveRoutes()
	if err != nil {
		return fmt.Errorf("resolve routes: %w", err)
	}

	for _, r := range routes {
		if _, statErr := os.Stat(r.Config.StorePath); statErr != nil {
			slog.Warn("store not readable, requests will fail until it is", "route", r.Pattern, "store", r.Config.StorePath, "err", statErr)
		}
		slog.Info("route", "pattern", r.Pattern, "store", r.Config.StorePath, "bucket", r.Config.Bucket, "content_type", r.Config.ContentType)
	}

	gateway, err := newGateway(cfg)
	if err != nil {
		return fmt.Errorf("create gateway: %w", err)
	}

	handlerConfig := kvhttp.HandlerConfig{
		Routes: routes,
		CORS:   cfg.CORS,
	}

	handler := kvhttp.NewHandler(&handlerConfig, gateway)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "routes", len(routes), "max_path_length", gateway.MaxPathLength())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
