package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/timezone-buddy/internal/http/handlers/buddy"
	"github.com/aanand-mishra/timezone-buddy/internal/zone"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the buddy list as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve runs the HTTP API until SIGINT/SIGTERM (or ctx ends), then
// drains in-flight requests for up to five seconds.
func (a *app) serve(ctx context.Context) error {
	svc, err := a.service()
	if err != nil {
		return err
	}

	slog.Info("starting timezone-buddy api",
		slog.String("env", a.cfg.Env),
		slog.String("storage", a.cfg.Storage.Path),
	)

	router := http.NewServeMux()
	buddy.Register(router, svc,
		buddy.Clock{Now: a.now, Use24h: a.cfg.Uses24h()},
		func() ([]string, error) { return zone.Supported(a.fs, a.cfg.ZoneInfoDir) },
	)

	server := &http.Server{
		Addr:    a.cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ListenAndServe blocks, so it runs in its own goroutine and reports
	// a startup failure back through errc.
	errc := make(chan error, 1)
	go func() {
		slog.Info("server started", slog.String("address", server.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-done:
		slog.Info("shutdown signal received, stopping server...")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
