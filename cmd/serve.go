package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alanpramil7/underdog/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web search form",
	Long: `Serve an HTML search form and a JSON API backed by the same pipeline.

Examples:
  underdog serve
  underdog serve --addr 0.0.0.0:8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default from server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr, _ = cmd.Flags().GetString("addr")
	}

	pipeline, err := buildPipeline(cmd.Context(), log)
	if err != nil {
		return err
	}

	e := web.NewRouter(web.RouterConfig{
		Logger:   log,
		Pipeline: pipeline,
		Defaults: cfg.Search.Defaults(),
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
