package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deepgram/asklyn/internal/api/routes"
	"github.com/deepgram/asklyn/internal/config"
	"github.com/deepgram/asklyn/internal/services"
	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat and upload server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", config.GetPort(), "port to listen on")
	return cmd
}

func serve(ctx context.Context, port string) error {
	logger.Info(logger.APP, "AskLyn server starting")

	svc, err := services.InitializeServices(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error(logger.APP, "Failed to close services: %v", err)
		}
	}()

	if w := svc.GetWatcherService(); w != nil {
		go w.Run(ctx, nil)
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           routes.NewRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(logger.APP, "Listening on http://127.0.0.1:%s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(logger.APP, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info(logger.APP, "Server stopped")
	return nil
}
