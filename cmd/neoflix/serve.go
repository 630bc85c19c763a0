package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neoflix/neoflix-go/internal/graph"
	"github.com/neoflix/neoflix-go/internal/server"
	"github.com/neoflix/neoflix-go/internal/services"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog API server",
	Long: `Starts the HTTP API over the movie graph. Requires NEO4J_URI,
NEO4J_USERNAME and NEO4J_PASSWORD unless offline mode is enabled, in
which case the embedded fixture dataset is served instead.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	handler, cleanup, err := buildHandler(cmd.Context())
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// buildHandler wires either the graph-backed server or the offline demo,
// returning a cleanup for the graph connection when one was opened.
func buildHandler(ctx context.Context) (http.Handler, func(), error) {
	if cfg.Offline {
		logger.Info("Offline mode: serving embedded fixture dataset")
		demo, err := server.NewDemo(logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load fixtures: %w", err)
		}
		return demo.Handler(), nil, nil
	}

	client, err := graph.NewClientWithDatabase(ctx,
		cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password, cfg.Neo4j.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}
	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("Failed to close graph connection")
		}
	}

	svc := server.Services{
		Movies:    services.NewMovieService(client, logger),
		People:    services.NewPeopleService(client, logger),
		Genres:    services.NewGenreService(client, logger),
		Favorites: services.NewFavoriteService(client, logger),
		Ratings:   services.NewRatingService(client, logger),
	}
	health := func() error {
		healthCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.HealthCheck(healthCtx)
	}

	return server.New(svc, cfg.JWTSecret, logger, health).Handler(), cleanup, nil
}
