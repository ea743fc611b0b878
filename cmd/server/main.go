// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/travelworld/internal/api"
	"github.com/tomtom215/travelworld/internal/auth"
	"github.com/tomtom215/travelworld/internal/cache"
	"github.com/tomtom215/travelworld/internal/config"
	"github.com/tomtom215/travelworld/internal/database"
	"github.com/tomtom215/travelworld/internal/eventprocessor"
	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/photos"
	"github.com/tomtom215/travelworld/internal/portrait"
	"github.com/tomtom215/travelworld/internal/supervisor"
	"github.com/tomtom215/travelworld/internal/supervisor/services"
)

// photoGCInterval is how often the photo store reclaims value-log space.
const photoGCInterval = 10 * time.Minute

func main() {
	rootCmd := &cobra.Command{
		Use:           "travelworld",
		Short:         "Travel journal and visited-country map server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, jwtManager, err := setup()
			if err != nil {
				return err
			}
			return run(cfg, jwtManager)
		},
	}

	var displayName string
	issueCmd := &cobra.Command{
		Use:   "issue-token USER_ID",
		Short: "Print a bearer token for USER_ID signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, jwtManager, err := setup()
			if err != nil {
				return err
			}
			token, err := jwtManager.GenerateToken(args[0], displayName)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issueCmd.Flags().StringVarP(&displayName, "name", "n", "", "display name claim")
	rootCmd.AddCommand(issueCmd)

	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("Travel World exited with error")
		os.Exit(1)
	}
}

// setup loads configuration, initializes logging and the token manager.
func setup() (*config.Config, *auth.JWTManager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize JWT manager: %w", err)
	}
	return cfg, jwtManager, nil
}

//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config, jwtManager *auth.JWTManager) error {
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("photo_path", cfg.Storage.PhotoPath).
		Str("llm_provider", cfg.Portrait.Provider).
		Msg("Starting Travel World")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	if counts, err := db.GetRecordCounts(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Failed to count records")
	} else {
		logging.Info().
			Int64("trips", counts.Trips).
			Int64("photos", counts.Photos).
			Int64("portraits", counts.Portraits).
			Msg("Database ready")
	}

	blobs, err := photos.OpenBadgerStore(cfg.Storage.PhotoPath)
	if err != nil {
		return fmt.Errorf("open photo store: %w", err)
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing photo store")
		}
	}()

	gen, err := portrait.NewGenerator(&cfg.Portrait)
	if err != nil {
		return fmt.Errorf("initialize portrait generator: %w", err)
	}
	if !portrait.Available(gen) {
		logging.Warn().Str("provider", gen.Provider()).Msg("Portrait generation is unavailable; GET /portrait still works")
	}

	gate := portrait.DefaultGate()
	if cfg.Portrait.Cooldown > 0 {
		gate.Cooldown = cfg.Portrait.Cooldown
	}
	if cfg.Portrait.MinTrips > 0 {
		gate.MinTrips = cfg.Portrait.MinTrips
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.IsProduction() {
		for _, o := range cfg.Security.CORSOrigins {
			if o == "*" {
				logging.Warn().Msg("CORS_ORIGINS=* in production; set explicit origins")
			}
		}
	}

	apiCache := cache.New("api", cfg.API.CacheTTL)

	bus := eventprocessor.NewBus(nil)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()
	router := eventprocessor.NewRouter(nil, bus.Subscriber(), nil)
	eventprocessor.NewCacheInvalidationHandler(apiCache).Register(router)

	handler := api.NewHandler(api.Deps{
		DB:        db,
		Photos:    photos.NewService(db, blobs, cfg.Storage.MaxPhotosPerTrip, cfg.Storage.MaxPhotoBytes),
		Portraits: portrait.NewService(db, gen, gate, cfg.Portrait.ModelVersion()),
		Cache:     apiCache,
		Bus:       bus,
		Config:    cfg,
	})
	chiRouter := api.NewRouter(handler, auth.NewMiddleware(jwtManager, auth.WithTrustedOrigins(cfg.Security.CORSOrigins...)),
		api.ChiMiddlewareConfigFromSecurity(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           chiRouter.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddDataService(services.NewBlobGCService(blobs, photoGCInterval, 0.5))
	tree.AddDataService(apiCache)
	tree.AddMessagingService(router)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		return serveErr
	}
	logging.Info().Msg("Travel World stopped")
	return nil
}
