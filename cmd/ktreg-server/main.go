package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ktreg/ktreg/internal/config"
	"github.com/ktreg/ktreg/internal/domain/donor"
	"github.com/ktreg/ktreg/internal/domain/followup"
	"github.com/ktreg/ktreg/internal/domain/investigation"
	"github.com/ktreg/ktreg/internal/domain/patient"
	"github.com/ktreg/ktreg/internal/domain/profile"
	"github.com/ktreg/ktreg/internal/domain/recipient"
	"github.com/ktreg/ktreg/internal/domain/surgery"
	"github.com/ktreg/ktreg/internal/forms"
	"github.com/ktreg/ktreg/internal/platform/db"
	"github.com/ktreg/ktreg/internal/platform/metrics"
	"github.com/ktreg/ktreg/internal/platform/middleware"
	"github.com/ktreg/ktreg/internal/platform/redis"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ktreg-server",
		Short: "Kidney transplant registry API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the registry API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Draft store. Redis-backed when configured so autosaved forms survive a
	// restart; in-memory otherwise.
	var draftStore forms.DraftStore
	var draftPinger db.Pinger
	rdb, err := redis.New(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb != nil {
		defer rdb.Close()
		draftStore = forms.NewRedisDraftStore(rdb.Client, time.Duration(cfg.DraftTTLHours)*time.Hour)
		draftPinger = rdb
		logger.Info().Msg("connected to redis, drafts persisted")
	} else {
		draftStore = forms.NewMemoryDraftStore()
		logger.Warn().Msg("REDIS_URL not set; drafts held in memory only")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.Audit(logger))

	// Health and metrics
	e.GET("/healthz", db.HealthHandler(pool, draftPinger))
	e.GET("/metrics", metrics.Handler())

	// API group
	apiV1 := e.Group("/api/v1")

	// -- Register domain handlers --

	// Patient registry
	patientRepo := patient.NewRepo(pool)
	patientSvc := patient.NewService(patientRepo)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	// Donor assessments
	donorRepo := donor.NewRepo(pool)
	donorSvc := donor.NewService(donorRepo)
	donor.NewHandler(donorSvc).RegisterRoutes(apiV1)

	// Recipient assessments
	recipientRepo := recipient.NewRepo(pool)
	recipientSvc := recipient.NewService(recipientRepo)
	recipient.NewHandler(recipientSvc).RegisterRoutes(apiV1)

	// Surgery records
	surgeryRepo := surgery.NewRepo(pool)
	surgerySvc := surgery.NewService(surgeryRepo)
	surgery.NewHandler(surgerySvc).RegisterRoutes(apiV1)

	// Follow-up notes
	followupRepo := followup.NewRepo(pool)
	followupSvc := followup.NewService(followupRepo)
	followup.NewHandler(followupSvc).RegisterRoutes(apiV1)

	// Investigations
	invStore := investigation.NewStore()
	investigation.NewHandler(invStore).RegisterRoutes(apiV1)

	// Aggregated patient profile
	profileSvc := profile.NewService(patientSvc, donorSvc, recipientSvc, surgerySvc, followupSvc)
	profile.NewHandler(profileSvc).RegisterRoutes(apiV1)

	// Form wizard engine. Each kind's finalizer hands the submitted values to
	// the owning domain service; auxiliary row lists are folded back into the
	// payload under their list names before normalization.
	engine := forms.NewEngine(draftStore, time.Duration(cfg.AutosaveDebounceMS)*time.Millisecond, logger)
	engine.Register(forms.KindDonor, forms.KindSpec{
		Defaults: donor.EmptyValues,
		Finalize: func(ctx context.Context, values forms.Values, aux map[string][]forms.Values) (any, error) {
			return donorSvc.Create(ctx, mergeAux(values, aux))
		},
	})
	engine.Register(forms.KindRecipient, forms.KindSpec{
		Defaults: recipient.EmptyValues,
		Finalize: func(ctx context.Context, values forms.Values, aux map[string][]forms.Values) (any, error) {
			return recipientSvc.Create(ctx, mergeAux(values, aux))
		},
	})
	engine.Register(forms.KindSurgery, forms.KindSpec{
		Defaults: surgery.EmptyValues,
		Finalize: func(ctx context.Context, values forms.Values, aux map[string][]forms.Values) (any, error) {
			return surgerySvc.Create(ctx, mergeAux(values, aux))
		},
	})
	forms.NewHandler(engine).RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}

// mergeAux copies the form values and grafts each auxiliary row list onto the
// payload under its list name, giving the domain normalizer one flat map.
func mergeAux(values forms.Values, aux map[string][]forms.Values) map[string]any {
	out := make(map[string]any, len(values)+len(aux))
	for k, v := range values {
		out[k] = v
	}
	for list, rows := range aux {
		items := make([]any, 0, len(rows))
		for _, r := range rows {
			items = append(items, map[string]any(r))
		}
		out[list] = items
	}
	return out
}
