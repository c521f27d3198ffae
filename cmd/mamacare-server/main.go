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

	"github.com/mamacare/mamacare/internal/config"
	"github.com/mamacare/mamacare/internal/domain/account"
	"github.com/mamacare/mamacare/internal/domain/child"
	"github.com/mamacare/mamacare/internal/domain/community"
	"github.com/mamacare/mamacare/internal/domain/pregnancy"
	"github.com/mamacare/mamacare/internal/domain/reminder"
	"github.com/mamacare/mamacare/internal/platform/auth"
	"github.com/mamacare/mamacare/internal/platform/db"
	"github.com/mamacare/mamacare/internal/platform/metrics"
	"github.com/mamacare/mamacare/internal/platform/middleware"
	"github.com/mamacare/mamacare/internal/platform/notify"
	"github.com/mamacare/mamacare/internal/platform/tips"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mamacare-server",
		Short: "MamaCare maternal and child health API server",
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
		Short: "Start the API server",
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

	// Metrics
	reg := metrics.NewRegistry()

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(reg.Middleware())

	// Health and metrics endpoints stay outside auth.
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))
	e.GET("/metrics", reg.Handler())

	// Auth middleware
	apiV1 := e.Group("/api/v1")
	if cfg.IsDev() {
		apiV1.Use(auth.DevAuthMiddleware())
	} else {
		apiV1.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
			JWKSURL:  cfg.AuthJWKSURL,
		}))
	}

	// Email sender for reminders
	var sender notify.Sender
	if cfg.SendGridAPIKey != "" {
		sender = notify.NewSendGridSender(cfg.SendGridAPIKey, cfg.EmailFromName, cfg.EmailFrom)
		logger.Info().Msg("reminder delivery via SendGrid enabled")
	} else {
		sender = notify.NewLogSender(logger)
		logger.Warn().Msg("SENDGRID_API_KEY not set; reminders are logged instead of emailed")
	}

	inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.WithTx(ctx, pool, fn)
	}

	// Account domain
	accountRepo := account.NewRepoPG(pool)
	accountSvc := account.NewService(accountRepo)
	accountHandler := account.NewHandler(accountSvc)
	accountHandler.RegisterRoutes(apiV1)

	// Child domain (KEPI vaccination schedules)
	childRepo := child.NewChildRepoPG(pool)
	recordRepo := child.NewRecordRepoPG(pool)
	childSvc := child.NewService(childRepo, recordRepo, child.WithTxRunner(inTx))
	childHandler := child.NewHandler(childSvc, accountSvc)
	childHandler.RegisterRoutes(apiV1)

	// Pregnancy domain (ANC contacts and risk assessment)
	pregRepo := pregnancy.NewPregnancyRepoPG(pool)
	visitRepo := pregnancy.NewVisitRepoPG(pool)
	pregSvc := pregnancy.NewService(pregRepo, visitRepo, pregnancy.WithTxRunner(inTx))
	pregHandler := pregnancy.NewHandler(pregSvc, accountSvc)
	pregHandler.RegisterRoutes(apiV1)

	// Reminder domain
	reminderRepo := reminder.NewRepoPG(pool)
	reminderSvc := reminder.NewService(reminderRepo)
	reminderHandler := reminder.NewHandler(reminderSvc, accountSvc)
	reminderHandler.RegisterRoutes(apiV1)

	sweeper := reminder.NewSweeper(reminderRepo, accountRepo, sender, reg, logger)
	if err := sweeper.Start(cfg.ReminderCronSpec); err != nil {
		logger.Fatal().Err(err).Str("spec", cfg.ReminderCronSpec).Msg("invalid reminder cron spec")
	}
	defer sweeper.Stop()
	logger.Info().Str("spec", cfg.ReminderCronSpec).Msg("reminder sweeper scheduled")

	// Out-of-band sweep for operators, e.g. after an email outage clears.
	adminAPI := apiV1.Group("/admin", auth.RequireRole("admin"))
	adminAPI.POST("/reminders/sweep", func(c echo.Context) error {
		sweeper.Sweep(c.Request().Context())
		return c.NoContent(http.StatusAccepted)
	})

	// Community domain
	postRepo := community.NewPostRepoPG(pool)
	commentRepo := community.NewCommentRepoPG(pool)
	communitySvc := community.NewService(postRepo, commentRepo, community.WithTxRunner(inTx))
	communityHandler := community.NewHandler(communitySvc, accountSvc)
	communityHandler.RegisterRoutes(apiV1)

	// Health tips: prefer the LLM provider, fall back to the built-in set.
	var tipSource tips.Source = tips.NewStaticSource()
	if cfg.TipsAPIURL != "" {
		tipSource = &tips.Fallback{
			Primary:   tips.NewLLMSource(cfg.TipsAPIURL, cfg.TipsAPIKey, cfg.TipsModel),
			Secondary: tipSource,
		}
		logger.Info().Str("model", cfg.TipsModel).Msg("LLM health tips enabled")
	}
	tipsHandler := tips.NewHandler(tipSource, logger)
	tipsHandler.RegisterRoutes(apiV1)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
