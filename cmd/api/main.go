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

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/audit"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/telehealth-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/telehealth-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/metrics"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/routes"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
	ucScheduling "github.com/BruksfildServices01/telehealth-scheduler/internal/usecase/scheduling"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Provider scheduling API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(slotsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			return dbpkg.Migrate(db, cfg, logger)
		},
	}
}

func slotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the next bookable slots for a provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			providerID, _ := cmd.Flags().GetUint("provider")
			duration, _ := cmd.Flags().GetInt("duration")
			limit, _ := cmd.Flags().GetInt("max")
			if providerID == 0 {
				return errors.New("--provider is required")
			}

			cfg, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			uc := ucScheduling.NewGetNextAvailableSlots(
				infraRepo.NewSchedulingGormRepository(db),
				cfg.Policy(),
				logger,
				nil,
			)

			slots := uc.Execute(cmd.Context(), ucScheduling.GetNextAvailableSlotsInput{
				ProviderID:          providerID,
				SlotDurationMinutes: duration,
				MaxSlots:            limit,
				BufferMinutes:       ucScheduling.UsePolicyBuffer,
			})
			for _, s := range slots {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	cmd.Flags().Uint("provider", 0, "Provider ID")
	cmd.Flags().Int("duration", 30, "Slot duration in minutes")
	cmd.Flags().Int("max", 10, "Maximum number of slots")
	return cmd
}

func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg := config.Load()

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	if err := timezone.SetDefault(cfg.DefaultTimezone); err != nil {
		logger.Warn("invalid DEFAULT_TIMEZONE, keeping built-in default",
			zap.String("timezone", cfg.DefaultTimezone),
			zap.String("fallback", timezone.Default().String()),
			zap.Error(err),
		)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logger, db, nil
}

func runServer() error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := dbpkg.Migrate(db, cfg, logger); err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, booking holds disabled until it recovers", zap.Error(err))
		}
		cancel()
	}

	dispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer dispatcher.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Dependencies{
		DB:      db,
		Config:  cfg,
		Logger:  logger,
		Redis:   rdb,
		Audit:   dispatcher,
		Metrics: metrics.NewSchedulingMetrics(prometheus.DefaultRegisterer),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
