package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/config"
	"github.com/Dan9191/bank-clients/internal/handler"
	"github.com/Dan9191/bank-clients/internal/integrations/cbr"
	"github.com/Dan9191/bank-clients/internal/jobs"
	"github.com/Dan9191/bank-clients/internal/metrics"
	"github.com/Dan9191/bank-clients/internal/models"
	"github.com/Dan9191/bank-clients/internal/repository"
	"github.com/Dan9191/bank-clients/internal/seed"
	"github.com/Dan9191/bank-clients/internal/service"
	"github.com/Dan9191/bank-clients/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	var (
		uow  repository.UnitOfWork
		ping handler.Pinger
	)
	switch cfg.Storage {
	case config.StorageMemory:
		mem := repository.NewMemory()
		seeder := seed.NewSeeder(mem, logger, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
			models.DateOf(time.Now()), seed.DefaultOptions())
		if _, _, err := seeder.Run(ctx); err != nil {
			logger.Fatalf("Failed to seed memory storage: %v", err)
		}
		uow = mem
		logger.Warn("Using in-memory storage; data is lost on restart")
	default:
		db, err := openDatabase(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		uow = repository.NewRepository(db, cfg.TxTimeout)
		ping = db.PingContext
	}

	// Initialize layers
	m := metrics.New(prometheus.DefaultRegisterer)
	var rates service.KeyRateProvider
	if cfg.CBREnabled {
		rates = cbr.NewCBRClient(cfg, logger)
	}
	svc := service.NewService(uow, logger, rates, m)
	h := handler.NewHandler(svc, logger, cfg.DefaultPageLimit, ping)
	r := handler.NewRouter(h, m, logger)

	// Overdue digest
	scheduler := cron.New()
	if cfg.DigestEnabled() {
		digest := jobs.NewOverdueDigest(svc.Finance, email.NewSender(cfg, logger), cfg.DigestRecipient, logger, m)
		if _, err := jobs.Schedule(scheduler, cfg.DigestSchedule, digest, logger); err != nil {
			logger.Fatalf("Failed to schedule overdue digest: %v", err)
		}
		scheduler.Start()
		logger.Infof("Overdue digest scheduled at %q for %s", cfg.DigestSchedule, cfg.DigestRecipient)
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	<-scheduler.Stop().Done()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if cfg.MigrateOnStart {
		if err := repository.Migrate(ctx, db, logger); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
