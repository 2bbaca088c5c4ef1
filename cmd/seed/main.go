package main

import (
	"context"
	"database/sql"
	"flag"
	"math/rand/v2"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/config"
	"github.com/Dan9191/bank-clients/internal/models"
	"github.com/Dan9191/bank-clients/internal/repository"
	"github.com/Dan9191/bank-clients/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Clients, "clients", opts.Clients, "number of clients to generate")
	randSeed := flag.Uint64("seed", 0, "random seed, 0 picks one")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Storage != config.StoragePostgres {
		logger.Fatalf("Seeding requires STORAGE=%s", config.StoragePostgres)
	}

	ctx := context.Background()
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.Migrate(ctx, db, logger); err != nil {
		logger.Fatalf("Failed to migrate: %v", err)
	}

	if *randSeed == 0 {
		*randSeed = rand.Uint64()
	}
	logger.Infof("Seeding with seed %d", *randSeed)

	// One unit of work holds every insert; give it room beyond the request default.
	repo := repository.NewRepository(db, 2*time.Minute)
	seeder := seed.NewSeeder(repo, logger, rand.New(rand.NewPCG(*randSeed, *randSeed)), models.DateOf(time.Now()), opts)
	if _, _, err := seeder.Run(ctx); err != nil {
		logger.Fatalf("Seeding failed: %v", err)
	}
}
