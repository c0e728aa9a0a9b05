package main

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	"github.com/pressly/goose/v3"

	"github.com/jaydenyeong/Grocery-Sentinel/configs"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/logging"
)

func main() {
	cfg := configs.AppLoad()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.ValidateStore(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Verify connection
	if err := db.Ping(); err != nil {
		logger.Fatalf("failed to ping database: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("goose: failed to set dialect: %v", err)
	}

	logger.Info("running database migrations...")
	if err := goose.Up(db, "migrations"); err != nil {
		logger.Fatalf("goose migration failed: %v", err)
	}

	logger.Info("migrations completed successfully")
}
