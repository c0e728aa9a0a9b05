package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jaydenyeong/Grocery-Sentinel/configs"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/catalog"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/extractor"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/fetcher"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/logging"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/monitor"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/notifier"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/repository"
)

// The sentinel runs one monitoring cycle and exits; cron provides the
// cadence and the next scheduled run doubles as the retry.
func main() {
	cfg := configs.AppLoad()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.ValidateSentinel(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	// Stop between products on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	selectors := extractor.Selectors{
		Heading: cfg.Monitor.HeadingSelector,
		Price:   cfg.Monitor.PriceSelector,
	}
	scrapeDelay := time.Duration(cfg.Monitor.ScrapeDelaySeconds) * time.Second

	m := monitor.New(&monitor.Config{
		Store:        repository.NewGormProductRepository(db),
		Source:       catalog.NewSheetSource(cfg.Sheets.ID, cfg.Sheets.Tab, logger.WithField("component", "catalog")),
		Fetcher:      fetcher.New(scrapeDelay, logger.WithField("component", "fetcher")),
		Extractor:    extractor.New(selectors, logger.WithField("component", "extractor")),
		Notifier:     notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger.WithField("component", "notifier")),
		MinPctChange: decimal.NewFromFloat(cfg.Monitor.MinPctChange),
		Log:          logger.WithField("component", "monitor"),
	})

	if _, _, err := m.Run(ctx); err != nil {
		logger.Fatalf("monitoring cycle failed: %v", err)
	}
}
