package main

import (
	"flag"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jaydenyeong/Grocery-Sentinel/configs"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/logging"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/repository"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/server/handler"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/server/router"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/service"
)

func main() {
	cfg := configs.AppLoad()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.ValidateStore(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before serving")
	flag.Parse()

	if *migrateFlag {
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatalf("failed to get sql.DB: %v", err)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			logger.Fatalf("goose: failed to set dialect: %v", err)
		}
		logger.Info("running database migrations...")
		if err := goose.Up(sqlDB, "migrations"); err != nil {
			logger.Fatalf("goose migration failed: %v", err)
		}
	}

	productRepo := repository.NewGormProductRepository(db)
	itemsService := service.NewItemsService(productRepo, cfg.API.StoreName)
	itemHandler := handler.NewItemHandler(itemsService)

	routerConfig := &router.Config{
		ItemHandler: itemHandler,
		CORSOrigins: cfg.API.CORSOrigins,
	}

	r := router.NewRouter(routerConfig)

	logger.Infof("read api listening on :%s", cfg.API.Port)
	if err := r.Run(fmt.Sprintf(":%s", cfg.API.Port)); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
