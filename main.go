package main

import (
	"context"
	"log"
	"os"

	"carrental/config"
	"carrental/database"
	"carrental/database/seeders"
	"carrental/handlers"
	"carrental/routes"
	"carrental/services"
	"carrental/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env 檔案
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using default environment variables: %v", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化資料庫
	store, err := database.Open(cfg.Database, cfg.Server.GinMode, logger)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.Error(err))
	}

	cars := services.NewCarService(store, logger)
	customers := services.NewCustomerService(store, logger)
	locations := services.NewLocationService(store, logger)
	availability := services.NewAvailabilitySync(cars, store, logger, cfg.Availability.SerializePerCar)
	bookings := services.NewBookingService(store, customers, availability, logger)

	h := &handlers.Handler{
		Cars:         cars,
		Customers:    customers,
		Bookings:     bookings,
		Locations:    locations,
		Availability: availability,
		Reservations: services.NewReservationService(cars, customers, bookings, logger),
		Stats:        services.NewStatsService(cars, customers, bookings, logger),
		Logger:       logger,
	}

	ctx := context.Background()
	if cfg.SeedDemo {
		if err := seeders.SeedDemo(ctx, cars, locations, logger); err != nil {
			logger.Fatal("Failed to seed demo data", zap.Error(err))
		}
	}

	if cfg.Availability.ResyncOnStartup {
		if _, err := availability.SyncAll(ctx); err != nil {
			logger.Error("Startup availability sync failed", zap.Error(err))
		}
	}

	// 定時全量同步（未設定排程時不啟動）
	if cfg.Availability.ResyncSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.Availability.ResyncSchedule, func() {
			logger.Info("Running scheduled availability sync...")
			if _, err := availability.SyncAll(context.Background()); err != nil {
				logger.Error("Scheduled availability sync failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("Failed to schedule availability sync cron job", zap.Error(err))
		}
		c.Start()
		defer c.Stop()
		logger.Info("Cron jobs started", zap.String("schedule", cfg.Availability.ResyncSchedule))
	}

	gin.SetMode(cfg.Server.GinMode)
	logger.Info("Gin mode set", zap.String("mode", cfg.Server.GinMode))

	if err := handlers.RegisterValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	r := routes.NewRouter(h, logger)

	// 啟動伺服器
	logger.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
