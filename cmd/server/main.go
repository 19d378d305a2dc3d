package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkpro/internal/config"
	"parkpro/internal/handlers"
	"parkpro/internal/repositories/mongodb"
	"parkpro/internal/services"
	"parkpro/pkg/cache"
	"parkpro/pkg/database"
	"parkpro/pkg/logger"
	"parkpro/pkg/mailer"
	"parkpro/pkg/payment"
	"parkpro/routes"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.WithError(err).Fatal("Failed to run migrations")
	}

	// Redis is optional; repositories fall back to uncached reads
	var cacheService mongodb.CacheService
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, running without cache")
	} else {
		cacheService = redisCache
		defer redisCache.Close()
	}

	// Repositories
	bookingRepo := mongodb.NewBookingRepository(db)
	slotRepo := mongodb.NewSlotRepository(db.Database, cacheService)
	stationRepo := mongodb.NewStationRepository(db.Database, cacheService)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database)
	userRepo := mongodb.NewUserRepository(db.Database)
	notificationRepo := mongodb.NewNotificationRepository(db.Database)
	transactionRepo := mongodb.NewTransactionRepository(db.Database)
	favoriteRepo := mongodb.NewFavoriteRepository(db.Database)

	// Payment gateways
	gateway := payment.NewRazorpayGateway(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)
	cardCharger := payment.NewStripeCharger(cfg.Payment.Stripe.SecretKey)

	smtpMailer := mailer.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.FromEmail,
		cfg.SMTP.FromName,
	)

	// Services
	notificationService := services.NewNotificationService(notificationRepo, appLogger)
	availabilityService := services.NewAvailabilityService(bookingRepo, slotRepo, stationRepo, appLogger)
	slotService := services.NewSlotService(slotRepo, stationRepo, appLogger)
	stationService := services.NewStationService(stationRepo, appLogger)
	favoriteService := services.NewFavoriteService(favoriteRepo, stationRepo, appLogger)
	bookingService := services.NewBookingService(
		bookingRepo, slotRepo, stationRepo, vehicleRepo, userRepo,
		gateway, smtpMailer, notificationService, cfg.Payment, appLogger,
	)
	fastagService := services.NewFastagService(
		transactionRepo, vehicleRepo, userRepo,
		gateway, cardCharger, notificationService, cfg.Payment, appLogger,
	)
	sweeper := services.NewSweeperService(bookingRepo, cfg.Sweeper.Interval, appLogger)

	// Handlers
	h := &routes.Handlers{
		Slot:         handlers.NewSlotHandler(slotService, availabilityService, appLogger),
		Booking:      handlers.NewBookingHandler(bookingService, appLogger),
		Station:      handlers.NewStationHandler(stationService, availabilityService, bookingService, appLogger),
		Notification: handlers.NewNotificationHandler(notificationService, appLogger),
		Fastag:       handlers.NewFastagHandler(fastagService, appLogger),
		Favorite:     handlers.NewFavoriteHandler(favoriteService, appLogger),
	}

	router := routes.SetupRouter(cfg, appLogger, h)

	if cfg.Sweeper.Enabled {
		sweeper.Start(context.Background())
		defer sweeper.Stop()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}
