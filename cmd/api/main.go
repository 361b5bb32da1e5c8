package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"medreminder/internal/api"
	"medreminder/internal/config"
	"medreminder/internal/repository"
	"medreminder/internal/service/auth"
	"medreminder/internal/service/medicine"
	"medreminder/internal/service/reminder"
	"medreminder/pkg/db"
	"medreminder/pkg/logger"
	"medreminder/pkg/mq"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting api...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("port", cfg.Server.Port),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	// MQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Repositories
	userRepo := repository.NewUserRepository(dbConn, log)
	medicineRepo := repository.NewMedicineRepository(dbConn, log)
	logRepo := repository.NewMedicineLogRepository(dbConn, log)
	notificationRepo := repository.NewNotificationRepository(dbConn, log)

	// Services
	authService := auth.NewService(userRepo, cfg.JWT.Secret)
	medicineService := medicine.NewService(medicineRepo, logRepo, notificationRepo, publisher, log)
	statsService := medicine.NewStatsService(medicineRepo, logRepo, userRepo)
	projector := reminder.NewProjector(medicineRepo, log)

	// Handlers
	authHandler := api.NewAuthHandler(authService)
	medicineHandler := api.NewMedicineHandler(medicineService)
	notificationHandler := api.NewNotificationHandler(notificationRepo)
	reminderHandler := api.NewReminderHandler(projector)
	statsHandler := api.NewStatsHandler(statsService)

	router := api.NewRouter(
		authHandler,
		medicineHandler,
		notificationHandler,
		reminderHandler,
		statsHandler,
		cfg.JWT.Secret,
		dbConn,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.Engine,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("api is fully initialized and running")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down api gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	publisher.Close()
	dbConn.Close()

	log.Info("api shutdown complete")
}
