package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"medreminder/internal/config"
	"medreminder/internal/httpserver"
	"medreminder/internal/mqhandler"
	"medreminder/internal/service/worker"
	"medreminder/pkg/db"
	"medreminder/pkg/logger"
	"medreminder/pkg/mq"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting worker...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
	)

	// DB (health checks only; delivery works from the event payload)
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	// Services
	deliveryService := worker.NewDeliveryService(log)

	// MQ Handlers
	reminderCreatedHandler := mqhandler.NewReminderCreatedHandler(deliveryService, log)

	// MQ Consumer for reminder.created
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "reminder.created.q", "reminder.created", log)
	if err != nil {
		log.Fatal("Failed to init consumer", zap.Error(err))
	}
	defer consumer.Close()

	consumer.SetHandler(reminderCreatedHandler.Handle)

	go func() {
		log.Info("Starting reminder.created consumer...")
		if err := consumer.StartConsuming(); err != nil {
			log.Fatal("Reminder consumer failed", zap.Error(err))
		}
	}()

	// HTTP Server (for health checks)
	router := httpserver.NewRouter(dbConn)
	srv := &http.Server{
		Addr:    ":8085",
		Handler: router.Engine,
	}

	go func() {
		log.Info("HTTP server starting on :8085")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("worker is fully initialized and running")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker gracefully...")

	consumer.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	dbConn.Close()

	log.Info("worker shutdown complete")
}
