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
	"medreminder/internal/repository"
	"medreminder/internal/service/reminder"
	"medreminder/pkg/db"
	"medreminder/pkg/logger"
	"medreminder/pkg/mq"
	"medreminder/pkg/redis"
	"medreminder/pkg/util"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting scheduler...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.Int("interval_seconds", cfg.Scheduler.IntervalSeconds),
		zap.Int("tolerance_seconds", cfg.Scheduler.ToleranceSeconds),
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

	// Redis once-guard. Keys outlive the day they protect by a margin so a
	// pass straddling midnight cannot resurrect yesterday's occurrence.
	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()
	guard := util.NewDeduper(rdb, 25*time.Hour, log)

	// Repositories
	medicineRepo := repository.NewMedicineRepository(dbConn, log)
	notificationRepo := repository.NewNotificationRepository(dbConn, log)

	// Evaluator + Runner
	evaluator := reminder.NewEvaluator(
		medicineRepo,
		notificationRepo,
		guard,
		publisher,
		time.Duration(cfg.Scheduler.ToleranceSeconds)*time.Second,
		log,
	)
	runner := reminder.NewRunner(evaluator, time.Duration(cfg.Scheduler.IntervalSeconds)*time.Second, log)
	runner.Start(context.Background())

	// HTTP Server (for health checks)
	router := httpserver.NewRouter(dbConn)
	srv := &http.Server{
		Addr:    ":8084",
		Handler: router.Engine,
	}

	go func() {
		log.Info("HTTP server starting on :8084")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("scheduler is fully initialized and running")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler gracefully...")

	runner.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	publisher.Close()
	dbConn.Close()

	log.Info("scheduler shutdown complete")
}
