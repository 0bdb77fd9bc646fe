package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/gastos-service/internal/config"
	"github.com/Dan9191/gastos-service/internal/handler"
	"github.com/Dan9191/gastos-service/internal/repository"
	"github.com/Dan9191/gastos-service/internal/repository/memory"
	"github.com/Dan9191/gastos-service/internal/service"
	"github.com/Dan9191/gastos-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize storage
	var store service.Store
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		store = memory.New()
	default:
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		store = repository.NewRepository(db)
	}

	// Initialize layers
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(store, sender, logger, cfg)
	h := handler.NewHandler(svc, logger, cfg.AuthRequired)

	// Setup router
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// Daily reminder for monthly bills due today
	c := cron.New()
	_, err = c.AddFunc(cfg.ReminderCron, func() {
		logger.Info("Running bill reminder job")
		sent, err := svc.SendDueReminders(context.Background(), time.Now())
		if err != nil {
			logger.WithError(err).Error("Bill reminder job failed")
			return
		}
		logger.Infof("Bill reminder job finished, %d reminders sent", sent)
	})
	if err != nil {
		logger.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()

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
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	<-c.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
