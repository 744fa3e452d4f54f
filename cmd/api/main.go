package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"toystore-api/internal/client"
	"toystore-api/internal/config"
	"toystore-api/internal/repository"
	"toystore-api/internal/server"
	"toystore-api/internal/service"
)

func newLogger(cfg config.Log) *logrus.Logger {
	logger := logrus.New()

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)

	db := client.InitMysqlClient(cfg.DatabaseURL, logger)
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	if cfg.Environment.IsDevelopment() {
		if err := productRepo.Seed(context.Background()); err != nil {
			logger.WithError(err).Warn("product seed failed")
		}
	}

	orderService := service.NewOrderService(db, productRepo, orderRepo, cfg.Order, logger)
	paymentService := service.NewPaymentService(razorpayClient, cfg.Razorpay, logger)
	productService := service.NewProductService(productRepo)

	srv := server.NewServer(orderService, paymentService, productService, logger, cfg.Environment.IsDevelopment())

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Fatal("HTTP server shutdown error")
	}
}
