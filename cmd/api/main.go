// server/cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelio-api-server/config"
	"parcelio-api-server/internal/api/routes"
	"parcelio-api-server/internal/database"
	"parcelio-api-server/internal/lib/logger"
	"parcelio-api-server/internal/lib/sl"
	"parcelio-api-server/internal/payment"
	"parcelio-api-server/internal/repository"
	"parcelio-api-server/internal/s3"
	"parcelio-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configDir := pflag.String("config", "./config", "directory containing config.yaml")
	pflag.String("port", "", "HTTP listen port (overrides PORT)")
	pflag.Parse()

	// 1. Load configuration
	cfg, err := config.LoadConfig(*configDir, pflag.CommandLine)
	if err != nil {
		slog.Error("could not load config", sl.Err(err))
		os.Exit(1)
	}

	log := logger.SetupLogger(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to MongoDB
	client, err := database.Connect(ctx, cfg.Mongo, log)
	if err != nil {
		log.Error("failed to connect to MongoDB", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error("failed to disconnect from MongoDB", sl.Err(err))
		}
	}()
	db := client.Database(cfg.Mongo.DBName)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Warn("failed to ensure indexes", sl.Err(err))
	}

	if cfg.Seed.UsersFile != "" {
		if _, err := database.SeedUsers(ctx, db, cfg.Seed.UsersFile, log); err != nil {
			log.Warn("failed to seed users", sl.Err(err))
		}
	}

	// 3. Optional photo storage
	deps := routes.Dependencies{
		Cfg:      cfg,
		Log:      log,
		Users:    repository.NewUserRepository(db),
		Parcels:  repository.NewParcelRepository(db),
		Payments: repository.NewPaymentRepository(db, cfg.Mongo.Transactions),
		Gateway:  payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency, nil, log),
		Hub:      socket.NewHub(log),
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, client)
		},
	}
	if cfg.S3.Enabled() {
		uploader, err := s3.NewUploader(ctx, cfg.S3)
		if err != nil {
			log.Error("failed to initialize S3 uploader", sl.Err(err))
			os.Exit(1)
		}
		deps.Photos = uploader
	} else {
		log.Info("S3 bucket not configured, photo uploads disabled")
	}

	// 4. Serve
	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting API server", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to run server", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", sl.Err(err))
	}
}
