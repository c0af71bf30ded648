package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/stylewise/api"
	"github.com/raushankrgupta/stylewise/config"
	"github.com/raushankrgupta/stylewise/scrapers"
	"github.com/raushankrgupta/stylewise/scrapers/base"
	"github.com/raushankrgupta/stylewise/store"
	"github.com/raushankrgupta/stylewise/utils"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := api.Deps{
		Tokens:   utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Importer: scrapers.NewImporter(base.Options{BrowserFallback: cfg.BrowserFallback, ChromeDriverPath: cfg.ChromeDriverPath}, logger),
		Renderer: utils.NewGeminiRenderer(cfg.GeminiAPIKey, cfg.GeminiModel),
		Mailer:   utils.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromAddress, logger),
		Logger:   logger,
	}

	if cfg.MemoryStore {
		logger.Warn("using in-memory store, data is lost on exit")
		deps.Store = store.NewMemoryStore()
	} else {
		mongoStore, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName, logger)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoStore.Close(closeCtx)
		}()
		deps.Store = mongoStore
	}

	// Images stays a nil interface without a bucket so the image routes answer 503
	if cfg.StorageEnabled() {
		images, err := utils.NewS3Storage(ctx, cfg.AWSRegion, cfg.AWSBucketName)
		if err != nil {
			logger.Fatal("Failed to set up S3", zap.Error(err))
		}
		deps.Images = images
	} else {
		logger.Warn("AWS_BUCKET_NAME not set, photo upload and outfit previews are disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(deps).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
