package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arzan03/newsroom/internal/auth"
	"github.com/arzan03/newsroom/internal/config"
	"github.com/arzan03/newsroom/internal/db"
	"github.com/arzan03/newsroom/internal/handlers"
	"github.com/arzan03/newsroom/internal/logger"
	"github.com/arzan03/newsroom/internal/mailer"
	"github.com/arzan03/newsroom/internal/services"
	"github.com/arzan03/newsroom/internal/storage"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			zlog.Warn("Failed to close store", zap.Error(err))
		}
	}()

	// Initialize MinIO; uploads answer 503 when it is not configured.
	var objects services.ObjectStore
	if cfg.MinioEndpoint != "" {
		minioStore, err := storage.NewObjectStore(ctx, storage.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, zlog.Named("storage"))
		if err != nil {
			return err
		}
		objects = minioStore
	} else {
		zlog.Warn("MINIO_ENDPOINT not set, uploads are disabled")
	}

	dispatcher := mailer.NewDispatcher(
		mailer.NewRetrying(newTransport(cfg, zlog), cfg.MailRetries, cfg.MailBackoff, zlog.Named("mailer")),
		cfg.MailWorkers,
		zlog.Named("mailer"),
	)
	defer dispatcher.Close()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	svc := handlers.Services{
		Auth: services.NewAuthService(store.Users, tokens, cfg.BcryptCost, zlog.Named("auth")),
		Reset: services.NewResetService(store.Users, dispatcher, services.ResetConfig{
			TTL:         cfg.ResetTokenTTL,
			FrontendURL: cfg.FrontendURL,
			BcryptCost:  cfg.BcryptCost,
		}, zlog.Named("reset")),
		Articles: services.NewArticleService(store.Articles, zlog.Named("articles")),
		Settings: services.NewSettingsService(store.Settings, zlog.Named("settings")),
		Users:    services.NewUserService(store.Users, zlog.Named("users")),
		Contacts: services.NewContactService(store.Contacts, dispatcher, cfg.ContactInbox, zlog.Named("contact")),
		Uploads:  services.NewUploadService(objects, int64(cfg.UploadMaxBytes), zlog.Named("uploads")),
	}

	app := handlers.NewApp(handlers.AppConfig{
		AllowedOrigins: cfg.GetAllowedOrigins(),
		BodyLimit:      cfg.UploadMaxBytes + 1<<20,
		AccessLog:      true,
	})
	handlers.SetupRoutes(app, svc, handlers.RouteOptions{
		Tokens:        tokens,
		AuthRateLimit: cfg.AuthRateLimit,
		Ping:          store.Ping,
	})

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageDriver))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (*db.Store, error) {
	if cfg.StorageDriver == config.DriverMemory {
		zlog.Warn("Using in-memory storage, data is lost on restart")
		return db.NewMemoryStore(), nil
	}
	store, err := db.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	zlog.Info("Connected to MongoDB", zap.String("database", cfg.MongoDB))
	return store, nil
}

func newTransport(cfg *config.Config, zlog *zap.Logger) mailer.Mailer {
	if cfg.SMTPHost == "" {
		zlog.Warn("SMTP_HOST not set, emails are written to the log")
		return mailer.NewLog(zlog.Named("mailer"))
	}
	return mailer.NewSMTP(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
}
