package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	adapthttp "bptracker/internal/adapter/http"
	"bptracker/internal/adapter/memory"
	"bptracker/internal/adapter/postgres"
	"bptracker/internal/app"
	"bptracker/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	logger, err := newLogger(env("LOG_LEVEL", "info"))
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var (
		readingRepo domain.ReadingRepository
		userRepo    domain.UserRepository
	)
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			logger.Fatal("db open", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		readingRepo, userRepo = db, db
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		mem := memory.New()
		readingRepo, userRepo = mem, mem
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	ownerID, err := app.NewUserService(userRepo).EnsureDemoUser(ctx)
	cancel()
	if err != nil {
		logger.Fatal("provision demo user", zap.Error(err))
	}

	readingSvc := app.NewReadingService(readingRepo)
	h := adapthttp.New(readingSvc, ownerID, logger, webDir).Handler()

	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
