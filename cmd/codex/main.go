package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ProjectLunareth/Codex/internal/config"
	dbRedis "github.com/ProjectLunareth/Codex/internal/db/redis"
	logpkg "github.com/ProjectLunareth/Codex/internal/logger"
	"github.com/ProjectLunareth/Codex/internal/metrics"
	entryrepo "github.com/ProjectLunareth/Codex/internal/repository/entry"
	oraclerepo "github.com/ProjectLunareth/Codex/internal/repository/oracle"
	chiTransport "github.com/ProjectLunareth/Codex/internal/transport/chi"
	openaiTransport "github.com/ProjectLunareth/Codex/internal/transport/openai"
	crossrefuc "github.com/ProjectLunareth/Codex/internal/usecase/crossref"
	entryuc "github.com/ProjectLunareth/Codex/internal/usecase/entry"
	graphuc "github.com/ProjectLunareth/Codex/internal/usecase/graph"
	healthuc "github.com/ProjectLunareth/Codex/internal/usecase/health"
	oracleuc "github.com/ProjectLunareth/Codex/internal/usecase/oracle"
	"github.com/ProjectLunareth/Codex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting codex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	// Oracle provider is optional; without an API key the oracle endpoints
	// answer 501 and the rest of the API works normally.
	var provider oracleuc.Provider
	var oracleChecker healthuc.OracleChecker
	if cfg.Oracle.APIKey != "" {
		oracle := openaiTransport.NewOracle(&openaiTransport.Config{
			APIKey:          cfg.Oracle.APIKey,
			BaseURL:         cfg.Oracle.BaseURL,
			CompletionModel: cfg.Oracle.CompletionModel,
			ImageModel:      cfg.Oracle.ImageModel,
			SpeechModel:     cfg.Oracle.SpeechModel,
			Voice:           cfg.Oracle.Voice,
			Logger:          logger,
		})
		provider = oracle
		oracleChecker = oracle
		logger.Info("Oracle provider configured",
			zap.String("completion_model", cfg.Oracle.CompletionModel))
	} else {
		logger.Info("Oracle provider not configured, oracle endpoints disabled")
	}

	// Repositories and use case services
	entrySvc := entryuc.New(entryrepo.New(store))
	crossrefSvc := crossrefuc.New(entrySvc)
	graphSvc := graphuc.New(entrySvc)
	oracleSvc := oracleuc.New(provider, oraclerepo.New(store))
	healthSvc := healthuc.New(store, oracleChecker)

	server := chiTransport.NewServer(entrySvc, crossrefSvc, graphSvc, oracleSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
