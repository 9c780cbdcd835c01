package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yukti-ai/internal/config"
	"yukti-ai/internal/connectivity"
	"yukti-ai/internal/conversation"
	"yukti-ai/internal/http"
	"yukti-ai/internal/ollama"
	"yukti-ai/internal/render"
	"yukti-ai/internal/service"
	"yukti-ai/internal/storage"
	"yukti-ai/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, closeLog := config.SetupLogger(cfg)
	defer func() {
		_ = closeLog()
	}()
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat, "file", cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Conversation state and the completion endpoint
	store := conversation.NewStore()
	client := ollama.NewClient(cfg.OllamaBaseURL, cfg.OllamaModel)

	orchestrator := service.NewOrchestrator(client, store)
	chatService := service.NewChatService(orchestrator, store)

	settingsService := service.NewSettingsService(storage.NewSettingsRepo(db), store)
	settingsService.Load(ctx)

	// Probe Ollama in the background so the UI can show connectivity
	monitor := connectivity.NewMonitor(client, connectivity.WithInterval(cfg.ProbeInterval))
	go monitor.Run(ctx)

	deps := &http.Deps{
		ChatService:       chatService,
		SettingsService:   settingsService,
		Renderer:          render.NewRenderer(),
		Monitor:           monitor,
		Models:            client,
		Model:             cfg.OllamaModel,
		Responder:         orchestrator,
		Messages:          store,
		DB:                db,
		Server:            client,
		CompletionTimeout: cfg.CompletionTimeout,
		IndexHTML:         web.IndexHTML,
	}

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", server.Addr)
		slog.Debug("Ollama configuration", "base_url", cfg.OllamaBaseURL, "model", cfg.OllamaModel)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}
