package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	skyhttp "github.com/skydeck/skydeck/internal/adapter/http"
	"github.com/skydeck/skydeck/internal/adapter/mcp"
	"github.com/skydeck/skydeck/internal/adapter/openai"
	skyotel "github.com/skydeck/skydeck/internal/adapter/otel"
	"github.com/skydeck/skydeck/internal/adapter/postgres"
	"github.com/skydeck/skydeck/internal/adapter/ristretto"
	"github.com/skydeck/skydeck/internal/adapter/ws"
	"github.com/skydeck/skydeck/internal/config"
	"github.com/skydeck/skydeck/internal/domain/activity"
	"github.com/skydeck/skydeck/internal/logger"
	"github.com/skydeck/skydeck/internal/port/a2a"
	"github.com/skydeck/skydeck/internal/resilience"
	"github.com/skydeck/skydeck/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, closeLogger := logger.New(cfg.Logging)
	defer closeLogger.Close()
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"model", cfg.OpenAI.Model,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	store := postgres.NewStore(pool)

	cache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer cache.Close()

	// --- Services ---

	llmClient := openai.NewClient(cfg.OpenAI)
	llmClient.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout))

	exec := service.NewExecutor(store)
	exec.SetCache(cache, cfg.Cache.AirportTTL, cfg.Cache.WeatherTTL)

	chatSvc := service.NewChatService(llmClient, exec, cfg.OpenAI, cfg.Chat)

	hub := ws.NewHub()
	chatSvc.SetActivitySink(func(exchangeID string, e activity.Entry) {
		hub.BroadcastEvent(ctx, ws.EventChatActivity, ws.ActivityEvent{
			ExchangeID: exchangeID,
			Entry:      e,
		})
	})

	metrics, err := skyotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	chatSvc.SetMetrics(metrics)

	// --- HTTP ---

	handlers := &skyhttp.Handlers{
		Chat:      chatSvc,
		Exec:      exec,
		Store:     store,
		DB:        store,
		BodyLimit: cfg.Server.MaxBodyBytes,
	}

	r := chi.NewRouter()

	r.Use(skyhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(skyhttp.SecurityHeaders)
	r.Use(skyhttp.Logger)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(skyotel.HTTPMiddleware(cfg.Logging.Service))

	// WebSocket connections are long-lived and must not inherit the request
	// timeout.
	r.Get("/ws", hub.HandleWS)

	a2a.NewHandler(cfg.Server.BaseURL).MountRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(2 * time.Minute))
		skyhttp.MountRoutes(r, handlers)
	})

	// --- MCP ---

	if cfg.MCP.Enabled {
		mcpServer := mcp.NewServer(mcp.ServerConfig{
			Addr:    cfg.MCP.Addr,
			Name:    cfg.MCP.Name,
			Version: cfg.MCP.Version,
			APIKey:  cfg.MCP.APIKey,
		}, mcp.ServerDeps{
			Tools: service.Registry(),
			Exec:  exec,
			Store: store,
		})
		if err := mcpServer.Start(); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mcpServer.Stop(stopCtx)
		}()
	}

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
