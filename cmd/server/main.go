// Voicebooth - voice agent demo backend
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

	"github.com/ashureev/voicebooth/internal/api"
	"github.com/ashureev/voicebooth/internal/catalog"
	"github.com/ashureev/voicebooth/internal/config"
	"github.com/ashureev/voicebooth/internal/eventlog"
	"github.com/ashureev/voicebooth/internal/identity"
	"github.com/ashureev/voicebooth/internal/improv"
	"github.com/ashureev/voicebooth/internal/middleware"
	"github.com/ashureev/voicebooth/internal/orders"
	"github.com/ashureev/voicebooth/internal/session"
	"github.com/ashureev/voicebooth/internal/shop"
	"github.com/ashureev/voicebooth/internal/tools"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment(), "orders_backend", cfg.OrdersBackend)

	// Initialize dependencies.
	store, err := newOrderStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize order store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close order store", "error", closeErr)
		}
	}()

	cat, err := catalog.Load()
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded", "products", len(cat.Products()))

	scenarios, err := improv.LoadScenarios()
	if err != nil {
		slog.Error("Failed to load scenarios", "error", err)
		os.Exit(1)
	}
	slog.Info("Scenarios loaded", "count", len(scenarios))

	events, err := eventlog.New(eventlog.Config{
		Enabled:       cfg.EventLog.Enabled,
		Dir:           cfg.EventLog.Dir,
		GlobalEnabled: cfg.EventLog.GlobalEnabled,
		GlobalPath:    cfg.EventLog.GlobalPath,
		QueueSize:     cfg.EventLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize event logger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := events.Close(); closeErr != nil {
			slog.Error("Failed to close event logger", "error", closeErr)
		}
	}()

	// Initialize services.
	sessions := session.NewManager(events)
	host := improv.NewHost(scenarios, cfg.ImprovSeed)
	assistant := shop.NewAssistant(cat, store)
	registry := tools.NewRegistry(host, assistant)

	// Initialize handlers.
	handler := api.NewHandler(registry, sessions, cat, store, cfg.FrontendURL, cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(identity.Middleware(cfg.IsDevelopment()))

	// All routes use identity middleware (no auth needed).
	handler.Routes(r)

	// Create server. The websocket event feed holds connections open, so no
	// write timeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

// newOrderStore picks the persistence backend from configuration: the flat
// JSON file for demos, SQLite for anything longer-lived.
func newOrderStore(cfg *config.Config) (orders.Store, error) {
	switch cfg.OrdersBackend {
	case config.OrdersBackendSQLite:
		return orders.NewSQLite(cfg.DBPath)
	default:
		return orders.NewFileStore(cfg.OrdersPath)
	}
}
