/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Stockline inventory engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment config (.env supported)
  2. Parse command-line flags (flags win over env)
  3. Build zap logger
  4. Initialize SQLite store (runs migrations)
  5. Create API handler and router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: env PORT or 8080)
  -db      SQLite database path (default: env DB_PATH or inventory.db)
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/inventory.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flag"

	"go.uber.org/zap"

	"github.com/stockline/inventory-engine/api"
	"github.com/stockline/inventory-engine/config"
	"github.com/stockline/inventory-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags override environment
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer store.Close()

	// Initialize handler and router
	handler := api.NewHandler(store, logger)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting",
			zap.Int("port", *port),
			zap.String("db", *dbPath),
			zap.String("env", cfg.AppEnv),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// buildLogger picks a production or development zap config by
// environment and applies the configured level.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Production() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err == nil {
		zc.Level = level
	}
	return zc.Build()
}
