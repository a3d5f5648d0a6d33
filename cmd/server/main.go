/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Open the SQLite persistence collaborator
  3. Restore the request store from the persisted snapshot
  4. Seed demo accounts (and requests with -seed)
  5. Configure the HTTP router and start serving

CONFIGURATION:
  -port      HTTP server port           (env PORT, default 8080)
  -db        SQLite database path       (env LEAVE_DB, default leave.db)
             Use ":memory:" for an in-memory database
  -secret    Session signing secret     (env SESSION_SECRET)
  -seed      Load demo requests into an empty store

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Persistence implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/edhr/leave-engine/api"
	"github.com/edhr/leave-engine/identity"
	"github.com/edhr/leave-engine/leave"
	"github.com/edhr/leave-engine/store/sqlite"
)

func main() {
	// .env is optional; flags override environment.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("LEAVE_DB", "leave.db"), "SQLite database path")
	secret := flag.String("secret", envStr("SESSION_SECRET", ""), "session signing secret")
	seed := flag.Bool("seed", false, "load demo requests into an empty store")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if *secret == "" {
		logger.Fatal().Msg("session secret required (-secret or SESSION_SECRET)")
	}

	// Persistence collaborator
	persistence, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer persistence.Close()

	// Request store
	store := leave.NewStore(persistence, leave.WithLogger(logger))
	ctx := context.Background()
	if err := store.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to load request store")
	}

	// Identity collaborator (mocked: seeded demo directory)
	directory := identity.NewDirectory()
	if err := directory.Seed(); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed demo accounts")
	}
	sessions := identity.NewSessions([]byte(*secret), 24*time.Hour)

	if *seed && len(store.ListAll()) == 0 {
		if err := store.Replace(ctx, leave.SeedRequests()); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo requests")
		}
		logger.Info().Msg("demo requests seeded")
	}

	// HTTP surface
	handler := api.NewHandler(store, directory, sessions, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", *port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
