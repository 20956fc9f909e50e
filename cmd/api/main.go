package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gcn-backend/cmd"
	"gcn-backend/internal/api"
	"gcn-backend/internal/database"
	"gcn-backend/internal/logbuf"
	"gcn-backend/internal/upstream"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type APIConfig struct {
	DatabaseURL        string        `env:"DATABASE_URL,notEmpty,required"`
	AiBackendURL       string        `env:"AI_BACKEND_URL,notEmpty,required"`
	APIPort            string        `env:"API_PORT" envDefault:"5000"`
	QueryTimeout       time.Duration `env:"QUERY_TIMEOUT" envDefault:"5m"`
	ProxyTimeout       time.Duration `env:"PROXY_TIMEOUT" envDefault:"10s"`
	UpstreamMaxRetries int           `env:"UPSTREAM_MAX_RETRIES" envDefault:"3"`
	UpstreamRetryDelay time.Duration `env:"UPSTREAM_RETRY_DELAY" envDefault:"1s"`
}

func main() {
	log.Println("Starting API Server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	// Recent records are kept in memory so /api/logs can serve them to the
	// frontend diagnostics view.
	logBuffer := logbuf.NewBuffer(logbuf.DefaultCapacity)
	slog.SetDefault(slog.New(logbuf.NewHandler(
		slog.NewTextHandler(os.Stderr, nil), logBuffer,
	)))

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	aiClient := upstream.NewClient(upstream.Config{
		BaseURL:    cfg.AiBackendURL,
		MaxRetries: cfg.UpstreamMaxRetries,
		RetryDelay: cfg.UpstreamRetryDelay,
	})

	// --- Chi Router Setup ---
	r := chi.NewRouter()

	// Middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Allow all origins (TODO: make this an env var)
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Cache preflight response for 5 minutes
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Log requests
	r.Use(middleware.Recoverer) // Recover from panics
	// No request timeout middleware: /api/query can legitimately run for
	// minutes while the AI backend generates an answer.

	apiHandler := api.NewBackendService(db, aiClient, logBuffer, api.Options{
		QueryTimeout: cfg.QueryTimeout,
		ProxyTimeout: cfg.ProxyTimeout,
	})

	r.Route("/api", apiHandler.AddRoutes)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
