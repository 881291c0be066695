package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/api"
	"github.com/baselomar044-dev/qs-empire/internal/config"
	"github.com/baselomar044-dev/qs-empire/internal/llm"
	"github.com/baselomar044-dev/qs-empire/internal/notify"
	"github.com/baselomar044-dev/qs-empire/internal/pipeline"
	"github.com/baselomar044-dev/qs-empire/internal/scheduler"
	"github.com/baselomar044-dev/qs-empire/internal/search"
	"github.com/baselomar044-dev/qs-empire/internal/store"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting QS Empire lead scout")

	// Initialize the local opportunity database
	opportunityStore, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("Failed to open local database: %v", err)
	}
	defer opportunityStore.Close()

	// Initialize outbound clients
	provider := search.NewTavilyProvider(cfg.TavilyAPIKey, cfg.TavilyBaseURL, cfg.MaxResultsPerQuery, cfg.IncludeDomains)
	completions := llm.NewClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
	classifier := llm.NewClassifier(completions, cfg.SnippetCharLimit)
	agent := llm.NewAgent(completions)
	notificationService := notify.NewService(cfg)

	var snapshots store.SnapshotStore
	if cfg.GitHubToken != "" {
		snapshots = store.NewGitHubStore(cfg.GitHubToken, cfg.GitHubRepo, cfg.GitHubDataPath, cfg.GitHubBaseURL)
	} else {
		logrus.Warn("GITHUB_TOKEN not set, snapshot publishing disabled")
	}

	// Initialize the discovery pipeline
	pipelineService := pipeline.NewService(cfg, provider, classifier, snapshots, opportunityStore, notificationService)

	// Initialize scheduler
	schedulerService := scheduler.NewService(cfg, pipelineService)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up the HTTP surface
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Metrics endpoint
	router.HandleFunc("/metrics", metricsHandler(pipelineService)).Methods("GET")

	// Manual trigger endpoint (for testing)
	router.HandleFunc("/trigger", triggerHandler(cfg, pipelineService)).Methods("POST")

	// API endpoints
	handlers := api.NewHandlers(cfg, pipelineService, opportunityStore, agent, notificationService)
	handlers.Register(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(pipelineService *pipeline.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics := pipelineService.GetMetrics()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(metrics))
	}
}

func triggerHandler(cfg *config.Config, pipelineService *pipeline.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		go func() {
			_, _, err := pipelineService.Run(context.Background(), pipeline.Options{
				Recipient: cfg.OwnerEmail,
				Persist:   true,
				Notify:    true,
			})
			if err != nil {
				logrus.Errorf("Manual discovery trigger failed: %v", err)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Discovery run triggered successfully"}`))
	}
}
