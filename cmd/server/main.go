package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kainos.com/bid-assist/internal/api"
	"kainos.com/bid-assist/internal/config"
	"kainos.com/bid-assist/internal/core"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Command line flags for data ingestion
	ingestDataFlag := flag.Bool("ingest", false, "Ingest project data into the vector index and exit")
	dataFile := flag.String("data", "data.md", "Markdown table of project descriptions to ingest")
	flag.Parse()

	// Select the backend (cloud or local) once for the process lifetime
	backend, err := core.NewBackend(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize backend: %v", err)
	}
	defer backend.Close()
	log.Printf("Using %s backend", backend.Name())

	// Handle data ingestion if flag is set
	if *ingestDataFlag {
		log.Println("Starting data ingestion process...")
		index, err := backend.OpenIndex()
		if err != nil {
			log.Fatalf("Failed to open vector index: %v", err)
		}
		numIngested, err := index.IngestFromFile(context.Background(), *dataFile)
		if err != nil {
			log.Fatalf("Data ingestion failed: %v", err)
		}
		log.Printf("Data ingestion complete. Ingested %d chunks. Exiting.", numIngested)
		backend.Close()
		os.Exit(0)
	}

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(backend)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
