package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scishare/internal/config"
	"scishare/internal/db"
	"scishare/internal/metrics"
	"scishare/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Seed sample abstracts in development
	if cfg.IsDev() {
		if err := database.SeedDevAbstracts(ctx); err != nil {
			log.Printf("Warning: failed to seed dev abstracts: %v", err)
		}
	}

	// Register Prometheus collectors
	metrics.Init(database)

	// Initialize server and routes
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
