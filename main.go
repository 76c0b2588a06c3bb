package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-voting-backend/cache"
	"campus-voting-backend/database"
	"campus-voting-backend/routes"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; containerized deployments pass real env vars.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	if err := database.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := cache.InitRedis(); err != nil {
		log.Printf("warning: redis initialization failed: %v", err)
	}

	router := routes.SetupRouter()
	srv := routes.StartServer(router)

	// Wait for an interrupt and shut down gracefully.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shut down: %v", err)
	}

	database.CloseDB()
	cache.CloseRedis()

	log.Println("server stopped cleanly")
}
