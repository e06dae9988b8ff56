package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/eventsnap/eventsnap-service/config"
	infraPkg "github.com/eventsnap/eventsnap-service/infra"
	"github.com/eventsnap/eventsnap-service/infra/produce"
	"github.com/eventsnap/eventsnap-service/repository"
	"github.com/eventsnap/eventsnap-service/sweeper/worker"
)

func main() {
	err := godotenv.Load("staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)
	prod := produce.InitProduce(infra.RabbitMQ.Channel)

	// Initialize context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupConsumer := worker.NewCleanupConsumer(infra.RabbitMQ.Channel, cfg, infra, repo)
	if err := cleanupConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start cleanup consumer: %v", err)
		log.Fatalf("Failed to start cleanup consumer: %v", err)
	}

	scanner := worker.NewExpiryScanner(cfg, infra, repo, prod.CleanupService)
	scanner.Start(ctx)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down sweeper...")
	cancel()

	infra.Logger.InfoWithContextf(context.Background(), "Sweeper exited properly")

	if err := infra.Logger.Shutdown(context.Background()); err != nil {
		log.Printf("Failed to flush logs: %v", err)
	}
}
