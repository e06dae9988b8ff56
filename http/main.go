package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/eventsnap/eventsnap-service/config"
	"github.com/eventsnap/eventsnap-service/http/controller"
	routes "github.com/eventsnap/eventsnap-service/http/route"
	infraPkg "github.com/eventsnap/eventsnap-service/infra"
	"github.com/eventsnap/eventsnap-service/repository"
)

func main() {
	err := godotenv.Load("staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	// Bucket bootstrap: create-if-missing, kept private. Photo reads go
	// through presigned URLs only.
	ctx := context.Background()
	if err := infra.Storage.EnsureBucket(ctx, cfg.EnvConfig.Photo.Bucket); err != nil {
		log.Fatalf("Failed to ensure photo bucket: %v", err)
	}

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on", cfg.EnvConfig.Server.ListenAddress)
	if err := router.Run(cfg.EnvConfig.Server.ListenAddress); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
