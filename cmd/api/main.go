package main

import (
	"log"

	"github.com/joho/godotenv"

	"trendlab/internal/api"
	"trendlab/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	server := api.NewServer(cfg)

	log.Printf("Starting TrendLab API on http://localhost:%s", cfg.Server.APIPort)
	log.Fatal(server.Start(":" + cfg.Server.APIPort))
}
