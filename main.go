package main

import (
	"log"

	"github.com/joho/godotenv"

	"trendlab/internal/config"
	"trendlab/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := ui.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create dashboard: %v", err)
	}

	log.Printf("Starting TrendLab dashboard on http://localhost:%s", cfg.Server.Port)
	log.Fatal(app.Start(":" + cfg.Server.Port))
}
