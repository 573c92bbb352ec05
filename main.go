package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"gobi/internal/config"
	"gobi/internal/container"
	"gobi/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Shutdown(context.Background())

	if err := c.Preload(context.Background()); err != nil {
		log.Printf("Warning: could not preload %s: %v", appConfig.Data.File, err)
	} else if appConfig.Data.File != "" {
		log.Printf("Preloaded %s", appConfig.Data.File)
	}

	server, err := ui.NewServer(c.Explorer, c.Metrics, ui.Options{
		Mode:           appConfig.Server.GinMode,
		MaxUploadBytes: appConfig.MaxUploadBytes(),
		PreviewRows:    appConfig.Data.PreviewRows,
	})
	if err != nil {
		log.Fatal("Failed to create dashboard server:", err)
	}

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
