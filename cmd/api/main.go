package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gobi/internal/api"
	"gobi/internal/config"
	"gobi/internal/container"
)

func main() {
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
	if err := c.Preload(context.Background()); err != nil {
		log.Printf("Warning: could not preload %s: %v", appConfig.Data.File, err)
	}

	srv := &http.Server{
		Addr:              ":" + appConfig.Server.APIPort,
		Handler:           api.NewHandler(c.Explorer, c.Metrics, appConfig.MaxUploadBytes()).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown failed: %v", err)
	}
	if err := c.Shutdown(ctx); err != nil {
		log.Printf("Cleanup failed: %v", err)
	}
}
