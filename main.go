package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pageviews-server/config"
	"pageviews-server/di"
)

func main() {
	configPath := flag.String("config", os.Getenv("PAGEVIEWS_CONFIG_FILE"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	if err := container.PageviewsHttpServer.Start(ctx); err != nil {
		log.Printf("Server stopped with error: %v", err)
		return
	}
}
